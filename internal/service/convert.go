package service

import (
	"github.com/shopspring/decimal"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/calculator"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(calculator.Places)
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toAPISplits(splits []models.Split) []*api.Split {
	out := make([]*api.Split, len(splits))
	for i, s := range splits {
		out[i] = &api.Split{
			ID:     s.ID,
			UserID: s.UserID,
			Amount: money(s.Amount),
		}
		if s.Percentage.Valid {
			out[i].Percentage = s.Percentage.Decimal.String()
		}
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      money(e.Amount),
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
		Splits:      toAPISplits(e.Splits),
	}
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:         s.ID,
		GroupID:    s.GroupID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     money(s.Amount),
		CreatedAt:  s.CreatedAt,
		CreatedBy:  s.CreatedBy,
		Note:       s.Note,
	}
}

// forBalance reduces stored expenses and settlements to calculator inputs.
func forBalance(expenses []*models.Expense, settlements []*models.Settlement) ([]calculator.ExpenseForBalance, []calculator.SettlementForBalance) {
	calcExpenses := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		splits := make([]calculator.SplitForBalance, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = calculator.SplitForBalance{UserID: s.UserID, Amount: s.Amount}
		}
		calcExpenses[i] = calculator.ExpenseForBalance{PaidBy: e.PaidBy, Amount: e.Amount, Splits: splits}
	}

	calcSettlements := make([]calculator.SettlementForBalance, len(settlements))
	for i, s := range settlements {
		calcSettlements[i] = calculator.SettlementForBalance{FromUserID: s.FromUserID, ToUserID: s.ToUserID, Amount: s.Amount}
	}
	return calcExpenses, calcSettlements
}

func displayNames(users map[string]*models.User) map[string]string {
	names := make(map[string]string, len(users))
	for id, u := range users {
		names[id] = u.DisplayName
	}
	return names
}
