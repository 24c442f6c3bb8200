package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/calculator"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/storage"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api/apiconnect"
)

// UserService implements the Connect UserService: per-user summaries and the dashboard.
type UserService struct {
	apiconnect.UnimplementedUserServiceHandler
	settings
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store, opts ...Option) *UserService {
	return &UserService{settings: newSettings(opts), store: store}
}

// GetUserBalances totals what a user paid and owes across all of their groups and lists
// the settling payments they take part in, group by group.
func (s *UserService) GetUserBalances(ctx context.Context, req *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error) {
	userID := req.Msg.UserID
	if userID == "" {
		userID = callerID(ctx)
	}
	if userID == "" {
		return nil, toConnectError(s.logger, "GetUserBalances", errUnauthenticated)
	}
	s.logger.Info("GetUserBalances request received", "user_id", userID)

	ledger, err := s.store.UserLedger(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetUserBalances", err)
	}

	expenses, settlements := forBalance(ledger.Expenses, ledger.Settlements)
	summary := calculator.CalculateUserSummary(userID, expenses, settlements)

	var memberIDs []string
	for _, g := range ledger.Groups {
		memberIDs = append(memberIDs, g.Members...)
	}
	users, err := s.store.GetUsersByIDs(ctx, memberIDs)
	if err != nil {
		return nil, toConnectError(s.logger, "GetUserBalances", err)
	}
	f := s.formatter
	f.Names = displayNames(users)

	lines := []string{}
	for _, tx := range involving(userID, ledger) {
		lines = append(lines, f.Transaction(tx))
	}

	s.logger.Info("GetUserBalances successful",
		"user_id", userID,
		"groups", len(ledger.Groups),
		"net_balance", money(summary.NetBalance),
	)
	return connect.NewResponse(&api.GetUserBalancesResponse{
		User:         toAPIUser(ledger.User),
		TotalPaid:    money(summary.TotalPaid),
		TotalOwed:    money(summary.TotalOwed),
		NetBalance:   money(summary.NetBalance),
		Transactions: lines,
	}), nil
}

// involving settles each of the user's groups on its own and keeps the payments
// userID sends or receives.
func involving(userID string, ledger *storage.UserLedger) []calculator.Transaction {
	expensesByGroup := make(map[string][]*models.Expense)
	for _, e := range ledger.Expenses {
		expensesByGroup[e.GroupID] = append(expensesByGroup[e.GroupID], e)
	}
	settlementsByGroup := make(map[string][]*models.Settlement)
	for _, st := range ledger.Settlements {
		settlementsByGroup[st.GroupID] = append(settlementsByGroup[st.GroupID], st)
	}

	var out []calculator.Transaction
	for _, g := range ledger.Groups {
		expenses, settlements := forBalance(expensesByGroup[g.ID], settlementsByGroup[g.ID])
		_, txs := calculator.CalculateGroupBalances(g.Members, expenses, settlements)
		for _, tx := range txs {
			if tx.From == userID || tx.To == userID {
				out = append(out, tx)
			}
		}
	}
	return out
}

// GetDashboard returns overall counts and the most recent expenses.
func (s *UserService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	groups, err := s.store.CountGroups(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "GetDashboard", err)
	}
	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "GetDashboard", err)
	}
	recent, err := s.store.ListRecentExpenses(ctx, dashboardRecentExpenses)
	if err != nil {
		return nil, toConnectError(s.logger, "GetDashboard", err)
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		GroupCount:     groups,
		UserCount:      users,
		RecentExpenses: toAPIExpenses(recent),
	}), nil
}
