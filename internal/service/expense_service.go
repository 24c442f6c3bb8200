package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/calculator"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/events"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/storage"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService: expenses, their splits and
// recorded settlements.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	settings
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store, opts ...Option) *ExpenseService {
	return &ExpenseService{settings: newSettings(opts), store: store}
}

func (s *ExpenseService) computeSplits(req splitRequest) ([]models.Split, error) {
	policy, err := models.ParseSplitType(req.splitType)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeSplits(req.amount, policy, req.participants, req.percentages,
		calculator.WithPercentEpsilon(s.percentEpsilon))
}

// PreviewSplit computes the shares an expense would produce without recording it.
func (s *ExpenseService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	splits, err := s.computeSplits(splitRequest{
		amount:       req.Msg.Amount,
		splitType:    req.Msg.SplitType,
		participants: req.Msg.Participants,
		percentages:  req.Msg.Percentages,
	})
	if err != nil {
		return nil, toConnectError(s.logger, "PreviewSplit", err)
	}
	return connect.NewResponse(&api.PreviewSplitResponse{Splits: toAPISplits(splits)}), nil
}

// CreateExpense records an expense and its splits. The payer defaults to the caller and
// the participants default to every current group member. Payer and participants who are
// not members yet join the group.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	s.logger.Info("CreateExpense request received",
		"group_id", msg.GroupID,
		"amount", msg.Amount.String(),
		"split_type", msg.SplitType,
		"participants", len(msg.Participants),
	)

	caller := callerID(ctx)
	description := strings.TrimSpace(msg.Description)
	paidBy := msg.PaidBy
	if paidBy == "" {
		paidBy = caller
	}
	for _, f := range []struct{ name, value string }{
		{"group_id", msg.GroupID},
		{"description", description},
		{"paid_by", paidBy},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, toConnectError(s.logger, "CreateExpense", err)
		}
	}

	participants := msg.Participants
	if len(participants) == 0 {
		group, err := s.store.GetGroup(ctx, msg.GroupID)
		if err != nil {
			return nil, toConnectError(s.logger, "CreateExpense", err)
		}
		participants = group.Members
	}

	splits, err := s.computeSplits(splitRequest{
		amount:       msg.Amount,
		splitType:    msg.SplitType,
		participants: participants,
		percentages:  msg.Percentages,
	})
	if err != nil {
		s.logger.Warn("Split calculation failed", "group_id", msg.GroupID, "error", err)
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}

	expense := &models.Expense{
		GroupID:     msg.GroupID,
		Description: description,
		Amount:      msg.Amount,
		PaidBy:      paidBy,
		SplitType:   models.SplitType(msg.SplitType),
		CreatedBy:   caller,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError(s.logger, "CreateExpense", err)
	}

	s.publish(ctx, events.New(events.ExpenseCreated, expense.GroupID, expense.ID, caller, money(expense.Amount)))

	s.logger.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"splits", len(expense.Splits),
	)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// GetExpense retrieves an expense with its splits.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	if err := requireField("expense_id", req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(s.logger, "GetExpense", err)
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetExpense", err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpensesByGroup retrieves a group's expenses, oldest first.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, req *connect.Request[api.ListExpensesByGroupRequest]) (*connect.Response[api.ListExpensesByGroupResponse], error) {
	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, toConnectError(s.logger, "ListExpensesByGroup", err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListExpensesByGroup", err)
	}

	s.logger.Debug("ListExpensesByGroup successful", "group_id", req.Msg.GroupID, "count", len(expenses))
	return connect.NewResponse(&api.ListExpensesByGroupResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// DeleteExpense removes an expense together with its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	s.logger.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := requireField("expense_id", req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, toConnectError(s.logger, "DeleteExpense", err)
	}

	s.publish(ctx, events.New(events.ExpenseDeleted, expense.GroupID, expense.ID, callerID(ctx), money(expense.Amount)))

	s.logger.Info("Expense deleted", "expense_id", expense.ID, "group_id", expense.GroupID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// RecordSettlement records a payment from one group member to another.
func (s *ExpenseService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	msg := req.Msg
	s.logger.Info("RecordSettlement request received",
		"group_id", msg.GroupID,
		"from", msg.FromUserID,
		"to", msg.ToUserID,
		"amount", msg.Amount.String(),
	)

	caller := callerID(ctx)
	settlement := &models.Settlement{
		GroupID:    msg.GroupID,
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Amount:     msg.Amount,
		CreatedBy:  caller,
		Note:       strings.TrimSpace(msg.Note),
	}
	if err := settlement.Validate(); err != nil {
		return nil, toConnectError(s.logger, "RecordSettlement", err)
	}

	group, err := s.store.GetGroup(ctx, settlement.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, "RecordSettlement", err)
	}
	for _, f := range []struct{ name, id string }{
		{"from_user_id", settlement.FromUserID},
		{"to_user_id", settlement.ToUserID},
	} {
		if !group.HasMember(f.id) {
			err := &models.ValidationError{Field: f.name, Reason: "is not a member of the group"}
			return nil, toConnectError(s.logger, "RecordSettlement", err)
		}
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, toConnectError(s.logger, "RecordSettlement", err)
	}

	s.publish(ctx, events.New(events.SettlementRecorded, settlement.GroupID, settlement.ID, caller, money(settlement.Amount)))

	s.logger.Info("Settlement recorded", "settlement_id", settlement.ID, "group_id", settlement.GroupID)
	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements retrieves a group's recorded settlements, oldest first.
func (s *ExpenseService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	if err := requireField("group_id", req.Msg.GroupID); err != nil {
		return nil, toConnectError(s.logger, "ListSettlements", err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListSettlements", err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// DeleteSettlement removes a recorded settlement.
func (s *ExpenseService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	s.logger.Info("DeleteSettlement request received", "settlement_id", req.Msg.SettlementID)

	if err := requireField("settlement_id", req.Msg.SettlementID); err != nil {
		return nil, toConnectError(s.logger, "DeleteSettlement", err)
	}
	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		return nil, toConnectError(s.logger, "DeleteSettlement", err)
	}
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// splitRequest is the part of a request that decides the shares.
type splitRequest struct {
	amount       decimal.Decimal
	splitType    string
	participants []string
	percentages  []decimal.Decimal
}
