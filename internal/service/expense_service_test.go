package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/events"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func splitAmounts(splits []*api.Split) []string {
	out := make([]string, len(splits))
	for i, s := range splits {
		out[i] = s.Amount
	}
	return out
}

func TestPreviewSplit(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *api.PreviewSplitRequest
		amounts []string
		code    connect.Code
	}{
		{
			name:    "equal split keeps the exact total",
			req:     &api.PreviewSplitRequest{Amount: dec("100.00"), SplitType: "equal", Participants: []string{"a", "b", "c"}},
			amounts: []string{"33.34", "33.33", "33.33"},
		},
		{
			name: "percentage split",
			req: &api.PreviewSplitRequest{
				Amount:       dec("123.45"),
				SplitType:    "percentage",
				Participants: []string{"a", "b", "c"},
				Percentages:  []decimal.Decimal{dec("60"), dec("30"), dec("10")},
			},
			amounts: []string{"74.07", "37.03", "12.35"},
		},
		{
			name: "percentages summing to 99",
			req: &api.PreviewSplitRequest{
				Amount:       dec("100.00"),
				SplitType:    "percentage",
				Participants: []string{"a", "b"},
				Percentages:  []decimal.Decimal{dec("49"), dec("50")},
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "no participants",
			req:  &api.PreviewSplitRequest{Amount: dec("10.00"), SplitType: "equal"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown split type",
			req:  &api.PreviewSplitRequest{Amount: dec("10.00"), SplitType: "shares", Participants: []string{"a"}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "negative amount",
			req:  &api.PreviewSplitRequest{Amount: dec("-5.00"), SplitType: "equal", Participants: []string{"a"}},
			code: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.expenses.PreviewSplit(ctx, connect.NewRequest(tt.req))
			if tt.amounts == nil {
				requireCode(t, tt.code, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amounts, splitAmounts(resp.Msg.Splits))
		})
	}
}

func TestCreateExpense(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()
	alice, bob, carol, groupID := s.trio(t)

	t.Run("defaults to caller as payer and all members as participants", func(t *testing.T) {
		resp, err := s.expenses.CreateExpense(ctx, as(alice, &api.CreateExpenseRequest{
			GroupID:     groupID,
			Description: "Groceries",
			Amount:      dec("100.00"),
			SplitType:   "equal",
		}))
		require.NoError(t, err)

		e := resp.Msg.Expense
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, alice.ID, e.PaidBy)
		assert.Equal(t, alice.ID, e.CreatedBy)
		assert.Equal(t, "100.00", e.Amount)
		assert.Equal(t, "equal", e.SplitType)
		assert.Equal(t, []string{"33.34", "33.33", "33.33"}, splitAmounts(e.Splits))
		for _, split := range e.Splits {
			assert.Empty(t, split.Percentage)
		}

		got, err := s.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: e.ID}))
		require.NoError(t, err)
		assert.Equal(t, e, got.Msg.Expense)
	})

	t.Run("explicit payer and percentages", func(t *testing.T) {
		resp, err := s.expenses.CreateExpense(ctx, as(alice, &api.CreateExpenseRequest{
			GroupID:      groupID,
			Description:  "Taxi",
			Amount:       dec("50.00"),
			PaidBy:       bob.ID,
			SplitType:    "percentage",
			Participants: []string{bob.ID, carol.ID},
			Percentages:  []decimal.Decimal{dec("20"), dec("80")},
		}))
		require.NoError(t, err)

		e := resp.Msg.Expense
		assert.Equal(t, bob.ID, e.PaidBy)
		assert.Equal(t, alice.ID, e.CreatedBy)
		require.Len(t, e.Splits, 2)
		assert.Equal(t, "10.00", e.Splits[0].Amount)
		assert.Equal(t, "20", e.Splits[0].Percentage)
		assert.Equal(t, "40.00", e.Splits[1].Amount)
	})

	t.Run("newcomers join the group", func(t *testing.T) {
		dave := s.register(t, "Dave")
		_, err := s.expenses.CreateExpense(ctx, as(alice, &api.CreateExpenseRequest{
			GroupID:      groupID,
			Description:  "Tickets",
			Amount:       dec("20.00"),
			SplitType:    "equal",
			Participants: []string{alice.ID, dave.ID},
		}))
		require.NoError(t, err)

		group, err := s.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: groupID}))
		require.NoError(t, err)
		assert.Equal(t, []string{alice.ID, bob.ID, carol.ID, dave.ID}, group.Msg.Group.Members)
	})

	t.Run("listed oldest first", func(t *testing.T) {
		resp, err := s.expenses.ListExpensesByGroup(ctx, connect.NewRequest(&api.ListExpensesByGroupRequest{GroupID: groupID}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Expenses, 3)
		assert.Equal(t, "Groceries", resp.Msg.Expenses[0].Description)
		assert.Equal(t, "Tickets", resp.Msg.Expenses[2].Description)
	})

	assert.Equal(t, []string{events.ExpenseCreated, events.ExpenseCreated, events.ExpenseCreated}, s.published.names())
}

func TestCreateExpenseErrors(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()
	alice, bob, _, groupID := s.trio(t)

	valid := func() *api.CreateExpenseRequest {
		return &api.CreateExpenseRequest{
			GroupID:     groupID,
			Description: "Dinner",
			Amount:      dec("30.00"),
			SplitType:   "equal",
		}
	}

	tests := []struct {
		name   string
		mutate func(*api.CreateExpenseRequest)
		code   connect.Code
	}{
		{"unknown group", func(r *api.CreateExpenseRequest) { r.GroupID = "missing" }, connect.CodeNotFound},
		{"missing description", func(r *api.CreateExpenseRequest) { r.Description = " " }, connect.CodeInvalidArgument},
		{"zero amount", func(r *api.CreateExpenseRequest) { r.Amount = decimal.Zero }, connect.CodeInvalidArgument},
		{"sub-cent amount", func(r *api.CreateExpenseRequest) { r.Amount = dec("10.005") }, connect.CodeInvalidArgument},
		{"unknown participant", func(r *api.CreateExpenseRequest) { r.Participants = []string{alice.ID, "ghost"} }, connect.CodeNotFound},
		{"duplicate participant", func(r *api.CreateExpenseRequest) { r.Participants = []string{bob.ID, bob.ID} }, connect.CodeInvalidArgument},
		{"percentages summing to 99", func(r *api.CreateExpenseRequest) {
			r.SplitType = "percentage"
			r.Participants = []string{alice.ID, bob.ID}
			r.Percentages = []decimal.Decimal{dec("50"), dec("49")}
		}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			_, err := s.expenses.CreateExpense(ctx, as(alice, req))
			requireCode(t, tt.code, err)
		})
	}

	t.Run("requires a token", func(t *testing.T) {
		_, err := s.expenses.CreateExpense(ctx, connect.NewRequest(valid()))
		requireCode(t, connect.CodeUnauthenticated, err)
	})

	expenses, err := s.expenses.ListExpensesByGroup(ctx, connect.NewRequest(&api.ListExpensesByGroupRequest{GroupID: groupID}))
	require.NoError(t, err)
	assert.Empty(t, expenses.Msg.Expenses)
	assert.Empty(t, s.published.names())
}

func TestDeleteExpense(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()
	alice, _, _, groupID := s.trio(t)

	created, err := s.expenses.CreateExpense(ctx, as(alice, &api.CreateExpenseRequest{
		GroupID:     groupID,
		Description: "Dinner",
		Amount:      dec("90.00"),
		SplitType:   "equal",
	}))
	require.NoError(t, err)
	id := created.Msg.Expense.ID

	_, err = s.expenses.DeleteExpense(ctx, as(alice, &api.DeleteExpenseRequest{ExpenseID: id}))
	require.NoError(t, err)

	_, err = s.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: id}))
	requireCode(t, connect.CodeNotFound, err)

	balances, err := s.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: groupID}))
	require.NoError(t, err)
	assert.Empty(t, balances.Msg.Balances)

	_, err = s.expenses.DeleteExpense(ctx, as(alice, &api.DeleteExpenseRequest{ExpenseID: id}))
	requireCode(t, connect.CodeNotFound, err)

	assert.Equal(t, []string{events.ExpenseCreated, events.ExpenseDeleted}, s.published.names())
}

func TestRecordSettlement(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()
	alice, bob, carol, groupID := s.trio(t)

	_, err := s.expenses.CreateExpense(ctx, as(alice, &api.CreateExpenseRequest{
		GroupID:     groupID,
		Description: "Dinner",
		Amount:      dec("90.00"),
		SplitType:   "equal",
	}))
	require.NoError(t, err)

	balances := func() *api.GetGroupBalancesResponse {
		resp, err := s.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: groupID}))
		require.NoError(t, err)
		return resp.Msg
	}

	settled, err := s.expenses.RecordSettlement(ctx, as(bob, &api.RecordSettlementRequest{
		GroupID:    groupID,
		FromUserID: bob.ID,
		ToUserID:   alice.ID,
		Amount:     dec("30.00"),
		Note:       "cash",
	}))
	require.NoError(t, err)
	assert.Equal(t, "30.00", settled.Msg.Settlement.Amount)
	assert.Equal(t, bob.ID, settled.Msg.Settlement.CreatedBy)
	assert.Equal(t, []string{"Carol owes Alice ₹30.00"}, balances().Balances)

	_, err = s.expenses.RecordSettlement(ctx, as(carol, &api.RecordSettlementRequest{
		GroupID:    groupID,
		FromUserID: carol.ID,
		ToUserID:   alice.ID,
		Amount:     dec("30.00"),
	}))
	require.NoError(t, err)

	msg := balances()
	assert.Empty(t, msg.Balances)
	assert.Equal(t, []string{"Alice is settled up", "Bob is settled up", "Carol is settled up"}, msg.MemberStatus)

	list, err := s.expenses.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{GroupID: groupID}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Settlements, 2)
	assert.Equal(t, "cash", list.Msg.Settlements[0].Note)

	_, err = s.expenses.DeleteSettlement(ctx, as(alice, &api.DeleteSettlementRequest{SettlementID: settled.Msg.Settlement.ID}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob owes Alice ₹30.00"}, balances().Balances)

	assert.Equal(t, []string{events.ExpenseCreated, events.SettlementRecorded, events.SettlementRecorded}, s.published.names())
}

func TestRecordSettlementErrors(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()
	alice, bob, _, groupID := s.trio(t)
	outsider := s.register(t, "Eve")

	tests := []struct {
		name string
		req  *api.RecordSettlementRequest
		code connect.Code
	}{
		{"self settlement", &api.RecordSettlementRequest{GroupID: groupID, FromUserID: bob.ID, ToUserID: bob.ID, Amount: dec("5")}, connect.CodeInvalidArgument},
		{"zero amount", &api.RecordSettlementRequest{GroupID: groupID, FromUserID: bob.ID, ToUserID: alice.ID}, connect.CodeInvalidArgument},
		{"sub-cent amount", &api.RecordSettlementRequest{GroupID: groupID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: dec("0.001")}, connect.CodeInvalidArgument},
		{"not a member", &api.RecordSettlementRequest{GroupID: groupID, FromUserID: outsider.ID, ToUserID: alice.ID, Amount: dec("5")}, connect.CodeInvalidArgument},
		{"unknown group", &api.RecordSettlementRequest{GroupID: "missing", FromUserID: bob.ID, ToUserID: alice.ID, Amount: dec("5")}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.expenses.RecordSettlement(ctx, as(bob, tt.req))
			requireCode(t, tt.code, err)
		})
	}

	_, err := s.expenses.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{GroupID: "missing"}))
	requireCode(t, connect.CodeNotFound, err)
}
