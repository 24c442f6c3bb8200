package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUsers(t *testing.T, store *SQLiteStore, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		user := models.NewUser(name+"@example.com", name, "hash")
		require.NoError(t, store.CreateUser(context.Background(), user))
		ids[i] = user.ID
	}
	return ids
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNew_RerunsMigrationsOnExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	first, err := New(path)
	require.NoError(t, err)
	createUsers(t, first, "alice")
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	n, err := second.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash-a")
	require.NoError(t, store.CreateUser(ctx, alice))

	t.Run("lookup by id and email", func(t *testing.T) {
		byID, err := store.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice, byID)

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byEmail.ID)
	})

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash"))
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = store.GetUserByEmail(ctx, "nope@example.com")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("batch lookup omits unknown ids", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{alice.ID, "ghost"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Alice", users[alice.ID].DisplayName)

		empty, err := store.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	n, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := createUsers(t, store, "carol", "alice", "bob", "dave")
	carol, alice, bob, dave := ids[0], ids[1], ids[2], ids[3]

	t.Run("unknown member rolls back the group", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Broken", Members: []string{alice, "ghost"}})
		var nf *models.NotFoundError
		require.True(t, errors.As(err, &nf), "got %v", err)
		assert.Equal(t, "user", nf.Kind)

		n, err := store.CountGroups(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	group := &models.Group{Name: "Goa Trip", Members: []string{carol, alice, carol, bob}}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NotEmpty(t, group.ID)
	require.NotZero(t, group.CreatedAt)

	t.Run("members keep join order without duplicates", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Goa Trip", got.Name)
		assert.Equal(t, []string{carol, alice, bob}, got.Members)
	})

	t.Run("adding members appends and ignores existing", func(t *testing.T) {
		got, err := store.AddGroupMembers(ctx, group.ID, []string{bob, dave})
		require.NoError(t, err)
		assert.Equal(t, []string{carol, alice, bob, dave}, got.Members)

		_, err = store.AddGroupMembers(ctx, "missing", []string{bob})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list groups", func(t *testing.T) {
		other := &models.Group{Name: "Flat", Members: []string{alice}}
		require.NoError(t, store.CreateGroup(ctx, other))

		all, err := store.ListGroups(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		forDave, err := store.ListGroupsForUser(ctx, dave)
		require.NoError(t, err)
		require.Len(t, forDave, 1)
		assert.Equal(t, group.ID, forDave[0].ID)
		assert.Len(t, forDave[0].Members, 4)

		forAlice, err := store.ListGroupsForUser(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, forAlice, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteGroup(ctx, group.ID))

		_, err := store.GetGroup(ctx, group.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)

		assert.ErrorIs(t, store.DeleteGroup(ctx, group.ID), models.ErrNotFound)
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := createUsers(t, store, "alice", "bob", "carol")
	alice, bob, carol := ids[0], ids[1], ids[2]

	group := &models.Group{Name: "Dinner club", Members: []string{alice}}
	require.NoError(t, store.CreateGroup(ctx, group))

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      dec("100.00"),
		PaidBy:      alice,
		SplitType:   models.SplitPercentage,
		CreatedBy:   alice,
		Splits: []models.Split{
			{UserID: carol, Amount: dec("33.34"), Percentage: decimal.NewNullDecimal(dec("33.34"))},
			{UserID: bob, Amount: dec("33.33"), Percentage: decimal.NewNullDecimal(dec("33.33"))},
			{UserID: alice, Amount: dec("33.33"), Percentage: decimal.NewNullDecimal(dec("33.33"))},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	require.NotEmpty(t, expense.ID)

	t.Run("round trip keeps exact amounts and split order", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dinner", got.Description)
		assert.True(t, got.Amount.Equal(dec("100")))
		assert.Equal(t, models.SplitPercentage, got.SplitType)
		assert.Equal(t, alice, got.CreatedBy)

		require.Len(t, got.Splits, 3)
		assert.Equal(t, carol, got.Splits[0].UserID)
		assert.Equal(t, expense.ID, got.Splits[0].ExpenseID)
		assert.True(t, got.Splits[0].Amount.Equal(dec("33.34")))
		assert.True(t, got.Splits[0].Percentage.Valid)
		assert.True(t, got.Splits[0].Percentage.Decimal.Equal(dec("33.34")))
	})

	t.Run("payer and participants join the group", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{alice, carol, bob}, got.Members)
	})

	t.Run("equal split has no percentage", func(t *testing.T) {
		e := &models.Expense{
			GroupID: group.ID, Description: "Taxi", Amount: dec("10.00"), PaidBy: bob, SplitType: models.SplitEqual,
			Splits: []models.Split{{UserID: alice, Amount: dec("5.00")}, {UserID: bob, Amount: dec("5.00")}},
		}
		require.NoError(t, store.CreateExpense(ctx, e))

		splits, err := store.ListSplitsByExpense(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, splits, 2)
		assert.False(t, splits[0].Percentage.Valid)
		assert.Empty(t, e.CreatedBy)
	})

	t.Run("unknown group or user", func(t *testing.T) {
		err := store.CreateExpense(ctx, &models.Expense{GroupID: "missing", Amount: dec("1"), PaidBy: alice, SplitType: models.SplitEqual})
		assert.ErrorIs(t, err, models.ErrNotFound)

		err = store.CreateExpense(ctx, &models.Expense{GroupID: group.ID, Amount: dec("1"), PaidBy: "ghost", SplitType: models.SplitEqual})
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = store.GetExpense(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = store.ListExpensesByGroup(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list by group oldest first", func(t *testing.T) {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, "Dinner", expenses[0].Description)
		assert.Equal(t, "Taxi", expenses[1].Description)
		assert.Len(t, expenses[0].Splits, 3)
	})

	t.Run("delete cascades to splits", func(t *testing.T) {
		require.NoError(t, store.DeleteExpense(ctx, expense.ID))

		splits, err := store.ListSplitsByExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Empty(t, splits)

		assert.ErrorIs(t, store.DeleteExpense(ctx, expense.ID), models.ErrNotFound)
	})
}

func TestListRecentExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createUsers(t, store, "alice")[0]

	group := &models.Group{Name: "G", Members: []string{alice}}
	require.NoError(t, store.CreateGroup(ctx, group))

	for i, desc := range []string{"first", "second", "third"} {
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID: group.ID, Description: desc, Amount: dec("1.00"), PaidBy: alice,
			SplitType: models.SplitEqual, CreatedAt: int64(100 * (i + 1)),
			Splits: []models.Split{{UserID: alice, Amount: dec("1.00")}},
		}))
	}

	recent, err := store.ListRecentExpenses(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Description)
	assert.Equal(t, "second", recent[1].Description)
}

func TestSettlementsAndLedgers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := createUsers(t, store, "alice", "bob", "carol")
	alice, bob, carol := ids[0], ids[1], ids[2]

	trip := &models.Group{Name: "Trip", Members: []string{alice, bob}}
	flat := &models.Group{Name: "Flat", Members: []string{carol}}
	require.NoError(t, store.CreateGroup(ctx, trip))
	require.NoError(t, store.CreateGroup(ctx, flat))

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		GroupID: trip.ID, Description: "Hotel", Amount: dec("200.00"), PaidBy: alice, SplitType: models.SplitEqual,
		Splits: []models.Split{{UserID: alice, Amount: dec("100.00")}, {UserID: bob, Amount: dec("100.00")}},
	}))
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		GroupID: flat.ID, Description: "Rent", Amount: dec("50.00"), PaidBy: carol, SplitType: models.SplitEqual,
		Splits: []models.Split{{UserID: carol, Amount: dec("50.00")}},
	}))

	settlement := &models.Settlement{GroupID: trip.ID, FromUserID: bob, ToUserID: alice, Amount: dec("40.50"), CreatedBy: bob, Note: "cash"}
	require.NoError(t, store.CreateSettlement(ctx, settlement))

	t.Run("settlement round trip", func(t *testing.T) {
		got, err := store.GetSettlement(ctx, settlement.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(dec("40.50")))
		assert.Equal(t, "cash", got.Note)
		assert.Equal(t, bob, got.CreatedBy)

		list, err := store.ListSettlementsByGroup(ctx, trip.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		err = store.CreateSettlement(ctx, &models.Settlement{GroupID: "missing", FromUserID: bob, ToUserID: alice, Amount: dec("1")})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("group ledger", func(t *testing.T) {
		ledger, err := store.GroupLedger(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{alice, bob}, ledger.Group.Members)
		require.Len(t, ledger.Expenses, 1)
		assert.Len(t, ledger.Expenses[0].Splits, 2)
		assert.Len(t, ledger.Settlements, 1)

		_, err = store.GroupLedger(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("user ledger covers only the user's groups", func(t *testing.T) {
		ledger, err := store.UserLedger(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, "bob", ledger.User.DisplayName)
		require.Len(t, ledger.Groups, 1)
		assert.Equal(t, trip.ID, ledger.Groups[0].ID)
		require.Len(t, ledger.Expenses, 1)
		assert.Equal(t, "Hotel", ledger.Expenses[0].Description)
		assert.Len(t, ledger.Settlements, 1)

		_, err = store.UserLedger(ctx, "ghost")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("delete settlement", func(t *testing.T) {
		require.NoError(t, store.DeleteSettlement(ctx, settlement.ID))
		_, err := store.GetSettlement(ctx, settlement.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, store.DeleteSettlement(ctx, settlement.ID), models.ErrNotFound)
	})
}
