// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
)

// GroupLedger is a consistent snapshot of everything that affects a group's balances.
type GroupLedger struct {
	Group       *models.Group
	Expenses    []*models.Expense // with Splits, oldest first
	Settlements []*models.Settlement
}

// UserLedger is a consistent snapshot of a user's activity across all of their groups.
type UserLedger struct {
	User        *models.User
	Groups      []*models.Group
	Expenses    []*models.Expense // with Splits, oldest first
	Settlements []*models.Settlement
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Lookups of missing records return a *models.NotFoundError.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore
	SettlementStore

	// GroupLedger reads the group, its expenses with splits and its settlements
	// in one read transaction.
	GroupLedger(ctx context.Context, groupID string) (*GroupLedger, error)

	// UserLedger reads the user, their groups and every expense and settlement
	// in those groups in one read transaction.
	UserLedger(ctx context.Context, userID string) (*UserLedger, error)

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered users.
type UserStore interface {
	// CreateUser inserts a user. A duplicate email is reported as a *models.ValidationError.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID. Unknown IDs are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// GroupStore persists groups and their ordered membership.
type GroupStore interface {
	// CreateGroup persists the group and its initial members in order.
	// ID and CreatedAt are assigned when empty.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers appends users that are not members yet, keeping join order.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (*models.Group, error)

	// DeleteGroup removes the group with its members, expenses and settlements.
	DeleteGroup(ctx context.Context, groupID string) error
	CountGroups(ctx context.Context) (int, error)
}

// ExpenseStore persists expenses together with their splits.
type ExpenseStore interface {
	// CreateExpense writes the expense and all of its splits atomically.
	// Expense and split IDs and CreatedAt are assigned when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	ListSplitsByExpense(ctx context.Context, expenseID string) ([]models.Split, error)

	// DeleteExpense removes the expense and, by cascade, its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListRecentExpenses returns up to limit expenses, newest first.
	ListRecentExpenses(ctx context.Context, limit int) ([]*models.Expense, error)
}

// SettlementStore persists recorded payments between members.
type SettlementStore interface {
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error
}
