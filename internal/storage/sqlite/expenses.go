package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/models"
)

const expenseColumns = `id, group_id, description, amount, paid_by, split_type, created_at, created_by`

// CreateExpense persists an expense and its splits in one transaction.
// The payer and every split user are added to the group if they are not members yet.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	for i := range expense.Splits {
		split := &expense.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		group, err := getGroup(ctx, tx, expense.GroupID)
		if err != nil {
			return err
		}

		involved := make([]string, 0, len(expense.Splits)+1)
		involved = append(involved, expense.PaidBy)
		for _, split := range expense.Splits {
			involved = append(involved, split.UserID)
		}
		if _, err := appendMembers(ctx, tx, group.ID, group.Members, involved, expense.CreatedAt); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.GroupID, expense.Description, expense.Amount,
			expense.PaidBy, string(expense.SplitType), expense.CreatedAt, nullString(expense.CreatedBy),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, split := range expense.Splits {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO splits (id, expense_id, user_id, amount, percentage, position) VALUES (?, ?, ?, ?, ?, ?)",
				split.ID, expense.ID, split.UserID, split.Amount, split.Percentage, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert split: %w", err)
			}
		}
		return nil
	})
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "expense", ID: expenseID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Splits, err = listSplits(ctx, s.db, expenseID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup returns a group's expenses with splits, oldest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := getGroup(ctx, s.db, groupID); err != nil {
		return nil, err
	}
	return listExpensesByGroup(ctx, s.db, groupID)
}

func listExpensesByGroup(ctx context.Context, q queryer, groupID string) ([]*models.Expense, error) {
	return listExpenses(ctx, q,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID)
}

// ListRecentExpenses returns up to limit expenses across all groups, newest first.
func (s *SQLiteStore) ListRecentExpenses(ctx context.Context, limit int) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit)
}

func listExpenses(ctx context.Context, q queryer, query string, args ...any) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		expense.Splits, err = listSplits(ctx, q, expense.ID)
		if err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// ListSplitsByExpense returns an expense's splits in the order they were computed.
func (s *SQLiteStore) ListSplitsByExpense(ctx context.Context, expenseID string) ([]models.Split, error) {
	return listSplits(ctx, s.db, expenseID)
}

func listSplits(ctx context.Context, q queryer, expenseID string) ([]models.Split, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, expense_id, user_id, amount, percentage FROM splits WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Amount, &split.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(res, "expense", expenseID)
}

func scanExpense(r rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var splitType string
	var createdBy sql.NullString
	err := r.Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.Description,
		&expense.Amount,
		&expense.PaidBy,
		&splitType,
		&expense.CreatedAt,
		&createdBy,
	)
	if err != nil {
		return nil, err
	}
	expense.SplitType = models.SplitType(splitType)
	expense.CreatedBy = createdBy.String
	return expense, nil
}
