package sqlite

import (
	"context"
	"database/sql"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/storage"
)

// GroupLedger reads a group snapshot in a single transaction, so an expense is
// seen either with all of its splits or not at all.
func (s *SQLiteStore) GroupLedger(ctx context.Context, groupID string) (*storage.GroupLedger, error) {
	ledger := &storage.GroupLedger{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if ledger.Group, err = getGroup(ctx, tx, groupID); err != nil {
			return err
		}
		if ledger.Expenses, err = listExpensesByGroup(ctx, tx, groupID); err != nil {
			return err
		}
		ledger.Settlements, err = listSettlements(ctx, tx,
			`SELECT `+settlementColumns+` FROM settlements WHERE group_id = ? ORDER BY created_at, rowid`,
			groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

// UserLedger reads everything recorded in the groups userID belongs to.
func (s *SQLiteStore) UserLedger(ctx context.Context, userID string) (*storage.UserLedger, error) {
	ledger := &storage.UserLedger{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if ledger.User, err = getUser(ctx, tx, userID); err != nil {
			return err
		}
		if ledger.Groups, err = listGroupsForUser(ctx, tx, userID); err != nil {
			return err
		}

		ledger.Expenses, err = listExpenses(ctx, tx,
			`SELECT `+expenseColumns+` FROM expenses
			 WHERE group_id IN (SELECT group_id FROM group_members WHERE user_id = ?)
			 ORDER BY created_at, rowid`,
			userID)
		if err != nil {
			return err
		}

		ledger.Settlements, err = listSettlements(ctx, tx,
			`SELECT `+settlementColumns+` FROM settlements
			 WHERE group_id IN (SELECT group_id FROM group_members WHERE user_id = ?)
			 ORDER BY created_at, rowid`,
			userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}
