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

// CreateGroup persists a new group and its initial members in the given order.
// Every member must be a registered user.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)",
			group.ID, group.Name, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		members, err := appendMembers(ctx, tx, group.ID, nil, group.Members, group.CreatedAt)
		if err != nil {
			return err
		}
		group.Members = members
		return nil
	})
}

// appendMembers inserts userIDs that are not already in existing, after the last
// position. It returns the resulting member list.
func appendMembers(ctx context.Context, tx *sql.Tx, groupID string, existing, userIDs []string, joinedAt int64) ([]string, error) {
	members := append([]string(nil), existing...)
	seen := make(map[string]bool, len(members)+len(userIDs))
	for _, m := range members {
		seen[m] = true
	}

	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		if _, err := getUser(ctx, tx, id); err != nil {
			return nil, err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, position, joined_at) VALUES (?, ?, ?, ?)",
			groupID, id, len(members), joinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert group member: %w", err)
		}
		seen[id] = true
		members = append(members, id)
	}
	return members, nil
}

// GetGroup retrieves a group by ID, including its members in join order.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return getGroup(ctx, s.db, groupID)
}

func getGroup(ctx context.Context, q queryer, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := q.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "group", ID: groupID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := listMembers(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func listMembers(ctx context.Context, q queryer, groupID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// ListGroups returns every group, oldest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return listGroups(ctx, s.db,
		"SELECT id, name, created_at FROM groups ORDER BY created_at, rowid")
}

// ListGroupsForUser returns the groups userID belongs to, oldest first.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	return listGroupsForUser(ctx, s.db, userID)
}

func listGroupsForUser(ctx context.Context, q queryer, userID string) ([]*models.Group, error) {
	return listGroups(ctx, q,
		`SELECT g.id, g.name, g.created_at
		 FROM groups g JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = ?
		 ORDER BY g.created_at, g.rowid`,
		userID)
}

func listGroups(ctx context.Context, q queryer, query string, args ...any) ([]*models.Group, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Members are loaded after the group cursor is closed so this also works
	// on the single connection of a transaction.
	for _, group := range groups {
		members, err := listMembers(ctx, q, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}
	return groups, nil
}

// AddGroupMembers appends users to a group. Existing members are ignored.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) (*models.Group, error) {
	var group *models.Group
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		group, err = getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		group.Members, err = appendMembers(ctx, tx, groupID, group.Members, userIDs, time.Now().Unix())
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group. Members, expenses, splits and settlements cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireAffected(res, "group", groupID)
}

// CountGroups returns the number of groups.
func (s *SQLiteStore) CountGroups(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return n, nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return &models.NotFoundError{Kind: kind, ID: id}
	}
	return nil
}
