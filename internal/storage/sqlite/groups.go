package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kritanta/cartmates/internal/models"
)

// CreateGroup persists a group and its initial member set in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, owner_id, is_personal, invite_token, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.OwnerID, group.IsPersonal,
		nullable(group.InviteToken), group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, m := range group.Members {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id) VALUES (?, ?)`,
			group.ID, m.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID with members resolved to usernames.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	return s.getGroupWhere(ctx, "g.id = ?", id)
}

// GetGroupByInviteToken retrieves a group by its invite token.
func (s *SQLiteStore) GetGroupByInviteToken(ctx context.Context, token string) (*models.Group, error) {
	if token == "" {
		return nil, nil
	}
	return s.getGroupWhere(ctx, "g.invite_token = ?", token)
}

func (s *SQLiteStore) getGroupWhere(ctx context.Context, where string, arg any) (*models.Group, error) {
	group := &models.Group{}
	var inviteToken sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT g.id, g.name, g.owner_id, g.is_personal, g.invite_token, g.created_at
		 FROM groups g WHERE `+where, arg,
	).Scan(&group.ID, &group.Name, &group.OwnerID, &group.IsPersonal, &inviteToken, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Group not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.InviteToken = inviteToken.String

	members, err := s.groupMembers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// groupMembers resolves the member set to username-bearing records. Members
// whose user row has been deleted are kept with an empty username so the set
// still reflects membership.
func (s *SQLiteStore) groupMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gm.user_id, COALESCE(u.username, ''), COALESCE(u.email, '')
		 FROM group_members gm
		 LEFT JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = ?
		 ORDER BY gm.rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Username, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// ListGroupsByMember returns every group the user belongs to.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.listGroups(ctx,
		`SELECT g.id FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = ?
		 ORDER BY g.created_at, g.id`,
		userID,
	)
}

// ListGroupsByOwner returns every group the user owns.
func (s *SQLiteStore) ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error) {
	return s.listGroups(ctx,
		`SELECT id FROM groups WHERE owner_id = ? ORDER BY created_at, id`,
		ownerID,
	)
}

func (s *SQLiteStore) listGroups(ctx context.Context, query string, arg any) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		if group != nil {
			groups = append(groups, group)
		}
	}

	return groups, nil
}

// RenameGroup updates a group's name.
func (s *SQLiteStore) RenameGroup(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE groups SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("group not found: %s", id)
	}
	return nil
}

// AddMember inserts the user into the member set. The composite primary key
// makes the insert the atomic check-and-add: a second insert for the same
// pair affects zero rows.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES (?, ?)
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add member: %w", err)
	}
	return n > 0, nil
}

// RemoveMember deletes the user from the member set.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", err)
	}
	return n > 0, nil
}

// RemoveUserFromAllGroups deletes the user from every member set.
func (s *SQLiteStore) RemoveUserFromAllGroups(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to remove user from groups: %w", err)
	}
	return nil
}

// DeleteGroup removes the group and everything it owns. Deletion order is
// items, then activities, then the group row, all in one transaction.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE group_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE group_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("group not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
