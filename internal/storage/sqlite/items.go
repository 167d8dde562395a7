package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kritanta/cartmates/internal/models"
)

const itemSelect = `
	SELECT i.id, i.group_id, i.name, i.quantity, i.is_complete,
		COALESCE(i.assigned_to, ''), i.created_by, i.created_at,
		COALESCE(a.username, ''), COALESCE(c.username, '')
	FROM items i
	LEFT JOIN users a ON a.id = i.assigned_to
	LEFT JOIN users c ON c.id = i.created_by
`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(
		&item.ID,
		&item.GroupID,
		&item.Name,
		&item.Quantity,
		&item.IsComplete,
		&item.AssignedTo,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.AssignedToUsername,
		&item.CreatedByUsername,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Item not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return item, nil
}

// CreateItem persists a new item.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, group_id, name, quantity, is_complete, assigned_to, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.GroupID, item.Name, item.Quantity, item.IsComplete,
		nullable(item.AssignedTo), item.CreatedBy, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetItem retrieves an item with assignee/creator usernames resolved.
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx, itemSelect+` WHERE i.id = ?`, id)
	return scanItem(row)
}

// ListItemsByGroup returns the group's items, incomplete before complete,
// stable by creation order within each bucket.
func (s *SQLiteStore) ListItemsByGroup(ctx context.Context, groupID string) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		itemSelect+` WHERE i.group_id = ? ORDER BY i.is_complete ASC, i.created_at ASC, i.rowid ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// UpdateItem persists changes to an existing item. Last write wins; there is
// no version check.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, quantity = ?, is_complete = ?, assigned_to = ?
		 WHERE id = ?`,
		item.Name, item.Quantity, item.IsComplete, nullable(item.AssignedTo), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("item not found: %s", item.ID)
	}
	return nil
}

// DeleteItem removes an item.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
