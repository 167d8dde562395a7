package sqlite

import (
	"context"
	"fmt"

	"github.com/kritanta/cartmates/internal/models"
)

// CreateActivity appends an activity record.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (id, group_id, user_id, username, action, item_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.GroupID, activity.UserID, activity.Username,
		string(activity.Action), activity.ItemName, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// ListActivities returns the group's activities created at or after since,
// newest first, capped at limit. A zero since means no lower bound.
func (s *SQLiteStore) ListActivities(ctx context.Context, groupID string, since int64, limit int) ([]*models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, user_id, username, action, item_name, created_at
		 FROM activities
		 WHERE group_id = ? AND created_at >= ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		groupID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		a := &models.Activity{}
		var action string
		if err := rows.Scan(&a.ID, &a.GroupID, &a.UserID, &a.Username, &action, &a.ItemName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Action = models.Action(action)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

// PurgeActivitiesBefore deletes records created before the cutoff.
func (s *SQLiteStore) PurgeActivitiesBefore(ctx context.Context, cutoff int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM activities WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge activities: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge activities: %w", err)
	}
	return n, nil
}
