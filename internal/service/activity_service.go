package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kritanta/cartmates/internal/models"
	"github.com/kritanta/cartmates/internal/storage"
)

const (
	// RetentionWindow is how long activity records live before the sweep
	// removes them.
	RetentionWindow = 7 * 24 * time.Hour

	// RecentLimit caps the recent-activity feed.
	RecentLimit = 3

	// WindowLimit caps the full seven-day feed.
	WindowLimit = 50

	// sweepInterval is how often the retention janitor runs.
	sweepInterval = time.Hour
)

// ActivityService is the append-only recorder for group events.
type ActivityService struct {
	store storage.Store
}

// NewActivityService creates a new ActivityService with the given storage backend.
func NewActivityService(store storage.Store) *ActivityService {
	return &ActivityService{store: store}
}

// Record appends an activity entry. Unknown actions are rejected with a
// ValidationError. Storage failures are logged and swallowed: recording is
// best-effort telemetry and must never fail or roll back the mutation that
// triggered it.
func (s *ActivityService) Record(ctx context.Context, userID, username string, action models.Action, groupID, detail string) error {
	if !action.Valid() {
		return models.NewValidationError("unknown activity action: %s", action)
	}

	activity := &models.Activity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Action:    action,
		ItemName:  detail,
		GroupID:   groupID,
		CreatedAt: time.Now().Unix(),
	}

	if err := s.store.CreateActivity(ctx, activity); err != nil {
		slog.Warn("Failed to record activity",
			"action", action,
			"group_id", groupID,
			"user_id", userID,
			"error", err,
		)
	}

	return nil
}

// ListRecent returns the last few activities for the group, newest first.
// The requester must be a member.
func (s *ActivityService) ListRecent(ctx context.Context, groupID, requesterID string) ([]*models.Activity, error) {
	if err := s.requireMember(ctx, groupID, requesterID); err != nil {
		return nil, err
	}
	return s.store.ListActivities(ctx, groupID, 0, RecentLimit)
}

// ListWindow returns the group's activities from the retention window,
// newest first. The requester must be a member. The cutoff filter means a
// pending sweep never leaks expired records.
func (s *ActivityService) ListWindow(ctx context.Context, groupID, requesterID string) ([]*models.Activity, error) {
	if err := s.requireMember(ctx, groupID, requesterID); err != nil {
		return nil, err
	}
	since := time.Now().Add(-RetentionWindow).Unix()
	return s.store.ListActivities(ctx, groupID, since, WindowLimit)
}

func (s *ActivityService) requireMember(ctx context.Context, groupID, requesterID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return models.NewNotFoundError("group")
	}
	if !group.HasMember(requesterID) {
		return models.NewAuthorizationError("not a member of this group")
	}
	return nil
}

// RunRetentionSweep purges expired records on a ticker until the context is
// cancelled. Intended to run as a background goroutine from the composition
// root.
func (s *ActivityService) RunRetentionSweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	// Sweep once at startup so a long-stopped server catches up immediately.
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ActivityService) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-RetentionWindow).Unix()
	n, err := s.store.PurgeActivitiesBefore(ctx, cutoff)
	if err != nil {
		slog.Warn("Activity retention sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Activity retention sweep completed", "purged", n)
	}
}
