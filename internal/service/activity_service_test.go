package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritanta/cartmates/internal/models"
)

func TestActivityRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")

	t.Run("known actions are persisted", func(t *testing.T) {
		err := env.activities.Record(ctx, owner.User.ID, "Alice", models.ActionAddedItem, group.ID, "Milk")
		require.NoError(t, err)

		activities := env.groupActivities(t, group.ID)
		require.Len(t, activities, 1)
		assert.Equal(t, models.ActionAddedItem, activities[0].Action)
		assert.Equal(t, "Alice", activities[0].Username)
		assert.Equal(t, "Milk", activities[0].ItemName)
	})

	t.Run("unknown actions are rejected", func(t *testing.T) {
		err := env.activities.Record(ctx, owner.User.ID, "Alice", models.Action("exploded"), group.ID, "")
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, env.groupActivities(t, group.ID), 1)
	})
}

func TestActivityFeeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")

	writeAt := func(action models.Action, at time.Time) {
		t.Helper()
		err := env.store.CreateActivity(ctx, &models.Activity{
			ID: uuid.New().String(), GroupID: group.ID, UserID: owner.User.ID,
			Username: "Alice", Action: action, CreatedAt: at.Unix(),
		})
		require.NoError(t, err)
	}

	now := time.Now()
	writeAt(models.ActionAddedItem, now.Add(-8*24*time.Hour))
	writeAt(models.ActionJoinedGroup, now.Add(-3*time.Hour))
	writeAt(models.ActionMarkedComplete, now.Add(-2*time.Hour))
	writeAt(models.ActionEditedItem, now.Add(-1*time.Hour))
	writeAt(models.ActionDeletedItem, now.Add(-30*time.Minute))

	t.Run("window excludes records older than the retention window", func(t *testing.T) {
		activities, err := env.activities.ListWindow(ctx, group.ID, owner.User.ID)
		require.NoError(t, err)
		require.Len(t, activities, 4)
		for _, a := range activities {
			assert.NotEqual(t, models.ActionAddedItem, a.Action)
		}
	})

	t.Run("recent feed returns the newest three", func(t *testing.T) {
		activities, err := env.activities.ListRecent(ctx, group.ID, owner.User.ID)
		require.NoError(t, err)
		require.Len(t, activities, RecentLimit)
		assert.Equal(t, models.ActionDeletedItem, activities[0].Action)
		assert.Equal(t, models.ActionEditedItem, activities[1].Action)
		assert.Equal(t, models.ActionMarkedComplete, activities[2].Action)
	})

	t.Run("non-members cannot read the feed", func(t *testing.T) {
		outsider := env.register(t, "Carol", "carol@example.com")
		_, err := env.activities.ListWindow(ctx, group.ID, outsider.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)

		_, err = env.activities.ListRecent(ctx, group.ID, outsider.User.ID)
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := env.activities.ListWindow(ctx, "missing-group", owner.User.ID)
		var nerr *models.NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}
