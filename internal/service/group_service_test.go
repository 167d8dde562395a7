package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritanta/cartmates/internal/models"
)

func TestGroupCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")

	t.Run("owner is the sole initial member", func(t *testing.T) {
		group := env.sharedGroup(t, owner.User.ID, "Camping Trip")

		require.Len(t, group.Members, 1)
		assert.Equal(t, owner.User.ID, group.Members[0].ID)
		assert.Equal(t, owner.User.ID, group.OwnerID)
		assert.NotEmpty(t, group.InviteToken)
		assert.False(t, group.IsPersonal)
	})

	t.Run("creation emits no activity", func(t *testing.T) {
		group := env.sharedGroup(t, owner.User.ID, "Quiet Group")
		assert.Empty(t, env.groupActivities(t, group.ID))
	})

	t.Run("shared group name must meet minimum length", func(t *testing.T) {
		_, err := env.groups.Create(ctx, owner.User.ID, "ab", false)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("personal group carries no invite token", func(t *testing.T) {
		personal, err := env.store.GetGroup(ctx, owner.PersonalGroupID)
		require.NoError(t, err)
		require.NotNil(t, personal)
		assert.True(t, personal.IsPersonal)
		assert.Empty(t, personal.InviteToken)
	})
}

func TestGroupJoin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	joiner := env.register(t, "Bob", "bob@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")

	t.Run("join adds member and records joined_group", func(t *testing.T) {
		joined, err := env.groups.Join(ctx, group.ID, joiner.User.ID)
		require.NoError(t, err)
		assert.Len(t, joined.Members, 2)
		assert.True(t, joined.HasMember(joiner.User.ID))

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, 1, countActions(activities, models.ActionJoinedGroup))
	})

	t.Run("joining twice is rejected without changing membership", func(t *testing.T) {
		_, err := env.groups.Join(ctx, group.ID, joiner.User.ID)
		require.ErrorIs(t, err, models.ErrAlreadyMember)

		current, err := env.store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, current.Members, 2)

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, 1, countActions(activities, models.ActionJoinedGroup))
	})

	t.Run("personal groups cannot be joined", func(t *testing.T) {
		_, err := env.groups.Join(ctx, owner.PersonalGroupID, joiner.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := env.groups.Join(ctx, "missing-group", joiner.User.ID)
		var nerr *models.NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}

func TestGroupRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	member := env.register(t, "Bob", "bob@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Old Name")
	_, err := env.groups.Join(ctx, group.ID, member.User.ID)
	require.NoError(t, err)

	t.Run("only the owner may rename", func(t *testing.T) {
		_, err := env.groups.Rename(ctx, group.ID, member.User.ID, "Hijacked")
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("rename persists and records old and new names", func(t *testing.T) {
		renamed, err := env.groups.Rename(ctx, group.ID, owner.User.ID, "New Name")
		require.NoError(t, err)
		assert.Equal(t, "New Name", renamed.Name)

		activities := env.groupActivities(t, group.ID)
		require.Equal(t, 1, countActions(activities, models.ActionEditedGroupName))
		assert.Equal(t, `"Old Name" to "New Name"`, activities[0].ItemName)
	})

	t.Run("personal groups cannot be renamed", func(t *testing.T) {
		_, err := env.groups.Rename(ctx, owner.PersonalGroupID, owner.User.ID, "Renamed")
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})
}

func TestGroupLeave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	member := env.register(t, "Bob", "bob@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")
	_, err := env.groups.Join(ctx, group.ID, member.User.ID)
	require.NoError(t, err)

	t.Run("owner cannot leave", func(t *testing.T) {
		err := env.groups.Leave(ctx, group.ID, owner.User.ID)
		require.ErrorIs(t, err, models.ErrOwnerCannotLeave)
	})

	t.Run("member leaves and left_group is recorded", func(t *testing.T) {
		require.NoError(t, env.groups.Leave(ctx, group.ID, member.User.ID))

		current, err := env.store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.False(t, current.HasMember(member.User.ID))

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, 1, countActions(activities, models.ActionLeftGroup))
	})

	t.Run("leaving a group you are not in", func(t *testing.T) {
		err := env.groups.Leave(ctx, group.ID, member.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})
}

func TestGroupRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	member := env.register(t, "Bob", "bob@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")
	_, err := env.groups.Join(ctx, group.ID, member.User.ID)
	require.NoError(t, err)

	t.Run("only the owner may remove members", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, group.ID, member.User.ID, owner.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("owner cannot remove self", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, group.ID, owner.User.ID, owner.User.ID)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("removal records the removed username", func(t *testing.T) {
		updated, err := env.groups.RemoveMember(ctx, group.ID, owner.User.ID, member.User.ID)
		require.NoError(t, err)
		assert.False(t, updated.HasMember(member.User.ID))
		assert.True(t, updated.HasMember(owner.User.ID))

		activities := env.groupActivities(t, group.ID)
		require.Equal(t, 1, countActions(activities, models.ActionRemovedMember))
		assert.Equal(t, "Bob", activities[0].ItemName)
	})

	t.Run("removing a non-member", func(t *testing.T) {
		_, err := env.groups.RemoveMember(ctx, group.ID, owner.User.ID, member.User.ID)
		var nerr *models.NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}

func TestGroupDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	member := env.register(t, "Bob", "bob@example.com")

	t.Run("only the owner may delete", func(t *testing.T) {
		group := env.sharedGroup(t, owner.User.ID, "Protected")
		err := env.groups.Delete(ctx, group.ID, member.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("personal groups cannot be deleted", func(t *testing.T) {
		err := env.groups.Delete(ctx, owner.PersonalGroupID, owner.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})

	t.Run("delete removes items and activities with the group", func(t *testing.T) {
		group := env.sharedGroup(t, owner.User.ID, "Doomed")
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Milk"})
		require.NoError(t, err)
		require.NotEmpty(t, env.groupActivities(t, group.ID))

		require.NoError(t, env.groups.Delete(ctx, group.ID, owner.User.ID))

		gone, err := env.store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		goneItem, err := env.store.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, goneItem)

		assert.Empty(t, env.groupActivities(t, group.ID))
	})
}
