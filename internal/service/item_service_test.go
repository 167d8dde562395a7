package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritanta/cartmates/internal/models"
)

func TestItemAdd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	helper := env.register(t, "Bob", "bob@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")
	_, err := env.groups.Join(ctx, group.ID, helper.User.ID)
	require.NoError(t, err)

	t.Run("quantity defaults to one", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Milk"})
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, "Alice", item.CreatedByUsername)
		assert.False(t, item.IsComplete)
	})

	t.Run("assigning at creation records two activities", func(t *testing.T) {
		scoped := env.sharedGroup(t, owner.User.ID, "Assignment Check")
		_, err := env.groups.Join(ctx, scoped.ID, helper.User.ID)
		require.NoError(t, err)

		item, err := env.items.Add(ctx, scoped.ID, owner.User.ID, AddItemParams{
			Name: "Tent", Quantity: 2, AssignedTo: helper.User.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Bob", item.AssignedToUsername)

		activities := env.groupActivities(t, scoped.ID)
		assert.Equal(t, 1, countActions(activities, models.ActionAddedItem))
		require.Equal(t, 1, countActions(activities, models.ActionAssignedItem))
		for _, a := range activities {
			if a.Action == models.ActionAssignedItem {
				assert.Equal(t, "Tent to Bob", a.ItemName)
			}
		}
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "   "})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		_, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Rope", Quantity: -2})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("non-members cannot add", func(t *testing.T) {
		outsider := env.register(t, "Carol", "carol@example.com")
		_, err := env.items.Add(ctx, group.ID, outsider.User.ID, AddItemParams{Name: "Intrusion"})
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})
}

func TestItemSetCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")
	item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Firewood"})
	require.NoError(t, err)

	t.Run("completing emits exactly one marked_complete", func(t *testing.T) {
		updated, err := env.items.SetCompletion(ctx, item.ID, owner.User.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.IsComplete)

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, 1, countActions(activities, models.ActionMarkedComplete))
		assert.Equal(t, 0, countActions(activities, models.ActionEditedItem))
	})

	t.Run("reopening emits marked_incomplete", func(t *testing.T) {
		updated, err := env.items.SetCompletion(ctx, item.ID, owner.User.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.IsComplete)

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, 1, countActions(activities, models.ActionMarkedIncomplete))
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := env.items.SetCompletion(ctx, "missing-item", owner.User.ID, true)
		var nerr *models.NotFoundError
		require.ErrorAs(t, err, &nerr)
	})
}

func TestItemEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	helper := env.register(t, "Bob", "bob@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")
	_, err := env.groups.Join(ctx, group.ID, helper.User.ID)
	require.NoError(t, err)

	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	t.Run("rename and quantity change emit a single edited_item", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Tent"})
		require.NoError(t, err)
		before := len(env.groupActivities(t, group.ID))

		updated, err := env.items.Edit(ctx, item.ID, owner.User.ID, ItemPatch{
			Name: strPtr("Big Tent"), Quantity: intPtr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, "Big Tent", updated.Name)
		assert.Equal(t, 3, updated.Quantity)

		activities := env.groupActivities(t, group.ID)
		require.Len(t, activities, before+1)
		assert.Equal(t, models.ActionEditedItem, activities[0].Action)
		assert.Equal(t, `renamed "Tent" to "Big Tent"`, activities[0].ItemName)
	})

	t.Run("assigning records assigned_item", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Stove"})
		require.NoError(t, err)

		updated, err := env.items.Edit(ctx, item.ID, owner.User.ID, ItemPatch{
			AssignedTo: strPtr(helper.User.ID),
		})
		require.NoError(t, err)
		assert.Equal(t, helper.User.ID, updated.AssignedTo)
		assert.Equal(t, "Bob", updated.AssignedToUsername)

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, models.ActionAssignedItem, activities[0].Action)
		assert.Equal(t, "Stove to Bob", activities[0].ItemName)
	})

	t.Run("clearing the assignee records unassigned_item", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{
			Name: "Lantern", AssignedTo: helper.User.ID,
		})
		require.NoError(t, err)

		updated, err := env.items.Edit(ctx, item.ID, owner.User.ID, ItemPatch{AssignedTo: strPtr("")})
		require.NoError(t, err)
		assert.Empty(t, updated.AssignedTo)

		activities := env.groupActivities(t, group.ID)
		assert.Equal(t, models.ActionUnassignedItem, activities[0].Action)
		assert.Equal(t, "Lantern", activities[0].ItemName)
	})

	t.Run("no-op edit emits nothing", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Rope", Quantity: 2})
		require.NoError(t, err)
		before := len(env.groupActivities(t, group.ID))

		_, err = env.items.Edit(ctx, item.ID, owner.User.ID, ItemPatch{
			Name: strPtr("Rope"), Quantity: intPtr(2),
		})
		require.NoError(t, err)
		assert.Len(t, env.groupActivities(t, group.ID), before)
	})

	t.Run("edited name must not be blank", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Mugs"})
		require.NoError(t, err)

		_, err = env.items.Edit(ctx, item.ID, owner.User.ID, ItemPatch{Name: strPtr("  ")})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestItemDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")

	t.Run("delete records the item name", func(t *testing.T) {
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Cooler"})
		require.NoError(t, err)

		require.NoError(t, env.items.Delete(ctx, item.ID, owner.User.ID))

		gone, err := env.store.GetItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		activities := env.groupActivities(t, group.ID)
		require.Equal(t, 1, countActions(activities, models.ActionDeletedItem))
		assert.Equal(t, "Cooler", activities[0].ItemName)
	})

	t.Run("non-members cannot delete", func(t *testing.T) {
		outsider := env.register(t, "Carol", "carol@example.com")
		item, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Axe"})
		require.NoError(t, err)

		err = env.items.Delete(ctx, item.ID, outsider.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})
}

func TestItemList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "Alice", "alice@example.com")
	group := env.sharedGroup(t, owner.User.ID, "Camping Trip")

	first, err := env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Done Early"})
	require.NoError(t, err)
	_, err = env.items.Add(ctx, group.ID, owner.User.ID, AddItemParams{Name: "Still Open"})
	require.NoError(t, err)
	_, err = env.items.SetCompletion(ctx, first.ID, owner.User.ID, true)
	require.NoError(t, err)

	t.Run("incomplete items come first", func(t *testing.T) {
		items, err := env.items.List(ctx, group.ID, owner.User.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Still Open", items[0].Name)
		assert.Equal(t, "Done Early", items[1].Name)
	})

	t.Run("non-members cannot list", func(t *testing.T) {
		outsider := env.register(t, "Carol", "carol@example.com")
		_, err := env.items.List(ctx, group.ID, outsider.User.ID)
		var aerr *models.AuthorizationError
		require.ErrorAs(t, err, &aerr)
	})
}
