package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kritanta/cartmates/internal/models"
	"github.com/kritanta/cartmates/internal/storage"
)

// AddItemParams are the inputs for ItemService.Add.
type AddItemParams struct {
	Name       string
	Quantity   int
	AssignedTo string
}

// ItemPatch carries the fields of an edit. Nil means "leave unchanged"; for
// AssignedTo a pointer to the empty string means "clear the assignment".
type ItemPatch struct {
	Name       *string
	Quantity   *int
	AssignedTo *string
}

// ItemService is the ledger of list items scoped to a group. Membership, not
// ownership, suffices for every item mutation: any member can edit, complete,
// or reassign any item.
type ItemService struct {
	store    storage.Store
	activity *ActivityService
}

// NewItemService creates a new ItemService with the given storage backend.
func NewItemService(store storage.Store, activity *ActivityService) *ItemService {
	return &ItemService{store: store, activity: activity}
}

// List returns the group's items, incomplete before complete, stable by
// creation order. The requester must be a member.
func (s *ItemService) List(ctx context.Context, groupID, requesterID string) ([]*models.Item, error) {
	if _, err := s.requireMembership(ctx, groupID, requesterID); err != nil {
		return nil, err
	}
	return s.store.ListItemsByGroup(ctx, groupID)
}

// Get retrieves a single item. The requester must be a member of its group.
func (s *ItemService) Get(ctx context.Context, itemID, requesterID string) (*models.Item, error) {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMembership(ctx, item.GroupID, requesterID); err != nil {
		return nil, err
	}
	return item, nil
}

// Add creates an item in the group and emits added_item. When the item is
// assigned at creation and the assignee resolves to a real user, a second
// assigned_item activity is emitted.
func (s *ItemService) Add(ctx context.Context, groupID, requesterID string, params AddItemParams) (*models.Item, error) {
	requester, err := s.requireMembership(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, models.NewValidationError("item name is required")
	}
	quantity := params.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, models.NewValidationError("quantity must be at least 1")
	}

	item := &models.Item{
		ID:         uuid.New().String(),
		GroupID:    groupID,
		Name:       name,
		Quantity:   quantity,
		AssignedTo: params.AssignedTo,
		CreatedBy:  requesterID,
		CreatedAt:  time.Now().Unix(),
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.record(ctx, requester, models.ActionAddedItem, groupID, name)

	if params.AssignedTo != "" {
		if assignee, err := s.store.GetUserByID(ctx, params.AssignedTo); err == nil && assignee != nil {
			s.record(ctx, requester, models.ActionAssignedItem, groupID,
				fmt.Sprintf("%s to %s", name, assignee.Username))
			item.AssignedToUsername = assignee.Username
		}
	}
	item.CreatedByUsername = requester.Username

	slog.Info("Item added", "item_id", item.ID, "group_id", groupID, "user_id", requesterID)
	return item, nil
}

// SetCompletion is the pure toggle: it sets the completion flag and emits
// exactly one marked_complete or marked_incomplete activity, regardless of
// the item's other fields.
func (s *ItemService) SetCompletion(ctx context.Context, itemID, requesterID string, complete bool) (*models.Item, error) {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	requester, err := s.requireMembership(ctx, item.GroupID, requesterID)
	if err != nil {
		return nil, err
	}

	item.IsComplete = complete
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	action := models.ActionMarkedIncomplete
	if complete {
		action = models.ActionMarkedComplete
	}
	s.record(ctx, requester, action, item.GroupID, item.Name)

	slog.Info("Item completion set", "item_id", itemID, "complete", complete, "user_id", requesterID)
	return s.store.GetItem(ctx, itemID)
}

// Edit applies name/quantity changes and an assignment delta. Per call it
// emits at most one edited_item activity (covering name and quantity) and at
// most one assignment activity: unassigned_item when the assignee is
// cleared, assigned_item when set or changed, nothing when untouched.
// Edits are last-write-wins; there is no version check.
func (s *ItemService) Edit(ctx context.Context, itemID, requesterID string, patch ItemPatch) (*models.Item, error) {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	requester, err := s.requireMembership(ctx, item.GroupID, requesterID)
	if err != nil {
		return nil, err
	}

	edited := false
	editNote := ""

	if patch.Name != nil {
		newName := strings.TrimSpace(*patch.Name)
		if newName == "" {
			return nil, models.NewValidationError("item name is required")
		}
		if newName != item.Name {
			editNote = fmt.Sprintf("renamed %q to %q", item.Name, newName)
			item.Name = newName
			edited = true
		}
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, models.NewValidationError("quantity must be at least 1")
		}
		if *patch.Quantity != item.Quantity {
			item.Quantity = *patch.Quantity
			edited = true
		}
	}

	var assignAction models.Action
	assignDetail := ""
	if patch.AssignedTo != nil && *patch.AssignedTo != item.AssignedTo {
		if *patch.AssignedTo == "" {
			assignAction = models.ActionUnassignedItem
			assignDetail = item.Name
		} else if assignee, err := s.store.GetUserByID(ctx, *patch.AssignedTo); err == nil && assignee != nil {
			assignAction = models.ActionAssignedItem
			assignDetail = fmt.Sprintf("%s to %s", item.Name, assignee.Username)
		}
		item.AssignedTo = *patch.AssignedTo
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if edited {
		detail := item.Name
		if editNote != "" {
			detail = editNote
		}
		s.record(ctx, requester, models.ActionEditedItem, item.GroupID, detail)
	}
	if assignAction != "" {
		s.record(ctx, requester, assignAction, item.GroupID, assignDetail)
	}

	slog.Info("Item edited", "item_id", itemID, "user_id", requesterID)
	return s.store.GetItem(ctx, itemID)
}

// Delete removes an item and emits deleted_item with the name captured
// before deletion.
func (s *ItemService) Delete(ctx context.Context, itemID, requesterID string) error {
	item, err := s.requireItem(ctx, itemID)
	if err != nil {
		return err
	}
	requester, err := s.requireMembership(ctx, item.GroupID, requesterID)
	if err != nil {
		return err
	}

	name := item.Name
	groupID := item.GroupID

	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	s.record(ctx, requester, models.ActionDeletedItem, groupID, name)

	slog.Info("Item deleted", "item_id", itemID, "group_id", groupID, "user_id", requesterID)
	return nil
}

func (s *ItemService) requireItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, models.NewNotFoundError("item")
	}
	return item, nil
}

func (s *ItemService) requireMembership(ctx context.Context, groupID, requesterID string) (*models.User, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, models.NewNotFoundError("group")
	}
	if !group.HasMember(requesterID) {
		return nil, models.NewAuthorizationError("not a member of this group")
	}
	user, err := s.store.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user")
	}
	return user, nil
}

func (s *ItemService) record(ctx context.Context, user *models.User, action models.Action, groupID, detail string) {
	if err := s.activity.Record(ctx, user.ID, user.Username, action, groupID, detail); err != nil {
		slog.Warn("Activity rejected", "action", action, "error", err)
	}
}
