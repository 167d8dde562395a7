package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kritanta/cartmates/internal/auth"
	"github.com/kritanta/cartmates/internal/models"
	"github.com/kritanta/cartmates/internal/storage"
)

// minGroupNameLength applies to shared groups; personal group names are
// generated and exempt.
const minGroupNameLength = 3

// GroupService manages the group lifecycle: create, read, join, leave,
// rename, remove-member, delete. Every mutation except creation and deletion
// emits an activity record.
type GroupService struct {
	store    storage.Store
	activity *ActivityService
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, activity *ActivityService) *GroupService {
	return &GroupService{store: store, activity: activity}
}

// Create creates a new group owned by ownerID with the owner as the sole
// member. Shared groups are issued a unique invite token; personal groups
// carry none. Group creation itself emits no activity.
func (s *GroupService) Create(ctx context.Context, ownerID, name string, isPersonal bool) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if !isPersonal && len(name) < minGroupNameLength {
		return nil, models.NewValidationError("group name must be at least %d characters", minGroupNameLength)
	}

	owner, err := s.requireUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		ID:         uuid.New().String(),
		Name:       name,
		OwnerID:    ownerID,
		IsPersonal: isPersonal,
		Members: []models.Member{
			{ID: owner.ID, Username: owner.Username, Email: owner.Email},
		},
		CreatedAt: time.Now().Unix(),
	}

	if !isPersonal {
		token, err := auth.GenerateToken()
		if err != nil {
			return nil, err
		}
		group.InviteToken = token
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID, "owner_id", ownerID, "personal", isPersonal)
	return group, nil
}

// Get retrieves a group. The requester must be a member.
func (s *GroupService) Get(ctx context.Context, groupID, requesterID string) (*models.Group, error) {
	group, err := s.requireGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(requesterID) {
		return nil, models.NewAuthorizationError("not authorized to view this group")
	}
	return group, nil
}

// List returns every group the user belongs to, members resolved.
func (s *GroupService) List(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}

// Rename changes a shared group's name. Only the owner may rename, personal
// groups cannot be renamed, and the new name must meet the length rule.
// Emits edited_group_name with an "<old>" to "<new>" payload.
func (s *GroupService) Rename(ctx context.Context, groupID, requesterID, newName string) (*models.Group, error) {
	newName = strings.TrimSpace(newName)
	if len(newName) < minGroupNameLength {
		return nil, models.NewValidationError("group name must be at least %d characters", minGroupNameLength)
	}

	group, err := s.requireGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != requesterID {
		return nil, models.NewAuthorizationError("only the owner can rename this group")
	}
	if group.IsPersonal {
		return nil, models.NewAuthorizationError("personal groups cannot be renamed")
	}

	oldName := group.Name
	if err := s.store.RenameGroup(ctx, groupID, newName); err != nil {
		return nil, err
	}
	group.Name = newName

	s.recordAs(ctx, requesterID, models.ActionEditedGroupName, groupID,
		fmt.Sprintf("%q to %q", oldName, newName))

	slog.Info("Group renamed", "group_id", groupID, "old", oldName, "new", newName)
	return group, nil
}

// Join adds the user to the group's member set and emits joined_group.
// Joining twice yields ErrAlreadyMember with membership unchanged; the
// insert is a single atomic set operation, so concurrent joins for the same
// pair cannot duplicate membership.
func (s *GroupService) Join(ctx context.Context, groupID, userID string) (*models.Group, error) {
	group, err := s.requireGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.IsPersonal {
		return nil, models.NewAuthorizationError("personal groups cannot be joined")
	}

	added, err := s.store.AddMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.ErrAlreadyMember
	}

	s.recordAs(ctx, userID, models.ActionJoinedGroup, groupID, "")

	slog.Info("User joined group", "group_id", groupID, "user_id", userID)
	return s.store.GetGroup(ctx, groupID)
}

// RemoveMember removes targetUserID from the group. Only the owner may
// remove members; owners remove themselves by deleting the group, not here.
// Emits removed_member with the removed username.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, requesterID, targetUserID string) (*models.Group, error) {
	group, err := s.requireGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != requesterID {
		return nil, models.NewAuthorizationError("only the owner can remove members")
	}
	if targetUserID == requesterID {
		return nil, models.NewValidationError("owners cannot remove themselves, delete the group instead")
	}
	if !group.HasMember(targetUserID) {
		return nil, models.NewNotFoundError("member")
	}

	removedName := ""
	for _, m := range group.Members {
		if m.ID == targetUserID {
			removedName = m.Username
			break
		}
	}

	if _, err := s.store.RemoveMember(ctx, groupID, targetUserID); err != nil {
		return nil, err
	}

	s.recordAs(ctx, requesterID, models.ActionRemovedMember, groupID, removedName)

	slog.Info("Member removed", "group_id", groupID, "removed_user_id", targetUserID)
	return s.store.GetGroup(ctx, groupID)
}

// Leave removes the user from the group. Owners cannot leave; they must
// delete the group instead. Emits left_group.
func (s *GroupService) Leave(ctx context.Context, groupID, userID string) error {
	group, err := s.requireGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == userID {
		return models.ErrOwnerCannotLeave
	}

	removed, err := s.store.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewAuthorizationError("not a member of this group")
	}

	s.recordAs(ctx, userID, models.ActionLeftGroup, groupID, "")

	slog.Info("User left group", "group_id", groupID, "user_id", userID)
	return nil
}

// Delete removes the group and everything it owns: items first, then
// activities, then the group itself. Only the owner may delete, and personal
// groups cannot be deleted through this path. No activity is emitted: the
// group's activity trail is deleted with it.
func (s *GroupService) Delete(ctx context.Context, groupID, requesterID string) error {
	group, err := s.requireGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID != requesterID {
		return models.NewAuthorizationError("only the owner can delete this group")
	}
	if group.IsPersonal {
		return models.NewAuthorizationError("personal groups cannot be deleted")
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", groupID, "owner_id", requesterID)
	return nil
}

func (s *GroupService) requireGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, models.NewNotFoundError("group")
	}
	return group, nil
}

func (s *GroupService) requireUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user")
	}
	return user, nil
}

// recordAs snapshots the acting user's current username and appends an
// activity entry. Failures never propagate to the caller.
func (s *GroupService) recordAs(ctx context.Context, userID string, action models.Action, groupID, detail string) {
	username := ""
	if user, err := s.store.GetUserByID(ctx, userID); err == nil && user != nil {
		username = user.Username
	}
	if err := s.activity.Record(ctx, userID, username, action, groupID, detail); err != nil {
		slog.Warn("Activity rejected", "action", action, "error", err)
	}
}
