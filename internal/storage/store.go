// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/kritanta/cartmates/internal/models"
)

// Store defines the interface for all persistence operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// --- users ---

	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when the
	// user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when the user
	// does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByResetTokenHash retrieves the user holding an unexpired reset
	// token with the given hash. Returns (nil, nil) when none matches.
	GetUserByResetTokenHash(ctx context.Context, hash string, now int64) (*models.User, error)

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser removes a user row. Group membership cleanup is separate.
	DeleteUser(ctx context.Context, id string) error

	// --- groups ---

	// CreateGroup persists a group and its initial member set.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with members resolved to username-bearing
	// records. Returns (nil, nil) when the group does not exist.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// GetGroupByInviteToken retrieves a group by its invite token. Returns
	// (nil, nil) when no group carries the token.
	GetGroupByInviteToken(ctx context.Context, token string) (*models.Group, error)

	// ListGroupsByMember returns every group the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// ListGroupsByOwner returns every group the user owns.
	ListGroupsByOwner(ctx context.Context, ownerID string) ([]*models.Group, error)

	// RenameGroup updates a group's name.
	RenameGroup(ctx context.Context, id, name string) error

	// AddMember inserts the user into the group's member set as a single
	// atomic statement. Returns false when the user was already a member;
	// concurrent calls for the same pair never produce duplicates.
	AddMember(ctx context.Context, groupID, userID string) (bool, error)

	// RemoveMember deletes the user from the group's member set. Returns
	// false when the user was not a member.
	RemoveMember(ctx context.Context, groupID, userID string) (bool, error)

	// RemoveUserFromAllGroups deletes the user from every member set.
	RemoveUserFromAllGroups(ctx context.Context, userID string) error

	// DeleteGroup removes the group and everything it owns. Items are
	// deleted before activities before the group row, inside one
	// transaction, so a crash never leaves orphaned items.
	DeleteGroup(ctx context.Context, id string) error

	// --- items ---

	// CreateItem persists a new item.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item with assignee/creator usernames resolved.
	// Returns (nil, nil) when the item does not exist.
	GetItem(ctx context.Context, id string) (*models.Item, error)

	// ListItemsByGroup returns the group's items, incomplete before
	// complete, stable by creation order within each bucket.
	ListItemsByGroup(ctx context.Context, groupID string) ([]*models.Item, error)

	// UpdateItem persists changes to an existing item. Last write wins.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id string) error

	// --- activities ---

	// CreateActivity appends an activity record.
	CreateActivity(ctx context.Context, activity *models.Activity) error

	// ListActivities returns the group's activities created at or after
	// since (Unix seconds; zero for no lower bound), newest first, capped
	// at limit.
	ListActivities(ctx context.Context, groupID string, since int64, limit int) ([]*models.Activity, error)

	// PurgeActivitiesBefore deletes records created before the cutoff and
	// returns how many were removed.
	PurgeActivitiesBefore(ctx context.Context, cutoff int64) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
