// Package models defines the core domain entities for Cartmates: users,
// groups, list items, and the activity log.
//
// Relationships are expressed with ID strings rather than pointers to avoid
// circular references. A Group exclusively owns its Items and Activities
// (deleting a group cascades to both); a User exclusively owns their personal
// group. Membership is a set of user IDs on the group side.
//
// The package also defines the domain error taxonomy shared by the service
// and API layers. Services return the most specific kind; the API boundary
// maps kinds to HTTP statuses without losing the kind, so clients can
// special-case expected conditions such as "already a member".
package models
