package models

// Item is a single entry on a group's list.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// GroupID references the group the item belongs to. An item belongs to
	// exactly one group and is deleted with it.
	GroupID string `json:"group"`

	// Name is the item description.
	Name string `json:"name"`

	// Quantity is always >= 1.
	Quantity int `json:"quantity"`

	// IsComplete marks the item as done.
	IsComplete bool `json:"isComplete"`

	// AssignedTo references the user responsible for the item. Empty when
	// unassigned. The reference may dangle if the user has since left;
	// readers must tolerate a missing username.
	AssignedTo string `json:"assignedTo,omitempty"`

	// CreatedBy references the user who added the item.
	CreatedBy string `json:"createdBy"`

	// AssignedToUsername and CreatedByUsername are resolved on read. Empty
	// when the referenced user no longer exists.
	AssignedToUsername string `json:"assignedToUsername,omitempty"`
	CreatedByUsername  string `json:"createdByUsername,omitempty"`

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64 `json:"createdAt"`
}
