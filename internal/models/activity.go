package models

// Action identifies the kind of group mutation an activity records.
// The set is closed: unknown actions are rejected at write time.
type Action string

const (
	ActionAddedItem        Action = "added_item"
	ActionMarkedComplete   Action = "marked_complete"
	ActionMarkedIncomplete Action = "marked_incomplete"
	ActionDeletedItem      Action = "deleted_item"
	ActionJoinedGroup      Action = "joined_group"
	ActionLeftGroup        Action = "left_group"
	ActionEditedGroupName  Action = "edited_group_name"
	ActionRemovedMember    Action = "removed_member"
	ActionAssignedItem     Action = "assigned_item"
	ActionUnassignedItem   Action = "unassigned_item"
	ActionEditedItem       Action = "edited_item"
)

var validActions = map[Action]bool{
	ActionAddedItem:        true,
	ActionMarkedComplete:   true,
	ActionMarkedIncomplete: true,
	ActionDeletedItem:      true,
	ActionJoinedGroup:      true,
	ActionLeftGroup:        true,
	ActionEditedGroupName:  true,
	ActionRemovedMember:    true,
	ActionAssignedItem:     true,
	ActionUnassignedItem:   true,
	ActionEditedItem:       true,
}

// Valid reports whether the action belongs to the closed enumeration.
func (a Action) Valid() bool {
	return validActions[a]
}

// Activity is an immutable audit record of a group mutation. Records expire
// seven days after creation; the retention sweep deletes them independent of
// reads.
type Activity struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// UserID references the acting user.
	UserID string `json:"user"`

	// Username is snapshotted at write time, never joined live, so the entry
	// stays readable after the user leaves or is deleted.
	Username string `json:"username"`

	// Action is one of the closed action set.
	Action Action `json:"action"`

	// ItemName is the optional detail payload: an item name, a rename note,
	// or an assignment description depending on the action.
	ItemName string `json:"itemName,omitempty"`

	// GroupID references the group the activity belongs to.
	GroupID string `json:"group"`

	// CreatedAt is the Unix timestamp when the record was written.
	CreatedAt int64 `json:"createdAt"`
}
