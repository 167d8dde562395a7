package models

// Member is a group member resolved to a username-bearing record.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Group represents a shared (or personal) list.
//
// Invariants enforced by the service layer:
//   - the owner is always present in Members
//   - personal groups carry no invite token and cannot be renamed, deleted
//     through the normal path, or joined by invite
//   - InviteToken, when set, is unique across all groups and stable for the
//     group's lifetime
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// OwnerID references the user who created the group.
	OwnerID string `json:"owner"`

	// IsPersonal marks the auto-created private list every user owns.
	IsPersonal bool `json:"isPersonal"`

	// InviteToken is the opaque join token for shared groups. Empty for
	// personal groups.
	InviteToken string `json:"inviteToken,omitempty"`

	// Members holds the resolved member set. The owner is always included.
	Members []Member `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// HasMember reports whether the user is in the member set.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
