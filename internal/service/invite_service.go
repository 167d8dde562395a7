package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kritanta/cartmates/internal/models"
	"github.com/kritanta/cartmates/internal/storage"
)

// RedeemStatus tells the client how an invite redemption ended.
type RedeemStatus string

const (
	// RedeemLoginRequired means the requester was anonymous; the response
	// carries a preview only and nothing was mutated.
	RedeemLoginRequired RedeemStatus = "login_required"

	// RedeemAlreadyMember means the requester already belongs to the group.
	// Redeeming twice is safe: membership and the activity log are unchanged.
	RedeemAlreadyMember RedeemStatus = "already_member"

	// RedeemJoined means the requester was added to the member set.
	RedeemJoined RedeemStatus = "joined"
)

// InvitePreview is the group summary shown to a logged-out visitor.
type InvitePreview struct {
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

// RedeemResult is the outcome of redeeming an invite token.
type RedeemResult struct {
	Status  RedeemStatus  `json:"status"`
	Preview InvitePreview `json:"preview"`
	Group   *models.Group `json:"group,omitempty"`
}

// InviteService maps opaque invite tokens to groups and performs the
// idempotent join-on-redeem. The preview/confirm split exists because the
// token may reach a logged-out visitor who has to authenticate first; the
// token survives the redirect and is redeemed as a deliberate second call.
type InviteService struct {
	store  storage.Store
	groups *GroupService
}

// NewInviteService creates a new InviteService.
func NewInviteService(store storage.Store, groups *GroupService) *InviteService {
	return &InviteService{store: store, groups: groups}
}

// Resolve maps a token to its group. The primary lookup is the token index;
// the fallback treats the token as a raw group id for legacy links. The
// fallback is a separate step so it can be deprecated independently.
func (s *InviteService) Resolve(ctx context.Context, token string) (*models.Group, error) {
	group, err := s.store.GetGroupByInviteToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if group != nil {
		return group, nil
	}

	// Legacy links embedded the group id directly.
	group, err = s.store.GetGroup(ctx, token)
	if err != nil {
		return nil, err
	}
	if group == nil || group.IsPersonal {
		return nil, models.NewNotFoundError("invite")
	}
	return group, nil
}

// Redeem resolves the token and, for an authenticated requester, joins the
// group. An empty requesterID yields a preview without mutating anything.
// A requester who is already a member gets RedeemAlreadyMember; this path is
// idempotent and emits no duplicate joined_group activity.
func (s *InviteService) Redeem(ctx context.Context, token, requesterID string) (*RedeemResult, error) {
	group, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	preview := InvitePreview{
		GroupID:     group.ID,
		Name:        group.Name,
		MemberCount: len(group.Members),
	}

	if requesterID == "" {
		return &RedeemResult{Status: RedeemLoginRequired, Preview: preview}, nil
	}

	if group.HasMember(requesterID) {
		return &RedeemResult{Status: RedeemAlreadyMember, Preview: preview, Group: group}, nil
	}

	joined, err := s.groups.Join(ctx, group.ID, requesterID)
	if err != nil {
		// A concurrent redeem may have joined first; report it the same way.
		if errors.Is(err, models.ErrAlreadyMember) {
			current, gerr := s.store.GetGroup(ctx, group.ID)
			if gerr != nil || current == nil {
				return nil, err
			}
			return &RedeemResult{Status: RedeemAlreadyMember, Preview: preview, Group: current}, nil
		}
		return nil, err
	}

	preview.MemberCount = len(joined.Members)
	slog.Info("Invite redeemed", "group_id", group.ID, "user_id", requesterID)
	return &RedeemResult{Status: RedeemJoined, Preview: preview, Group: joined}, nil
}
