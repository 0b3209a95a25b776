package regear

import (
	"context"
	"fmt"

	"github.com/osse101/PhoenixBot_Go/internal/domain"
)

// Actor is the member acting on a reservation
type Actor struct {
	UserID  string
	RoleIDs []string
	// IsAdmin is true for members holding the guild Administrator permission
	IsAdmin bool
}

// PermissionChecker answers explicit permission grants
type PermissionChecker interface {
	HasPermission(ctx context.Context, guildID, subjectID, action string) (bool, error)
}

// Authorizer decides who may drive which transition
type Authorizer struct {
	perms PermissionChecker
}

// NewAuthorizer creates an Authorizer backed by perms
func NewAuthorizer(perms PermissionChecker) *Authorizer {
	return &Authorizer{perms: perms}
}

// Allowed reports whether actor is an administrator or holds a grant for
// action, either directly or through one of their roles
func (a *Authorizer) Allowed(ctx context.Context, guildID string, actor Actor, action string) (bool, error) {
	if actor.IsAdmin {
		return true, nil
	}
	subjects := append([]string{actor.UserID}, actor.RoleIDs...)
	for _, subject := range subjects {
		if subject == "" {
			continue
		}
		ok, err := a.perms.HasPermission(ctx, guildID, subject, action)
		if err != nil {
			return false, fmt.Errorf("failed to check permission: %w", err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Authorize checks that actor may apply event to res.
// Pickup belongs to the recipient; complete and cancel to the issuer or a
// privileged member.
func (a *Authorizer) Authorize(ctx context.Context, res *domain.Reservation, event domain.RegearEvent, actor Actor) error {
	switch event {
	case domain.EventPickedUp:
		if actor.UserID != res.RecipientID {
			return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, ErrMsgOnlyRecipient)
		}
		return nil

	case domain.EventComplete, domain.EventCancel:
		if actor.UserID == res.IssuerID {
			return nil
		}
		ok, err := a.Allowed(ctx, res.GuildID, actor, domain.PermissionRegear)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: "+ErrMsgOnlyIssuer, domain.ErrPermissionDenied, event)
		}
		return nil
	}

	return fmt.Errorf("%w: unknown event %q", domain.ErrInvalidTransition, event)
}
