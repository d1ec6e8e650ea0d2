package policy

import (
	"context"

	"github.com/diewo77/salesdesk/internal/models"
)

// Ownable is implemented by records that belong to one user.
type Ownable interface {
	GetUserID() uint
}

// OwnershipPolicy allows an action when the actor owns the resource.
type OwnershipPolicy struct{}

// NewOwnershipPolicy creates a new ownership policy.
func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can allows list/create (nil resource) and otherwise compares owners.
// Resources that are not Ownable are denied.
func (p *OwnershipPolicy) Can(_ context.Context, actor *models.User, _ Action, resource any) bool {
	if resource == nil {
		return true
	}
	ownable, ok := resource.(Ownable)
	if !ok {
		return false
	}
	return ownable.GetUserID() == actor.ID
}

// AdminBypassPolicy lets admins through and defers to inner otherwise.
type AdminBypassPolicy struct {
	inner Policy
}

// NewAdminBypassPolicy wraps inner so that admins skip it.
func NewAdminBypassPolicy(inner Policy) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner}
}

func (p *AdminBypassPolicy) Can(ctx context.Context, actor *models.User, action Action, resource any) bool {
	if actor.IsAdmin {
		return true
	}
	return p.inner.Can(ctx, actor, action, resource)
}

// AdminOnlyPolicy allows admins only, except that a user may always view
// their own account.
type AdminOnlyPolicy struct{}

func (AdminOnlyPolicy) Can(_ context.Context, actor *models.User, action Action, resource any) bool {
	if actor.IsAdmin {
		return true
	}
	if action != ActionView {
		return false
	}
	u, ok := resource.(*models.User)
	return ok && u.ID == actor.ID
}
