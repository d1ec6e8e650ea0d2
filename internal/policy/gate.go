// Package policy decides whether an acting user may touch a ledger record.
// A Gate maps resource types to policies; services call Authorize before
// mutating anything they did not just create.
package policy

import (
	"context"
	"errors"
	"sync"

	"github.com/diewo77/salesdesk/internal/models"
)

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Resource types known to the default gate.
const (
	ResourceSale  = "sale"
	ResourceOffer = "offer"
	ResourceUser  = "user"
)

// Policy answers one question for one resource type.
type Policy interface {
	Can(ctx context.Context, actor *models.User, action Action, resource any) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(ctx context.Context, actor *models.User, action Action, resource any) bool

func (f PolicyFunc) Can(ctx context.Context, actor *models.User, action Action, resource any) bool {
	return f(ctx, actor, action, resource)
}

// Gate is the central authorization checkpoint.
type Gate struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewGate creates an empty Gate ready to register policies.
func NewGate() *Gate {
	return &Gate{policies: make(map[string]Policy)}
}

// NewDefaultGate registers owner-or-admin rules for sales and offers and
// admin-only rules for user accounts.
func NewDefaultGate() *Gate {
	g := NewGate()
	owned := NewAdminBypassPolicy(NewOwnershipPolicy())
	g.Register(ResourceSale, owned)
	g.Register(ResourceOffer, owned)
	g.Register(ResourceUser, AdminOnlyPolicy{})
	return g
}

// Register adds or replaces the policy for resourceType.
func (g *Gate) Register(resourceType string, p Policy) {
	g.mu.Lock()
	g.policies[resourceType] = p
	g.mu.Unlock()
}

// Authorize returns ErrUnauthorized for a missing actor or a denied
// action, and ErrNoPolicyDefined if resourceType has no policy.
func (g *Gate) Authorize(ctx context.Context, actor *models.User, action Action, resourceType string, resource any) error {
	if actor == nil || actor.ID == 0 {
		return ErrUnauthorized
	}
	g.mu.RLock()
	p, ok := g.policies[resourceType]
	g.mu.RUnlock()
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, actor, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is Authorize as a bool.
func (g *Gate) Can(ctx context.Context, actor *models.User, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, actor, action, resourceType, resource) == nil
}
