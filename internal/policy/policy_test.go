package policy

import (
	"context"
	"testing"

	"github.com/diewo77/salesdesk/internal/models"
)

var (
	owner = &models.User{ID: 1}
	other = &models.User{ID: 2}
	admin = &models.User{ID: 3, IsAdmin: true}
)

func TestGate_Authorize_NoActor(t *testing.T) {
	g := NewDefaultGate()
	if err := g.Authorize(context.Background(), nil, ActionView, ResourceSale, nil); err != ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := g.Authorize(context.Background(), &models.User{}, ActionView, ResourceSale, nil); err != ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for zero id, got %v", err)
	}
}

func TestGate_Authorize_NoPolicy(t *testing.T) {
	g := NewGate()
	if err := g.Authorize(context.Background(), owner, ActionView, "unknown", nil); err != ErrNoPolicyDefined {
		t.Errorf("expected ErrNoPolicyDefined, got %v", err)
	}
}

func TestGate_PolicyFunc(t *testing.T) {
	g := NewGate()
	g.Register("test", PolicyFunc(func(_ context.Context, _ *models.User, a Action, _ any) bool {
		return a == ActionList
	}))
	if !g.Can(context.Background(), owner, ActionList, "test", nil) {
		t.Error("expected list to be allowed")
	}
	if g.Can(context.Background(), owner, ActionDelete, "test", nil) {
		t.Error("expected delete to be denied")
	}
}

func TestDefaultGate_Ownership(t *testing.T) {
	g := NewDefaultGate()
	ctx := context.Background()
	sale := &models.Sale{ID: 10, UserID: owner.ID}
	offer := &models.Offer{ID: 20, UserID: owner.ID}

	tests := []struct {
		name     string
		actor    *models.User
		resource string
		target   any
		want     bool
	}{
		{"owner deletes own sale", owner, ResourceSale, sale, true},
		{"other deletes sale", other, ResourceSale, sale, false},
		{"admin deletes any sale", admin, ResourceSale, sale, true},
		{"owner updates own offer", owner, ResourceOffer, offer, true},
		{"other updates offer", other, ResourceOffer, offer, false},
		{"create without resource", other, ResourceOffer, nil, true},
		{"non ownable resource", owner, ResourceSale, struct{}{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Can(ctx, tt.actor, ActionDelete, tt.resource, tt.target)
			if got != tt.want {
				t.Errorf("Can() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultGate_Users(t *testing.T) {
	g := NewDefaultGate()
	ctx := context.Background()

	if g.Can(ctx, owner, ActionDelete, ResourceUser, other) {
		t.Error("regular user must not delete accounts")
	}
	if g.Can(ctx, owner, ActionDelete, ResourceUser, owner) {
		t.Error("regular user must not delete own account")
	}
	if !g.Can(ctx, owner, ActionView, ResourceUser, owner) {
		t.Error("user should view own account")
	}
	if g.Can(ctx, owner, ActionView, ResourceUser, other) {
		t.Error("user should not view other accounts")
	}
	if !g.Can(ctx, admin, ActionDelete, ResourceUser, other) {
		t.Error("admin should delete accounts")
	}
}
