package services

import (
	"context"
	"fmt"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/policy"
	"gorm.io/gorm"
)

// UserService holds account operations that need authorization. Register
// and login live in the auth package.
type UserService struct {
	db     *gorm.DB
	gate   *policy.Gate
	totals *TotalsCache
}

func NewUserService(db *gorm.DB, gate *policy.Gate, totals *TotalsCache) *UserService {
	return &UserService{db: db, gate: gate, totals: totals}
}

// GetUser loads an account actor is allowed to view.
func (s *UserService) GetUser(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrMissingID
	}
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, storeError("users", fmt.Sprintf("load user %d", id), err)
	}
	if err := s.gate.Authorize(ctx, actor, policy.ActionView, policy.ResourceUser, &u); err != nil {
		return nil, fmt.Errorf("view user %d: %w", id, err)
	}
	return &u, nil
}

// DeleteUser removes an account and, through the cascade, every sale and
// offer it owns. Admins only.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, id uint) error {
	if id == 0 {
		return ErrMissingID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			return storeError("users", fmt.Sprintf("load user %d", id), err)
		}
		if err := s.gate.Authorize(ctx, actor, policy.ActionDelete, policy.ResourceUser, &u); err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return storeError("users", fmt.Sprintf("delete user %d", id), tx.Delete(&u).Error)
	})
	if err == nil && s.totals != nil {
		s.totals.InvalidateAll()
	}
	return err
}
