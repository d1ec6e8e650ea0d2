// Package auth registers accounts and checks credentials. Passwords are
// stored as bcrypt hashes only.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/diewo77/salesdesk/internal/models"
	"github.com/diewo77/salesdesk/internal/services"
	"github.com/diewo77/salesdesk/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Password length bounds for Register, in bytes. bcrypt reads at most
// 72 bytes and rejects longer input.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// HashPassword returns the bcrypt hash of plain at the given cost.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type Service struct {
	db   *gorm.DB
	cost int
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy of s hashing at cost. Tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	c := *s
	c.cost = cost
	return &c
}

// Register creates an account. The username is trimmed and must be unique.
func (s *Service) Register(ctx context.Context, username, password, email string, isAdmin bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	v := validation.Violations{}
	validation.Required("username", username, v)
	validation.Required("password", password, v)
	if password != "" && (len(password) < MinPasswordLength || len(password) > MaxPasswordLength) {
		v.Add("password", validation.CodeOutOfRange)
	}
	if email != "" && !strings.Contains(email, "@") {
		v.Add("email", validation.CodeOutOfRange)
	}
	if !v.Empty() {
		return nil, &services.ValidationError{Violations: v}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("register %q: %w: %w", username, services.ErrUnexpected, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("register %q: %w", username, ErrUserExists)
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w: %w", username, services.ErrUnexpected, err)
	}
	u := models.User{Username: username, PasswordHash: hash, Email: email, IsAdmin: isAdmin}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("register %q: %w", username, ErrUserExists)
		}
		log.Printf("[auth] register %q: %v", username, err)
		return nil, fmt.Errorf("register %q: %w: %w", username, services.ErrUnexpected, err)
	}
	log.Printf("[auth] registered user %d (%s)", u.ID, u.Username)
	return &u, nil
}

// Login returns the account matching username and password. Unknown users
// and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Printf("[auth] login %q: %v", username, err)
		return nil, fmt.Errorf("login %q: %w: %w", username, services.ErrUnexpected, err)
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
