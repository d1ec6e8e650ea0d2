package services

import (
	"testing"
	"time"

	"github.com/diewo77/salesdesk/internal/db"
	"github.com/diewo77/salesdesk/internal/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	u := models.User{Username: username, PasswordHash: "hash", IsAdmin: admin}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

// stepClock returns a clock starting at start that advances by one
// second per call.
func stepClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func mustItem(t *testing.T, code, name string, qty, price, vat float64) LineItem {
	t.Helper()
	li, err := NewLineItem(code, name, qty, price, vat)
	if err != nil {
		t.Fatalf("line item: %v", err)
	}
	return li
}
