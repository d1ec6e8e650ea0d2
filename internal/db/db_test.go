package db

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/salesdesk/internal/config"
	"github.com/diewo77/salesdesk/internal/models"
)

func TestOpenInMemory_CreatesSchema(t *testing.T) {
	db, err := OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, table := range requiredTables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("missing table %s", table)
		}
	}
	var fk int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}
}

func TestCascade_UserDeleteRemovesOwnedRows(t *testing.T) {
	db, err := OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	u := models.User{Username: "ana", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	sale := models.Sale{Doc: "INV001", Amount: 10, Timestamp: models.NewLocalTime(time.Now()), UserID: u.ID}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("create sale: %v", err)
	}
	offer := models.Offer{
		CIF: "RO1", Timestamp: models.NewLocalTime(time.Now()), UserID: u.ID,
		Items: []models.OfferLineItem{{ProductName: "Seeds", Quantity: 1, UnitPrice: 2, VAT: 9}},
	}
	if err := db.Create(&offer).Error; err != nil {
		t.Fatalf("create offer: %v", err)
	}

	if err := db.Delete(&models.User{}, u.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	for _, m := range []any{&models.Sale{}, &models.Offer{}, &models.OfferLineItem{}} {
		var n int64
		db.Model(m).Count(&n)
		if n != 0 {
			t.Errorf("%T rows after cascade = %d, want 0", m, n)
		}
	}
}

func TestForeignKey_RejectsOrphanSale(t *testing.T) {
	db, err := OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sale := models.Sale{Doc: "X", Amount: 1, Timestamp: models.NewLocalTime(time.Now()), UserID: 999}
	if err := db.Create(&sale).Error; err == nil {
		t.Fatalf("expected foreign key violation for missing user")
	}
}

func TestMigrate_SQLMigrations(t *testing.T) {
	db, err := OpenSQLite("file:"+t.Name()+"?mode=memory&cache=shared&_foreign_keys=on", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	if err := Migrate(db, DriverSQLite, true); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(logs.String(), "[db] sqlite schema at version 1") {
		t.Errorf("schema version not logged: %q", logs.String())
	}
	// second run is a no-op
	if err := Migrate(db, DriverSQLite, true); err != nil {
		t.Fatalf("migrate again: %v", err)
	}
	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 1 {
		t.Fatalf("version = %d, want 1", v)
	}

	u := models.User{Username: "ion", PasswordHash: "x", IsAdmin: true}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create on migrated schema: %v", err)
	}
	var got models.User
	if err := db.First(&got, u.ID).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !got.IsAdmin || got.Username != "ion" {
		t.Fatalf("got %+v", got)
	}
}

func TestConnectAndMigrate_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := ConnectAndMigrate(config.DatabaseConfig{Driver: DriverSQLite, DataDir: dir, Name: "sales.db"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if _, err := os.Stat(filepath.Join(dir, "sales.db")); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestConnectAndMigrate_UnknownDriver(t *testing.T) {
	if _, err := ConnectAndMigrate(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestConnectAndMigrate_PostgresNeedsURL(t *testing.T) {
	if _, err := ConnectAndMigrate(config.DatabaseConfig{Driver: DriverPostgres}); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}
