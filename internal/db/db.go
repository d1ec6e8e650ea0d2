// Package db opens the application store and keeps its schema current.
package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/diewo77/salesdesk/internal/config"
	"github.com/diewo77/salesdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var requiredTables = []string{"users", "sales", "offers", "offers_positions"}

// ConnectAndMigrate opens the configured store, turns on referential
// integrity and creates the schema if absent. Any error here is meant to
// stop the process.
func ConnectAndMigrate(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
		}
		log.Printf("[db] using sqlite file %s", cfg.Path())
		db, err = OpenSQLite(sqliteFileDSN(cfg.Path()), gcfg)
	case DriverPostgres:
		if cfg.URL == "" {
			return nil, errors.New("DATABASE_URL is empty, required for the postgres driver")
		}
		db, err = gorm.Open(postgres.Open(cfg.URL), gcfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, cfg.Driver, cfg.Migrations); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a sqlite database and checks that foreign keys are
// enforced on the connection. The DSN should carry _foreign_keys=on so
// every pooled connection gets it.
func OpenSQLite(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true}
	}
	db, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	var enabled int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		return nil, fmt.Errorf("read foreign_keys pragma: %w", err)
	}
	if enabled != 1 {
		return nil, errors.New("sqlite foreign keys are not enforced")
	}
	return db, nil
}

// OpenInMemory opens a named shared-cache in-memory sqlite database with
// the full schema. Each distinct name is an isolated database.
func OpenInMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := OpenSQLite(dsn, nil)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, DriverSQLite, false); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema. With useSQL it applies the embedded
// versioned migrations, otherwise it runs AutoMigrate on the models.
func Migrate(db *gorm.DB, driver string, useSQL bool) error {
	if useSQL {
		if err := runSQLMigrations(db, driver); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		v, err := SchemaVersion(db)
		if err != nil {
			return fmt.Errorf("schema version: %w", err)
		}
		log.Printf("[db] %s schema at version %d", driver, v)
	} else {
		for _, m := range []any{&models.User{}, &models.Sale{}, &models.Offer{}, &models.OfferLineItem{}} {
			if err := db.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}

	for _, table := range requiredTables {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func sqliteFileDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}
