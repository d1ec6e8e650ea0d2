// Package config provides application configuration loaded from environment
// variables and an optional YAML file for the issuing company identity.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Registry RegistryConfig
	App      AppConfig
	Company  Company

	// CompanyFile is the YAML file LoadCompany reads Company from.
	CompanyFile string
}

// DatabaseConfig holds store settings.
type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	DataDir    string
	Name       string
	URL        string // postgres DSN, ignored for sqlite
	Debug      bool
	Migrations bool
}

// Path returns the sqlite database file location.
func (d DatabaseConfig) Path() string {
	return filepath.Join(d.DataDir, d.Name)
}

// RegistryConfig holds the client-registry lookup settings.
type RegistryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Lang string
}

// Company is the issuing business printed on offer documents.
type Company struct {
	Name               string   `mapstructure:"name"`
	RegistrationNumber string   `mapstructure:"registration_number"`
	TaxID              string   `mapstructure:"tax_id"`
	Address            string   `mapstructure:"address"`
	BankAccounts       []string `mapstructure:"bank_accounts"`
	Phone              string   `mapstructure:"phone"`
	ShareCapital       string   `mapstructure:"share_capital"`
}

// Load reads configuration from environment variables.
// It uses sensible defaults for a local single-user install. Load does not
// log; the company identity is read afterwards with LoadCompany.
func Load() *Config {
	dataDir := getEnv("DATA_DIR", defaultDataDir())
	return &Config{
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DataDir:    dataDir,
			Name:       getEnv("DB_NAME", "sales.db"),
			URL:        getEnv("DATABASE_URL", ""),
			Debug:      getEnvBool("DB_DEBUG", false),
			Migrations: getEnvBool("DB_MIGRATIONS", false),
		},
		Registry: RegistryConfig{
			BaseURL: getEnv("REGISTRY_URL", "https://api.opencorporates.com/v0.4/companies/ro"),
			Timeout: time.Duration(getEnvInt("REGISTRY_TIMEOUT", 10)) * time.Second,
		},
		App: AppConfig{
			Lang: getEnv("LANG_UI", "ro"),
		},
		Company:     Company{Name: defaultCompanyName},
		CompanyFile: getEnv("COMPANY_CONFIG", filepath.Join(dataDir, "config.yaml")),
	}
}

const defaultCompanyName = "Company SRL"

// LoadCompany reads the company identity from a YAML file under the
// "company" key. The file is optional; COMPANY_* variables override it.
func LoadCompany(path string) Company {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("COMPANY")
	v.SetEnvKeyReplacer(strings.NewReplacer("company.", "", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("company.name", defaultCompanyName)
	v.SetDefault("company.registration_number", "")
	v.SetDefault("company.tax_id", "")
	v.SetDefault("company.address", "")
	v.SetDefault("company.bank_accounts", []string{})
	v.SetDefault("company.phone", "")
	v.SetDefault("company.share_capital", "")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("[config] no company file at %s, using defaults", path)
	}

	var c Company
	if err := v.UnmarshalKey("company", &c); err != nil {
		log.Printf("[config] company section: %v", err)
	}
	// UnmarshalKey reads the nested map only; pick up env overrides explicitly.
	for key, dst := range map[string]*string{
		"company.name":                &c.Name,
		"company.registration_number": &c.RegistrationNumber,
		"company.tax_id":              &c.TaxID,
		"company.address":             &c.Address,
		"company.phone":               &c.Phone,
		"company.share_capital":       &c.ShareCapital,
	} {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	if accts := v.GetStringSlice("company.bank_accounts"); len(accts) > 0 {
		c.BankAccounts = accts
	}
	return c
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "salesdesk")
	}
	return "data"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	value = strings.ToLower(value)
	return value == "1" || value == "true" || value == "yes"
}
