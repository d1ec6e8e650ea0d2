package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DATA_DIR", "/tmp/salesdesk-test")
	t.Setenv("REGISTRY_TIMEOUT", "")
	t.Setenv("LANG_UI", "")
	t.Setenv("COMPANY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if got := cfg.Database.Path(); got != filepath.Join("/tmp/salesdesk-test", "sales.db") {
		t.Errorf("Path() = %q", got)
	}
	if cfg.Registry.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Registry.Timeout)
	}
	if cfg.App.Lang != "ro" {
		t.Errorf("Lang = %q", cfg.App.Lang)
	}
}

func TestLoad_CompanyFileDefaultsToDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("COMPANY_CONFIG", "")

	cfg := Load()
	if want := filepath.Join(dir, "config.yaml"); cfg.CompanyFile != want {
		t.Errorf("CompanyFile = %q, want %q", cfg.CompanyFile, want)
	}
	if cfg.Company.Name != defaultCompanyName {
		t.Errorf("Company.Name = %q", cfg.Company.Name)
	}

	t.Setenv("COMPANY_CONFIG", "/etc/salesdesk/company.yaml")
	if got := Load().CompanyFile; got != "/etc/salesdesk/company.yaml" {
		t.Errorf("CompanyFile = %q, want override", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"0", false},
		{"no", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SALESDESK_FLAG", tt.value)
			if got := getEnvBool("SALESDESK_FLAG", false); got != tt.want {
				t.Errorf("getEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("SALESDESK_INT", "abc")
	if got := getEnvInt("SALESDESK_INT", 7); got != 7 {
		t.Errorf("getEnvInt = %d, want 7", got)
	}
}

func TestLoadCompany_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `company:
  name: Agro Test SRL
  registration_number: J40/123/2020
  tax_id: RO123456
  address: Str. Exemplu 1, Bucuresti
  bank_accounts:
    - RO49AAAA1B31007593840000
    - RO09BCYP0000001234567890
  phone: "0700000000"
  share_capital: 200 RON
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	c := LoadCompany(path)
	if c.Name != "Agro Test SRL" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.TaxID != "RO123456" || c.RegistrationNumber != "J40/123/2020" {
		t.Errorf("ids = %q / %q", c.TaxID, c.RegistrationNumber)
	}
	if len(c.BankAccounts) != 2 {
		t.Fatalf("BankAccounts = %v", c.BankAccounts)
	}
	if c.Phone != "0700000000" {
		t.Errorf("Phone = %q", c.Phone)
	}
}

func TestLoadCompany_EnvOverride(t *testing.T) {
	t.Setenv("COMPANY_NAME", "Env Co")
	c := LoadCompany(filepath.Join(t.TempDir(), "none.yaml"))
	if c.Name != "Env Co" {
		t.Errorf("Name = %q, want Env Co", c.Name)
	}
}
