package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_CompanyMessagesGoToLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("DB_DEBUG", "")
	t.Setenv("COMPANY_CONFIG", "")

	var stderr bytes.Buffer
	log.SetOutput(&stderr)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := loadConfig()
	if f, ok := log.Writer().(*os.File); ok {
		t.Cleanup(func() { _ = f.Close() })
	}
	if want := filepath.Join(dir, "config.yaml"); cfg.CompanyFile != want {
		t.Errorf("CompanyFile = %q, want %q", cfg.CompanyFile, want)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected output before log redirect: %q", stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "salesdesk.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[config] no company file at "+cfg.CompanyFile) {
		t.Errorf("log file missing company message: %q", data)
	}
}
