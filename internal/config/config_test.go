package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	unsetForTest(t, "PORT")
	unsetForTest(t, "ORDERDESK_PORT")
	unsetForTest(t, "ORDERDESK_ENV")
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, ".env"), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("Port = %q, want %q", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Fatalf("IsDev() = false, want true")
	}
	if cfg.CurrencySymbol != defaultCurrency {
		t.Fatalf("CurrencySymbol = %q, want %q", cfg.CurrencySymbol, defaultCurrency)
	}
	if cfg.StrictGarmentTypes {
		t.Fatalf("StrictGarmentTypes = true, want false")
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	unsetForTest(t, "PORT")
	unsetForTest(t, "ORDERDESK_ENV")
	unsetForTest(t, "ORDERDESK_LOG_LEVEL")
	unsetForTest(t, "ORDERDESK_LOG_FORMAT")
	t.Setenv("ORDERDESK_PORT", "9090")
	t.Setenv("ORDERDESK_STRICT_GARMENT_TYPES", "true")

	dir := t.TempDir()
	yaml := []byte(`
env: production
port: "7000"
log:
  level: warn
  format: json
addons:
  printing:
    front: "6"
    sleeve: "4"
  collar:
    rib: "12"
`)
	if err := os.WriteFile(filepath.Join(dir, "orderdesk.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := load(filepath.Join(dir, ".env"), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.IsDev() {
		t.Fatalf("IsDev() = true, want false")
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Fatalf("Log = %+v, want warn/json", cfg.Log)
	}
	if !cfg.StrictGarmentTypes {
		t.Fatalf("StrictGarmentTypes = false, want true")
	}

	defs, unknown := cfg.Definitions()
	if defs.Printing[0].Price != "6" {
		t.Fatalf("front price = %q, want 6", defs.Printing[0].Price)
	}
	if defs.Collar[1].Price != "12" {
		t.Fatalf("rib price = %q, want 12", defs.Collar[1].Price)
	}
	sort.Strings(unknown)
	if len(unknown) != 1 || unknown[0] != "printing.sleeve" {
		t.Fatalf("unknown = %v, want [printing.sleeve]", unknown)
	}
}

func TestLoad_PlainPortEnv(t *testing.T) {
	unsetForTest(t, "ORDERDESK_PORT")
	t.Setenv("PORT", "3000")
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, ".env"), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("Port = %q, want 3000", cfg.Port)
	}
}
