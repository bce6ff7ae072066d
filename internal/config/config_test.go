package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kitchenpos.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if !cfg.Auth.Required {
		t.Error("expected auth to be required by default")
	}
	if cfg.AuthEnabled() {
		t.Error("expected auth disabled without a secret")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  shutdown_timeout: 3s
database:
  driver: memory
  max_conns: 8
auth:
  jwt_secret: s3cret
  token_ttl: 1h
  required: false
log:
  level: debug
  format: json
orders:
  strict_status_sequencing: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Database.Driver != DriverMemory || cfg.Database.MaxConns != 8 {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Auth.Required {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if !cfg.AuthEnabled() {
		t.Error("expected auth enabled")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if !cfg.Orders.StrictStatusSequencing {
		t.Error("expected strict status sequencing")
	}
	// Unset keys keep their defaults.
	if cfg.Database.Path != "./data/kitchenpos.db" {
		t.Errorf("expected default path, got %q", cfg.Database.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/kitchenpos")
	t.Setenv("STRICT_ORDER_STATUS", "true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.URL != "postgres://localhost/kitchenpos" {
		t.Errorf("unexpected url %q", cfg.Database.URL)
	}
	if !cfg.Orders.StrictStatusSequencing {
		t.Error("expected strict sequencing from env")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected warn, got %q", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown driver", body: "database:\n  driver: mysql\n"},
		{name: "postgres without url", body: "database:\n  driver: postgres\n"},
		{name: "bad port", body: "server:\n  port: 70000\n"},
		{name: "negative pool size", body: "database:\n  driver: memory\n  max_conns: -1\n"},
		{name: "malformed yaml", body: "server: [\n"},
		{name: "bad env port", env: map[string]string{"PORT": "eighty"}},
		{name: "bad env strict flag", env: map[string]string{"STRICT_ORDER_STATUS": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
