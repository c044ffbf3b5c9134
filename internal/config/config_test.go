package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/civicsetu/resolver/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Service.Name != "resolver" || cfg.Service.Port != 8080 {
		t.Errorf("service = %+v", cfg.Service)
	}
	if cfg.Service.ListLimit != 50 || cfg.Service.MaxListLimit != 200 {
		t.Errorf("list limits = %d/%d", cfg.Service.ListLimit, cfg.Service.MaxListLimit)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Geocode.BaseURL != "https://nominatim.openstreetmap.org" {
		t.Errorf("geocode base url = %q", cfg.Geocode.BaseURL)
	}
	if cfg.Geocode.MinSpacing != time.Second {
		t.Errorf("geocode spacing = %s", cfg.Geocode.MinSpacing)
	}
	if cfg.Notify.SMTPPort != 587 {
		t.Errorf("smtp port = %d", cfg.Notify.SMTPPort)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	if _, err := config.Load("/does/not/exist.yaml"); err != nil {
		t.Fatalf("missing file must fall back to defaults, got %v", err)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
service:
  name: resolver-staging
  port: 9090
database:
  host: db.internal
  database: complaints
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Service.Name != "resolver-staging" || cfg.Service.Port != 9090 {
		t.Errorf("service = %+v", cfg.Service)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Database != "complaints" {
		t.Errorf("database = %+v", cfg.Database)
	}
	// Untouched sections still get defaults.
	if cfg.Database.Port != 5432 {
		t.Errorf("database port = %d", cfg.Database.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RESOLVER_PORT", "7070")
	t.Setenv("POSTGRES_HOST", "pg.internal")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Service.Port != 7070 {
		t.Errorf("port = %d", cfg.Service.Port)
	}
	if !cfg.Service.Debug {
		t.Error("debug must be true")
	}
	if cfg.Database.Host != "pg.internal" {
		t.Errorf("database host = %q", cfg.Database.Host)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}
