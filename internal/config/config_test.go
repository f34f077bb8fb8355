package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := &Config{
		Database: DatabaseConfig{DSN: "./clientform.db"},
		Log:      LogConfig{Level: "warn", Format: "console"},
		Input:    InputConfig{Sanitize: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clientform.yaml")
	content := "database:\n  dsn: /tmp/forms.db\nforms:\n  dir: ./forms\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CLIENTFORM_LOG_FORMAT", "json")
	t.Setenv("CLIENTFORM_INPUT_SANITIZE", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "/tmp/forms.db" || cfg.Forms.Dir != "./forms" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Input.Sanitize {
		t.Fatalf("expected env override to disable sanitising")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an explicitly named missing file to fail")
	}
}
