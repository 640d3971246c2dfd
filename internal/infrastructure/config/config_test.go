package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const validConfig = `
servers:
  - id: office
    name: Office Bridge
    url: http://192.168.1.10:56700
    token: secret
    poll_interval_ms: 1000
api:
  port: 8089
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Servers) != 1 {
		t.Fatalf("expected 1 server, got %d", len(cfg.Servers))
	}
	s := cfg.Servers[0]
	if s.ID != "office" {
		t.Errorf("server ID = %q, want office", s.ID)
	}
	if got := s.PollInterval(); got != time.Second {
		t.Errorf("PollInterval() = %v, want 1s", got)
	}
	// Omitted values take defaults.
	if got := s.WriteMargin(); got != 2*time.Second {
		t.Errorf("WriteMargin() = %v, want 2s", got)
	}
	if got := s.Timeout(); got != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", got)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("default logging level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Database.Path == "" {
		t.Error("default database path should not be empty")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("default MQTT port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfigFile(t, "servers: [")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidateRejectsNoServers(t *testing.T) {
	_, err := Load(writeConfigFile(t, "api:\n  port: 8089\n"))
	if err == nil {
		t.Fatal("expected validation error for empty servers list")
	}
	if !strings.Contains(err.Error(), "servers") {
		t.Errorf("error %q should mention servers", err)
	}
}

func TestValidateRejectsDuplicateServerIDs(t *testing.T) {
	content := `
servers:
  - id: dup
    url: http://a
  - id: dup
    url: http://b
`
	if _, err := Load(writeConfigFile(t, content)); err == nil {
		t.Fatal("expected validation error for duplicate server ids")
	}
}

func TestValidateRejectsMissingURL(t *testing.T) {
	content := `
servers:
  - id: office
`
	if _, err := Load(writeConfigFile(t, content)); err == nil {
		t.Fatal("expected validation error for missing url")
	}
}

func TestValidateRejectsLowPollInterval(t *testing.T) {
	content := `
servers:
  - id: office
    url: http://192.168.1.10:56700
    poll_interval_ms: 100
`
	_, err := Load(writeConfigFile(t, content))
	if err == nil {
		t.Fatal("expected validation error for a poll interval below the floor")
	}
	if !strings.Contains(err.Error(), "poll_interval_ms") {
		t.Errorf("error %q should mention poll_interval_ms", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LUMESYNC_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("LUMESYNC_SERVER_TOKEN", "env-token")

	cfg, err := Load(writeConfigFile(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("database path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Servers[0].Token != "env-token" {
		t.Errorf("server token = %q, want env override", cfg.Servers[0].Token)
	}
}
