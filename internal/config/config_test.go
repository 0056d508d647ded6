// ABOUTME: Tests for kinetiqo configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Reogieakero/fitness/internal/logging"
	"github.com/Reogieakero/fitness/internal/progression"
)

// isolate points config lookups at a fresh temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	for _, key := range []string{
		"KINETIQO_DATA_DIR", "KINETIQO_LOG_LEVEL", "KINETIQO_LOG_FORMAT",
		"KINETIQO_BCRYPT_COST", "KINETIQO_MAX_XP", "KINETIQO_MAX_LEVEL", "KINETIQO_USER_ID",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/kinetiqo-test"}
	if got := cfg.GetDataDir(); got != "/tmp/kinetiqo-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/kinetiqo-test")
	}
	if got := cfg.DBPath(); got != "/tmp/kinetiqo-test/kinetiqo.db" {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/kinetiqo", filepath.Join(home, "data/kinetiqo")},
		{"data/kinetiqo", "data/kinetiqo"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetLogLevel() != "info" || cfg.GetLogFormat() != "text" {
		t.Errorf("log defaults = %q/%q", cfg.GetLogLevel(), cfg.GetLogFormat())
	}
	if cfg.Rules() != progression.DefaultRules {
		t.Errorf("Rules() = %+v, want defaults", cfg.Rules())
	}

	cfg.MaxXP = 200
	if got := cfg.Rules(); got.MaxXP != 200 || got.MaxLevel != progression.DefaultRules.MaxLevel {
		t.Errorf("Rules() = %+v", got)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.DataDir != "" || cfg.ActiveUserID != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{DataDir: "/tmp/kinetiqo-data", MaxXP: 150, ActiveUserID: 7}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DataDir != "/tmp/kinetiqo-data" || loaded.MaxXP != 150 || loaded.ActiveUserID != 7 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)

	if err := (&Config{DataDir: "/from/file", LogLevel: "warn"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("KINETIQO_DATA_DIR", "/from/env")
	t.Setenv("KINETIQO_MAX_LEVEL", "30")
	t.Setenv("KINETIQO_USER_ID", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, want env value", cfg.DataDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want file value", cfg.LogLevel)
	}
	if cfg.MaxLevel != 30 || cfg.ActiveUserID != 12 {
		t.Errorf("overrides = %d/%d", cfg.MaxLevel, cfg.ActiveUserID)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("KINETIQO_MAX_XP", "lots")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric KINETIQO_MAX_XP")
	}
}

func TestUpdateIgnoresEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KINETIQO_DATA_DIR", "/from/env")

	if err := Update(func(c *Config) { c.ActiveUserID = 3 }); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if saved.ActiveUserID != 3 || saved.DataDir != "" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	if err := (&Config{}).Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "kinetiqo")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolate(t)

	configDir := filepath.Join(tmpDir, "kinetiqo")
	_ = os.MkdirAll(configDir, 0755)
	_ = os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestPaths(t *testing.T) {
	tmpDir := isolate(t)

	if got, want := GetConfigPath(), filepath.Join(tmpDir, "kinetiqo", "config.json"); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
	if got, want := (&Config{}).CatalogPath(), filepath.Join(tmpDir, "kinetiqo", "quests.yaml"); got != want {
		t.Errorf("CatalogPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir, BcryptCost: 4}

	db, err := cfg.OpenStorage(logging.Discard())
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "kinetiqo.db")); os.IsNotExist(err) {
		t.Error("Expected kinetiqo.db to be created")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}

func TestDBPathDefault(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("XDG_DATA_HOME", tmpDir)

	if got, want := (&Config{}).DBPath(), filepath.Join(tmpDir, "kinetiqo", "kinetiqo.db"); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
}
