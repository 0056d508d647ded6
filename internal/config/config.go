// ABOUTME: Kinetiqo configuration: JSON file, optional .env, and KINETIQO_* overrides.
// ABOUTME: Builds the storage handle, logger settings, and leveling rules from settings.

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Reogieakero/fitness/internal/progression"
	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/joho/godotenv"
)

// Config stores kinetiqo configuration.
type Config struct {
	// DataDir is the root directory for data storage. kinetiqo.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/kinetiqo.
	DataDir string `json:"data_dir,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	// BcryptCost is the work factor for new password hashes.
	BcryptCost int `json:"bcrypt_cost,omitempty"`

	MaxXP    int `json:"max_xp,omitempty"`
	MaxLevel int `json:"max_level,omitempty"`

	// ActiveUserID is the account commands act on when --user is not given.
	ActiveUserID int64 `json:"active_user_id,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file path inside the data directory.
func (c *Config) DBPath() string {
	if c.DataDir == "" {
		return storage.DefaultDBPath()
	}
	return filepath.Join(c.GetDataDir(), "kinetiqo.db")
}

// GetLogLevel returns the log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetLogFormat returns the log format, defaulting to "text".
func (c *Config) GetLogFormat() string {
	if c.LogFormat == "" {
		return "text"
	}
	return c.LogFormat
}

// Rules returns the leveling rules. Unset values fall back to the defaults.
func (c *Config) Rules() progression.Rules {
	r := progression.DefaultRules
	if c.MaxXP > 0 {
		r.MaxXP = c.MaxXP
	}
	if c.MaxLevel > 0 {
		r.MaxLevel = c.MaxLevel
	}
	return r
}

// CatalogPath returns the location of the optional quest catalog override.
func (c *Config) CatalogPath() string {
	return filepath.Join(configDir(), "quests.yaml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite database at DBPath.
func (c *Config) OpenStorage(logger *slog.Logger) (*storage.DB, error) {
	opts := []storage.Option{storage.WithLogger(logger)}
	if c.BcryptCost > 0 {
		opts = append(opts, storage.WithBcryptCost(c.BcryptCost))
	}
	return storage.Open(c.DBPath(), opts...)
}

func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "kinetiqo")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(configDir(), "config.json")
}

// Load reads config from disk, loads a .env file from the working directory
// when one exists, and applies KINETIQO_* environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Update loads the file without environment overrides, applies fn, and
// saves the result.
func Update(fn func(*Config)) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	fn(cfg)
	return cfg.Save()
}

func loadFile() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("KINETIQO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("KINETIQO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("KINETIQO_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"KINETIQO_BCRYPT_COST", &c.BcryptCost},
		{"KINETIQO_MAX_XP", &c.MaxXP},
		{"KINETIQO_MAX_LEVEL", &c.MaxLevel},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("KINETIQO_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("KINETIQO_USER_ID: %w", err)
		}
		c.ActiveUserID = id
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
