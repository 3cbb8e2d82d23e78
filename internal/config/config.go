package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Aggregate document settings
	Storage StorageConfig `yaml:"storage"`

	// Number and date rendering
	Locale LocaleConfig `yaml:"locale"`

	// Logging
	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type StorageConfig struct {
	// DocumentKey is the fixed key the aggregate document is stored
	// under. Kept at its historical value so databases migrated from
	// the browser version keep working.
	DocumentKey string `yaml:"document_key"`
}

type LocaleConfig struct {
	Tag              string `yaml:"tag"`               // BCP 47, e.g. es-CL
	CurrencySymbol   string `yaml:"currency_symbol"`   // narrow symbol, e.g. $
	CurrencyCode     string `yaml:"currency_code"`     // ISO 4217, e.g. CLP
	GroupSeparator   string `yaml:"group_separator"`   // thousands separator
	DecimalSeparator string `yaml:"decimal_separator"` // decimal separator
}

type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name, default warn
}

// DefaultConfigPath returns ~/.config/joblist/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "joblist", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "joblist", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "joblist", "joblist.db"),
		},
		Storage: StorageConfig{
			DocumentKey: "joblist-erp-jobs",
		},
		Locale: LocaleConfig{
			Tag:              "es-CL",
			CurrencySymbol:   "$",
			CurrencyCode:     "CLP",
			GroupSeparator:   ".",
			DecimalSeparator: ",",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories the database lives in
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	return os.MkdirAll(dbDir, 0755)
}
