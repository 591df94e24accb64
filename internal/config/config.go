package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/andy/agencyflow/internal/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Report export settings
	Export ExportConfig `yaml:"export"`

	// Generative AI settings
	Assistant AssistantConfig `yaml:"assistant"`

	// Renewal reminder watcher
	Reminders RemindersConfig `yaml:"reminders"`

	// Local print preview server
	Server ServerConfig `yaml:"server"`

	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type InvoiceConfig struct {
	OutputDir       string `yaml:"output_dir"`       // Directory for printable HTML invoices
	DefaultTemplate string `yaml:"default_template"` // MODERN, CLASSIC, MINIMAL, TAX or CUSTOM
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for CSV and XLSX reports
}

type AssistantConfig struct {
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`    // OpenAI-compatible endpoint
	APIKeyEnv string        `yaml:"api_key_env"` // Environment variable holding the key
	Timeout   time.Duration `yaml:"timeout"`
}

type RemindersConfig struct {
	Schedule string `yaml:"schedule"` // Standard 5-field cron expression
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
	File   string `yaml:"file"`   // empty logs to stderr
}

// DefaultConfigPath returns ~/.config/agencyflow/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "agencyflow")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := baseDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "agencyflow.db"),
		},
		Invoice: InvoiceConfig{
			OutputDir:       filepath.Join(dir, "invoices"),
			DefaultTemplate: "MODERN",
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(dir, "reports"),
		},
		Assistant: AssistantConfig{
			Model:     "gemini-2.5-flash",
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta/openai/",
			APIKeyEnv: "GEMINI_API_KEY",
			Timeout:   60 * time.Second,
		},
		Reminders: RemindersConfig{
			Schedule: "0 9 * * *",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   filepath.Join(dir, "agencyflow.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
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

// EnsureDirectories creates all necessary directories (for database, invoices, reports)
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{filepath.Dir(c.Database.Path), c.Invoice.OutputDir, c.Export.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// APIKey returns the generative AI key from the configured environment variable.
// API_KEY is accepted as a fallback.
func (c *Config) APIKey() string {
	if c.Assistant.APIKeyEnv != "" {
		if v := os.Getenv(c.Assistant.APIKeyEnv); v != "" {
			return v
		}
	}
	return os.Getenv("API_KEY")
}

// LoggerConfig converts the log section into logger settings
func (c *Config) LoggerConfig() logger.LogConfig {
	lc := logger.DefaultConfig()
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	if c.Log.File != "" {
		lc.Output = c.Log.File
	}
	return lc
}
