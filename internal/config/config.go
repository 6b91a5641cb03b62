package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL   string `yaml:"api_base_url"`
	UploadURL    string `yaml:"upload_url"`
	UploadPreset string `yaml:"upload_preset"`
	SessionFile  string `yaml:"session_file"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	// Renderer selects the registered renderer used for read-only views.
	Renderer string `yaml:"renderer"`
	// CommentPollSeconds is the refresh cadence for open comment feeds.
	CommentPollSeconds int `yaml:"comment_poll_seconds"`
}

// CommentPollInterval returns the comment feed cadence as a duration.
func (c *Config) CommentPollInterval() time.Duration {
	return time.Duration(c.CommentPollSeconds) * time.Second
}

// Load reads configuration in three layers: built-in defaults, an optional
// YAML file (FORMSAPP_CONFIG or ./formsapp.yaml), then environment variable
// overrides. A .env file is loaded if present but is optional.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:         "http://localhost:5000/api",
		UploadURL:          "",
		UploadPreset:       "",
		SessionFile:        defaultSessionFile(),
		LogLevel:           "info",
		LogFormat:          "pretty",
		Renderer:           "html",
		CommentPollSeconds: 5,
	}

	if err := loadFile(cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = getEnv("FORMSAPP_API_URL", cfg.APIBaseURL)
	cfg.UploadURL = getEnv("FORMSAPP_UPLOAD_URL", cfg.UploadURL)
	cfg.UploadPreset = getEnv("FORMSAPP_UPLOAD_PRESET", cfg.UploadPreset)
	cfg.SessionFile = getEnv("FORMSAPP_SESSION_FILE", cfg.SessionFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Renderer = getEnv("FORMSAPP_RENDERER", cfg.Renderer)
	cfg.CommentPollSeconds = getEnvInt("FORMSAPP_COMMENT_POLL_SECONDS", cfg.CommentPollSeconds)

	if cfg.CommentPollSeconds <= 0 {
		cfg.CommentPollSeconds = 5
	}
	return cfg, nil
}

func loadFile(cfg *Config) error {
	path := os.Getenv("FORMSAPP_CONFIG")
	explicit := path != ""
	if path == "" {
		path = "formsapp.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		if os.IsNotExist(err) {
			return fmt.Errorf("config: file %q not found", path)
		}
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".formsapp-session.json"
	}
	return filepath.Join(home, ".formsapp", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
