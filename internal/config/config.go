package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// EnvToken is the environment variable holding the audd.io API token.
const EnvToken = "AUDDIOTOKEN"

// Config contains the program configuration
type Config struct {
	APIToken   string        `yaml:"api_token"`
	APIURL     string        `yaml:"api_url"`
	Market     string        `yaml:"market"`
	Sources    []string      `yaml:"sources"`
	AllSources bool          `yaml:"all_sources"`
	Minimum    bool          `yaml:"minimum"`
	Quiet      bool          `yaml:"quiet"`
	Verbose    bool          `yaml:"verbose"`
	LogFile    string        `yaml:"log_file"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIURL:  "https://api.audd.io/",
		Market:  "us",
		Timeout: 60 * time.Second,
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.LogFile = ExpandHome(cfg.LogFile)

	return cfg, nil
}

// LoadEnv loads KEY=value pairs from the given .env files into the process
// environment without overriding variables that are already set. With no
// files it reads ./.env if there is one.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load environment file: %w", err)
	}
	return nil
}

// ApplyEnv overrides file settings with the environment.
func (c *Config) ApplyEnv() {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		c.APIToken = token
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./audfill.yaml",
		"./audfill.yml",
		filepath.Join(home, ".config", "audfill", "config.yaml"),
		filepath.Join(home, ".config", "audfill", "config.yml"),
		filepath.Join(home, ".audfill.yaml"),
		filepath.Join(home, ".audfill.yml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may hold the API token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "audfill", "config.yaml")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_url must be an http:// or https:// URL, got %q", c.APIURL)
		}
	}

	if len(c.Market) != 2 || !isLetters(c.Market) {
		return fmt.Errorf("market must be a two-letter country code, got %q", c.Market)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if _, err := c.ParsedSources(); err != nil {
		return err
	}

	if c.Quiet && c.Verbose {
		return fmt.Errorf("quiet and verbose cannot both be set")
	}

	return nil
}

// ParsedSources returns the configured sources as metadata sources.
func (c *Config) ParsedSources() ([]metadata.Source, error) {
	sources := make([]metadata.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		src, err := metadata.ParseSource(s)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
