package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	SearchModeLocal   = "local"
	SearchModeYouTube = "youtube"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Library     LibraryConfig     `toml:"library"`
	Search      SearchConfig      `toml:"search"`
	Credentials CredentialsConfig `toml:"credentials"`
	Admin       AdminConfig       `toml:"admin"`
	Database    DatabaseConfig    `toml:"database"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// LibraryConfig points at the songs on disk.
type LibraryConfig struct {
	SongsDir     string `toml:"songs_dir"`
	DownloadsDir string `toml:"downloads_dir"`
	SnapshotPath string `toml:"snapshot_path"`
	ReadTags     bool   `toml:"read_tags"`
}

// SearchConfig selects the resolver strategy.
type SearchConfig struct {
	Mode            string  `toml:"mode"`
	TrackPopularity bool    `toml:"track_popularity"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	MaxResults      int64   `toml:"max_results"`
	RatePerSecond   float64 `toml:"rate_per_second"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains YouTube Data API credentials.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// AdminConfig holds the shared secret for admin-only endpoints.
type AdminConfig struct {
	Key string `toml:"key"`
}

// DatabaseConfig contains the SQLite snapshot database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from the given .env files into the process environment.
//
// Missing files are not an error; variables already set are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from environment variables looked up through getenv.
//
// Recognised variables: HOST, PORT, ADMIN_KEY, YOUTUBE_API_KEY, SONGS_DIR, DOWNLOADS_DIR, SEARCH_MODE.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	if v := getenv("ADMIN_KEY"); v != "" {
		c.Admin.Key = v
	}
	if v := getenv("YOUTUBE_API_KEY"); v != "" {
		c.Credentials.YouTube.APIKey = v
	}
	if v := getenv("SONGS_DIR"); v != "" {
		c.Library.SongsDir = v
	}
	if v := getenv("DOWNLOADS_DIR"); v != "" {
		c.Library.DownloadsDir = v
	}
	if v := getenv("SEARCH_MODE"); v != "" {
		c.Search.Mode = strings.ToLower(v)
	}

	return nil
}

// Validate checks the values the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Library.SongsDir == "" {
		return fmt.Errorf("%w: library.songs_dir is empty", ErrInvalidConfig)
	}
	switch c.Search.Mode {
	case SearchModeLocal, SearchModeYouTube:
	default:
		return fmt.Errorf("%w: unknown search mode %q", ErrInvalidConfig, c.Search.Mode)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DownloadsDir returns the directory cleared by an admin reset.
func (c *Config) DownloadsDir() string {
	if c.Library.DownloadsDir != "" {
		return c.Library.DownloadsDir
	}
	return c.Library.SongsDir
}

// SearchTimeout returns the bound applied to one remote search call.
func (c *Config) SearchTimeout() time.Duration {
	if c.Search.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}
