package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "streamlist"

// View names accepted by ui.default_view
const (
	ViewWatchlist = "watchlist"
	ViewMovies    = "movies"
)

// Log formats accepted by logging.format
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"`
	RateLimit    float64       `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
	Timeout      time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds watchlist persistence configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView string `mapstructure:"default_view"`
}

// BrowserConfig selects the program that opens TMDB pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // empty = system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Language:     "en-US",
			RateLimit:    20,
			Timeout:      30 * time.Second,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		UI: UIConfig{
			DefaultView: ViewWatchlist,
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), appName+".log"),
			Level:  "INFO",
			Format: LogFormatJSON,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS.
// STREAMLIST_CONFIG_DIR overrides it.
func defaultConfigPath() string {
	if dir := os.Getenv("STREAMLIST_CONFIG_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// ConfigFile returns the path SaveConfig writes to
func ConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	// Environment variable overrides (STREAMLIST_TMDB_API_KEY etc.)
	v.SetEnvPrefix("STREAMLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional TMDB variable works too
	v.BindEnv("tmdb.api_key", "STREAMLIST_TMDB_API_KEY", "TMDB_API_KEY")

	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	v := newViper()

	// AutomaticEnv only applies to keys viper already knows about
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.rate_limit", cfg.TMDB.RateLimit)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("ui.default_view", cfg.UI.DefaultView)
	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.rate_limit", cfg.TMDB.RateLimit)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	v.Set("storage.dir", cfg.Storage.Dir)

	v.Set("ui.default_view", cfg.UI.DefaultView)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	if err := v.WriteConfigAs(ConfigFile()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HasAPIKey returns true if a TMDB API key is set
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// Validate rejects values the application cannot act on
func (c *Config) Validate() error {
	switch c.UI.DefaultView {
	case ViewWatchlist, ViewMovies:
	default:
		return fmt.Errorf("invalid ui.default_view %q (want %q or %q)", c.UI.DefaultView, ViewWatchlist, ViewMovies)
	}

	switch strings.ToLower(c.Logging.Format) {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("invalid logging.format %q (want %q or %q)", c.Logging.Format, LogFormatJSON, LogFormatText)
	}

	if c.TMDB.RateLimit < 0 {
		return fmt.Errorf("invalid tmdb.rate_limit %v: must not be negative", c.TMDB.RateLimit)
	}

	return nil
}
