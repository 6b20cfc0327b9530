package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filtergram/internal/processing/filters"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LogLevel string `toml:"log_level"`
	JSONLogs bool   `toml:"json_logs"`

	// AlbumDir is where saved photos are written.
	AlbumDir    string `toml:"album_dir"`
	SaveFormat  string `toml:"save_format"`
	JPEGQuality int    `toml:"jpeg_quality"`

	// MaxSourceDimension bounds the longest side of a decoded photo.
	// Zero means unlimited.
	MaxSourceDimension int    `toml:"max_source_dimension"`
	DefaultFilter      string `toml:"default_filter"`

	Window Window `toml:"window"`
}

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

func Default() *Config {
	return &Config{
		LogLevel:           "info",
		AlbumDir:           defaultAlbumDir(),
		SaveFormat:         "jpeg",
		JPEGQuality:        95,
		MaxSourceDimension: 4096,
		DefaultFilter:      filters.SepiaTone.String(),
		Window: Window{
			Width:  720,
			Height: 900,
		},
	}
}

// DefaultPath is <user config dir>/filtergram/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "filtergram", "config.toml")
}

func defaultAlbumDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "FilterGram")
	}
	return filepath.Join(home, "Pictures", "FilterGram")
}

// Load reads the TOML file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	} else if os.Getenv("DEBUG") == "1" {
		c.LogLevel = "debug"
	}

	if dir := os.Getenv("FILTERGRAM_ALBUM_DIR"); dir != "" {
		c.AlbumDir = dir
	}
	if v := os.Getenv("FILTERGRAM_JSON_LOGS"); v != "" {
		c.JSONLogs = v == "true" || v == "1"
	}
	if format := os.Getenv("FILTERGRAM_SAVE_FORMAT"); format != "" {
		c.SaveFormat = format
	}
}

func (c *Config) Validate() error {
	var errs []error

	c.SaveFormat = strings.ToLower(strings.TrimSpace(c.SaveFormat))
	switch c.SaveFormat {
	case "jpeg", "jpg", "png":
	default:
		errs = append(errs, fmt.Errorf("save_format must be jpeg or png, got %q", c.SaveFormat))
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be within 1..100, got %d", c.JPEGQuality))
	}
	if c.MaxSourceDimension < 0 {
		errs = append(errs, fmt.Errorf("max_source_dimension must not be negative, got %d", c.MaxSourceDimension))
	}
	if strings.TrimSpace(c.AlbumDir) == "" {
		errs = append(errs, errors.New("album_dir must not be empty"))
	}
	if _, err := filters.ParseKind(c.DefaultFilter); err != nil {
		errs = append(errs, fmt.Errorf("default_filter: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}

// Filter is the filter selected at start-up.
func (c *Config) Filter() filters.Kind {
	kind, err := filters.ParseKind(c.DefaultFilter)
	if err != nil {
		return filters.SepiaTone
	}
	return kind
}
