package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains asset and output locations.
type Paths struct {
	OutputDir  string `toml:"output_dir"`
	Font       string `toml:"font"`
	Overlay    string `toml:"overlay"`
	Background string `toml:"background"`
}

// Shop contains the titles and options for the generated mosaics.
type Shop struct {
	NormalTitle    string `toml:"normal_title"`
	OGTitle        string `toml:"og_title"`
	ShowDateNormal bool   `toml:"show_date_normal"`
	ShowDateOG     bool   `toml:"show_date_og"`
	OGEnabled      bool   `toml:"og_enabled"`
	OGThreshold    int    `toml:"og_threshold"`
	Workers        int    `toml:"workers"`
}

// Server contains HTTP settings.
type Server struct {
	Bind string `toml:"bind"`
}

// Logging contains logger settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full application configuration.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Shop    Shop    `toml:"shop"`
	Server  Server  `toml:"server"`
	Logging Logging `toml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  ".",
			Overlay:    "assets/overlay.png",
			Background: "assets/shopbg.png",
		},
		Shop: Shop{
			NormalTitle:    "Item Shop",
			OGTitle:        "OG Items",
			ShowDateNormal: true,
			ShowDateOG:     true,
			OGEnabled:      true,
			OGThreshold:    100,
		},
		Server:  Server{Bind: ":8080"},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load reads the TOML file at path over the defaults. An empty path or a
// missing file yields the defaults. The boolean reports whether a file was read.
func Load(path string) (*Config, bool, error) {
	cfg := Default()
	exists := false
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, false, fmt.Errorf("parse config %s: %w", path, err)
			}
			exists = true
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, false, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, exists, err
	}
	return &cfg, exists, nil
}

func (c *Config) normalize() error {
	var err error
	for _, p := range []*string{&c.Paths.OutputDir, &c.Paths.Font, &c.Paths.Overlay, &c.Paths.Background} {
		if *p, err = expandPath(*p); err != nil {
			return err
		}
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.Overlay == "" {
		return errors.New("paths.overlay must be set")
	}
	if c.Paths.Background == "" {
		return errors.New("paths.background must be set")
	}
	if c.Shop.OGThreshold < 0 {
		return fmt.Errorf("shop.og_threshold must be >= 0, got %d", c.Shop.OGThreshold)
	}
	if c.Shop.Workers < 0 {
		return fmt.Errorf("shop.workers must be >= 0, got %d", c.Shop.Workers)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func expandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", p, err)
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
	}
	return p, nil
}
