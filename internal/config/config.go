// Package config loads plugin configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	md2img "github.com/seiji-k/go-md2img"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidTag     = errors.New("invalid tag name")
	ErrInvalidScale   = errors.New("scale must be >= 1")
	ErrInvalidWidth   = errors.New("width must be >= 0")
	ErrInputTooLarge  = errors.New("config file exceeds maximum size")
)

// MaxConfigSize limits config input to prevent memory exhaustion.
const MaxConfigSize = 1 << 20

// Config holds all deployment configuration for the render plugin.
type Config struct {
	// Tag is the tag name delimiting renderable spans ("md" default;
	// "render" for legacy deployments).
	Tag string `yaml:"tag"`
	// CacheDir is where rendered PNG files are written.
	CacheDir string `yaml:"cacheDir"`
	// Scale is the device-scale factor (>= 1; higher sharpens output).
	Scale int `yaml:"scale"`
	// MinWidth bounds the auto-fit body width from below, in pixels.
	MinWidth int `yaml:"minWidth"`
	// FixedWidth pins images to an exact content width (0 = auto-fit).
	FixedWidth int `yaml:"fixedWidth"`
	// KeepLiteralMarkup passes literal segments through unsanitized.
	KeepLiteralMarkup bool `yaml:"keepLiteralMarkup"`
	// Browser configures the headless engine.
	Browser BrowserConfig `yaml:"browser"`
	// SettleTimeout bounds the wait for math typesetting, e.g. "10s".
	SettleTimeout time.Duration `yaml:"settleTimeout"`
}

// BrowserConfig configures the headless engine launch.
type BrowserConfig struct {
	// Bin points at a pre-installed browser binary (empty = auto).
	Bin string `yaml:"bin"`
	// Sandbox re-enables the browser sandbox. Off by default for
	// containerized hosts.
	Sandbox bool `yaml:"sandbox"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Tag:      md2img.DefaultTag,
		Scale:    md2img.DefaultScale,
		MinWidth: md2img.DefaultMinWidth,
	}
}

// Load reads and validates a YAML config file. Missing file is an error;
// callers wanting defaults use Default directly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxConfigSize)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Tag == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTag)
	}
	for _, r := range c.Tag {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("%w: %q", ErrInvalidTag, c.Tag)
		}
	}
	if c.Scale < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, c.Scale)
	}
	if c.MinWidth < 0 || c.FixedWidth < 0 {
		return fmt.Errorf("%w: min=%d fixed=%d", ErrInvalidWidth, c.MinWidth, c.FixedWidth)
	}
	return nil
}

// Options maps the config to service options.
func (c *Config) Options() []md2img.Option {
	opts := []md2img.Option{
		md2img.WithTag(c.Tag),
		md2img.WithScale(c.Scale),
		md2img.WithMinWidth(c.MinWidth),
	}
	if c.CacheDir != "" {
		opts = append(opts, md2img.WithCacheDir(c.CacheDir))
	}
	if c.FixedWidth > 0 {
		opts = append(opts, md2img.WithFixedWidth(c.FixedWidth))
	}
	if c.KeepLiteralMarkup {
		opts = append(opts, md2img.WithKeepLiteralMarkup())
	}
	if c.Browser.Bin != "" {
		opts = append(opts, md2img.WithBrowserBin(c.Browser.Bin))
	}
	if c.Browser.Sandbox {
		opts = append(opts, md2img.WithSandbox())
	}
	if c.SettleTimeout > 0 {
		opts = append(opts, md2img.WithSettleTimeout(c.SettleTimeout))
	}
	return opts
}
