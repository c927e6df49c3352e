// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/framesink"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/smartcapture"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/contactsheet"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/videodoc"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. VIDEODOCS_SAMPLE_RATIO.
const EnvPrefix = "VIDEODOCS_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the full configuration for videodocs.
type Config struct {
	// Decoding
	Backend string `yaml:"backend" env:"BACKEND"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// Sampling
	SampleRatio int `yaml:"sample_ratio" env:"SAMPLE_RATIO"`
	// FrameCutoff of -1 samples the whole video.
	FrameCutoff int `yaml:"frame_cutoff" env:"FRAME_CUTOFF"`

	// Output
	Output OutputConfig `yaml:"output" envPrefix:"OUTPUT_"`

	// Contact sheet
	Sheet SheetConfig `yaml:"contact_sheet" envPrefix:"SHEET_"`
}

// OutputConfig controls how sampled frames are written.
type OutputConfig struct {
	Prefix  string `yaml:"prefix" env:"PREFIX"`
	Format  string `yaml:"format" env:"FORMAT"`
	Quality int    `yaml:"quality" env:"QUALITY"`
	Width   int    `yaml:"width" env:"WIDTH"`
}

// SheetConfig controls contact sheet rendering.
type SheetConfig struct {
	Columns         int     `yaml:"columns" env:"COLUMNS"`
	ThumbWidth      int     `yaml:"thumb_width" env:"THUMB_WIDTH"`
	Gap             int     `yaml:"gap" env:"GAP"`
	Padding         int     `yaml:"padding" env:"PADDING"`
	FontPath        string  `yaml:"font_path" env:"FONT_PATH"`
	FontSize        float64 `yaml:"font_size" env:"FONT_SIZE"`
	BackgroundColor string  `yaml:"background_color" env:"BACKGROUND_COLOR"`
	TextColor       string  `yaml:"text_color" env:"TEXT_COLOR"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	sheet := contactsheet.DefaultOptions()
	return Config{
		Backend:   string(smartcapture.BackendAuto),
		LogLevel:  "info",
		LogFormat: "console",

		SampleRatio: videodoc.DefaultImageSampleRatio,
		FrameCutoff: -1,

		Output: OutputConfig{
			Prefix:  "frame",
			Format:  "png",
			Quality: 90,
		},

		Sheet: SheetConfig{
			Columns:         sheet.Columns,
			ThumbWidth:      sheet.ThumbWidth,
			Gap:             sheet.Gap,
			Padding:         sheet.Padding,
			FontSize:        sheet.FontSize,
			BackgroundColor: "#181818",
			TextColor:       "#e6e6e6",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when empty), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from VIDEODOCS_* environment variables.
// Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := smartcapture.ParseBackend(c.Backend); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "quiet":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	if err := c.SamplerOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.FrameCutoff < -1 {
		return fmt.Errorf("%w: frame cutoff must be -1 or at least 0, got %d", ErrInvalidConfig, c.FrameCutoff)
	}
	switch strings.ToLower(c.Output.Format) {
	case "png", "jpeg", "jpg":
	default:
		return fmt.Errorf("%w: unknown image format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("%w: quality must be in 1..100, got %d", ErrInvalidConfig, c.Output.Quality)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("%w: negative width %d", ErrInvalidConfig, c.Output.Width)
	}
	if c.Sheet.Columns < 1 || c.Sheet.ThumbWidth < 1 {
		return fmt.Errorf("%w: contact sheet needs at least one column of positive width", ErrInvalidConfig)
	}
	for _, hex := range []string{c.Sheet.BackgroundColor, c.Sheet.TextColor} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// SamplerOptions converts the sampling settings.
func (c Config) SamplerOptions() videodoc.Options {
	opts := videodoc.Options{SampleRatio: c.SampleRatio}
	if c.FrameCutoff >= 0 {
		opts.FrameCutoff = videodoc.Cutoff(c.FrameCutoff)
	}
	return opts
}

// SinkOptions converts the output settings.
func (c Config) SinkOptions() framesink.Options {
	return framesink.Options{
		Prefix:  c.Output.Prefix,
		Format:  ports.ParseImageFormat(strings.ToLower(c.Output.Format)),
		Quality: c.Output.Quality,
		Width:   c.Output.Width,
	}
}

// SheetOptions converts the contact sheet settings. Colors must have
// passed Validate; malformed ones fall back to the defaults.
func (c Config) SheetOptions() contactsheet.Options {
	opts := contactsheet.DefaultOptions()
	opts.Columns = c.Sheet.Columns
	opts.ThumbWidth = c.Sheet.ThumbWidth
	opts.Gap = c.Sheet.Gap
	opts.Padding = c.Sheet.Padding
	opts.FontPath = c.Sheet.FontPath
	opts.FontSize = c.Sheet.FontSize
	if col, err := ParseColor(c.Sheet.BackgroundColor); err == nil {
		opts.Background = col
	}
	if col, err := ParseColor(c.Sheet.TextColor); err == nil {
		opts.TextColor = col
	}
	return opts
}

// ParseColor parses a #rrggbb hex string.
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q: want #rrggbb", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
