// Package config resolves the server settings from the environment.
//
// Settings are read once at start-up; the resulting Config is never mutated
// and is shared read-only by every request.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ironsheep/image-pattern-mcp/internal/imaging"
	"github.com/ironsheep/image-pattern-mcp/internal/metric"
	"github.com/ironsheep/image-pattern-mcp/internal/pattern"
)

// Environment variables read by FromEnv.
const (
	EnvSpace    = "IMAGE_PATTERN_SPACE"
	EnvSize     = "IMAGE_PATTERN_SIZE"
	EnvPalette  = "IMAGE_PATTERN_PALETTE"
	EnvBlur     = "IMAGE_PATTERN_BLUR"
	EnvQuality  = "IMAGE_PATTERN_QUALITY"
	EnvLogLevel = "IMAGE_MCP_LOG_LEVEL"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved server settings.
type Config struct {
	// Space is the metric color space patterns are stored and compared in.
	Space metric.Space

	// Size is the grid edge length N of every pattern.
	Size int

	// UsePalette snaps every pattern cell to the nearest named color.
	UsePalette bool

	// BlurRadius smooths the reduced image before sampling. Zero disables it.
	BlurRadius float64

	// ExportQuality is the JPEG quality (1-100) of rendered patterns.
	ExportQuality int

	// LogLevel is "debug" for verbose logging; anything else is normal.
	LogLevel string
}

// Default returns the built-in settings: CIE-Lab, 12×12, no palette, no
// blur, JPEG quality 100.
func Default() Config {
	return Config{
		Space:         metric.Lab(),
		Size:          pattern.DefaultSize,
		ExportQuality: imaging.DefaultJPEGQuality,
	}
}

// Debug reports whether verbose logging is enabled.
func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// FromEnv starts from Default and applies every variable lookup finds.
// Pass os.LookupEnv in production.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvSpace); ok && v != "" {
		space, err := metric.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, EnvSpace, err)
		}
		cfg.Space = space
	}

	if v, ok := lookup(EnvSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalid, EnvSize, v)
		}
		cfg.Size = n
	}

	if v, ok := lookup(EnvPalette); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalid, EnvPalette, v)
		}
		cfg.UsePalette = b
	}

	if v, ok := lookup(EnvBlur); ok && v != "" {
		r, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || r < 0 {
			return Config{}, fmt.Errorf("%w: %s must be a non-negative number, got %q", ErrInvalid, EnvBlur, v)
		}
		cfg.BlurRadius = r
	}

	if v, ok := lookup(EnvQuality); ok && v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || q < 1 || q > 100 {
			return Config{}, fmt.Errorf("%w: %s must be between 1 and 100, got %q", ErrInvalid, EnvQuality, v)
		}
		cfg.ExportQuality = q
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// String summarizes the settings for the start-up log line.
func (c Config) String() string {
	return fmt.Sprintf("space=%s size=%d palette=%t blur=%g quality=%d",
		c.Space.Name(), c.Size, c.UsePalette, c.BlurRadius, c.ExportQuality)
}
