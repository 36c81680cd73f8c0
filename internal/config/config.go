// Package config holds the explicit run configuration for encarte-ocr.
//
// There is no configuration file. Values start from Default, are overridden by
// environment variables through FromEnv, and finally by command-line flags bound
// in internal/cli. The engine location in particular is always carried here and
// handed to the OCR engine at construction time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default values.
const (
	DefaultImagePath = "teste.png"
	DefaultLanguage  = "por"
	DefaultCommand   = "tesseract"
	DefaultBackend   = BackendCLI
	DefaultLogLevel  = "warn"
)

// Environment variables read by FromEnv.
const (
	EnvTesseractCmd = "ENCARTE_OCR_TESSERACT_CMD"
	EnvBackend      = "ENCARTE_OCR_BACKEND"
	EnvLogLevel     = "ENCARTE_OCR_LOG_LEVEL"
	EnvTessdata     = "TESSDATA_PREFIX"
	EnvNoColor      = "NO_COLOR"
)

// Backend selects how the OCR engine is reached.
type Backend string

const (
	// BackendCLI runs the tesseract executable as a child process.
	BackendCLI Backend = "cli"
	// BackendGosseract links libtesseract through gosseract (build tag "gosseract").
	BackendGosseract Backend = "gosseract"
)

// Engine configures the OCR engine collaborator.
type Engine struct {
	// Backend picks the engine implementation.
	Backend Backend

	// Command is the tesseract executable name or path (CLI backend only).
	Command string

	// TessdataDir overrides where language packs are looked up. Empty keeps the
	// engine default.
	TessdataDir string

	// PageSegMode is tesseract's --psm value. Negative keeps the engine default.
	PageSegMode int

	// Timeout bounds each engine call. Zero means no timeout.
	Timeout time.Duration
}

// Region is a rectangle in image pixel coordinates, x2/y2 exclusive.
type Region struct {
	X1, Y1, X2, Y2 int
}

// Empty reports whether the region selects no pixels.
func (r Region) Empty() bool {
	return r.X1 >= r.X2 || r.Y1 >= r.Y2
}

// String formats the region the way ParseRegion reads it.
func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X1, r.Y1, r.X2, r.Y2)
}

// Preprocess controls image cleanup before recognition. The zero value leaves
// the image untouched.
type Preprocess struct {
	Enabled bool

	// Binarize is the threshold (1-255) used to convert to black and white.
	// Zero disables binarization.
	Binarize int

	// UpscaleMinWidth enlarges images narrower than this many pixels.
	// Zero disables upscaling.
	UpscaleMinWidth int
}

// Active reports whether any preprocessing step is enabled.
func (p Preprocess) Active() bool {
	return p.Enabled || p.Binarize > 0 || p.UpscaleMinWidth > 0
}

// Config is the complete configuration for one run.
type Config struct {
	Engine     Engine
	ImagePath  string
	Language   string
	Region     *Region
	Preprocess Preprocess

	LogLevel string
	NoColor  bool

	// Strict makes the process exit status reflect the run outcome.
	Strict bool
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Engine: Engine{
			Backend:     DefaultBackend,
			Command:     DefaultCommand,
			PageSegMode: -1,
		},
		ImagePath: DefaultImagePath,
		Language:  DefaultLanguage,
		LogLevel:  DefaultLogLevel,
	}
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv applies environment overrides to c. A nil lookup reads the process
// environment.
func (c *Config) FromEnv(lookup LookupFunc) *Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvTesseractCmd); ok && strings.TrimSpace(v) != "" {
		c.Engine.Command = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Engine.Backend = Backend(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(EnvTessdata); ok && v != "" {
		c.Engine.TessdataDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	// https://no-color.org: present and non-empty disables color.
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		c.NoColor = true
	}
	return c
}

// Validate checks the configuration for values that cannot work.
// The language code is not validated; unsupported codes surface as engine errors.
func (c *Config) Validate() error {
	switch c.Engine.Backend {
	case BackendCLI:
		if strings.TrimSpace(c.Engine.Command) == "" {
			return fmt.Errorf("tesseract command must not be empty")
		}
	case BackendGosseract:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Engine.Backend, BackendCLI, BackendGosseract)
	}

	if c.Engine.PageSegMode > 13 {
		return fmt.Errorf("page segmentation mode %d out of range (0-13)", c.Engine.PageSegMode)
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.ImagePath == "" {
		return fmt.Errorf("image path must not be empty")
	}
	if c.Language == "" {
		return fmt.Errorf("language code must not be empty")
	}
	if c.Region != nil && c.Region.Empty() {
		return fmt.Errorf("invalid region %s: x1 must be < x2, y1 must be < y2", c.Region)
	}
	if c.Preprocess.Binarize < 0 || c.Preprocess.Binarize > 255 {
		return fmt.Errorf("binarize threshold %d out of range (1-255)", c.Preprocess.Binarize)
	}
	if c.Preprocess.UpscaleMinWidth < 0 {
		return fmt.Errorf("upscale width must not be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// ParseRegion reads "x1,y1,x2,y2".
func ParseRegion(s string) (*Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("region %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	r := &Region{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
	if r.Empty() {
		return nil, fmt.Errorf("region %q: x1 must be < x2, y1 must be < y2", s)
	}
	return r, nil
}
