package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
)

// Engine is the OCR engine collaborator.
//
// Every error returned is an *Error whose Kind tells the caller how to report
// it. Implementations must not retain img after Recognize returns.
type Engine interface {
	// Name identifies the backend, e.g. "tesseract-cli".
	Name() string

	// Version returns the engine version string, e.g. "5.3.0".
	Version(ctx context.Context) (string, error)

	// Recognize returns the engine's raw text output for img using the given
	// language code. The output is not trimmed or otherwise post-processed.
	Recognize(ctx context.Context, img image.Image, language string) (string, error)

	// Languages lists the installed language packs.
	Languages(ctx context.Context) ([]string, error)
}

// New builds the engine selected by cfg.Backend.
func New(cfg config.Engine, log *slog.Logger) (Engine, error) {
	switch cfg.Backend {
	case config.BackendCLI, "":
		return NewTesseract(cfg, log), nil
	case config.BackendGosseract:
		return newLibrary(cfg, log)
	default:
		return nil, fmt.Errorf("unknown OCR backend %q", cfg.Backend)
	}
}

// Unavailable returns an Engine whose every method fails with err. It stands
// in for a backend that could not be built, so the failure reaches the caller
// through the usual Engine error path.
func Unavailable(name string, err error) Engine {
	return &unavailable{name: name, err: err}
}

type unavailable struct {
	name string
	err  error
}

func (u *unavailable) Name() string { return u.name }

func (u *unavailable) Version(context.Context) (string, error) { return "", u.err }

func (u *unavailable) Recognize(context.Context, image.Image, string) (string, error) {
	return "", u.err
}

func (u *unavailable) Languages(context.Context) ([]string, error) { return nil, u.err }

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
