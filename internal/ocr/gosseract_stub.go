//go:build !gosseract

package ocr

import (
	"fmt"
	"log/slog"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
)

// newLibrary reports that the gosseract backend was not compiled in.
// Rebuild with -tags gosseract to enable it.
func newLibrary(config.Engine, *slog.Logger) (Engine, error) {
	return nil, newError(KindEngineNotFound, "lookup",
		fmt.Errorf("gosseract: %w (rebuild with -tags gosseract)", ErrBackendUnavailable))
}
