//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/imaging"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/logging"
)

// Library drives libtesseract in-process through gosseract.
//
// Build with -tags gosseract; libtesseract and leptonica headers must be
// installed. The library is linked into the binary, so KindEngineNotFound
// never occurs with this backend: a missing library is a link error instead.
type Library struct {
	tessdataDir string
	psm         int
	log         *slog.Logger
}

func newLibrary(cfg config.Engine, log *slog.Logger) (Engine, error) {
	if log == nil {
		log = logging.Discard()
	}
	return &Library{
		tessdataDir: cfg.TessdataDir,
		psm:         cfg.PageSegMode,
		log:         log.With("engine", "gosseract"),
	}, nil
}

// Name returns "gosseract".
func (l *Library) Name() string { return "gosseract" }

// Version returns the linked libtesseract version.
func (l *Library) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newError(KindUnexpected, "version", err)
	}
	v := strings.TrimSpace(gosseract.Version())
	if v == "" {
		return "", newError(KindQuery, "version", fmt.Errorf("libtesseract reported an empty version"))
	}
	return v, nil
}

// Recognize runs OCR on img. Language codes joined with "+" select several
// language packs, as with the tesseract command.
//
// libtesseract only loads language data when Text is called, so a missing
// language pack surfaces there as KindProcessing.
func (l *Library) Recognize(ctx context.Context, img image.Image, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newError(KindUnexpected, "recognize", err)
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", newError(KindUnexpected, "recognize", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if l.tessdataDir != "" {
		if err := client.SetTessdataPrefix(l.tessdataDir); err != nil {
			return "", newError(KindProcessing, "recognize", fmt.Errorf("failed to set tessdata path: %w", err))
		}
	}

	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		return "", newError(KindProcessing, "recognize", fmt.Errorf("failed to set language: %w", err))
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", newError(KindUnexpected, "recognize", fmt.Errorf("failed to set image: %w", err))
	}

	if l.psm >= 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(l.psm)); err != nil {
			return "", newError(KindProcessing, "recognize", fmt.Errorf("failed to set page segmentation mode: %w", err))
		}
	}

	l.log.Debug("running gosseract", "language", language, "image_bytes", len(data))
	text, err := client.Text()
	if err != nil {
		return "", newError(KindProcessing, "recognize", fmt.Errorf("OCR failed: %w", err))
	}
	return text, nil
}

// Languages lists the traineddata files in libtesseract's data path.
func (l *Library) Languages(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(KindUnexpected, "languages", err)
	}
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return nil, newError(KindQuery, "languages", err)
	}
	return langs, nil
}
