package diagnose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/imaging"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/logging"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/ocr"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/report"
)

// Runner performs the diagnostic steps against one engine.
type Runner struct {
	cfg    *config.Config
	engine ocr.Engine
	report *report.Reporter
	log    *slog.Logger

	// open decodes the image file; imaging.Open outside tests.
	open func(path string) (image.Image, error)
}

// NewRunner creates a Runner. A nil logger discards logs.
func NewRunner(cfg *config.Config, engine ocr.Engine, rep *report.Reporter, log *slog.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{cfg: cfg, engine: engine, report: rep, log: log, open: imaging.Open}
}

// CheckEngineAvailable queries the engine version and reports whether the
// engine is usable. Nothing is cached: every call queries the engine again.
func (r *Runner) CheckEngineAvailable(ctx context.Context) bool {
	version, err := r.engine.Version(ctx)
	if err != nil {
		r.log.Debug("engine version query failed", "engine", r.engine.Name(), "kind", ocr.KindOf(err), "error", err)
		if ocr.KindOf(err) == ocr.KindEngineNotFound {
			r.report.EngineNotFound(r.cfg.Engine.Command)
		} else {
			r.report.EngineQueryFailed(err)
		}
		return false
	}

	r.log.Info("engine available", "engine", r.engine.Name(), "version", version)
	r.report.EngineFound(version)
	return true
}

// ExtractText recognizes the text in the image at path using the given
// language code and prints it.
//
// On success it returns the engine output exactly as produced, with ok set,
// even when that output is blank. On any failure it reports the problem and
// returns "", false.
func (r *Runner) ExtractText(ctx context.Context, path, language string) (text string, ok bool) {
	text, outcome := r.extract(ctx, path, language)
	return text, outcome.Extracted()
}

func (r *Runner) extract(ctx context.Context, path, language string) (string, Outcome) {
	log := r.log.With("image", path, "language", language)

	// Any stat failure, including a permission error on a parent directory,
	// counts as a missing file.
	if _, err := os.Stat(path); err != nil {
		log.Debug("image stat failed", "error", err)
		r.report.FileNotFound(path, false)
		return "", OutcomeFileNotFound
	}

	img, err := r.open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.report.FileNotFound(path, true)
			return "", OutcomeFileNotFound
		}
		r.report.Unexpected(err)
		return "", OutcomeUnexpected
	}
	log.Debug("image decoded", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	img, err = r.prepare(img)
	if err != nil {
		r.report.Unexpected(err)
		return "", OutcomeUnexpected
	}

	text, err := r.engine.Recognize(ctx, img, language)
	if err != nil {
		log.Debug("recognition failed", "kind", ocr.KindOf(err), "error", err)
		switch ocr.KindOf(err) {
		case ocr.KindProcessing:
			r.report.ProcessingError(language, err)
			return "", OutcomeProcessingError
		case ocr.KindEngineNotFound:
			r.report.EngineNotFound(r.cfg.Engine.Command)
			return "", OutcomeEngineUnavailable
		default:
			r.report.Unexpected(err)
			return "", OutcomeUnexpected
		}
	}
	log.Info("recognition finished", "chars", len(text))

	r.report.TextHeader(path)
	if strings.TrimSpace(text) == "" {
		r.report.NoText(language, r.noTextHints(img))
		return text, OutcomeNoText
	}
	r.report.Text(text)
	return text, OutcomeTextFound
}

// prepare applies the configured region crop and preprocessing. With neither
// configured img is returned unchanged.
func (r *Runner) prepare(img image.Image) (image.Image, error) {
	if reg := r.cfg.Region; reg != nil {
		origin := img.Bounds().Min
		rect := image.Rect(reg.X1, reg.Y1, reg.X2, reg.Y2).Add(origin)
		cropped, err := imaging.CropRegion(img, rect)
		if err != nil {
			return nil, err
		}
		r.log.Debug("cropped to region", "region", reg.String())
		img = cropped
	}

	opts := imaging.PreprocessOptions{
		Enhance:           r.cfg.Preprocess.Enabled,
		BinarizeThreshold: uint8(r.cfg.Preprocess.Binarize),
		UpscaleMinWidth:   r.cfg.Preprocess.UpscaleMinWidth,
	}
	if opts.Active() {
		img = imaging.Preprocess(img, opts)
		r.log.Debug("preprocessed image", "enhance", opts.Enhance,
			"binarize", opts.BinarizeThreshold, "upscale_min_width", opts.UpscaleMinWidth)
	}
	return img, nil
}

// noTextHints inspects img for likely causes of an empty result.
func (r *Runner) noTextHints(img image.Image) []string {
	hints := imaging.Assess(img).Hints()
	if r.cfg.Region != nil {
		return hints
	}
	if regions := imaging.FindTextRegions(img, imaging.DefaultTextConfidence); len(regions) > 0 {
		hints = append(hints, fmt.Sprintf(
			"The image has %d text-like area(s); try recognizing only the clearest one with --region %s.",
			len(regions), regions[0]))
	}
	return hints
}

// Run performs the fixed diagnostic sequence: banner, availability check,
// extraction of the configured image when the engine is available, footer.
func (r *Runner) Run(ctx context.Context) Outcome {
	r.report.Banner()
	defer r.report.Footer()

	if !r.CheckEngineAvailable(ctx) {
		r.report.FixInstallation()
		return OutcomeEngineUnavailable
	}

	r.report.TryingImage(r.cfg.ImagePath)
	_, outcome := r.extract(ctx, r.cfg.ImagePath, r.cfg.Language)
	return outcome
}
