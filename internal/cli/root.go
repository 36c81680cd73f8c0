// Package cli builds the encarte-ocr command tree.
//
// Configuration is assembled in a fixed order: config.Default, then the
// environment (config.FromEnv), then command-line flags, then Validate. The
// root command runs the full diagnostic; subcommands expose its pieces.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/diagnose"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/logging"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/ocr"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/report"
)

// BuildInfo is the build metadata injected through ldflags.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}

// EngineFactory builds the OCR engine for a run.
type EngineFactory func(cfg config.Engine, log *slog.Logger) (ocr.Engine, error)

// Options wires the command tree to its environment. Zero fields fall back
// to the process defaults.
type Options struct {
	Build     BuildInfo
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv config.LookupFunc
	NewEngine EngineFactory
}

// app holds the state of one invocation.
type app struct {
	opts Options
	cfg  *config.Config

	// Flag values that need conversion before they reach cfg.
	backend string
	region  string

	log      *slog.Logger
	report   *report.Reporter
	exitCode int
}

// Execute runs the command line args and returns the process exit status.
//
// Without --strict a completed diagnostic exits 0 whatever it found; with
// --strict the status reflects the outcome (see diagnose.Outcome.ExitCode).
// Usage and configuration errors exit 1.
func Execute(ctx context.Context, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.NewEngine == nil {
		opts.NewEngine = ocr.New
	}
	if opts.Build.Version == "" {
		opts.Build.Version = "dev"
	}

	a := &app{
		opts: opts,
		cfg:  config.Default().FromEnv(opts.LookupEnv),
	}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
		return 1
	}
	return a.exitCode
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encarte-ocr [image]",
		Short: "Check the Tesseract OCR installation and extract text from an image",
		Long: `encarte-ocr checks that the Tesseract OCR engine is reachable and, if it is,
extracts the text of one image and prints it together with troubleshooting
hints.

With no arguments it processes teste.png in the current directory using the
Portuguese ("por") language pack.

Environment:
  ENCARTE_OCR_TESSERACT_CMD   tesseract executable name or path
  ENCARTE_OCR_BACKEND         cli or gosseract
  ENCARTE_OCR_LOG_LEVEL       debug, info, warn or error
  TESSDATA_PREFIX             language pack directory
  NO_COLOR                    disable colored output

Examples:
  encarte-ocr                                  # teste.png, language por
  encarte-ocr flyer.jpg -l por+eng             # two language packs
  encarte-ocr flyer.jpg --region 0,0,800,400   # only the top banner
  encarte-ocr flyer.jpg --preprocess --upscale 1600
  encarte-ocr --tesseract "C:\Program Files\Tesseract-OCR\tesseract.exe"`,
		Version:           a.opts.Build.Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.ImagePath = args[0]
			}
			runner, err := a.runner()
			if err != nil {
				return err
			}
			outcome := runner.Run(cmd.Context())
			a.log.Debug("run finished", "outcome", outcome.String())
			a.setOutcome(outcome)
			return nil
		},
	}
	cmd.SetVersionTemplate("encarte-ocr {{.Version}}\n")

	a.bindFlags(cmd)
	cmd.AddCommand(a.checkCmd(), a.languagesCmd(), a.infoCmd(), a.versionCmd())
	return cmd
}

func (a *app) bindFlags(cmd *cobra.Command) {
	cfg := a.cfg
	a.backend = string(cfg.Engine.Backend)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfg.Language, "lang", "l", cfg.Language, `Tesseract language code, e.g. "por", "eng" or "por+eng"`)
	pf.StringVar(&cfg.Engine.Command, "tesseract", cfg.Engine.Command, "tesseract executable name or path")
	pf.StringVar(&a.backend, "backend", a.backend, `OCR backend: "cli" or "gosseract"`)
	pf.StringVar(&cfg.Engine.TessdataDir, "tessdata-dir", cfg.Engine.TessdataDir, "directory containing the language packs")
	pf.IntVar(&cfg.Engine.PageSegMode, "psm", cfg.Engine.PageSegMode, "Tesseract page segmentation mode (0-13, -1 keeps the engine default)")
	pf.DurationVar(&cfg.Engine.Timeout, "timeout", cfg.Engine.Timeout, "time limit for each engine call (0 means none)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level on stderr: debug, info, warn or error")
	pf.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	pf.BoolVar(&cfg.Strict, "strict", cfg.Strict, "exit with a non-zero status when the diagnostic fails")

	f := cmd.Flags()
	f.StringVarP(&cfg.ImagePath, "image", "i", cfg.ImagePath, "image to process")
	f.StringVar(&a.region, "region", "", "only recognize this rectangle, as x1,y1,x2,y2 in pixels")
	f.BoolVar(&cfg.Preprocess.Enabled, "preprocess", false, "grayscale, stretch contrast and sharpen before recognition")
	f.IntVar(&cfg.Preprocess.Binarize, "binarize", 0, "convert to black and white at this threshold (1-255)")
	f.IntVar(&cfg.Preprocess.UpscaleMinWidth, "upscale", 0, "enlarge images narrower than this many pixels")
}

// setup finishes the configuration and creates the logger and reporter.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg.Engine.Backend = config.Backend(a.backend)
	if a.region != "" {
		region, err := config.ParseRegion(a.region)
		if err != nil {
			return err
		}
		a.cfg.Region = region
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Every log line of one invocation carries the same run id.
	a.log = logging.New(a.opts.Stderr, a.cfg.LogLevel, a.cfg.NoColor).With("run", uuid.NewString())
	a.report = report.New(a.opts.Stdout, a.cfg.NoColor)
	a.log.Debug("configuration loaded",
		"command", cmd.Name(),
		"backend", a.cfg.Engine.Backend,
		"tesseract", a.cfg.Engine.Command,
		"image", a.cfg.ImagePath,
		"language", a.cfg.Language)
	return nil
}

// engine builds the configured engine. A construction failure that carries an
// engine error kind is deferred to the first engine call and reported there;
// anything else aborts the command.
func (a *app) engine() (ocr.Engine, error) {
	eng, err := a.opts.NewEngine(a.cfg.Engine, a.log)
	if err != nil {
		var engErr *ocr.Error
		if !errors.As(err, &engErr) {
			return nil, err
		}
		a.log.Debug("engine construction failed", "backend", a.cfg.Engine.Backend, "kind", engErr.Kind, "error", err)
		return ocr.Unavailable(string(a.cfg.Engine.Backend), err), nil
	}
	return eng, nil
}

func (a *app) runner() (*diagnose.Runner, error) {
	eng, err := a.engine()
	if err != nil {
		return nil, err
	}
	return diagnose.NewRunner(a.cfg, eng, a.report, a.log), nil
}

// setOutcome records the exit status for outcome under --strict.
func (a *app) setOutcome(outcome diagnose.Outcome) {
	if a.cfg.Strict {
		a.exitCode = outcome.ExitCode()
	}
}
