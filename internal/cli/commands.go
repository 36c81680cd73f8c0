package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/diagnose"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/imaging"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/ocr"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Only check that the Tesseract engine is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			if !runner.CheckEngineAvailable(cmd.Context()) {
				a.report.FixInstallation()
				a.setOutcome(diagnose.OutcomeEngineUnavailable)
			}
			return nil
		},
	}
}

func (a *app) languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the installed Tesseract language packs",
		Long: `List the installed Tesseract language packs. Packs selected with --lang are
marked with "*", and a warning is printed when one of them is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			langs, err := eng.Languages(cmd.Context())
			if err != nil {
				a.log.Debug("language query failed", "kind", ocr.KindOf(err), "error", err)
				if ocr.KindOf(err) != ocr.KindEngineNotFound {
					return fmt.Errorf("failed to list languages: %w", err)
				}
				a.report.EngineNotFound(a.cfg.Engine.Command)
				a.setOutcome(diagnose.OutcomeEngineUnavailable)
				return nil
			}
			a.report.Languages(eng.Name(), langs, a.cfg.Language)
			return nil
		},
	}
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [image]",
		Short: "Show image metadata and warn about properties that hurt OCR",
		Long: `Show image metadata (size, format, color depth, file size), the areas that
look like text (printed as x1,y1,x2,y2 for --region) and a quick quality
assessment: images that are too small, blank or low in contrast are flagged
with a suggestion. The engine is not used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.ImagePath
			if len(args) == 1 {
				path = args[0]
			}

			info, img, err := imaging.LoadImageInfo(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					a.report.FileNotFound(path, false)
					a.setOutcome(diagnose.OutcomeFileNotFound)
					return nil
				}
				return err
			}

			regions := imaging.FindTextRegions(img, imaging.DefaultTextConfidence)
			a.report.ImageInfo(info, imaging.Assess(img), regions)
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version output needs no configuration, so a bad setting does not block it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			b := a.opts.Build
			fmt.Fprintf(w, "encarte-ocr %s\n", b.Version)
			fmt.Fprintf(w, "  Git commit:  %s\n", orUnknown(b.GitCommit))
			fmt.Fprintf(w, "  Build time:  %s\n", orUnknown(b.BuildTime))
			fmt.Fprintf(w, "  Go version:  %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
