// Package report writes the console report: the status lines, extracted text
// and troubleshooting hints a user reads on stdout. Diagnostic logging is
// separate and goes through log/slog on stderr.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/imaging"
)

// Reporter prints report lines to a writer. Write errors are ignored, as with
// fmt.Println on stdout.
type Reporter struct {
	w io.Writer

	ok     *color.Color
	fail   *color.Color
	header *color.Color
	hint   *color.Color
}

// New returns a Reporter writing to w. With noColor set no ANSI escapes are
// written; otherwise fatih/color decides based on the terminal and NO_COLOR.
func New(w io.Writer, noColor bool) *Reporter {
	r := &Reporter{
		w:      w,
		ok:     color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
		header: color.New(color.FgCyan, color.Bold),
		hint:   color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{r.ok, r.fail, r.header, r.hint} {
			c.DisableColor()
		}
	}
	return r
}

func (r *Reporter) println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

func (r *Reporter) printf(format string, a ...any) {
	fmt.Fprintf(r.w, format, a...)
}

// Banner opens a run.
func (r *Reporter) Banner() {
	r.header.Fprintln(r.w, "--- OCR engine test ---")
}

// Footer closes a run.
func (r *Reporter) Footer() {
	r.println()
	r.header.Fprintln(r.w, "--- End of test ---")
}

// EngineFound reports a reachable engine.
func (r *Reporter) EngineFound(version string) {
	r.ok.Fprintf(r.w, "✅ Tesseract OCR found! Version: %s\n", version)
}

// EngineNotFound reports that the engine executable could not be located and
// how to fix it. command is the name or path that was looked up.
func (r *Reporter) EngineNotFound(command string) {
	r.fail.Fprintln(r.w, "❌ ERROR: Tesseract OCR was not found in the system PATH.")
	if command != "" && command != config.DefaultCommand {
		r.printf("   Looked for: %s\n", command)
	}
	r.println("   Please make sure Tesseract OCR is installed and")
	r.println("   added to the system PATH, or set its location with")
	r.printf("   --tesseract or the %s environment variable.\n", config.EnvTesseractCmd)
}

// EngineQueryFailed reports an engine that was found but whose version
// could not be read.
func (r *Reporter) EngineQueryFailed(err error) {
	r.fail.Fprintf(r.w, "❌ ERROR while querying the Tesseract version: %v\n", err)
}

// FixInstallation is printed when extraction is skipped.
func (r *Reporter) FixInstallation() {
	r.println()
	r.println("Fix the Tesseract installation and try again.")
}

// TryingImage announces the image about to be processed.
func (r *Reporter) TryingImage(path string) {
	r.println()
	r.printf("Trying to process image: '%s'\n", path)
}

// FileNotFound reports a missing image. recheck marks the case where the
// file passed the existence check but was gone when it was opened.
func (r *Reporter) FileNotFound(path string, recheck bool) {
	if recheck {
		r.fail.Fprintf(r.w, "❌ ERROR: Image file not found at '%s' (checked again).\n", path)
		return
	}
	r.fail.Fprintf(r.w, "❌ ERROR: Image file not found at '%s'\n", path)
	r.println("   Please check the file name and path.")
}

// TextHeader precedes the recognition result.
func (r *Reporter) TextHeader(path string) {
	r.println()
	r.header.Fprintf(r.w, "--- Text extracted from image ('%s') ---\n", path)
}

// Text prints recognized text exactly as the engine returned it, followed by
// a newline.
func (r *Reporter) Text(text string) {
	r.println(text)
}

// NoText reports a blank recognition result with the standard hints for
// language, followed by any extra hints about the image itself.
func (r *Reporter) NoText(language string, extra []string) {
	r.println("   (No text was detected or the text was illegible.)")
	r.hint.Fprintln(r.w, "   Tips:")
	r.println("   - Check that the image contains clear, legible text.")
	r.printf("   - Make sure the '%s' language pack is installed for Tesseract.\n", language)
	r.println("   - Try improving the image quality (contrast, resolution).")
	for _, h := range extra {
		r.printf("   - %s\n", h)
	}
}

// ProcessingError reports an engine failure while recognizing.
func (r *Reporter) ProcessingError(language string, err error) {
	r.fail.Fprintf(r.w, "❌ Tesseract ERROR while processing the image: %v\n", err)
	r.println("   This can happen if the requested language is not installed")
	r.printf("   or if there is a problem with the Tesseract installation (%s).\n", language)
}

// Unexpected reports any other failure.
func (r *Reporter) Unexpected(err error) {
	r.fail.Fprintf(r.w, "❌ An unexpected error occurred while processing the image: %v\n", err)
}

// Languages lists installed language packs, marking the ones selected by
// language (a code or "+"-joined codes).
func (r *Reporter) Languages(engine string, langs []string, language string) {
	selected := make(map[string]bool)
	for _, code := range strings.Split(language, "+") {
		selected[code] = true
	}

	r.header.Fprintf(r.w, "🌐 Installed language packs (%s): %d\n", engine, len(langs))
	for _, l := range langs {
		mark := " "
		if selected[l] {
			mark = "*"
		}
		r.printf("  %s %s\n", mark, l)
	}
	if language != "" && !containsAll(langs, language) {
		r.hint.Fprintf(r.w, "⚠️  Language '%s' is not installed.\n", language)
	}
}

// containsAll reports whether every code of a "+"-joined language is in langs.
func containsAll(langs []string, language string) bool {
	have := make(map[string]bool, len(langs))
	for _, l := range langs {
		have[l] = true
	}
	for _, code := range strings.Split(language, "+") {
		if !have[code] {
			return false
		}
	}
	return true
}

// maxListedRegions caps the text regions printed by ImageInfo.
const maxListedRegions = 5

// ImageInfo prints image metadata, the quality assessment and the most
// likely text regions.
func (r *Reporter) ImageInfo(info *imaging.ImageInfo, q imaging.Quality, regions []imaging.TextRegion) {
	r.header.Fprintf(r.w, "🖼️  %s\n", info.Path)
	r.printf("  Size:        %dx%d\n", info.Width, info.Height)
	r.printf("  Format:      %s\n", info.Format)
	r.printf("  Color depth: %s\n", info.ColorDepth)
	r.printf("  Alpha:       %t\n", info.HasAlpha)
	r.printf("  File size:   %d bytes\n", info.FileSizeBytes)
	r.printf("  Lightness:   mean %.2f, spread %.2f (%d samples)\n", q.MeanLightness, q.Spread, q.Samples)

	if len(regions) == 0 {
		r.println("  Text areas:  none found")
	} else {
		r.printf("  Text areas:  %d (use with --region)\n", len(regions))
		for i, reg := range regions {
			if i == maxListedRegions {
				r.printf("    ... %d more\n", len(regions)-maxListedRegions)
				break
			}
			r.printf("    %-20s confidence %.2f\n", reg.String(), reg.Confidence)
		}
	}

	hints := q.Hints()
	if len(hints) == 0 {
		r.ok.Fprintln(r.w, "✅ No quality problems detected.")
		return
	}
	r.hint.Fprintln(r.w, "⚠️  Possible OCR problems:")
	for _, h := range hints {
		r.printf("   - %s\n", h)
	}
}
