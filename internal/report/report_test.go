package report

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/imaging"
)

func newTestReporter() (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, true), &buf
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestNoColor(t *testing.T) {
	r, buf := newTestReporter()
	r.Banner()
	r.EngineFound("5.3.0")
	r.FileNotFound("x.png", false)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes, got %q", buf.String())
	}
}

func TestBannerAndFooter(t *testing.T) {
	r, buf := newTestReporter()
	r.Banner()
	r.Footer()

	want := "--- OCR engine test ---\n\n--- End of test ---\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEngineFound(t *testing.T) {
	r, buf := newTestReporter()
	r.EngineFound("5.3.0")
	assertContains(t, buf.String(), "Tesseract OCR found! Version: 5.3.0")
}

func TestEngineNotFound(t *testing.T) {
	t.Run("default command", func(t *testing.T) {
		r, buf := newTestReporter()
		r.EngineNotFound(config.DefaultCommand)

		out := buf.String()
		assertContains(t, out, "not found in the system PATH", "--tesseract", config.EnvTesseractCmd)
		if strings.Contains(out, "Looked for") {
			t.Errorf("default command should not be echoed:\n%s", out)
		}
	})

	t.Run("custom command", func(t *testing.T) {
		r, buf := newTestReporter()
		r.EngineNotFound(`C:\Program Files\Tesseract-OCR\tesseract.exe`)
		assertContains(t, buf.String(), `Looked for: C:\Program Files\Tesseract-OCR\tesseract.exe`)
	})
}

func TestEngineQueryFailed(t *testing.T) {
	r, buf := newTestReporter()
	r.EngineQueryFailed(errors.New("exit status 127"))
	assertContains(t, buf.String(), "ERROR while querying the Tesseract version: exit status 127")
}

func TestFileNotFound(t *testing.T) {
	r, buf := newTestReporter()
	r.FileNotFound("teste.png", false)
	assertContains(t, buf.String(), "Image file not found at 'teste.png'", "check the file name and path")

	r, buf = newTestReporter()
	r.FileNotFound("teste.png", true)
	out := buf.String()
	assertContains(t, out, "(checked again)")
	if strings.Contains(out, "check the file name") {
		t.Errorf("recheck report should be a single line:\n%s", out)
	}
}

func TestText(t *testing.T) {
	r, buf := newTestReporter()
	r.TextHeader("encarte.png")
	r.Text("OFERTA\nArroz 5kg\n\f")

	want := "\n--- Text extracted from image ('encarte.png') ---\nOFERTA\nArroz 5kg\n\f\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNoText(t *testing.T) {
	r, buf := newTestReporter()
	r.NoText("por", []string{"The image looks blank."})

	assertContains(t, buf.String(),
		"No text was detected",
		"Tips:",
		"clear, legible text",
		"'por' language pack",
		"contrast, resolution",
		"- The image looks blank.")
}

func TestProcessingError(t *testing.T) {
	r, buf := newTestReporter()
	r.ProcessingError("xyz", errors.New("Failed loading language 'xyz'"))
	assertContains(t, buf.String(),
		"Tesseract ERROR while processing the image: Failed loading language 'xyz'",
		"language is not installed",
		"(xyz)")
}

func TestUnexpected(t *testing.T) {
	r, buf := newTestReporter()
	r.Unexpected(errors.New("image: unknown format"))
	assertContains(t, buf.String(), "unexpected error occurred while processing the image: image: unknown format")
}

func TestRunMessages(t *testing.T) {
	r, buf := newTestReporter()
	r.TryingImage("teste.png")
	r.FixInstallation()
	assertContains(t, buf.String(), "Trying to process image: 'teste.png'", "Fix the Tesseract installation and try again.")
}

func TestLanguages(t *testing.T) {
	tests := []struct {
		name      string
		language  string
		marked    []string
		installed bool
	}{
		{name: "single", language: "por", marked: []string{"  * por"}, installed: true},
		{name: "combined", language: "por+eng", marked: []string{"  * por", "  * eng"}, installed: true},
		{name: "missing", language: "deu", installed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestReporter()
			r.Languages("tesseract-cli", []string{"eng", "osd", "por"}, tt.language)

			out := buf.String()
			assertContains(t, out, "(tesseract-cli): 3", "    osd")
			assertContains(t, out, tt.marked...)
			if got := strings.Contains(out, "is not installed"); got == tt.installed {
				t.Errorf("not-installed warning = %v, want %v:\n%s", got, !tt.installed, out)
			}
		})
	}
}

func TestImageInfo(t *testing.T) {
	info := &imaging.ImageInfo{
		Path: "encarte.png", Width: 120, Height: 80, Format: "png",
		ColorDepth: "8-bit", FileSizeBytes: 2048,
	}

	r, buf := newTestReporter()
	r.ImageInfo(info, imaging.Quality{Width: 120, Height: 80, Samples: 9600, MeanLightness: 0.9, Spread: 0.8}, nil)
	out := buf.String()
	assertContains(t, out, "encarte.png", "120x80", "png", "2048 bytes", "Text areas:  none found",
		"Possible OCR problems", "120x80 pixels")

	info.Width, info.Height = 1200, 800
	r, buf = newTestReporter()
	var regions []imaging.TextRegion
	for i := 0; i < 7; i++ {
		regions = append(regions, imaging.TextRegion{Bounds: image.Rect(10, 40*i, 210, 40*i+30), Confidence: 0.5})
	}
	r.ImageInfo(info, imaging.Quality{Width: 1200, Height: 800, Samples: 40000, MeanLightness: 0.9, Spread: 0.8}, regions)
	assertContains(t, buf.String(), "No quality problems detected", "Text areas:  7", "10,0,210,30", "... 2 more")
}
