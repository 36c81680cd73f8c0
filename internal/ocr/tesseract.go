package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/imaging"
	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/logging"
)

// Tesseract runs the tesseract executable as a child process.
//
// The executable is located on every call, so installing Tesseract (or fixing
// PATH) between two calls is picked up without restarting.
type Tesseract struct {
	command     string
	tessdataDir string
	psm         int
	timeout     time.Duration
	log         *slog.Logger

	// lookPath resolves command; exec.LookPath unless replaced in tests.
	lookPath func(string) (string, error)
}

// NewTesseract creates a CLI engine from cfg. A nil logger discards logs.
func NewTesseract(cfg config.Engine, log *slog.Logger) *Tesseract {
	if log == nil {
		log = logging.Discard()
	}
	command := cfg.Command
	if command == "" {
		command = config.DefaultCommand
	}
	return &Tesseract{
		command:     command,
		tessdataDir: cfg.TessdataDir,
		psm:         cfg.PageSegMode,
		timeout:     cfg.Timeout,
		log:         log.With("engine", "tesseract-cli"),
		lookPath:    exec.LookPath,
	}
}

// Name returns "tesseract-cli".
func (t *Tesseract) Name() string { return "tesseract-cli" }

// Command returns the configured executable name or path.
func (t *Tesseract) Command() string { return t.command }

// resolve locates the executable. Any lookup failure is KindEngineNotFound.
func (t *Tesseract) resolve() (string, error) {
	path, err := t.lookPath(t.command)
	if err != nil {
		return "", newError(KindEngineNotFound, "lookup", err)
	}
	t.log.Debug("resolved tesseract executable", "command", t.command, "path", path)
	return path, nil
}

// Version runs `tesseract --version` and returns the version number.
//
// Older releases print the banner on stderr, so stdout and stderr are read
// together.
func (t *Tesseract) Version(ctx context.Context) (string, error) {
	path, err := t.resolve()
	if err != nil {
		return "", err
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return "", newError(classifyRun(ctx, err, KindQuery), "version", withOutput(err, out))
	}

	version, err := ParseVersion(string(out))
	if err != nil {
		return "", newError(KindQuery, "version", err)
	}
	return version, nil
}

// Recognize pipes img to tesseract as PNG and returns its stdout verbatim.
//
// The command line is:
//
//	tesseract stdin stdout -l <language> [--tessdata-dir DIR] [--psm N]
//
// A non-zero exit status is KindProcessing and carries tesseract's stderr,
// which names the missing language pack when that is the cause. Anything
// tesseract writes to stderr on success (resolution estimates, warnings) is
// only logged.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, language string) (string, error) {
	path, err := t.resolve()
	if err != nil {
		return "", err
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", newError(KindUnexpected, "recognize", err)
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	args := t.recognizeArgs(language)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	t.log.Debug("running tesseract", "args", args, "image_bytes", len(data))
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return "", newError(classifyRun(ctx, err, KindProcessing), "recognize", withOutput(err, stderr.Bytes()))
	}
	t.log.Debug("tesseract finished",
		"elapsed", time.Since(start),
		"stdout_bytes", stdout.Len(),
		"stderr", strings.TrimSpace(stderr.String()))

	return stdout.String(), nil
}

func (t *Tesseract) recognizeArgs(language string) []string {
	args := []string{"stdin", "stdout", "-l", language}
	if t.tessdataDir != "" {
		args = append(args, "--tessdata-dir", t.tessdataDir)
	}
	if t.psm >= 0 {
		args = append(args, "--psm", strconv.Itoa(t.psm))
	}
	return args
}

// Languages runs `tesseract --list-langs`.
func (t *Tesseract) Languages(ctx context.Context) ([]string, error) {
	path, err := t.resolve()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	args := []string{"--list-langs"}
	if t.tessdataDir != "" {
		args = append([]string{"--tessdata-dir", t.tessdataDir}, args...)
	}

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return nil, newError(classifyRun(ctx, err, KindQuery), "languages", withOutput(err, out))
	}
	return ParseLanguages(string(out)), nil
}

var versionPattern = regexp.MustCompile(`(?mi)^\s*tesseract\s+v?(\d+(?:\.\d+)*\S*)`)

// ParseVersion extracts the version number from `tesseract --version` output,
// e.g. "tesseract 5.3.0\n leptonica-1.82.0 ..." yields "5.3.0".
func ParseVersion(output string) (string, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
		return "", fmt.Errorf("unrecognized version output %q", first)
	}
	return m[1], nil
}

// ParseLanguages reads `tesseract --list-langs` output. The header line
// ("List of available languages in ...") is skipped.
func ParseLanguages(output string) []string {
	var langs []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of available languages") {
			continue
		}
		langs = append(langs, line)
	}
	return langs
}

// classifyRun maps an exec failure to a Kind. fallback applies when the
// process ran and exited non-zero.
func classifyRun(ctx context.Context, err error, fallback Kind) Kind {
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		return KindUnexpected
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return KindEngineNotFound
	case errors.As(err, &exitErr):
		return fallback
	default:
		return KindUnexpected
	}
}

// withOutput attaches the trimmed process output to err.
func withOutput(err error, out []byte) error {
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, msg)
}
