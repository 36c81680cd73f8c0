//go:build gosseract

package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/Graciano-B-L-Junior/Projeto-comparador-encarte/internal/config"
)

func newTestLibrary(t *testing.T) Engine {
	t.Helper()
	eng, err := New(config.Engine{Backend: config.BackendGosseract, PageSegMode: -1}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return eng
}

func TestLibrary_Version(t *testing.T) {
	eng := newTestLibrary(t)
	if eng.Name() != "gosseract" {
		t.Errorf("Name() = %q", eng.Name())
	}
	version, err := eng.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	t.Logf("libtesseract version: %s", version)
}

func TestLibrary_Recognize(t *testing.T) {
	eng := newTestLibrary(t)

	text, err := eng.Recognize(context.Background(), textImage("HELLO WORLD", 4), "eng")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	t.Logf("Extracted text: %q", text)
}

func TestLibrary_UnknownLanguage(t *testing.T) {
	eng := newTestLibrary(t)

	_, err := eng.Recognize(context.Background(), textImage("TEST", 4), "zz_not_a_language")
	if !errors.Is(err, ErrProcessing) {
		t.Errorf("expected ErrProcessing, got %v", err)
	}
}
