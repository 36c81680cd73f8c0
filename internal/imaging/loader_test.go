package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage creates a uniform RGBA image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// createPatternImage creates an image with a black bar on white, roughly the
// contrast of printed text.
func createPatternImage(width, height int) *image.RGBA {
	img := createInMemoryImage(width, height, color.White)
	for y := height / 3; y < height/2; y++ {
		for x := width / 10; x < width-width/10; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// writePNG encodes img into dir and returns the file path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	path := writePNG(t, t.TempDir(), "flyer.png", createPatternImage(120, 80))

	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 80 {
		t.Errorf("dimensions: got %dx%d, want 120x80", bounds.Dx(), bounds.Dy())
	}
}

func TestOpen_NonExistentFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("Open should fail for non-existent file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
	}
}

func TestOpen_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	if err := os.WriteFile(path, []byte("this is not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatal("Open should fail for invalid image data")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Error("decode failure must not look like a missing file")
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(createPatternImage(40, 20))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	// PNG signature
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG stream")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode encoded PNG: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("round trip dimensions: got %v", img.Bounds())
	}
}

func TestLoadImageInfo_PNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "info.png", createInMemoryImage(64, 32, color.RGBA{10, 20, 30, 255}))

	info, _, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 64 || info.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %q, want 8-bit", info.ColorDepth)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
	if info.Path != path {
		t.Errorf("Path: got %q, want %q", info.Path, path)
	}
}

func TestLoadImageInfo_ReturnsDecodedImage(t *testing.T) {
	src := createPatternImage(48, 24)
	path := writePNG(t, t.TempDir(), "decoded.png", src)

	info, img, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if img == nil {
		t.Fatal("LoadImageInfo returned a nil image")
	}
	if img.Bounds().Dx() != info.Width || img.Bounds().Dy() != info.Height {
		t.Errorf("image bounds %v do not match info %dx%d", img.Bounds(), info.Width, info.Height)
	}

	r, g, b, _ := img.At(24, 10).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel inside the bar: got (%d,%d,%d), want black", r>>8, g>>8, b>>8)
	}
}

func TestLoadImageInfo_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := jpeg.Encode(f, createPatternImage(50, 40), nil); err != nil {
		f.Close()
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	f.Close()

	info, _, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "jpeg" {
		t.Errorf("Format: got %q, want jpeg", info.Format)
	}
	if info.HasAlpha {
		t.Error("JPEG should not report an alpha channel")
	}
}

func TestLoadImageInfo_UnknownExtension(t *testing.T) {
	path := writePNG(t, t.TempDir(), "scan.img", createInMemoryImage(10, 10, color.White))

	info, _, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "unknown" {
		t.Errorf("Format: got %q, want unknown", info.Format)
	}
}

func TestLoadImageInfo_NonExistentFile(t *testing.T) {
	_, _, err := LoadImageInfo("/nonexistent/path/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
