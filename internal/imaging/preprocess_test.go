package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestPreprocess_NoOptionsReturnsSameImage(t *testing.T) {
	img := createPatternImage(50, 50)

	out := Preprocess(img, PreprocessOptions{})
	if out != image.Image(img) {
		t.Error("Preprocess with zero options should return the input unchanged")
	}
}

func TestPreprocess_Upscale(t *testing.T) {
	img := createPatternImage(100, 50)

	out := Preprocess(img, PreprocessOptions{UpscaleMinWidth: 400})
	bounds := out.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 200 {
		t.Errorf("upscaled dimensions: got %dx%d, want 400x200", bounds.Dx(), bounds.Dy())
	}
}

func TestPreprocess_UpscaleSkipsWideImages(t *testing.T) {
	img := createPatternImage(800, 100)

	out := Preprocess(img, PreprocessOptions{UpscaleMinWidth: 400})
	if out.Bounds().Dx() != 800 {
		t.Errorf("wide image should not be resized, got width %d", out.Bounds().Dx())
	}
}

func TestPreprocess_EnhanceProducesGray(t *testing.T) {
	img := createInMemoryImage(20, 20, color.RGBA{200, 30, 30, 255})

	out := Preprocess(img, PreprocessOptions{Enhance: true})

	r, g, b, _ := out.At(10, 10).RGBA()
	if r != g || g != b {
		t.Errorf("enhanced pixel should be gray, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestPreprocess_Binarize(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{200, 200, 200, 255})
	img.Set(2, 2, color.RGBA{40, 40, 40, 255})

	out := Preprocess(img, PreprocessOptions{BinarizeThreshold: 128})

	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("binarized image should be *image.Gray, got %T", out)
	}
	if got := gray.GrayAt(2, 2).Y; got != 0 {
		t.Errorf("dark pixel: got %d, want 0", got)
	}
	if got := gray.GrayAt(5, 5).Y; got != 255 {
		t.Errorf("light pixel: got %d, want 255", got)
	}
}

func TestPreprocessOptions_Active(t *testing.T) {
	tests := []struct {
		opts PreprocessOptions
		want bool
	}{
		{PreprocessOptions{}, false},
		{PreprocessOptions{Enhance: true}, true},
		{PreprocessOptions{BinarizeThreshold: 1}, true},
		{PreprocessOptions{UpscaleMinWidth: 10}, true},
	}
	for _, tt := range tests {
		if got := tt.opts.Active(); got != tt.want {
			t.Errorf("%+v.Active() = %v, want %v", tt.opts, got, tt.want)
		}
	}
}
