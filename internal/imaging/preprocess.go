package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Default preprocessing strengths used when PreprocessOptions.Enhance is set.
const (
	DefaultContrast     = 0.4 // bild contrast change, -1.0 to 1.0
	DefaultSharpenSigma = 1.0 // imaging.Sharpen gaussian sigma
)

// PreprocessOptions selects the cleanup steps applied before OCR.
// The zero value applies nothing.
type PreprocessOptions struct {
	// Enhance converts to grayscale, stretches contrast and sharpens.
	Enhance bool

	// BinarizeThreshold converts the image to pure black and white. Pixels with
	// luminance at or above the threshold become white. Zero disables it.
	BinarizeThreshold uint8

	// UpscaleMinWidth enlarges images narrower than this width, keeping the
	// aspect ratio. Zero disables it.
	UpscaleMinWidth int
}

// Active reports whether any step is enabled.
func (o PreprocessOptions) Active() bool {
	return o.Enhance || o.BinarizeThreshold > 0 || o.UpscaleMinWidth > 0
}

// Preprocess returns a cleaned-up copy of img for recognition.
//
// Steps run in a fixed order so that each one sees the output of the
// previous:
//
//  1. Upscale (Lanczos) when the image is narrower than UpscaleMinWidth.
//     Tesseract works best with glyphs around 30 pixels tall.
//  2. Enhance: grayscale, contrast stretch, sharpen.
//  3. Binarize at BinarizeThreshold.
//
// When no step is enabled img is returned unchanged.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	if !opts.Active() {
		return img
	}

	out := img
	if opts.UpscaleMinWidth > 0 && out.Bounds().Dx() > 0 && out.Bounds().Dx() < opts.UpscaleMinWidth {
		out = imaging.Resize(out, opts.UpscaleMinWidth, 0, imaging.Lanczos)
	}

	if opts.Enhance {
		out = imaging.Grayscale(out)
		out = adjust.Contrast(out, DefaultContrast)
		out = imaging.Sharpen(out, DefaultSharpenSigma)
	}

	if opts.BinarizeThreshold > 0 {
		out = segment.Threshold(out, opts.BinarizeThreshold)
	}

	return out
}
