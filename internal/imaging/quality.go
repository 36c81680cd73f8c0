package imaging

import (
	"fmt"
	"image"
	"math"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Assessment thresholds.
const (
	// MinShortSide is the smallest width/height, in pixels, below which small
	// print is unlikely to be legible to Tesseract.
	MinShortSide = 300

	// LowContrastSpread is the CIE L* spread (0-1) under which text and
	// background are too close in lightness.
	LowContrastSpread = 0.25

	// BlankSpread is the spread under which the image is treated as blank.
	BlankSpread = 0.02

	// maxSamplesPerAxis caps the sampling grid so large photos stay cheap.
	maxSamplesPerAxis = 200
)

// Quality describes the properties of an image that most affect OCR.
type Quality struct {
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int

	// Samples is the number of opaque pixels measured.
	Samples int

	// MeanLightness is the average CIE L* of the samples, 0 (black) to 1 (white).
	MeanLightness float64

	// Spread is the L* distance between the 5th and 95th percentile samples.
	// Dark text on a light background typically scores above 0.5.
	Spread float64
}

// Assess measures size and lightness spread of img.
//
// Pixels are sampled on a regular grid of at most 200x200 points and converted
// to CIE L*a*b* with go-colorful, whose L* tracks perceived lightness much more
// closely than a plain RGB average. Fully transparent pixels are skipped. The
// spread uses the 5th and 95th percentiles so a few stray specks of noise do not
// make a blank image look high contrast.
func Assess(img image.Image) Quality {
	bounds := img.Bounds()
	q := Quality{Width: bounds.Dx(), Height: bounds.Dy()}
	if q.Width == 0 || q.Height == 0 {
		return q
	}

	stepX := max(1, q.Width/maxSamplesPerAxis)
	stepY := max(1, q.Height/maxSamplesPerAxis)

	lightness := make([]float64, 0, (q.Width/stepX+1)*(q.Height/stepY+1))
	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			l = math.Max(0, math.Min(1, l))
			lightness = append(lightness, l)
			sum += l
		}
	}

	q.Samples = len(lightness)
	if q.Samples == 0 {
		return q
	}
	q.MeanLightness = sum / float64(q.Samples)

	slices.Sort(lightness)
	lo := lightness[percentileIndex(q.Samples, 0.05)]
	hi := lightness[percentileIndex(q.Samples, 0.95)]
	q.Spread = hi - lo

	return q
}

func percentileIndex(n int, p float64) int {
	i := int(math.Round(p * float64(n-1)))
	return max(0, min(n-1, i))
}

// Blank reports whether the image has essentially a single lightness.
func (q Quality) Blank() bool {
	return q.Samples == 0 || q.Spread < BlankSpread
}

// Hints returns operator-facing suggestions derived from the assessment.
// An image with no detected problems returns no hints.
func (q Quality) Hints() []string {
	var hints []string

	if short := min(q.Width, q.Height); short > 0 && short < MinShortSide {
		hints = append(hints, fmt.Sprintf(
			"The image is only %dx%d pixels; scan or photograph it at a higher resolution, or try --upscale.",
			q.Width, q.Height))
	}

	switch {
	case q.Blank():
		hints = append(hints, "The image looks blank (one uniform color); check that the right file was used.")
	case q.Spread < LowContrastSpread:
		hints = append(hints, fmt.Sprintf(
			"Text and background have low contrast (lightness spread %.0f%%); try --preprocess or --binarize.",
			q.Spread*100))
	}

	return hints
}
