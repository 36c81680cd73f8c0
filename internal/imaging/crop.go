package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion extracts a rectangular region from an image.
//
// Parameters:
//   - img: The source image.
//   - rect: Region in the source image's coordinates. Min is inclusive and Max
//     is exclusive.
//
// Returns:
//   - image.Image: The cropped region, re-based so its top-left pixel is (0,0).
//   - error: Non-nil if the region is empty or extends beyond the image bounds.
//
// Regions are validated rather than clamped: a region that does not fit is
// usually a typo in the coordinates, and silently OCR-ing a different area
// would hide it.
func CropRegion(img image.Image, rect image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()

	if rect.Min.X >= rect.Max.X || rect.Min.Y >= rect.Max.Y {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(img, rect), nil
}
