// Package imaging is the image-handling collaborator of the OCR diagnostic.
//
// It opens an image file into memory, reports metadata about it, and prepares
// the decoded image for the OCR engine. All operations work with standard Go
// image.Image values and use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Supported Formats
//
// Open decodes PNG, JPEG and GIF (standard library) plus BMP, TIFF and WebP
// (golang.org/x/image). JPEG and TIFF files are rotated according to their
// EXIF orientation tag, which matters for photos of printed flyers taken
// with a phone.
//
// # Coordinate System
//
// For regions, (x1,y1) is inclusive (top-left) and (x2,y2) is exclusive
// (bottom-right), matching image.Rectangle.
//
// # Preprocessing
//
// Preprocess is opt-in. By default the image reaches the engine exactly as
// decoded. When enabled it can upscale small images, convert to grayscale,
// stretch contrast, sharpen and binarize, the usual steps that help Tesseract
// on low quality scans.
//
// # Quality Assessment
//
// Assess measures the properties that most often explain an empty OCR result:
// image size and the lightness spread between text and background. Its Hints
// are shown to the operator when no text is detected.
//
// # Text Regions
//
// FindTextRegions is an OCR-free heuristic that slides a window over the
// image's edge map and keeps areas whose edge density and direction look like
// lines of print. The regions it returns are used as --region suggestions.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing files (the error wraps fs.ErrNotExist)
//   - Files that are not a supported image format
//   - Regions outside the image bounds or with x1 >= x2 or y1 >= y2
//   - Encoding errors when producing PNG bytes for the engine
package imaging
