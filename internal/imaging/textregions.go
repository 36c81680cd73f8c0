package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

// TextRegion is an area that looks like it contains lines of text.
type TextRegion struct {
	// Bounds is in the source image's coordinates, Max exclusive. It can be
	// passed to CropRegion unchanged.
	Bounds image.Rectangle

	// Confidence is a heuristic score from 0 to 1.
	Confidence float64
}

// String formats the bounds as x1,y1,x2,y2, the --region syntax.
func (r TextRegion) String() string {
	b := r.Bounds
	return fmt.Sprintf("%d,%d,%d,%d", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// DefaultTextConfidence is the minimum confidence used for hints.
const DefaultTextConfidence = 0.3

const (
	// edgeThreshold is the gray level step that counts as an edge.
	edgeThreshold = 30

	minEdgeDensity = 0.05
	maxEdgeDensity = 0.4
	idealDensity   = 0.2
)

// textWindows are the sliding window sizes, roughly one line of small to
// large print.
var textWindows = []image.Point{
	{X: 80, Y: 25},
	{X: 100, Y: 30},
	{X: 150, Y: 40},
	{X: 200, Y: 50},
}

// FindTextRegions locates areas likely to contain text without running OCR.
//
// A window slides over the image's edge map. Windows whose edge density is
// typical of printed glyphs and whose edges run mostly horizontally score
// high. Overlapping hits are merged and the result is sorted by confidence,
// highest first. Regions scoring below minConfidence are dropped.
func FindTextRegions(img image.Image, minConfidence float64) []TextRegion {
	bounds := img.Bounds()
	edges := newEdgeMap(img)

	var candidates []TextRegion
	for _, win := range textWindows {
		if win.X > edges.w || win.Y > edges.h {
			continue
		}
		stepX, stepY := win.X/2, win.Y/2

		for y := 0; y+win.Y <= edges.h; y += stepY {
			for x := 0; x+win.X <= edges.w; x += stepX {
				area := win.X * win.Y
				density := float64(edges.count(x, y, win.X, win.Y)) / float64(area)
				if density < minEdgeDensity || density > maxEdgeDensity {
					continue
				}

				confidence := edges.horizontalScore(x, y, win.X, win.Y) *
					(1 - math.Abs(density-idealDensity)/idealDensity)
				if confidence < minConfidence {
					continue
				}
				candidates = append(candidates, TextRegion{
					Bounds:     image.Rect(x, y, x+win.X, y+win.Y).Add(bounds.Min),
					Confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}

	merged := mergeTextRegions(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

// edgeMap marks pixels whose gray level differs from the right or lower
// neighbor by more than edgeThreshold. sum is its summed-area table, so the
// edge count of any window is four lookups.
type edgeMap struct {
	w, h  int
	edges []bool
	sum   []int // (w+1)*(h+1)
}

func newEdgeMap(img image.Image) *edgeMap {
	gray := imaging.Grayscale(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	m := &edgeMap{w: w, h: h, edges: make([]bool, w*h), sum: make([]int, (w+1)*(h+1))}

	level := func(x, y int) int {
		return int(gray.Pix[y*gray.Stride+x*4])
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := level(x, y)
			if abs(c-level(x+1, y)) > edgeThreshold || abs(c-level(x, y+1)) > edgeThreshold {
				m.edges[y*w+x] = true
			}
		}
	}

	for y := 0; y < h; y++ {
		row := 0
		for x := 0; x < w; x++ {
			if m.edges[y*w+x] {
				row++
			}
			m.sum[(y+1)*(w+1)+x+1] = m.sum[y*(w+1)+x+1] + row
		}
	}
	return m
}

func (m *edgeMap) at(x, y int) bool {
	return m.edges[y*m.w+x]
}

func (m *edgeMap) count(x, y, w, h int) int {
	s, stride := m.sum, m.w+1
	return s[(y+h)*stride+x+w] - s[y*stride+x+w] - s[(y+h)*stride+x] + s[y*stride+x]
}

// horizontalScore is the share of edge runs that are horizontal. Lines of
// text produce more horizontal than vertical runs.
func (m *edgeMap) horizontalScore(x, y, w, h int) float64 {
	horizontal, vertical := 0, 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if m.at(col, row) {
				if !inRun {
					horizontal++
				}
				inRun = true
			} else {
				inRun = false
			}
		}
	}

	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if m.at(col, row) {
				if !inRun {
					vertical++
				}
				inRun = true
			} else {
				inRun = false
			}
		}
	}

	if horizontal+vertical == 0 {
		return 0
	}
	return float64(horizontal) / float64(horizontal+vertical)
}

// mergeTextRegions unions overlapping regions, keeping the higher confidence.
func mergeTextRegions(regions []TextRegion) []TextRegion {
	var merged []TextRegion
	for _, r := range regions {
		found := false
		for i := range merged {
			if r.Bounds.Overlaps(merged[i].Bounds) {
				merged[i].Bounds = merged[i].Bounds.Union(r.Bounds)
				merged[i].Confidence = math.Max(merged[i].Confidence, r.Confidence)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, r)
		}
	}
	return merged
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
