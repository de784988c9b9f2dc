// Package layout places stimuli on a canvas without overlap.
//
// Placement is rejection sampling: candidates are drawn uniformly inside the
// canvas margin and the first one far enough from every placed point wins.
// When the attempt budget runs out the next sample is returned as is, so a
// crowded display degrades to overlapping stimuli instead of failing the
// trial. That fallback is accepted behavior and is reported through
// TryPlace's ok result.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/preattentive/internal/config"
)

// Point is the top-left corner of a stimulus bounding box.
type Point struct {
	X, Y int
}

// Distance is the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Margin is the keep-out band along each canvas edge for a stimulus of size.
func Margin(size int) int {
	return size + config.LayoutPadding
}

// MinSpacing is the smallest accepted distance between two placed points.
func MinSpacing(size int) float64 {
	return float64(size) * config.LayoutSpacing
}

// Fits reports whether a canvas leaves a non-empty sampling range for size.
// Place must not be called when it does not.
func Fits(width, height, size int) bool {
	m := Margin(size)
	return width > 2*m && height > 2*m
}

// Place returns a position for a stimulus of size on a width x height
// canvas, clear of every point in placed when the search succeeds.
func Place(rng *rand.Rand, width, height, size int, placed []Point) Point {
	p, _ := TryPlace(rng, width, height, size, placed)
	return p
}

// TryPlace is Place that also reports whether the returned point honors the
// spacing rule. ok is false only for the overlap fallback.
func TryPlace(rng *rand.Rand, width, height, size int, placed []Point) (p Point, ok bool) {
	spacing := MinSpacing(size)

	for attempt := 0; attempt < config.LayoutAttempts; attempt++ {
		candidate := sample(rng, width, height, size)
		if isClear(candidate, placed, spacing) {
			return candidate, true
		}
	}

	return sample(rng, width, height, size), false
}

func sample(rng *rand.Rand, width, height, size int) Point {
	m := Margin(size)
	return Point{
		X: rng.IntN(width-2*m) + m,
		Y: rng.IntN(height-2*m) + m,
	}
}

func isClear(candidate Point, placed []Point, spacing float64) bool {
	for _, existing := range placed {
		if candidate.Distance(existing) < spacing {
			return false
		}
	}
	return true
}
