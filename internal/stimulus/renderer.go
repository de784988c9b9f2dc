// Package stimulus turns a trial description into a frame of drawable shapes.
package stimulus

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/iburimskiy/preattentive/internal/config"
	"github.com/iburimskiy/preattentive/internal/layout"
)

var (
	ErrUnknownTrialType   = errors.New("unknown trial type")
	ErrInvalidDistractors = errors.New("distractor count must be positive")
	ErrCanvasTooSmall     = errors.New("canvas too small for stimulus layout")
	ErrNoMeasurer         = errors.New("letter trials need a glyph measurer")
)

// GlyphMeasurer reports the rendered advance width and ascent of a glyph at
// a font size in pixels.
type GlyphMeasurer interface {
	MeasureGlyph(glyph string, size float64) (width, ascent float64)
}

// Item is one drawable stimulus. At is the top-left of its Size x Size box.
type Item struct {
	Kind    Kind
	Fill    color.RGBA
	Outline color.RGBA
	At      layout.Point
	Size    int
	Target  bool

	// Glyph items only: the text and its baseline origin.
	Glyph        string
	TextX, TextY float64
}

// Frame is everything drawn for one presentation.
type Frame struct {
	Items        []Item
	Labels       [2]string
	StimulusSize int
	// Degraded counts placements that fell back to overlapping.
	Degraded int
}

// StimulusSize derives the base stimulus size from the canvas.
func StimulusSize(width, height int) int {
	size := min(width, height) / config.StimulusDivisor
	return max(config.MinStimulusSize, min(size, config.MaxStimulusSize))
}

// ActualDistractors is the number of distractors drawn; a present target
// takes one of the distractorCount slots.
func ActualDistractors(distractorCount int, targetPresent bool) int {
	if targetPresent {
		return distractorCount - 1
	}
	return distractorCount
}

// Renderer lays out and describes trial frames. It is not safe for
// concurrent use; rng is consumed by every Render.
type Renderer struct {
	rng     *rand.Rand
	measure GlyphMeasurer
}

func NewRenderer(rng *rand.Rand, measure GlyphMeasurer) *Renderer {
	return &Renderer{rng: rng, measure: measure}
}

// Render builds the frame for one trial on a width x height canvas.
func (r *Renderer) Render(t TrialType, distractorCount int, targetPresent bool, width, height int) (Frame, error) {
	rec, ok := recipes[t]
	if !ok {
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownTrialType, int(t))
	}
	if distractorCount < 1 {
		return Frame{}, fmt.Errorf("%w: %d", ErrInvalidDistractors, distractorCount)
	}
	if t == Letter && r.measure == nil {
		return Frame{}, ErrNoMeasurer
	}

	base := StimulusSize(width, height)
	if largest := rec.largest(base); !layout.Fits(width, height, largest) {
		return Frame{}, fmt.Errorf("%w: %dx%d with stimulus size %d", ErrCanvasTooSmall, width, height, largest)
	}

	actual := ActualDistractors(distractorCount, targetPresent)
	counts := rec.counts(actual)

	f := Frame{
		Items:        make([]Item, 0, distractorCount),
		StimulusSize: base,
	}
	placed := make([]layout.Point, 0, distractorCount)

	draw := func(e element, target bool) {
		size := e.size(base)
		p, ok := layout.TryPlace(r.rng, width, height, size, placed)
		if !ok {
			f.Degraded++
		}
		placed = append(placed, p)
		f.Items = append(f.Items, r.item(e, p, size, target))
	}

	for i, g := range rec.groups {
		for j := 0; j < counts[i]; j++ {
			draw(g.element, false)
		}
	}
	if targetPresent {
		draw(rec.target, true)
	}

	f.Labels = labels(t, rec, counts, targetPresent)
	return f, nil
}

func (r *Renderer) item(e element, p layout.Point, size int, target bool) Item {
	it := Item{
		Kind:    e.kind,
		Fill:    e.fill,
		Outline: config.Black,
		At:      p,
		Size:    size,
		Target:  target,
	}
	if e.kind == Glyph {
		w, ascent := r.measure.MeasureGlyph(e.glyph, float64(size))
		it.Glyph = e.glyph
		it.TextX = float64(p.X) + (float64(size)-w)/2
		it.TextY = float64(p.Y) + (float64(size)+ascent)/2
	}
	return it
}

func labels(t TrialType, rec recipe, counts []int, targetPresent bool) [2]string {
	target := "NONE"
	if targetPresent {
		target = rec.targetLabel
	}

	parts := make([]string, len(rec.groups))
	for i, g := range rec.groups {
		parts[i] = fmt.Sprintf("%d %s", counts[i], g.label)
	}

	return [2]string{
		fmt.Sprintf("%s Trial - Target: %s", t, target),
		"Distractors: " + strings.Join(parts, " + "),
	}
}
