package stimulus

import (
	"image/color"

	"github.com/iburimskiy/preattentive/internal/config"
)

// Kind is the drawable primitive of a stimulus.
type Kind int

const (
	Circle Kind = iota
	Square
	Glyph
)

// element describes one kind of stimulus a recipe draws.
type element struct {
	kind  Kind
	fill  color.RGBA
	glyph string
	// scale multiplies the base stimulus size
	scale float64
}

func (e element) size(base int) int {
	if e.scale == 0 {
		return base
	}
	return int(float64(base) * e.scale)
}

// group is a run of identical distractors. share returns how many of the
// remaining distractors it takes; nil takes them all.
type group struct {
	element
	label string
	share func(actual int) int
}

// recipe is the generation rule for one trial type: distractor groups drawn
// in order, then the target.
type recipe struct {
	target      element
	targetLabel string
	groups      []group
}

func half(actual int) int { return actual / 2 }

var (
	blueCircle  = element{kind: Circle, fill: config.Blue}
	redCircle   = element{kind: Circle, fill: config.Red}
	redSquare   = element{kind: Square, fill: config.Red}
	largeCircle = element{kind: Circle, fill: config.Blue, scale: config.LargeTargetRate}
	letterP     = element{kind: Glyph, fill: config.Black, glyph: "P"}
	letterR     = element{kind: Glyph, fill: config.Black, glyph: "R"}
)

var recipes = map[TrialType]recipe{
	Color: {
		target:      redCircle,
		targetLabel: "RED CIRCLE",
		groups:      []group{{element: blueCircle, label: "BLUE CIRCLES"}},
	},
	Shape: {
		target:      redSquare,
		targetLabel: "RED SQUARE",
		groups:      []group{{element: redCircle, label: "RED CIRCLES"}},
	},
	Combo: {
		target:      redCircle,
		targetLabel: "RED CIRCLE",
		groups: []group{
			{element: redSquare, label: "RED SQUARES", share: half},
			{element: blueCircle, label: "BLUE CIRCLES"},
		},
	},
	Size: {
		target:      largeCircle,
		targetLabel: "LARGER CIRCLE",
		groups:      []group{{element: blueCircle, label: "SMALLER CIRCLES"}},
	},
	Letter: {
		target:      letterR,
		targetLabel: "LETTER R",
		groups:      []group{{element: letterP, label: "LETTER Ps"}},
	},
}

// counts splits actual distractors across the recipe's groups.
func (r recipe) counts(actual int) []int {
	out := make([]int, len(r.groups))
	remaining := actual
	for i, g := range r.groups {
		n := remaining
		if g.share != nil {
			n = g.share(actual)
		}
		out[i] = n
		remaining -= n
	}
	return out
}

// largest is the biggest element size the recipe draws for base.
func (r recipe) largest(base int) int {
	size := r.target.size(base)
	for _, g := range r.groups {
		if s := g.size(base); s > size {
			size = s
		}
	}
	return size
}
