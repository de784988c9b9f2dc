// Package presentation runs one timed stimulus exposure.
package presentation

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/iburimskiy/preattentive/internal/clock"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

var ErrAlreadyShown = errors.New("presentation already shown")

type phase int

const (
	pending phase = iota
	visible
	closed
)

// Result is delivered once, when the presentation closes.
type Result struct {
	TargetPresent bool
	Err           error
}

// Presentation shows a single frame for a fixed interval. It is single-shot:
// once shown it accepts no further timing input and closes exactly once.
//
// Show and Tick belong to the render loop; Done and TargetPresent may be
// used from any goroutine.
type Presentation struct {
	trialType     stimulus.TrialType
	distractors   int
	interval      time.Duration
	targetPresent bool

	renderer *stimulus.Renderer
	clock    clock.Clock

	phase   phase
	frame   stimulus.Frame
	shownAt time.Time

	done      chan Result
	closeOnce sync.Once
}

// New prepares a presentation. Whether the target is present is drawn from
// rng here, before anything is rendered.
func New(renderer *stimulus.Renderer, rng *rand.Rand, clk clock.Clock, t stimulus.TrialType, distractors, intervalMs int) *Presentation {
	return &Presentation{
		trialType:     t,
		distractors:   distractors,
		interval:      time.Duration(intervalMs) * time.Millisecond,
		targetPresent: rng.IntN(2) == 1,
		renderer:      renderer,
		clock:         clk,
		done:          make(chan Result, 1),
	}
}

func (p *Presentation) TargetPresent() bool     { return p.targetPresent }
func (p *Presentation) Interval() time.Duration { return p.interval }
func (p *Presentation) Visible() bool           { return p.phase == visible }
func (p *Presentation) Frame() stimulus.Frame   { return p.frame }

// Done yields the result when the presentation closes.
func (p *Presentation) Done() <-chan Result { return p.done }

// Show renders the frame for a width x height canvas and starts the display
// timer. A render failure closes the presentation with that error.
func (p *Presentation) Show(width, height int) (stimulus.Frame, error) {
	if p.phase != pending {
		return stimulus.Frame{}, ErrAlreadyShown
	}

	frame, err := p.renderer.Render(p.trialType, p.distractors, p.targetPresent, width, height)
	if err != nil {
		p.finish(Result{Err: err})
		return stimulus.Frame{}, err
	}

	p.frame = frame
	p.shownAt = p.clock.Now()
	p.phase = visible
	return frame, nil
}

// Tick closes the presentation once the interval has elapsed since Show.
// It reports whether the presentation is closed.
func (p *Presentation) Tick() bool {
	switch p.phase {
	case closed:
		return true
	case pending:
		return false
	}

	if p.clock.Since(p.shownAt) < p.interval {
		return false
	}
	p.finish(Result{TargetPresent: p.targetPresent})
	return true
}

func (p *Presentation) finish(r Result) {
	p.closeOnce.Do(func() {
		p.phase = closed
		p.frame = stimulus.Frame{}
		p.done <- r
	})
}
