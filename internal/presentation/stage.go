package presentation

import (
	"context"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/clock"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

// Stage hands presentations from the experiment goroutine to the render
// loop. At most one presentation is in flight.
type Stage struct {
	renderer *stimulus.Renderer
	rng      *rand.Rand
	clock    clock.Clock
	log      *zap.Logger

	requests chan *Presentation
	current  *Presentation
}

// NewStage builds a stage. renderer is used only from the render loop and rng
// only from the goroutine calling Present.
func NewStage(renderer *stimulus.Renderer, rng *rand.Rand, clk clock.Clock, log *zap.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		rng:      rng,
		clock:    clk,
		log:      log,
		requests: make(chan *Presentation),
	}
}

// Present queues a presentation for the render loop and blocks until it has
// closed, returning whether it contained the target.
func (s *Stage) Present(ctx context.Context, t stimulus.TrialType, distractors, intervalMs int) (bool, error) {
	p := New(s.renderer, s.rng, s.clock, t, distractors, intervalMs)

	select {
	case s.requests <- p:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case r := <-p.Done():
		return r.TargetPresent, r.Err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Update runs once per render-loop tick: it shows a queued presentation on a
// width x height canvas and closes the current one when its time is up.
func (s *Stage) Update(width, height int) {
	if s.current == nil {
		select {
		case p := <-s.requests:
			s.show(p, width, height)
		default:
		}
	}

	if s.current != nil && s.current.Tick() {
		s.log.Debug("Presentation closed",
			zap.Duration("interval", s.current.Interval()),
			zap.Duration("shown", s.clock.Since(s.current.shownAt)),
		)
		s.current = nil
	}
}

func (s *Stage) show(p *Presentation, width, height int) {
	frame, err := p.Show(width, height)
	if err != nil {
		s.log.Error("Failed to render trial", zap.Error(err), zap.Int("width", width), zap.Int("height", height))
		return
	}

	fields := []zap.Field{
		zap.Stringer("trial_type", p.trialType),
		zap.Int("items", len(frame.Items)),
		zap.Int("stimulus_size", frame.StimulusSize),
		zap.Bool("target_present", p.targetPresent),
		zap.Duration("interval", p.interval),
	}
	if frame.Degraded > 0 {
		s.log.Debug("Layout fell back to overlapping placement", append(fields, zap.Int("degraded", frame.Degraded))...)
	}
	s.log.Debug("Presentation shown", fields...)
	s.current = p
}

// Current is the visible presentation, or nil between trials.
func (s *Stage) Current() *Presentation {
	if s.current != nil && s.current.Visible() {
		return s.current
	}
	return nil
}
