// Package game hosts trial presentations in an ebiten window.
package game

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/presentation"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

// Game is the ebiten game. Update and Draw run on the ebiten goroutine;
// Present, SetStatus and Quit may be called from the experiment goroutine.
type Game struct {
	log   *zap.Logger
	stage *presentation.Stage
	fonts *Fonts

	width, height int

	mu     sync.Mutex
	status string

	quit     chan struct{}
	quitOnce sync.Once
}

func New(stage *presentation.Stage, fonts *Fonts, log *zap.Logger) *Game {
	return &Game{
		log:   log,
		stage: stage,
		fonts: fonts,
		quit:  make(chan struct{}),
	}
}

// Present shows one trial and blocks until it closes.
func (g *Game) Present(ctx context.Context, t stimulus.TrialType, distractors, intervalMs int) (bool, error) {
	return g.stage.Present(ctx, t, distractors, intervalMs)
}

// SetStatus sets the line shown between presentations.
func (g *Game) SetStatus(s string) {
	g.mu.Lock()
	g.status = s
	g.mu.Unlock()
}

func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Quit ends the game loop on its next tick.
func (g *Game) Quit() {
	g.quitOnce.Do(func() { close(g.quit) })
}

func (g *Game) Update() error {
	select {
	case <-g.quit:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.log.Info("Quit requested from keyboard")
		return ebiten.Termination
	}

	// Layout has not reported a size yet.
	if g.width == 0 || g.height == 0 {
		return nil
	}
	g.stage.Update(g.width, g.height)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if p := g.stage.Current(); p != nil {
		g.drawFrame(screen, p.Frame())
		return
	}
	g.drawIdle(screen)
}

// Layout uses the window size as the canvas so the stimulus scales with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.log.Debug("Canvas resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
