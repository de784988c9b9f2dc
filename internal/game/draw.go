package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/preattentive/internal/config"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

func (g *Game) drawFrame(screen *ebiten.Image, frame stimulus.Frame) {
	screen.Fill(config.White)

	// The renderer puts the target last so it is never hidden.
	for _, it := range frame.Items {
		g.drawItem(screen, it)
	}

	for i, label := range frame.Labels {
		y := float64(config.LabelY + i*config.LabelLineStep)
		g.fonts.drawBaseline(screen, label, config.LabelFontSize, config.LabelX, y, config.Black)
	}
}

func (g *Game) drawItem(screen *ebiten.Image, it stimulus.Item) {
	x, y := float32(it.At.X), float32(it.At.Y)
	size := float32(it.Size)

	switch it.Kind {
	case stimulus.Circle:
		r := size / 2
		vector.DrawFilledCircle(screen, x+r, y+r, r, it.Fill, true)
		vector.StrokeCircle(screen, x+r, y+r, r, config.OutlineWidth, it.Outline, true)
	case stimulus.Square:
		vector.DrawFilledRect(screen, x, y, size, size, it.Fill, false)
		vector.StrokeRect(screen, x, y, size, size, config.OutlineWidth, it.Outline, false)
	case stimulus.Glyph:
		g.fonts.drawBaseline(screen, it.Glyph, float64(it.Size), it.TextX, it.TextY, it.Fill)
	}
}

func (g *Game) drawIdle(screen *ebiten.Image) {
	screen.Fill(config.White)
	if status := g.Status(); status != "" {
		g.fonts.drawBaseline(screen, status, config.LabelFontSize, config.StatusX, config.StatusY+config.LabelFontSize, config.StatusGrey)
	}
}
