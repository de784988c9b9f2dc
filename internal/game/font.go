package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// Fonts draws stimulus glyphs and labels in Go Bold. It also measures glyphs
// for the renderer, so letters are centered with the same face they are
// drawn with.
type Fonts struct {
	source *text.GoTextFaceSource
}

func NewFonts() (*Fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Fonts{source: src}, nil
}

func (f *Fonts) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.source, Size: size}
}

// MeasureGlyph returns the advance width and ascent of glyph at size pixels.
func (f *Fonts) MeasureGlyph(glyph string, size float64) (width, ascent float64) {
	face := f.face(size)
	width, _ = text.Measure(glyph, face, 0)
	return width, face.Metrics().HAscent
}

// drawBaseline draws s with its baseline starting at (x, y).
func (f *Fonts) drawBaseline(dst *ebiten.Image, s string, size, x, y float64, clr color.Color) {
	face := f.face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
