package config

import "image/color"

const (
	WindowWidth  = 1280
	WindowHeight = 800
	WindowTitle  = "Pre-Attentive Processing Experiment"

	// Game loop ticks per second; bounds how late a presentation can close
	TicksPerSecond = 240

	// Stimulus geometry
	StimulusDivisor = 15
	MinStimulusSize = 20
	MaxStimulusSize = 100
	LargeTargetRate = 1.8
	LayoutPadding   = 20
	LayoutSpacing   = 1.5
	LayoutAttempts  = 100
	OutlineWidth    = 1

	// Label placement, baseline coordinates
	LabelX        = 20
	LabelY        = 20
	LabelLineStep = 20
	LabelFontSize = 14

	// Status line between presentations
	StatusX = 12
	StatusY = 12
)

// DistractorOptions is the fixed set offered by the configuration form.
var DistractorOptions = []int{10, 20, 30, 40, 50}

// Stimulus palette
var (
	Red        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue       = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	StatusGrey = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)
