// Package feedback plays an auditory cue after incorrect responses.
package feedback

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/config"
)

const (
	sampleRate   = beep.SampleRate(44100)
	rampDuration = 5 * time.Millisecond
	toneAmp      = 0.5
	// cueVolume is relative to the decoded file, in base-2 steps
	cueVolume = -1
)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Player holds a buffered cue and plays it on demand.
type Player struct {
	cue  *beep.Buffer
	play func(beep.Streamer)
	log  *zap.Logger
}

// NewPlayer opens the audio device and prepares the cue. Any failure leaves
// a silent player and is logged, never returned: the experiment runs without
// sound.
func NewPlayer(cfg config.AudioSettings, log *zap.Logger) *Player {
	p := &Player{log: log}
	if !cfg.Enabled {
		log.Info("Audio feedback disabled")
		return p
	}

	cue, err := buildCue(cfg)
	if err != nil {
		log.Warn("Audio cue unavailable, continuing without sound", zap.Error(err))
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		log.Warn("Audio device unavailable, continuing without sound", zap.Error(err))
		return p
	}

	p.cue = cue
	p.play = func(s beep.Streamer) { speaker.Play(s) }
	log.Info("Audio feedback ready", zap.Duration("cue", sampleRate.D(cue.Len())))
	return p
}

// Enabled reports whether Incorrect makes a sound.
func (p *Player) Enabled() bool { return p.cue != nil && p.play != nil }

// Incorrect plays the error cue without blocking.
func (p *Player) Incorrect() {
	if !p.Enabled() {
		return
	}
	p.play(p.cue.Streamer(0, p.cue.Len()))
}

func buildCue(cfg config.AudioSettings) (*beep.Buffer, error) {
	if cfg.CueFile != "" {
		return loadCue(cfg.CueFile)
	}
	if cfg.ToneHz <= 0 || cfg.ToneMs <= 0 {
		return nil, fmt.Errorf("tone needs positive frequency and duration, got %.1fHz %dms", cfg.ToneHz, cfg.ToneMs)
	}

	buf := beep.NewBuffer(format)
	samples := sampleRate.N(time.Duration(cfg.ToneMs) * time.Millisecond)
	buf.Append(newTone(sampleRate, cfg.ToneHz, samples, toneAmp))
	return buf, nil
}

// loadCue decodes a wav, mp3 or flac file into memory at the device rate.
func loadCue(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		fileFmt  beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, fileFmt, err = wav.Decode(f)
	case ".mp3":
		streamer, fileFmt, err = mp3.Decode(f)
	case ".flac":
		streamer, fileFmt, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if fileFmt.SampleRate != sampleRate {
		s = beep.Resample(4, fileFmt.SampleRate, sampleRate, s)
	}

	buf := beep.NewBuffer(format)
	buf.Append(&effects.Volume{Streamer: s, Base: 2, Volume: cueVolume})
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return buf, nil
}
