package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings is the tunable part of the experiment, read from
// config/preattentive.yaml when present.
type Settings struct {
	Display   DisplaySettings   `mapstructure:"display"`
	Staircase StaircaseSettings `mapstructure:"staircase"`
	Data      DataSettings      `mapstructure:"data"`
	Logging   LoggingSettings   `mapstructure:"logging"`
	Audio     AudioSettings     `mapstructure:"audio"`
	Random    RandomSettings    `mapstructure:"random"`
}

// DisplaySettings controls the stimulus window.
type DisplaySettings struct {
	Fullscreen bool `mapstructure:"fullscreen"`
	Width      int  `mapstructure:"width"`
	Height     int  `mapstructure:"height"`
}

// StaircaseSettings holds the adaptive procedure constants.
type StaircaseSettings struct {
	InitialIntervalMs int `mapstructure:"initial_interval_ms"`
	StepMs            int `mapstructure:"step_ms"`
	SuccessStreak     int `mapstructure:"success_streak"`
	MaxTrials         int `mapstructure:"max_trials"`
	PauseMs           int `mapstructure:"pause_ms"`
}

// DataSettings names the session log file.
type DataSettings struct {
	File string `mapstructure:"file"`
}

// LoggingSettings holds settings for the logger.
type LoggingSettings struct {
	Directory  string `mapstructure:"directory"`
	Level      string `mapstructure:"level"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AudioSettings controls the error cue.
type AudioSettings struct {
	Enabled bool    `mapstructure:"enabled"`
	ToneHz  float64 `mapstructure:"tone_hz"`
	ToneMs  int     `mapstructure:"tone_ms"`
	CueFile string  `mapstructure:"cue_file"`
}

// RandomSettings seeds stimulus generation. Zero means seed from the clock.
type RandomSettings struct {
	Seed uint64 `mapstructure:"seed"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("display.fullscreen", false)
	v.SetDefault("display.width", WindowWidth)
	v.SetDefault("display.height", WindowHeight)

	v.SetDefault("staircase.initial_interval_ms", 150)
	v.SetDefault("staircase.step_ms", 25)
	v.SetDefault("staircase.success_streak", 10)
	v.SetDefault("staircase.max_trials", 100)
	v.SetDefault("staircase.pause_ms", 1000)

	v.SetDefault("data.file", "experiment_data.txt")

	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size", 10)   // megabytes
	v.SetDefault("logging.max_backups", 3) // files
	v.SetDefault("logging.max_age", 7)     // days
	v.SetDefault("logging.compress", true)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.tone_hz", 440.0)
	v.SetDefault("audio.tone_ms", 200)
	v.SetDefault("audio.cue_file", "")

	v.SetDefault("random.seed", 0)
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	s, _, err := load(viper.New(), "")
	if err != nil {
		// defaults alone always decode
		panic(err)
	}
	return s
}

// Load reads <dir>/config/preattentive.yaml on top of the defaults. A
// missing file is not an error; found reports whether one was read.
func Load(dir string) (s *Settings, found bool, err error) {
	return load(viper.New(), filepath.Join(dir, "config"))
}

func load(v *viper.Viper, searchPath string) (*Settings, bool, error) {
	setDefaults(v)

	found := false
	if searchPath != "" {
		v.AddConfigPath(searchPath)
		v.SetConfigName("preattentive")
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, false, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			found = true
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, false, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, false, err
	}
	return &s, found, nil
}

func (s *Settings) validate() error {
	st := s.Staircase
	switch {
	case st.InitialIntervalMs <= 0:
		return fmt.Errorf("staircase.initial_interval_ms must be positive, got %d", st.InitialIntervalMs)
	case st.StepMs <= 0:
		return fmt.Errorf("staircase.step_ms must be positive, got %d", st.StepMs)
	case st.SuccessStreak <= 0:
		return fmt.Errorf("staircase.success_streak must be positive, got %d", st.SuccessStreak)
	case st.MaxTrials <= 0:
		return fmt.Errorf("staircase.max_trials must be positive, got %d", st.MaxTrials)
	case st.PauseMs < 0:
		return fmt.Errorf("staircase.pause_ms must not be negative, got %d", st.PauseMs)
	}
	if s.Data.File == "" {
		return errors.New("data.file must not be empty")
	}
	if s.Display.Width <= 0 || s.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", s.Display.Width, s.Display.Height)
	}
	return nil
}
