package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/clock"
	"github.com/iburimskiy/preattentive/internal/config"
	"github.com/iburimskiy/preattentive/internal/dialog"
	"github.com/iburimskiy/preattentive/internal/feedback"
	"github.com/iburimskiy/preattentive/internal/game"
	"github.com/iburimskiy/preattentive/internal/logging"
	"github.com/iburimskiy/preattentive/internal/presentation"
	"github.com/iburimskiy/preattentive/internal/sessionlog"
	"github.com/iburimskiy/preattentive/internal/staircase"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

const (
	statusIdle    = "Waiting for session configuration"
	statusRunning = "Session in progress"
)

func main() {
	settings, found, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.Init(settings.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Configuration loaded",
		zap.Bool("config_file", found),
		zap.String("data_file", settings.Data.File),
		zap.Int("initial_interval_ms", settings.Staircase.InitialIntervalMs),
	)

	if err := run(settings, log); err != nil {
		log.Error("Experiment stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Info("Experiment closed")
}

func run(settings *config.Settings, log *zap.Logger) error {
	fonts, err := game.NewFonts()
	if err != nil {
		return err
	}

	seed := settings.Random.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug("Random source seeded", zap.Uint64("seed", seed))

	clk := clock.Real{}
	renderer := stimulus.NewRenderer(rand.New(rand.NewPCG(seed, 1)), fonts)
	stage := presentation.NewStage(renderer, rand.New(rand.NewPCG(seed, 2)), clk, log)
	g := game.New(stage, fonts, log)
	g.SetStatus(statusIdle)

	ebiten.SetWindowSize(settings.Display.Width, settings.Display.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.Display.Fullscreen)
	ebiten.SetTPS(config.TicksPerSecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exp := &experiment{
		settings: settings,
		game:     g,
		clock:    clk,
		form:     dialog.NewForm(log),
		player:   feedback.NewPlayer(settings.Audio, log),
		recorder: sessionlog.NewAppender(settings.Data.File, log),
		log:      log,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		exp.run(ctx)
		g.Quit()
	}()

	err = ebiten.RunGame(g)
	cancel()
	<-done
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// experiment runs sessions one after another until the subject closes the
// configuration form or the window.
type experiment struct {
	settings *config.Settings
	game     *game.Game
	clock    clock.Clock
	form     *dialog.Form
	player   *feedback.Player
	recorder *sessionlog.Appender
	log      *zap.Logger
}

func (e *experiment) run(ctx context.Context) {
	notifier := dialog.NewNotifier()
	for ctx.Err() == nil {
		e.game.SetStatus(statusIdle)
		cfg, err := e.form.Ask(ctx)
		if errors.Is(err, dialog.ErrCanceled) {
			e.log.Info("Configuration canceled")
			return
		}
		if err != nil {
			if ctx.Err() == nil {
				e.log.Error("Configuration form failed", zap.Error(err))
			}
			return
		}

		session := &staircase.Session{
			Controller: staircase.NewController(cfg, staircase.ParamsFrom(e.settings.Staircase)),
			Presenter:  e.game,
			Responder:  dialog.NewResponder(),
			Notifier:   notifier,
			Recorder:   e.recorder,
			Feedback:   e.player,
			Clock:      e.clock,
			Log:        e.log.With(zap.String("session", uuid.NewString())),
		}

		e.game.SetStatus(statusRunning)
		ev, err := session.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			e.log.Error("Session aborted", zap.Error(err))
			_ = notifier.Notify(ctx, "Session aborted: "+err.Error())
			continue
		}
		e.log.Info("Session finished",
			zap.Stringer("result", ev.Result),
			zap.Int("trials", ev.Trials),
			zap.Int("final_interval_ms", ev.State.DisplayIntervalMs),
		)
	}
}
