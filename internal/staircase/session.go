package staircase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/clock"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

// ResponsePrompt is the question put to the subject after every display.
const ResponsePrompt = "Was the target shape present?"

// Presenter shows one timed stimulus frame and reports whether it held a
// target. It returns only after the frame has been taken down.
type Presenter interface {
	Present(ctx context.Context, t stimulus.TrialType, distractors, intervalMs int) (targetPresent bool, err error)
}

// Responder collects the subject's yes/no answer. It may block indefinitely.
type Responder interface {
	Ask(ctx context.Context, prompt string) (bool, error)
}

// Notifier shows a message and returns once it is acknowledged.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Recorder persists a finished session.
type Recorder interface {
	Append(rec SessionRecord) error
}

// Feedback cues the subject after an incorrect response.
type Feedback interface {
	Incorrect()
}

// Session drives one controller through presentations and responses on the
// calling goroutine until the staircase completes.
type Session struct {
	Controller *Controller
	Presenter  Presenter
	Responder  Responder
	Notifier   Notifier
	Recorder   Recorder
	Feedback   Feedback // optional
	Clock      clock.Clock
	Log        *zap.Logger
}

// Run executes the session. It returns the final evaluation, or an error if
// a collaborator other than the recorder fails. ctx only ends the session
// when the host is shutting down.
func (s *Session) Run(ctx context.Context) (Evaluation, error) {
	c := s.Controller
	cfg := c.Config()
	log := s.Log.With(
		zap.String("subject", cfg.SubjectID),
		zap.Stringer("trial_type", cfg.TrialType),
		zap.Int("distractors", cfg.DistractorCount),
	)

	if err := c.Start(); err != nil {
		return Evaluation{}, err
	}
	log.Info("Session started", zap.Int("interval_ms", c.State().DisplayIntervalMs))

	for {
		interval := c.State().DisplayIntervalMs
		targetPresent, err := s.Presenter.Present(ctx, cfg.TrialType, cfg.DistractorCount, interval)
		if err != nil {
			return Evaluation{}, fmt.Errorf("presenting trial: %w", err)
		}
		if err := c.PresentationDone(targetPresent); err != nil {
			return Evaluation{}, err
		}

		said, err := s.Responder.Ask(ctx, ResponsePrompt)
		if err != nil {
			return Evaluation{}, fmt.Errorf("collecting response: %w", err)
		}

		ev, err := c.Respond(said)
		if err != nil {
			return Evaluation{}, err
		}
		log.Info("Trial evaluated",
			zap.Int("trial", ev.Trials),
			zap.Int("interval_ms", interval),
			zap.Bool("target_present", ev.Outcome.TargetPresent),
			zap.Bool("said_present", ev.Outcome.UserSaidPresent),
			zap.Bool("correct", ev.Outcome.Correct()),
			zap.Int("streak", ev.State.ConsecutiveCorrect),
			zap.Stringer("result", ev.Result),
		)

		if !ev.Outcome.Correct() && s.Feedback != nil {
			s.Feedback.Incorrect()
		}

		if ev.Record != nil {
			s.record(ctx, log, *ev.Record)
		}

		for _, msg := range ev.Notices {
			if err := s.Notifier.Notify(ctx, msg); err != nil {
				return Evaluation{}, fmt.Errorf("showing notice: %w", err)
			}
		}

		if ev.Result != Continue {
			log.Info("Session ended",
				zap.Stringer("result", ev.Result),
				zap.Int("trials", ev.Trials),
			)
			return ev, nil
		}

		if err := s.Clock.Sleep(ctx, c.Params().Pause); err != nil {
			return Evaluation{}, err
		}
		if err := c.Advance(); err != nil {
			return Evaluation{}, err
		}
	}
}

// record persists a finished session. A failure is shown to the subject and
// logged; it never changes the staircase.
func (s *Session) record(ctx context.Context, log *zap.Logger, rec SessionRecord) {
	if err := s.Recorder.Append(rec); err != nil {
		log.Error("Failed to record session", zap.Error(err))
		if nerr := s.Notifier.Notify(ctx, "Error saving data: "+err.Error()); nerr != nil {
			log.Warn("Failed to show save error", zap.Error(nerr))
		}
		return
	}
	log.Info("Session recorded", zap.Int("final_interval_ms", rec.FinalDisplayIntervalMs))
}
