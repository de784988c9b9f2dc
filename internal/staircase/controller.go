// Package staircase implements the adaptive display-interval procedure.
//
// The display interval grows by a fixed step after every error and holds
// while responses are correct. A run of correct responses at one interval
// ends the session with a record of that interval; too many trials without
// such a run ends it with none.
package staircase

import (
	"fmt"
	"time"

	"github.com/iburimskiy/preattentive/internal/config"
)

// Params are the procedure constants.
type Params struct {
	InitialIntervalMs int
	StepMs            int
	SuccessStreak     int
	MaxTrials         int
	Pause             time.Duration
}

// DefaultParams is the standard procedure: 150ms start, +25ms per error,
// 10 correct in a row to finish, at most 100 trials, 1s between trials.
func DefaultParams() Params {
	return Params{
		InitialIntervalMs: 150,
		StepMs:            25,
		SuccessStreak:     10,
		MaxTrials:         100,
		Pause:             time.Second,
	}
}

// ParamsFrom converts loaded settings.
func ParamsFrom(s config.StaircaseSettings) Params {
	return Params{
		InitialIntervalMs: s.InitialIntervalMs,
		StepMs:            s.StepMs,
		SuccessStreak:     s.SuccessStreak,
		MaxTrials:         s.MaxTrials,
		Pause:             time.Duration(s.PauseMs) * time.Millisecond,
	}
}

// Controller is the staircase state machine. Each method is one transition
// and fails with ErrInvalidTransition, leaving everything unchanged, when
// called from the wrong phase. It is not safe for concurrent use.
type Controller struct {
	cfg    TrialConfig
	params Params

	phase         Phase
	state         State
	targetPresent bool
	exhausted     bool
}

func NewController(cfg TrialConfig, params Params) *Controller {
	c := &Controller{cfg: cfg, params: params}
	c.reset()
	return c
}

func (c *Controller) Config() TrialConfig { return c.cfg }
func (c *Controller) Params() Params      { return c.params }
func (c *Controller) Phase() Phase        { return c.phase }
func (c *Controller) State() State        { return c.state }

func (c *Controller) reset() {
	c.state = State{DisplayIntervalMs: c.params.InitialIntervalMs}
}

func (c *Controller) expect(want Phase, op string) error {
	if c.phase != want {
		return fmt.Errorf("%w: %s in phase %s", ErrInvalidTransition, op, c.phase)
	}
	return nil
}

// Start begins presenting. A completed controller may be started again
// unless it ended on the trial cap.
func (c *Controller) Start() error {
	if c.phase != Idle && c.phase != Completed {
		return fmt.Errorf("%w: start in phase %s", ErrInvalidTransition, c.phase)
	}
	if c.exhausted {
		return ErrTrialCapReached
	}
	c.state.Running = true
	c.phase = Presenting
	return nil
}

// PresentationDone records that the display timer fired for a frame whose
// target presence was targetPresent.
func (c *Controller) PresentationDone(targetPresent bool) error {
	if err := c.expect(Presenting, "presentation done"); err != nil {
		return err
	}
	c.targetPresent = targetPresent
	c.phase = AwaitingResponse
	return nil
}

// Respond folds the subject's answer into the staircase.
func (c *Controller) Respond(userSaidPresent bool) (Evaluation, error) {
	if err := c.expect(AwaitingResponse, "respond"); err != nil {
		return Evaluation{}, err
	}
	c.phase = Evaluating

	ev := Evaluation{
		Outcome: Outcome{TargetPresent: c.targetPresent, UserSaidPresent: userSaidPresent},
		Result:  Continue,
	}

	if ev.Outcome.Correct() {
		c.state.ConsecutiveCorrect++
		c.state.TrialsCompleted++
		ev.Trials = c.state.TrialsCompleted

		if c.state.ConsecutiveCorrect >= c.params.SuccessStreak {
			interval := c.state.DisplayIntervalMs
			ev.Result = Succeeded
			ev.Record = &SessionRecord{
				SubjectID:              c.cfg.SubjectID,
				TrialType:              c.cfg.TrialType,
				DistractorCount:        c.cfg.DistractorCount,
				FinalDisplayIntervalMs: interval,
			}
			ev.Notices = append(ev.Notices, SuccessNotice(interval))
			c.reset()
			c.phase = Completed
			ev.State = c.state
			return ev, nil
		}
	} else {
		c.state.DisplayIntervalMs += c.params.StepMs
		c.state.ConsecutiveCorrect = 0
		c.state.TrialsCompleted++
		ev.Trials = c.state.TrialsCompleted
		ev.Notices = append(ev.Notices, IncorrectNotice(c.targetPresent, c.state.DisplayIntervalMs))
	}

	if c.state.TrialsCompleted >= c.params.MaxTrials {
		ev.Result = Exhausted
		ev.Notices = append(ev.Notices, ExhaustedNotice)
		c.state.Running = false
		c.exhausted = true
		c.phase = Completed
	}

	ev.State = c.state
	return ev, nil
}

// Advance schedules the next presentation after an evaluation that did not
// end the session.
func (c *Controller) Advance() error {
	if err := c.expect(Evaluating, "advance"); err != nil {
		return err
	}
	c.phase = Presenting
	return nil
}

const ExhaustedNotice = "Maximum trial count reached. Ending session."

func SuccessNotice(intervalMs int) string {
	return fmt.Sprintf("Trial completed successfully!\nFinal interval: %dms\nData recorded to file.", intervalMs)
}

func IncorrectNotice(targetPresent bool, newIntervalMs int) string {
	target := "ABSENT"
	if targetPresent {
		target = "PRESENT"
	}
	return fmt.Sprintf("Incorrect response. Target was %s\nDisplay interval increased to: %dms", target, newIntervalMs)
}
