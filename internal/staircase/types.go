package staircase

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/iburimskiy/preattentive/internal/config"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

var (
	ErrEmptySubject       = errors.New("subject ID is empty")
	ErrInvalidDistractors = errors.New("distractor count is not an offered option")
	ErrInvalidTransition  = errors.New("invalid staircase transition")
	ErrTrialCapReached    = errors.New("trial cap reached")
)

// TrialConfig is fixed for the lifetime of a session.
type TrialConfig struct {
	SubjectID       string
	TrialType       stimulus.TrialType
	DistractorCount int
}

// Validate checks the form's output before a controller is built.
func (c TrialConfig) Validate() error {
	if strings.TrimSpace(c.SubjectID) == "" {
		return ErrEmptySubject
	}
	if !c.TrialType.Valid() {
		return fmt.Errorf("%w: %d", stimulus.ErrUnknownTrialType, int(c.TrialType))
	}
	if !slices.Contains(config.DistractorOptions, c.DistractorCount) {
		return fmt.Errorf("%w: %d", ErrInvalidDistractors, c.DistractorCount)
	}
	return nil
}

// SessionRecord is emitted once per successful staircase.
type SessionRecord struct {
	SubjectID              string
	TrialType              stimulus.TrialType
	DistractorCount        int
	FinalDisplayIntervalMs int
}

// Outcome is one trial's truth and answer.
type Outcome struct {
	TargetPresent   bool
	UserSaidPresent bool
}

func (o Outcome) Correct() bool { return o.TargetPresent == o.UserSaidPresent }

// State is the adaptive part of the procedure.
type State struct {
	DisplayIntervalMs  int
	ConsecutiveCorrect int
	TrialsCompleted    int
	Running            bool
}

// Phase is the controller's position in the trial cycle.
type Phase int

const (
	Idle Phase = iota
	Presenting
	AwaitingResponse
	Evaluating
	Completed
)

var phaseNames = [...]string{"idle", "presenting", "awaiting_response", "evaluating", "completed"}

func (p Phase) String() string {
	if p < Idle || p > Completed {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Result says how an evaluation left the session.
type Result int

const (
	Continue Result = iota
	Succeeded
	Exhausted
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Succeeded:
		return "succeeded"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Evaluation is what one response did to the staircase.
type Evaluation struct {
	Outcome Outcome
	Result  Result
	// Trials is how many responses the session has taken, this one included.
	Trials int
	// State after the evaluation, including any reset.
	State State
	// Record is set only when Result is Succeeded.
	Record *SessionRecord
	// Notices are shown to the subject in order.
	Notices []string
}
