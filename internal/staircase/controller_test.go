package staircase

import (
	"errors"
	"testing"

	"github.com/iburimskiy/preattentive/internal/stimulus"
)

var testConfig = TrialConfig{SubjectID: "S01", TrialType: stimulus.Combo, DistractorCount: 20}

// answer drives one full trial through the controller.
func answer(t *testing.T, c *Controller, targetPresent, said bool) Evaluation {
	t.Helper()
	if err := c.PresentationDone(targetPresent); err != nil {
		t.Fatalf("PresentationDone: %v", err)
	}
	ev, err := c.Respond(said)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if ev.Result == Continue {
		if err := c.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	return ev
}

func started(t *testing.T) *Controller {
	t.Helper()
	c := NewController(testConfig, DefaultParams())
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c
}

func TestTenCorrectSucceedsAtStartingInterval(t *testing.T) {
	c := started(t)

	var ev Evaluation
	for i := 0; i < 10; i++ {
		if got := c.State().DisplayIntervalMs; got != 150 {
			t.Fatalf("trial %d: interval %d, want 150", i, got)
		}
		ev = answer(t, c, i%2 == 0, i%2 == 0)
		if i < 9 && ev.Result != Continue {
			t.Fatalf("trial %d ended the session: %v", i, ev.Result)
		}
	}

	if ev.Result != Succeeded {
		t.Fatalf("result = %v, want succeeded", ev.Result)
	}
	want := SessionRecord{SubjectID: "S01", TrialType: stimulus.Combo, DistractorCount: 20, FinalDisplayIntervalMs: 150}
	if ev.Record == nil || *ev.Record != want {
		t.Fatalf("record = %+v, want %+v", ev.Record, want)
	}
	if ev.Trials != 10 {
		t.Errorf("trials = %d, want 10", ev.Trials)
	}

	s := c.State()
	if s.DisplayIntervalMs != 150 || s.ConsecutiveCorrect != 0 || s.TrialsCompleted != 0 || s.Running {
		t.Errorf("state not reset: %+v", s)
	}
	if c.Phase() != Completed {
		t.Errorf("phase = %v", c.Phase())
	}
	if len(ev.Notices) != 1 || ev.Notices[0] != SuccessNotice(150) {
		t.Errorf("notices = %q", ev.Notices)
	}
}

func TestOneErrorThenTenCorrectRecordsRaisedInterval(t *testing.T) {
	c := started(t)

	ev := answer(t, c, true, false)
	if ev.Result != Continue || c.State().DisplayIntervalMs != 175 {
		t.Fatalf("after error: result %v, interval %d", ev.Result, c.State().DisplayIntervalMs)
	}
	if len(ev.Notices) != 1 || ev.Notices[0] != "Incorrect response. Target was PRESENT\nDisplay interval increased to: 175ms" {
		t.Errorf("notices = %q", ev.Notices)
	}

	for i := 0; i < 10; i++ {
		ev = answer(t, c, false, false)
	}
	if ev.Result != Succeeded || ev.Record.FinalDisplayIntervalMs != 175 {
		t.Fatalf("result %v, record %+v", ev.Result, ev.Record)
	}
	if ev.Trials != 11 {
		t.Errorf("trials = %d, want 11", ev.Trials)
	}
	if c.State().DisplayIntervalMs != 150 {
		t.Errorf("interval not reset: %d", c.State().DisplayIntervalMs)
	}
}

func TestErrorResetsStreakRegardlessOfLength(t *testing.T) {
	for streak := 0; streak < 10; streak++ {
		c := started(t)
		for i := 0; i < streak; i++ {
			answer(t, c, true, true)
		}
		before := c.State()

		ev := answer(t, c, false, true)
		if ev.Outcome.Correct() {
			t.Fatal("expected an incorrect outcome")
		}
		after := c.State()
		if after.DisplayIntervalMs != before.DisplayIntervalMs+25 {
			t.Errorf("streak %d: interval %d -> %d", streak, before.DisplayIntervalMs, after.DisplayIntervalMs)
		}
		if after.ConsecutiveCorrect != 0 {
			t.Errorf("streak %d: consecutive = %d", streak, after.ConsecutiveCorrect)
		}
		if after.TrialsCompleted != before.TrialsCompleted+1 {
			t.Errorf("streak %d: trials %d -> %d", streak, before.TrialsCompleted, after.TrialsCompleted)
		}
		if ev.Notices[0] != IncorrectNotice(false, after.DisplayIntervalMs) {
			t.Errorf("notice = %q", ev.Notices[0])
		}
	}
}

func TestIntervalNeverDecreases(t *testing.T) {
	c := started(t)
	prev := c.State().DisplayIntervalMs
	// Nine correct then one error, repeated, never reaches the streak.
	for i := 0; i < 90; i++ {
		correct := i%10 != 9
		ev := answer(t, c, true, correct)
		if ev.Result != Continue {
			t.Fatalf("trial %d ended the session", i)
		}
		cur := c.State().DisplayIntervalMs
		if correct && cur != prev {
			t.Fatalf("trial %d: correct response changed interval %d -> %d", i, prev, cur)
		}
		if cur < prev {
			t.Fatalf("trial %d: interval decreased %d -> %d", i, prev, cur)
		}
		prev = cur
	}
	if prev != 150+9*25 {
		t.Errorf("interval = %d, want %d", prev, 150+9*25)
	}
}

func TestTrialCapEndsWithoutRecord(t *testing.T) {
	c := started(t)

	var ev Evaluation
	for i := 0; i < 100; i++ {
		if c.Phase() != Presenting {
			t.Fatalf("trial %d: phase %v", i, c.Phase())
		}
		// Alternate errors so the streak never reaches ten.
		ev = answer(t, c, true, i%2 == 0)
		if i < 99 && ev.Result != Continue {
			t.Fatalf("ended early at trial %d", i)
		}
	}

	if ev.Result != Exhausted {
		t.Fatalf("result = %v, want exhausted", ev.Result)
	}
	if ev.Record != nil {
		t.Errorf("unexpected record %+v", ev.Record)
	}
	if ev.State.TrialsCompleted != 100 || ev.Trials != 100 {
		t.Errorf("trials = %d/%d, want 100", ev.State.TrialsCompleted, ev.Trials)
	}
	if last := ev.Notices[len(ev.Notices)-1]; last != ExhaustedNotice {
		t.Errorf("last notice = %q", last)
	}
	if c.Phase() != Completed {
		t.Errorf("phase = %v", c.Phase())
	}
	if err := c.Start(); !errors.Is(err, ErrTrialCapReached) {
		t.Errorf("restart after cap: err = %v", err)
	}
}

func TestTrialCapAppliesToCorrectResponses(t *testing.T) {
	params := DefaultParams()
	params.MaxTrials = 5
	c := NewController(testConfig, params)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	var ev Evaluation
	for i := 0; i < 5; i++ {
		ev = answer(t, c, true, true)
	}
	if ev.Result != Exhausted {
		t.Fatalf("result = %v", ev.Result)
	}
	if len(ev.Notices) != 1 || ev.Notices[0] != ExhaustedNotice {
		t.Errorf("notices = %q", ev.Notices)
	}
}

func TestSuccessOnFinalTrialWins(t *testing.T) {
	params := DefaultParams()
	params.MaxTrials = 10
	c := NewController(testConfig, params)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	var ev Evaluation
	for i := 0; i < 10; i++ {
		ev = answer(t, c, false, false)
	}
	if ev.Result != Succeeded || ev.Record == nil {
		t.Fatalf("result = %v, record = %v", ev.Result, ev.Record)
	}
}

func TestRestartAfterSuccess(t *testing.T) {
	c := started(t)
	for i := 0; i < 10; i++ {
		answer(t, c, true, true)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if !c.State().Running || c.Phase() != Presenting {
		t.Errorf("state %+v phase %v", c.State(), c.Phase())
	}
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	c := NewController(testConfig, DefaultParams())

	if err := c.PresentationDone(true); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PresentationDone from idle: %v", err)
	}
	if _, err := c.Respond(true); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Respond from idle: %v", err)
	}
	if err := c.Advance(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Advance from idle: %v", err)
	}

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while presenting: %v", err)
	}
	if _, err := c.Respond(true); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Respond while presenting: %v", err)
	}

	want := State{DisplayIntervalMs: 150, Running: true}
	if c.State() != want || c.Phase() != Presenting {
		t.Errorf("state %+v phase %v", c.State(), c.Phase())
	}
}

func TestTrialConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  TrialConfig
		want error
	}{
		{"valid", TrialConfig{SubjectID: "P7", TrialType: stimulus.Letter, DistractorCount: 50}, nil},
		{"empty subject", TrialConfig{SubjectID: "", TrialType: stimulus.Color, DistractorCount: 10}, ErrEmptySubject},
		{"blank subject", TrialConfig{SubjectID: "   ", TrialType: stimulus.Color, DistractorCount: 10}, ErrEmptySubject},
		{"bad type", TrialConfig{SubjectID: "P7", TrialType: stimulus.TrialType(12), DistractorCount: 10}, stimulus.ErrUnknownTrialType},
		{"bad count", TrialConfig{SubjectID: "P7", TrialType: stimulus.Color, DistractorCount: 21}, ErrInvalidDistractors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
