// Package dialog collects subject input through native dialogs.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/config"
	"github.com/iburimskiy/preattentive/internal/staircase"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

// ErrCanceled is returned when the subject closes the configuration form.
var ErrCanceled = errors.New("dialog canceled")

const (
	formTitle     = config.WindowTitle
	responseTitle = "Response Required"
	noticeTitle   = "Experiment"

	emptySubjectMessage = "Please enter a Subject ID"
)

// prompter is the set of dialogs the experiment uses. A canceled dialog
// reports zenity.ErrCanceled.
type prompter interface {
	Entry(ctx context.Context, title, text, initial string) (string, error)
	List(ctx context.Context, title, text string, items []string, def string) (string, error)
	Question(ctx context.Context, title, text string) error
	Info(ctx context.Context, title, text string) error
}

type zenityPrompter struct{}

func (zenityPrompter) Entry(ctx context.Context, title, text, initial string) (string, error) {
	return zenity.Entry(text, zenity.Title(title), zenity.EntryText(initial), zenity.Context(ctx))
}

func (zenityPrompter) List(ctx context.Context, title, text string, items []string, def string) (string, error) {
	return zenity.List(text, items, zenity.Title(title), zenity.DefaultItems(def), zenity.Context(ctx))
}

func (zenityPrompter) Question(ctx context.Context, title, text string) error {
	return zenity.Question(text,
		zenity.Title(title),
		zenity.OKLabel("Yes"),
		zenity.CancelLabel("No"),
		zenity.Context(ctx),
	)
}

func (zenityPrompter) Info(ctx context.Context, title, text string) error {
	return zenity.Info(text, zenity.Title(title), zenity.Context(ctx))
}

// Form asks for the session configuration.
type Form struct {
	p   prompter
	log *zap.Logger

	lastSubject string
	lastType    string
	lastCount   string
}

func NewForm(log *zap.Logger) *Form {
	return &Form{p: zenityPrompter{}, log: log}
}

// Ask shows the form until it yields a valid configuration. An empty subject
// ID is reported and the form shown again. Closing any field returns
// ErrCanceled.
func (f *Form) Ask(ctx context.Context) (staircase.TrialConfig, error) {
	types := make([]string, 0, len(stimulus.TrialTypes()))
	for _, t := range stimulus.TrialTypes() {
		types = append(types, t.String())
	}
	counts := make([]string, 0, len(config.DistractorOptions))
	for _, n := range config.DistractorOptions {
		counts = append(counts, strconv.Itoa(n))
	}

	for {
		subject, err := f.p.Entry(ctx, formTitle, "Subject ID:", f.lastSubject)
		if err != nil {
			return staircase.TrialConfig{}, canceled(err)
		}
		subject = strings.TrimSpace(subject)
		if subject == "" {
			f.log.Info("Rejected empty subject ID")
			if err := f.p.Info(ctx, formTitle, emptySubjectMessage); err != nil && !errors.Is(err, zenity.ErrCanceled) {
				return staircase.TrialConfig{}, err
			}
			continue
		}
		f.lastSubject = subject

		typeName, err := f.p.List(ctx, formTitle, "Trial Type:", types, orDefault(f.lastType, types[0]))
		if err != nil {
			return staircase.TrialConfig{}, canceled(err)
		}
		typeName = orDefault(typeName, types[0])
		trialType, err := stimulus.ParseTrialType(typeName)
		if err != nil {
			return staircase.TrialConfig{}, err
		}
		f.lastType = typeName

		countText, err := f.p.List(ctx, formTitle, "Number of Distractors:", counts, orDefault(f.lastCount, counts[0]))
		if err != nil {
			return staircase.TrialConfig{}, canceled(err)
		}
		countText = orDefault(countText, counts[0])
		count, err := strconv.Atoi(countText)
		if err != nil {
			return staircase.TrialConfig{}, fmt.Errorf("distractor count %q: %w", countText, err)
		}
		f.lastCount = countText

		cfg := staircase.TrialConfig{SubjectID: subject, TrialType: trialType, DistractorCount: count}
		if err := cfg.Validate(); err != nil {
			return staircase.TrialConfig{}, err
		}
		return cfg, nil
	}
}

// Responder asks the yes/no question after each presentation.
type Responder struct {
	p prompter
}

func NewResponder() *Responder {
	return &Responder{p: zenityPrompter{}}
}

// Ask blocks until the subject answers. Closing the dialog counts as "No".
func (r *Responder) Ask(ctx context.Context, prompt string) (bool, error) {
	err := r.p.Question(ctx, responseTitle, prompt)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, zenity.ErrCanceled):
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	default:
		return false, err
	}
}

// Notifier shows modal notices.
type Notifier struct {
	p prompter
}

func NewNotifier() *Notifier {
	return &Notifier{p: zenityPrompter{}}
}

// Notify blocks until the notice is dismissed.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if err := n.p.Info(ctx, noticeTitle, message); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		return err
	}
	return ctx.Err()
}

func canceled(err error) error {
	if errors.Is(err, zenity.ErrCanceled) {
		return ErrCanceled
	}
	return err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
