// Package sessionlog appends finished staircase sessions to a flat text file,
// one comma-separated line per session.
package sessionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/iburimskiy/preattentive/internal/staircase"
)

// Format renders a record as "subjectId, trialType, distractorCount,
// finalDisplayIntervalMs". Fields are not escaped, so a comma inside the
// subject ID splits it across columns.
func Format(rec staircase.SessionRecord) string {
	return fmt.Sprintf("%s, %s, %d, %d", rec.SubjectID, rec.TrialType, rec.DistractorCount, rec.FinalDisplayIntervalMs)
}

// Appender writes records to path, creating the file if needed.
type Appender struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewAppender(path string, log *zap.Logger) *Appender {
	return &Appender{path: path, log: log}
}

func (a *Appender) Path() string { return a.path }

// Append writes one line for rec. Nothing is retried on failure.
func (a *Appender) Append(rec staircase.SessionRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}

	line := Format(rec)
	if _, err := fmt.Fprintln(f, line); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing session log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing session log: %w", err)
	}

	a.log.Debug("Appended session record", zap.String("file", a.path), zap.String("line", line))
	return nil
}
