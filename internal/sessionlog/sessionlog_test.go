package sessionlog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/preattentive/internal/staircase"
	"github.com/iburimskiy/preattentive/internal/stimulus"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		rec  staircase.SessionRecord
		want string
	}{
		{staircase.SessionRecord{SubjectID: "S01", TrialType: stimulus.Color, DistractorCount: 10, FinalDisplayIntervalMs: 150}, "S01, Color, 10, 150"},
		{staircase.SessionRecord{SubjectID: "Doe, J", TrialType: stimulus.Letter, DistractorCount: 50, FinalDisplayIntervalMs: 375}, "Doe, J, Letter, 50, 375"},
	}
	for _, tt := range tests {
		if got := Format(tt.rec); got != tt.want {
			t.Errorf("Format = %q, want %q", got, tt.want)
		}
	}
}

func TestAppendCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "experiment_data.txt")
	a := NewAppender(path, zaptest.NewLogger(t))

	recs := []staircase.SessionRecord{
		{SubjectID: "S01", TrialType: stimulus.Combo, DistractorCount: 20, FinalDisplayIntervalMs: 175},
		{SubjectID: "S02", TrialType: stimulus.Size, DistractorCount: 40, FinalDisplayIntervalMs: 150},
	}
	for _, r := range recs {
		if err := a.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "S01, Combo, 20, 175\nS02, Size, 40, 150\n"
	if string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestAppendKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment_data.txt")
	if err := os.WriteFile(path, []byte("old, Color, 10, 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewAppender(path, zaptest.NewLogger(t))
	if err := a.Append(staircase.SessionRecord{SubjectID: "new", TrialType: stimulus.Shape, DistractorCount: 30, FinalDisplayIntervalMs: 225}); err != nil {
		t.Fatal(err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "old, Color, 10, 200\nnew, Shape, 30, 225\n" {
		t.Errorf("file = %q", got)
	}
}

func TestAppendReportsFailure(t *testing.T) {
	// The target path is a directory, so opening it for writing fails.
	dir := t.TempDir()
	a := NewAppender(dir, zaptest.NewLogger(t))

	if err := a.Append(staircase.SessionRecord{SubjectID: "S01", TrialType: stimulus.Color, DistractorCount: 10, FinalDisplayIntervalMs: 150}); err == nil {
		t.Error("expected an error")
	}
}
