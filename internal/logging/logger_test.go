package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iburimskiy/preattentive/internal/config"
)

func TestInitWritesPerLevelFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := config.Default().Logging
	cfg.Directory = dir
	cfg.Level = "info"
	cfg.Compress = false

	log, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Info("session started")
	log.Warn("audio disabled")
	log.Debug("dropped below threshold")
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "-info.log") || !strings.Contains(joined, "-warn.log") {
		t.Errorf("expected info and warn files, got %v", names)
	}
	if strings.Contains(joined, "-debug.log") {
		t.Errorf("debug file should not exist at info level, got %v", names)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	cfg := config.Default().Logging
	cfg.Directory = t.TempDir()
	cfg.Level = "chatty"

	if _, err := Init(cfg); err == nil {
		t.Error("expected error for unknown level")
	}
}
