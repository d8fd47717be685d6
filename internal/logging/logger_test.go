package logging

import (
	"os"
	"testing"

	"github.com/hamed0406/healthprobe/internal/config"
)

func TestNew_CreatesDirAndLogger(t *testing.T) {
	dir := t.TempDir()
	log, err := New(config.LoggingConfig{Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = log.Sync() }()

	// Directory should exist
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("log dir missing: %v", err)
	}

	// Write once; just ensuring no panic / basic functionality.
	log.Info("test_message_from_logging_test")

	// Best-effort: a file might not be flushed immediately; don't fail on it.
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Logf("no files yet in %s (ok; async writers may delay)", dir)
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	log, err := New(config.LoggingConfig{Dir: t.TempDir(), Level: "noisy"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("still works")
}
