package logsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "access.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSourceDeliversLines(t *testing.T) {
	t.Parallel()
	path := writeTempLog(t, "10.0.0.1 - - - - - - - 200 512\n10.0.0.2 - - - - - - - 404 100\n")

	src, err := NewFileSource(context.Background(), path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	defer src.Stop()

	var lines []string
	for env := range src.Lines() {
		if env.Source != "file" {
			t.Errorf("Source = %q, want file", env.Source)
		}
		lines = append(lines, env.Line)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := NewFileSource(context.Background(), filepath.Join(t.TempDir(), "nope.log")); err == nil {
		t.Fatal("NewFileSource of a missing file should error before the pipeline starts")
	}
}

func TestFileSourceStopClosesLines(t *testing.T) {
	t.Parallel()
	path := writeTempLog(t, "line one\n")

	src, err := NewFileSource(context.Background(), path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	src.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-src.Lines():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for lines channel to close")
		}
	}
}
