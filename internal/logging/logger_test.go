package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"shelve/internal/events"
)

func TestConsoleHandlerFormatsComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "engine").Info("run complete", Int("moved", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO engine: run complete") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "moved=3") {
		t.Fatalf("missing attr in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("moved", String("source", "/tmp/with space.txt"))

	if !strings.Contains(buf.String(), `source="/tmp/with space.txt"`) {
		t.Fatalf("value not quoted: %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line not filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	ctx := events.WithRunID(context.Background(), "abc123")
	WithContext(ctx, logger).Info("hello")

	if !strings.Contains(buf.String(), "run_id=abc123") {
		t.Fatalf("run id missing: %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing happens", Error(nil))
}
