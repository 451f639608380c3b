package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lumen/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"  WARN ": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestConsoleHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	h := newConsoleHandler(&buf, lvl, false)
	logger := slog.New(h)

	logger.Info("program changed",
		slog.String("program", "aggressive"),
		slog.Float64("progress", 0.5),
		slog.String("note", "two words"))

	line := buf.String()
	if !strings.Contains(line, " INF program changed") {
		t.Fatalf("line missing level and message: %q", line)
	}
	if !strings.Contains(line, "program=aggressive") {
		t.Fatalf("line missing plain attr: %q", line)
	}
	if !strings.Contains(line, "progress=0.5") {
		t.Fatalf("line missing float attr: %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Fatalf("spaced value not quoted: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("colorless handler emitted ANSI: %q", line)
	}
	if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
		t.Fatalf("record is not a single line: %q", line)
	}
}

func TestConsoleHandlerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.Info("suppressed")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info leaked past warn gate: %q", out)
	}
	if !strings.Contains(out, "WRN kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl, false))

	logger.With(slog.String("run_id", "abc")).
		WithGroup("show").
		Info("tick", slog.Int("frame", 7))

	line := buf.String()
	if !strings.Contains(line, "run_id=abc") {
		t.Fatalf("inherited attr missing: %q", line)
	}
	if !strings.Contains(line, "show.frame=7") {
		t.Fatalf("group prefix missing: %q", line)
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	h := newJSONHandler(&buf, lvl)

	rec := slog.NewRecord(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "started", 0)
	rec.AddAttrs(slog.String("program", "silence"))
	if err := h.Handle(context.Background(), rec); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "started" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Fatalf("level = %v", entry["level"])
	}
	if entry["ts"] != "2026-03-01T12:00:00Z" {
		t.Fatalf("ts = %v", entry["ts"])
	}
	if entry["program"] != "silence" {
		t.Fatalf("program = %v", entry["program"])
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.LogDir = dir

	logger, err := NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "lumen.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("log file content %q", data)
	}
}

func TestOpenWritersClosesFilesOnError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.log")
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	// blocker is a regular file, so creating a directory beneath it fails
	// after good.log has already been opened.
	bad := filepath.Join(blocker, "sub", "bad.log")

	fds := func() int {
		entries, err := os.ReadDir("/proc/self/fd")
		if err != nil {
			t.Skipf("fd table unavailable: %v", err)
		}
		return len(entries)
	}

	before := fds()
	if _, _, err := openWriters([]string{good, bad}, nil); err == nil {
		t.Fatal("expected error for unreachable log path")
	}
	if after := fds(); after > before {
		t.Fatalf("descriptor leak: %d open before, %d after", before, after)
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger reports enabled")
	}
}
