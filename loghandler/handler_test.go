package loghandler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCompactHandlerRendersTag(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Info("room created", "tag", "lobby", "room", "ABC123")

	line := buf.String()
	if !strings.Contains(line, "[lobby] room created room=ABC123") {
		t.Errorf("unexpected line: %q", line)
	}
	if strings.Contains(line, "tag=") {
		t.Errorf("tag should not be repeated as key=value: %q", line)
	}
}

func TestCompactHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Warn("deck empty", "tag", "game")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN [game] deck empty") {
		t.Errorf("expected WARN prefix, got %q", out)
	}
}

func TestCompactHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCompactHandler(&buf, slog.LevelInfo)).With("tag", "ws", "room", "R1")

	logger.Info("client joined", "player", "p1")

	if got := buf.String(); !strings.Contains(got, "[ws] client joined room=R1 player=p1") {
		t.Errorf("unexpected line: %q", got)
	}
}
