package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "warn", "json"))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %s", buf.String())
	}

	logger.Warn("tile slow", "tile", "5/45/28")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "tile slow" || record["tile"] != "5/45/28" {
		t.Errorf("record = %v", record)
	}
}

func TestNewHandlerText(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, "debug", "TEXT")).Debug("parsed", "gars", "361HN37")

	if !strings.Contains(buf.String(), "msg=parsed") || !strings.Contains(buf.String(), "gars=361HN37") {
		t.Errorf("text output = %q", buf.String())
	}
}
