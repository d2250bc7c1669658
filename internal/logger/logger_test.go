package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf)

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("club fetch failed", Fields{"club": "FC Barcelona", "attempt": 2}, errors.New("status 503"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}

	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["message"] != "club fetch failed" {
		t.Errorf("message = %v, want %q", entry["message"], "club fetch failed")
	}
	if entry["club"] != "FC Barcelona" {
		t.Errorf("club = %v, want FC Barcelona", entry["club"])
	}
	if entry["error"] != "status 503" {
		t.Errorf("error = %v, want status 503", entry["error"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf).With(Fields{"club": "Real Madrid"})

	logger.Info("fixtures extracted", Fields{"count": 3})

	if !strings.Contains(buf.String(), `"club":"Real Madrid"`) {
		t.Errorf("child logger lost its fields: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"count":3`) {
		t.Errorf("entry missing call fields: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New(LevelWarn, &buf))

	Info("ignored", nil)
	Warn("kept", nil)

	if strings.Contains(buf.String(), "ignored") {
		t.Error("default logger wrote a message below its level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("default logger dropped a WARN message")
	}

	SetDefault(nil)
	Error("discarded", nil, errors.New("x")) // must not panic
}
