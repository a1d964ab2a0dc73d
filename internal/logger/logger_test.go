package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text")

	Info("catalog loaded", "photos", 42)

	out := buf.String()
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "photos=42") {
		t.Errorf("expected structured field in output, got %q", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json")

	Info("prefetch ready", "ref", "media/2021/03/abc.jpg")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["msg"] != "prefetch ready" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["ref"] != "media/2021/03/abc.jpg" {
		t.Errorf("unexpected ref: %v", entry["ref"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text")

	Debug("should not appear")
	Info("should not appear either")
	Warn("visible")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "ERROR", "text")

	Info("hidden")
	SetLevel("DEBUG")
	Debug("now visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should have been filtered: %q", out)
	}
	if !strings.Contains(out, "now visible") {
		t.Errorf("debug message missing after SetLevel: %q", out)
	}
}
