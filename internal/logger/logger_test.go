package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
	now = time.Now
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	if got := buf.String(); got != "[DEBUG] test message arg\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("info message")
	Warn("warn message")
	Section("Section")

	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose is disabled, got: %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Retrieval")

	if got := buf.String(); got != "\n=== Retrieval ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("provider %s answered", "serpapi")
	Warn("provider %s failed", "duckduckgo")

	want := "[INFO] provider serpapi answered\n[WARN] provider duckduckgo failed\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestError_AlwaysWritten(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("index %s missing", "index.kcc")

	if got := buf.String(); got != "[ERROR] index index.kcc missing\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestTimed(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * 250 * time.Millisecond)
	}

	Timed("generation")()

	if got := buf.String(); !strings.Contains(got, "generation took 250ms") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestWriter(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	if Writer() != &buf {
		t.Error("expected Writer to return the configured output")
	}
}
