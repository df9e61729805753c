package logger

import (
	"bytes"
	"os"
	"testing"
)

// capture redirects logger output to a buffer for the test's duration.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

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
	buf := capture(t, true)

	Debug("retrieved %d chunks", 5)

	if got := buf.String(); got != "[DEBUG] retrieved 5 chunks\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("retrieved 5 chunks")

	if buf.Len() > 0 {
		t.Error("expected no output when verbose is disabled")
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Source Processing")

	if got := buf.String(); got != "\n=== Source Processing ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestInfo(t *testing.T) {
	buf := capture(t, true)

	Info("expanded %d subsections", 3)

	if got := buf.String(); got != "[INFO] expanded 3 subsections\n" {
		t.Errorf("unexpected info output: %q", got)
	}
}

func TestWarn(t *testing.T) {
	buf := capture(t, true)

	Warn("search index unreachable")

	if got := buf.String(); got != "[WARN] search index unreachable\n" {
		t.Errorf("unexpected warn output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
	// Test passes if no race conditions
}
