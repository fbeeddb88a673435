package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(false)
	l.SetOutput(&buf)

	l.Info("Processing file %s", "a.mp3")
	l.Debug("hidden")
	l.Warn("careful")
	l.Error("broken")

	out := buf.String()
	for _, want := range []string{"INFO: Processing file a.mp3\n", "WARNING: careful\n", "ERROR: broken\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug message printed in non-verbose mode")
	}
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)

	l.Debug("details %d", 42)
	if got := buf.String(); got != "DEBUG: details 42\n" {
		t.Errorf("output = %q", got)
	}
}

func TestQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.Quiet = true
	l.SetOutput(&buf)

	l.Info("a")
	l.Warn("b")
	l.Error("c")
	l.Debug("d")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestProgressBarHidesInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(false)
	l.SetOutput(&buf)
	l.SetProgressBar(true)

	l.Info("hidden while bar is active")
	l.Error("shown")

	if got := buf.String(); got != "ERROR: shown\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFileLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audfill.log")

	l := Discard()
	l.Quiet = true
	if err := l.SetFileLog(path); err != nil {
		t.Fatalf("SetFileLog() error: %v", err)
	}
	l.Warn("to file")
	l.Debug("debug to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "WARNING: to file") {
		t.Errorf("file log = %q, missing warning", data)
	}
	if !strings.Contains(string(data), "DEBUG: debug to file") {
		t.Errorf("file log = %q, missing debug line", data)
	}
}
