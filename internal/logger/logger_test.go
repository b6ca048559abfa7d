package logger

import "testing"

func TestGetReturnsSameLogger(t *testing.T) {
	first := Get()
	second := Get()
	if first == nil {
		t.Fatal("Expected an initialized logger")
	}
	if first != second {
		t.Error("Expected Get to return the same logger instance")
	}
}

func TestHelpersLog(t *testing.T) {
	// The helpers call level methods on the shared logger; they must not
	// panic regardless of level.
	Info("info message")
	Warn("warn message")
	Error("error message", nil)
	Debug("debug message")
}
