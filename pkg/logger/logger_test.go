package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	base, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if base.Core().Enabled(zap.DebugLevel) || !base.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("default level should be info")
	}

	debug, err := New(Options{Level: "debug", Format: "console", Service: "ledger"})
	if err != nil {
		t.Fatalf("New(debug): %v", err)
	}
	if !debug.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug level not applied")
	}

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Must should panic")
		}
	}()
	Must(New(Options{Level: "loud"}))
}
