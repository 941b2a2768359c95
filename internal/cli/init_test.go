package cli

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("EVENTS_SOURCE", "builtin")
	t.Setenv("CALENDAR_MIN", "2026-01")
	t.Setenv("CALENDAR_MAX", "2026-12")
	t.Setenv("PORT", "8081")

	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.EventsSource != "builtin" {
		t.Errorf("EventsSource = %q", cfg.EventsSource)
	}

	t.Setenv("CALENDAR_MIN", "2027-01")
	if _, err := LoadAndValidateConfig(); err == nil || !strings.Contains(err.Error(), "invalid calendar window") {
		t.Errorf("expected window error, got %v", err)
	}
}

func TestSignalContextCancel(t *testing.T) {
	ctx, stop := SignalContext(context.Background())
	stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled by stop")
	}
}
