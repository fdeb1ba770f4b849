package app

import (
	"strings"
	"testing"
)

func TestStartProfile_Disabled(t *testing.T) {
	for _, mode := range []string{"", "  "} {
		stop, err := StartProfile(mode, t.TempDir())
		if err != nil {
			t.Fatalf("StartProfile(%q) error: %v", mode, err)
		}
		stop()
	}
}

func TestStartProfile_UnknownMode(t *testing.T) {
	_, err := StartProfile("heap-ish", t.TempDir())
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !strings.Contains(err.Error(), ProfileModes()) {
		t.Errorf("error %q should list the supported modes", err)
	}
}
