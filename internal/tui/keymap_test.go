package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := map[string]key.Binding{
		"Quit":     km.Quit,
		"Pause":    km.Pause,
		"Reset":    km.Reset,
		"Up":       km.Up,
		"Down":     km.Down,
		"PageUp":   km.PageUp,
		"PageDown": km.PageDown,
	}

	for name, b := range bindings {
		t.Run(name, func(t *testing.T) {
			if !b.Enabled() {
				t.Errorf("%s binding should be enabled", name)
			}
			if len(b.Keys()) == 0 {
				t.Errorf("%s binding should carry at least one key", name)
			}
			if b.Help().Desc == "" {
				t.Errorf("%s binding should carry help text", name)
			}
		})
	}
}

func TestDefaultKeyMap_MonitorKeys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		wantKey string
	}{
		{"quit via q", km.Quit, "q"},
		{"quit via ctrl+c", km.Quit, "ctrl+c"},
		{"pause via p", km.Pause, "p"},
		{"reset via r", km.Reset, "r"},
		{"scroll up via k", km.Up, "k"},
		{"scroll down via j", km.Down, "j"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Contains(tt.binding.Keys(), tt.wantKey) {
				t.Errorf("binding keys %v should include %q", tt.binding.Keys(), tt.wantKey)
			}
		})
	}
}
