package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Eval", km.Eval},
		{"NextEngine", km.NextEngine},
		{"PrevEngine", km.PrevEngine},
		{"HistPrev", km.HistPrev},
		{"HistNext", km.HistNext},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Clear", km.Clear},
		{"Help", km.Help},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		b := b
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
			if b.binding.Help().Desc == "" {
				t.Errorf("expected %s binding to have a help text", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if len([]rune(k)) == 1 {
					t.Errorf("binding %q would steal a printable key from the input line", k)
				}
			}
		}
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	keys := DefaultKeyMap().Quit.Keys()
	hasEsc, hasCtrlC := false, false
	for _, k := range keys {
		switch k {
		case "esc":
			hasEsc = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}
	if !hasEsc || !hasCtrlC {
		t.Errorf("Quit keys = %v, want esc and ctrl+c", keys)
	}
}
