package app

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"empty", nil, false},
		{"no version flag", []string{"-expr", "1 + 1"}, false},
		{"long flag", []string{"--version"}, true},
		{"short flag", []string{"-V"}, true},
		{"single dash", []string{"-version"}, true},
		{"after other flags", []string{"-serve", "--version"}, true},
		{"similar flag", []string{"--verbose"}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasVersionFlag(tt.args); got != tt.want {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)

	out := buf.String()
	for _, want := range []string{"bigcalc " + Version, "Commit:", "Built:", runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH, "Host:"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintVersion output missing %q:\n%s", want, out)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()
	info := GetVersionInfo()
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("unexpected version info: %+v", info)
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"build_date"`) {
		t.Errorf("JSON missing build_date: %s", data)
	}
}
