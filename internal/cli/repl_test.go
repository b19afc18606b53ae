package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
)

func runREPL(t *testing.T, input string) (*REPL, string) {
	t.Helper()
	r := NewREPL(engine.NewDefaultFactory(), REPLConfig{DefaultEngine: "native", Timeout: 10 * time.Second, MaxDigits: 1000})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start(context.Background())
	return r, out.String()
}

func TestREPL_EvalAndAns(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, "12 * -7\nans - 6\neval ans / 9\nexit\n")
	for _, want := range []string{"= -84", "= -90", "= -10", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if r.Last() != "-10" {
		t.Errorf("Last() = %q, want -10", r.Last())
	}
}

func TestREPL_Errors(t *testing.T) {
	t.Parallel()
	_, out := runREPL(t, "ans + 1\n1 / 0\n12a + 1\nfoo\n1 << 99999999999\n")
	for _, want := range []string{"no previous result", "division by zero", "malformed", "invalid expression", "shift count"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// EOF without exit still says goodbye.
	if !strings.Contains(out, "Goodbye!") {
		t.Error("expected goodbye on EOF")
	}
}

func TestREPL_EngineCommands(t *testing.T) {
	t.Parallel()
	_, out := runREPL(t, "engine big\nstatus\nengine nope\nlist\ndump\n-1 >> 0\nq\n")
	for _, want := range []string{
		"Engine changed to: big",
		"Engine:      big",
		"Unknown engine: nope",
		"native-general",
		"Word dump: enabled",
		"[  0] " + strings.Repeat("1", 64),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_Compare(t *testing.T) {
	t.Parallel()
	r, out := runREPL(t, "compare -8 >> 3\nexit\n")
	if strings.Contains(out, "INCONSISTENT") {
		t.Errorf("engines disagree:\n%s", out)
	}
	for _, name := range engine.NewDefaultFactory().List() {
		if !strings.Contains(out, name) {
			t.Errorf("comparison missing engine %s:\n%s", name, out)
		}
	}
	if r.Last() != "0" {
		t.Errorf("Last() = %q, want 0", r.Last())
	}
}

func TestNewREPL_FallbackEngine(t *testing.T) {
	t.Parallel()
	r := NewREPL(engine.NewDefaultFactory(), REPLConfig{DefaultEngine: "all"})
	if r.currentEngine != "big" {
		t.Errorf("currentEngine = %q, want first listed engine", r.currentEngine)
	}
}
