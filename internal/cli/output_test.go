package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

var (
	mulExpr = engine.Expression{Op: engine.OpMul, A: "111", B: "-111"}
	mulRes  = engine.Result{Value: "-12321", Bits: 14, Words: 1}
)

func init() {
	ui.SetCurrentTheme(ui.NoColorTheme)
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	long := engine.Result{Value: strings.Repeat("9", 200), Bits: 665, Words: 11}
	tests := []struct {
		name     string
		res      engine.Result
		opts     orchestration.PresentationOptions
		contains []string
		excludes []string
	}{
		{
			name:     "Details only",
			res:      mulRes,
			opts:     orchestration.PresentationOptions{Details: true},
			contains: []string{"Result binary size: 14 bits", "Detailed result analysis", "Words (64-bit)      : 1", "Number of digits    : 5"},
			excludes: []string{"Calculated value"},
		},
		{
			name:     "Value",
			res:      mulRes,
			opts:     orchestration.PresentationOptions{ShowValue: true},
			contains: []string{"Calculated value", "111 * -111 = -12,321"},
		},
		{
			name:     "Truncated value",
			res:      long,
			opts:     orchestration.PresentationOptions{ShowValue: true},
			contains: []string{"(truncated)", "...", "Tip: use"},
		},
		{
			name:     "Verbose value",
			res:      long,
			opts:     orchestration.PresentationOptions{ShowValue: true, Verbose: true},
			contains: []string{long.Value},
			excludes: []string{"(truncated)"},
		},
		{
			name:     "Dump",
			res:      mulRes,
			opts:     orchestration.PresentationOptions{Dump: true},
			contains: []string{"Two's-complement words (1)", "[  0] " + strings.Repeat("1", 50)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(tt.res, mulExpr, time.Millisecond, tt.opts, &buf)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestDisplayDump(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	// 2^64 needs a second word and a zero guard bit in it.
	if err := DisplayDump("18446744073709551616", &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "words (2)") {
		t.Errorf("expected two words:\n%s", out)
	}
	if !strings.Contains(out, "[  1] "+strings.Repeat("0", 63)+"1") {
		t.Errorf("high word wrong:\n%s", out)
	}
	if err := DisplayDump("12x", &buf); err == nil {
		t.Error("expected an error for malformed input")
	}
}

func TestFormatExpression(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("7", 60)
	got := FormatExpression(engine.Expression{Op: engine.OpAdd, A: long, B: "1"})
	if want := "77777777...77777777 + 1"; got != want {
		t.Errorf("FormatExpression = %q, want %q", got, want)
	}
	if got := FormatExpression(engine.Expression{Op: engine.OpNeg, A: "5"}); got != "neg 5" {
		t.Errorf("FormatExpression(neg) = %q", got)
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("Nested directory", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(tmpDir, "nested", "dir", "result.txt")
		if err := WriteResultToFile(mulRes, mulExpr, time.Second, "native", OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"# Engine: native", "# Bits: 14", "# Words: 1", "111 * -111 =\n-12321"} {
			if !strings.Contains(string(content), want) {
				t.Errorf("file missing %q:\n%s", want, content)
			}
		}
	})

	t.Run("No file configured", func(t *testing.T) {
		t.Parallel()
		if err := WriteResultToFile(mulRes, mulExpr, 0, "native", OutputConfig{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	t.Run("Quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, mulRes, mulExpr, 0, "native", OutputConfig{Quiet: true}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "-12321\n" {
			t.Errorf("quiet output = %q", buf.String())
		}
	})

	t.Run("Saves file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.txt")
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, mulRes, mulExpr, 0, "big", OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("missing save notice:\n%s", buf.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	})
}
