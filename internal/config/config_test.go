package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

var testEngines = []string{"big", "native", "native-general", "native-small"}

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("bigcalc", []string{"-a", "1", "-b", "2"}, io.Discard, testEngines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Engine != DefaultEngine {
		t.Errorf("Engine = %q, want %q", cfg.Engine, DefaultEngine)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Op != "add" || cfg.MaxDigits != DefaultMaxDigits || cfg.GCMode != "auto" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()
	args := []string{
		"-expr", "12 * -7",
		"-engine", "ALL",
		"-timeout", "10s",
		"-v", "-d", "-c", "-dump",
		"-o", "out.txt",
		"-max-digits", "500",
		"-log-level", "DEBUG",
		"-gc-mode", "disabled",
	}
	cfg, err := ParseConfig("bigcalc", args, io.Discard, testEngines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Engine != "all" {
		t.Errorf("Engine = %q, want lower-cased all", cfg.Engine)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if !cfg.Verbose || !cfg.Details || !cfg.ShowValue || !cfg.Dump {
		t.Errorf("boolean flags not set: %+v", cfg)
	}
	if cfg.OutputFile != "out.txt" || cfg.MaxDigits != 500 || cfg.LogLevel != "debug" || cfg.GCMode != "disabled" {
		t.Errorf("unexpected values: %+v", cfg)
	}

	expr, err := cfg.Expression()
	if err != nil {
		t.Fatalf("Expression(): %v", err)
	}
	if want := (engine.Expression{Op: engine.OpMul, A: "12", B: "-7"}); expr != want {
		t.Errorf("Expression() = %+v, want %+v", expr, want)
	}
}

func TestParseConfigOperandFlags(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("bigcalc", []string{"-a", "-5", "-op", ">>", "-b", "1"}, io.Discard, testEngines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expr, err := cfg.Expression()
	if err != nil {
		t.Fatal(err)
	}
	if want := (engine.Expression{Op: engine.OpRsh, A: "-5", B: "1"}); expr != want {
		t.Errorf("Expression() = %+v, want %+v", expr, want)
	}
}

func TestParseConfigModesNeedNoExpression(t *testing.T) {
	t.Parallel()
	for _, mode := range [][]string{{"-interactive"}, {"-tui"}, {"-serve", "-port", "9090"}, {"-completion", "bash"}} {
		if _, err := ParseConfig("bigcalc", mode, io.Discard, testEngines); err != nil {
			t.Errorf("ParseConfig(%v): %v", mode, err)
		}
	}
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	_, err := ParseConfig("bigcalc", []string{"-h"}, io.Discard, testEngines)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{
		A: "1", B: "2", Op: "add", Engine: "native", Timeout: time.Second,
		LogLevel: "info", GCMode: "auto",
	}
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"all engines", func(c *AppConfig) { c.Engine = "all" }, false},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, true},
		{"negative max digits", func(c *AppConfig) { c.MaxDigits = -1 }, true},
		{"unknown engine", func(c *AppConfig) { c.Engine = "abacus" }, true},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }, true},
		{"bad gc mode", func(c *AppConfig) { c.GCMode = "sometimes" }, true},
		{"no operands", func(c *AppConfig) { c.A = "" }, true},
		{"bad op", func(c *AppConfig) { c.Op = "pow" }, true},
		{"bad expr", func(c *AppConfig) { c.Expr = "1 2 3 4" }, true},
		{"repl needs no operands", func(c *AppConfig) { c.A = ""; c.Interactive = true }, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate(testEngines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var cfgErr apperrors.ConfigError
			if err != nil && !errors.As(err, &cfgErr) {
				t.Errorf("Validate() error %T is not a ConfigError", err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"BIGCALC_EXPR":       "neg 9",
		"BIGCALC_ENGINE":     "big",
		"BIGCALC_TIMEOUT":    "2m",
		"BIGCALC_MAX_DIGITS": "42",
		"BIGCALC_QUIET":      "yes",
		"BIGCALC_DUMP":       "1",
		"BIGCALC_PORT":       "3000",
		"BIGCALC_LOG_LEVEL":  "warn",
		"BIGCALC_GC_MODE":    "aggressive",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := ParseConfig("bigcalc", []string{"-engine", "native"}, io.Discard, testEngines)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Engine != "native" {
		t.Errorf("flag should win over env: Engine = %q", cfg.Engine)
	}
	if cfg.Expr != "neg 9" || cfg.Timeout != 2*time.Minute || cfg.MaxDigits != 42 || cfg.Port != "3000" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if !cfg.Quiet || !cfg.Dump {
		t.Errorf("boolean env values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || cfg.GCMode != "aggressive" {
		t.Errorf("string env values not applied: %+v", cfg)
	}
}

func TestEnvOverridesRejectInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"BIGCALC_VERBOSE", "maybe"},
		{"BIGCALC_TIMEOUT", "soon"},
		{"BIGCALC_MAX_DIGITS", "many"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := ParseConfig("bigcalc", []string{"-expr", "1 + 1"}, io.Discard, testEngines)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want a ConfigError", err)
			}
			if !strings.Contains(cfgErr.Message, tt.key) {
				t.Errorf("message %q should name %s", cfgErr.Message, tt.key)
			}
		})
	}
}

func TestEnvIgnoredWhenFlagSet(t *testing.T) {
	t.Setenv("BIGCALC_TIMEOUT", "soon")
	cfg, err := ParseConfig("bigcalc", []string{"-expr", "1 + 1", "-timeout", "5s"}, io.Discard, testEngines)
	if err != nil {
		t.Fatalf("a bad env value shadowed by a flag should be ignored: %v", err)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"TRUE", true, true},
		{"1", true, true},
		{"yes", true, true},
		{"False", false, true},
		{"0", false, true},
		{"no", false, true},
		{"perhaps", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		got, ok := parseBoolEnv(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseBoolEnv(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
