// This file contains the environment variable override table.

package config

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// envOverride maps an env key (without the BIGCALC_ prefix) to the flag
// name(s) it shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

func stringOverride(field func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*field(c) = v
		return nil
	}
}

func boolOverride(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		b, ok := parseBoolEnv(v)
		if !ok {
			return fmt.Errorf("want true/false, 1/0 or yes/no, got %q", v)
		}
		*field(c) = b
		return nil
	}
}

// envOverrides is the table of all environment variable overrides.
var envOverrides = []envOverride{
	// Operands
	{"A", []string{"a"}, stringOverride(func(c *AppConfig) *string { return &c.A })},
	{"B", []string{"b"}, stringOverride(func(c *AppConfig) *string { return &c.B })},
	{"OP", []string{"op"}, stringOverride(func(c *AppConfig) *string { return &c.Op })},
	{"EXPR", []string{"expr"}, stringOverride(func(c *AppConfig) *string { return &c.Expr })},

	// Numeric and duration overrides
	{"MAX_DIGITS", []string{"max-digits"}, func(c *AppConfig, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.MaxDigits = n
		return nil
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = d
		return nil
	}},

	// String overrides
	{"ENGINE", []string{"engine"}, stringOverride(func(c *AppConfig) *string { return &c.Engine })},
	{"OUTPUT", []string{"output", "o"}, stringOverride(func(c *AppConfig) *string { return &c.OutputFile })},
	{"PORT", []string{"port"}, stringOverride(func(c *AppConfig) *string { return &c.Port })},
	{"LOG_LEVEL", []string{"log-level"}, stringOverride(func(c *AppConfig) *string { return &c.LogLevel })},
	{"GC_MODE", []string{"gc-mode"}, stringOverride(func(c *AppConfig) *string { return &c.GCMode })},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"CALCULATE", []string{"calculate", "c"}, boolOverride(func(c *AppConfig) *bool { return &c.ShowValue })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"DUMP", []string{"dump"}, boolOverride(func(c *AppConfig) *bool { return &c.Dump })},
	{"INTERACTIVE", []string{"interactive"}, boolOverride(func(c *AppConfig) *bool { return &c.Interactive })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
	{"SERVE", []string{"serve"}, boolOverride(func(c *AppConfig) *bool { return &c.Serve })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/false, 1/0 and yes/no, case-insensitively.
func parseBoolEnv(val string) (value, ok bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies BIGCALC_* variables to the flags that were not
// given on the command line. Priority: flags, then environment, then
// defaults. A value that does not parse is a ConfigError.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	set := setFlags(fs)
	for _, o := range envOverrides {
		if slices.ContainsFunc(o.flags, func(name string) bool { return set[name] }) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if err := o.apply(config, val); err != nil {
			return apperrors.NewConfigError("invalid %s%s: %v", EnvPrefix, o.envKey, err)
		}
	}
	return nil
}
