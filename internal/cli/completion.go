package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a command-line flag for completion scripts.
// Every shell generator reads flagRegistry, so a new flag only needs an
// entry there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // static suggestions; nil for booleans
	ValueName string   // value label used by zsh
	IsFile    bool     // completes file paths
	IsEngine  bool     // completes registered engine names
	IsOp      bool     // completes operation names
}

// TakesValue reports whether the flag expects an argument.
func (f FlagCompletion) TakesValue() bool {
	return f.IsFile || f.IsEngine || f.IsOp || len(f.Values) > 0 || f.ValueName != ""
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "a", Help: "First operand", ValueName: "integer"},
	{Short: "b", Help: "Second operand or shift count", ValueName: "integer"},
	{Long: "op", Help: "Operation", IsOp: true, ValueName: "operation"},
	{Long: "expr", Help: "Infix expression", ValueName: "expression"},
	{Long: "engine", Help: "Engine to use", IsEngine: true, ValueName: "engine"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "verbose", Short: "v", Help: "Display the full result"},
	{Long: "details", Short: "d", Help: "Show bit length, word count and timing"},
	{Long: "calculate", Short: "c", Help: "Display the calculated value"},
	{Long: "dump", Help: "Print the two's-complement words"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "interactive", Help: "Start the REPL"},
	{Long: "tui", Help: "Start the terminal calculator"},
	{Long: "serve", Help: "Start the HTTP API"},
	{Long: "port", Help: "HTTP port", Values: []string{"8080", "9090"}, ValueName: "port"},
	{Long: "max-digits", Help: "Maximum operand length", Values: []string{"20000", "100000", "0"}, ValueName: "digits"},
	{Long: "log-level", Help: "Log level", Values: []string{"trace", "debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "gc-mode", Help: "Garbage collector control", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes the completion script for shell. engines and
// ops are the dynamic value lists for -engine and -op.
func GenerateCompletion(out io.Writer, shell string, engines, ops []string) error {
	engines = append(append([]string(nil), engines...), "all")
	var err error
	switch shell {
	case "bash":
		err = generateBashCompletion(out, engines, ops)
	case "zsh":
		err = generateZshCompletion(out, engines, ops)
	case "fish":
		err = generateFishCompletion(out, engines, ops)
	case "powershell", "ps":
		err = generatePowerShellCompletion(out, engines, ops)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the dashed spellings of f.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	return names
}

// valuesFor returns the suggestions for a value-taking flag.
func valuesFor(f FlagCompletion, engines, ops []string) []string {
	switch {
	case f.IsEngine:
		return engines
	case f.IsOp:
		return ops
	default:
		return f.Values
	}
}

func generateBashCompletion(out io.Writer, engines, ops []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		if !f.TakesValue() {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n", strings.Join(flagNames(f), "|"))
		switch vals := valuesFor(f, engines, ops); {
		case f.IsFile:
			cases.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		case len(vals) > 0:
			fmt.Fprintf(&cases, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(vals, " "))
		default:
			cases.WriteString("            COMPREPLY=()\n")
		}
		cases.WriteString("            return 0\n            ;;\n")
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bigcalc_completions bigcalc
`, strings.Join(opts, " "), cases.String())
	return err
}

func generateZshCompletion(out io.Writer, engines, ops []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, engines, ops))
	}
	_, err := fmt.Fprintf(out, `#compdef bigcalc

# Zsh completion script for bigcalc
# Add this to your ~/.zshrc or place in $fpath

_bigcalc() {
    _arguments -s \
%s
}

_bigcalc "$@"
`, strings.Join(args, " \\\n"))
	return err
}

// zshArgEntry formats f as an _arguments entry.
func zshArgEntry(f FlagCompletion, engines, ops []string) string {
	suffix := ""
	switch vals := valuesFor(f, engines, ops); {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(vals) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, suffix)
}

func generateFishCompletion(out io.Writer, engines, ops []string) error {
	lines := []string{
		"# Fish completion script for bigcalc",
		"# Add this to ~/.config/fish/completions/bigcalc.fish",
		"",
		"complete -c bigcalc -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, engines, ops))
	}
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func fishCompleteLine(f FlagCompletion, engines, ops []string) string {
	parts := []string{"complete -c bigcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", strings.ReplaceAll(f.Help, "'", `\'`)))

	switch vals := valuesFor(f, engines, ops); {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(vals) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, engines, ops []string) error {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", name, strings.ReplaceAll(f.Help, "'", "''")))
		}
		vals := valuesFor(f, engines, ops)
		if f.IsFile || len(vals) == 0 {
			continue
		}
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = "'" + v + "'"
		}
		for _, name := range flagNames(f) {
			switches = append(switches, fmt.Sprintf(`        '%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, name, strings.Join(quoted, ", ")))
		}
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for bigcalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'bigcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
	return err
}
