// Package tui implements the interactive terminal calculator: an input
// line, a scrollable history of evaluations, an engine selector and a
// sparkline of recent evaluation times.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// Layout and display constants.
const (
	// chromeHeight counts the lines around the history panel: header,
	// sparkline, input, help and the panel border.
	chromeHeight   = 6
	minPanelHeight = 3
	sparkSamples   = 32
	valueLimit     = 240
	valueEdges     = 60
	ansToken       = "ans"
	sysInterval    = 2 * time.Second
)

// Config holds the settings of a calculator session.
type Config struct {
	// Engine is the initially selected engine, or "all".
	Engine string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// MaxDigits bounds operand length; 0 disables the check.
	MaxDigits int
	// Recorder, if set, receives one observation per evaluation.
	Recorder orchestration.Recorder
	// Version is shown in the header.
	Version string
}

// Entry is one line of the history.
type Entry struct {
	Input    string
	Engine   string
	Value    string
	Bits     int
	Words    int
	Duration time.Duration
	Err      error
	// Engines and Mismatch are set for comparisons across every engine.
	Engines  int
	Mismatch bool
}

// evalDoneMsg carries the results of an evaluation started by evalCmd.
type evalDoneMsg struct {
	input      string
	label      string
	results    []orchestration.EvaluationResult
	generation uint64
}

// ctxDoneMsg reports the cancellation of the session context.
type ctxDoneMsg struct{}

// sysStatsMsg carries a host load sample.
type sysStatsMsg sysmon.Stats

// Model is the root bubbletea model of the calculator.
type Model struct {
	input   textinput.Model
	history viewport.Model
	spin    spinner.Model
	help    help.Model
	keymap  KeyMap

	ctx     context.Context
	factory engine.Factory
	config  Config
	engines []string
	engine  int

	entries   []Entry
	inputs    []string
	inputIdx  int
	durations *RingBuffer
	last      string

	sys    sysmon.Stats
	hasSys bool

	busy       bool
	generation uint64
	width      int
	height     int
}

// NewModel creates a calculator over the engines of factory.
func NewModel(ctx context.Context, factory engine.Factory, cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "a op b, e.g. 2 << 100 or neg ans"
	ti.Focus()

	engines := append(factory.List(), orchestration.AllEngines)
	selected := 0
	for i, name := range engines {
		if name == cfg.Engine {
			selected = i
		}
	}

	return Model{
		input:     ti,
		history:   viewport.New(80, 10),
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		ctx:       ctx,
		factory:   factory,
		config:    cfg,
		engines:   engines,
		engine:    selected,
		durations: NewRingBuffer(sparkSamples),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, watchContextCmd(m.ctx), sampleSysCmd(m.ctx))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case evalDoneMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.busy = false
		m.addEntry(m.entryFor(msg))
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sysStatsMsg:
		m.sys, m.hasSys = sysmon.Stats(msg), true
		return m, sampleSysCmd(m.ctx)

	case ctxDoneMsg:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Eval):
		return m.submit()

	case key.Matches(msg, m.keymap.NextEngine):
		m.engine = (m.engine + 1) % len(m.engines)
		return m, nil

	case key.Matches(msg, m.keymap.PrevEngine):
		m.engine = (m.engine - 1 + len(m.engines)) % len(m.engines)
		return m, nil

	case key.Matches(msg, m.keymap.HistPrev):
		if m.inputIdx > 0 {
			m.inputIdx--
			m.input.SetValue(m.inputs[m.inputIdx])
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.HistNext):
		if m.inputIdx < len(m.inputs) {
			m.inputIdx++
		}
		if m.inputIdx == len(m.inputs) {
			m.input.SetValue("")
		} else {
			m.input.SetValue(m.inputs[m.inputIdx])
		}
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keymap.Clear):
		m.entries = nil
		m.durations.Reset()
		m.refreshHistory()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the input line on the selected engine.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.busy {
		return m, nil
	}
	m.inputs = append(m.inputs, text)
	m.inputIdx = len(m.inputs)
	m.input.SetValue("")

	label := m.engines[m.engine]
	expr, err := m.parse(text)
	if err != nil {
		m.addEntry(Entry{Input: text, Engine: label, Err: err})
		return m, nil
	}
	engines, err := orchestration.GetEnginesToRun(label, m.factory)
	if err != nil {
		m.addEntry(Entry{Input: text, Engine: label, Err: err})
		return m, nil
	}

	m.busy = true
	m.generation++
	return m, tea.Batch(m.evalCmd(engines, expr, text, label), m.spin.Tick)
}

// parse reads an expression, substituting the previous result for "ans".
func (m Model) parse(s string) (engine.Expression, error) {
	expr, err := engine.ParseExpression(s)
	if err != nil {
		return engine.Expression{}, err
	}
	for _, operand := range []*string{&expr.A, &expr.B} {
		if strings.EqualFold(*operand, ansToken) {
			if m.last == "" {
				return engine.Expression{}, fmt.Errorf("%w: no previous result for %s", engine.ErrInvalidExpression, ansToken)
			}
			*operand = m.last
		}
	}
	return expr, expr.Validate(m.config.MaxDigits)
}

func (m Model) evalCmd(engines []engine.Engine, expr engine.Expression, input, label string) tea.Cmd {
	ctx, timeout, recorder, gen := m.ctx, m.config.Timeout, m.config.Recorder, m.generation
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		var opts []orchestration.ExecOption
		if recorder != nil {
			opts = append(opts, orchestration.WithRecorder(recorder))
		}
		results := orchestration.ExecuteEvaluations(ctx, engines, expr, orchestration.NullProgressReporter{}, io.Discard, opts...)
		return evalDoneMsg{input: input, label: label, results: results, generation: gen}
	}
}

// entryFor turns evaluation results into a history entry and remembers
// the value for "ans".
func (m *Model) entryFor(msg evalDoneMsg) Entry {
	e := Entry{Input: msg.input, Engine: msg.label}
	if len(msg.results) > 1 {
		e.Engines = len(msg.results)
	}
	best, ok, consistent := orchestration.Consistent(msg.results)
	if !ok {
		e.Err = orchestration.FirstError(msg.results)
		return e
	}
	e.Mismatch = !consistent
	e.Value = best.Result.Value
	e.Bits = best.Result.Bits
	e.Words = best.Result.Words
	e.Duration = best.Duration
	if e.Engines > 0 {
		e.Engine = best.Engine
	}
	if !e.Mismatch {
		m.last = e.Value
	}
	m.durations.Push(e.Duration.Seconds())
	return e
}

func (m *Model) addEntry(e Entry) {
	m.entries = append(m.entries, e)
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	width := m.history.Width
	var sb strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderEntry(e, width))
	}
	m.history.SetContent(sb.String())
	m.history.GotoBottom()
}

// renderEntry formats one history entry over two or more lines.
func renderEntry(e Entry, width int) string {
	meta := engineStyle.Render("[" + e.Engine + "]")
	if e.Err == nil {
		meta += dimStyle.Render(" " + format.FormatExecutionDuration(e.Duration))
	}
	lines := []string{exprStyle.Render("› "+e.Input) + "  " + meta}

	switch {
	case e.Err != nil:
		lines = append(lines, errorStyle.Render("  ✗ "+e.Err.Error()))
	default:
		value, truncated := format.TruncateDigits(e.Value, valueLimit, valueEdges)
		wrap := lipgloss.NewStyle().Width(max(width-2, 10))
		lines = append(lines, "  "+valueStyle.Render(wrap.Render("= "+value)))
		info := fmt.Sprintf("  %d bits, %d words, %s digits",
			e.Bits, e.Words, format.FormatInt(format.DigitCount(e.Value)))
		if truncated {
			info += " (truncated)"
		}
		lines = append(lines, dimStyle.Render(info))
		if e.Engines > 0 {
			if e.Mismatch {
				lines = append(lines, warningStyle.Render(fmt.Sprintf("  ! %d engines disagree on the result", e.Engines)))
			} else {
				lines = append(lines, dimStyle.Render(fmt.Sprintf("  all %d engines agree", e.Engines)))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	helpLines := 1
	if m.help.ShowAll {
		for _, group := range m.keymap.FullHelp() {
			helpLines = max(helpLines, len(group))
		}
	}
	m.history.Width = max(m.width-panelStyle.GetHorizontalFrameSize(), 10)
	m.history.Height = max(m.height-chromeHeight-helpLines+1, minPanelHeight)
	m.input.Width = max(m.width-4, 10)
	m.help.Width = m.width
	m.refreshHistory()
}

// View implements tea.Model.
func (m Model) View() string {
	header := m.headerView()
	panel := panelStyle.Render(m.history.View())

	spark := dimStyle.Render("time ")
	if m.durations.Len() > 0 {
		spark += sparkStyle.Render(RenderSparkline(m.durations.Slice())) +
			dimStyle.Render(" last "+format.FormatExecutionDuration(time.Duration(m.durations.Last()*float64(time.Second))))
	}

	inputLine := m.input.View()
	if m.busy {
		inputLine = m.spin.View() + " evaluating..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, panel, spark, inputLine, m.help.View(m.keymap))
}

func (m Model) headerView() string {
	title := "bigcalc"
	if m.config.Version != "" && m.config.Version != "dev" {
		title += " " + m.config.Version
	}
	names := make([]string, len(m.engines))
	for i, name := range m.engines {
		if i == m.engine {
			names[i] = selectedStyle.Render(name)
		} else {
			names[i] = dimStyle.Render(name)
		}
	}
	header := titleStyle.Render(title) + dimStyle.Render(" | engine: ") + strings.Join(names, " ")
	if m.hasSys {
		header += dimStyle.Render(" | " + m.sys.String())
	}
	return header
}

// SelectedEngine returns the name of the selected engine.
func (m Model) SelectedEngine() string {
	return m.engines[m.engine]
}

// Entries returns the history.
func (m Model) Entries() []Entry {
	return m.entries
}

// Run starts the calculator on the alternate screen and blocks until the
// user quits or ctx is canceled.
func Run(ctx context.Context, factory engine.Factory, cfg Config) int {
	initStyles()

	p := tea.NewProgram(NewModel(ctx, factory, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	switch {
	case ctx.Err() != nil:
		return apperrors.ExitErrorCanceled
	case err != nil:
		return apperrors.ExitErrorGeneric
	default:
		return apperrors.ExitSuccess
	}
}

// sampleSysCmd samples the host load after sysInterval.
func sampleSysCmd(ctx context.Context) tea.Cmd {
	return tea.Tick(sysInterval, func(time.Time) tea.Msg {
		return sysStatsMsg(sysmon.Sample(ctx))
	})
}

// watchContextCmd waits for the session context to end.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ctxDoneMsg{}
	}
}
