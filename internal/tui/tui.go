// Package tui provides a Bubble Tea terminal user interface for hozon.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/LuMiSxh/hozon/internal/config"
	"github.com/LuMiSxh/hozon/internal/convert"
	"github.com/LuMiSxh/hozon/internal/model"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	findingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateAnalyzing
	StateConverting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   convert.ProgressLevel
}

// eventBuffer collects progress events from pipeline goroutines until
// the UI drains them on its next tick.
type eventBuffer struct {
	mu     sync.Mutex
	events []convert.ProgressEvent
}

func (b *eventBuffer) add(e convert.ProgressEvent) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *eventBuffer) drain() []convert.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.events
	b.events = nil
	return events
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state       State
	sourceInput textinput.Model
	targetInput textinput.Model
	titleInput  textinput.Model
	focused     int
	spinner     spinner.Model
	progress    progress.Model
	logs        []LogEntry
	findings    []string
	paths       []string
	err         error

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	manager *convert.Manager
	events  *eventBuffer

	completedVolumes int32
	totalVolumes     int32

	// Options
	format   model.Format
	strategy model.GroupingStrategy
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	source := textinput.New()
	source.Placeholder = "/path/to/scanned/pages"
	source.Focus()
	source.CharLimit = 500
	source.Width = 60

	target := textinput.New()
	target.Placeholder = "/path/to/output"
	target.CharLimit = 500
	target.Width = 60

	title := textinput.New()
	title.Placeholder = "Series Title"
	title.CharLimit = 200
	title.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		sourceInput: source,
		targetInput: target,
		titleInput:  title,
		spinner:     sp,
		progress:    prog,
		logs:        make([]LogEntry, 0),
		events:      &eventBuffer{},
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// AnalyzeDoneMsg is sent when source analysis completes.
	AnalyzeDoneMsg struct {
		Content  model.CollectedContent
		Findings []string
		Manager  *convert.Manager
		Err      error
	}

	// ConvertDoneMsg is sent when all volumes are written.
	ConvertDoneMsg struct {
		Paths []string
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateAnalyzing || m.state == StateConverting {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "tab", "shift+tab":
			if m.state == StateInput {
				m.cycleFocus(msg.String() == "shift+tab")
			}

		case "enter":
			if m.state == StateInput && m.sourceInput.Value() != "" {
				m.state = StateAnalyzing
				return m, tea.Batch(m.startAnalysis(), m.spinner.Tick)
			}

		case "ctrl+f":
			if m.state == StateInput {
				if m.format == model.FormatCBZ {
					m.format = model.FormatEPUB
				} else {
					m.format = model.FormatCBZ
				}
			}

		case "ctrl+s":
			if m.state == StateInput {
				m.strategy = (m.strategy + 1) % 4
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new conversion
				m.state = StateInput
				m.logs = nil
				m.findings = nil
				m.paths = nil
				m.err = nil
				m.completedVolumes = 0
				m.totalVolumes = 0
				m.manager = nil
				m.events = &eventBuffer{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.sourceInput.Focus()
				m.focused = 0
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case AnalyzeDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.findings = msg.Findings
			m.manager = msg.Manager
			m.state = StateConverting
			cmds = append(cmds, m.startConversion(msg.Content), m.tickProgress())
		}

	case ConvertDoneMsg:
		m.paths = msg.Paths
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		m.drainEvents()
		if m.manager != nil && m.state == StateConverting {
			completed, total := m.manager.Progress()
			m.completedVolumes = completed
			m.totalVolumes = total

			var percent float64
			if total > 0 {
				percent = float64(completed) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text inputs
	if m.state == StateInput {
		var cmd tea.Cmd
		switch m.focused {
		case 0:
			m.sourceInput, cmd = m.sourceInput.Update(msg)
		case 1:
			m.targetInput, cmd = m.targetInput.Update(msg)
		case 2:
			m.titleInput, cmd = m.titleInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) cycleFocus(backwards bool) {
	if backwards {
		m.focused = (m.focused + 2) % 3
	} else {
		m.focused = (m.focused + 1) % 3
	}
	inputs := []*textinput.Model{&m.sourceInput, &m.targetInput, &m.titleInput}
	for i, input := range inputs {
		if i == m.focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *Model) drainEvents() {
	for _, e := range m.events.drain() {
		if e.Level == convert.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📚 Hozon"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Package page scans into CBZ/EPUB volumes"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateAnalyzing:
		b.WriteString(m.viewAnalyzing())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Source directory:"))
	b.WriteString("\n")
	b.WriteString(m.sourceInput.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Target directory:"))
	b.WriteString("\n")
	b.WriteString(m.targetInput.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Title:"))
	b.WriteString("\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Format: %s (ctrl+f)\n", m.format))
	b.WriteString(fmt.Sprintf("  Grouping: %s (ctrl+s)\n", m.strategy))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))

	return b.String()
}

func (m Model) viewAnalyzing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Analyzing source tree..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	if len(m.findings) > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d findings:", len(m.findings))))
		b.WriteString("\n")
		for _, finding := range m.findings {
			b.WriteString(findingStyle.Render("  ▪ " + finding))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.totalVolumes > 0 {
		percent = float64(m.completedVolumes) / float64(m.totalVolumes)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Volumes: %d/%d", m.completedVolumes, m.totalVolumes)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Conversion Complete!\n\n"+
			"Volumes written: %d",
		len(m.paths),
	))
	b.WriteString(box)
	b.WriteString("\n")
	for _, path := range m.paths {
		b.WriteString(successStyle.Render("  " + path))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case convert.LevelError:
			style = errorStyle
			prefix = "✗"
		case convert.LevelWarning:
			style = warningStyle
			prefix = "!"
		case convert.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case convert.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: next field • ctrl+f: format • ctrl+s: grouping • esc: quit"
	case StateAnalyzing, StateConverting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new conversion • q: quit"
	}
	return ""
}

// startAnalysis collects and analyzes the source tree.
func (m *Model) startAnalysis() tea.Cmd {
	buffer := m.events
	ctx := m.ctx

	settings := config.DefaultSettings()
	settings.SourcePath = m.sourceInput.Value()
	settings.TargetPath = m.targetInput.Value()
	settings.OutputFormat = m.format.String()
	settings.GroupingStrategy = m.strategy.String()
	if title := m.titleInput.Value(); title != "" {
		settings.Metadata.Title = title
	}

	return func() tea.Msg {
		manager, err := convert.NewManager(settings, buffer.add)
		if err != nil {
			return AnalyzeDoneMsg{Err: err}
		}

		content, err := manager.Analyze(ctx)
		if err != nil {
			return AnalyzeDoneMsg{Err: err}
		}

		findings := make([]string, 0, len(content.Report.Findings))
		for _, f := range content.Report.Findings {
			findings = append(findings, fmt.Sprintf("%s: %s", f.Kind, f.Path))
		}

		return AnalyzeDoneMsg{
			Content:  content,
			Findings: findings,
			Manager:  manager,
		}
	}
}

// startConversion structures and generates volumes in the background.
func (m *Model) startConversion(content model.CollectedContent) tea.Cmd {
	manager := m.manager
	ctx := m.ctx

	return func() tea.Msg {
		if manager == nil {
			return ConvertDoneMsg{Err: fmt.Errorf("no manager")}
		}

		paths, err := manager.ConvertCollected(ctx, content)
		return ConvertDoneMsg{Paths: paths, Err: err}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
