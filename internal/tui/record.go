// Package tui provides the Bubble Tea recording interface.
package tui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Result is what the recording session produced.
type Result struct {
	Total    int
	Duration float64
	Err      error
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	privacyOn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	privacyOff   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle    = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type tickMsg time.Time

type doneMsg Result

// RecordModel implements the Bubble Tea recording status screen.
type RecordModel struct {
	sessionName string
	eventsPath  string
	privacy     bool

	count     *atomic.Int64
	startedAt time.Time
	stop      func()
	done      <-chan Result

	spinner  spinner.Model
	width    int
	height   int
	stopping bool
	result   Result
	finished bool
}

// NewRecordModel constructs the recording screen. count is updated by
// the recorder as events arrive; stop cancels the capture; done
// yields the recorder's final result.
func NewRecordModel(sessionName, eventsPath string, privacy bool, count *atomic.Int64, stop func(), done <-chan Result) *RecordModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return &RecordModel{
		sessionName: sessionName,
		eventsPath:  eventsPath,
		privacy:     privacy,
		count:       count,
		startedAt:   time.Now(),
		stop:        stop,
		done:        done,
		spinner:     sp,
	}
}

// Result returns the recorder outcome once the program has finished.
func (m *RecordModel) Result() Result {
	return m.result
}

// Init implements tea.Model.
func (m *RecordModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd(), waitDone(m.done))
}

// Update implements tea.Model.
func (m *RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC, msg.String() == "q":
			if !m.stopping {
				m.stopping = true
				m.stop()
			}
			return m, nil
		default:
			return m, nil
		}
	case tickMsg:
		return m, tickCmd()
	case doneMsg:
		m.result = Result(msg)
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *RecordModel) View() string {
	if m.finished {
		return ""
	}
	privacy := privacyOff.Render("disabled")
	if m.privacy {
		privacy = privacyOn.Render("ENABLED")
	}
	status := m.spinner.View() + " recording"
	if m.stopping {
		status = "stopping..."
	}
	elapsed := time.Since(m.startedAt).Truncate(time.Second)

	var b strings.Builder
	b.WriteString(titleStyle.Render("interlog") + "\n\n")
	b.WriteString(row("Session", valueStyle.Render(m.sessionName)))
	b.WriteString(row("Privacy", privacy))
	b.WriteString(row("Events file", valueStyle.Render(m.eventsPath)))
	b.WriteString(row("Elapsed", valueStyle.Render(elapsed.String())))
	b.WriteString(row("Events", valueStyle.Render(fmt.Sprintf("%d", m.count.Load()))))
	b.WriteString("\n" + status)

	card := cardStyle.Render(b.String())
	footer := footerStyle.Render("q or ctrl+c to stop")
	if m.width == 0 || m.height == 0 {
		return card + "\n" + footer + "\n"
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, card)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + value + "\n"
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitDone(done <-chan Result) tea.Cmd {
	return func() tea.Msg {
		return doneMsg(<-done)
	}
}
