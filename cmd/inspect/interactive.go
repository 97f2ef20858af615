package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thomasding/owned/track"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	acquireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	releaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	leakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	maxEventLog  = 200
	maxTableRows = 12
)

type inspectModel struct {
	reg     *track.Registry
	events  chan track.Event
	log     []string
	vp      viewport.Model
	ready   bool
	done    bool
	leakErr error
	workers int
	ops     int
	leaks   int
}

// busObserver forwards registry events into the TUI without ever blocking
// the workload.
type busObserver struct {
	ch chan track.Event
}

func (o *busObserver) OnHandleEvent(e track.Event) {
	select {
	case o.ch <- e:
	default:
	}
}

type evMsg track.Event

type tickMsg time.Time

type workloadDoneMsg struct{}

func newInspectModel(workers, ops, leaks int) *inspectModel {
	reg := track.NewRegistry()
	bus := &busObserver{ch: make(chan track.Event, 256)}
	reg.Subscribe(bus)
	return &inspectModel{
		reg:     reg,
		events:  bus.ch,
		workers: workers,
		ops:     ops,
		leaks:   leaks,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return tea.Batch(m.startWorkload, m.waitForEvent, tick())
}

func (m *inspectModel) startWorkload() tea.Msg {
	runWorkload(m.reg, m.workers, m.ops, m.leaks, 30*time.Millisecond)
	return workloadDoneMsg{}
}

func (m *inspectModel) waitForEvent() tea.Msg {
	return evMsg(<-m.events)
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.done {
				m.leakErr = m.reg.Close()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		logHeight := msg.Height - maxTableRows - 8
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, logHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = logHeight
		}
		m.refreshLog()

	case evMsg:
		m.appendEvent(track.Event(msg))
		return m, m.waitForEvent

	case tickMsg:
		return m, tick()

	case workloadDoneMsg:
		m.done = true
		m.leakErr = m.reg.Close()
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *inspectModel) appendEvent(e track.Event) {
	var line string
	switch e.Type {
	case track.EventAcquired:
		line = acquireStyle.Render("ACQ ") + fmt.Sprintf("#%-4d %s %s", e.ID, e.Kind, e.Label)
	case track.EventReleased:
		line = releaseStyle.Render("REL ") + fmt.Sprintf("#%-4d %s %s", e.ID, e.Kind, e.Label)
	case track.EventMoved:
		line = moveStyle.Render("MOV ") + fmt.Sprintf("#%-4d %s %s", e.ID, e.Kind, e.Label)
	case track.EventLeaked:
		line = leakStyle.Render("LEAK") + fmt.Sprintf(" #%-4d %s %s", e.ID, e.Kind, e.Label)
	}
	m.log = append(m.log, line)
	if len(m.log) > maxEventLog {
		m.log = m.log[len(m.log)-maxEventLog:]
	}
	m.refreshLog()
}

func (m *inspectModel) refreshLog() {
	if !m.ready {
		return
	}
	m.vp.SetContent(strings.Join(m.log, "\n"))
	m.vp.GotoBottom()
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("owned inspector"))
	b.WriteString(fmt.Sprintf("  %d workers, %d ops each\n\n", m.workers, m.ops))

	if m.done {
		if m.leakErr != nil {
			b.WriteString(leakStyle.Render("Workload finished with leaks:"))
			b.WriteString("\n")
			b.WriteString(m.leakErr.Error())
		} else {
			b.WriteString(releaseStyle.Render("Workload finished clean: every resource released."))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	live := m.reg.Live()
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-8s %-28s %-6s %s", "ID", "KIND", "LABEL", "MOVES", "AGE")))
	b.WriteString("\n")
	rows := live
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}
	for _, e := range rows {
		b.WriteString(fmt.Sprintf("#%-5d %-8s %-28s %-6d %s\n",
			e.ID, e.Kind, e.Label, e.Moves,
			time.Since(e.AcquiredAt).Round(time.Millisecond)))
	}
	if extra := len(live) - len(rows); extra > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("… and %d more\n", extra)))
	}
	b.WriteString(fmt.Sprintf("\n%d live\n\n", len(live)))

	if m.ready {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q quit"))
	return b.String()
}

func runInteractive(workers, ops, leaks int) error {
	m := newInspectModel(workers, ops, leaks)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	if m.leakErr != nil {
		fmt.Println(m.leakErr)
	}
	return nil
}
