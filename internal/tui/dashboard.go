// Package tui provides the live gateway dashboard for gate-ctl
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/gate-ctl/internal/audit"
	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/health"
	"github.com/openclaw/gate-ctl/internal/promotion"
	"github.com/openclaw/gate-ctl/internal/status"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	healthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))
)

// eventFeedSize is how many recent events the dashboard shows.
const eventFeedSize = 6

type tickMsg time.Time

type refreshMsg struct {
	report *status.Report
	events []audit.Event
}

type actionMsg struct {
	summary string
	err     error
}

// Model is the bubbletea model for the gateway dashboard
type Model struct {
	reporter   *status.Reporter
	controller *promotion.Controller
	auditLog   *audit.Logger
	interval   time.Duration

	table      table.Model
	report     *status.Report
	events     []audit.Event
	lastAction string
	quitting   bool
	width      int
	height     int
}

// NewDashboard creates the gateway dashboard model
func NewDashboard(reporter *status.Reporter, controller *promotion.Controller, auditLog *audit.Logger, interval time.Duration) Model {
	columns := []table.Column{
		{Title: "Backend", Width: 12},
		{Title: "Port", Width: 6},
		{Title: "Role", Width: 10},
		{Title: "Health", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(4),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("39")).Bold(true)
	t.SetStyles(styles)

	return Model{
		reporter:   reporter,
		controller: controller,
		auditLog:   auditLog,
		interval:   interval,
		table:      t,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh gathers a fresh report off the update loop; probes block for
// up to the configured timeout.
func (m Model) refresh() tea.Msg {
	msg := refreshMsg{report: m.reporter.Report()}
	if m.auditLog != nil {
		msg.events, _ = m.auditLog.Tail(audit.GatewayComponent, eventFeedSize)
	}
	return msg
}

func (m Model) promoteCmd(target backend.Backend) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.controller.Promote(target)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{summary: outcomeSummary("promote", outcome)}
	}
}

func (m Model) rollbackCmd() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.controller.Rollback()
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{summary: outcomeSummary("rollback", outcome)}
	}
}

func outcomeSummary(verb string, o *promotion.Outcome) string {
	if o.Degraded() {
		return fmt.Sprintf("%s → %s (config only, router not reloaded)", verb, o.Target)
	}
	return fmt.Sprintf("%s → %s (port %d)", verb, o.Target, o.Port)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh, m.tick())

	case refreshMsg:
		m.report = msg.report
		m.events = msg.events
		m.table.SetRows(backendRows(msg.report))
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastAction = downStyle.Render(msg.err.Error())
		} else {
			m.lastAction = msg.summary
		}
		return m, m.refresh

	case tea.KeyMsg:
		switch msg.String() {
		case "1":
			return m, m.promoteCmd(backend.Primary)
		case "2":
			return m, m.promoteCmd(backend.Secondary)
		case "r":
			return m, m.rollbackCmd()
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func backendRows(report *status.Report) []table.Row {
	if report == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(report.Backends))
	for _, b := range report.Backends {
		role := "standby"
		if b.Active {
			role = "active"
		}
		rows = append(rows, table.Row{b.Label, strconv.Itoa(b.Port), role, renderHealth(b.Health)})
	}
	return rows
}

func renderHealth(h health.Status) string {
	if h == health.StatusHealthy {
		return healthyStyle.Render("● healthy")
	}
	return downStyle.Render("● down")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("OpenClaw Gateway"))
	b.WriteString("\n")

	if m.report == nil {
		b.WriteString("Loading...\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Active backend: %s    Router: %s\n\n",
		m.report.Active, routerLine(m.report)))

	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	b.WriteString(panelTitleStyle.Render("Recent events"))
	b.WriteString("\n")
	if len(m.events) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range m.events {
		b.WriteString(fmt.Sprintf("  %s  %-9s %s\n",
			e.Timestamp.Format("15:04:05"), e.Type, e.Details))
	}

	if m.lastAction != "" {
		b.WriteString("\n" + m.lastAction + "\n")
	}

	b.WriteString(helpStyle.Render("1: promote primary • 2: promote secondary • r: rollback • q: quit"))
	return b.String()
}

func routerLine(report *status.Report) string {
	if report.Router.Running {
		return fmt.Sprintf("%s (pid %d)", renderHealth(report.Router.Health), report.Router.PID)
	}
	return downStyle.Render("not running")
}

// RunDashboard runs the dashboard until the user quits.
func RunDashboard(reporter *status.Reporter, controller *promotion.Controller, auditLog *audit.Logger, interval time.Duration) error {
	m := NewDashboard(reporter, controller, auditLog, interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
