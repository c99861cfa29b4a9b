// Package proctop is the built-in live process viewer, used when neither
// htop nor top is installed on the host. It is a minimal bubbletea
// program: a refreshing table of the busiest processes, quit with q.
package proctop

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	refreshInterval = 2 * time.Second
	maxRows         = 30
)

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// procsMsg carries a freshly collected process list.
type procsMsg []ProcInfo

// Model is the bubbletea model for the process viewer.
type Model struct {
	table    table.Model
	collect  func() []ProcInfo
	quitting bool
}

// NewModel builds the viewer around a collector function. Production use
// passes Collect; tests substitute a fixture.
func NewModel(collect func() []ProcInfo) Model {
	cols := []table.Column{
		{Title: "PID", Width: 7},
		{Title: "USER", Width: 10},
		{Title: "CPU%", Width: 6},
		{Title: "MEM%", Width: 6},
		{Title: "COMMAND", Width: 40},
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(maxRows+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("7")).
		Background(lipgloss.Color("8")).
		Bold(false)
	t.SetStyles(s)

	return Model{table: t, collect: collect}
}

// Init starts the tick timer and the first collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.collectCmd())
}

// Update handles key, tick, and data messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := msg.Height - 4
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.collectCmd())

	case procsMsg:
		m.table.SetRows(Rows(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table plus a one-line footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render("q quit · arrows scroll · refreshes every 2s")
	return m.table.View() + "\n" + footer + "\n"
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) collectCmd() tea.Cmd {
	return func() tea.Msg {
		return procsMsg(m.collect())
	}
}

// Rows converts collected processes into table rows.
func Rows(procs []ProcInfo) []table.Row {
	rows := make([]table.Row, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.PID),
			p.User,
			fmt.Sprintf("%.1f", p.CPU),
			fmt.Sprintf("%.1f", p.Mem),
			p.Command,
		})
	}
	return rows
}

// Run starts the viewer in the alternate screen and blocks until quit.
func Run() error {
	p := tea.NewProgram(NewModel(Collect), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
