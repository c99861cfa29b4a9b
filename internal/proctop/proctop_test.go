package proctop

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProcs() []ProcInfo {
	return []ProcInfo{
		{PID: 100, User: "www-data", CPU: 12.5, Mem: 3.2, Command: "nginx: worker process"},
		{PID: 42, User: "root", CPU: 80.0, Mem: 1.1, Command: "stress"},
		{PID: 7, User: "mysql", CPU: 12.5, Mem: 22.0, Command: "mysqld"},
	}
}

func TestTopByCPUOrdering(t *testing.T) {
	top := TopByCPU(fixtureProcs(), 10)

	require.Len(t, top, 3)
	assert.Equal(t, int32(42), top[0].PID)
	// Equal CPU breaks the tie on PID so the ordering is stable.
	assert.Equal(t, int32(7), top[1].PID)
	assert.Equal(t, int32(100), top[2].PID)
}

func TestTopByCPUTruncates(t *testing.T) {
	top := TopByCPU(fixtureProcs(), 2)
	assert.Len(t, top, 2)
	assert.Equal(t, int32(42), top[0].PID)
}

func TestRows(t *testing.T) {
	rows := Rows(fixtureProcs()[:1])

	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0][0])
	assert.Equal(t, "www-data", rows[0][1])
	assert.Equal(t, "12.5", rows[0][2])
	assert.Equal(t, "nginx: worker process", rows[0][4])
}

func TestModelQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewModel(func() []ProcInfo { return nil })

			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			updated, cmd := m.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, "", updated.(Model).View())
		})
	}
}

func TestModelConsumesProcsMsg(t *testing.T) {
	m := NewModel(func() []ProcInfo { return fixtureProcs() })

	updated, _ := m.Update(procsMsg(fixtureProcs()))
	view := updated.(Model).View()
	assert.Contains(t, view, "stress")
	assert.Contains(t, view, "mysqld")
}
