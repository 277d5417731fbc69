package board

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatif-sh/whatif/internal/scenario"
)

func TestViewTableListsAllRows(t *testing.T) {
	m := newTestModel(t)

	out := m.View()

	assert.Contains(t, out, "test-study")
	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "high-load")
	assert.Contains(t, out, "x=10 y=2")
	assert.Contains(t, out, "not computed")
	assert.Contains(t, out, "fn: product")
}

func TestViewShowsStaleMarkerAfterEdit(t *testing.T) {
	m := newTestModel(t)

	tk, err := m.table.Begin("baseline")
	require.NoError(t, err)
	m.table.Complete(tk, scenario.Outputs{"res": 20, "diff": 8}, nil)
	require.NoError(t, m.table.UpdateInputs("baseline", scenario.Inputs{"x": 11, "y": 2}))
	m.refreshRows()

	out := m.View()
	assert.Contains(t, out, "res=20")
	assert.Contains(t, out, "(stale)")
}

func TestViewShowsFailureMessage(t *testing.T) {
	m := newTestModel(t)

	tk, err := m.table.Begin("baseline")
	require.NoError(t, err)
	m.table.Complete(tk, nil, assertErr("division by zero"))
	m.refreshRows()

	out := m.View()
	assert.Contains(t, out, "division by zero")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestViewErrorBanner(t *testing.T) {
	m := newTestModel(t)
	m.setError("something broke")

	out := m.View()
	assert.Contains(t, out, "something broke")
	assert.Contains(t, out, "esc: dismiss error")
}

func TestViewDetail(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = ViewDetail
	m.selectedID = "high-load"

	out := m.View()
	assert.Contains(t, out, "high-load")
	assert.Contains(t, out, "Inputs")
	assert.Contains(t, out, "x = 50")
}

func TestViewHelp(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = ViewHelp

	out := m.View()
	assert.Contains(t, out, "compute")
	assert.Contains(t, out, "quit")
}

func TestViewConfirmBar(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	got := asModel(t, next)

	out := got.View()
	assert.Contains(t, out, "Remove scenario 'baseline'?")
	assert.Contains(t, out, "y: confirm")
}

func TestViewEmptyState(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.table.Remove("baseline"))
	require.NoError(t, m.table.Remove("high-load"))
	m.refreshRows()

	out := m.View()
	assert.Contains(t, out, "No scenarios")
}

func TestFormatComputedAt(t *testing.T) {
	assert.Equal(t, "Never", formatComputedAt(time.Time{}))
	assert.Equal(t, "Just now", formatComputedAt(time.Now()))
}
