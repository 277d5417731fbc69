package board

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whatif-sh/whatif/internal/scenario"
	"github.com/whatif-sh/whatif/internal/workbook"
)

// Model is the main board model: a table of scenario rows over the live
// scenario table, with per-row compute dispatch.
type Model struct {
	// Core data
	table    *scenario.Table
	fn       scenario.Func
	funcName string
	wb       *workbook.Workbook
	path     string

	// rows is the render snapshot, refreshed after every table mutation.
	rows []scenario.Scenario

	// UI state
	viewMode   ViewMode
	cursor     int
	selectedID string

	// Component state
	spinner     spinner.Model
	nameInput   textinput.Model
	inputsInput textinput.Model
	focusInputs bool

	// Operation state
	cancels   map[string]context.CancelFunc
	runTotal  int
	runDone   int
	showError bool
	errorMsg  string

	// Confirmation state
	confirmID      string
	confirmMessage string

	// Dimensions
	width  int
	height int

	// Configuration
	timeout    time.Duration
	useUnicode bool
}

// Config wires the board to a loaded workbook and its resolved function.
type Config struct {
	Table      *scenario.Table
	Workbook   *workbook.Workbook
	Path       string
	Fn         scenario.Func
	FuncName   string
	UseUnicode bool
}

// NewModel creates a new board model.
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	name := textinput.New()
	name.Placeholder = "scenario name"
	name.CharLimit = 100

	inputs := textinput.New()
	inputs.Placeholder = "x=1 y=2"
	inputs.CharLimit = 200

	m := Model{
		table:       cfg.Table,
		fn:          cfg.Fn,
		funcName:    cfg.FuncName,
		wb:          cfg.Workbook,
		path:        cfg.Path,
		viewMode:    ViewTable,
		spinner:     s,
		nameInput:   name,
		inputsInput: inputs,
		cancels:     make(map[string]context.CancelFunc),
		timeout:     cfg.Workbook.Settings.TimeoutOrDefault(),
		useUnicode:  cfg.UseUnicode,
		width:       80,
		height:      24,
	}
	m.refreshRows()
	return m
}

// Init initializes the model and returns initial commands.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// refreshRows re-reads the render snapshot from the table.
func (m *Model) refreshRows() {
	m.rows = m.table.Snapshot()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SelectedRow returns the row under the cursor.
func (m *Model) SelectedRow() (scenario.Scenario, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return scenario.Scenario{}, false
	}
	return m.rows[m.cursor], true
}

// RowByID returns a row from the render snapshot by its ID.
func (m *Model) RowByID(id string) (scenario.Scenario, bool) {
	for _, row := range m.rows {
		if row.ID == id {
			return row, true
		}
	}
	return scenario.Scenario{}, false
}

// CountByState returns counts of rows in each display state.
func (m *Model) CountByState() map[scenario.State]int {
	counts := make(map[scenario.State]int)
	for _, row := range m.rows {
		counts[row.State()]++
	}
	return counts
}

// InFlightCount returns how many rows currently have a compute running.
func (m *Model) InFlightCount() int {
	n := 0
	for _, row := range m.rows {
		if row.Computing {
			n++
		}
	}
	return n
}

// MoveCursorUp moves cursor up with wrapping.
func (m *Model) MoveCursorUp() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.rows) - 1
	}
}

// MoveCursorDown moves cursor down with wrapping.
func (m *Model) MoveCursorDown() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}

// GetViewMode returns the current view mode.
func (m *Model) GetViewMode() ViewMode {
	return m.viewMode
}

// setError shows the error banner.
func (m *Model) setError(msg string) {
	m.showError = true
	m.errorMsg = msg
}

// clearError dismisses the error banner.
func (m *Model) clearError() {
	m.showError = false
	m.errorMsg = ""
}
