package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whatif-sh/whatif/internal/scenario"
	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const minWidth = 80
		const minHeight = 20
		if m.width < minWidth || m.height < minHeight {
			m.setError(fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight))
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.clearError()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ComputeCompleteMsg:
		delete(m.cancels, msg.ScenarioID)
		m.refreshRows()

		if m.runTotal > 0 {
			m.runDone++
			if m.runDone >= m.runTotal {
				m.runTotal = 0
				m.runDone = 0
			}
		}

		if msg.Err != nil {
			m.setError(fmt.Sprintf("Compute failed for %s: %s", msg.ScenarioID, msg.Err.Error()))
			return m, nil
		}

		if msg.Outcome == scenario.OutcomeStored {
			return m, m.saveCmd()
		}
		return m, nil

	case ComputeCancelledMsg:
		delete(m.cancels, msg.ScenarioID)
		m.refreshRows()
		return m, nil

	case WorkbookSavedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("Failed to save workbook: %s", msg.Err.Error()))
		}
		return m, nil

	case ErrorMsg:
		m.setError(msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewTable:
		return m.handleTableKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	case ViewAdd:
		return m.handleAddKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	default:
		return m, nil
	}
}

// handleTableKeys handles keys in the main table view.
func (m Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(msg.String()[0] - '1')
		if index < len(m.rows) {
			m.cursor = index
		}
		return m, nil

	case "enter":
		if row, ok := m.SelectedRow(); ok {
			m.selectedID = row.ID
			m.viewMode = ViewDetail
		}
		return m, nil

	case "c", " ":
		if row, ok := m.SelectedRow(); ok {
			return m.startCompute(row.ID)
		}
		return m, nil

	case "r", "C":
		return m.startComputeAllStale()

	case "a":
		m.viewMode = ViewAdd
		m.focusInputs = false
		m.nameInput.SetValue("")
		m.inputsInput.SetValue("")
		m.nameInput.Focus()
		m.inputsInput.Blur()
		return m, nil

	case "d":
		if row, ok := m.SelectedRow(); ok {
			if _, err := m.table.Duplicate(row.ID); err != nil {
				m.setError(err.Error())
				return m, nil
			}
			m.refreshRows()
			return m, m.saveCmd()
		}
		return m, nil

	case "e":
		if row, ok := m.SelectedRow(); ok {
			m.selectedID = row.ID
			m.viewMode = ViewEdit
			m.inputsInput.SetValue(formatInputs(row.Inputs))
			m.inputsInput.Focus()
		}
		return m, nil

	case "x":
		if row, ok := m.SelectedRow(); ok {
			m.confirmID = row.ID
			m.confirmMessage = fmt.Sprintf("Remove scenario '%s'?", row.ID)
			m.viewMode = ViewConfirm
		}
		return m, nil

	case "s":
		return m, m.saveCmd()

	case "?":
		m.viewMode = ViewHelp
		return m, nil

	case "esc":
		m.clearError()
		return m, nil
	}

	return m, nil
}

// handleDetailKeys handles keys in the row detail view.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "backspace":
		// An in-flight compute can be cancelled from here.
		if _, ok := m.cancels[m.selectedID]; ok {
			m.confirmID = m.selectedID
			m.confirmMessage = "Cancel running compute?"
			m.viewMode = ViewConfirm
			return m, nil
		}
		m.viewMode = ViewTable
		m.selectedID = ""
		return m, nil

	case "c":
		return m.startCompute(m.selectedID)

	case "e":
		if row, ok := m.RowByID(m.selectedID); ok {
			m.viewMode = ViewEdit
			m.inputsInput.SetValue(formatInputs(row.Inputs))
			m.inputsInput.Focus()
		}
		return m, nil
	}

	return m, nil
}

// handleHelpKeys handles keys in the help view.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "?":
		m.viewMode = ViewTable
		return m, nil
	}
	return m, nil
}

// handleConfirmKeys handles the remove/cancel confirmation prompt.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		m.confirmID = ""
		m.viewMode = ViewTable

		if cancel, ok := m.cancels[id]; ok {
			// Confirmed cancelling an in-flight compute.
			cancel()
			m.selectedID = ""
			return m, nil
		}

		if err := m.table.Remove(id); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		if m.selectedID == id {
			m.selectedID = ""
		}
		m.refreshRows()
		return m, m.saveCmd()

	case "n", "esc":
		m.confirmID = ""
		m.viewMode = ViewTable
		return m, nil
	}
	return m, nil
}

// handleAddKeys drives the two-field add prompt.
func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewMode = ViewTable
		return m, nil

	case "tab", "shift+tab":
		m.focusInputs = !m.focusInputs
		if m.focusInputs {
			m.nameInput.Blur()
			m.inputsInput.Focus()
		} else {
			m.inputsInput.Blur()
			m.nameInput.Focus()
		}
		return m, nil

	case "enter":
		if !m.focusInputs {
			m.focusInputs = true
			m.nameInput.Blur()
			m.inputsInput.Focus()
			return m, nil
		}

		inputs, err := scenario.ParseAssignments(strings.Fields(m.inputsInput.Value()))
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}

		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			name = "Scenario"
		}

		m.table.Add(name, inputs)
		m.refreshRows()
		m.cursor = len(m.rows) - 1
		m.viewMode = ViewTable
		return m, m.saveCmd()
	}

	var cmd tea.Cmd
	if m.focusInputs {
		m.inputsInput, cmd = m.inputsInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

// handleEditKeys drives the inline inputs editor for the selected row.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewMode = ViewTable
		return m, nil

	case "enter":
		inputs, err := scenario.ParseAssignments(strings.Fields(m.inputsInput.Value()))
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}

		if err := m.table.UpdateInputs(m.selectedID, inputs); err != nil {
			m.setError(err.Error())
			m.viewMode = ViewTable
			return m, nil
		}

		m.refreshRows()
		m.viewMode = ViewTable
		return m, m.saveCmd()
	}

	var cmd tea.Cmd
	m.inputsInput, cmd = m.inputsInput.Update(msg)
	return m, cmd
}

// startCompute reserves the row and dispatches its compute asynchronously.
// Duplicate triggers are rejected by the table and surfaced as a banner.
func (m Model) startCompute(id string) (tea.Model, tea.Cmd) {
	tk, err := m.table.Begin(id)
	if err != nil {
		var inProgress *whatiferrors.InProgressError
		if errors.As(err, &inProgress) {
			m.setError(fmt.Sprintf("Scenario %s is already computing", id))
		} else {
			m.setError(err.Error())
		}
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancels[id] = cancel
	m.refreshRows()

	return m, tea.Batch(m.spinner.Tick, computeCmd(ctx, m.table, tk, m.fn, m.timeout))
}

// startComputeAllStale dispatches computes for every stale row that is not
// already in flight. Rows run independently and may complete in any order.
func (m Model) startComputeAllStale() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	count := 0

	for _, row := range m.rows {
		if !row.Dirty || row.Computing {
			continue
		}

		tk, err := m.table.Begin(row.ID)
		if err != nil {
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		m.cancels[row.ID] = cancel
		cmds = append(cmds, computeCmd(ctx, m.table, tk, m.fn, m.timeout))
		count++
	}

	if count == 0 {
		return m, nil
	}

	m.runTotal = count
	m.runDone = 0
	m.refreshRows()

	cmds = append(cmds, m.spinner.Tick)
	return m, tea.Batch(cmds...)
}
