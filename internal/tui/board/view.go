package board

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/whatif-sh/whatif/internal/scenario"
)

// View renders the current model state.
func (m Model) View() string {
	switch m.viewMode {
	case ViewTable:
		return m.renderTableView("")
	case ViewDetail:
		return m.renderDetailView()
	case ViewHelp:
		return m.renderHelpView()
	case ViewConfirm:
		return m.renderTableView(m.renderConfirmBar())
	case ViewAdd:
		return m.renderTableView(m.renderAddBar())
	case ViewEdit:
		return m.renderTableView(m.renderEditBar())
	default:
		return m.renderTableView("")
	}
}

// renderTableView renders the scenario table with an optional prompt bar in
// place of the footer hints.
func (m Model) renderTableView(promptBar string) string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(m.renderErrorBanner())
		content.WriteString("\n")
	}

	content.WriteString(m.renderRows())
	content.WriteString("\n")

	if promptBar != "" {
		content.WriteString(promptBar)
	} else {
		content.WriteString(m.renderFooter())
	}

	return content.String()
}

// renderHeader renders the title and state summary.
func (m Model) renderHeader() string {
	title := titleStyle.Render(fmt.Sprintf("⚡ %s — what-if board", m.wb.Name))

	counts := m.CountByState()
	summary := fmt.Sprintf(
		"%s %d  %s %d  %s %d  %s %d",
		m.stateIcon(scenario.StateFresh), counts[scenario.StateFresh],
		m.stateIcon(scenario.StateStale), counts[scenario.StateStale],
		m.stateIcon(scenario.StateFailed), counts[scenario.StateFailed],
		m.stateIcon(scenario.StateComputing), counts[scenario.StateComputing],
	)

	summary += mutedStyle.Render(fmt.Sprintf("   fn: %s", m.funcName))

	if m.runTotal > 0 {
		summary += fmt.Sprintf("  %s Computing %d/%d",
			m.spinner.View(), m.runDone, m.runTotal)
	}

	headerContent := lipgloss.JoinVertical(lipgloss.Left, title, summary)
	return headerStyle.Render(headerContent)
}

// renderRows renders the scenario rows with a scroll window.
func (m Model) renderRows() string {
	if len(m.rows) == 0 {
		return m.renderEmptyState()
	}

	// Three lines per row plus header and footer reserves.
	visible := (m.height - 9) / 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var items []string
	for i := start; i < end; i++ {
		items = append(items, m.renderRow(i, i == m.cursor))
	}

	if start > 0 {
		items = append([]string{mutedStyle.Render("▲ More above")}, items...)
	}
	if end < len(m.rows) {
		items = append(items, mutedStyle.Render("▼ More below"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderRow renders a single scenario row.
func (m Model) renderRow(index int, selected bool) string {
	row := m.rows[index]
	state := row.State()

	icon := m.stateIcon(state)
	if row.Computing {
		icon = m.spinner.View()
	}

	number := fmt.Sprintf("%d.", index+1)
	name := row.Name
	if name == "" {
		name = row.ID
	}

	result := formatOutputs(row.Result)
	if result == "" {
		result = mutedStyle.Render("not computed")
	} else if row.Dirty {
		result += mutedStyle.Render(" (stale)")
	}

	line1 := fmt.Sprintf("%s %s %s %s", icon, number,
		lipgloss.NewStyle().Bold(true).Render(name),
		mutedStyle.Render("["+row.ID+"]"))
	line2 := fmt.Sprintf("   in:  %s", formatInputs(row.Inputs))
	line3 := fmt.Sprintf("   out: %s  %s", result,
		mutedStyle.Render("Computed: "+formatComputedAt(row.ComputedAt)))

	if row.Err != "" && !row.Computing {
		line3 = fmt.Sprintf("   out: %s", stateStyle(scenario.StateFailed).Render("✗ "+row.Err))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)

	if selected {
		return selectedItemStyle.Render(content)
	}
	return itemStyle.Render(content)
}

// renderEmptyState renders the empty state when the workbook has no rows.
func (m Model) renderEmptyState() string {
	message := `No scenarios yet.

Press 'a' to add one, or use:
  whatif add --name <name> x=1 y=2`

	return emptyStateStyle.Render(message)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓: navigate",
		"c: compute",
		"r: compute stale",
		"a: add",
		"d: duplicate",
		"e: edit",
		"x: remove",
		"?: help",
	}

	if m.showError {
		hints = append(hints, "esc: dismiss error")
	}

	hints = append(hints, "q: quit")

	return footerStyle.Render(strings.Join(hints, "  •  "))
}

// renderErrorBanner renders an error message banner.
func (m Model) renderErrorBanner() string {
	return errorBannerStyle.Render(m.errorMsg)
}

// renderConfirmBar renders the yes/no confirmation prompt.
func (m Model) renderConfirmBar() string {
	return footerStyle.Render(
		promptStyle.Render(m.confirmMessage) + "  " + mutedStyle.Render("y: confirm  •  n: keep"))
}

// renderAddBar renders the two-field add prompt.
func (m Model) renderAddBar() string {
	return footerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		promptStyle.Render("Add scenario")+mutedStyle.Render("  (tab: switch field, enter: confirm, esc: abort)"),
		"name:   "+m.nameInput.View(),
		"inputs: "+m.inputsInput.View(),
	))
}

// renderEditBar renders the inline inputs editor.
func (m Model) renderEditBar() string {
	return footerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		promptStyle.Render(fmt.Sprintf("Edit inputs for %s", m.selectedID))+
			mutedStyle.Render("  (enter: apply, esc: abort)"),
		"inputs: "+m.inputsInput.View(),
	))
}

// renderDetailView renders the detail view for a selected row.
func (m Model) renderDetailView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	row, ok := m.RowByID(m.selectedID)
	if !ok {
		return "Scenario not found"
	}

	state := row.State()

	var content strings.Builder

	content.WriteString(titleStyle.Render(fmt.Sprintf("📈 %s", displayName(row))))
	content.WriteString("\n\n")

	if m.showError {
		content.WriteString(m.renderErrorBanner())
		content.WriteString("\n\n")
	}

	icon := m.stateIcon(state)
	if row.Computing {
		icon = m.spinner.View()
	}
	content.WriteString(fmt.Sprintf("%s State: %s\n\n",
		stateStyle(state).Render(icon),
		lipgloss.NewStyle().Bold(true).Render(state.String())))

	content.WriteString(lipgloss.NewStyle().Bold(true).Render("Inputs"))
	content.WriteString("\n")
	for _, name := range sortedKeys(row.Inputs) {
		content.WriteString(fmt.Sprintf("  %s = %v\n", name, row.Inputs[name]))
	}
	content.WriteString("\n")

	content.WriteString(lipgloss.NewStyle().Bold(true).Render("Result"))
	content.WriteString("\n")
	if row.Result == nil {
		content.WriteString(mutedStyle.Render("  not computed yet"))
		content.WriteString("\n")
	} else {
		for _, name := range sortedKeys(map[string]float64(row.Result)) {
			content.WriteString(fmt.Sprintf("  %s = %v\n", name, row.Result[name]))
		}
		if row.Dirty {
			content.WriteString(mutedStyle.Render("  (stale: inputs changed since this result)"))
			content.WriteString("\n")
		}
	}
	content.WriteString("\n")

	if row.Err != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(errorColor).Render("Last failure"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("  %s\n\n", row.Err))
	}

	meta := fmt.Sprintf("ID: %s  •  Created: %s  •  Computed: %s",
		row.ID,
		row.CreatedAt.Format("Jan 2, 2006 15:04"),
		formatComputedAt(row.ComputedAt))
	content.WriteString(mutedStyle.Render(meta))
	content.WriteString("\n\n")

	hints := []string{"c: compute", "e: edit", "esc: back", "q: quit"}
	if row.Computing {
		hints = []string{"esc: cancel compute", "q: quit"}
	}
	content.WriteString(footerStyle.Render(strings.Join(hints, "  •  ")))

	return content.String()
}

// renderHelpView renders the help overlay.
func (m Model) renderHelpView() string {
	help := `Keyboard shortcuts

  Navigation
    ↑/k, ↓/j      move between scenarios
    1-9           jump to row
    enter         open detail view
    esc           back / dismiss error

  Scenarios
    c, space      compute the selected scenario
    r             compute every stale scenario
    a             add a scenario
    d             duplicate the selected scenario
    e             edit the selected scenario's inputs
    x             remove the selected scenario

  Other
    s             save the workbook now
    ?             toggle this help
    q             quit`

	return titleStyle.Render("Help") + "\n" + help
}

func (m Model) stateIcon(s scenario.State) string {
	if m.useUnicode {
		return stateStyle(s).Render(s.Icon())
	}
	return stateStyle(s).Render(s.IconFallback())
}

func displayName(row scenario.Scenario) string {
	if row.Name != "" {
		return row.Name
	}
	return row.ID
}

// formatInputs renders inputs as space separated name=value pairs in stable
// name order, the same format ParseAssignments accepts.
func formatInputs(in scenario.Inputs) string {
	parts := make([]string, 0, len(in))
	for _, name := range sortedKeys(in) {
		parts = append(parts, fmt.Sprintf("%s=%v", name, in[name]))
	}
	return strings.Join(parts, " ")
}

func formatOutputs(out scenario.Outputs) string {
	parts := make([]string, 0, len(out))
	for _, name := range sortedKeys(map[string]float64(out)) {
		parts = append(parts, fmt.Sprintf("%s=%v", name, out[name]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys[M ~map[string]float64](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatComputedAt formats a timestamp to a human-readable relative time.
func formatComputedAt(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return t.Format("Jan 2, 2006")
	}
}
