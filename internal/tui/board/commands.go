package board

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whatif-sh/whatif/internal/scenario"
	"github.com/whatif-sh/whatif/internal/workbook"
)

// computeCmd runs the compute function for one reserved ticket and writes the
// outcome back into the table. Each command touches exactly one row.
func computeCmd(ctx context.Context, tbl *scenario.Table, tk scenario.Ticket, fn scenario.Func, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		runCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		result, err := fn(runCtx, tk.Inputs)

		// User cancellation leaves the row as if never triggered.
		if ctx.Err() != nil {
			tbl.Abort(tk)
			return ComputeCancelledMsg{ScenarioID: tk.ScenarioID}
		}

		outcome := tbl.Complete(tk, result, err)
		return ComputeCompleteMsg{
			ScenarioID: tk.ScenarioID,
			Outcome:    outcome,
			Err:        err,
		}
	}
}

// saveWorkbookCmd writes one snapshot of the workbook document to disk. The
// snapshot is taken by the caller inside Update; commands run on their own
// goroutines and must never touch the live document.
func saveWorkbookCmd(doc workbook.Workbook, path string) tea.Cmd {
	return func() tea.Msg {
		return WorkbookSavedMsg{Err: workbook.Save(path, &doc)}
	}
}

// saveCmd syncs the live table into the workbook document and returns a
// command persisting a snapshot of it. Only the Update loop calls this, so
// the document itself is never written concurrently.
func (m *Model) saveCmd() tea.Cmd {
	workbook.SyncFromTable(m.wb, m.table)
	return saveWorkbookCmd(*m.wb, m.path)
}
