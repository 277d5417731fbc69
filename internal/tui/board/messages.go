package board

import (
	"github.com/whatif-sh/whatif/internal/scenario"
)

// ViewMode determines which screen to render.
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewDetail
	ViewHelp
	ViewConfirm
	ViewAdd
	ViewEdit
)

// ComputeCompleteMsg indicates a compute finished and was written back.
type ComputeCompleteMsg struct {
	ScenarioID string
	Outcome    scenario.Outcome
	Err        error
}

// ComputeCancelledMsg indicates a compute was cancelled before write-back.
type ComputeCancelledMsg struct {
	ScenarioID string
}

// WorkbookSavedMsg indicates the workbook file was written.
type WorkbookSavedMsg struct {
	Err error
}

// ErrorMsg indicates a general error occurred.
type ErrorMsg struct {
	Message string
}
