package workbook

import (
	"time"

	"github.com/whatif-sh/whatif/internal/funcs"
	"github.com/whatif-sh/whatif/internal/scenario"
)

// BuildTable constructs a live scenario table from the workbook's rows. A
// row persisted with a result and no stale marker loads fresh; a stale
// marker keeps the result but loads the row dirty; rows without a result
// load dirty.
func BuildTable(wb *Workbook) (*scenario.Table, error) {
	tbl := scenario.NewTable()

	for _, spec := range wb.Scenarios {
		row, err := tbl.AddWithID(spec.ID, spec.Name, scenario.Inputs(spec.Inputs))
		if err != nil {
			return nil, err
		}

		if spec.Result != nil {
			at := time.Time{}
			if spec.ComputedAt != nil {
				at = *spec.ComputedAt
			}
			if err := tbl.RestoreResult(row.ID, scenario.Outputs(spec.Result), at); err != nil {
				return nil, err
			}
			if spec.Stale {
				// The persisted result predates the current inputs; keep it
				// visible but marked stale.
				if err := tbl.UpdateInputs(row.ID, scenario.Inputs(spec.Inputs)); err != nil {
					return nil, err
				}
			}
		}
	}

	return tbl, nil
}

// SyncFromTable rewrites the workbook's scenario rows from the live table,
// preserving everything else in the document.
func SyncFromTable(wb *Workbook, tbl *scenario.Table) {
	rows := tbl.Snapshot()
	specs := make([]ScenarioSpec, 0, len(rows))
	for _, row := range rows {
		spec := ScenarioSpec{
			ID:     row.ID,
			Name:   row.Name,
			Inputs: map[string]float64(row.Inputs),
			Result: map[string]float64(row.Result),
			Stale:  row.Dirty && row.Result != nil,
		}
		if !row.ComputedAt.IsZero() {
			at := row.ComputedAt
			spec.ComputedAt = &at
		}
		specs = append(specs, spec)
	}
	wb.Scenarios = specs
}

// RegisterCommands installs the workbook's declared command functions into
// the registry alongside the built-ins.
func RegisterCommands(r *funcs.Registry, wb *Workbook) error {
	for _, spec := range wb.Commands {
		f := &funcs.CommandFunc{
			Name:        spec.Name,
			Description: spec.Description,
			Command:     spec.Command,
			Shell:       spec.Shell,
			InputNames:  spec.Inputs,
			WorkDir:     spec.WorkDir,
		}
		if err := r.Register(f); err != nil {
			return err
		}
	}
	return nil
}
