package main

import (
	"fmt"
	"os"

	"github.com/whatif-sh/whatif/internal/funcs"
	"github.com/whatif-sh/whatif/internal/scenario"
	"github.com/whatif-sh/whatif/internal/workbook"
)

// defaultFunction is assigned to workbooks created on first use.
const defaultFunction = "product"

// study bundles a loaded workbook with the live table and compute function
// built from it. Every command goes through here so they all agree on how a
// workbook becomes runnable state.
type study struct {
	path     string
	wb       *workbook.Workbook
	table    *scenario.Table
	registry *funcs.Registry
	fn       scenario.Func
}

func openStudy(flags *rootFlags) (*study, error) {
	path, err := resolveWorkbookPath(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to determine workbook path: %w", err)
	}

	wb, err := workbook.Parse(path)
	if err != nil {
		return nil, err
	}

	return buildStudy(path, wb)
}

// openOrCreateStudy loads the workbook, creating a fresh one with the given
// function when the file does not exist yet.
func openOrCreateStudy(flags *rootFlags, function string) (*study, error) {
	path, err := resolveWorkbookPath(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to determine workbook path: %w", err)
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return buildStudy(path, workbook.New("workbook", function))
	}

	wb, err := workbook.Parse(path)
	if err != nil {
		return nil, err
	}

	return buildStudy(path, wb)
}

func buildStudy(path string, wb *workbook.Workbook) (*study, error) {
	registry := funcs.NewRegistry()
	if err := funcs.RegisterBuiltins(registry); err != nil {
		return nil, err
	}
	if err := workbook.RegisterCommands(registry, wb); err != nil {
		return nil, err
	}

	f, err := registry.Get(wb.Function)
	if err != nil {
		return nil, err
	}

	table, err := workbook.BuildTable(wb)
	if err != nil {
		return nil, err
	}

	return &study{
		path:     path,
		wb:       wb,
		table:    table,
		registry: registry,
		fn:       funcs.Bind(f),
	}, nil
}

// save writes the table's current state back to the workbook file.
func (s *study) save() error {
	workbook.SyncFromTable(s.wb, s.table)
	return workbook.Save(s.path, s.wb)
}
