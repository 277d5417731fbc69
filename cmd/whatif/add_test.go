package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whatif-sh/whatif/internal/logger"
	"github.com/whatif-sh/whatif/internal/workbook"
)

func executeWhatif(t *testing.T, args ...string) (string, error) {
	t.Helper()

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	root := newRootCmd(log)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err = root.Execute()
	return buf.String(), err
}

func testWorkbookPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "workbook.yaml")
}

func seedWorkbook(t *testing.T, path string) {
	t.Helper()

	wb := workbook.New("sizing-study", "product")
	wb.Scenarios = []workbook.ScenarioSpec{
		{ID: "baseline", Name: "Baseline", Inputs: map[string]float64{"x": 10, "y": 2}},
		{ID: "high-load", Name: "High Load", Inputs: map[string]float64{"x": 50, "y": 3}},
	}
	require.NoError(t, workbook.Save(path, wb))
}

func TestAddCommand_CreatesWorkbook(t *testing.T) {
	path := testWorkbookPath(t)

	stdout, err := executeWhatif(t, "add", "--workbook", path, "--name", "Baseline", "x=10", "y=2")
	require.NoError(t, err)
	require.Contains(t, stdout, "Added scenario 'baseline'")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Equal(t, "product", wb.Function)
	require.Len(t, wb.Scenarios, 1)
	require.Equal(t, "baseline", wb.Scenarios[0].ID)
	require.Equal(t, map[string]float64{"x": 10, "y": 2}, wb.Scenarios[0].Inputs)
	require.Nil(t, wb.Scenarios[0].Result)
}

func TestAddCommand_ExplicitID(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "add", "--workbook", path, "--id", "spike", "x=99", "y=1")
	require.NoError(t, err)
	require.Contains(t, stdout, "Added scenario 'spike'")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Len(t, wb.Scenarios, 3)
}

func TestAddCommand_DuplicateIDRejected(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	_, err := executeWhatif(t, "add", "--workbook", path, "--id", "baseline", "x=1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "baseline")
}

func TestAddCommand_MalformedAssignment(t *testing.T) {
	path := testWorkbookPath(t)

	_, err := executeWhatif(t, "add", "--workbook", path, "x=ten")
	require.Error(t, err)
	require.Contains(t, err.Error(), "name=value")
}

func TestDuplicateCommand(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "duplicate", "--workbook", path, "baseline")
	require.NoError(t, err)
	require.Contains(t, stdout, "Duplicated 'baseline' as 'baseline-2'")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Len(t, wb.Scenarios, 3)
}

func TestDuplicateCommand_UnknownID(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	_, err := executeWhatif(t, "duplicate", "--workbook", path, "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "whatif list")
}

func TestRemoveCommand(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "remove", "--workbook", path, "baseline")
	require.NoError(t, err)
	require.Contains(t, stdout, "Removed scenario 'baseline'")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Len(t, wb.Scenarios, 1)
	require.Equal(t, "high-load", wb.Scenarios[0].ID)
}

func TestSetCommand_MergesInputs(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "set", "--workbook", path, "baseline", "x=11")
	require.NoError(t, err)
	require.Contains(t, stdout, "x=11 y=2")
	require.Contains(t, stdout, "(stale)")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 11, "y": 2}, wb.Scenarios[0].Inputs)
}

func TestSetCommand_ReplaceInputs(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	_, err := executeWhatif(t, "set", "--workbook", path, "--replace", "baseline", "x=5")
	require.NoError(t, err)

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 5}, wb.Scenarios[0].Inputs)
}

func TestSetCommand_Rename(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "set", "--workbook", path, "--name", "New Baseline", "baseline")
	require.NoError(t, err)
	require.Contains(t, stdout, "Renamed 'baseline' to 'New Baseline'")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Equal(t, "New Baseline", wb.Scenarios[0].Name)
}

func TestVersionCommand(t *testing.T) {
	stdout, err := executeWhatif(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "whatif dev")
	require.Contains(t, stdout, "commit: none")
}
