package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whatif-sh/whatif/internal/logger"
	"github.com/whatif-sh/whatif/internal/workbook"
)

func TestRunCommand_SingleScenario(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "run", "--workbook", path, "baseline")
	require.NoError(t, err)
	require.Contains(t, stdout, "✓ baseline: diff=8 res=20")
	require.Contains(t, stdout, "Computed 1 scenario(s)")

	wb, err := workbook.Parse(path)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"res": 20, "diff": 8}, wb.Scenarios[0].Result)
	require.False(t, wb.Scenarios[0].Stale)
	require.NotNil(t, wb.Scenarios[0].ComputedAt)
}

func TestRunCommand_AllComputesStaleRows(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	stdout, err := executeWhatif(t, "run", "--workbook", path, "--all")
	require.NoError(t, err)
	require.Contains(t, stdout, "baseline")
	require.Contains(t, stdout, "high-load")
	require.Contains(t, stdout, "Computed 2 scenario(s)")

	// A second --all run finds nothing stale.
	stdout, err = executeWhatif(t, "run", "--workbook", path, "--all")
	require.NoError(t, err)
	require.Contains(t, stdout, "Nothing to compute")
}

func TestRunCommand_ForceRecomputesFreshRows(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	_, err := executeWhatif(t, "run", "--workbook", path, "--all")
	require.NoError(t, err)

	stdout, err := executeWhatif(t, "run", "--workbook", path, "--all", "--force")
	require.NoError(t, err)
	require.Contains(t, stdout, "Computed 2 scenario(s)")
}

func TestRunCommand_UnknownID(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	_, err := executeWhatif(t, "run", "--workbook", path, "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 1 scenarios failed")
}

func TestRunCommand_FailureDoesNotStopOthers(t *testing.T) {
	path := testWorkbookPath(t)

	wb := workbook.New("sizing-study", "product")
	wb.Scenarios = []workbook.ScenarioSpec{
		{ID: "incomplete", Inputs: map[string]float64{"x": 10}},
		{ID: "complete", Inputs: map[string]float64{"x": 10, "y": 2}},
	}
	require.NoError(t, workbook.Save(path, wb))

	stdout, err := executeWhatif(t, "run", "--workbook", path, "--all")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2 scenarios failed")
	require.Contains(t, stdout, "✓ complete: diff=8 res=20")
	require.Contains(t, stdout, "✗ incomplete")

	// The successful row's result is persisted despite the failure.
	saved, parseErr := workbook.Parse(path)
	require.NoError(t, parseErr)
	for _, spec := range saved.Scenarios {
		if spec.ID == "complete" {
			require.Equal(t, map[string]float64{"res": 20, "diff": 8}, spec.Result)
		}
	}
}

func TestRunCommand_VerboseEnablesDebugLogging(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	logs := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "info", Writer: logs})
	require.NoError(t, err)

	root := newRootCmd(log)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	root.SetArgs([]string{"run", "--workbook", path, "baseline"})
	require.NoError(t, root.Execute())
	require.NotContains(t, logs.String(), "computing scenario")

	root.SetArgs([]string{"run", "--verbose", "--workbook", path, "baseline"})
	require.NoError(t, root.Execute())
	require.Contains(t, logs.String(), "computing scenario")
}

func TestRunCommand_RequiresTargets(t *testing.T) {
	path := testWorkbookPath(t)
	seedWorkbook(t, path)

	_, err := executeWhatif(t, "run", "--workbook", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--all")
}
