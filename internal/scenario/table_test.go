package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

func TestTableAddGeneratesUniqueIDs(t *testing.T) {
	t.Parallel()

	tbl := NewTable()

	a := tbl.Add("Baseline", Inputs{"x": 1})
	b := tbl.Add("Baseline", Inputs{"x": 2})
	c := tbl.Add("Baseline", Inputs{"x": 3})

	assert.Equal(t, "baseline", a.ID)
	assert.Equal(t, "baseline-2", b.ID)
	assert.Equal(t, "baseline-3", c.ID)

	assert.True(t, a.Dirty)
	assert.Nil(t, a.Result)
}

func TestTableAddWithID(t *testing.T) {
	t.Parallel()

	tbl := NewTable()

	_, err := tbl.AddWithID("baseline", "Baseline", Inputs{"x": 1})
	require.NoError(t, err)

	_, err = tbl.AddWithID("baseline", "Other", Inputs{"x": 2})
	require.Error(t, err)

	var validationErr *whatiferrors.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = tbl.AddWithID("Not Valid!", "Bad", nil)
	require.Error(t, err)
}

func TestTableUpdateInputsMarksStaleKeepsResult(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	row := tbl.Add("Baseline", Inputs{"x": 1})

	tk, err := tbl.Begin(row.ID)
	require.NoError(t, err)
	tbl.Complete(tk, Outputs{"res": 10}, nil)

	fresh, err := tbl.Get(row.ID)
	require.NoError(t, err)
	require.False(t, fresh.Dirty)

	require.NoError(t, tbl.UpdateInputs(row.ID, Inputs{"x": 5}))

	edited, err := tbl.Get(row.ID)
	require.NoError(t, err)
	assert.True(t, edited.Dirty)
	assert.Equal(t, Outputs{"res": 10}, edited.Result, "result stays until next successful compute")
	assert.Equal(t, Inputs{"x": 5}, edited.Inputs)
}

func TestTableUpdateInputsNotFound(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	err := tbl.UpdateInputs("missing", Inputs{"x": 1})

	var notFound *whatiferrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)
}

func TestTableSetInput(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	row := tbl.Add("Baseline", Inputs{"x": 1, "y": 2})

	require.NoError(t, tbl.SetInput(row.ID, "y", 7))

	got, err := tbl.Get(row.ID)
	require.NoError(t, err)
	assert.Equal(t, Inputs{"x": 1, "y": 7}, got.Inputs)
	assert.True(t, got.Dirty)

	var notFound *whatiferrors.NotFoundError
	require.ErrorAs(t, tbl.SetInput("missing", "x", 1), &notFound)
}

func TestTableRemoveLeavesOtherRowsAlone(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	a := tbl.Add("A", Inputs{"x": 1})
	b := tbl.Add("B", Inputs{"x": 2})
	c := tbl.Add("C", Inputs{"x": 3})

	require.NoError(t, tbl.Remove(b.ID))

	assert.Equal(t, []string{a.ID, c.ID}, tbl.IDs())
	assert.Equal(t, 2, tbl.Len())

	var notFound *whatiferrors.NotFoundError
	require.ErrorAs(t, tbl.Remove(b.ID), &notFound)
}

func TestTableDuplicate(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	src := tbl.Add("Baseline", Inputs{"x": 10, "y": 2})

	tk, err := tbl.Begin(src.ID)
	require.NoError(t, err)
	tbl.Complete(tk, Outputs{"res": 20}, nil)

	dup, err := tbl.Duplicate(src.ID)
	require.NoError(t, err)

	assert.Equal(t, "baseline-2", dup.ID)
	assert.Equal(t, src.Name, dup.Name)
	assert.Equal(t, Inputs{"x": 10, "y": 2}, dup.Inputs)
	assert.Nil(t, dup.Result, "copy starts without a result")
	assert.True(t, dup.Dirty)

	_, err = tbl.Duplicate("missing")
	var notFound *whatiferrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestTableRename(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	row := tbl.Add("Old", Inputs{"x": 1})

	require.NoError(t, tbl.Rename(row.ID, "New"))

	got, err := tbl.Get(row.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, row.ID, got.ID, "ID is stable across renames")
}

func TestTableSnapshotIsolation(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	row := tbl.Add("Baseline", Inputs{"x": 1})

	snap := tbl.Snapshot()
	require.Len(t, snap, 1)

	// Mutating the snapshot must not leak into the table.
	snap[0].Inputs["x"] = 99

	got, err := tbl.Get(row.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got.Inputs["x"])
}

func TestTableSnapshotPreservesOrder(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	tbl.Add("C", nil)
	tbl.Add("A", nil)
	tbl.Add("B", nil)

	snap := tbl.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].ID)
	assert.Equal(t, "a", snap[1].ID)
	assert.Equal(t, "b", snap[2].ID)
}

func TestScenarioStateDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scenario Scenario
		want     State
	}{
		{"new row is stale", Scenario{Dirty: true}, StateStale},
		{"computed row is fresh", Scenario{Result: Outputs{"res": 1}}, StateFresh},
		{"failed row", Scenario{Dirty: true, Err: "boom"}, StateFailed},
		{"in flight wins", Scenario{Computing: true, Err: "boom"}, StateComputing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scenario.State())
		})
	}
}
