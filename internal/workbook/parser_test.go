package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

const validWorkbook = `version: "1.0"
name: sizing-study
function: product
settings:
  parallel: 4
  timeout: 30
scenarios:
  - id: baseline
    name: Baseline
    inputs:
      x: 10
      y: 2
    result:
      res: 20
      diff: 8
  - id: high-load
    inputs:
      x: 50
      y: 3
`

func writeWorkbook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseValidWorkbook(t *testing.T) {
	t.Parallel()

	wb, err := Parse(writeWorkbook(t, validWorkbook))
	require.NoError(t, err)

	assert.Equal(t, "sizing-study", wb.Name)
	assert.Equal(t, "product", wb.Function)
	assert.Equal(t, 4, wb.Settings.Parallel)
	require.Len(t, wb.Scenarios, 2)
	assert.Equal(t, "baseline", wb.Scenarios[0].ID)
	assert.Equal(t, float64(10), wb.Scenarios[0].Inputs["x"])
	assert.Equal(t, float64(20), wb.Scenarios[0].Result["res"])
	assert.Nil(t, wb.Scenarios[1].Result)
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))

	var parseErr *whatiferrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseMalformedYAMLReportsLine(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "version: \"1.0\"\nname: broken\nfunction: product\nscenarios:\n  - id: [oops\n")

	_, err := Parse(path)

	var parseErr *whatiferrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Greater(t, parseErr.Line, 0)
}

func TestParseRejectsMissingFunction(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "version: \"1.0\"\nname: no-func\n")

	_, err := Parse(path)

	var validationErr *whatiferrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Field, "function")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	wb, err := Parse(writeWorkbook(t, validWorkbook))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Save(path, wb))

	loaded, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, wb.Name, loaded.Name)
	assert.Equal(t, wb.Scenarios, loaded.Scenarios)

	// No stray temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsInvalidWorkbook(t *testing.T) {
	t.Parallel()

	wb := New("", "product") // empty name fails validation
	err := Save(filepath.Join(t.TempDir(), "bad.yaml"), wb)

	var validationErr *whatiferrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
