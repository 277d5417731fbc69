package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

func validatedWorkbook() *Workbook {
	return &Workbook{
		Version:  "1.0",
		Name:     "study",
		Function: "product",
		Scenarios: []ScenarioSpec{
			{ID: "baseline", Inputs: map[string]float64{"x": 1, "y": 2}},
		},
	}
}

func TestValidateAcceptsMinimalWorkbook(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(validatedWorkbook()))
}

func TestValidateNilWorkbook(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))
}

func TestValidateDuplicateScenarioIDs(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Scenarios = append(wb.Scenarios, ScenarioSpec{ID: "baseline", Inputs: map[string]float64{"x": 3}})

	err := Validate(wb)
	var validationErr *whatiferrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "scenarios[1].id", validationErr.Field)
}

func TestValidateDuplicateCommandNames(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Commands = []CommandSpec{
		{Name: "sim", Command: "./sim.sh"},
		{Name: "sim", Command: "./other.sh"},
	}

	err := Validate(wb)
	var validationErr *whatiferrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "commands[1].name", validationErr.Field)
}

func TestValidateRejectsBadVersion(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Version = "one"

	require.Error(t, Validate(wb))
}

func TestValidateRejectsBadScenarioID(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Scenarios[0].ID = "Not Valid"

	require.Error(t, Validate(wb))
}

func TestValidateRejectsBadFunctionName(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Function = "Product Func!"

	require.Error(t, Validate(wb))
}

func TestValidateRejectsEmptyInputs(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Scenarios[0].Inputs = nil

	require.Error(t, Validate(wb))
}

func TestValidateSettingsBounds(t *testing.T) {
	t.Parallel()

	wb := validatedWorkbook()
	wb.Settings.Parallel = 64

	require.Error(t, Validate(wb))
}
