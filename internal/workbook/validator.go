package workbook

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/whatif-sh/whatif/internal/scenario"
	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern   = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	funcNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("scenario_id", func(fl validator.FieldLevel) bool {
			return scenario.ValidateScenarioID(fl.Field().String()) == nil
		})

		_ = v.RegisterValidation("func_name", func(fl validator.FieldLevel) bool {
			return funcNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema and cross-field validation on the workbook.
func Validate(wb *Workbook) error {
	if wb == nil {
		return whatiferrors.NewValidationError("workbook", "workbook is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(wb); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(wb.Scenarios))
	for i, spec := range wb.Scenarios {
		if _, exists := seen[spec.ID]; exists {
			return whatiferrors.NewValidationError(fieldForScenario(i, "id"), fmt.Sprintf("duplicate scenario id %q", spec.ID), nil)
		}
		seen[spec.ID] = i
	}

	commands := make(map[string]int, len(wb.Commands))
	for i, cmd := range wb.Commands {
		if _, exists := commands[cmd.Name]; exists {
			return whatiferrors.NewValidationError(fieldForCommand(i, "name"), fmt.Sprintf("duplicate command name %q", cmd.Name), nil)
		}
		commands[cmd.Name] = i
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return whatiferrors.NewValidationError(field, msg, err)
	}

	return whatiferrors.NewValidationError("workbook", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForScenario(index int, field string) string {
	return fmt.Sprintf("scenarios[%d].%s", index, field)
}

func fieldForCommand(index int, field string) string {
	return fmt.Sprintf("commands[%d].%s", index, field)
}
