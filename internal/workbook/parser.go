package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	whatiferrors "github.com/whatif-sh/whatif/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Parse loads a workbook file from disk, validates it, and returns the
// resulting model.
func Parse(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, whatiferrors.NewParseError(path, 0, err)
	}

	var wb Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, whatiferrors.NewParseError(path, extractLine(err), err)
	}

	if err := Validate(&wb); err != nil {
		return nil, err
	}

	return &wb, nil
}

// Save writes the workbook to disk atomically.
func Save(path string, wb *Workbook) error {
	if err := Validate(wb); err != nil {
		return err
	}

	data, err := yaml.Marshal(wb)
	if err != nil {
		return fmt.Errorf("failed to marshal workbook: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create workbook directory: %w", err)
	}

	// Write to temporary file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up temp file on failure
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
