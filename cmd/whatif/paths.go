package main

import (
	"os"
	"path/filepath"
)

func defaultWorkbookPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".whatif", "workbook.yaml"), nil
}

// resolveWorkbookPath honours the --workbook flag, falling back to the
// default location under the user's home directory.
func resolveWorkbookPath(flags *rootFlags) (string, error) {
	if flags.workbook != "" {
		return flags.workbook, nil
	}
	return defaultWorkbookPath()
}
