package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDuplicateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a scenario under a fresh ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuplicate(cmd, flags, args[0])
		},
	}

	return cmd
}

func runDuplicate(cmd *cobra.Command, flags *rootFlags, id string) error {
	st, err := openStudy(flags)
	if err != nil {
		return newCommandError("duplicate", "loading workbook", err, "Check that the workbook exists, or pass --workbook.")
	}

	row, err := st.table.Duplicate(id)
	if err != nil {
		return newCommandError("duplicate", fmt.Sprintf("duplicating scenario %q", id), err, "Run 'whatif list' to see the available scenario IDs.")
	}

	if err := st.save(); err != nil {
		return newCommandError("duplicate", "saving workbook", err, "Check workbook file permissions and try again.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Duplicated '%s' as '%s'\n", id, row.ID)
	return nil
}
