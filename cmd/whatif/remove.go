package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a scenario from the workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, flags, args[0])
		},
	}

	return cmd
}

func runRemove(cmd *cobra.Command, flags *rootFlags, id string) error {
	st, err := openStudy(flags)
	if err != nil {
		return newCommandError("remove", "loading workbook", err, "Check that the workbook exists, or pass --workbook.")
	}

	if err := st.table.Remove(id); err != nil {
		return newCommandError("remove", fmt.Sprintf("removing scenario %q", id), err, "Run 'whatif list' to see the available scenario IDs.")
	}

	if err := st.save(); err != nil {
		return newCommandError("remove", "saving workbook", err, "Check workbook file permissions and try again.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed scenario '%s'\n", id)
	return nil
}
