package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whatif-sh/whatif/internal/scenario"
)

type setOptions struct {
	replace bool
	name    string
}

func newSetCmd(flags *rootFlags) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <id> <name=value ...>",
		Short: "Update a scenario's inputs and mark it stale",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 && opts.name == "" {
				return fmt.Errorf("provide input assignments or --name")
			}
			return runSet(cmd, flags, opts, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&opts.replace, "replace", false, "Replace the full input set instead of merging")
	cmd.Flags().StringVar(&opts.name, "name", "", "Rename the scenario (the ID never changes)")

	return cmd
}

func runSet(cmd *cobra.Command, flags *rootFlags, opts *setOptions, id string, assignments []string) error {
	st, err := openStudy(flags)
	if err != nil {
		return newCommandError("set", "loading workbook", err, "Check that the workbook exists, or pass --workbook.")
	}

	if opts.name != "" {
		if err := st.table.Rename(id, opts.name); err != nil {
			return newCommandError("set", fmt.Sprintf("renaming scenario %q", id), err, "Run 'whatif list' to see the available scenario IDs.")
		}
	}

	if len(assignments) > 0 {
		inputs, err := scenario.ParseAssignments(assignments)
		if err != nil {
			return newCommandError("set", "parsing inputs", err, "Provide inputs as name=value pairs, e.g. 'whatif set baseline x=10'.")
		}

		if opts.replace {
			if err := st.table.UpdateInputs(id, inputs); err != nil {
				return newCommandError("set", fmt.Sprintf("updating scenario %q", id), err, "Run 'whatif list' to see the available scenario IDs.")
			}
		} else {
			for name, value := range inputs {
				if err := st.table.SetInput(id, name, value); err != nil {
					return newCommandError("set", fmt.Sprintf("updating scenario %q", id), err, "Run 'whatif list' to see the available scenario IDs.")
				}
			}
		}
	}

	if err := st.save(); err != nil {
		return newCommandError("set", "saving workbook", err, "Check workbook file permissions and try again.")
	}

	row, err := st.table.Get(id)
	if err != nil {
		return err
	}

	if len(assignments) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated '%s': %s (stale)\n", id, formatPairs(row.Inputs))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed '%s' to '%s'\n", id, row.Name)
	}
	return nil
}
