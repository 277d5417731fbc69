package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whatif-sh/whatif/internal/scenario"
)

type addOptions struct {
	id       string
	name     string
	function string
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <name=value ...>",
		Short: "Add a scenario to the workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, flags, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.id, "id", "i", "", "Scenario ID (auto-generated if omitted)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Scenario name")
	cmd.Flags().StringVarP(&opts.function, "function", "f", defaultFunction, "Compute function for a newly created workbook")

	return cmd
}

func runAdd(cmd *cobra.Command, flags *rootFlags, opts *addOptions, args []string) error {
	inputs, err := scenario.ParseAssignments(args)
	if err != nil {
		return newCommandError("add", "parsing inputs", err, "Provide inputs as name=value pairs, e.g. 'whatif add x=10 y=2'.")
	}

	st, err := openOrCreateStudy(flags, opts.function)
	if err != nil {
		return newCommandError("add", "loading workbook", err, "Fix the workbook errors shown above and try again.")
	}

	var row scenario.Scenario
	if opts.id != "" {
		row, err = st.table.AddWithID(opts.id, opts.name, inputs)
		if err != nil {
			return newCommandError("add", "validating scenario ID", err, "Provide an ID using lowercase letters, numbers, and hyphens. IDs must start and end with alphanumeric characters.")
		}
	} else {
		name := opts.name
		if name == "" {
			name = "Scenario"
		}
		row = st.table.Add(name, inputs)
	}

	if err := st.save(); err != nil {
		return newCommandError("add", "saving workbook", err, "Check workbook file permissions and try again.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added scenario '%s' to %s\n", row.ID, st.path)
	return nil
}
