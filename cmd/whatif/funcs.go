package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/whatif-sh/whatif/internal/funcs"
	"github.com/whatif-sh/whatif/internal/workbook"
)

func newFuncsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funcs",
		Short: "List the available compute functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFuncs(cmd, flags)
		},
	}

	return cmd
}

func runFuncs(cmd *cobra.Command, flags *rootFlags) error {
	registry := funcs.NewRegistry()
	if err := funcs.RegisterBuiltins(registry); err != nil {
		return err
	}

	// Command functions from the workbook show up too, when one is loadable.
	active := ""
	if path, err := resolveWorkbookPath(flags); err == nil {
		if wb, err := workbook.Parse(path); err == nil {
			if err := workbook.RegisterCommands(registry, wb); err != nil {
				return err
			}
			active = wb.Function
		}
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tINPUTS\tOUTPUTS\tDESCRIPTION")

	for _, meta := range registry.List() {
		name := meta.Name
		if name == active {
			name += " *"
		}

		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			name,
			strings.Join(meta.Inputs, ", "),
			strings.Join(meta.Outputs, ", "),
			meta.Description,
		)
	}

	return writer.Flush()
}
