package main

import (
	"github.com/spf13/cobra"

	"github.com/whatif-sh/whatif/internal/logger"
)

type rootFlags struct {
	verbose  bool
	workbook string
}

func newRootCmd(log *logger.Logger) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "whatif",
		Short:         "whatif explores scenarios of a computation side by side",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				log.EnableDebug()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, launch the board
			if len(args) == 0 {
				return runBoard(flags, log)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.workbook, "workbook", "w", "", "Path to the workbook file (default ~/.whatif/workbook.yaml)")

	cmd.AddCommand(newBoardCmd(flags, log))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newDuplicateCmd(flags))
	cmd.AddCommand(newSetCmd(flags))
	cmd.AddCommand(newRemoveCmd(flags))
	cmd.AddCommand(newRunCmd(flags, log))
	cmd.AddCommand(newFuncsCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
