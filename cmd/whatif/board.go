package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/whatif-sh/whatif/internal/logger"
	"github.com/whatif-sh/whatif/internal/tui/board"
)

func newBoardCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Launch the interactive scenario board",
		Long:  `Launch the interactive TUI board to view, edit and compute all scenarios in the workbook.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(flags, log)
		},
	}

	return cmd
}

func runBoard(flags *rootFlags, log *logger.Logger) error {
	st, err := openOrCreateStudy(flags, defaultFunction)
	if err != nil {
		return newCommandError("board", "loading workbook", err, "Fix the workbook errors shown above and try again.")
	}

	log.WithFields(map[string]any{"workbook": st.path, "function": st.wb.Function}).Debug("launching board")

	model := board.NewModel(board.Config{
		Table:      st.table,
		Workbook:   st.wb,
		Path:       st.path,
		Fn:         st.fn,
		FuncName:   st.wb.Function,
		UseUnicode: term.IsTerminal(int(os.Stdout.Fd())),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Error(err, "board exited with error")
		return fmt.Errorf("failed to run board: %w", err)
	}

	return nil
}
