package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/whatif-sh/whatif/internal/scenario"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the workbook's scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, flags *rootFlags, opts *listOptions) error {
	st, err := openStudy(flags)
	if err != nil {
		return newCommandError("list", "loading workbook", err, "Run 'whatif add' to create your first scenario, or pass --workbook.")
	}

	rows := st.table.Snapshot()
	if len(rows) == 0 {
		return renderEmptyList(cmd)
	}

	if opts.jsonOutput {
		return renderListJSON(cmd, st, rows)
	}

	return renderListTable(cmd, rows)
}

func renderEmptyList(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), "No scenarios in the workbook yet.")
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'whatif add <name=value ...>' to add your first scenario.")
	return nil
}

func renderListTable(cmd *cobra.Command, rows []scenario.Scenario) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tSTATE\tINPUTS\tRESULT\tCOMPUTED")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, row := range rows {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ID,
			valueOrFallback(row.Name, "(no name)"),
			formatState(row.State(), useUnicode),
			formatPairs(row.Inputs),
			valueOrFallback(formatPairs(map[string]float64(row.Result)), "-"),
			formatRelativeTime(row.ComputedAt),
		)
	}

	return writer.Flush()
}

type listJSONScenario struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Inputs     map[string]float64 `json:"inputs"`
	Result     map[string]float64 `json:"result,omitempty"`
	Stale      bool               `json:"stale"`
	State      string             `json:"state"`
	Error      string             `json:"error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	ComputedAt time.Time          `json:"computed_at,omitempty"`
}

type listJSONPayload struct {
	Version   string             `json:"version"`
	Workbook  string             `json:"workbook"`
	Function  string             `json:"function"`
	Count     int                `json:"count"`
	Scenarios []listJSONScenario `json:"scenarios"`
}

func renderListJSON(cmd *cobra.Command, st *study, rows []scenario.Scenario) error {
	payload := listJSONPayload{
		Version:   "1.0",
		Workbook:  st.path,
		Function:  st.wb.Function,
		Count:     len(rows),
		Scenarios: make([]listJSONScenario, len(rows)),
	}

	for i, row := range rows {
		payload.Scenarios[i] = listJSONScenario{
			ID:         row.ID,
			Name:       row.Name,
			Inputs:     row.Inputs,
			Result:     row.Result,
			Stale:      row.Dirty,
			State:      row.State().String(),
			Error:      row.Err,
			CreatedAt:  row.CreatedAt,
			ComputedAt: row.ComputedAt,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatState(state scenario.State, useUnicode bool) string {
	if useUnicode {
		return fmt.Sprintf("%s %s", state.Icon(), state.String())
	}

	return fmt.Sprintf("%s %s", state.IconFallback(), state.String())
}

func formatPairs(values map[string]float64) string {
	if len(values) == 0 {
		return ""
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, values[name]))
	}
	return strings.Join(parts, " ")
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
