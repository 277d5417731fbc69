package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/whatif-sh/whatif/internal/logger"
	"github.com/whatif-sh/whatif/internal/scenario"
)

type runOptions struct {
	all   bool
	force bool
}

func newRunCmd(flags *rootFlags, log *logger.Logger) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [id ...]",
		Short: "Compute scenarios from the command line",
		Long: `Compute the named scenarios, or every stale scenario with --all.
Scenarios run independently with bounded parallelism; one failure does not
stop the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.all && len(args) == 0 {
				return fmt.Errorf("provide scenario IDs or --all")
			}
			return runRun(cmd, flags, opts, log, args)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Compute every stale scenario")
	cmd.Flags().BoolVar(&opts.force, "force", false, "With --all, recompute fresh scenarios too")

	return cmd
}

func runRun(cmd *cobra.Command, flags *rootFlags, opts *runOptions, log *logger.Logger, ids []string) error {
	st, err := openStudy(flags)
	if err != nil {
		return newCommandError("run", "loading workbook", err, "Check that the workbook exists, or pass --workbook.")
	}

	if opts.all {
		ids = selectRunTargets(st.table, opts.force)
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to compute; every scenario is fresh.")
			return nil
		}
	}

	timeout := st.wb.Settings.TimeoutOrDefault()

	if flags.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "→ Computing %d scenario(s) with %s (parallel=%d, timeout=%s)\n",
			len(ids), st.wb.Function, st.wb.Settings.ParallelOrDefault(), timeout)
	}

	var mu sync.Mutex
	failures := make(map[string]error)

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(st.wb.Settings.ParallelOrDefault())

	for _, id := range ids {
		id := id
		group.Go(func() error {
			computeCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			log.WithScenario(id).Debug("computing scenario")

			result, err := st.table.Compute(computeCtx, id, st.fn)
			if err != nil {
				log.WithScenario(id).Error(err, "compute failed")
				mu.Lock()
				failures[id] = err
				mu.Unlock()
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", id, err)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", id, formatPairs(result))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := st.save(); err != nil {
		return newCommandError("run", "saving workbook", err, "Check workbook file permissions and try again.")
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d scenarios failed", len(failures), len(ids))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Computed %d scenario(s)\n", len(ids))
	return nil
}

// selectRunTargets picks the rows --all should compute. Stale rows only,
// unless --force asks for everything.
func selectRunTargets(table *scenario.Table, force bool) []string {
	var ids []string
	for _, row := range table.Snapshot() {
		if row.Computing {
			continue
		}
		if force || row.Dirty {
			ids = append(ids, row.ID)
		}
	}
	return ids
}
