package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aevon-lab/login-usage/internal/aggregation"
	"github.com/aevon-lab/login-usage/internal/core/usage"
	"github.com/spf13/cobra"
)

type aggregateFlags struct {
	start string
	end   string
	reset bool
}

func newAggregateCmd(a *app) *cobra.Command {
	var f aggregateFlags

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Run the login aggregation job once",
		Long: "Processes every day in [start, end] and commits the checkpoint.\n" +
			"Without --start the job resumes from its checkpoint; without --end it runs through today.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.runOptions()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := a.aggregate(ctx, opts)
			if err != nil {
				return fmt.Errorf("run %s: %w", summary.RunID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %s\n", summary.RunID, describeSummary(summary))
			return nil
		},
	}
	cmd.Flags().StringVar(&f.start, "start", "", "First day to process (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Last day to process, inclusive (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.reset, "reset", false, "Ignore the checkpoint and start from usage.start")
	return cmd
}

func (f aggregateFlags) runOptions() (aggregation.RunOptions, error) {
	opts := aggregation.RunOptions{Reset: f.reset}
	if f.start != "" {
		t, err := usage.ParseDate(f.start)
		if err != nil {
			return opts, fmt.Errorf("invalid --start: %w", err)
		}
		opts.Start = &t
	}
	if f.end != "" {
		t, err := usage.ParseDate(f.end)
		if err != nil {
			return opts, fmt.Errorf("invalid --end: %w", err)
		}
		opts.End = &t
	}
	return opts, nil
}

func (a *app) aggregate(ctx context.Context, opts aggregation.RunOptions) (aggregation.Summary, error) {
	st, err := openStores(ctx, a.cfg)
	if err != nil {
		return aggregation.Summary{}, err
	}
	defer st.close()

	job := newJob(a.cfg, st, aggregation.LogProgress{Job: a.cfg.Usage.JobName})
	return job.Run(ctx, opts)
}

func describeSummary(s aggregation.Summary) string {
	if s.Skipped {
		return fmt.Sprintf("already up to date through %s", s.End.Format(time.DateOnly))
	}
	return fmt.Sprintf("processed %d days [%s - %s], %d buckets, %d logins",
		s.Days, s.Start.Format(time.DateOnly), s.End.Format(time.DateOnly), s.Buckets, s.Logins)
}
