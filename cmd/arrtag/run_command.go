package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"arrtag/internal/logging"
	"arrtag/internal/notifications"
	"arrtag/internal/reconcile"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		limit      int
		skipSeries bool
		skipMovies bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Append missing id tags to series and movie folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg := *base
			if cmd.Flags().Changed("dry-run") {
				cfg.Run.DryRun = dryRun
			}
			if cmd.Flags().Changed("limit") {
				if limit < 0 {
					return fmt.Errorf("--limit must be >= 0, got %d", limit)
				}
				cfg.Run.WorkLimit = limit
			}
			if skipSeries {
				cfg.Series.Enabled = false
			}
			if skipMovies {
				cfg.Movies.Enabled = false
			}

			runID := reconcile.NewRunID()
			logs, err := logging.NewStreamsFromConfig(&cfg, cmd.ErrOrStderr(), runID)
			if err != nil {
				return fmt.Errorf("open logs: %w", err)
			}
			defer logs.Close()

			coordinator := reconcile.New(&cfg, logs,
				reconcile.WithRunID(runID),
				reconcile.WithNotifier(notifications.NewService(&cfg)),
			)
			report, runErr := coordinator.Run(cmd.Context())
			if errors.Is(runErr, reconcile.ErrMissingAPIKeys) {
				return fmt.Errorf("%w: set series.api_key and movies.api_key in %s", runErr, ctx.configPath)
			}
			if errors.Is(runErr, reconcile.ErrRunInProgress) {
				return runErr
			}

			if jsonOutput {
				if err := writeJSON(cmd, newRunReportJSON(report)); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), renderRunSummary(report))
			}

			if runErr != nil {
				return fmt.Errorf("run finished with errors: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log intended changes without updating Sonarr/Radarr")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum modifications per backend (0 = unlimited)")
	cmd.Flags().BoolVar(&skipSeries, "skip-series", false, "Do not scan Sonarr")
	cmd.Flags().BoolVar(&skipMovies, "skip-movies", false, "Do not scan Radarr")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run report as JSON")
	return cmd
}

func renderRunSummary(report *reconcile.Report) string {
	if report == nil || len(report.Results) == 0 {
		return "No backends enabled\n"
	}

	headers := []string{"Backend", "Listed", "Modified", "Updated", "Queued", "Failed", "Limit", "Status"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft}
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
		}
		rows = append(rows, []string{
			res.Backend,
			strconv.Itoa(res.Listed),
			strconv.Itoa(res.Modified),
			strconv.Itoa(res.Count(reconcile.OutcomeUpdated)),
			strconv.Itoa(res.Count(reconcile.OutcomeQueued)),
			strconv.Itoa(res.Count(reconcile.OutcomeFailed)),
			yesNo(res.LimitReached),
			status,
		})
	}

	out := renderTable(headers, rows, aligns) + "\n"
	if report.DryRun {
		out += "Dry run: no updates were sent\n"
	}
	return out
}
