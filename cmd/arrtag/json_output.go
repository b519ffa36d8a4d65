package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"arrtag/internal/reconcile"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type runReportJSON struct {
	RunID      string        `json:"run_id"`
	DryRun     bool          `json:"dry_run"`
	DurationMS int64         `json:"duration_ms"`
	Backends   []backendJSON `json:"backends"`
}

type backendJSON struct {
	Name         string       `json:"name"`
	Listed       int          `json:"listed"`
	Modified     int          `json:"modified"`
	LimitReached bool         `json:"limit_reached"`
	Error        string       `json:"error,omitempty"`
	Changes      []changeJSON `json:"changes"`
}

type changeJSON struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	OldPath    string `json:"old_path"`
	NewPath    string `json:"new_path"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
}

func newRunReportJSON(report *reconcile.Report) runReportJSON {
	out := runReportJSON{Backends: []backendJSON{}}
	if report == nil {
		return out
	}
	out.RunID = report.RunID
	out.DryRun = report.DryRun
	out.DurationMS = report.Duration.Milliseconds()
	for _, res := range report.Results {
		b := backendJSON{
			Name:         res.Backend,
			Listed:       res.Listed,
			Modified:     res.Modified,
			LimitReached: res.LimitReached,
			Changes:      make([]changeJSON, 0, len(res.Changes)),
		}
		if res.Err != nil {
			b.Error = res.Err.Error()
		}
		for _, change := range res.Changes {
			b.Changes = append(b.Changes, changeJSON{
				ID:         change.Entry.ID,
				Title:      change.Entry.Title,
				OldPath:    change.Entry.Path,
				NewPath:    change.NewPath,
				Outcome:    string(change.Outcome),
				StatusCode: change.StatusCode,
			})
		}
		out.Backends = append(out.Backends, b)
	}
	return out
}
