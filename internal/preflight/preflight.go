package preflight

import (
	"context"

	"arrtag/internal/arr"
	"arrtag/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config. Disabled
// backends are reported as skipped rather than failed.
func RunAll(ctx context.Context, cfg *config.Config, opts ...arr.Option) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Log directory", cfg.Logging.Dir)}
	results = append(results, checkBackend(ctx, "Sonarr", cfg.Series, opts...))
	results = append(results, checkBackend(ctx, "Radarr", cfg.Movies, opts...))
	return results
}

func checkBackend(ctx context.Context, name string, backend config.Backend, opts ...arr.Option) Result {
	if !backend.Enabled {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	return CheckArr(ctx, name, backend.URL, backend.APIKey, opts...)
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
