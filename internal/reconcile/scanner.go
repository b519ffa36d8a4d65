package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"arrtag/internal/arr"
	"arrtag/internal/logging"
	"arrtag/internal/pathtag"
)

// Options bounds a single scan.
type Options struct {
	DryRun bool
	// WorkLimit caps path modifications per scan. Zero means unlimited.
	WorkLimit int
}

// Outcome classifies what happened to a planned path change.
type Outcome string

const (
	OutcomeSimulated Outcome = "simulated"
	OutcomeUpdated   Outcome = "updated"
	OutcomeQueued    Outcome = "queued"
	OutcomeFailed    Outcome = "failed"
)

// Change is one planned path modification and its outcome.
type Change struct {
	Entry      Entry
	NewPath    string
	Outcome    Outcome
	StatusCode int
}

// Result summarizes one scan.
type Result struct {
	Backend string
	Listed  int
	// Triggered counts entries the backend flagged for tagging.
	Triggered    int
	Modified     int
	LimitReached bool
	Changes      []Change
	// Err is set when the catalog could not be listed or the scan was
	// cancelled. Per-entry update failures never set it.
	Err error
}

// Count returns how many changes ended with outcome.
func (r Result) Count(outcome Outcome) int {
	n := 0
	for _, change := range r.Changes {
		if change.Outcome == outcome {
			n++
		}
	}
	return n
}

// Scan lists the backend catalog and appends missing identifier tags to the
// entries whose folders lack them. Entries are processed in listing order
// and the scan stops once opts.WorkLimit modifications have been counted.
func Scan[T, P any](ctx context.Context, b Backend[T, P], opts Options, logs *logging.Streams) Result {
	if logs == nil {
		logs = logging.NopStreams()
	}
	logs = logs.With(logging.String(logging.FieldBackend, b.Name))
	result := Result{Backend: b.Name}

	items, err := b.List(ctx)
	if err != nil {
		result.Err = fmt.Errorf("list %s: %w", b.Name, err)
		attrs := []logging.Attr{
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the instance URL, API key and network reachability"),
		}
		var statusErr *arr.StatusError
		if errors.As(err, &statusErr) {
			attrs = append(attrs, logging.Int("status", statusErr.StatusCode))
		}
		logging.ErrorWithContext(logs.Main, "failed to list "+b.Label, "list_failed", attrs...)
		return result
	}
	result.Listed = len(items)
	logs.Main.Info("scanning "+b.Label, logging.Int("count", len(items)))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			result.Err = err
			logging.WarnWithContext(logs.Main, "scan cancelled", "scan_cancelled",
				logging.Error(err),
				logging.String(logging.FieldImpact, "remaining entries were not inspected"),
			)
			break
		}

		entry := b.Describe(item)
		logs.Debug.Debug("inspecting entry",
			logging.Int64(logging.FieldEntryID, entry.ID),
			logging.String(logging.FieldTitle, entry.Title),
			logging.Int("year", entry.Year),
		)
		if !b.NeedsTag(item) {
			continue
		}
		result.Triggered++

		newPath := pathtag.Normalize(entry.Path, b.IDs(item)...)
		logs.Debug.Debug("path evaluated",
			logging.Int64(logging.FieldEntryID, entry.ID),
			logging.String("old_path", entry.Path),
			logging.String("new_path", newPath),
		)
		if newPath == entry.Path {
			continue
		}

		msg := "updating path"
		if opts.DryRun {
			msg = "would update path"
		}
		logs.Main.Info(msg,
			logging.Int64(logging.FieldEntryID, entry.ID),
			logging.String(logging.FieldTitle, entry.Title),
			logging.String("old_path", entry.Path),
			logging.String("new_path", newPath),
		)
		change := Change{Entry: entry, NewPath: newPath, Outcome: OutcomeSimulated}
		if !opts.DryRun {
			change.Outcome, change.StatusCode = apply(ctx, b, item, entry, newPath, logs)
		}
		result.Changes = append(result.Changes, change)
		result.Modified++

		if opts.WorkLimit > 0 && result.Modified >= opts.WorkLimit {
			result.LimitReached = true
			logs.Main.Info("modification limit reached", logging.Int("limit", opts.WorkLimit))
			break
		}
	}

	logs.Main.Info("scan complete",
		logging.Int("listed", result.Listed),
		logging.Int("modified", result.Modified),
		logging.Int("updated", result.Count(OutcomeUpdated)),
		logging.Int("queued", result.Count(OutcomeQueued)),
		logging.Int("failed", result.Count(OutcomeFailed)),
		logging.Bool("limit_reached", result.LimitReached),
	)
	return result
}

func apply[T, P any](ctx context.Context, b Backend[T, P], item T, entry Entry, newPath string, logs *logging.Streams) (Outcome, int) {
	payload := b.Payload(item, newPath)
	idAttr := logging.Int64(logging.FieldEntryID, entry.ID)

	resp, err := b.Update(ctx, entry.ID, payload)
	if err != nil {
		logging.ErrorWithContext(logs.Main, "update request failed", "update_failed",
			idAttr,
			logging.String(logging.FieldTitle, entry.Title),
			logging.Error(err),
		)
		if b.VerboseFailures {
			logs.Debug.Debug("update request error detail",
				idAttr,
				logging.String("payload", encodePayload(payload)),
				logging.Error(err),
			)
		}
		return OutcomeFailed, 0
	}

	switch resp.StatusCode {
	case http.StatusOK:
		logs.Main.Info("path updated", idAttr, logging.String("new_path", newPath))
		return OutcomeUpdated, resp.StatusCode
	case http.StatusAccepted:
		logs.Main.Info("path update queued; files move on the next refresh", idAttr, logging.String("new_path", newPath))
		return OutcomeQueued, resp.StatusCode
	}

	attrs := []logging.Attr{
		idAttr,
		logging.String(logging.FieldTitle, entry.Title),
		logging.Int("status", resp.StatusCode),
	}
	if b.VerboseFailures {
		attrs = append(attrs,
			logging.String("response", string(resp.Body)),
			logging.String("payload", encodePayload(payload)),
		)
	}
	logging.ErrorWithContext(logs.Main, "update rejected", "update_failed", attrs...)
	if b.VerboseFailures {
		logs.Debug.Debug("rejected update payload", idAttr, logging.String("payload", encodePayload(payload)))
		logs.Debug.Debug("rejected update response",
			idAttr,
			logging.Int("status", resp.StatusCode),
			logging.String("body", string(resp.Body)),
		)
	}
	return OutcomeFailed, resp.StatusCode
}

func encodePayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%+v", payload)
	}
	return string(data)
}
