package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"arrtag/internal/arr"
	"arrtag/internal/config"
	"arrtag/internal/logging"
	"arrtag/internal/notifications"
)

var (
	// ErrMissingAPIKeys is returned when either backend has no API key.
	ErrMissingAPIKeys = errors.New("missing api keys")
	// ErrRunInProgress is returned when another run holds the lock.
	ErrRunInProgress = errors.New("another arrtag run is already in progress")
)

// NewRunID returns a fresh identifier for correlating one run's log lines.
func NewRunID() string {
	return uuid.NewString()
}

// Report collects the results of one run.
type Report struct {
	RunID    string
	DryRun   bool
	Started  time.Time
	Duration time.Duration
	Results  []Result
}

// Err joins the scan-level failures of every backend.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Modified totals path modifications across backends.
func (r *Report) Modified() int {
	total := 0
	for _, res := range r.Results {
		total += res.Modified
	}
	return total
}

// Summary converts the report for notifiers.
func (r *Report) Summary() notifications.RunSummary {
	summary := notifications.RunSummary{DryRun: r.DryRun, Duration: r.Duration}
	for _, res := range r.Results {
		b := notifications.BackendSummary{
			Name:         res.Backend,
			Listed:       res.Listed,
			Modified:     res.Modified,
			Updated:      res.Count(OutcomeUpdated),
			Queued:       res.Count(OutcomeQueued),
			Failed:       res.Count(OutcomeFailed),
			LimitReached: res.LimitReached,
		}
		if res.Err != nil {
			b.Err = res.Err.Error()
		}
		summary.Backends = append(summary.Backends, b)
	}
	return summary
}

// Coordinator runs the series scan and then the movie scan.
type Coordinator struct {
	cfg        *config.Config
	logs       *logging.Streams
	notifier   notifications.Service
	httpClient arr.HTTPDoer
	runID      string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithNotifier sends the run summary through svc.
func WithNotifier(svc notifications.Service) Option {
	return func(c *Coordinator) {
		if svc != nil {
			c.notifier = svc
		}
	}
}

// WithHTTPClient overrides the HTTP client used for both backends.
func WithHTTPClient(client arr.HTTPDoer) Option {
	return func(c *Coordinator) {
		c.httpClient = client
	}
}

// WithRunID stamps the report with an existing run id.
func WithRunID(id string) Option {
	return func(c *Coordinator) {
		c.runID = strings.TrimSpace(id)
	}
}

// New constructs a coordinator. The configuration is not modified.
func New(cfg *config.Config, logs *logging.Streams, opts ...Option) *Coordinator {
	if logs == nil {
		logs = logging.NopStreams()
	}
	c := &Coordinator{
		cfg:      cfg,
		logs:     logs,
		notifier: notifications.NewService(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runID == "" {
		c.runID = NewRunID()
	}
	return c
}

// Run validates credentials, takes the run lock and scans each enabled
// backend in order. A list failure in one backend does not prevent the next
// from running; the returned error joins every such failure.
func (c *Coordinator) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: c.runID, DryRun: c.cfg.Run.DryRun, Started: time.Now()}

	if missing := c.missingKeys(); len(missing) > 0 {
		logging.ErrorWithContext(c.logs.Main, "api keys missing", "config_invalid",
			logging.String("missing", strings.Join(missing, ",")),
			logging.String(logging.FieldErrorHint, "set api_key in config.toml or export SONARR_API_KEY and RADARR_API_KEY"),
		)
		c.notifyFailure(ctx, ErrMissingAPIKeys)
		return report, ErrMissingAPIKeys
	}

	release, err := c.acquireLock()
	if err != nil {
		logging.ErrorWithContext(c.logs.Main, "run lock unavailable", "lock_failed", logging.Error(err))
		return report, err
	}
	defer release()

	opts := Options{DryRun: c.cfg.Run.DryRun, WorkLimit: c.cfg.Run.WorkLimit}
	c.logs.Main.Info("run started",
		logging.Bool("dry_run", opts.DryRun),
		logging.Int("work_limit", opts.WorkLimit),
	)

	if c.cfg.Series.Enabled {
		report.Results = append(report.Results, scanBackend(ctx, c, BackendSeries, c.cfg.Series, SeriesBackend, opts))
	} else {
		c.logs.Main.Info("series backend disabled; skipping")
	}
	if c.cfg.Movies.Enabled {
		report.Results = append(report.Results, scanBackend(ctx, c, BackendMovies, c.cfg.Movies, MovieBackend, opts))
	} else {
		c.logs.Main.Info("movie backend disabled; skipping")
	}

	report.Duration = time.Since(report.Started)
	runErr := report.Err()
	c.logs.Main.Info("run complete",
		logging.Int("modified", report.Modified()),
		logging.Bool("dry_run", opts.DryRun),
		logging.Bool("errors", runErr != nil),
		logging.String("duration", report.Duration.Round(time.Millisecond).String()),
	)

	if err := c.notifier.NotifyRunCompleted(ctx, report.Summary()); err != nil {
		logging.WarnWithContext(c.logs.Main, "run notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run summary was not delivered"),
		)
	}
	return report, runErr
}

func scanBackend[T, P any](ctx context.Context, c *Coordinator, name string, backendCfg config.Backend, build func(*arr.Client) Backend[T, P], opts Options) Result {
	client, err := arr.New(backendCfg.URL, backendCfg.APIKey,
		arr.WithTimeout(c.cfg.RequestTimeout()),
		arr.WithHTTPClient(c.httpClient),
	)
	if err != nil {
		logging.ErrorWithContext(c.logs.Main, "backend client unavailable", "config_invalid",
			logging.String(logging.FieldBackend, name),
			logging.Error(err),
		)
		return Result{Backend: name, Err: fmt.Errorf("%s client: %w", name, err)}
	}
	c.logs.Main.Info("starting scan",
		logging.String(logging.FieldBackend, name),
		logging.String("url", client.BaseURL()),
	)
	return Scan(ctx, build(client), opts, c.logs)
}

func (c *Coordinator) missingKeys() []string {
	var missing []string
	if strings.TrimSpace(c.cfg.Series.APIKey) == "" {
		missing = append(missing, "series.api_key")
	}
	if strings.TrimSpace(c.cfg.Movies.APIKey) == "" {
		missing = append(missing, "movies.api_key")
	}
	return missing
}

func (c *Coordinator) acquireLock() (func(), error) {
	if err := c.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	lock := flock.New(c.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func() { _ = lock.Unlock() }, nil
}

func (c *Coordinator) notifyFailure(ctx context.Context, err error) {
	if notifyErr := c.notifier.NotifyRunFailed(ctx, err); notifyErr != nil {
		logging.WarnWithContext(c.logs.Main, "failure notification failed", "notification_failed",
			logging.Error(notifyErr),
		)
	}
}
