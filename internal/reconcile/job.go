// Package reconcile orchestrates one transaction reconciliation run.
// Flow: resolve window, audit, load catalogs, fetch, filter, dedup,
// upsert, notify.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"mlb-roster-sync/internal/domain"
	"mlb-roster-sync/internal/mlbstats"
	"mlb-roster-sync/internal/notify"
	"mlb-roster-sync/internal/observability"
	"mlb-roster-sync/internal/projection"
	"mlb-roster-sync/internal/runid"
	"mlb-roster-sync/internal/storage"
	"mlb-roster-sync/internal/window"
)

// JobName identifies this job in audit entries and notifications.
const JobName = "roster-reconciliation"

// Stage names carried in failure notifications and metrics labels.
const (
	StageResolvingWindow = "resolving_window"
	StageAuditLog        = "audit_log"
	StageLoadingCatalogs = "loading_catalogs"
	StageFetching        = "fetching"
	StageFiltering       = "filtering"
	StageDeduplicating   = "deduplicating"
	StageUpserting       = "upserting"
)

// ErrEmptyCatalog is returned when either entity catalog comes back empty.
// No candidate could ever pass filtering against an empty catalog, so the
// run fails before fetching anything.
var ErrEmptyCatalog = errors.New("empty entity catalog")

// Fetcher retrieves raw transactions for a window, filtered by team.
// Implemented by mlbstats.Client.
type Fetcher interface {
	Transactions(ctx context.Context, w domain.Window, teamIDs []int) ([]domain.RosterTransaction, error)
}

// Compile-time check that the production client satisfies Fetcher.
var _ Fetcher = (*mlbstats.Client)(nil)

// Job runs the reconciliation pipeline. A run is single-threaded: every
// collaborator call is awaited in sequence, and no coordination is attempted
// with concurrent runs; the merge-upsert keeps overlapping runs idempotent.
type Job struct {
	fetcher     Fetcher
	catalog     storage.CatalogStore
	history     storage.TeamHistoryStore
	audit       storage.AuditLogStore
	notifier    notify.Notifier
	clock       func() time.Time
	environment string
	logger      *log.Logger
	metrics     *observability.Metrics
}

// Options contains dependencies for creating a Job. Environment and clock
// are injected here rather than read from ambient process state.
type Options struct {
	Fetcher     Fetcher
	Catalog     storage.CatalogStore
	History     storage.TeamHistoryStore
	Audit       storage.AuditLogStore
	Notifier    notify.Notifier // nil disables notifications
	Clock       func() time.Time
	Environment string
	Logger      *log.Logger
	Metrics     *observability.Metrics // nil disables metrics
}

// New creates a new Job.
func New(opts Options) *Job {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	environment := opts.Environment
	if environment == "" {
		environment = "local"
	}

	return &Job{
		fetcher:     opts.Fetcher,
		catalog:     opts.Catalog,
		history:     opts.History,
		audit:       opts.Audit,
		notifier:    opts.Notifier,
		clock:       clock,
		environment: environment,
		logger:      logger,
		metrics:     opts.Metrics,
	}
}

// Run executes one reconciliation over the window described by the optional
// YYYY-MM-DD bounds. On success the summary is returned; on failure the
// error is returned to the caller after a failure notification; whether to
// retry is the invoking scheduler's decision.
func (j *Job) Run(ctx context.Context, startDate, endDate string) (*domain.RunSummary, error) {
	startTime := j.clock()

	w, err := window.Resolve(startDate, endDate, j.clock)
	if err != nil {
		return nil, j.fail(ctx, StageResolvingWindow, startTime, err)
	}

	id := runid.New(w, startTime)
	actor := JobName + "/" + id
	j.logger.Printf("run %s starting: window %s, environment %s", id, w, j.environment)

	summary := &domain.RunSummary{
		StartDate:   w.StartDate(),
		EndDate:     w.EndDate(),
		Environment: j.environment,
	}

	err = j.audit.Append(ctx, &domain.AuditEntry{
		LoggedAt:    startTime.UnixMilli(),
		Actor:       actor,
		Description: fmt.Sprintf("run started: window %s, environment %s", w, j.environment),
	})
	if err != nil {
		// Audit failures are fatal: a run that cannot be accounted for must
		// not silently mutate history.
		return nil, j.fail(ctx, StageAuditLog, startTime, err)
	}

	teamIDs, err := j.catalog.ValidTeamIDs(ctx)
	if err != nil {
		return nil, j.fail(ctx, StageLoadingCatalogs, startTime, err)
	}
	if len(teamIDs) == 0 {
		return nil, j.fail(ctx, StageLoadingCatalogs, startTime, fmt.Errorf("%w: no valid teams", ErrEmptyCatalog))
	}

	playerIDs, err := j.catalog.ValidPlayerIDs(ctx)
	if err != nil {
		return nil, j.fail(ctx, StageLoadingCatalogs, startTime, err)
	}
	if len(playerIDs) == 0 {
		return nil, j.fail(ctx, StageLoadingCatalogs, startTime, fmt.Errorf("%w: no valid players", ErrEmptyCatalog))
	}
	j.logger.Printf("run %s: catalogs loaded, %d teams, %d players", id, len(teamIDs), len(playerIDs))

	transactions, err := j.fetcher.Transactions(ctx, w, teamIDs)
	if err != nil {
		if j.metrics != nil {
			j.metrics.FetchErrors.Inc()
		}
		return nil, j.fail(ctx, StageFetching, startTime, err)
	}
	summary.TransactionsFound = len(transactions)
	if j.metrics != nil {
		j.metrics.TransactionsFetched.Add(float64(len(transactions)))
	}
	j.logger.Printf("run %s: fetched %d transactions", id, len(transactions))

	if len(transactions) == 0 {
		// Nothing in the window. Still a successful run.
		j.succeed(ctx, id, startTime, summary, len(teamIDs), len(playerIDs))
		return summary, nil
	}

	filtered := projection.FilterAndProject(transactions,
		projection.IDSet(playerIDs), projection.IDSet(teamIDs), j.logger)
	if j.metrics != nil {
		j.metrics.RecordsDropped.Add(float64(filtered.Dropped))
	}

	deduped := projection.Deduplicate(filtered.Candidates)
	summary.RecordsProcessed = len(deduped)
	j.logger.Printf("run %s: %d candidates after filtering, %d after dedup",
		id, len(filtered.Candidates), len(deduped))

	result, err := j.history.Upsert(ctx, projection.ToHistoryRecords(deduped))
	if err != nil {
		return nil, j.fail(ctx, StageUpserting, startTime, err)
	}
	summary.RecordsInserted = result.Inserted
	summary.RecordsUpdated = result.Updated
	if j.metrics != nil {
		j.metrics.RowsUpserted.WithLabelValues("insert").Add(float64(result.Inserted))
		j.metrics.RowsUpserted.WithLabelValues("update").Add(float64(result.Updated))
	}

	j.succeed(ctx, id, startTime, summary, len(teamIDs), len(playerIDs))
	return summary, nil
}

// succeed records run success and sends the success notification.
func (j *Job) succeed(ctx context.Context, id string, startTime time.Time, summary *domain.RunSummary, teams, players int) {
	elapsed := j.clock().Sub(startTime)
	j.logger.Printf("run %s completed in %s: %d found, %d processed, %d inserted, %d updated",
		id, elapsed, summary.TransactionsFound, summary.RecordsProcessed,
		summary.RecordsInserted, summary.RecordsUpdated)

	if j.metrics != nil {
		j.metrics.RunsTotal.WithLabelValues("success").Inc()
		j.metrics.RunDuration.Observe(elapsed.Seconds())
		j.metrics.LastSuccessfulRun.Set(float64(j.clock().Unix()))
	}

	j.send(ctx, notify.Message{
		JobName:     JobName,
		Stage:       "done",
		StartTime:   startTime,
		Environment: j.environment,
		Details: map[string]string{
			"runId":             id,
			"startDate":         summary.StartDate,
			"endDate":           summary.EndDate,
			"transactionsFound": strconv.Itoa(summary.TransactionsFound),
			"recordsProcessed":  strconv.Itoa(summary.RecordsProcessed),
			"recordsInserted":   strconv.Itoa(summary.RecordsInserted),
			"recordsUpdated":    strconv.Itoa(summary.RecordsUpdated),
			"validTeams":        strconv.Itoa(teams),
			"validPlayers":      strconv.Itoa(players),
		},
	})
}

// fail records the failure, sends the failure notification, and returns the
// stage-wrapped error for the caller.
func (j *Job) fail(ctx context.Context, stage string, startTime time.Time, err error) error {
	j.logger.Printf("ERROR: stage %s failed: %v", stage, err)

	if j.metrics != nil {
		j.metrics.RunsTotal.WithLabelValues("failed").Inc()
		j.metrics.StageErrors.WithLabelValues(stage).Inc()
		j.metrics.RunDuration.Observe(j.clock().Sub(startTime).Seconds())
	}

	j.send(ctx, notify.Message{
		JobName:     JobName,
		Stage:       stage,
		StartTime:   startTime,
		Environment: j.environment,
		Error:       err.Error(),
	})

	return fmt.Errorf("stage %s: %w", stage, err)
}

// send delivers a notification. Delivery failures are logged and swallowed:
// the side channel never decides a run's outcome.
func (j *Job) send(ctx context.Context, msg notify.Message) {
	if j.notifier == nil {
		return
	}
	if err := j.notifier.Send(ctx, msg); err != nil {
		j.logger.Printf("WARN: notification delivery failed: %v", err)
	}
}
