// Package main runs one transaction reconciliation over a calendar-date
// window and exits. Scheduling and retries belong to the invoking host.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mlb-roster-sync/internal/mlbstats"
	"mlb-roster-sync/internal/notify"
	"mlb-roster-sync/internal/observability"
	"mlb-roster-sync/internal/reconcile"
	"mlb-roster-sync/internal/storage"
	chstore "mlb-roster-sync/internal/storage/clickhouse"
	"mlb-roster-sync/internal/storage/memory"
	"mlb-roster-sync/internal/storage/migrations"
	pgstore "mlb-roster-sync/internal/storage/postgres"
)

func main() {
	// Parse flags
	startDate := flag.String("start-date", "", "Window start (YYYY-MM-DD, default yesterday)")
	endDate := flag.String("end-date", "", "Window end (YYYY-MM-DD, default tomorrow)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (audit log only)")
	auditBackend := flag.String("audit", "postgres", "Audit log backend: postgres or clickhouse")
	apiBaseURL := flag.String("api-base-url", mlbstats.DefaultBaseURL, "MLB Stats API base URL")
	apiTimeout := flag.Duration("api-timeout", mlbstats.DefaultTimeout, "Fetch timeout")
	webhookURL := flag.String("webhook-url", os.Getenv("NOTIFY_WEBHOOK_URL"), "Notification webhook URL (empty to disable)")
	wsURL := flag.String("ws-url", os.Getenv("NOTIFY_WS_URL"), "Notification WebSocket URL (empty to disable)")
	environment := flag.String("environment", envOrDefault("ENVIRONMENT", "local"), "Deployment environment label")
	batchSize := flag.Int("batch-size", pgstore.DefaultBatchSize, "Records per upsert batch")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL (dry run)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[reconcile] ", log.LstdFlags|log.Lshortfile)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling run...", sig)
		cancel()
	}()

	// Start metrics server if enabled
	var metrics *observability.Metrics
	if *metricsAddr != "" {
		metrics = observability.NewMetrics("", nil)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Create stores
	var (
		catalog storage.CatalogStore
		history storage.TeamHistoryStore
		audit   storage.AuditLogStore
	)

	if *useMemory {
		logger.Println("Using in-memory storage (dry run; catalogs are empty)")
		catalog = memory.NewCatalogStore(nil, nil)
		history = memory.NewTeamHistoryStore()
		audit = memory.NewAuditLogStore()
	} else {
		if *postgresDSN == "" {
			logger.Fatal("PostgreSQL DSN required. Use --postgres-dsn or POSTGRES_DSN")
		}

		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}

		catalog = pgstore.NewCatalogStore(pool)
		history = pgstore.NewTeamHistoryStore(pool).WithBatchSize(*batchSize)

		switch *auditBackend {
		case "postgres":
			audit = pgstore.NewAuditLogStore(pool)
		case "clickhouse":
			if *clickhouseDSN == "" {
				logger.Fatal("ClickHouse DSN required for --audit=clickhouse. Use --clickhouse-dsn or CLICKHOUSE_DSN")
			}
			conn, err := chstore.NewConn(ctx, *clickhouseDSN)
			if err != nil {
				logger.Fatalf("Failed to connect to ClickHouse: %v", err)
			}
			defer conn.Close()
			if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
				logger.Fatalf("Failed to run ClickHouse migrations: %v", err)
			}
			audit = chstore.NewAuditLogStore(conn)
		default:
			logger.Fatalf("Unknown audit backend %q", *auditBackend)
		}
	}

	// Create notifier
	var notifiers []notify.Notifier
	if *webhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhook(*webhookURL))
	}
	if *wsURL != "" {
		notifiers = append(notifiers, notify.NewWSNotifier(*wsURL))
	}
	var notifier notify.Notifier
	switch len(notifiers) {
	case 0:
		logger.Println("No notification channel configured")
	case 1:
		notifier = notifiers[0]
	default:
		notifier = notify.NewMulti(notifiers...)
	}

	// Create fetcher
	fetcher := mlbstats.NewClient(
		mlbstats.WithBaseURL(*apiBaseURL),
		mlbstats.WithTimeout(*apiTimeout),
	)

	// Run the job
	job := reconcile.New(reconcile.Options{
		Fetcher:     fetcher,
		Catalog:     catalog,
		History:     history,
		Audit:       audit,
		Notifier:    notifier,
		Clock:       time.Now,
		Environment: *environment,
		Logger:      logger,
		Metrics:     metrics,
	})

	summary, err := job.Run(ctx, *startDate, *endDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reconciliation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Reconciliation completed:")
	fmt.Printf("  Window:       %s .. %s\n", summary.StartDate, summary.EndDate)
	fmt.Printf("  Found:        %d\n", summary.TransactionsFound)
	fmt.Printf("  Processed:    %d\n", summary.RecordsProcessed)
	fmt.Printf("  Inserted:     %d\n", summary.RecordsInserted)
	fmt.Printf("  Updated:      %d\n", summary.RecordsUpdated)
	fmt.Printf("  Environment:  %s\n", summary.Environment)
}

// envOrDefault reads an environment variable with a fallback.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
