package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"docseal/internal/audit"
	"docseal/internal/diff"
	diffhandler "docseal/internal/diff/handler"
	diffmetrics "docseal/internal/diff/metrics"
	"docseal/internal/duplicate"
	duplicatehandler "docseal/internal/duplicate/handler"
	duplicatemetrics "docseal/internal/duplicate/metrics"
	"docseal/internal/fingerprint"
	jwttoken "docseal/internal/jwt_token"
	"docseal/internal/ledger"
	"docseal/internal/platform/config"
	"docseal/internal/platform/httpserver"
	"docseal/internal/platform/logger"
	platformredis "docseal/internal/platform/redis"
	"docseal/internal/proof"
	proofhandler "docseal/internal/proof/handler"
	httptransport "docseal/internal/transport/http"
	"docseal/internal/verification"
	verificationhandler "docseal/internal/verification/handler"
	verificationmetrics "docseal/internal/verification/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var healthchecks []func() error

	store, cleanup, err := buildStore(ctx, cfg, log, &healthchecks)
	if err != nil {
		log.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditStore, auditClose, err := buildAuditStore(ctx, cfg, log)
	if err != nil {
		log.Error("audit sink init failed", "error", err)
		os.Exit(1)
	}
	defer auditClose()
	auditor := audit.NewPublisher(auditStore)

	fingerprints := fingerprint.NewService()
	verifier := verification.NewService(store, fingerprints, verification.NewStats(), verificationmetrics.New(), auditor, log)
	comparer := diff.NewService(log, diffmetrics.New())
	gate := duplicate.NewService(store, duplicatemetrics.New(), auditor, log)
	prover := proof.NewService(store, auditor, log)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "docseal", "docseal-api")

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		Validator:    jwttoken.NewJWTServiceAdapter(jwtService),
		Verification: verificationhandler.New(verifier, log),
		Diff:         diffhandler.New(comparer, log),
		Duplicate:    duplicatehandler.New(gate, fingerprints, log),
		Proof:        proofhandler.New(prover, log),
		Healthchecks: healthchecks,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting docseal", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore picks the sealed-record source: the remote ledger service when
// configured, a postgres mirror as second choice, otherwise in-memory for
// local development. Redis wraps whichever was chosen.
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger, healthchecks *[]func() error) (ledger.Store, func(), error) {
	cleanup := func() {}

	var store ledger.Store
	switch {
	case cfg.LedgerURL != "":
		store = ledger.NewHTTPClient(cfg.LedgerURL, cfg.LedgerTimeout)
	case cfg.PostgresDSN != "":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, cleanup, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, cleanup, err
		}
		*healthchecks = append(*healthchecks, db.Ping)
		store = ledger.NewPostgres(db)
		cleanup = func() { db.Close() }
	default:
		log.Warn("no ledger configured, using in-memory store")
		store = ledger.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, cleanup, err
	}
	if redisClient != nil {
		*healthchecks = append(*healthchecks, func() error { return redisClient.Health(ctx) })
		store = ledger.NewRedisCache(store, redisClient.Client, cfg.Redis.CacheTTL, log)
		inner := cleanup
		cleanup = func() {
			redisClient.Close()
			inner()
		}
	}

	return store, cleanup, nil
}

// buildAuditStore returns the kafka sink when brokers are configured and an
// in-memory sink otherwise. The kafka path goes through a buffered queue and
// a worker so request handling never waits on the broker.
func buildAuditStore(ctx context.Context, cfg config.Server, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewInMemoryStore(), func() {}, nil
	}
	kafkaStore, err := audit.NewKafkaStore(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}

	queue := audit.NewQueue(256)
	workerCtx, stopWorker := context.WithCancel(ctx)
	worker := audit.NewWorker(kafkaStore, queue.Events())
	go func() {
		if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	return queue, func() {
		stopWorker()
		kafkaStore.Close()
	}, nil
}
