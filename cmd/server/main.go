package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	authhandler "pawboard/internal/auth/handler"
	"pawboard/internal/auth/password"
	authservice "pawboard/internal/auth/service"
	userstore "pawboard/internal/auth/store/user"
	boardhandler "pawboard/internal/board/handler"
	boardservice "pawboard/internal/board/service"
	boardstore "pawboard/internal/board/store"
	"pawboard/internal/jwttoken"
	"pawboard/internal/platform/audit"
	"pawboard/internal/platform/config"
	"pawboard/internal/platform/httpserver"
	"pawboard/internal/platform/logger"
	"pawboard/internal/platform/metrics"
	"pawboard/internal/platform/middleware"
	"pawboard/internal/platform/postgres"
	reviewhandler "pawboard/internal/review/handler"
	reviewservice "pawboard/internal/review/service"
	reviewstore "pawboard/internal/review/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: postgres when configured, in-memory otherwise.
	var (
		users   authservice.UserStore
		boards  boardservice.Store
		reviews reviewservice.Store
	)
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			return err
		}
		defer db.Close()
		users = userstore.NewPostgresStore(db)
		boards = boardstore.NewPostgresStore(db)
		reviews = reviewstore.NewPostgresStore(db)
		log.Info("using postgres stores")
	} else {
		users = userstore.NewInMemoryStore()
		boards = boardstore.NewInMemoryStore()
		reviews = reviewstore.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	// Audit: kafka when brokers are configured, structured log otherwise.
	var publisher audit.Publisher = audit.NewLogPublisher(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("failed to start kafka audit publisher", "error", err)
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := kafkaPublisher.Close(closeCtx); err != nil {
				log.Warn("kafka audit publisher close failed", "error", err)
			}
		}()
		publisher = kafkaPublisher
		log.Info("audit events publishing to kafka", "topic", cfg.AuditTopic)
	}

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.TokenTTL)
	validator := jwttoken.NewServiceAdapter(tokens)
	hasher := password.NewHasher(cfg.BcryptCost)

	boardSvc := boardservice.NewService(boards,
		boardservice.WithLogger(log),
		boardservice.WithMetrics(m),
		boardservice.WithAuditPublisher(publisher),
	)
	reviewSvc := reviewservice.NewService(reviews,
		reviewservice.WithLogger(log),
		reviewservice.WithMetrics(m),
		reviewservice.WithAuditPublisher(publisher),
	)
	authSvc := authservice.NewService(users, hasher,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithAuditPublisher(publisher),
		authservice.WithContentDeleters(boardSvc, reviewSvc),
	)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(m))

	authhandler.New(authSvc, tokens, validator, log, m).Register(router)
	boardhandler.New(boardSvc, validator, log, m).Register(router)
	reviewhandler.New(reviewSvc, validator, log, m).Register(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting pawboard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}
