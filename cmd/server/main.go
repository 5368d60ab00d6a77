// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"comparo/internal/attribution"
	"comparo/internal/auth"
	"comparo/internal/catalog"
	"comparo/internal/gate"
	"comparo/internal/identity"
	"comparo/internal/platform/config"
	"comparo/internal/platform/httpserver"
	"comparo/internal/platform/kafka"
	"comparo/internal/platform/logger"
	"comparo/internal/platform/metrics"
	"comparo/internal/platform/postgres"
	platformredis "comparo/internal/platform/redis"
	"comparo/internal/redirect"
	"comparo/internal/session"
	httptransport "comparo/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session store: Redis in production, in-memory when unconfigured.
	var sessions session.Store
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient.Client, cfg.DurableSessionTTL, cfg.EphemeralSessionTTL)
	} else {
		log.Warn("REDIS_URL not set, using in-memory session store")
		sessions = session.NewMemoryStore(cfg.DurableSessionTTL, cfg.EphemeralSessionTTL)
	}

	// Catalog + account stores: Postgres in production, seeded in-memory
	// fixtures when unconfigured.
	var (
		products catalog.Store
		users    auth.UserStore
		profiles identity.ProfileStore
	)
	if cfg.PostgresDSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		products = catalog.NewPostgresStore(pool)

		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		users = auth.NewPostgresUserStore(db)
		profiles = identity.NewPostgresProfileStore(db)
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory fixtures")
		memCatalog := catalog.NewMemoryStore()
		memUsers := auth.NewMemoryUserStore()
		memProfiles := identity.NewMemoryProfileStore()
		seedFixtures(memCatalog, memUsers, memProfiles, log)
		products = memCatalog
		users = memUsers
		profiles = memProfiles
	}

	tokens := identity.NewTokenService(cfg.JWTSigningKey, cfg.JWTIssuer)
	provider := identity.NewProvider(tokens, profiles)
	authSvc := auth.NewService(users, sessions, tokens, log)

	// Attribution pipeline: in-process tracker, optional Kafka sink.
	trackerOpts := []attribution.TrackerOption{attribution.WithMetrics(m)}
	var forwarder *attribution.Forwarder
	producer, err := kafka.NewProducer(ctx, cfg.KafkaBrokers)
	if err != nil {
		log.Error("kafka connection failed", "error", err)
		os.Exit(1)
	}
	if producer != nil {
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, cfg.AttributionTopic, 3); err != nil {
			log.Error("ensure attribution topic failed", "error", err)
			os.Exit(1)
		}
		forwarder = attribution.NewForwarder(producer, cfg.AttributionTopic, log, m)
		trackerOpts = append(trackerOpts, attribution.WithSink(forwarder))
	} else {
		log.Warn("KAFKA_BROKERS not set, attribution events stay in-process only")
	}
	tracker := attribution.NewTracker(trackerOpts...)

	resolver := redirect.NewResolver(products, tracker, log, m)
	accessGate := gate.New(gate.DefaultClassifier(), sessions, provider, log, m)

	handler := httptransport.NewHandler(log, m, authSvc, resolver, tracker, products, cfg.DurableSessionTTL)
	router := httptransport.NewRouter(handler, accessGate)
	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting comparo", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if forwarder != nil {
		group.Go(func() error {
			if err := forwarder.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
