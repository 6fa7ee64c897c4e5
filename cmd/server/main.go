// Command server runs the rollout decision and dual-path execution service.
// It wires the config store, eligibility policy, experiment runner, result
// sink, and HTTP transport, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"switchyard/internal/cpf/handler"
	cpfservice "switchyard/internal/cpf/service"
	"switchyard/internal/eligibility"
	"switchyard/internal/eligibility/external"
	eligibilitymetrics "switchyard/internal/eligibility/metrics"
	"switchyard/internal/experiment"
	exmetrics "switchyard/internal/experiment/metrics"
	kafkasink "switchyard/internal/experiment/sink/kafka"
	logsink "switchyard/internal/experiment/sink/log"
	postgressink "switchyard/internal/experiment/sink/postgres"
	jwttoken "switchyard/internal/jwt_token"
	"switchyard/internal/platform/config"
	"switchyard/internal/platform/httpserver"
	"switchyard/internal/platform/logger"
	redisplatform "switchyard/internal/platform/redis"
	rollouthandler "switchyard/internal/rollout/handler"
	rolloutmetrics "switchyard/internal/rollout/metrics"
	rolloutservice "switchyard/internal/rollout/service"
	"switchyard/internal/rollout/store"
	httptransport "switchyard/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Config store: Redis when configured, in-process memory otherwise.
	var (
		configStore store.ConfigStore
		health      httptransport.HealthChecker
	)
	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		configStore = store.NewRedisStore(redisClient.Client, store.WithLogger(log))
		health = redisClient
		log.Info("using redis config store")
	} else {
		configStore = store.NewMemoryStore()
		log.Info("redis not configured, using in-memory config store")
	}

	rollout, err := rolloutservice.New(configStore,
		rolloutservice.WithLogger(log),
		rolloutservice.WithMetrics(rolloutmetrics.New()),
	)
	if err != nil {
		return err
	}

	policyOpts := []eligibility.Option{
		eligibility.WithLogger(log),
		eligibility.WithMetrics(eligibilitymetrics.New()),
	}
	if cfg.EligibilityURL != "" {
		policyOpts = append(policyOpts, eligibility.WithExternal(external.NewClient(cfg.EligibilityURL)))
		log.Info("external eligibility check enabled", "url", cfg.EligibilityURL)
	}
	policy, err := eligibility.NewPolicy(rollout, policyOpts...)
	if err != nil {
		return err
	}

	sink, closeSink, err := buildSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSink()

	runner, err := experiment.New(rollout, sink,
		experiment.WithLogger(log),
		experiment.WithMetrics(exmetrics.New()),
	)
	if err != nil {
		return err
	}

	cpfSvc, err := cpfservice.New(policy, runner, cpfservice.WithLogger(log))
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.AdminJWTKey, "switchyard", "switchyard-admin")

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		CPF:            handler.New(cpfSvc, log),
		Rollout:        rollouthandler.New(rollout, log),
		TokenValidator: jwttoken.NewJWTServiceAdapter(jwtService),
		Health:         health,
	})

	srv := httpserver.New(cfg.Addr, router)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "result_sink", cfg.ResultSink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "grace", cfg.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildSink selects the comparison result sink from configuration. The
// returned cleanup is always safe to call.
func buildSink(ctx context.Context, cfg config.Server, log *slog.Logger) (experiment.Sink, func(), error) {
	noop := func() {}

	switch cfg.ResultSink {
	case "noop":
		return experiment.NoopSink{}, noop, nil
	case "log", "":
		return logsink.New(log), noop, nil
	case "kafka":
		s, err := kafkasink.New(cfg.KafkaSeeds, cfg.KafkaTopic, kafkasink.WithLogger(log))
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(context.Background()); err != nil {
				log.Warn("kafka sink close failed", "error", err)
			}
		}, nil
	case "postgres":
		s, err := postgressink.New(cfg.PostgresDSN, postgressink.WithLogger(log))
		if err != nil {
			return nil, noop, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn("postgres sink close failed", "error", err)
			}
		}, nil
	default:
		return nil, noop, errors.New("unknown result sink: " + cfg.ResultSink)
	}
}
