package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "ad-rewards/internal/adapter/http"
	"ad-rewards/internal/adapter/memory"
	"ad-rewards/internal/adapter/postgres"
	"ad-rewards/internal/adapter/rabbitmq"
	"ad-rewards/internal/adapter/reward"
	"ad-rewards/internal/adapter/usecase"
	"ad-rewards/internal/config"
	"ad-rewards/internal/config/configs"
	"ad-rewards/internal/core/condition"
	"ad-rewards/internal/core/port"
	"ad-rewards/internal/db"
)

// main is the entry point of the campaign API. It loads configuration,
// prepares the store, starts the reward dispatcher and serves HTTP until
// SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := cfg.Log.New(os.Stdout, "campaign-api").With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

type repositories struct {
	campaigns port.CampaignRepository
	ledger    port.LedgerRepository
	users     port.UserRepository
	tx        port.Transactor
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	client, closeClient, err := newRewardClient(cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	dispatcher := reward.NewDispatcher(client, logger, reward.Options{
		Workers:       cfg.Reward.Workers,
		QueueSize:     cfg.Reward.QueueSize,
		CallTimeout:   cfg.Reward.CallTimeout,
		RatePerSecond: cfg.Reward.RatePerSecond,
	})

	svc := usecase.NewCampaignService(repos.campaigns, repos.ledger, repos.tx, condition.Default())
	uc := usecase.NewCampaignUseCase(svc, repos.users, dispatcher, logger)

	handler := httpadapter.NewHandler(uc, logger, httpadapter.Options{
		JoinRatePerSecond: cfg.HTTP.JoinRatePerSecond,
		JoinBurst:         cfg.HTTP.JoinBurst,
	})
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}

	// joins accepted before shutdown still get their reward call
	if err = dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("reward dispatcher did not drain", slog.Any("error", err))
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, func(), error) {
	if cfg.Store.DriverName() == configs.StoreDriverMemory {
		store := memory.NewStore(cfg.Store.LockTimeout)
		if err := memory.SeedDemo(ctx, store, cfg.Store.DemoUsers); err != nil {
			return repositories{}, nil, fmt.Errorf("seed memory store: %w", err)
		}
		logger.Warn("using in-memory store; data is lost on exit")
		return repositories{
			campaigns: store.Campaigns(),
			ledger:    store.Ledger(),
			users:     store.Users(),
			tx:        store,
		}, func() {}, nil
	}

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return repositories{}, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("database connection: %w", err)
	}

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, pool, cfg.Store.DemoUsers); err != nil {
			pool.Close()
			return repositories{}, nil, fmt.Errorf("seed database: %w", err)
		}
		logger.Info("demo data seeded")
	}

	return repositories{
		campaigns: postgres.NewCampaignRepository(pool),
		ledger:    postgres.NewLedgerRepository(pool),
		users:     postgres.NewUserRepository(pool),
		tx:        postgres.NewTransactor(pool, cfg.Psql.LockTimeout),
	}, pool.Close, nil
}

func newRewardClient(cfg config.Config, logger *slog.Logger) (port.RewardClient, func(), error) {
	switch cfg.Reward.ModeName() {
	case configs.RewardModeHTTP:
		return reward.NewHTTPClient(cfg.Reward.BaseURL), func() {}, nil
	case configs.RewardModeAMQP:
		producer, err := rabbitmq.NewProducer(cfg.RabbitMQ.URL, rabbitmq.Topology{
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			Queue:      cfg.RabbitMQ.Queue,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("rabbitmq producer: %w", err)
		}
		return producer, producer.Close, nil
	default:
		return reward.NewLogClient(logger), func() {}, nil
	}
}
