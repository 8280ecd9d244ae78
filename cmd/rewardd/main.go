// Command rewardd forwards reward commands from RabbitMQ to the point API.
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

	"ad-rewards/internal/adapter/rabbitmq"
	"ad-rewards/internal/adapter/reward"
	"ad-rewards/internal/config"
	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.Log.New(os.Stdout, "rewardd").With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.URL, rabbitmq.Topology{
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		Queue:      cfg.RabbitMQ.Queue,
	}, cfg.Reward.Workers, logger)
	if err != nil {
		logger.Error("rabbitmq consumer error", slog.Any("error", err))
		os.Exit(1)
	}
	defer consumer.Close()

	client := reward.NewHTTPClient(cfg.Reward.BaseURL)
	handle := func(ctx context.Context, cmd domain.RewardCommand) error {
		callCtx, cancel := context.WithTimeout(ctx, cfg.Reward.CallTimeout)
		defer cancel()
		if err := client.Reward(callCtx, cmd); err != nil {
			metrics.RecordRewardDispatch("failure")
			return err
		}
		metrics.RecordRewardDispatch("success")
		return nil
	}

	if cfg.Reward.MetricsPort != 0 {
		msrv := newMetricsServer(fmt.Sprintf(":%d", cfg.Reward.MetricsPort))
		go func() {
			logger.Info("metrics listening", slog.Int("port", int(cfg.Reward.MetricsPort)))
			if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", slog.Any("error", err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			_ = msrv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("consuming reward commands", slog.String("queue", cfg.RabbitMQ.Queue))
	if err = consumer.Run(ctx, handle); err != nil {
		logger.Error("consumer stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("consumer stopped")
}
