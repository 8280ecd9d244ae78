package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-rewards/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, configs.StoreDriverPostgres, cfg.Store.DriverName())
	assert.Equal(t, 3*time.Second, cfg.Psql.LockTimeout)
	assert.Equal(t, 3*time.Second, cfg.Store.LockTimeout)
	assert.Equal(t, "localhost:5432", cfg.Psql.Addr.Host)
	assert.Equal(t, configs.RewardModeLog, cfg.Reward.ModeName())
	assert.Equal(t, 4, cfg.Reward.Workers)
	assert.Equal(t, uint16(9091), cfg.Reward.MetricsPort)
	assert.Equal(t, "rewards", cfg.RabbitMQ.Exchange)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "text", cfg.Log.SlogFormat())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("HTTP_JOIN_RATE_PER_SECOND", "0")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PSQL_ADDRESS", "postgres://u:p@db:5432/rewards?sslmode=disable")
	t.Setenv("PSQL_LOCK_TIMEOUT", "750ms")
	t.Setenv("STORE_LOCK_TIMEOUT", "250ms")
	t.Setenv("REWARD_METRICS_PORT", "0")
	t.Setenv("PSQL_MAX_CONNS", "20")
	t.Setenv("REWARD_MODE", "amqp")
	t.Setenv("REWARD_RATE_PER_SECOND", "12.5")
	t.Setenv("RABBITMQ_QUEUE", "points")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, uint16(9000), cfg.HTTP.Port)
	assert.Zero(t, cfg.HTTP.JoinRatePerSecond)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, configs.StoreDriverMemory, cfg.Store.DriverName())
	assert.Equal(t, "db:5432", cfg.Psql.Addr.Host)
	assert.Equal(t, 750*time.Millisecond, cfg.Psql.LockTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.LockTimeout)
	assert.Zero(t, cfg.Reward.MetricsPort)
	assert.Equal(t, int32(20), cfg.Psql.MaxConns)
	assert.Equal(t, configs.RewardModeAMQP, cfg.Reward.ModeName())
	assert.InDelta(t, 12.5, cfg.Reward.RatePerSecond, 1e-9)
	assert.Equal(t, "points", cfg.RabbitMQ.Queue)
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestUnknownModesFallBack(t *testing.T) {
	assert.Equal(t, configs.RewardModeLog, configs.Reward{Mode: "carrier-pigeon"}.ModeName())
	assert.Equal(t, configs.StoreDriverPostgres, configs.Store{Driver: "mysql"}.DriverName())
	assert.Equal(t, slog.LevelWarn, configs.Logger{Level: "warning"}.SlogLevel())
}

func TestLoggerNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := configs.Logger{Level: "info", Format: "json"}.New(&buf, "campaign-api")

	logger.Debug("hidden")
	logger.Info("visible", slog.Int64("campaign_id", 3))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"service":"campaign-api"`)
	assert.Contains(t, out, `"campaign_id":3`)
}
