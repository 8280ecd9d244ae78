package config

import (
	"github.com/caarlos0/env/v11"

	"ad-rewards/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// Nested structs carry an envPrefix. See the configs package for defaults.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP configs.HTTP `envPrefix:"HTTP_"`

	Log configs.Logger `envPrefix:"LOG_"`

	Store configs.Store `envPrefix:"STORE_"`

	// Psql is only read when Store.Driver is postgres.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	Reward configs.Reward `envPrefix:"REWARD_"`

	// RabbitMQ is used by the amqp reward mode and by rewardd.
	RabbitMQ configs.RabbitMQ `envPrefix:"RABBITMQ_"`
}

// Load reads configuration from environment variables into a Config.
// Unset variables take their envDefault.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
