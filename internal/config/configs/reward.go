package configs

import (
	"strings"
	"time"
)

// Reward modes.
const (
	RewardModeLog  = "log"
	RewardModeHTTP = "http"
	RewardModeAMQP = "amqp"
)

// Reward configures disbursement of points for committed joins.
type Reward struct {
	// Mode selects the RewardClient: log, http or amqp.
	Mode string `env:"MODE" envDefault:"log"`
	// BaseURL is the point API root used by the http mode and by rewardd.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8090"`

	Workers     int           `env:"WORKERS" envDefault:"4"`
	QueueSize   int           `env:"QUEUE_SIZE" envDefault:"1024"`
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"3s"`
	// RatePerSecond paces outbound calls. Zero means unlimited.
	RatePerSecond float64 `env:"RATE_PER_SECOND" envDefault:"0"`
	// MetricsPort is where rewardd serves /metrics. Zero disables it.
	MetricsPort uint16 `env:"METRICS_PORT" envDefault:"9091"`
}

// ModeName normalises Mode. Unknown values fall back to log.
func (c Reward) ModeName() string {
	switch m := strings.ToLower(c.Mode); m {
	case RewardModeHTTP, RewardModeAMQP:
		return m
	default:
		return RewardModeLog
	}
}
