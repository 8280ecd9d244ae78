package configs

import "time"

// HTTP defines configuration for the HTTP server.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// JoinRatePerSecond throttles join requests per user. Zero disables
	// the throttle.
	JoinRatePerSecond float64 `env:"JOIN_RATE_PER_SECOND" envDefault:"5"`
	JoinBurst         int     `env:"JOIN_BURST" envDefault:"10"`
}
