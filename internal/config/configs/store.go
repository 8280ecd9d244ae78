package configs

import (
	"strings"
	"time"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Store selects the persistence backend. The memory driver keeps all data
// in process and seeds demo data; it is meant for local runs.
type Store struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
	// DemoUsers is the number of users the memory driver seeds.
	DemoUsers int `env:"DEMO_USERS" envDefault:"10"`
	// LockTimeout bounds how long a memory-driver join waits for a campaign
	// lock. The postgres driver uses Postgres.LockTimeout instead.
	LockTimeout time.Duration `env:"LOCK_TIMEOUT" envDefault:"3s"`
}

// DriverName normalises Driver. Unknown values fall back to postgres.
func (c Store) DriverName() string {
	switch strings.ToLower(c.Driver) {
	case StoreDriverMemory:
		return StoreDriverMemory
	default:
		return StoreDriverPostgres
	}
}
