package mapping

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Store records auction ids whose terminal outcome has already been
// reconciled. Once Put returns, Has reports true for the same key at least
// for the process lifetime; the db backends survive restarts.
type Store interface {
	Has(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string) error
}

// Config holds configuration for the processed-auctions store.
type Config struct {
	// Backend selects the store implementation (sqlite, mysql, redis).
	Backend string `mapstructure:"backend" default:"sqlite"`
	// Path is the database file for the sqlite backend.
	Path string `mapstructure:"path" default:"courier-mapping.db"`
	// Host is the server host for the mysql and redis backends.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the server port for the mysql and redis backends.
	Port int `mapstructure:"port" default:"0"`
	// User is the mysql user.
	User string `mapstructure:"user" default:"root"`
	// Password is the mysql or redis password.
	Password string `mapstructure:"password" default:""`
	// Name is the mysql database name, or the redis database number.
	Name string `mapstructure:"name" default:"courier"`
}

// New creates the Store selected by cfg.Backend.
func New(cfg Config, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "sqlite", "mysql":
		return newDBStore(cfg, logger)
	case "redis":
		return newRedisStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown mapping backend %q", cfg.Backend)
	}
}
