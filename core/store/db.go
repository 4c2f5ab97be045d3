package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"citracker/config"
	"citracker/core/utils"
)

// NewDB opens the upstream incident database. Postgres is the production
// backend; sqlite serves tests and local development.
func NewDB(cfg *config.AppConfig, logger *utils.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.DBDriver {
	case "postgres", "":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("db url is required for the postgres driver")
		}
		db, err = sql.Open("pgx", cfg.DBURL)
	case "sqlite":
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("db path is required for the sqlite driver")
		}
		db, err = sql.Open("sqlite", cfg.DBPath)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Printf("database connected (driver=%s)", cfg.DBDriver)
	return db, nil
}
