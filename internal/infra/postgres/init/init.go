package infra_pg_init

import (
	"fmt"
	"log"
	"time"

	"github.com/humanbelnik/matchpoint/core/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Every request path does at most a handful of short indexed queries,
// so a small pool is plenty.
const (
	maxOpenConns    = 25
	connMaxIdleTime = 5 * time.Minute
)

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("postgres connect failed: %v", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	return db
}
