package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ymatsuda/auth-service/internal/logger"
)

func NewDB(dsn string, debug bool) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB DSN")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// sensible pool defaults
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(60 * time.Minute)

	// verify connectivity early (fail fast)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if debug {
		var who, dbname string
		_ = db.QueryRowContext(ctx, "SELECT current_user").Scan(&who)
		_ = db.QueryRowContext(ctx, "SELECT current_database()").Scan(&dbname)
		logger.Logger.Debug().Str("user", who).Str("db", dbname).Msg("db connected")
	}

	return db, nil
}
