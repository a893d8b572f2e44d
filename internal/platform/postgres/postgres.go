package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pool bounds the connections the storefront keeps open against PostgreSQL.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// DefaultPool suits a single API replica.
var DefaultPool = Pool{MaxOpen: 20, MaxIdle: 5, MaxLifetime: 30 * time.Minute}

// PoolFromEnv overrides DefaultPool with POSTGRES_MAX_OPEN_CONNS, POSTGRES_MAX_IDLE_CONNS
// and POSTGRES_CONN_MAX_LIFETIME_MINUTES when they hold positive integers.
func PoolFromEnv() Pool {
	pool := DefaultPool
	if n, ok := envInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		pool.MaxOpen = n
	}
	if n, ok := envInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		pool.MaxIdle = n
	}
	if n, ok := envInt("POSTGRES_CONN_MAX_LIFETIME_MINUTES"); ok {
		pool.MaxLifetime = time.Duration(n) * time.Minute
	}
	return pool
}

// Connect opens dsn through GORM with driver errors translated, so unique
// violations surface as gorm.ErrDuplicatedKey, then pings within five seconds.
func Connect(ctx context.Context, dsn string, pool Pool) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpen)
	sqlDB.SetMaxIdleConns(pool.MaxIdle)
	sqlDB.SetConnMaxLifetime(pool.MaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv dials POSTGRES_DSN and returns the DB plus a cleanup function.
// A missing DSN or a failed dial yields nil, which callers treat as "use the in-memory ledger".
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() {}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, catalog and orders stay in memory")
		return nil, noop
	}
	pool := PoolFromEnv()
	db, err := Connect(ctx, dsn, pool)
	if err != nil {
		logger.Warn("postgres unreachable, catalog and orders stay in memory", slog.String("error", err.Error()))
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("postgres handle unavailable, catalog and orders stay in memory", slog.String("error", err.Error()))
		return nil, noop
	}
	logger.Info("postgres connected", slog.Int("max_open_conns", pool.MaxOpen))
	return db, func() { _ = sqlDB.Close() }
}

func envInt(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
