package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationName: имя сессии в pg_stat_activity.
const ApplicationName = "jersey-checkout"

// ErrEmptyDSN: источник каталога postgres выбран, а DSN не задан.
var ErrEmptyDSN = errors.New("postgres: empty dsn")

// PoolConfig: пул живёт только на время загрузки снимка каталога (и миграций),
// поэтому соединений нужно немного, а простаивать им незачем.
type PoolConfig struct {
	DSN              string
	MaxConns         int32         // 0: дефолт pgx
	StatementTimeout time.Duration // 0: без ограничения на стороне сервера
}

func (c PoolConfig) pgxConfig() (*pgxpool.Config, error) {
	if c.DSN == "" {
		return nil, ErrEmptyDSN
	}
	cfg, err := pgxpool.ParseConfig(c.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	if c.MaxConns > 0 {
		cfg.MaxConns = c.MaxConns
	}
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	rp := cfg.ConnConfig.RuntimeParams
	if _, ok := rp["application_name"]; !ok {
		rp["application_name"] = ApplicationName
	}
	if c.StatementTimeout > 0 {
		rp["statement_timeout"] = strconv.FormatInt(c.StatementTimeout.Milliseconds(), 10)
	}
	return cfg, nil
}

// NewPool: пул для каталога с Ping при создании (недоступная БД: ошибка старта).
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pc.pgxConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping %s: %w", cfg.ConnConfig.Host, err)
	}
	return pool, nil
}
