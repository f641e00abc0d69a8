package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Client encapsula el pool de conexiones. Cada operación lógica adquiere
// y libera su propia sesión; fuera de una transacción las sentencias se
// ejecutan con semántica auto-commit.
type Client struct {
	pool *pgxpool.Pool
}

// DatabaseConfig reúne los parámetros de conexión cargados desde
// db.properties más los ajustes de pool tomados del entorno.
type DatabaseConfig struct {
	URL      string
	User     string
	Password string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

func NewClient(config *DatabaseConfig) (*Client, error) {
	poolConfig, err := pgxpool.ParseConfig(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	// Las credenciales de db.properties tienen prioridad sobre las de la URL.
	if config.User != "" {
		poolConfig.ConnConfig.User = config.User
	}
	if config.Password != "" {
		poolConfig.ConnConfig.Password = config.Password
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = config.MinConns
	poolConfig.MaxConnLifetime = config.MaxConnLifetime
	poolConfig.MaxConnIdleTime = config.MaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	client := &Client{pool: pool}

	if err := client.Ping(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("database pool is nil")
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for ping: %w", err)
	}
	defer conn.Release()

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

func (c *Client) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return c.pool.Query(ctx, sql, args...)
}

func (c *Client) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return c.pool.QueryRow(ctx, sql, args...)
}

func (c *Client) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return c.pool.Exec(ctx, sql, args...)
}

func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	stats := c.Stats()

	if stats.TotalConns() == 0 {
		return fmt.Errorf("no database connections available")
	}

	if stats.IdleConns() == 0 && stats.AcquiredConns() >= stats.MaxConns() {
		return fmt.Errorf("database connection pool exhausted")
	}

	return c.Ping(ctx)
}
