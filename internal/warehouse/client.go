// Package warehouse is the analytics warehouse client. It owns every
// SQL statement in the service and converts rows into the typed
// projections in internal/models at this boundary; callers never see
// raw rows.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/snowflakedb/gosnowflake"

	"github.com/phantom-air/irops/internal/config"
	"github.com/phantom-air/irops/internal/logging"
)

// ErrUnavailable wraps any query or connection failure. It is retryable
// by callers; the client itself performs no automatic retry and never
// substitutes fabricated data.
var ErrUnavailable = errors.New("warehouse unavailable")

// Client is a connection to the analytics warehouse. It implements
// recovery.CandidateSource, recovery.Resolver, ops.Querier, and
// narrative.Completer's backing query.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// Open connects to the warehouse. When a session token file exists
// (container deployments) OAuth is used; otherwise password auth.
func Open(cfg config.WarehouseConfig) (*Client, error) {
	sfCfg := &gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
	}

	if token := readSessionToken(cfg.TokenPath); token != "" {
		sfCfg.Authenticator = gosnowflake.AuthTypeOAuth
		sfCfg.Token = token
		sfCfg.Host = cfg.Host
	} else {
		sfCfg.Password = cfg.Password
	}

	dsn, err := gosnowflake.DSN(sfCfg)
	if err != nil {
		return nil, fmt.Errorf("building warehouse DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse connection: %w", err)
	}

	return &Client{db: db, log: logging.New("warehouse")}, nil
}

// readSessionToken returns the mounted OAuth token, or "" outside the
// managed container environment.
func readSessionToken(path string) string {
	if path == "" {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Ping verifies the connection is usable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close closes the warehouse connection.
func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		c.log.Error("query failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rows, nil
}

func (c *Client) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, q, args...)
}

func (c *Client) exec(ctx context.Context, q string, args ...any) error {
	if _, err := c.db.ExecContext(ctx, q, args...); err != nil {
		c.log.Error("exec failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func wrapScan(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
