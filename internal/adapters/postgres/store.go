// Package postgres implements the order store over a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raza10006/orderdesk/internal/order"
)

// The identifier column type varies between deployments (text vs bigint),
// so the textual form compares against a cast and the numeric form
// compares natively.
const (
	queryByText    = `SELECT * FROM orders WHERE order_id::text = $1 LIMIT 1`
	queryByNumeric = `SELECT * FROM orders WHERE order_id = $1 LIMIT 1`
)

// querier is the slice of the pool the store actually uses; tests stand in
// for it without a live database.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store fetches raw order rows from Postgres. The pool is created once and
// shared across concurrent requests; all access is read-only.
type Store struct {
	pool *pgxpool.Pool
	db   querier
}

// New connects a pool to the given DSN.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect order database: %w", err)
	}
	return &Store{pool: pool, db: pool}, nil
}

// NewFromPool wraps an existing pool.
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// FetchOrder returns the raw row for id, order.ErrOrderNotFound when no row
// matches, or a transient failure wrapped in order.ErrUnavailable.
func (s *Store) FetchOrder(ctx context.Context, id any) (order.RawRecord, error) {
	query := queryByText
	switch id.(type) {
	case int64, int:
		query = queryByNumeric
	}

	rows, err := s.db.Query(ctx, query, id)
	if err != nil {
		return nil, classify(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, classify(err)
	}
	return toRawRecord(row), nil
}

// toRawRecord flattens driver-specific column values into plain Go types.
// NUMERIC columns decode to pgtype.Numeric rather than a float, which the
// normalizer would otherwise skip as unreadable.
func toRawRecord(row map[string]any) order.RawRecord {
	rec := make(order.RawRecord, len(row))
	for k, v := range row {
		switch n := v.(type) {
		case pgtype.Numeric:
			if f, err := n.Float64Value(); err == nil && f.Valid {
				rec[k] = f.Float64
			}
		default:
			rec[k] = v
		}
	}
	return rec
}

// Close releases the pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// classify tags transient connectivity failures with order.ErrUnavailable
// so the resolver retries them; terminal query errors pass through as-is.
func classify(err error) error {
	if isTransient(err) {
		return fmt.Errorf("%w: %v", order.ErrUnavailable, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
