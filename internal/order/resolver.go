package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"syscall"
	"time"
)

const maxFetchAttempts = 3

// Store fetches a single raw row by identifier. The id is either the
// original lookup string or its parsed int64 form (see the mixed-type
// identifier shim in Resolve). Implementations return ErrOrderNotFound for a
// definitive miss and wrap transient connectivity failures in
// ErrUnavailable; anything else is treated as a terminal query error.
type Store interface {
	FetchOrder(ctx context.Context, id any) (RawRecord, error)
}

// Resolver turns an order identifier into a canonical order, retrying
// transient data-source failures with linear backoff before giving up.
type Resolver struct {
	store   Store
	log     *slog.Logger
	backoff time.Duration
	onRetry func(attempt int)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithBackoffUnit overrides the base backoff unit (default 1s). The wait
// before attempt N+1 is unit×N.
func WithBackoffUnit(unit time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.backoff = unit
	}
}

// WithRetryHook registers a callback fired once per retried attempt,
// used to feed the retry counter metric without coupling this package to
// the metrics registry.
func WithRetryHook(fn func(attempt int)) ResolverOption {
	return func(r *Resolver) {
		r.onRetry = fn
	}
}

// NewResolver builds a resolver over the given store.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:   store,
		log:     slog.Default(),
		backoff: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches and normalizes the order identified by orderID.
//
// Outcomes are a strict tri-state: a canonical order, ErrOrderNotFound, or a
// terminal failure. A miss is returned immediately without retrying;
// transient connectivity failures are retried up to maxFetchAttempts with
// linear backoff (unit, 2×unit) honoring ctx cancellation during the wait.
func (r *Resolver) Resolve(ctx context.Context, orderID string) (*Order, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		rec, err := r.fetch(ctx, orderID)
		if err == nil {
			return Normalize(rec)
		}
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		lastErr = err
		if !transient(err) {
			return nil, fmt.Errorf("order lookup query failed: %w", err)
		}
		if attempt == maxFetchAttempts {
			break
		}
		r.log.Warn("transient data source failure, retrying",
			"order_id", orderID, "attempt", attempt, "err", err)
		if r.onRetry != nil {
			r.onRetry(attempt)
		}
		if err := r.wait(ctx, attempt); err != nil {
			return nil, fmt.Errorf("order lookup aborted: %w", err)
		}
	}
	return nil, fmt.Errorf("data source unreachable after %d attempts: %w", maxFetchAttempts, lastErr)
}

// fetch queries by the textual identifier and, when the identifier parses
// fully as an integer, falls back to the numeric form. The orders table's
// identifier column type differs between deployments; this is a
// compatibility shim, not a business rule.
func (r *Resolver) fetch(ctx context.Context, orderID string) (RawRecord, error) {
	rec, err := r.store.FetchOrder(ctx, orderID)
	if !errors.Is(err, ErrOrderNotFound) {
		return rec, err
	}
	if n, perr := strconv.ParseInt(orderID, 10, 64); perr == nil {
		return r.store.FetchOrder(ctx, n)
	}
	return nil, err
}

// wait blocks for backoff×attempt without stalling other requests; a
// canceled context cuts the wait short.
func (r *Resolver) wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.backoff * time.Duration(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// transient reports whether err is a retryable connectivity failure as
// opposed to a terminal query error. Store adapters normally pre-classify
// with ErrUnavailable; the raw network checks cover errors that escape the
// adapter untagged.
func transient(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
