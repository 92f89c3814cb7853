// Package mcp implements the JSON-RPC 2.0 dispatcher for the orderdesk MCP
// surface: envelope validation, method routing, the tool catalog and the
// translation of lookup outcomes into protocol error codes. Every failure
// path ends in a well-formed error envelope; nothing escapes as a fault.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/raza10006/orderdesk"
	"github.com/raza10006/orderdesk/internal/observability"
	"github.com/raza10006/orderdesk/internal/order"
)

// Resolver is the lookup engine the dispatcher delegates tool calls to.
type Resolver interface {
	Resolve(ctx context.Context, orderID string) (*order.Order, error)
}

// Dispatcher validates inbound envelopes and routes them to the four
// supported methods. It is safe for concurrent use.
type Dispatcher struct {
	resolver Resolver
	log      *slog.Logger
	metrics  *observability.Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithMetrics attaches request instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher builds a dispatcher over the given resolver.
func NewDispatcher(resolver Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one raw request body and always returns a response
// envelope. Unparsable bodies yield ParseError and malformed envelopes
// InvalidRequest, both with a null id since the request id cannot be
// trusted at that point.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) Response {
	started := time.Now()

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		d.metrics.ObserveRequest("_malformed", "parse_error", time.Since(started))
		return failure(nil, mcp.PARSE_ERROR, "parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" || !validID(req.ID) {
		d.metrics.ObserveRequest("_malformed", "invalid_request", time.Since(started))
		return invalidRequest("invalid request")
	}

	resp := d.route(ctx, req)

	outcome := "ok"
	if resp.Error != nil {
		outcome = strconv.Itoa(resp.Error.Code)
		d.log.Warn("rpc request failed",
			"method", req.Method, "code", resp.Error.Code,
			"latency_ms", time.Since(started).Milliseconds())
	} else {
		d.log.Info("rpc request served",
			"method", req.Method,
			"latency_ms", time.Since(started).Milliseconds())
	}
	d.metrics.ObserveRequest(req.Method, outcome, time.Since(started))
	return resp
}

func (d *Dispatcher) route(ctx context.Context, req Request) Response {
	switch req.Method {
	case "initialize":
		return success(req.ID, d.initializeResult())
	case "ping":
		return success(req.ID, map[string]any{})
	case "tools/list":
		return success(req.ID, mcp.ListToolsResult{Tools: []mcp.Tool{lookupOrderTool()}})
	case "tools/call":
		return d.handleToolsCall(ctx, req)
	default:
		return failure(req.ID, mcp.METHOD_NOT_FOUND, fmt.Sprintf("method not found: %s", req.Method))
	}
}

// initializeResult is the fixed handshake descriptor; request params are
// deliberately ignored.
func (d *Dispatcher) initializeResult() mcp.InitializeResult {
	return mcp.InitializeResult{
		ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
		Capabilities: mcp.ServerCapabilities{
			Tools: &struct {
				ListChanged bool `json:"listChanged,omitempty"`
			}{},
		},
		ServerInfo: mcp.Implementation{
			Name:    orderdesk.ServerName,
			Version: orderdesk.Version,
		},
	}
}
