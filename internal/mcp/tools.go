package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"

	"github.com/raza10006/orderdesk/internal/order"
)

const toolLookupOrder = "lookup_order"

// lookupOrderTool describes the single entry of the tool catalog.
func lookupOrderTool() mcp.Tool {
	return mcp.NewTool(toolLookupOrder,
		mcp.WithDescription("Look up the current status of a customer order by its order ID. "+
			"Returns the order status, delivery estimate, carrier and tracking details."),
		mcp.WithString("order_id",
			mcp.Required(),
			mcp.Description("The customer's order identifier, e.g. \"1005\" or \"ORD-1005\"."),
		),
	)
}

// callParams is the tools/call parameter shape.
type callParams struct {
	Name      string         `mapstructure:"name"`
	Arguments map[string]any `mapstructure:"arguments"`
}

func (d *Dispatcher) handleToolsCall(ctx context.Context, req Request) Response {
	params, rpcErr := decodeCallParams(req.Params)
	if rpcErr != nil {
		return Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	if params.Name != toolLookupOrder {
		return failure(req.ID, mcp.INVALID_PARAMS, fmt.Sprintf("unknown tool: %s", params.Name))
	}

	orderID, ok := params.Arguments["order_id"].(string)
	if !ok || strings.TrimSpace(orderID) == "" {
		return failure(req.ID, mcp.INVALID_PARAMS, "order_id must be a non-empty string")
	}

	o, err := d.resolver.Resolve(ctx, orderID)
	if err != nil {
		return failure(req.ID, lookupErrorCode(err), lookupErrorMessage(orderID, err))
	}

	result := mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(order.Summary(o))},
		StructuredContent: structuredOrder(o),
	}
	return success(req.ID, result)
}

func decodeCallParams(raw json.RawMessage) (callParams, *Error) {
	invalid := &Error{Code: mcp.INVALID_PARAMS, Message: "params must be an object with a tool name and arguments"}
	if len(raw) == 0 {
		return callParams{}, invalid
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return callParams{}, invalid
	}
	var params callParams
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &params,
		ErrorUnused: false,
	})
	if err != nil || decoder.Decode(m) != nil {
		return callParams{}, invalid
	}
	if params.Name == "" {
		return callParams{}, invalid
	}
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}
	return params, nil
}

// lookupErrorCode maps resolver outcomes onto the protocol taxonomy. A
// malformed record is an internal fault, not a miss: the record existed.
func lookupErrorCode(err error) int {
	if errors.Is(err, order.ErrOrderNotFound) {
		return CodeOrderNotFound
	}
	return mcp.INTERNAL_ERROR
}

// lookupErrorMessage keeps client-facing messages sanitized: no DSNs, no
// driver diagnostics. The full cause goes to the log, not the wire.
func lookupErrorMessage(orderID string, err error) string {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return fmt.Sprintf("order %q not found", orderID)
	case errors.Is(err, order.ErrMalformedRecord):
		return "order record is malformed"
	case errors.Is(err, order.ErrUnavailable):
		return "order data source is unreachable"
	default:
		return "order lookup failed"
	}
}

// structuredOrder is the machine-readable half of a tool result: the core
// fields always, issue_flag and notes only when present.
func structuredOrder(o *order.Order) map[string]any {
	m := map[string]any{
		"order_id":        o.OrderID,
		"status":          o.Status,
		"eta":             nullable(o.ETA),
		"carrier":         nullable(o.Carrier),
		"tracking_number": nullable(o.TrackingNumber),
		"last_update":     o.LastUpdate,
	}
	if o.IssueFlag != "" {
		m["issue_flag"] = o.IssueFlag
	}
	if o.Notes != "" {
		m["notes"] = o.Notes
	}
	return m
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
