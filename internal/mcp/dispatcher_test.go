package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raza10006/orderdesk/internal/logging"
	"github.com/raza10006/orderdesk/internal/order"
)

// stubResolver returns a fixed outcome for every lookup.
type stubResolver struct {
	order *order.Order
	err   error
}

func (s *stubResolver) Resolve(ctx context.Context, orderID string) (*order.Order, error) {
	return s.order, s.err
}

func newTestDispatcher(r Resolver) *Dispatcher {
	if r == nil {
		r = &stubResolver{order: &order.Order{
			OrderID:    "1005",
			Status:     order.StatusShipped,
			LastUpdate: "2025-03-28T15:04:00Z",
		}}
	}
	return NewDispatcher(r, WithLogger(logging.NewNop()))
}

func handle(t *testing.T, d *Dispatcher, body string) Response {
	t.Helper()
	return d.Handle(context.Background(), []byte(body))
}

func TestHandleParseError(t *testing.T) {
	d := newTestDispatcher(nil)
	resp := handle(t, d, `{not json`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.PARSE_ERROR, resp.Error.Code)
	assertNullID(t, resp)
}

func TestHandleMalformedEnvelopes(t *testing.T) {
	d := newTestDispatcher(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing jsonrpc", `{"id":1,"method":"ping"}`},
		{"wrong jsonrpc version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`},
		{"missing method", `{"jsonrpc":"2.0","id":1}`},
		{"object id", `{"jsonrpc":"2.0","id":{"a":1},"method":"ping"}`},
		{"array id", `{"jsonrpc":"2.0","id":[1],"method":"ping"}`},
		{"boolean id", `{"jsonrpc":"2.0","id":true,"method":"ping"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := handle(t, d, tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, mcp.INVALID_REQUEST, resp.Error.Code)
			assertNullID(t, resp)
		})
	}
}

func TestHandleEchoesRequestID(t *testing.T) {
	d := newTestDispatcher(nil)

	tests := []struct {
		name string
		id   string
	}{
		{"number id", `42`},
		{"string id", `"req-7"`},
		{"null id", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range []string{"initialize", "ping", "tools/list"} {
				resp := handle(t, d, `{"jsonrpc":"2.0","id":`+tt.id+`,"method":"`+method+`"}`)
				assert.Nil(t, resp.Error, "method %s", method)
				assert.JSONEq(t, tt.id, string(resp.ID), "method %s", method)
			}
		})
	}
}

func TestHandleMethodNotFound(t *testing.T) {
	d := newTestDispatcher(nil)
	resp := handle(t, d, `{"jsonrpc":"2.0","id":1,"method":"orders/destroy"}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.METHOD_NOT_FOUND, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "orders/destroy")
	assert.JSONEq(t, `1`, string(resp.ID))
}

func TestHandleInitialize(t *testing.T) {
	d := newTestDispatcher(nil)
	resp := handle(t, d, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"ignored":true}}`)

	require.Nil(t, resp.Error)
	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)

	var result struct {
		ProtocolVersion string `json:"protocolVersion"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
		Capabilities map[string]json.RawMessage `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(data, &result))

	assert.NotEmpty(t, result.ProtocolVersion)
	assert.Equal(t, "orderdesk", result.ServerInfo.Name)
	assert.NotEmpty(t, result.ServerInfo.Version)
	assert.Contains(t, result.Capabilities, "tools")
}

func TestHandlePing(t *testing.T) {
	d := newTestDispatcher(nil)
	resp := handle(t, d, `{"jsonrpc":"2.0","id":9,"method":"ping"}`)

	require.Nil(t, resp.Error)
	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestHandleToolsList(t *testing.T) {
	d := newTestDispatcher(nil)
	resp := handle(t, d, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(mcp.ListToolsResult)
	require.True(t, ok)
	require.Len(t, result.Tools, 1)

	tool := result.Tools[0]
	assert.Equal(t, "lookup_order", tool.Name)
	assert.NotEmpty(t, tool.Description)
	assert.Contains(t, tool.InputSchema.Properties, "order_id")
	assert.Contains(t, tool.InputSchema.Required, "order_id")
}

func TestResponseMarshalsNullID(t *testing.T) {
	d := newTestDispatcher(nil)
	resp := handle(t, d, `{"jsonrpc":"2.0"}`)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":null`)
}

func assertNullID(t *testing.T, resp Response) {
	t.Helper()
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	v, present := decoded["id"]
	assert.True(t, present, "id must be present in error envelopes")
	assert.Nil(t, v)
}
