package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// CodeOrderNotFound is the application-specific JSON-RPC error code for a
// lookup that definitively matched no record. It lives outside the reserved
// -32768..-32000 range used by the standard codes so clients can branch on
// "order missing" versus protocol or server faults.
const CodeOrderNotFound = -32004

// Request is an inbound JSON-RPC 2.0 envelope. The id is kept raw: it may be
// a string, a number or null, and must be echoed back byte-for-byte.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Response is an outbound JSON-RPC 2.0 envelope. Exactly one of Result and
// Error is set. A nil ID marshals as null, which is what the protocol
// requires when the request id could not be trusted.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

func success(id json.RawMessage, result any) Response {
	return Response{JSONRPC: "2.0", ID: id, Result: result}
}

func failure(id json.RawMessage, code int, message string) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
}

// invalidRequest always answers with a null id: when the envelope itself is
// malformed the id cannot be trusted.
func invalidRequest(message string) Response {
	return failure(nil, mcp.INVALID_REQUEST, message)
}

// validID reports whether a raw id is a string, a number or null. An absent
// id is treated like null. Objects, arrays and booleans are rejected.
func validID(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v.(type) {
	case nil, string, float64:
		return true
	default:
		return false
	}
}
