// Package orderdesk exposes order-status lookups to conversational agents
// through the Model Context Protocol (JSON-RPC 2.0).
//
// The heavy lifting lives under internal/: the protocol dispatcher
// (internal/mcp), the schema-normalizing resolution engine (internal/order)
// and the storage adapters (internal/adapters). This root package only pins
// the build identity shared by the CLI and the MCP handshake.
package orderdesk

// Version is the server version reported by the `initialize` handshake and
// the version subcommand.
const Version = "0.2.0"

// ServerName identifies this implementation to MCP clients.
const ServerName = "orderdesk"
