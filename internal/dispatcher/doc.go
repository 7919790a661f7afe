// Package dispatcher is the protocol-facing layer of the capability
// server. It answers exactly two operations against the frozen
// registry: discovery (list every capability descriptor) and
// invocation (run one handler by name). All failure paths are
// translated into the api.InvocationError vocabulary at this boundary;
// nothing below it (validation errors, upstream errors, panics) ever
// reaches a caller unclassified.
//
// The Server type binds a Dispatcher to an MCP transport (stdio, SSE,
// or streamable HTTP) using mark3labs/mcp-go, registering one MCP tool
// per capability.
package dispatcher
