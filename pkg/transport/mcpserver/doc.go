// Package mcpserver binds a tools.Executor to the Model Context Protocol
// using github.com/modelcontextprotocol/go-sdk.
//
// Every enabled tool descriptor is registered as a raw MCP tool whose
// handler forwards to the executor. A receiving middleware runs the
// executor's preflight on tools/call before the SDK looks the tool up, so
// misconfiguration and unknown names surface with the bridge's own error
// codes. api.ToolError values are returned as JSON-RPC errors.
package mcpserver
