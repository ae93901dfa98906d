// Package api defines the error taxonomy shared by the dispatcher, the
// tool handlers, and the MCP transport.
//
// Every failed tool call surfaces as exactly one [ToolError] carrying a
// JSON-RPC code and a message. Kinds:
//   - misconfigured: the Portainer API key is absent
//   - method_not_found: the tool name is not registered
//   - invalid_params: arguments are malformed or out of range
//   - remote_api: Portainer answered with a non-2xx status (status and body embedded)
//   - transport: Portainer could not be reached
//   - internal: a handler panicked or a response could not be decoded
//
// A withheld confirmation is not an error; see package tools.
//
// The package has no external dependencies and performs no I/O.
package api
