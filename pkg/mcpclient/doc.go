// Package mcpclient connects to a running MCP bridge over streamable HTTP
// or SSE and drives it the way an MCP host would: initialize, list tools,
// call tools. The portainer-mcp probe command and the end-to-end tests
// use it.
package mcpclient
