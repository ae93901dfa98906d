package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
)

// wireError converts err to a JSON-RPC error carrying the ToolError code.
// Anything that is not a ToolError is reported as an internal error.
func wireError(err error) *jsonrpc.Error {
	if err == nil {
		return nil
	}
	te, ok := api.AsToolError(err)
	if !ok {
		te = api.NewInternalError(err.Error())
	}
	return &jsonrpc.Error{Code: te.Code, Message: te.Message}
}
