// Package tools defines the tool call contract shared by the dispatcher,
// the Docker tool handlers, and the MCP binding.
//
// A Descriptor is the static, listable shape of a tool. A ToolCall is one
// invocation and a ToolResult is its text output. The package also holds
// the destructive-action predicate used to gate mutating tools, and the
// disabled-tools filter.
//
// This package depends only on pkg/api and the JSON Schema types.
package tools
