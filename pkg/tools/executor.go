package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Executor runs tool calls and lists the tools it can run. The dispatcher
// in pkg/tools/registry is the production implementation.
type Executor interface {
	// Tools returns the descriptors of all callable tools, in a stable order.
	Tools() []Descriptor

	// Execute runs one call. A returned error is always an *api.ToolError.
	Execute(ctx context.Context, call ToolCall) (*ToolResult, error)
}

// Descriptor is the listable shape of a tool.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// ToolCall is a single tool invocation.
type ToolCall struct {
	// ID identifies the call in logs. The dispatcher assigns one if empty.
	ID string

	// Name is the tool name.
	Name string

	// Arguments is the JSON object of arguments. Empty means no arguments.
	Arguments json.RawMessage
}

// ContentTypeText is the only content type tools produce.
const ContentTypeText = "text"

// Content is one block of tool output.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the output of a successful tool call.
type ToolResult struct {
	Content []Content `json:"content"`

	// Warning marks a result that refused to act, such as a destructive
	// action submitted without confirmation. It is still a success.
	Warning bool `json:"-"`
}

// TextResult returns a result holding a single text block.
func TextResult(text string) *ToolResult {
	return &ToolResult{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// WarningResult returns a text result flagged as a warning.
func WarningResult(text string) *ToolResult {
	r := TextResult(text)
	r.Warning = true
	return r
}

// Text concatenates the text blocks of r.
func (r *ToolResult) Text() string {
	if r == nil {
		return ""
	}
	if len(r.Content) == 1 {
		return r.Content[0].Text
	}
	texts := make([]string, len(r.Content))
	for i, c := range r.Content {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n")
}
