package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// Call outcome labels.
const (
	statusSuccess = "success"
	statusWarning = "warning"
	statusError   = "error"
	statusPanic   = "panic"
)

var (
	toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portainer_mcp_tool_calls_total",
			Help: "Total tool calls by outcome",
		},
		[]string{"tool", "status"},
	)

	toolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portainer_mcp_tool_call_duration_seconds",
			Help:    "Tool call duration",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(toolCalls, toolCallDuration)
}

func withCallID(call tools.ToolCall) tools.ToolCall {
	if call.ID == "" {
		call.ID = "call_" + uuid.NewString()
	}
	return call
}

// runProvider executes the call and converts a panic into an internal error.
func runProvider(ctx context.Context, p Provider, call tools.ToolCall) (result *tools.ToolResult, panicked bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("tool handler panicked",
				"provider", p.Name(),
				"tool", call.Name,
				"call_id", call.ID,
				"panic", rec,
			)
			result = nil
			err = api.NewInternalError(fmt.Sprintf("tool %q panicked", call.Name))
			panicked = true
		}
	}()
	result, err = p.Execute(ctx, call)
	return result, false, err
}

// finishCall records metrics and the completion log line for one call.
func finishCall(call tools.ToolCall, provider string, start time.Time, result *tools.ToolResult, err error, panicked bool) {
	duration := time.Since(start)

	status := statusSuccess
	switch {
	case panicked:
		status = statusPanic
	case err != nil:
		status = statusError
	case result != nil && result.Warning:
		status = statusWarning
	}

	// Unknown names are folded into one label to bound cardinality.
	label := call.Name
	if provider == "" {
		label = "unknown"
	}
	toolCalls.WithLabelValues(label, status).Inc()
	toolCallDuration.WithLabelValues(label).Observe(duration.Seconds())

	attrs := []any{
		"tool", call.Name,
		"call_id", call.ID,
		"duration", duration,
		"status", status,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
		slog.Warn("tool call failed", attrs...)
		return
	}
	slog.Info("tool call completed", attrs...)
}
