package common

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/server"
	"github.com/teemow/taskmanager/internal/tasks"
)

func knownTool(name string) bool {
	_, ok := tasks.OperationByTool(name)
	return ok
}

// InstrumentedToolHandler wraps a tool handler with a span, tool metrics and
// an audit record. Metrics and audit logging are skipped when the server
// context has none configured.
//
// Usage:
//
//	s.AddTool(tool, common.InstrumentedToolHandler("get_task", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	label := instrumentation.ToolLabel(toolName, knownTool)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		var attrs []attribute.KeyValue
		taskID, hasTaskID := TaskIDFromArgs(args)
		if hasTaskID {
			attrs = append(attrs, instrumentation.TaskIDAttr(taskID))
		}
		ctx, span := instrumentation.StartToolSpan(ctx, label, attrs...)
		defer span.End()

		invocation := instrumentation.NewToolInvocation(label).
			WithArguments(args).
			WithSpanContext(ctx)
		if op, ok := tasks.OperationByTool(toolName); ok {
			invocation.WithOperation(op.Name, taskID)
		}

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		switch {
		case err != nil:
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			resultErr := errors.New(resultText(result))
			invocation.CompleteWithError(resultErr)
			instrumentation.SetSpanError(span, resultErr)
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordToolInvocation(ctx, label, invocation.Status(), duration)
		}
		sc.AuditLogger().LogToolInvocation(invocation)

		return result, err
	}
}

// resultText returns the first text content of a tool result.
func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			return tc.Text
		}
	}
	return "tool returned an error"
}
