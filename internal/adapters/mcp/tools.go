package mcp

import (
	"context"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"photocat/internal/application"
)

// Tools serves one catalog session to MCP tool handlers. Handlers may be
// called concurrently and the catalog is not, so every call holds mu.
type Tools struct {
	mu      sync.Mutex
	session *application.Session
}

// NewTools wraps a session for the MCP server
func NewTools(session *application.Session) *Tools {
	return &Tools{session: session}
}

// Register adds the read and write tools to the server
func Register(s *server.MCPServer, t *Tools) {
	RegisterReadTools(s, t)
	RegisterWriteTools(s, t)
}

func (t *Tools) locked(h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t.mu.Lock()
		defer t.mu.Unlock()
		return h(ctx, req)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
