package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"photocat/internal/adapters/report"
	"photocat/internal/application/commands"
)

// RegisterWriteTools adds all catalog-changing tools to the MCP server.
// Every successful change is saved before the tool returns.
func RegisterWriteTools(s *server.MCPServer, t *Tools) {
	s.AddTool(addTool(), t.locked(t.addHandler))
	s.AddTool(removeTool(), t.locked(t.removeHandler))
	s.AddTool(addKeywordTool(), t.locked(t.addKeywordHandler))
	s.AddTool(removeKeywordTool(), t.locked(t.removeKeywordHandler))
	s.AddTool(findDuplicatesTool(), t.locked(t.findDuplicatesHandler))
	s.AddTool(scanTool(), t.locked(t.scanHandler))
}

// saved saves the session and returns text, or the save error
func (t *Tools) saved(ctx context.Context, text string) (*mcp.CallToolResult, error) {
	if _, err := t.session.Save(ctx); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(text), nil
}

// --- add ---

func addTool() mcp.Tool {
	return mcp.NewTool("add",
		mcp.WithDescription("Add an image file to the catalog, or every image in a directory. Files already cataloged are updated."),
		mcp.WithString("path",
			mcp.Description("File or directory path"),
			mcp.Required(),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories"),
		),
	)
}

func (t *Tools) addHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	recursive := req.GetBool("recursive", false)

	res, err := commands.NewAddCommand(t.session, path, recursive).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return t.saved(ctx, report.Add(res))
}

// --- remove ---

func removeTool() mcp.Tool {
	return mcp.NewTool("remove",
		mcp.WithDescription("Remove a file, or every file in a directory, from the catalog. Files on disk are not touched."),
		mcp.WithString("target",
			mcp.Description("#id, file path or directory"),
			mcp.Required(),
		),
	)
}

func (t *Tools) removeHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := req.GetString("target", "")

	res, err := commands.NewRemoveCommand(t.session, target).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return t.saved(ctx, res.Message)
}

// --- add_keyword ---

func addKeywordTool() mcp.Tool {
	return mcp.NewTool("add_keyword",
		mcp.WithDescription("Tag a file, or every file in a directory, with a keyword. Keywords are case-insensitive."),
		mcp.WithString("keyword",
			mcp.Description("Keyword to add"),
			mcp.Required(),
		),
		mcp.WithString("target",
			mcp.Description("#id, file path or directory"),
			mcp.Required(),
		),
	)
}

func (t *Tools) addKeywordHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kw := req.GetString("keyword", "")
	target := req.GetString("target", "")

	res, err := commands.NewAddKeywordCommand(t.session, kw, target).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return t.saved(ctx, res.Message)
}

// --- remove_keyword ---

func removeKeywordTool() mcp.Tool {
	return mcp.NewTool("remove_keyword",
		mcp.WithDescription("Remove a keyword from a file, or from every file in a directory."),
		mcp.WithString("keyword",
			mcp.Description("Keyword to remove"),
			mcp.Required(),
		),
		mcp.WithString("target",
			mcp.Description("#id, file path or directory"),
			mcp.Required(),
		),
	)
}

func (t *Tools) removeKeywordHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kw := req.GetString("keyword", "")
	target := req.GetString("target", "")

	res, err := commands.NewRemoveKeywordCommand(t.session, kw, target).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return t.saved(ctx, res.Message)
}

// --- find_duplicates ---

func findDuplicatesTool() mcp.Tool {
	return mcp.NewTool("find_duplicates",
		mcp.WithDescription("Compare potential duplicates byte by byte and mark confirmed copies with the DUP keyword."),
		mcp.WithString("target",
			mcp.Description("#id, file path or directory to limit the check to. Omit to check every potential duplicate."),
		),
	)
}

func (t *Tools) findDuplicatesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := req.GetString("target", "")

	res, err := commands.NewDuplicatesCommand(t.session, target).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return t.saved(ctx, report.Duplicates(res, t.session.Catalog()))
}

// --- scan ---

func scanTool() mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("Rescan cataloged directories: mark missing files DELETED and modified files CHANGED, and add new images."),
		mcp.WithString("target",
			mcp.Description("#id, file path or directory to limit the scan to. Omit to scan everything."),
		),
	)
}

func (t *Tools) scanHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := req.GetString("target", "")

	res, err := commands.NewScanCommand(t.session, target).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return t.saved(ctx, report.Scan(res))
}
