package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"photocat/internal/adapters/report"
	"photocat/internal/application/commands"
	"photocat/internal/catalog"
)

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, t *Tools) {
	s.AddTool(statsTool(), t.locked(t.statsHandler))
	s.AddTool(listTool(), t.locked(t.listHandler))
	s.AddTool(directoriesTool(), t.locked(t.directoriesHandler))
	s.AddTool(keywordsTool(), t.locked(t.keywordsHandler))
	s.AddTool(detailsTool(), t.locked(t.detailsHandler))
	s.AddTool(searchTool(), t.locked(t.searchHandler))
	s.AddTool(checkTool(), t.locked(t.checkHandler))
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Show catalog counters: files, directories, keywords, duplicates and potential duplicates."),
	)
}

func (t *Tools) statsHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := commands.NewStatsCommand(t.session).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(report.Stats(stats)), nil
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List cataloged files. Without arguments lists every file. The subject can be duplicates, potential, a #id, a file path or a directory. With 'by', lists the files whose index key equals the subject."),
		mcp.WithString("subject",
			mcp.Description("duplicates, potential, #id, file path, directory, or the key when 'by' is set"),
		),
		mcp.WithString("by",
			mcp.Description("Index to look the subject up in: path, dir, name, ext, date, size, checksum, keyword or tag"),
		),
	)
}

func (t *Tools) listHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject := req.GetString("subject", "")
	by := req.GetString("by", "")

	res, err := commands.NewListCommand(t.session, subject, by).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if res.Keys != nil {
		return formatEntities(res.Keys, func(k string) string { return k })
	}
	return formatEntities(res.Entries, report.EntryLine)
}

// --- directories ---

func directoriesTool() mcp.Tool {
	return mcp.NewTool("directories",
		mcp.WithDescription("List every directory that holds cataloged files."),
	)
}

func (t *Tools) directoriesHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return formatEntities(t.session.Catalog().Directories(), func(d string) string { return d })
}

// --- keywords ---

func keywordsTool() mcp.Tool {
	return mcp.NewTool("keywords",
		mcp.WithDescription("List every keyword in use with the number of files carrying it."),
	)
}

func (t *Tools) keywordsHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := t.session.Catalog()
	return formatEntities(cat.Keywords(), func(kw string) string {
		ids, err := cat.Find(catalog.ByKeyword, kw)
		if err != nil {
			return kw
		}
		return fmt.Sprintf("%s  %d", kw, ids.Len())
	})
}

// --- details ---

func detailsTool() mcp.Tool {
	return mcp.NewTool("details",
		mcp.WithDescription("Show every field of a cataloged file, or of each file in a directory."),
		mcp.WithString("target",
			mcp.Description("#id, file path or directory"),
			mcp.Required(),
		),
	)
}

func (t *Tools) detailsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := req.GetString("target", "")
	if target == "" {
		return toolError(fmt.Errorf("target is required"))
	}

	found, err := commands.NewDetailsCommand(t.session, target).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	var sb strings.Builder
	for _, e := range found {
		sb.WriteString(report.Details(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search file names, paths and keywords. Returns matching files, best first."),
		mcp.WithString("query",
			mcp.Description("Search query, at least 2 characters"),
			mcp.Required(),
		),
	)
}

func (t *Tools) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return toolError(fmt.Errorf("query is required"))
	}

	results, err := commands.NewSearchCommand(t.session, query).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}
	return mcp.NewToolResultText(report.Search(results)), nil
}

// --- check ---

func checkTool() mcp.Tool {
	return mcp.NewTool("check",
		mcp.WithDescription("Verify that the catalog indices agree with its entries."),
	)
}

func (t *Tools) checkHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := commands.NewCheckCommand(t.session).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if !res.OK {
		return mcp.NewToolResultError(res.Message), nil
	}
	return mcp.NewToolResultText(res.Message), nil
}
