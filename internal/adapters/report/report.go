// Package report renders catalog data as text for the CLI, the shell and MCP,
// and exports snapshots as text, YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"photocat/internal/application/commands"
	"photocat/internal/catalog"
	"photocat/internal/domain"
)

// EntryLine renders one entry as a list row
func EntryLine(e *catalog.Entry) string {
	return row(e.ID(), e.FullPath(), e.Timestamp(), e.Size(), e.Keywords())
}

func row(id domain.EntryID, path, ts string, size int64, keywords []string) string {
	line := fmt.Sprintf("%-6s %s  %s  %s", id, path, ts, humanize.IBytes(uint64(size)))
	if len(keywords) > 0 {
		line += "  [" + strings.Join(keywords, ", ") + "]"
	}
	return line
}

// List renders a list command result
func List(res *commands.ListResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", res.Title)

	if res.Keys != nil || res.Entries == nil {
		if len(res.Keys) == 0 {
			sb.WriteString("  (none)\n")
		}
		for _, k := range res.Keys {
			fmt.Fprintf(&sb, "  %s\n", k)
		}
		return sb.String()
	}

	if len(res.Entries) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, e := range res.Entries {
		fmt.Fprintf(&sb, "  %s\n", EntryLine(e))
	}
	return sb.String()
}

// Details renders every field of an entry
func Details(e *catalog.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", e.ID(), e.FullPath())
	field(&sb, "Directory", e.Location())
	field(&sb, "Name", e.Name())
	field(&sb, "Extension", e.Extension())
	field(&sb, "Timestamp", e.Timestamp())
	field(&sb, "Size", fmt.Sprintf("%s (%s bytes)", humanize.IBytes(uint64(e.Size())), humanize.Comma(e.Size())))
	field(&sb, "Checksum", fmt.Sprintf("%016x", e.Checksum()))
	field(&sb, "Keywords", joinOrDash(e.Keywords()))
	field(&sb, "Duplicates", idList(e.Duplicates()))
	field(&sb, "Potential", idList(e.PotentialDuplicates()))

	meta := e.Metadata()
	if len(meta) == 0 {
		field(&sb, "Metadata", "-")
		return sb.String()
	}
	sb.WriteString("  Metadata:\n")
	for _, m := range meta {
		fmt.Fprintf(&sb, "    %s\n", m)
	}
	return sb.String()
}

func field(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, "  %-11s %s\n", name+":", value)
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func idList(ids []domain.EntryID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return joinOrDash(parts)
}

// Stats renders the catalog counters
func Stats(s domain.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Files:                %s\n", humanize.Comma(int64(s.Files)))
	fmt.Fprintf(&sb, "Directories:          %s\n", humanize.Comma(int64(s.Directories)))
	fmt.Fprintf(&sb, "Keywords:             %s\n", humanize.Comma(int64(s.Keywords)))
	fmt.Fprintf(&sb, "Duplicates:           %s\n", humanize.Comma(int64(s.Duplicates)))
	fmt.Fprintf(&sb, "Potential duplicates: %s\n", humanize.Comma(int64(s.PotentialDuplicates)))
	return sb.String()
}

// Duplicates renders confirmed groups with their paths
func Duplicates(res *commands.DuplicatesResult, cat *catalog.Catalog) string {
	var sb strings.Builder
	sb.WriteString(res.Message)
	sb.WriteByte('\n')
	for i, group := range res.Groups {
		fmt.Fprintf(&sb, "Group %d:\n", i+1)
		for _, id := range group {
			e, err := cat.Entry(id)
			if err != nil {
				fmt.Fprintf(&sb, "  %s\n", id)
				continue
			}
			fmt.Fprintf(&sb, "  %s\n", EntryLine(e))
		}
	}
	return sb.String()
}

// Scan renders a scan result
func Scan(res *commands.ScanResult) string {
	var sb strings.Builder
	sb.WriteString(res.Message)
	sb.WriteByte('\n')
	section(&sb, "Deleted", res.Deleted)
	section(&sb, "Changed", res.Changed)
	section(&sb, "Restored", res.Restored)
	section(&sb, "Added", res.Added)
	for _, s := range res.Skipped {
		fmt.Fprintf(&sb, "Skipped %s: %s\n", s.Path, s.Reason)
	}
	return sb.String()
}

func section(sb *strings.Builder, title string, ids []domain.EntryID) {
	if len(ids) > 0 {
		fmt.Fprintf(sb, "%s: %s\n", title, idList(ids))
	}
}

// Add renders an add result
func Add(res *commands.AddResult) string {
	var sb strings.Builder
	sb.WriteString(res.Message)
	sb.WriteByte('\n')
	for _, s := range res.Skipped {
		fmt.Fprintf(&sb, "Skipped %s: %s\n", s.Path, s.Reason)
	}
	return sb.String()
}

// Search renders scored search results
func Search(results []commands.SearchResult) string {
	if len(results) == 0 {
		return "No results found.\n"
	}
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%4d  %s\n", r.Score, EntryLine(r.Entry))
	}
	return sb.String()
}

// Export writes a snapshot in the given format
func Export(w io.Writer, snap *domain.Snapshot, format string) error {
	switch format {
	case commands.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case commands.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case commands.FormatText:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Catalog %s, %d file(s), saved %s\n",
			snap.CatalogID, len(snap.Entries), snap.SavedAt.Format("2006-01-02 15:04:05"))
		for _, e := range snap.Entries {
			fmt.Fprintf(&sb, "%s\n", row(e.ID, e.FullPath, e.Timestamp, e.Size, e.Keywords))
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}
