// Package mcp exposes the migration pipeline as MCP tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"docmigrate/internal/application/commands"
	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// Services are the collaborators shared by every tool
type Services struct {
	Store     ports.DocumentStore
	Dates     ports.DateResolver
	Extractor ports.LinkExtractor
	Ledger    ports.MigrationLedger // Nil when the ledger is disabled
	Layout    domain.Layout
	Log       logrus.FieldLogger
}

// RegisterReadTools adds all tools that never modify the workspace.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(planTool(), planHandler(svc))
	s.AddTool(normalizeTool(), normalizeHandler())
	s.AddTool(rewriteTool(), rewriteHandler(svc))
	s.AddTool(checkLinksTool(), checkLinksHandler(svc))
	s.AddTool(historyTool(), historyHandler(svc))
	s.AddTool(locateTool(), locateHandler(svc))
}

// --- plan ---

func planTool() mcp.Tool {
	return mcp.NewTool("plan",
		mcp.WithDescription("Compute the migration mapping of every source document without touching the filesystem."),
		mcp.WithString("repository",
			mcp.Description("Only show mappings from this source repository. Omit for all."),
		),
	)
}

func planHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		repository := req.GetString("repository", "")

		result, err := commands.NewPlanCommand(svc.Store, svc.Dates, svc.Layout, svc.Log).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, m := range result.Plan.Mappings {
			if repository != "" && m.Source.Repository != repository {
				continue
			}
			fmt.Fprintf(&sb, "%s -> %s\n", m.OldPath, m.NewPath)
		}
		for _, loc := range result.Plan.Skipped {
			if repository != "" && loc.Repository != repository {
				continue
			}
			fmt.Fprintf(&sb, "skipped %s/%s\n", loc.Repository, loc.RelPath)
		}

		if sb.Len() == 0 {
			return mcp.NewToolResultText("No documents found."), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- normalize_filename ---

func normalizeTool() mcp.Tool {
	return mcp.NewTool("normalize_filename",
		mcp.WithDescription("Return the canonical YYYYMMDD_snake_case name of a markup filename."),
		mcp.WithString("filename",
			mcp.Description("Bare filename, e.g. 001-bug-report.md"),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("Date prefix in YYYYMMDD form. Defaults to today."),
		),
	)
}

func normalizeHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewNormalizeCommand(req.GetString("filename", ""), req.GetString("date", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Normalized), nil
	}
}

// --- rewrite_document ---

func rewriteTool() mcp.Tool {
	return mcp.NewTool("rewrite_document",
		mcp.WithDescription("Rewrite the references of a document as the migration would, using the current plan."),
		mcp.WithString("repository",
			mcp.Description("Source repository the document comes from"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Document text"),
			mcp.Required(),
		),
	)
}

func rewriteHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		planned, err := commands.NewPlanCommand(svc.Store, svc.Dates, svc.Layout, svc.Log).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewRewriteCommand(planned.Plan, svc.Layout, req.GetString("repository", ""), req.GetString("content", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Content), nil
	}
}

// --- check_links ---

func checkLinksTool() mcp.Tool {
	return mcp.NewTool("check_links",
		mcp.WithDescription("Report relative document links in the target root that do not resolve."),
	)
}

func checkLinksHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCheckLinksCommand(svc.Store, svc.Extractor, svc.Layout).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Broken) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("%d links in %d documents, none broken.", result.Links, result.Documents)), nil
		}

		var sb strings.Builder
		for _, b := range result.Broken {
			fmt.Fprintf(&sb, "%s:%d: %s\n", b.File, b.Line, b.Target)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recorded migration runs, or the mappings of one run."),
		mcp.WithNumber("run_id",
			mcp.Description("Run to show. Omit to list runs, newest first."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to list"),
		),
	)
}

func historyHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewHistoryCommand(svc.Ledger, int64(req.GetInt("run_id", 0)), req.GetInt("limit", 20))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if result.Run != nil {
			return formatEntities(result.Mappings, formatMapping)
		}
		return formatEntities(result.Runs, formatRun)
	}
}

// --- locate ---

func locateTool() mcp.Tool {
	return mcp.NewTool("locate",
		mcp.WithDescription("Find where documents with an original filename were migrated to."),
		mcp.WithString("filename",
			mcp.Description("Original filename, e.g. 001-foo.md"),
			mcp.Required(),
		),
	)
}

func locateHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewLocateCommand(svc.Ledger, req.GetString("filename", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(result.Entries, formatEntry)
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

func formatRun(r domain.RunRecord) string {
	return fmt.Sprintf("%d  %s  %d files  %s", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.FileCount, r.Target)
}

func formatMapping(m domain.FileMapping) string {
	return fmt.Sprintf("%s -> %s", m.OldPath, m.NewPath)
}

func formatEntry(e domain.LedgerEntry) string {
	return fmt.Sprintf("run %d  %s -> %s", e.RunID, e.Mapping.OldPath, e.Mapping.NewPath)
}
