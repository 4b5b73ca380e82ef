package mcp

import (
	"bytes"
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docmigrate/internal/adapters/console"
	"docmigrate/internal/application/commands"
)

// RegisterWriteTools adds the tools that modify the workspace.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(migrateTool(), migrateHandler(svc))
}

// --- migrate ---

func migrateTool() mcp.Tool {
	return mcp.NewTool("migrate",
		mcp.WithDescription("Migrate every source document into the target root and return the progress report. Runs as a dry run unless dry_run is false."),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would happen without writing anything"),
			mcp.DefaultBool(true),
		),
	)
}

func migrateHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dryRun := req.GetBool("dry_run", true)

		var out bytes.Buffer
		cmd := commands.NewMigrateCommand(svc.Store, svc.Dates, console.NewReporter(&out), svc.Layout, svc.Log, dryRun)
		if svc.Ledger != nil {
			cmd.WithLedger(svc.Ledger)
		}

		if _, err := cmd.Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(out.String()), nil
	}
}
