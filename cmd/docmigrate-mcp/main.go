package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docmigrate/internal/adapters/filesystem"
	"docmigrate/internal/adapters/git"
	"docmigrate/internal/adapters/markdown"
	mcpadapter "docmigrate/internal/adapters/mcp"
	"docmigrate/internal/adapters/sqlite"
	"docmigrate/internal/config"
	"docmigrate/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "config file (default: discovered .docmigrate.toml)")
	flag.Parse()

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "docmigrate-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Stdout carries the protocol, so diagnostics go to stderr
	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	store := filesystem.NewStore(log)
	svc := mcpadapter.Services{
		Store:     store,
		Dates:     git.NewDateResolver(git.WithTimeout(cfg.GitTimeoutDuration()), git.WithLogger(log)),
		Extractor: markdown.NewExtractor(),
		Layout:    cfg.Layout(),
		Log:       log,
	}

	if cfg.Ledger.Enabled {
		ledger, err := sqlite.Open(cfg.Ledger.Path, cfg.Workspace)
		if err != nil {
			log.WithError(err).Warn("migration ledger unavailable, history tools disabled")
		} else {
			defer ledger.Close()
			svc.Ledger = ledger
		}
	}

	mcpServer := server.NewMCPServer(
		"docmigrate-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	log.WithField("workspace", cfg.Workspace).Info("serving MCP over stdio")
	return server.ServeStdio(mcpServer)
}
