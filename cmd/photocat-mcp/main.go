package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	mcpadapter "photocat/internal/adapters/mcp"
	"photocat/internal/application"
	"photocat/internal/config"
	"photocat/internal/logging"
	"photocat/internal/setup"
)

func main() {
	configFlag := flag.String("config", "", "config file")
	dbFlag := flag.String("db", "", "catalog file (overrides the config)")
	resetFlag := flag.Bool("reset", false, "start with an empty catalog if the catalog file is corrupt")
	flag.Parse()

	cfg, err := loadConfig(*configFlag, *dbFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photocat-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr
	log := logging.NewLogger(cfg.LogLevel, os.Stderr).With().Str("component", "photocat-mcp").Logger()

	mcpServer, session, err := newServer(context.Background(), cfg, *resetFlag, log)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DB).Msg("failed to open catalog")
	}
	defer session.Close()

	log.Info().Str("db", cfg.DB).Int("files", session.Catalog().Len()).Msg("serving catalog over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error().Err(err).Msg("server stopped")
		session.Close()
		os.Exit(1)
	}
}

func loadConfig(file, db string) (*config.Config, error) {
	v := config.New()
	if db != "" {
		v.Set("db", db)
	}
	return config.Load(v, file)
}

func newServer(ctx context.Context, cfg *config.Config, reset bool, log zerolog.Logger) (*server.MCPServer, *application.Session, error) {
	session, err := setup.OpenSession(ctx, cfg, reset, log)
	if err != nil {
		return nil, nil, err
	}

	mcpServer := server.NewMCPServer(
		"photocat-mcp",
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

	mcpadapter.Register(mcpServer, mcpadapter.NewTools(session))
	return mcpServer, session, nil
}
