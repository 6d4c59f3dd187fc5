package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "plotsort/internal/adapters/mcp"
	"plotsort/internal/bootstrap"
)

func main() {
	sourceFlag := flag.String("source", "", "default folder for tool calls that omit source_dir")
	configFlag := flag.String("config", "", "path to the config file")
	levelFlag := flag.String("log-level", "", "diagnostic log level (debug, info, warn, error)")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr
	env, err := bootstrap.Setup(bootstrap.Options{
		ConfigPath: *configFlag,
		LogLevel:   *levelFlag,
		LogOutput:  os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "plotsort-mcp: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()

	source := env.Config.SourceDir
	if *sourceFlag != "" {
		source = *sourceFlag
	}

	mcpServer := server.NewMCPServer(
		"plotsort-mcp",
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

	mcpadapter.RegisterTools(mcpServer, mcpadapter.Services{
		NewWorkspace:  env.NewWorkspace,
		Reader:        env.Reader,
		Locker:        env.Locker,
		History:       env.History,
		DefaultSource: source,
		Logger:        env.Logger,
	})

	env.Logger.Info().Str("source", source).Msg("serving MCP over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		env.Logger.Error().Err(err).Msg("server stopped")
		env.Close()
		os.Exit(1)
	}
}
