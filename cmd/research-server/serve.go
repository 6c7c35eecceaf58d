// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-server/internal/httpserver"
	"github.com/pdiddy/research-server/internal/mcpserver"
	"github.com/pdiddy/research-server/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Serve runs the research MCP server. With the stdio transport (the
default) the protocol runs over stdin and stdout and all logs go to stderr.
With the http transport the server listens on --addr and serves:

  GET /          status message
  /mcp           MCP streamable HTTP endpoint
  GET /metrics   Prometheus metrics (when enabled)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("transport", "", "transport: stdio or http (default stdio)")
	serveCmd.Flags().String("addr", "", "listen address for the http transport (default :8000)")
	serveCmd.Flags().Bool("stateless", false, "serve HTTP requests without persistent MCP sessions")

	_ = viper.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport"))
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.stateless", serveCmd.Flags().Lookup("stateless"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, cfg.Server.Transport == types.TransportHTTP)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcpserver.New(a.service, version, a.metrics, a.log)

	a.log.Info().
		Str("transport", cfg.Server.Transport).
		Str("papers_dir", cfg.PapersDir).
		Str("version", version).
		Msg("starting research server")

	switch cfg.Server.Transport {
	case types.TransportHTTP:
		var gatherer prometheus.Gatherer
		if a.registry != nil {
			gatherer = a.registry
		}
		return httpserver.New(cfg.Server, cfg.Metrics, server, gatherer, a.log).Run(ctx)
	default:
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return fmt.Errorf("serving stdio: %w", err)
		}
		return nil
	}
}

// commandContext returns the command context, or a background context when
// the command runs outside Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
