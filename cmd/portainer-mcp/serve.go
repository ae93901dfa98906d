package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/config"
	transporthttp "github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/transport/http"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/transport/mcpserver"
)

const instructions = "Docker management through Portainer. Destructive operations " +
	"(container stop/remove, create_container, deploy_stack) return a warning " +
	"unless called with confirm=true."

func serveCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP on stdio, streamable HTTP or SSE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Server.Transport = transport
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "stdio, streamable-http or sse (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP listen port (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	reg := buildRegistry(cfg)
	server := mcpserver.New(reg, mcpserver.Options{
		Name:         "portainer-mcp",
		Version:      version,
		Instructions: instructions,
	})

	slog.Info("portainer-mcp starting",
		"transport", cfg.Server.Transport,
		"portainer_url", cfg.Portainer.URL,
		"endpoint_id", cfg.Portainer.EndpointID,
		"tools", len(reg.Tools()),
	)

	if cfg.Server.Transport == config.TransportStdio {
		return mcpserver.ServeStdio(ctx, server)
	}

	authenticator, err := buildAuth(cfg)
	if err != nil {
		return err
	}
	opts := mcpserver.HTTPOptions{
		Auth:      authenticator,
		EnableSSE: cfg.Server.Transport == config.TransportSSE,
	}
	if cfg.Observability.Metrics.Enabled {
		opts.MetricsPath = cfg.Observability.Metrics.Path
	}

	srv := transporthttp.NewServer(mcpserver.HTTPHandler(server, opts),
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithLogger(slog.Default()),
	)
	return srv.Run(ctx)
}
