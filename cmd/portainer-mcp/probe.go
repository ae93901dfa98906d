package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/mcpclient"
)

func probeCmd() *cobra.Command {
	var (
		cfg     mcpclient.Config
		call    string
		args    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Connect to a running HTTP bridge and list or call its tools",
		Example: `  portainer-mcp probe --url http://localhost:8080/mcp
  portainer-mcp probe --url http://localhost:8080/sse --transport sse --call system_info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.BearerToken == "" {
				cfg.BearerToken = os.Getenv("PORTAINER_MCP_TOKEN")
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			client := mcpclient.New(cfg)
			if err := client.Connect(ctx); err != nil {
				return err
			}
			defer client.Close()

			if call != "" {
				result, err := client.CallTool(ctx, call, json.RawMessage(args))
				if err != nil {
					return fail("%s: %v", call, err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text())
				return err
			}

			list, err := client.ListTools(ctx)
			if err != nil {
				return err
			}
			for _, t := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", t.Name, t.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.URL, "url", "http://localhost:8080/mcp", "MCP endpoint URL")
	cmd.Flags().StringVar(&cfg.Transport, "transport", "streamable-http", "streamable-http or sse")
	cmd.Flags().StringVar(&cfg.BearerToken, "token", "", "bearer token (default $PORTAINER_MCP_TOKEN)")
	cmd.Flags().StringVar(&call, "call", "", "tool to call instead of listing")
	cmd.Flags().StringVar(&args, "args", "", "JSON arguments for --call")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")
	return cmd
}
