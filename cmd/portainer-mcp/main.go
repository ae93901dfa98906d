// Command portainer-mcp exposes Docker management on a Portainer endpoint
// as MCP tools.
//
// With no subcommand it serves MCP on the configured transport:
//
//	portainer-mcp                       stdio (default)
//	portainer-mcp serve --transport streamable-http --port 8080
//	portainer-mcp tools                 print the tool catalog as JSON
//	portainer-mcp call system_info      one-shot tool call
//	portainer-mcp probe --url http://localhost:8080/mcp
//
// Configuration is layered: defaults, YAML file (--config or
// PORTAINER_MCP_CONFIG), then environment variables such as
// PORTAINER_URL, PORTAINER_API_KEY and PORTAINER_ENDPOINT_ID.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
		} else {
			slog.Error("portainer-mcp failed", "error", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := serveCmd()

	root := &cobra.Command{
		Use:           "portainer-mcp",
		Short:         "MCP server for Docker management through Portainer",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	// The root command doubles as serve, so it accepts serve's flags too.
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, toolsCmd(), callCmd(), probeCmd())
	return root
}

// exitError carries a non-zero exit status without extra logging.
type exitError struct {
	msg string
}

func (e *exitError) Error() string { return e.msg }

func fail(format string, args ...any) error {
	return &exitError{msg: fmt.Sprintf(format, args...)}
}
