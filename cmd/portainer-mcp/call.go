package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Invoke one tool and print its text result",
		Long: `Invoke one tool through the same dispatcher the MCP server uses.
Arguments are a JSON object; pass "-" to read them from stdin.`,
		Example: `  portainer-mcp call list_containers '{"all":false}'
  portainer-mcp call container_action '{"container_id":"web","action":"restart"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var raw json.RawMessage
			if len(args) == 2 {
				raw, err = readArgs(cmd.InOrStdin(), args[1])
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runCall(ctx, cmd.OutOrStdout(), buildRegistry(cfg), args[0], raw)
		},
	}
}

func readArgs(stdin io.Reader, arg string) (json.RawMessage, error) {
	if arg != "-" {
		return json.RawMessage(arg), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading arguments from stdin: %w", err)
	}
	return data, nil
}

// runCall executes one tool call and prints the result. Failures are
// printed as "error <code>: <message>" and reported as exitError.
func runCall(ctx context.Context, out io.Writer, exec tools.Executor, name string, args json.RawMessage) error {
	result, err := exec.Execute(ctx, tools.ToolCall{Name: name, Arguments: args})
	if err != nil {
		te, ok := api.AsToolError(err)
		if !ok {
			te = api.NewInternalError(err.Error())
		}
		return fail("error %d: %s", te.Code, te.Message)
	}
	_, err = fmt.Fprintln(out, result.Text())
	return err
}
