package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ideaforge-backend/internal/assistant"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a single message and print the reply",
	Long: `Send a single message and print the reply. Without arguments the
message is read from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		if message == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			message = string(data)
		}
		cfg := loadConfig()
		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()
		}
		tty := isStdoutTTY()
		return runAsk(ctx, gen, message, os.Stdout, tty, getTerminalWidth())
	},
}

func runAsk(ctx context.Context, gen *assistant.Generator, message string, out io.Writer, markdown bool, width int) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("message is required")
	}
	reply := gen.Generate(ctx, assistant.Transcript{}, message)
	if markdown {
		fmt.Fprintln(out, assistantLabelStyle.Render(assistantLabel))
	}
	fmt.Fprintln(out, formatReply(reply, markdown, width-4))
	return nil
}
