package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"ideaforge-backend/internal/assistant"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Long: `Start an interactive chat in the terminal.

Commands inside the chat:
  /clear    Forget the conversation so far
  /history  Show the conversation so far
  /copy     Copy the last reply to the clipboard
  /exit     Leave the chat`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		tty := isStdoutTTY()
		c := &chatSession{
			gen:      gen,
			in:       os.Stdin,
			out:      os.Stdout,
			markdown: tty,
			width:    getTerminalWidth(),
			timeout:  cfg.RequestTimeout,
			copy:     clipboard.WriteAll,
		}
		return c.run(cmd.Context())
	},
}

// chatSession owns the transcript of one terminal conversation.
type chatSession struct {
	gen        *assistant.Generator
	in         io.Reader
	out        io.Writer
	markdown   bool
	width      int
	timeout    time.Duration
	copy       func(string) error
	transcript assistant.Transcript
}

func (c *chatSession) run(ctx context.Context) error {
	fmt.Fprintf(c.out, "%s %s\n", assistantLabelStyle.Render(assistantLabel), hintStyle.Render("model "+c.gen.ModelName()+", /help for commands"))
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(c.out, userLabelStyle.Render(userLabel+" › "))
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if done := c.command(line); done {
				return nil
			}
			continue
		}
		c.send(ctx, line)
	}
}

// command handles a slash command and reports whether the chat should end.
func (c *chatSession) command(line string) bool {
	switch strings.ToLower(line) {
	case "/exit", "/quit":
		return true
	case "/clear":
		c.transcript = assistant.Transcript{}
		fmt.Fprintln(c.out, hintStyle.Render("Conversation cleared."))
	case "/history":
		turns := c.transcript.Turns()
		if len(turns) == 0 {
			fmt.Fprintln(c.out, hintStyle.Render("No messages yet."))
		}
		for _, t := range turns {
			fmt.Fprintf(c.out, "%s %s\n%s %s\n", userLabelStyle.Render(userLabel+":"), t.User, assistantLabelStyle.Render(assistantLabel+":"), t.Assistant)
		}
	case "/copy":
		turns := c.transcript.Recent(1)
		if len(turns) == 0 {
			fmt.Fprintln(c.out, hintStyle.Render("Nothing to copy yet."))
			break
		}
		if err := c.copy(turns[0].Assistant); err != nil {
			fmt.Fprintln(c.out, noticeStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
			break
		}
		fmt.Fprintln(c.out, hintStyle.Render("✓ Copied to clipboard"))
	case "/help":
		fmt.Fprintln(c.out, hintStyle.Render("/clear  /history  /copy  /exit"))
	default:
		fmt.Fprintln(c.out, noticeStyle.Render("Unknown command "+line+", try /help"))
	}
	return false
}

func (c *chatSession) send(ctx context.Context, message string) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	var reply assistant.Reply
	c.transcript, reply = c.gen.Exchange(ctx, c.transcript, message)
	fmt.Fprintln(c.out, assistantLabelStyle.Render(assistantLabel))
	fmt.Fprintln(c.out, formatReply(reply, c.markdown, c.width-4))
}
