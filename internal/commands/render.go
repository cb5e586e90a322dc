package commands

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"ideaforge-backend/internal/assistant"
)

var (
	colorUser      = lipgloss.Color("#7aa2f7")
	colorAssistant = lipgloss.Color("#bb9af7")
	colorNotice    = lipgloss.Color("#e0af68")
	colorMuted     = lipgloss.Color("#565f89")

	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorUser)
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAssistant)
	noticeStyle         = lipgloss.NewStyle().Foreground(colorNotice)
	hintStyle           = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

const (
	userLabel      = "You"
	assistantLabel = "💡 IdeaForge"
)

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// renderMarkdown renders model output for the terminal. It falls back to the
// raw text if glamour cannot build a renderer.
func renderMarkdown(text string, width int) string {
	if width > 120 {
		width = 120
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// formatReply renders a reply for display. Fallback messages are shown as a
// notice rather than as markdown.
func formatReply(reply assistant.Reply, markdown bool, width int) string {
	if reply.Outcome != assistant.OutcomeReply {
		return noticeStyle.Render(reply.Text)
	}
	if !markdown {
		return reply.Text
	}
	return renderMarkdown(reply.Text, width)
}
