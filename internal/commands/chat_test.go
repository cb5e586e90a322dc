package commands

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ideaforge-backend/internal/assistant"
	"ideaforge-backend/internal/llm/llmtest"
)

func newTestChat(input string, model *llmtest.Model) (*chatSession, *bytes.Buffer, *[]string) {
	var out bytes.Buffer
	copied := []string{}
	c := &chatSession{
		gen:   assistant.NewGenerator(model, "test-model", nil),
		in:    strings.NewReader(input),
		out:   &out,
		width: 80,
		copy: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	}
	return c, &out, &copied
}

func TestChatSession_ExchangesAndCopies(t *testing.T) {
	model := llmtest.New(llmtest.Text("Idea one"), llmtest.Text("Idea two"))
	c, out, copied := newTestChat("five ideas\nmore please\n/copy\n/exit\n", model)

	require.NoError(t, c.run(context.Background()))

	assert.Equal(t, 2, c.transcript.Len())
	turns := c.transcript.Turns()
	assert.Equal(t, "five ideas", turns[0].User)
	assert.Equal(t, "Idea two", turns[1].Assistant)
	assert.Equal(t, []string{"Idea two"}, *copied)
	assert.Contains(t, out.String(), "Idea one")
	assert.Contains(t, out.String(), "Copied to clipboard")

	reqs := model.Requests()
	require.Len(t, reqs, 2)
	assert.Contains(t, reqs[1].Prompt, "User: five ideas\nAssistant: Idea one\n")
}

func TestChatSession_ClearForgetsHistory(t *testing.T) {
	model := llmtest.New(llmtest.Text("first"), llmtest.Text("second"))
	c, out, _ := newTestChat("hello\n/clear\nagain\n", model)

	require.NoError(t, c.run(context.Background()))

	assert.Equal(t, 1, c.transcript.Len())
	assert.Contains(t, out.String(), "Conversation cleared.")
	reqs := model.Requests()
	require.Len(t, reqs, 2)
	assert.NotContains(t, reqs[1].Prompt, "hello")
}

func TestChatSession_Commands(t *testing.T) {
	c, out, copied := newTestChat("/copy\n/history\n/nope\n\n/help\n", llmtest.New())

	require.NoError(t, c.run(context.Background()))

	assert.Empty(t, *copied)
	s := out.String()
	assert.Contains(t, s, "Nothing to copy yet.")
	assert.Contains(t, s, "No messages yet.")
	assert.Contains(t, s, "Unknown command /nope")
	assert.Contains(t, s, "/clear  /history  /copy  /exit")
}

func TestChatSession_CopyFailure(t *testing.T) {
	c, out, _ := newTestChat("hi\n/copy\n", llmtest.New(llmtest.Text("answer")))
	c.copy = func(string) error { return errors.New("no clipboard") }

	require.NoError(t, c.run(context.Background()))
	assert.Contains(t, out.String(), "Failed to copy to clipboard: no clipboard")
}

func TestChatSession_FallbackShownAndRecorded(t *testing.T) {
	model := llmtest.New(llmtest.Fail(errors.New("HTTP 429 Too Many Requests")))
	c, out, _ := newTestChat("ideas\n/history\n", model)

	require.NoError(t, c.run(context.Background()))

	quota := assistant.DefaultPrompts().Messages.RateLimited
	assert.Contains(t, out.String(), quota)
	require.Equal(t, 1, c.transcript.Len())
	assert.Equal(t, quota, c.transcript.Turns()[0].Assistant)
}

func TestRunAsk(t *testing.T) {
	model := llmtest.New(llmtest.Text("  Bakery names  "))
	gen := assistant.NewGenerator(model, "test-model", nil)
	var out bytes.Buffer

	require.NoError(t, runAsk(context.Background(), gen, " names for a bakery \n", &out, false, 80))
	assert.Equal(t, "Bakery names\n", out.String())

	reqs := model.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, strings.HasSuffix(reqs[0].Prompt, "User: names for a bakery\nAssistant:"))
}

func TestRunAsk_EmptyMessage(t *testing.T) {
	gen := assistant.NewGenerator(llmtest.New(), "test-model", nil)
	err := runAsk(context.Background(), gen, "  \n", &bytes.Buffer{}, false, 80)
	assert.Error(t, err)
}

func TestFormatReply_PlainText(t *testing.T) {
	reply := assistant.Reply{Text: "**bold**", Outcome: assistant.OutcomeReply}
	assert.Equal(t, "**bold**", formatReply(reply, false, 80))

	notice := assistant.Reply{Text: "quota", Outcome: assistant.OutcomeRateLimited}
	assert.Contains(t, formatReply(notice, false, 80), "quota")
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestFormatReply_Markdown(t *testing.T) {
	reply := assistant.Reply{Text: "**Bakery names**\n\n- Crumb & Co", Outcome: assistant.OutcomeReply}
	got := ansiEscape.ReplaceAllString(formatReply(reply, true, 200), "")

	assert.Contains(t, got, "Bakery")
	assert.Contains(t, got, "Crumb")
	assert.NotContains(t, got, "**")
}
