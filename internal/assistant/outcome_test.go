package assistant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagesRender(t *testing.T) {
	m := DefaultPrompts().Messages
	cause := errors.New("connection reset")

	assert.Equal(t, "⚠️ I couldn't generate a response. Try simplifying the request.", m.Render(OutcomeEmpty, nil))
	assert.Equal(t, "🚦 Gemini quota / rate limit reached. Try again later or use a different key.", m.Render(OutcomeRateLimited, cause))
	assert.Equal(t, "⚠️ Error calling Gemini: connection reset", m.Render(OutcomeError, cause))
	assert.Equal(t, "⚠️ Error calling Gemini: ", m.Render(OutcomeError, nil))
	assert.Empty(t, m.Render(OutcomeReply, nil))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "reply", OutcomeReply.String())
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "rate_limited", OutcomeRateLimited.String())
	assert.Equal(t, "error", OutcomeError.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
