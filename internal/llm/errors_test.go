package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestNewTransportErrorStatus(t *testing.T) {
	apiErr := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "quota"}
	te := NewTransportError("chat completion", fmt.Errorf("wrapped: %w", apiErr))
	assert.Equal(t, http.StatusTooManyRequests, te.StatusCode)
	assert.ErrorIs(t, te, apiErr)

	reqErr := &openai.RequestError{HTTPStatusCode: http.StatusUnauthorized, Err: errors.New("bad key")}
	te = NewTransportError("chat completion", reqErr)
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)

	te = NewTransportError("chat completion", errors.New("dial tcp: connection refused"))
	assert.Zero(t, te.StatusCode)
	assert.Equal(t, "dial tcp: connection refused", te.Error())
}

func TestTransportErrorWithoutCause(t *testing.T) {
	assert.Equal(t, "transport error", (&TransportError{}).Error())
	assert.Equal(t, "transport error: generate", (&TransportError{Op: "generate"}).Error())
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"status code", &TransportError{StatusCode: http.StatusTooManyRequests, Err: errors.New("slow down")}, true},
		{"marker in text", NewTransportError("x", errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")), true},
		{"plain error with marker", errors.New("HTTP 429"), true},
		{"other status", &TransportError{StatusCode: http.StatusForbidden, Err: errors.New("denied")}, false},
		{"generic", NewTransportError("x", errors.New("timeout")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}
