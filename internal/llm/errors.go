package llm

import (
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// rateLimitMarker is matched against the error text when no status code is
// available from the transport.
const rateLimitMarker = "429"

// TransportError wraps any failure of the remote call (network, auth, quota).
// Error returns the cause text unchanged so callers can show it verbatim.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		if e.Op == "" {
			return "transport error"
		}
		return "transport error: " + e.Op
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err, recording the HTTP status when the client
// library exposes one.
func NewTransportError(op string, err error) *TransportError {
	te := &TransportError{Op: op, Err: err}
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		te.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		te.StatusCode = reqErr.HTTPStatusCode
	}
	return te
}

// IsRateLimited reports whether err is a quota or rate limit failure. A
// recorded 429 status wins; otherwise the error text is searched for "429".
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) && te.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(err.Error(), rateLimitMarker)
}
