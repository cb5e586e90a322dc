// Package llmtest provides a scripted llm.Model for tests.
package llmtest

import (
	"context"
	"sync"

	"ideaforge-backend/internal/llm"
)

// Step is one scripted response.
type Step struct {
	Envelope llm.Envelope
	Err      error
}

// Text returns a step answering with a single candidate.
func Text(s string) Step {
	return Step{Envelope: llm.CandidatesEnvelope(llm.TextCandidate(s))}
}

// Empty returns a step answering with an unrecognized envelope.
func Empty() Step {
	return Step{}
}

// Fail returns a step failing with a transport error wrapping err.
func Fail(err error) Step {
	return Step{Err: llm.NewTransportError("scripted", err)}
}

// Model replays Steps in order and records every request. Once the script is
// exhausted it answers with an unrecognized envelope.
type Model struct {
	mu       sync.Mutex
	steps    []Step
	requests []llm.Request
}

func New(steps ...Step) *Model {
	return &Model{steps: steps}
}

func (m *Model) Generate(ctx context.Context, req llm.Request) (llm.Envelope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.steps) == 0 {
		return llm.Envelope{}, nil
	}
	s := m.steps[0]
	m.steps = m.steps[1:]
	return s.Envelope, s.Err
}

// Push appends steps to the script.
func (m *Model) Push(steps ...Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, steps...)
}

// Requests returns a copy of the recorded requests.
func (m *Model) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.requests...)
}
