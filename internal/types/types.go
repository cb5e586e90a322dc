package types

import "ideaforge-backend/internal/assistant"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	// Outcome is one of reply, empty, rate_limited, error.
	Outcome  string `json:"outcome"`
	Intent   string `json:"intent"`
	Attempts int    `json:"attempts"`
}

type HistoryResponse struct {
	SessionID string           `json:"sessionId"`
	Turns     []assistant.Turn `json:"turns"`
}

// SettingsResponse is read-only display data for the UI.
type SettingsResponse struct {
	Model        string           `json:"model"`
	Endpoint     string           `json:"endpoint"`
	Stream       bool             `json:"stream"`
	ContextTurns int              `json:"contextTurns"`
	First        assistant.Params `json:"first"`
	Retry        assistant.Params `json:"retry"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
