package llm

import (
	"context"
	"errors"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// OpenAIClient implements Model over an OpenAI-compatible chat completions API.
type OpenAIClient struct {
	client *openai.Client
	stream bool
}

// NewOpenAIClient builds a client for the given key and base URL. When stream
// is true the streaming API is used and deltas are concatenated into a
// flat-text envelope.
func NewOpenAIClient(apiKey, baseURL string, stream bool) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), stream: stream}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (Envelope, error) {
	creq := openai.ChatCompletionRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    buildMessages(req),
	}
	if c.stream {
		return c.generateStream(ctx, creq)
	}
	resp, err := c.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return Envelope{}, NewTransportError("chat completion", err)
	}
	return fromChatCompletion(resp), nil
}

func (c *OpenAIClient) generateStream(ctx context.Context, creq openai.ChatCompletionRequest) (Envelope, error) {
	creq.Stream = true
	stream, err := c.client.CreateChatCompletionStream(ctx, creq)
	if err != nil {
		return Envelope{}, NewTransportError("chat completion stream", err)
	}
	defer stream.Close()

	var b strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Envelope{}, NewTransportError("chat completion stream", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		b.WriteString(chunk.Choices[0].Delta.Content)
	}
	return FlatTextEnvelope(b.String()), nil
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})
	return msgs
}
