// Package assistant turns a transcript and a new message into a single reply
// string: it classifies intent, assembles a bounded prompt, calls the model,
// retries once on empty output and maps every failure to display text.
package assistant

import (
	"context"
	"errors"
	"log"

	"ideaforge-backend/internal/llm"
)

// Reply is the resolved answer to one message. Text is never empty.
type Reply struct {
	Text     string
	Outcome  Outcome
	Intent   Intent
	Attempts int
}

type Generator struct {
	model     llm.Model
	modelName string
	prompts   *Prompts
}

// NewGenerator returns a Generator using prompts, or the built-in set when
// prompts is nil.
func NewGenerator(model llm.Model, modelName string, prompts *Prompts) *Generator {
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	return &Generator{model: model, modelName: modelName, prompts: prompts}
}

func (g *Generator) ModelName() string { return g.modelName }

// Prompts returns a copy of the prompt set in use.
func (g *Generator) Prompts() Prompts { return *g.prompts }

// CallModel sends the system instructions and prompt in one request. Failures
// come back as *llm.TransportError.
func (g *Generator) CallModel(ctx context.Context, prompt string, params Params) (Result, error) {
	env, err := g.model.Generate(ctx, llm.Request{
		Model:       g.modelName,
		System:      g.prompts.System,
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		var te *llm.TransportError
		if !errors.As(err, &te) {
			te = llm.NewTransportError("generate", err)
		}
		return Result{}, te
	}
	return ExtractText(env), nil
}

// Generate resolves message against the transcript. It never fails: empty
// output is retried once, and every failure becomes one of the fixed messages.
func (g *Generator) Generate(ctx context.Context, t Transcript, message string) Reply {
	intent := ClassifyIntent(message)
	prompt := g.prompts.BuildPrompt(t, message, intent)
	reply := Reply{Intent: intent, Attempts: 1}

	res, err := g.CallModel(ctx, prompt, g.prompts.Attempts.First)
	if err == nil && res.Empty() {
		log.Printf("[generate] empty result from %s, retrying once", g.modelName)
		reply.Attempts++
		res, err = g.CallModel(ctx, prompt+g.prompts.RetrySuffix, g.prompts.Attempts.Retry)
	}

	switch {
	case err != nil:
		reply.Outcome = OutcomeError
		if llm.IsRateLimited(err) {
			reply.Outcome = OutcomeRateLimited
		}
		log.Printf("[generate] %s calling %s: %v", reply.Outcome, g.modelName, err)
		reply.Text = g.prompts.Messages.Render(reply.Outcome, err)
	case res.Empty():
		reply.Outcome = OutcomeEmpty
		reply.Text = g.prompts.Messages.Render(OutcomeEmpty, nil)
	default:
		reply.Outcome = OutcomeReply
		reply.Text = res.Text
	}
	return reply
}

// GenerateReply is Generate reduced to the display string.
func (g *Generator) GenerateReply(ctx context.Context, t Transcript, message string) string {
	return g.Generate(ctx, t, message).Text
}

// Exchange generates a reply and returns the transcript with the finished
// turn appended. The input transcript is left as it was.
func (g *Generator) Exchange(ctx context.Context, t Transcript, message string) (Transcript, Reply) {
	reply := g.Generate(ctx, t, message)
	return t.Append(Turn{User: message, Assistant: reply.Text}), reply
}
