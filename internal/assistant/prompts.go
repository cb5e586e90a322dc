package assistant

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/ideaforge.yaml
var defaultPromptsYAML []byte

// Params are the generation settings of one model call.
type Params struct {
	MaxTokens   int     `yaml:"max_tokens" json:"maxTokens"`
	Temperature float32 `yaml:"temperature" json:"temperature"`
}

// Prompts holds every piece of text and every setting that shapes a request.
type Prompts struct {
	System string `yaml:"system"`
	Labels struct {
		User      string `yaml:"user"`
		Assistant string `yaml:"assistant"`
	} `yaml:"labels"`
	ContextTurns int `yaml:"context_turns"`
	Intents      struct {
		Service  string `yaml:"service"`
		Business string `yaml:"business"`
	} `yaml:"intents"`
	RetrySuffix string `yaml:"retry_suffix"`
	Attempts    struct {
		First Params `yaml:"first"`
		Retry Params `yaml:"retry"`
	} `yaml:"attempts"`
	Messages Messages `yaml:"messages"`
}

var defaultPrompts = mustParsePrompts(defaultPromptsYAML)

// DefaultPrompts returns a copy of the built-in prompt set.
func DefaultPrompts() *Prompts {
	p := *defaultPrompts
	return &p
}

// LoadPrompts reads a YAML file over the built-in defaults, so a file only
// needs the keys it changes. An empty path returns the defaults.
func LoadPrompts(path string) (*Prompts, error) {
	p := DefaultPrompts()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("parse prompts %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("prompts %s: %w", path, err)
	}
	return p, nil
}

func mustParsePrompts(b []byte) *Prompts {
	var p Prompts
	if err := yaml.Unmarshal(b, &p); err != nil {
		panic(fmt.Sprintf("assistant: embedded prompts: %v", err))
	}
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("assistant: embedded prompts: %v", err))
	}
	return &p
}

func (p *Prompts) Validate() error {
	if p.ContextTurns <= 0 {
		return fmt.Errorf("context_turns must be positive, got %d", p.ContextTurns)
	}
	if strings.TrimSpace(p.Labels.User) == "" || strings.TrimSpace(p.Labels.Assistant) == "" {
		return fmt.Errorf("labels.user and labels.assistant are required")
	}
	if p.Messages.Empty == "" || p.Messages.RateLimited == "" || p.Messages.Error == "" {
		return fmt.Errorf("messages.empty, messages.rate_limited and messages.error are required")
	}
	for name, a := range map[string]Params{"first": p.Attempts.First, "retry": p.Attempts.Retry} {
		if a.MaxTokens <= 0 {
			return fmt.Errorf("attempts.%s.max_tokens must be positive, got %d", name, a.MaxTokens)
		}
		if a.Temperature < 0 || a.Temperature > 1 {
			return fmt.Errorf("attempts.%s.temperature must be within [0,1], got %v", name, a.Temperature)
		}
	}
	return nil
}

// BuildPrompt renders the last ContextTurns turns as "User:" / "Assistant:"
// lines, then the intent-prefixed message and a trailing assistant cue.
func (p *Prompts) BuildPrompt(t Transcript, message string, intent Intent) string {
	var b strings.Builder
	for _, turn := range t.Recent(p.ContextTurns) {
		fmt.Fprintf(&b, "%s: %s\n%s: %s\n", p.Labels.User, turn.User, p.Labels.Assistant, turn.Assistant)
	}
	fmt.Fprintf(&b, "%s: %s%s\n%s:", p.Labels.User, p.intentPrefix(intent), message, p.Labels.Assistant)
	return b.String()
}

func (p *Prompts) intentPrefix(intent Intent) string {
	switch intent {
	case IntentService:
		return p.Intents.Service
	case IntentBusiness:
		return p.Intents.Business
	default:
		return ""
	}
}

// BuildPrompt uses the built-in prompt set.
func BuildPrompt(t Transcript, message string, intent Intent) string {
	return defaultPrompts.BuildPrompt(t, message, intent)
}
