package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

type EnvelopeKind int

const (
	KindUnrecognized EnvelopeKind = iota
	KindCandidates
	KindFlatText
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindCandidates:
		return "candidates"
	case KindFlatText:
		return "flat_text"
	default:
		return "unrecognized"
	}
}

// Part is one text segment of a candidate.
type Part struct {
	Text string
}

// Content holds the ordered parts of a candidate. Nil parts are allowed.
type Content struct {
	Parts []*Part
}

// Candidate is one alternative output. Content may be nil.
type Candidate struct {
	Content      *Content
	FinishReason string
}

// Envelope is the decoded shape of a remote response. Exactly one of
// Candidates or Text is meaningful, depending on Kind.
type Envelope struct {
	Kind       EnvelopeKind
	Candidates []Candidate
	Text       string
}

func CandidatesEnvelope(candidates ...Candidate) Envelope {
	return Envelope{Kind: KindCandidates, Candidates: candidates}
}

func FlatTextEnvelope(text string) Envelope {
	return Envelope{Kind: KindFlatText, Text: text}
}

// TextCandidate builds a candidate whose content is the given parts.
func TextCandidate(parts ...string) Candidate {
	c := &Content{Parts: make([]*Part, 0, len(parts))}
	for _, p := range parts {
		c.Parts = append(c.Parts, &Part{Text: p})
	}
	return Candidate{Content: c}
}

// fromChatCompletion maps a chat completion response onto an Envelope.
// Each choice becomes a candidate; multi-part messages keep their text parts,
// plain messages become a single part.
func fromChatCompletion(resp openai.ChatCompletionResponse) Envelope {
	if len(resp.Choices) == 0 {
		return Envelope{Kind: KindUnrecognized}
	}
	candidates := make([]Candidate, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		cand := Candidate{FinishReason: string(choice.FinishReason)}
		msg := choice.Message
		switch {
		case len(msg.MultiContent) > 0:
			content := &Content{}
			for _, part := range msg.MultiContent {
				if part.Type != openai.ChatMessagePartTypeText {
					continue
				}
				content.Parts = append(content.Parts, &Part{Text: part.Text})
			}
			cand.Content = content
		case msg.Content != "":
			cand.Content = &Content{Parts: []*Part{{Text: msg.Content}}}
		}
		candidates = append(candidates, cand)
	}
	return CandidatesEnvelope(candidates...)
}
