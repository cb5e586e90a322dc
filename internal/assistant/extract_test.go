package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ideaforge-backend/internal/llm"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		env  llm.Envelope
		want string
	}{
		{
			name: "first candidate wins",
			env:  llm.CandidatesEnvelope(llm.TextCandidate("first"), llm.TextCandidate("second")),
			want: "first",
		},
		{
			name: "parts joined by newline",
			env:  llm.CandidatesEnvelope(llm.TextCandidate("**One**", "", "**Two**  ")),
			want: "**One**\n**Two**",
		},
		{
			name: "nil parts skipped",
			env:  llm.CandidatesEnvelope(llm.Candidate{Content: &llm.Content{Parts: []*llm.Part{nil, {Text: "ok"}}}}),
			want: "ok",
		},
		{
			name: "first candidate without content",
			env:  llm.CandidatesEnvelope(llm.Candidate{}, llm.TextCandidate("later")),
			want: "",
		},
		{
			name: "empty candidate list",
			env:  llm.Envelope{Kind: llm.KindCandidates},
			want: "",
		},
		{
			name: "flat text trimmed",
			env:  llm.FlatTextEnvelope("  streamed idea \n"),
			want: "streamed idea",
		},
		{
			name: "whitespace only",
			env:  llm.FlatTextEnvelope(" \n "),
			want: "",
		},
		{
			name: "unrecognized",
			env:  llm.Envelope{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.env)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.want == "", got.Empty())
		})
	}
}
