package assistant

import (
	"strings"

	"ideaforge-backend/internal/llm"
)

// Result is the text of one model call. The zero value is Empty.
type Result struct {
	Text string
}

func (r Result) Empty() bool { return r.Text == "" }

// ExtractText takes the first candidate's non-empty text parts joined by
// newlines, else the flat text, else Empty. Later candidates are ignored.
func ExtractText(env llm.Envelope) Result {
	switch env.Kind {
	case llm.KindCandidates:
		if len(env.Candidates) == 0 {
			return Result{}
		}
		content := env.Candidates[0].Content
		if content == nil {
			return Result{}
		}
		texts := make([]string, 0, len(content.Parts))
		for _, p := range content.Parts {
			if p == nil || p.Text == "" {
				continue
			}
			texts = append(texts, p.Text)
		}
		return Result{Text: strings.TrimSpace(strings.Join(texts, "\n"))}
	case llm.KindFlatText:
		return Result{Text: strings.TrimSpace(env.Text)}
	default:
		return Result{}
	}
}
