package assistant

import "strings"

// Outcome is how a request resolved.
type Outcome int

const (
	OutcomeReply Outcome = iota
	OutcomeEmpty
	OutcomeRateLimited
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReply:
		return "reply"
	case OutcomeEmpty:
		return "empty"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// causePlaceholder in Messages.Error is replaced with the failure text.
const causePlaceholder = "{cause}"

// Messages are the fixed strings shown when no model text is available.
type Messages struct {
	Empty       string `yaml:"empty"`
	RateLimited string `yaml:"rate_limited"`
	Error       string `yaml:"error"`
}

// Render maps a non-reply outcome to its display string. OutcomeReply has no
// fixed text and renders as "".
func (m Messages) Render(o Outcome, cause error) string {
	switch o {
	case OutcomeEmpty:
		return m.Empty
	case OutcomeRateLimited:
		return m.RateLimited
	case OutcomeError:
		text := ""
		if cause != nil {
			text = cause.Error()
		}
		return strings.ReplaceAll(m.Error, causePlaceholder, text)
	default:
		return ""
	}
}
