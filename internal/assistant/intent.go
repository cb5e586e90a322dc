package assistant

import "strings"

type Intent string

const (
	IntentNeutral  Intent = "neutral"
	IntentService  Intent = "service"
	IntentBusiness Intent = "business"
)

// ClassifyIntent is a keyword heuristic: a message naming only "service"
// is Service, one naming only "business" is Business, anything else Neutral.
func ClassifyIntent(message string) Intent {
	m := strings.ToLower(message)
	service := strings.Contains(m, "service")
	business := strings.Contains(m, "business")
	switch {
	case service && !business:
		return IntentService
	case business && !service:
		return IntentBusiness
	default:
		return IntentNeutral
	}
}
