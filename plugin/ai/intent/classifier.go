// Package intent provides rule-based intent classification for inbound
// chat messages.
package intent

import "strings"

// Intent represents the classified purpose of an inbound message.
type Intent int

const (
	// IntentUnknown is for messages with no scheduling marker.
	IntentUnknown Intent = iota
	// IntentSchedule is for messages that look like a scheduling request.
	IntentSchedule
)

// String returns the string representation of Intent.
func (i Intent) String() string {
	switch i {
	case IntentSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// DefaultKeywords is the scheduling marker set: verbs, weekday names,
// day-part words, relative-date words and domain nouns. Matching is
// case-insensitive substring containment.
var DefaultKeywords = []string{
	"planla", "ekle", "randevu", "toplantı", "etkinlik", "saat", "tarih",
	"pazartesi", "salı", "çarşamba", "perşembe", "cuma", "cumartesi", "pazar",
	"bugün", "yarın", "sabah", "öğle", "akşam", "gece", "görüşme", "meeting",
	"doktor", "iş", "firma", "şirket", "mülakat", "interview",
}

// Classifier classifies messages against a configurable keyword set. The
// keyword heuristic is deliberately coarse; anything it matches still goes
// through full extraction, which is where real validation happens.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a classifier. A nil or empty keyword list selects
// DefaultKeywords.
func NewClassifier(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &Classifier{keywords: keywords}
}

// Classify determines whether text carries scheduling intent.
func (c *Classifier) Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, keyword := range c.keywords {
		if strings.Contains(lower, keyword) {
			return IntentSchedule
		}
	}
	return IntentUnknown
}
