package extract

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for event times, 24h clock.
const TimeLayout = "15:04"

// dayPartWindows maps Turkish day-part words to their canonical one-hour
// window. When the extracted start equals the canonical hour and the
// original text contains the word, the window overrides whatever the
// extraction produced.
var dayPartWindows = []struct {
	word  string
	start string
	end   string
}{
	{"sabah", "09:00", "10:00"},
	{"öğle", "12:00", "13:00"},
	{"akşam", "18:00", "19:00"},
}

// NormalizeTimes fills in a missing end time and applies day-part
// canonicalization using the original text as the disambiguation source.
//
// A missing end time is synthesized as start+1h with the hour wrapping
// modulo 24; a 23:30 start yields a 00:30 end with no day rollover
// signaled. A missing start time is never invented here. Unparseable
// inputs pass through untouched for the caller to reject.
func NormalizeTimes(start, end, text string) (string, string) {
	if start == "" {
		return start, end
	}

	if t, err := time.Parse(TimeLayout, start); err == nil {
		start = t.Format(TimeLayout)
		if end == "" {
			end = fmt.Sprintf("%02d:%02d", (t.Hour()+1)%24, t.Minute())
		}
	}

	lower := strings.ToLower(text)
	for _, part := range dayPartWindows {
		if start == part.start && strings.Contains(lower, part.word) {
			return part.start, part.end
		}
	}

	return start, end
}
