package extract

import (
	"strings"
	"time"
)

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02"

// tomorrowToken is the Turkish relative-date marker for "tomorrow".
const tomorrowToken = "yarın"

// weekdayTokens maps Turkish day names to their ordinal, Monday=0.
// Ordered so that longer names are scanned before their prefixes
// ("pazartesi" before "pazar", "cumartesi" before "cuma").
var weekdayTokens = []struct {
	token   string
	ordinal int
}{
	{"pazartesi", 0},
	{"cumartesi", 5},
	{"çarşamba", 2},
	{"perşembe", 3},
	{"salı", 1},
	{"cuma", 4},
	{"pazar", 6},
}

// ResolveRelativeDate maps a natural-language day phrase plus a reference
// time to an absolute calendar date. "yarın" resolves to the next day; a
// weekday name resolves to the next occurrence of that weekday, always at
// least a full week ahead when the name matches today's weekday. With no
// marker the reference date itself is returned. Total for any input,
// including the empty string.
func ResolveRelativeDate(text string, now time.Time) string {
	lower := strings.ToLower(text)

	if strings.Contains(lower, tomorrowToken) {
		return now.AddDate(0, 0, 1).Format(DateLayout)
	}

	for _, day := range weekdayTokens {
		if !strings.Contains(lower, day.token) {
			continue
		}
		// Go weekdays start at Sunday; shift so Monday=0.
		nowOrdinal := (int(now.Weekday()) + 6) % 7
		daysAhead := day.ordinal - nowOrdinal
		if daysAhead <= 0 {
			// Today or earlier in the week always means next week's
			// occurrence, never today.
			daysAhead += 7
		}
		return now.AddDate(0, 0, daysAhead).Format(DateLayout)
	}

	return now.Format(DateLayout)
}
