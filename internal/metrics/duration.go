package metrics

import (
	"regexp"
	"strconv"
	"strings"
)

// Duration grammar, applied to the lower-cased input:
//
//	<number> followed by an "h" token  -> hours
//	<number> followed by an "m" token  -> minutes (converted to hours)
//	purely numeric string              -> hours
//	anything else                      -> 1 hour fallback
//
// Hour and minute matches sum, so "1h 30m" parses to 1.5. This is
// best-effort numeric extraction, not exact unit parsing.
var (
	hoursPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*h`)
	minutesPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*m`)
)

// ParseDuration extracts a duration in hours from free text like
// "2 hours", "90 mins" or "1h 30m". Unparseable input yields 1.
func ParseDuration(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))

	var hours float64
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			hours += v
		}
	}
	if m := minutesPattern.FindStringSubmatch(minutesOnly(s)); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			hours += v / 60
		}
	}

	if hours == 0 {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			hours = v
		}
	}
	if hours == 0 {
		hours = 1
	}
	return hours
}

// minutesOnly strips the hour term so its trailing digits cannot be
// re-matched as minutes (e.g. the "1" of "1h30m").
func minutesOnly(s string) string {
	return hoursPattern.ReplaceAllString(s, " ")
}
