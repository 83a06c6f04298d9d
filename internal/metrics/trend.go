package metrics

import (
	"math"
	"time"

	"github.com/martinsumner/careerpilot/internal/types"
)

const (
	trendMinPoints = 3
	trendMaxPoints = 12
	trendBaseline  = 10
	trendJitter    = 5
)

// joinDateFormats are the layouts tolerated for the member-since string.
var joinDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2006",
	"Jan 2006",
}

// TrendSeries synthesizes a monthly readiness history from the join date to
// now: clamp(monthsElapsed+1, 3, 12) points, linearly interpolated from a
// fixed baseline of 10 to the current score. Interior points get jitter in
// [-5, +5]; the endpoints are exact so the series always starts at 10 and
// ends at the current score. Display plausibility only, no semantic
// guarantee.
func (e *Engine) TrendSeries(joinDate string, score int) []types.TrendPoint {
	now := time.Now()
	join := parseJoinDate(joinDate, now)

	months := monthsBetween(join, now)
	count := clamp(months+1, trendMinPoints, trendMaxPoints)

	points := make([]types.TrendPoint, count)
	for i := 0; i < count; i++ {
		month := now.AddDate(0, -(count - 1 - i), 0)
		frac := float64(i) / float64(count-1)
		value := trendBaseline + (float64(score)-trendBaseline)*frac

		if i > 0 && i < count-1 {
			value += float64(e.rng.Intn(2*trendJitter+1) - trendJitter)
		}
		if value < 0 {
			value = 0
		}

		points[i] = types.TrendPoint{
			Label: month.Format("Jan 2006"),
			Score: int(math.Round(value)),
		}
	}
	return points
}

// parseJoinDate tries each tolerated layout and falls back to six months
// before now when none match.
func parseJoinDate(s string, now time.Time) time.Time {
	for _, layout := range joinDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now.AddDate(0, -6, 0)
}

// monthsBetween counts whole calendar months from a to b, never negative.
func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}
