// Package metrics derives the dashboard health snapshot for a profile and
// task list pair. Everything here is a pure function of its inputs; the
// only randomness is the trend-series jitter, which is injected so tests
// can pin it down.
package metrics

import (
	"math"
	"math/rand"
	"time"

	"github.com/martinsumner/careerpilot/internal/types"
)

// Engine computes derived metrics. The zero value is not usable; construct
// with NewEngine.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an Engine with the given random source for trend-series
// jitter. A nil source falls back to a time-seeded one.
func NewEngine(src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{rng: rand.New(src)}
}

// ProfileStrength scores profile completeness on a fixed-weight scale:
// 10 points per populated identity field (name, current role, location,
// bio, target role), 10 for a non-trivial avatar, 15/5/0 by skill count,
// 15 for any experience, 5 for any education, 5 for any project. Clamped
// to [0, 100].
func ProfileStrength(p *types.UserProfile) int {
	if p == nil {
		return 0
	}

	score := 0
	for _, field := range []string{p.Name, p.CurrentRole, p.Location, p.Bio, p.TargetRole} {
		if len(field) > 2 {
			score += 10
		}
	}
	if len(p.Avatar) > 50 {
		score += 10
	}

	switch {
	case len(p.Skills) >= 3:
		score += 15
	case len(p.Skills) >= 1:
		score += 5
	}

	if len(p.Experience) >= 1 {
		score += 15
	}
	if len(p.Education) >= 1 {
		score += 5
	}
	if len(p.Projects) >= 1 {
		score += 5
	}

	return clamp(score, 0, 100)
}

// CompletionRate returns round(100 * done / total) as a percentage. An
// empty task list yields 0 (the divisor is floored at 1 to avoid a zero
// division, but the true count is reported separately).
func CompletionRate(tasks []types.Task) int {
	done := CompletedCount(tasks)
	total := len(tasks)
	if total < 1 {
		total = 1
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// CompletedCount counts tasks with status Done.
func CompletedCount(tasks []types.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == types.StatusDone {
			n++
		}
	}
	return n
}

// LearningHours sums the parsed duration of every completed task.
func LearningHours(tasks []types.Task) float64 {
	var hours float64
	for _, t := range tasks {
		if t.Status == types.StatusDone {
			hours += ParseDuration(t.Duration)
		}
	}
	return hours
}

// ReadinessScore blends profile strength (30%), task completion (50%) and
// a 20-point base for having any work experience. Clamped to [0, 100].
func ReadinessScore(profileStrength, completionRate int, hasExperience bool) int {
	base := 0.0
	if hasExperience {
		base = 20
	}
	score := int(math.Round(float64(profileStrength)*0.3 + float64(completionRate)*0.5 + base))
	return clamp(score, 0, 100)
}

// Snapshot computes the full dashboard snapshot. The displayed learning
// hours are rounded to the nearest hour; hours-this-week is the documented
// 20% placeholder since completions carry no timestamps.
func (e *Engine) Snapshot(p *types.UserProfile, tasks []types.Task, joinDate string) types.DerivedMetrics {
	strength := ProfileStrength(p)
	rate := CompletionRate(tasks)
	hours := LearningHours(tasks)
	readiness := ReadinessScore(strength, rate, p != nil && len(p.Experience) > 0)

	weekHours := 0.0
	if hours > 0 {
		weekHours = math.Max(1, math.Round(hours*0.2*10)/10)
	}

	return types.DerivedMetrics{
		ProfileStrength: strength,
		CompletionRate:  rate,
		CompletedTasks:  CompletedCount(tasks),
		TotalTasks:      len(tasks),
		LearningHours:   math.Round(hours),
		ReadinessScore:  readiness,
		HoursThisWeek:   weekHours,
		Trend:           e.TrendSeries(joinDate, readiness),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
