package metrics

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendSeries_Endpoints(t *testing.T) {
	e := NewEngine(rand.NewSource(42))

	for _, score := range []int{0, 10, 42, 75, 100} {
		t.Run(fmt.Sprintf("score=%d", score), func(t *testing.T) {
			series := e.TrendSeries("2024-01-15", score)
			require.GreaterOrEqual(t, len(series), 3)
			require.LessOrEqual(t, len(series), 12)
			assert.Equal(t, 10, series[0].Score)
			assert.Equal(t, score, series[len(series)-1].Score)
		})
	}
}

// monthsAgo returns the first day of the month n months before now, which
// keeps the elapsed-month count exact regardless of today's day-of-month.
func monthsAgo(n int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
}

func TestTrendSeries_PointCount(t *testing.T) {
	e := NewEngine(rand.NewSource(1))

	// Two months ago: monthsElapsed+1 = 3 points (the floor).
	assert.Len(t, e.TrendSeries(monthsAgo(2).Format("2006-01-02"), 50), 3)

	// Recent join dates are padded up to the 3-point floor.
	today := time.Now().Format("2006-01-02")
	assert.Len(t, e.TrendSeries(today, 50), 3)

	// Long histories cap at 12 points.
	assert.Len(t, e.TrendSeries(monthsAgo(36).Format("2006-01-02"), 50), 12)
}

func TestTrendSeries_MonthYearFormat(t *testing.T) {
	e := NewEngine(rand.NewSource(1))
	joined := monthsAgo(4).Format("January 2006")

	series := e.TrendSeries(joined, 80)
	assert.Len(t, series, 5)
	assert.Equal(t, 10, series[0].Score)
	assert.Equal(t, 80, series[len(series)-1].Score)
}

func TestTrendSeries_UnparseableDateFallsBackToSixMonths(t *testing.T) {
	e := NewEngine(rand.NewSource(1))

	series := e.TrendSeries("not a date", 60)
	// 6 months elapsed + 1, or one fewer when date normalization around
	// short months shifts the fallback forward.
	assert.InDelta(t, 7, len(series), 1)
	assert.Equal(t, 10, series[0].Score)
	assert.Equal(t, 60, series[len(series)-1].Score)
}

func TestTrendSeries_ScoresNeverNegative(t *testing.T) {
	e := NewEngine(rand.NewSource(7))

	series := e.TrendSeries("2023-01-01", 0)
	for _, p := range series {
		assert.GreaterOrEqual(t, p.Score, 0)
	}
}

func TestTrendSeries_DeterministicWithFixedSource(t *testing.T) {
	a := NewEngine(rand.NewSource(99)).TrendSeries("2024-01-01", 70)
	b := NewEngine(rand.NewSource(99)).TrendSeries("2024-01-01", 70)
	assert.Equal(t, a, b)
}

func TestTrendSeries_LabelsAreMonthly(t *testing.T) {
	e := NewEngine(rand.NewSource(1))
	series := e.TrendSeries(monthsAgo(5).Format("2006-01-02"), 50)

	require.Len(t, series, 6)
	assert.Equal(t, time.Now().Format("Jan 2006"), series[len(series)-1].Label)
	for _, p := range series {
		_, err := time.Parse("Jan 2006", p.Label)
		assert.NoError(t, err)
	}
}
