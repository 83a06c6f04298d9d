package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2 hours", 2},
		{"2h", 2},
		{"1 hour", 1},
		{"90 mins", 1.5},
		{"90 minutes", 1.5},
		{"30m", 0.5},
		{"1h 30m", 1.5},
		{"1h30m", 1.5},
		{"2.5 hours", 2.5},
		{"5", 5},
		{"  3  ", 3},
		{"", 1},
		{"a while", 1},
		{"soon", 1},
		{"0", 1}, // zero falls through to the fallback
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseDuration(tt.input), 0.001)
		})
	}
}
