package roadmap

import (
	"testing"

	"github.com/martinsumner/careerpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_SkipsCompletedPhaseItems(t *testing.T) {
	phases := []types.RoadmapPhase{
		{
			ID: 1, Title: "Foundations", Status: types.PhaseCompleted, Duration: "4 Weeks",
			Items: []types.RoadmapItem{
				{Title: "Learn Go basics", Status: types.PhaseCompleted},
				{Title: "Learn SQL", Status: types.PhaseCompleted},
			},
		},
		{
			ID: 2, Title: "Core Tech", Status: types.PhaseInProgress, Duration: "6 Weeks",
			Items: []types.RoadmapItem{
				{Title: "Concurrency patterns", Status: types.PhaseInProgress},
				{Title: "Build a REST service", Status: types.PhaseLocked},
				{Title: "Mock interview practice", Status: types.PhaseLocked},
				{Title: "System design course", Status: types.PhaseLocked},
			},
		},
	}

	actions := Reconcile(phases)

	require.Len(t, actions, 3)
	assert.Equal(t, "Concurrency patterns", actions[0].Title)
	assert.Equal(t, "Build a REST service", actions[1].Title)
	assert.Equal(t, "Mock interview practice", actions[2].Title)

	assert.Equal(t, "High Impact", actions[0].Tag)
	assert.Empty(t, actions[1].Tag)
	assert.Empty(t, actions[2].Tag)

	for _, a := range actions {
		assert.Equal(t, "Core Tech", a.Phase)
	}
}

func TestReconcile_TypeClassification(t *testing.T) {
	tests := []struct {
		title string
		want  ActionType
	}{
		{"Build a portfolio project", ActionProject},
		{"Capstone Project", ActionProject},
		{"Find a mentor", ActionMentor},
		{"Code review session", ActionMentor},
		{"Mock interview", ActionMentor},
		{"Advanced SQL", ActionCourse},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.title))
		})
	}
}

func TestReconcile_DurationPrefersSubtitle(t *testing.T) {
	phases := []types.RoadmapPhase{
		{
			Title: "Phase", Status: types.PhaseInProgress, Duration: "6 Weeks",
			Items: []types.RoadmapItem{
				{Title: "With subtitle", Status: types.PhaseLocked, Subtitle: "2 Weeks"},
				{Title: "Without subtitle", Status: types.PhaseLocked},
			},
		},
	}

	actions := Reconcile(phases)
	require.Len(t, actions, 2)
	assert.Equal(t, "2 Weeks", actions[0].Duration)
	assert.Equal(t, "6 Weeks", actions[1].Duration)
}

func TestReconcile_AllCompletedFallsBackToFirstPhase(t *testing.T) {
	phases := []types.RoadmapPhase{
		{
			Title: "Foundations", Status: types.PhaseCompleted, Duration: "4 Weeks",
			Items: []types.RoadmapItem{
				{Title: "Learn Go basics", Status: types.PhaseCompleted},
				{Title: "Learn SQL", Status: types.PhaseCompleted},
			},
		},
		{
			Title: "Core Tech", Status: types.PhaseCompleted,
			Items: []types.RoadmapItem{
				{Title: "Everything done here too", Status: types.PhaseCompleted},
			},
		},
	}

	actions := Reconcile(phases)

	require.Len(t, actions, 2)
	assert.Equal(t, "Learn Go basics", actions[0].Title)
	assert.Equal(t, "High Impact", actions[0].Tag)
	assert.Equal(t, "Foundations", actions[0].Phase)
}

func TestReconcile_EmptyRoadmapSynthesizesFallback(t *testing.T) {
	for _, phases := range [][]types.RoadmapPhase{nil, {}} {
		actions := Reconcile(phases)

		require.Len(t, actions, 1)
		assert.Equal(t, "Start Foundation Phase", actions[0].Title)
		assert.Equal(t, "4 Weeks", actions[0].Duration)
		assert.Equal(t, "High Impact", actions[0].Tag)
		assert.Equal(t, ActionCourse, actions[0].Type)
	}
}

func TestReconcile_PhaseWithNoItems(t *testing.T) {
	phases := []types.RoadmapPhase{
		{Title: "Empty", Status: types.PhaseInProgress},
	}

	actions := Reconcile(phases)

	// No pending items and the first-phase fallback is empty too, so the
	// synthesized starter action appears.
	require.Len(t, actions, 1)
	assert.Equal(t, "Start Foundation Phase", actions[0].Title)
}
