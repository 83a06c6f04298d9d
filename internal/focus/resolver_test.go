package focus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/martinsumner/careerpilot/internal/types"
	"github.com/stretchr/testify/assert"
)

type fakeReader struct {
	roadmap     []byte
	roadmapErr  error
	analysis    []byte
	analysisErr error
}

func (f *fakeReader) CachedRoadmap(_ context.Context, _ uuid.UUID, _, _ string) ([]byte, error) {
	return f.roadmap, f.roadmapErr
}

func (f *fakeReader) CachedAnalysis(_ context.Context, _ uuid.UUID, _, _ string) ([]byte, error) {
	return f.analysis, f.analysisErr
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return b
}

func TestResolve_RoadmapWins(t *testing.T) {
	reader := &fakeReader{
		roadmap: mustJSON(t, []types.RoadmapPhase{
			{Title: "Foundations", Status: types.PhaseCompleted},
			{Title: "Core Tech", Status: types.PhaseInProgress},
		}),
		analysis: mustJSON(t, types.AnalysisResult{
			CriticalGaps: []types.SkillGap{{Name: "System Design"}},
		}),
	}

	got := Resolve(context.Background(), reader, uuid.New(), "Backend Engineer", "Staff Engineer")
	assert.Equal(t, "Core Tech", got)
}

func TestResolve_FallsBackToAnalysisGap(t *testing.T) {
	reader := &fakeReader{
		analysis: mustJSON(t, types.AnalysisResult{
			CriticalGaps: []types.SkillGap{{Name: "System Design"}, {Name: "Kubernetes"}},
		}),
	}

	got := Resolve(context.Background(), reader, uuid.New(), "", "")
	assert.Equal(t, "Closing Skill Gap: System Design", got)
}

func TestResolve_RoadmapWithoutInProgressPhaseSkipsToAnalysis(t *testing.T) {
	reader := &fakeReader{
		roadmap: mustJSON(t, []types.RoadmapPhase{
			{Title: "Foundations", Status: types.PhaseCompleted},
			{Title: "Later", Status: types.PhaseLocked},
		}),
		analysis: mustJSON(t, types.AnalysisResult{
			CriticalGaps: []types.SkillGap{{Name: "Kafka"}},
		}),
	}

	got := Resolve(context.Background(), reader, uuid.New(), "", "")
	assert.Equal(t, "Closing Skill Gap: Kafka", got)
}

func TestResolve_DefaultWhenBothMissing(t *testing.T) {
	got := Resolve(context.Background(), &fakeReader{}, uuid.New(), "", "")
	assert.Equal(t, DefaultFocus, got)
}

func TestResolve_MalformedCacheTreatedAsMiss(t *testing.T) {
	reader := &fakeReader{
		roadmap:  []byte(`{"not": "a roadmap"`),
		analysis: []byte(`[broken`),
	}

	got := Resolve(context.Background(), reader, uuid.New(), "", "")
	assert.Equal(t, DefaultFocus, got)
}

func TestResolve_ReadErrorsTreatedAsMiss(t *testing.T) {
	reader := &fakeReader{
		roadmapErr:  errors.New("cache unavailable"),
		analysisErr: errors.New("cache unavailable"),
	}

	got := Resolve(context.Background(), reader, uuid.New(), "", "")
	assert.Equal(t, DefaultFocus, got)
}

func TestResolve_EmptyGapListFallsThrough(t *testing.T) {
	reader := &fakeReader{
		analysis: mustJSON(t, types.AnalysisResult{CriticalGaps: []types.SkillGap{}}),
	}

	got := Resolve(context.Background(), reader, uuid.New(), "", "")
	assert.Equal(t, DefaultFocus, got)
}
