// Package focus picks the focus-area string that biases the next round of
// task generation, using previously cached roadmap and analysis artifacts
// as a priority-ordered hint chain.
package focus

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/martinsumner/careerpilot/internal/types"
)

// DefaultFocus is returned when no cached artifact yields a hint.
const DefaultFocus = "Core Competencies & Growth"

// ArtifactReader reads cached generation artifacts for a user+role+target
// combination. A miss is (nil, nil); read errors are treated as misses.
type ArtifactReader interface {
	CachedRoadmap(ctx context.Context, userID uuid.UUID, role, targetRole string) ([]byte, error)
	CachedAnalysis(ctx context.Context, userID uuid.UUID, role, targetRole string) ([]byte, error)
}

// Resolve returns the focus area for the next task-generation request.
// First matching rule wins: the in-progress phase of a cached roadmap, then
// the first critical gap of a cached analysis, then DefaultFocus. Malformed
// cache content falls through silently; the result is never empty.
func Resolve(ctx context.Context, r ArtifactReader, userID uuid.UUID, role, targetRole string) string {
	if title := roadmapFocus(ctx, r, userID, role, targetRole); title != "" {
		return title
	}
	if gap := analysisFocus(ctx, r, userID, role, targetRole); gap != "" {
		return "Closing Skill Gap: " + gap
	}
	return DefaultFocus
}

func roadmapFocus(ctx context.Context, r ArtifactReader, userID uuid.UUID, role, targetRole string) string {
	raw, err := r.CachedRoadmap(ctx, userID, role, targetRole)
	if err != nil || len(raw) == 0 {
		return ""
	}

	var phases []types.RoadmapPhase
	if err := json.Unmarshal(raw, &phases); err != nil {
		return ""
	}

	for _, phase := range phases {
		if phase.Status == types.PhaseInProgress && phase.Title != "" {
			return phase.Title
		}
	}
	return ""
}

func analysisFocus(ctx context.Context, r ArtifactReader, userID uuid.UUID, role, targetRole string) string {
	raw, err := r.CachedAnalysis(ctx, userID, role, targetRole)
	if err != nil || len(raw) == 0 {
		return ""
	}

	var analysis types.AnalysisResult
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return ""
	}

	if len(analysis.CriticalGaps) == 0 {
		return ""
	}
	return analysis.CriticalGaps[0].Name
}
