package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsumner/careerpilot/internal/ai"
	"github.com/martinsumner/careerpilot/internal/db"
	"github.com/martinsumner/careerpilot/internal/focus"
	"github.com/martinsumner/careerpilot/internal/types"
)

func stubModelResponse(s *Server, response string) {
	s.newClient = func(_ context.Context, _ string) (ai.Client, error) {
		return &stubModelClient{response: response}, nil
	}
}

func TestGenerateAnalysis(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	stubModelResponse(s, `{
		"match_score": 62,
		"summary": "Solid analytical base, missing pipeline experience.",
		"strong_skills": ["SQL"],
		"critical_gaps": [{"name": "Apache Spark", "importance": "Critical", "reason": "core to the role"}]
	}`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeBody[types.AnalysisResult](t, w)
	assert.Equal(t, 62, result.MatchScore)
	require.Len(t, result.CriticalGaps, 1)

	// The result is cached under the user's current role pair.
	cached, err := store.GetArtifact(context.Background(), userID, db.ArtifactAnalysis, "Data Analyst", "Data Engineer")
	require.NoError(t, err)
	assert.NotNil(t, cached)
}

func TestGenerateAnalysis_ModelFailure(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	s.newClient = func(_ context.Context, _ string) (ai.Client, error) {
		return &stubModelClient{err: errors.New("quota exceeded")}, nil
	}

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/analysis", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ai-key")
}

func TestGenerateAnalysis_SchemaRejection(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	stubModelResponse(s, `{"match_score": 150, "summary": "x", "strong_skills": [], "critical_gaps": []}`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/analysis", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateRoadmap(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	stubModelResponse(s, `[
		{"id": 1, "title": "Foundations", "status": "Completed", "duration": "2 Weeks", "items": [
			{"title": "SQL refresher", "status": "Completed"}
		]},
		{"id": 2, "title": "Data Pipelines", "status": "In Progress", "duration": "6 Weeks", "items": [
			{"title": "Build an ETL job", "status": "In Progress"}
		]}
	]`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/roadmap", nil)
	require.Equal(t, http.StatusOK, w.Code)

	phases := decodeBody[[]types.RoadmapPhase](t, w)
	require.Len(t, phases, 2)
	assert.Equal(t, types.PhaseInProgress, phases[1].Status)

	cached, err := store.CachedRoadmap(context.Background(), userID, "Data Analyst", "Data Engineer")
	require.NoError(t, err)
	assert.NotNil(t, cached)
}

func TestGenerateTasks_ReplacesTaskList(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	store.tasks[userID] = []types.Task{
		{ID: "old", Title: "Old task", Type: types.TaskReading, Status: types.StatusDone},
	}
	stubModelResponse(s, `[
		{"title": "Read the Spark docs", "type": "Reading", "status": "Todo", "duration": "2 hours"},
		{"title": "Build an ETL job", "type": "Building", "status": "Todo", "duration": "4 hours"}
	]`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[struct {
		FocusArea string       `json:"focus_area"`
		Tasks     []types.Task `json:"tasks"`
	}](t, w)

	assert.Equal(t, focus.DefaultFocus, resp.FocusArea)
	require.Len(t, resp.Tasks, 2)
	assert.NotEmpty(t, resp.Tasks[0].ID)

	stored, err := store.GetTasks(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Read the Spark docs", stored[0].Title)
}

func TestGenerateTasks_FocusFollowsCachedRoadmap(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	require.NoError(t, store.SaveArtifact(context.Background(), userID, db.ArtifactRoadmap,
		"Data Analyst", "Data Engineer",
		[]byte(`[{"id": 2, "title": "Data Pipelines", "status": "In Progress", "items": []}]`)))
	stubModelResponse(s, `[{"title": "Build an ETL job", "type": "Building", "status": "Todo"}]`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "Data Pipelines", resp["focus_area"])
}

func TestGenerateProjects(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	stubModelResponse(s, `[
		{"title": "Streaming pipeline", "description": "Kafka to warehouse", "difficulty": "Medium",
		 "skills": ["Kafka", "Python"], "duration": "3 weeks"}
	]`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ideas := decodeBody[[]types.ProjectIdea](t, w)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Streaming pipeline", ideas[0].Title)
}

func TestGenerateInterview(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	stubModelResponse(s, `{
		"score": 74,
		"verdict": "Good structure, thin on tradeoffs.",
		"strengths": ["clear framing"],
		"improvements": ["discuss failure modes"]
	}`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/interview", map[string]string{
		"question": "Design a batch ingestion pipeline.",
		"answer":   "I would schedule incremental loads with Airflow.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	feedback := decodeBody[types.InterviewFeedback](t, w)
	assert.Equal(t, 74, feedback.Score)
}

func TestGenerateInterview_MissingFields(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/interview", map[string]string{
		"question": "Design a batch ingestion pipeline.",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateJobs(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	stubModelResponse(s, `[
		{"title": "Data Engineer", "company": "Initech", "location": "Berlin", "match_score": 81}
	]`)

	w := doAuthed(t, s, userID, http.MethodPost, "/generate/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	matches := decodeBody[[]types.JobMatch](t, w)
	require.Len(t, matches, 1)
	assert.Equal(t, "Initech", matches[0].Company)
}

func TestGetCachedArtifact(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	require.NoError(t, store.SaveArtifact(context.Background(), userID, db.ArtifactAnalysis,
		"Data Analyst", "Data Engineer", []byte(`{"match_score": 62}`)))

	w := doAuthed(t, s, userID, http.MethodGet, "/artifacts/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"match_score": 62}`, w.Body.String())
}

func TestGetCachedArtifact_Miss(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodGet, "/artifacts/roadmap", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCachedArtifact_UnknownKind(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodGet, "/artifacts/horoscope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
