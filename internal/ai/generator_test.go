package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsumner/careerpilot/internal/types"
)

// stubClient returns a canned response for every call and records the
// prompt and tier it was called with.
type stubClient struct {
	response string
	err      error

	lastPrompt string
	lastTier   ModelTier
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.lastPrompt = prompt
	s.lastTier = tier
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.lastPrompt = prompt
	s.lastTier = tier
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func testProfile() *types.UserProfile {
	return &types.UserProfile{
		Name:        "Dana",
		CurrentRole: "Data Analyst",
		TargetRole:  "Data Engineer",
		Location:    "Berlin",
		Skills: []types.Skill{
			{ID: "1", Name: "SQL", Category: types.CategoryTechnical, Level: types.LevelAdvanced},
			{ID: "2", Name: "Python", Category: types.CategoryTechnical, Level: types.LevelIntermediate},
		},
		Experience: []types.ExperienceEntry{
			{ID: "3", Role: "Data Analyst", Company: "Acme", StartDate: "2021-03-01"},
		},
	}
}

func TestGapAnalysis(t *testing.T) {
	client := &stubClient{response: `{
		"match_score": 62,
		"summary": "Solid analytical base, missing pipeline experience.",
		"strong_skills": ["SQL"],
		"critical_gaps": [{"name": "Apache Spark", "importance": "Critical", "reason": "core to the role"}]
	}`}
	gen := NewGenerator(client)

	result, err := gen.GapAnalysis(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, 62, result.MatchScore)
	assert.Equal(t, []string{"SQL"}, result.StrongSkills)
	require.Len(t, result.CriticalGaps, 1)
	assert.Equal(t, "Apache Spark", result.CriticalGaps[0].Name)

	assert.Equal(t, TierStandard, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Data Engineer")
	assert.Contains(t, client.lastPrompt, "SQL")
}

func TestGapAnalysis_SchemaRejection(t *testing.T) {
	// match_score out of range
	client := &stubClient{response: `{
		"match_score": 150,
		"summary": "x",
		"strong_skills": [],
		"critical_gaps": []
	}`}
	gen := NewGenerator(client)

	_, err := gen.GapAnalysis(context.Background(), testProfile())
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestGapAnalysis_ClientError(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}
	gen := NewGenerator(client)

	_, err := gen.GapAnalysis(context.Background(), testProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRoadmap(t *testing.T) {
	client := &stubClient{response: `[
		{"id": 1, "title": "Foundations", "status": "Completed", "duration": "2 Weeks", "items": [
			{"title": "SQL refresher", "status": "Completed"}
		]},
		{"id": 2, "title": "Data Pipelines", "status": "In Progress", "duration": "6 Weeks", "items": [
			{"title": "Build an ETL job", "status": "In Progress", "progress": 30}
		]}
	]`}
	gen := NewGenerator(client)

	phases, err := gen.Roadmap(context.Background(), testProfile())
	require.NoError(t, err)

	require.Len(t, phases, 2)
	assert.Equal(t, types.PhaseInProgress, phases[1].Status)
	require.NotNil(t, phases[1].Items[0].Progress)
	assert.Equal(t, 30, *phases[1].Items[0].Progress)
	assert.Equal(t, TierAdvanced, client.lastTier)
}

func TestWeeklyTasks_AssignsIDsAndResetsStatus(t *testing.T) {
	client := &stubClient{response: `[
		{"title": "Spark tutorial", "type": "Learning", "duration": "2 hours", "status": "Done", "difficulty": "Medium"},
		{"title": "Write a pipeline", "type": "Building", "duration": "1h 30m", "status": "Todo", "difficulty": "Hard"}
	]`}
	gen := NewGenerator(client)

	tasks, err := gen.WeeklyTasks(context.Background(), testProfile(), "Data Pipelines")
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, types.StatusTodo, task.Status)
	}
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
	assert.Contains(t, client.lastPrompt, "Data Pipelines")
}

func TestProjectIdeas(t *testing.T) {
	client := &stubClient{response: `[
		{"title": "Streaming dashboard", "description": "Kafka to dashboard", "difficulty": "Intermediate", "skills": ["Kafka"], "duration": "3 weeks"}
	]`}
	gen := NewGenerator(client)

	ideas, err := gen.ProjectIdeas(context.Background(), testProfile())
	require.NoError(t, err)

	require.Len(t, ideas, 1)
	assert.Equal(t, "Streaming dashboard", ideas[0].Title)
}

func TestInterviewFeedback(t *testing.T) {
	client := &stubClient{response: `{
		"score": 71,
		"verdict": "Good structure, thin on tradeoffs.",
		"strengths": ["clear framing"],
		"improvements": ["discuss failure modes"],
		"model_answer": "A strong answer would..."
	}`}
	gen := NewGenerator(client)

	feedback, err := gen.InterviewFeedback(context.Background(), "Data Engineer",
		"How would you design a daily batch pipeline?", "I would use cron and a script.")
	require.NoError(t, err)

	assert.Equal(t, 71, feedback.Score)
	assert.Contains(t, client.lastPrompt, "daily batch pipeline")
}

func TestJobScan(t *testing.T) {
	client := &stubClient{response: `[
		{"title": "Data Engineer", "company": "Nordwind", "location": "Berlin", "match_score": 84, "salary": "70-85k", "reason": "strong SQL"}
	]`}
	gen := NewGenerator(client)

	matches, err := gen.JobScan(context.Background(), testProfile())
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, 84, matches[0].MatchScore)
	assert.Equal(t, TierLite, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Berlin")
}

func TestResumeImport(t *testing.T) {
	client := &stubClient{response: `{
		"name": "Dana Meyer",
		"current_role": "Data Analyst",
		"skills": [{"name": "SQL", "category": "Technical", "level": "Advanced"}],
		"experience": [{"role": "Data Analyst", "company": "Acme", "start_date": "2021", "end_date": ""}]
	}`}
	gen := NewGenerator(client)

	imported, err := gen.ResumeImport(context.Background(), "Dana Meyer\nData Analyst at Acme since 2021...")
	require.NoError(t, err)

	assert.Equal(t, "Dana Meyer", imported.Name)
	require.Len(t, imported.Skills, 1)
	assert.NotEmpty(t, imported.Skills[0].ID)
	assert.Equal(t, "resume", imported.Skills[0].Source)
	require.Len(t, imported.Experience, 1)
	assert.NotEmpty(t, imported.Experience[0].ID)
}

func TestGenerate_MalformedJSON(t *testing.T) {
	client := &stubClient{response: `not json at all`}
	gen := NewGenerator(client)

	_, err := gen.GapAnalysis(context.Background(), testProfile())
	require.Error(t, err)
}
