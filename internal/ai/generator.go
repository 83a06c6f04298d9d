package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/martinsumner/careerpilot/internal/profile"
	"github.com/martinsumner/careerpilot/internal/prompts"
	"github.com/martinsumner/careerpilot/internal/types"
)

const generationFile = "generation.json"

// Generator produces the coaching artifacts: it renders a prompt from the
// user's profile, calls the model for JSON, schema-checks the response and
// unmarshals it into the domain type.
type Generator struct {
	client Client
}

// NewGenerator creates a Generator on top of a model client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// GapAnalysis compares the profile against the target role and returns the
// scored skill-gap breakdown.
func (g *Generator) GapAnalysis(ctx context.Context, p *types.UserProfile) (*types.AnalysisResult, error) {
	prompt := renderPrompt("gap-analysis", map[string]string{
		"Role":       roleOrDefault(p.CurrentRole),
		"TargetRole": roleOrDefault(p.TargetRole),
		"Profile":    profileSummary(p),
	})

	var result types.AnalysisResult
	if err := g.generate(ctx, prompt, TierStandard, analysisSchema, &result); err != nil {
		return nil, fmt.Errorf("gap analysis: %w", err)
	}
	return &result, nil
}

// Roadmap generates a phased learning roadmap toward the target role.
func (g *Generator) Roadmap(ctx context.Context, p *types.UserProfile) ([]types.RoadmapPhase, error) {
	prompt := renderPrompt("roadmap", map[string]string{
		"Role":       roleOrDefault(p.CurrentRole),
		"TargetRole": roleOrDefault(p.TargetRole),
		"Profile":    profileSummary(p),
	})

	var phases []types.RoadmapPhase
	if err := g.generate(ctx, prompt, TierAdvanced, roadmapSchema, &phases); err != nil {
		return nil, fmt.Errorf("roadmap: %w", err)
	}
	return phases, nil
}

// WeeklyTasks generates a week of tasks biased toward the given focus area.
// Generated tasks get fresh IDs and start as Todo regardless of what the
// model returned.
func (g *Generator) WeeklyTasks(ctx context.Context, p *types.UserProfile, focusArea string) ([]types.Task, error) {
	prompt := renderPrompt("weekly-tasks", map[string]string{
		"Role":       roleOrDefault(p.CurrentRole),
		"TargetRole": roleOrDefault(p.TargetRole),
		"FocusArea":  focusArea,
		"Profile":    profileSummary(p),
	})

	var tasks []types.Task
	if err := g.generate(ctx, prompt, TierStandard, tasksSchema, &tasks); err != nil {
		return nil, fmt.Errorf("weekly tasks: %w", err)
	}
	for i := range tasks {
		tasks[i].ID = profile.NewItemID()
		tasks[i].Status = types.StatusTodo
	}
	return tasks, nil
}

// ProjectIdeas suggests portfolio projects that close the profile's gaps.
func (g *Generator) ProjectIdeas(ctx context.Context, p *types.UserProfile) ([]types.ProjectIdea, error) {
	prompt := renderPrompt("project-ideas", map[string]string{
		"Role":       roleOrDefault(p.CurrentRole),
		"TargetRole": roleOrDefault(p.TargetRole),
		"Profile":    profileSummary(p),
	})

	var ideas []types.ProjectIdea
	if err := g.generate(ctx, prompt, TierStandard, projectIdeasSchema, &ideas); err != nil {
		return nil, fmt.Errorf("project ideas: %w", err)
	}
	return ideas, nil
}

// InterviewFeedback scores a mock interview answer for the target role.
func (g *Generator) InterviewFeedback(ctx context.Context, targetRole, question, answer string) (*types.InterviewFeedback, error) {
	prompt := renderPrompt("interview-feedback", map[string]string{
		"TargetRole": roleOrDefault(targetRole),
		"Question":   question,
		"Answer":     answer,
	})

	var feedback types.InterviewFeedback
	if err := g.generate(ctx, prompt, TierStandard, interviewSchema, &feedback); err != nil {
		return nil, fmt.Errorf("interview feedback: %w", err)
	}
	return &feedback, nil
}

// JobScan generates representative job-market matches for the profile.
func (g *Generator) JobScan(ctx context.Context, p *types.UserProfile) ([]types.JobMatch, error) {
	locationClause := ""
	if p.Location != "" {
		locationClause = " in " + p.Location
	}
	prompt := renderPrompt("job-scan", map[string]string{
		"TargetRole":     roleOrDefault(p.TargetRole),
		"LocationClause": locationClause,
		"Profile":        profileSummary(p),
	})

	var matches []types.JobMatch
	if err := g.generate(ctx, prompt, TierLite, jobScanSchema, &matches); err != nil {
		return nil, fmt.Errorf("job scan: %w", err)
	}
	return matches, nil
}

// ResumeImport extracts a partial profile from résumé text. Extracted
// collection items get fresh IDs and are marked as resume-sourced.
func (g *Generator) ResumeImport(ctx context.Context, resumeText string) (*types.ResumeImport, error) {
	prompt := renderPrompt("resume-import", map[string]string{
		"ResumeText": resumeText,
	})

	var imported types.ResumeImport
	if err := g.generate(ctx, prompt, TierStandard, resumeImportSchema, &imported); err != nil {
		return nil, fmt.Errorf("resume import: %w", err)
	}

	for i := range imported.Skills {
		imported.Skills[i].ID = profile.NewItemID()
		imported.Skills[i].Source = "resume"
	}
	for i := range imported.Experience {
		imported.Experience[i].ID = profile.NewItemID()
	}
	for i := range imported.Education {
		imported.Education[i].ID = profile.NewItemID()
	}
	for i := range imported.Certifications {
		imported.Certifications[i].ID = profile.NewItemID()
	}
	for i := range imported.Projects {
		imported.Projects[i].ID = profile.NewItemID()
	}
	return &imported, nil
}

func (g *Generator) generate(ctx context.Context, prompt string, tier ModelTier, schema string, out any) error {
	raw, err := g.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return err
	}
	if err := validateSchema(schema, raw); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to parse generated document: %w", err)
	}
	return nil
}

func renderPrompt(key string, data map[string]string) string {
	return prompts.Format(prompts.MustGet(generationFile, key), data)
}

func roleOrDefault(role string) string {
	if strings.TrimSpace(role) == "" {
		return "an unspecified role"
	}
	return role
}

// profileSummary renders the profile as compact prompt context.
func profileSummary(p *types.UserProfile) string {
	var sb strings.Builder

	if len(p.Skills) > 0 {
		sb.WriteString("Skills:\n")
		for _, s := range p.Skills {
			fmt.Fprintf(&sb, "- %s (%s, %s)\n", s.Name, s.Category, s.Level)
		}
	}
	if len(p.Experience) > 0 {
		sb.WriteString("Experience:\n")
		for _, e := range p.Experience {
			end := e.EndDate
			if end == "" {
				end = "present"
			}
			fmt.Fprintf(&sb, "- %s at %s (%s to %s)", e.Role, e.Company, e.StartDate, end)
			if e.Description != "" {
				fmt.Fprintf(&sb, ": %s", e.Description)
			}
			sb.WriteString("\n")
		}
	}
	if len(p.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&sb, "- %s, %s %s (%s)\n", e.School, e.Degree, e.Field, e.Year)
		}
	}
	if len(p.Certifications) > 0 {
		sb.WriteString("Certifications:\n")
		for _, c := range p.Certifications {
			fmt.Fprintf(&sb, "- %s (%s, %s)\n", c.Name, c.Issuer, c.Year)
		}
	}
	if len(p.Projects) > 0 {
		sb.WriteString("Projects:\n")
		for _, pr := range p.Projects {
			fmt.Fprintf(&sb, "- %s: %s [%s]\n", pr.Name, pr.Description, strings.Join(pr.Tech, ", "))
		}
	}
	if p.Bio != "" {
		fmt.Fprintf(&sb, "Bio: %s\n", p.Bio)
	}

	if sb.Len() == 0 {
		return "(empty profile)"
	}
	return strings.TrimRight(sb.String(), "\n")
}
