package types

// SkillGap is one gap surfaced by the AI gap analysis, ordered by severity.
type SkillGap struct {
	Name       string `json:"name"`
	Importance string `json:"importance,omitempty"` // "Critical", "Important", "Nice to Have"
	Reason     string `json:"reason,omitempty"`
}

// AnalysisResult is the AI boundary's gap analysis payload for a
// current-role to target-role transition.
type AnalysisResult struct {
	MatchScore   int        `json:"match_score"` // 0-100
	Summary      string     `json:"summary"`
	StrongSkills []string   `json:"strong_skills"`
	CriticalGaps []SkillGap `json:"critical_gaps"`
	NiceToHave   []SkillGap `json:"nice_to_have,omitempty"`
}

// InterviewFeedback is the AI boundary's verdict on a mock interview answer.
type InterviewFeedback struct {
	Score        int      `json:"score"` // 0-100
	Verdict      string   `json:"verdict"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	ModelAnswer  string   `json:"model_answer,omitempty"`
}

// JobMatch is one entry of an AI-generated job-market scan.
type JobMatch struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location,omitempty"`
	MatchScore int    `json:"match_score"` // 0-100
	Salary     string `json:"salary,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// ProjectIdea is one AI-suggested portfolio project.
type ProjectIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

// ResumeImport is the partial profile extracted from an uploaded résumé.
// Fields follow ProfileUpdate semantics: present collections replace the
// stored ones, absent fields are untouched.
type ResumeImport struct {
	Name           string            `json:"name,omitempty"`
	CurrentRole    string            `json:"current_role,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Skills         []Skill           `json:"skills,omitempty"`
	Experience     []ExperienceEntry `json:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Certifications []Certification   `json:"certifications,omitempty"`
	Projects       []Project         `json:"projects,omitempty"`
}
