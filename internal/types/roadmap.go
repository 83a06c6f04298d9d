package types

// PhaseStatus marks where a roadmap phase sits in the user's progression.
type PhaseStatus string

// Phase and item statuses
const (
	PhaseCompleted  PhaseStatus = "Completed"
	PhaseInProgress PhaseStatus = "In Progress"
	PhaseLocked     PhaseStatus = "Locked"
)

// Resource is a learning resource attached to a roadmap item.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"` // "video", "article", "course", "docs"
}

// RoadmapItem is one step inside a roadmap phase. Subtitle and Progress
// are optional; absent fields are treated as empty downstream.
type RoadmapItem struct {
	Title     string      `json:"title"`
	Status    PhaseStatus `json:"status"`
	Subtitle  string      `json:"subtitle,omitempty"`
	Progress  *int        `json:"progress,omitempty"` // 0-100
	Resources []Resource  `json:"resources,omitempty"`
}

// RoadmapPhase is one phase of an AI-generated career roadmap. Phases are
// produced fresh on every generation; the only shape guarantee is valid
// JSON, so consumers must tolerate missing items.
type RoadmapPhase struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Status   PhaseStatus   `json:"status"`
	Duration string        `json:"duration,omitempty"`
	Items    []RoadmapItem `json:"items"`
}
