// Package roadmap flattens an AI-generated phase/item roadmap into the
// short, prioritized "recommended actions" list shown on the analysis page.
package roadmap

import (
	"strings"

	"github.com/martinsumner/careerpilot/internal/types"
)

// ActionType classifies how a recommended action is displayed.
type ActionType string

// Action display types
const (
	ActionCourse  ActionType = "course"
	ActionProject ActionType = "project"
	ActionMentor  ActionType = "mentor"
)

// maxActions is the number of recommended actions surfaced at once.
const maxActions = 3

// Action is one recommended near-term step derived from the roadmap.
type Action struct {
	Title    string     `json:"title"`
	Phase    string     `json:"phase,omitempty"`
	Duration string     `json:"duration"`
	Tag      string     `json:"tag"`
	Type     ActionType `json:"type"`
}

// Reconcile collects every unfinished item across all phases in phase then
// item order, falls back to the first phase's items when everything is
// done, and returns at most three actions. The first action carries the
// "High Impact" tag. An empty roadmap yields a single synthesized starter
// action, so the result is never empty.
func Reconcile(phases []types.RoadmapPhase) []Action {
	candidates := pendingItems(phases)

	if len(candidates) == 0 && len(phases) > 0 {
		for _, item := range phases[0].Items {
			candidates = append(candidates, candidate{item: item, phase: phases[0]})
		}
	}

	if len(candidates) > maxActions {
		candidates = candidates[:maxActions]
	}

	actions := make([]Action, 0, len(candidates))
	for i, c := range candidates {
		duration := c.item.Subtitle
		if duration == "" {
			duration = c.phase.Duration
		}

		tag := ""
		if i == 0 {
			tag = "High Impact"
		}

		actions = append(actions, Action{
			Title:    c.item.Title,
			Phase:    c.phase.Title,
			Duration: duration,
			Tag:      tag,
			Type:     classify(c.item.Title),
		})
	}

	if len(actions) == 0 {
		actions = append(actions, Action{
			Title:    "Start Foundation Phase",
			Duration: "4 Weeks",
			Tag:      "High Impact",
			Type:     ActionCourse,
		})
	}

	return actions
}

type candidate struct {
	item  types.RoadmapItem
	phase types.RoadmapPhase
}

// pendingItems walks all phases and collects items not yet completed,
// preserving phase order then item order.
func pendingItems(phases []types.RoadmapPhase) []candidate {
	var out []candidate
	for _, phase := range phases {
		for _, item := range phase.Items {
			if item.Status == types.PhaseCompleted {
				continue
			}
			out = append(out, candidate{item: item, phase: phase})
		}
	}
	return out
}

// classify picks a display type from keywords in the item title; anything
// unrecognized defaults to a course.
func classify(title string) ActionType {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "project") || strings.Contains(lower, "build"):
		return ActionProject
	case strings.Contains(lower, "mentor") || strings.Contains(lower, "review") ||
		strings.Contains(lower, "interview"):
		return ActionMentor
	default:
		return ActionCourse
	}
}
