// Package profile implements the replace-collection mutation contract for
// profile sub-collections: every add, edit or remove builds the complete
// new collection, which the caller then submits atomically. There is no
// partial patch of a single sub-item.
package profile

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/martinsumner/careerpilot/internal/types"
)

// Policy controls collection-level rules for skill edits.
type Policy struct {
	// AllowDuplicateSkills permits two skills with the same name. Off by
	// default: re-adding an existing name is rejected rather than silently
	// appended.
	AllowDuplicateSkills bool
}

// ErrDuplicateSkill is returned when a new skill's name already exists in
// the set and the policy rejects duplicates.
type ErrDuplicateSkill struct {
	Name string
}

func (e *ErrDuplicateSkill) Error() string {
	return fmt.Sprintf("skill already exists: %s", e.Name)
}

// lastItemID backs NewItemID's monotonicity guarantee when two items are
// created within the same millisecond.
var lastItemID atomic.Int64

// NewItemID returns a fresh collection-item identifier derived from the
// current timestamp, strictly increasing across calls.
func NewItemID() string {
	now := time.Now().UnixMilli()
	for {
		last := lastItemID.Load()
		if now <= last {
			now = last + 1
		}
		if lastItemID.CompareAndSwap(last, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}

// UpsertSkill inserts or replaces a skill and returns the new collection.
// New skills get a fresh ID; edits preserve the existing one. Duplicate
// names are rejected per the policy.
func UpsertSkill(skills []types.Skill, skill types.Skill, isNew bool, policy Policy) ([]types.Skill, error) {
	if isNew && !policy.AllowDuplicateSkills {
		for _, existing := range skills {
			if strings.EqualFold(existing.Name, skill.Name) {
				return nil, &ErrDuplicateSkill{Name: skill.Name}
			}
		}
	}
	return upsert(skills, skill, isNew, func(s *types.Skill) *string { return &s.ID }), nil
}

// RemoveSkillByName removes every skill matching the name, case-insensitively.
func RemoveSkillByName(skills []types.Skill, name string) []types.Skill {
	out := make([]types.Skill, 0, len(skills))
	for _, s := range skills {
		if !strings.EqualFold(s.Name, name) {
			out = append(out, s)
		}
	}
	return out
}

// UpsertExperience inserts or replaces an experience entry.
func UpsertExperience(items []types.ExperienceEntry, item types.ExperienceEntry, isNew bool) []types.ExperienceEntry {
	return upsert(items, item, isNew, func(e *types.ExperienceEntry) *string { return &e.ID })
}

// UpsertEducation inserts or replaces an education entry.
func UpsertEducation(items []types.EducationEntry, item types.EducationEntry, isNew bool) []types.EducationEntry {
	return upsert(items, item, isNew, func(e *types.EducationEntry) *string { return &e.ID })
}

// UpsertCertification inserts or replaces a certification.
func UpsertCertification(items []types.Certification, item types.Certification, isNew bool) []types.Certification {
	return upsert(items, item, isNew, func(c *types.Certification) *string { return &c.ID })
}

// UpsertProject inserts or replaces a project.
func UpsertProject(items []types.Project, item types.Project, isNew bool) []types.Project {
	return upsert(items, item, isNew, func(p *types.Project) *string { return &p.ID })
}

// RemoveExperience removes the entry with the given ID, if present.
func RemoveExperience(items []types.ExperienceEntry, id string) []types.ExperienceEntry {
	return remove(items, id, func(e *types.ExperienceEntry) *string { return &e.ID })
}

// RemoveEducation removes the entry with the given ID, if present.
func RemoveEducation(items []types.EducationEntry, id string) []types.EducationEntry {
	return remove(items, id, func(e *types.EducationEntry) *string { return &e.ID })
}

// RemoveCertification removes the entry with the given ID, if present.
func RemoveCertification(items []types.Certification, id string) []types.Certification {
	return remove(items, id, func(c *types.Certification) *string { return &c.ID })
}

// RemoveProject removes the entry with the given ID, if present.
func RemoveProject(items []types.Project, id string) []types.Project {
	return remove(items, id, func(p *types.Project) *string { return &p.ID })
}

// upsert returns a fresh slice: for a new item it appends with a generated
// ID; for an edit it replaces the element with the matching ID in place,
// appending when no match exists so the edit is never lost.
func upsert[T any](items []T, item T, isNew bool, idOf func(*T) *string) []T {
	out := make([]T, len(items))
	copy(out, items)

	if isNew {
		*idOf(&item) = NewItemID()
		return append(out, item)
	}

	id := *idOf(&item)
	for i := range out {
		if *idOf(&out[i]) == id {
			out[i] = item
			return out
		}
	}
	return append(out, item)
}

func remove[T any](items []T, id string, idOf func(*T) *string) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if *idOf(&items[i]) == id {
			continue
		}
		out = append(out, items[i])
	}
	return out
}
