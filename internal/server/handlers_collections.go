package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/martinsumner/careerpilot/internal/profile"
	"github.com/martinsumner/careerpilot/internal/server/middleware"
	"github.com/martinsumner/careerpilot/internal/types"
)

// ---------------------------------------------------------------------
// Profile sub-collection handlers. Adds and edits go through the upsert
// ops so ordering and ID rules hold; every mutation is persisted as a
// wholesale collection replacement and the derived scores are refreshed.
// ---------------------------------------------------------------------

func (s *Server) loadProfileForUpdate(w http.ResponseWriter, r *http.Request) (uuid.UUID, *types.UserProfile, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, nil, false
	}

	p, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return uuid.Nil, nil, false
	}
	if p == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return uuid.Nil, nil, false
	}
	return userID, p, true
}

func (s *Server) persistCollections(w http.ResponseWriter, r *http.Request, userID uuid.UUID, update *types.ProfileUpdate, result any) {
	if err := s.store.UpdateProfile(r.Context(), userID, update); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if _, err := s.refreshScores(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// --- skills ---

func (s *Server) upsertSkill(w http.ResponseWriter, r *http.Request, isNew bool) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	var skill types.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if skill.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Skill name is required")
		return
	}
	skills, err := profile.UpsertSkill(p.Skills, skill, isNew, s.policy)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.persistCollections(w, r, userID, &types.ProfileUpdate{Skills: skills}, skills)
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	s.upsertSkill(w, r, true)
}

func (s *Server) handleEditSkill(w http.ResponseWriter, r *http.Request) {
	s.upsertSkill(w, r, false)
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	skills := profile.RemoveSkillByName(p.Skills, r.PathValue("name"))
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Skills: skills}, skills)
}

// --- experience ---

func (s *Server) upsertExperience(w http.ResponseWriter, r *http.Request, isNew bool) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	var entry types.ExperienceEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	entries := profile.UpsertExperience(p.Experience, entry, isNew)
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Experience: entries}, entries)
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	s.upsertExperience(w, r, true)
}

func (s *Server) handleEditExperience(w http.ResponseWriter, r *http.Request) {
	s.upsertExperience(w, r, false)
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	entries := profile.RemoveExperience(p.Experience, r.PathValue("id"))
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Experience: entries}, entries)
}

// --- education ---

func (s *Server) upsertEducation(w http.ResponseWriter, r *http.Request, isNew bool) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	var entry types.EducationEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	entries := profile.UpsertEducation(p.Education, entry, isNew)
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Education: entries}, entries)
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	s.upsertEducation(w, r, true)
}

func (s *Server) handleEditEducation(w http.ResponseWriter, r *http.Request) {
	s.upsertEducation(w, r, false)
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	entries := profile.RemoveEducation(p.Education, r.PathValue("id"))
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Education: entries}, entries)
}

// --- certifications ---

func (s *Server) upsertCertification(w http.ResponseWriter, r *http.Request, isNew bool) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	var cert types.Certification
	if err := json.NewDecoder(r.Body).Decode(&cert); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	certs := profile.UpsertCertification(p.Certifications, cert, isNew)
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Certifications: certs}, certs)
}

func (s *Server) handleAddCertification(w http.ResponseWriter, r *http.Request) {
	s.upsertCertification(w, r, true)
}

func (s *Server) handleEditCertification(w http.ResponseWriter, r *http.Request) {
	s.upsertCertification(w, r, false)
}

func (s *Server) handleRemoveCertification(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	certs := profile.RemoveCertification(p.Certifications, r.PathValue("id"))
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Certifications: certs}, certs)
}

// --- projects ---

func (s *Server) upsertProject(w http.ResponseWriter, r *http.Request, isNew bool) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	var project types.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	projects := profile.UpsertProject(p.Projects, project, isNew)
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Projects: projects}, projects)
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	s.upsertProject(w, r, true)
}

func (s *Server) handleEditProject(w http.ResponseWriter, r *http.Request) {
	s.upsertProject(w, r, false)
}

func (s *Server) handleRemoveProject(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.loadProfileForUpdate(w, r)
	if !ok {
		return
	}

	projects := profile.RemoveProject(p.Projects, r.PathValue("id"))
	s.persistCollections(w, r, userID, &types.ProfileUpdate{Projects: projects}, projects)
}
