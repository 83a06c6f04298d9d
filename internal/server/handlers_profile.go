package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/martinsumner/careerpilot/internal/ingestion"
	"github.com/martinsumner/careerpilot/internal/metrics"
	"github.com/martinsumner/careerpilot/internal/server/middleware"
	"github.com/martinsumner/careerpilot/internal/types"
)

// maxResumeBytes caps résumé uploads at 10 MB.
const maxResumeBytes = 10 << 20

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var update types.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Derived scores are always recomputed server-side
	update.ProfileStrength = nil
	update.ReadinessScore = nil

	if err := s.store.UpdateProfile(r.Context(), userID, &update); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	profile, err := s.refreshScores(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleImportResume accepts a résumé upload (multipart field "resume"),
// extracts its text, asks the model for a partial profile and applies it
// as a profile update.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file")
		return
	}

	text, err := ingestion.ExtractText(header.Header.Get("Content-Type"), data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	imported, err := gen.ResumeImport(r.Context(), text)
	if err != nil {
		genErr := &ErrGeneration{Op: "resume import", Cause: err}
		s.errorResponse(w, HTTPStatus(genErr), genErr.Error())
		return
	}

	update := importToUpdate(imported)
	if err := s.store.UpdateProfile(r.Context(), userID, update); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	profile, err := s.refreshScores(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// importToUpdate converts an extraction result into a partial profile
// update. Empty fields and collections stay nil so they are untouched.
func importToUpdate(imported *types.ResumeImport) *types.ProfileUpdate {
	update := &types.ProfileUpdate{
		Skills:         imported.Skills,
		Experience:     imported.Experience,
		Education:      imported.Education,
		Certifications: imported.Certifications,
		Projects:       imported.Projects,
	}
	if imported.Name != "" {
		update.Name = &imported.Name
	}
	if imported.CurrentRole != "" {
		update.CurrentRole = &imported.CurrentRole
	}
	if imported.Location != "" {
		update.Location = &imported.Location
	}
	if imported.Bio != "" {
		update.Bio = &imported.Bio
	}
	return update
}

// refreshScores recomputes the stored derived scores from the current
// profile and task list and returns the profile carrying the fresh values.
func (s *Server) refreshScores(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	tasks, err := s.store.GetTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	strength := metrics.ProfileStrength(profile)
	readiness := metrics.ReadinessScore(strength, metrics.CompletionRate(tasks), len(profile.Experience) > 0)

	if strength != profile.ProfileStrength || readiness != profile.ReadinessScore {
		update := &types.ProfileUpdate{
			ProfileStrength: &strength,
			ReadinessScore:  &readiness,
		}
		if err := s.store.UpdateProfile(ctx, userID, update); err != nil {
			return nil, fmt.Errorf("failed to store derived scores: %w", err)
		}
		profile.ProfileStrength = strength
		profile.ReadinessScore = readiness
	}

	return profile, nil
}
