package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/martinsumner/careerpilot/internal/db"
	"github.com/martinsumner/careerpilot/internal/focus"
	"github.com/martinsumner/careerpilot/internal/server/middleware"
	"github.com/martinsumner/careerpilot/internal/types"
)

// ---------------------------------------------------------------------
// Generation handlers. Each one renders the user's profile into a prompt,
// calls the model and caches the validated result keyed by
// (user, kind, current role, target role) so later reads and the focus
// chain can reuse it without another model call.
// ---------------------------------------------------------------------

// artifactKinds maps the GET /artifacts/{kind} path segment to cache kinds.
var artifactKinds = map[string]string{
	"analysis":  db.ArtifactAnalysis,
	"roadmap":   db.ArtifactRoadmap,
	"projects":  db.ArtifactProjects,
	"interview": db.ArtifactInterview,
	"jobs":      db.ArtifactJobScan,
}

func (s *Server) profileForGeneration(w http.ResponseWriter, r *http.Request) (uuid.UUID, *types.UserProfile, bool) {
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

// cacheArtifact stores a generated payload; failures are logged, not
// surfaced, since the generation itself succeeded.
func (s *Server) cacheArtifact(ctx context.Context, userID uuid.UUID, kind string, p *types.UserProfile, payload any) {
	content, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling %s artifact: %v", kind, err)
		return
	}
	if err := s.store.SaveArtifact(ctx, userID, kind, p.CurrentRole, p.TargetRole, content); err != nil {
		log.Printf("Error caching %s artifact: %v", kind, err)
	}
}

func (s *Server) generationError(w http.ResponseWriter, op string, err error) {
	genErr := &ErrGeneration{Op: op, Cause: err}
	log.Printf("%v", genErr)
	s.jsonResponse(w, HTTPStatus(genErr), map[string]string{
		"error": genErr.Error(),
		"hint":  "check or reconfigure the AI credential via PUT /settings/ai-key",
	})
}

func (s *Server) handleGenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	analysis, err := gen.GapAnalysis(r.Context(), p)
	if err != nil {
		s.generationError(w, "gap analysis", err)
		return
	}

	s.cacheArtifact(r.Context(), userID, db.ArtifactAnalysis, p, analysis)
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	phases, err := gen.Roadmap(r.Context(), p)
	if err != nil {
		s.generationError(w, "roadmap", err)
		return
	}

	s.cacheArtifact(r.Context(), userID, db.ArtifactRoadmap, p, phases)
	s.jsonResponse(w, http.StatusOK, phases)
}

// handleGenerateTasks resolves the focus area from cached artifacts,
// generates a week of tasks biased toward it and replaces the task list.
func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	focusArea := focus.Resolve(r.Context(), s.store, userID, p.CurrentRole, p.TargetRole)

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	tasks, err := gen.WeeklyTasks(r.Context(), p, focusArea)
	if err != nil {
		s.generationError(w, "weekly tasks", err)
		return
	}

	if err := s.store.ReplaceTasks(r.Context(), userID, tasks); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"focus_area": focusArea,
		"tasks":      tasks,
	})
}

func (s *Server) handleGenerateProjects(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	ideas, err := gen.ProjectIdeas(r.Context(), p)
	if err != nil {
		s.generationError(w, "project ideas", err)
		return
	}

	s.cacheArtifact(r.Context(), userID, db.ArtifactProjects, p, ideas)
	s.jsonResponse(w, http.StatusOK, ideas)
}

// InterviewRequest is the mock-interview request body.
type InterviewRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) handleGenerateInterview(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	var req InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" || req.Answer == "" {
		s.errorResponse(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	feedback, err := gen.InterviewFeedback(r.Context(), p.TargetRole, req.Question, req.Answer)
	if err != nil {
		s.generationError(w, "interview feedback", err)
		return
	}

	s.cacheArtifact(r.Context(), userID, db.ArtifactInterview, p, feedback)
	s.jsonResponse(w, http.StatusOK, feedback)
}

func (s *Server) handleGenerateJobs(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	gen, closeGen, err := s.generator(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer closeGen()

	matches, err := gen.JobScan(r.Context(), p)
	if err != nil {
		s.generationError(w, "job scan", err)
		return
	}

	s.cacheArtifact(r.Context(), userID, db.ArtifactJobScan, p, matches)
	s.jsonResponse(w, http.StatusOK, matches)
}

// handleGetCachedArtifact returns the last generated artifact of a kind
// for the user's current role pair, or 404 when none exists.
func (s *Server) handleGetCachedArtifact(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	kind, known := artifactKinds[r.PathValue("kind")]
	if !known {
		s.errorResponse(w, http.StatusNotFound, "Unknown artifact kind")
		return
	}

	content, err := s.store.GetArtifact(r.Context(), userID, kind, p.CurrentRole, p.TargetRole)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "No cached artifact")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Printf("Error writing artifact response: %v", err)
	}
}
