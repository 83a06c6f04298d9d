package server

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/martinsumner/careerpilot/internal/focus"
	"github.com/martinsumner/careerpilot/internal/roadmap"
	"github.com/martinsumner/careerpilot/internal/server/middleware"
	"github.com/martinsumner/careerpilot/internal/types"
)

// DashboardResponse bundles the profile with its derived metrics.
type DashboardResponse struct {
	User    *types.UserProfile   `json:"user"`
	Metrics types.DerivedMetrics `json:"metrics"`
}

// handleDashboard computes the metrics snapshot from the profile and the
// current task list. The two reads are independent, so they run concurrently.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var (
		p     *types.UserProfile
		tasks []types.Task
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		p, err = s.store.GetProfile(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.store.GetTasks(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if p == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	snapshot := s.engine.Snapshot(p, tasks, p.CreatedAt.Format("2006-01-02"))
	s.jsonResponse(w, http.StatusOK, DashboardResponse{User: p, Metrics: snapshot})
}

// handleFocus reports the focus area the next task generation would target.
func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	focusArea := focus.Resolve(r.Context(), s.store, userID, p.CurrentRole, p.TargetRole)
	s.jsonResponse(w, http.StatusOK, map[string]string{"focus_area": focusArea})
}

// handleRecommendedActions derives next-step suggestions from the cached
// roadmap. An absent or unreadable roadmap still yields the generic actions.
func (s *Server) handleRecommendedActions(w http.ResponseWriter, r *http.Request) {
	userID, p, ok := s.profileForGeneration(w, r)
	if !ok {
		return
	}

	var phases []types.RoadmapPhase
	content, err := s.store.CachedRoadmap(r.Context(), userID, p.CurrentRole, p.TargetRole)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content != nil {
		if err := json.Unmarshal(content, &phases); err != nil {
			log.Printf("Error decoding cached roadmap for %s: %v", userID, err)
			phases = nil
		}
	}

	s.jsonResponse(w, http.StatusOK, roadmap.Reconcile(phases))
}
