package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/martinsumner/careerpilot/internal/db"
	"github.com/martinsumner/careerpilot/internal/profile"
	"github.com/martinsumner/careerpilot/internal/server/middleware"
	"github.com/martinsumner/careerpilot/internal/types"
)

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tasks, err := s.store.GetTasks(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, tasks)
}

// handleSaveTasks replaces the task list wholesale, preserving order.
// Tasks without an ID get a fresh one.
func (s *Server) handleSaveTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var tasks []types.Task
	if err := json.NewDecoder(r.Body).Decode(&tasks); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = profile.NewItemID()
		}
		if tasks[i].Status == "" {
			tasks[i].Status = types.StatusTodo
		}
	}

	if err := s.store.ReplaceTasks(r.Context(), userID, tasks); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, tasks)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var task types.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if task.Title == "" {
		s.errorResponse(w, http.StatusBadRequest, "Task title is required")
		return
	}
	task.ID = profile.NewItemID()
	if task.Status == "" {
		task.Status = types.StatusTodo
	}

	if err := s.store.AppendTask(r.Context(), userID, task); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, task)
}

// handleToggleTask flips a task between Todo and Done and returns the new
// status. The stored readiness score moves with the completion rate.
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	taskID := r.PathValue("id")
	status, err := s.store.ToggleTask(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, db.ErrTaskNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Task not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.refreshScores(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"id":     taskID,
		"status": string(status),
	})
}
