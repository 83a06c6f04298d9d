package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsumner/careerpilot/internal/types"
)

func TestGetTasks_Empty(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestSaveTasks(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodPut, "/tasks", []map[string]any{
		{"title": "Read the Spark docs", "type": "Reading", "duration": "2 hours"},
		{"id": "42", "title": "Build an ETL job", "type": "Building", "status": "In Progress"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decodeBody[[]types.Task](t, w)
	require.Len(t, tasks, 2)
	assert.NotEmpty(t, tasks[0].ID)
	assert.Equal(t, types.StatusTodo, tasks[0].Status)
	// Supplied ID and status survive the save.
	assert.Equal(t, "42", tasks[1].ID)
	assert.Equal(t, types.StatusInProgress, tasks[1].Status)

	w = doAuthed(t, s, userID, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]types.Task](t, w), 2)
}

func TestAddTask(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodPost, "/tasks", map[string]any{
		"title": "Practice SQL window functions",
		"type":  "Practice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	task := decodeBody[types.Task](t, w)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, types.StatusTodo, task.Status)
}

func TestAddTask_MissingTitle(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodPost, "/tasks", map[string]any{
		"type": "Practice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleTask(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	store.tasks[userID] = []types.Task{
		{ID: "7", Title: "Read the Spark docs", Type: types.TaskReading, Status: types.StatusTodo},
	}

	w := doAuthed(t, s, userID, http.MethodPost, "/tasks/7/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, "7", resp["id"])
	assert.Equal(t, "Done", resp["status"])

	// Toggling again restores the original status.
	w = doAuthed(t, s, userID, http.MethodPost, "/tasks/7/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody[map[string]string](t, w)
	assert.Equal(t, "Todo", resp["status"])
}

func TestToggleTask_NotFound(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)

	w := doAuthed(t, s, userID, http.MethodPost, "/tasks/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleTask_MovesReadinessScore(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	userID := seedUser(t, store)
	store.tasks[userID] = []types.Task{
		{ID: "7", Title: "Read the Spark docs", Type: types.TaskReading, Status: types.StatusTodo},
	}

	w := doAuthed(t, s, userID, http.MethodPost, "/tasks/7/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	after, err := store.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Greater(t, after.ReadinessScore, 0)
}
