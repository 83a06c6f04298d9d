package server

import (
	"encoding/json"
	"net/http"
)

// ReconfigureKeyRequest carries a replacement model API key.
type ReconfigureKeyRequest struct {
	APIKey string `json:"api_key"`
}

// handleReconfigureAIKey swaps the model credential at runtime. Generators
// are built per request, so the new key takes effect immediately.
func (s *Server) handleReconfigureAIKey(w http.ResponseWriter, r *http.Request) {
	var req ReconfigureKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.aiConfig.Reconfigure(req.APIKey); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}
