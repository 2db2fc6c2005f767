package api

import "net/http"

// handleHealth returns a liveness probe - always returns 200 OK.
// This endpoint indicates the server process is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
