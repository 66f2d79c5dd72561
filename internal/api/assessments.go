package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arbiterhq/arbiter/internal/transcript"
)

// AssessmentRequest is the body of POST /api/v1/assessments.
type AssessmentRequest struct {
	SessionRef string            `json:"session_ref"`
	Turns      []transcript.Turn `json:"turns"`
}

// createAssessment runs the full pipeline synchronously for an inline transcript.
func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.SessionRef == "" {
		writeError(w, http.StatusBadRequest, "session_ref is required")
		return
	}

	assessment, err := s.assessor.Process(r.Context(), req.SessionRef, req.Turns)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "assessment failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, assessment)
}

// listAssessments returns recent assessment summaries, newest first.
func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	summaries, err := s.lister.RecentAssessments(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}
