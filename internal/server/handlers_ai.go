package server

import (
	"net/http"
)

// handleSummarySuggestions asks the LLM for three tiered summary drafts
// keyed off the resume's job title.
func (s *Server) handleSummarySuggestions(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}
	if s.llm == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI drafting is not configured")
		return
	}

	sess, err := s.session(r.Context(), resume.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	suggestions, err := sess.Summary.GenerateSuggestions(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
