package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/RohanMakvana24/Resume-Pilot/internal/editor"
	"github.com/RohanMakvana24/Resume-Pilot/internal/schemas"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

var knownSections = map[string]bool{
	editor.SectionPersonal:   true,
	editor.SectionSummary:    true,
	editor.SectionExperience: true,
	editor.SectionEducation:  true,
	editor.SectionSkills:     true,
	editor.SectionProjects:   true,
}

// handleSaveSection persists one section edit through the resume's editing
// session, so the per-section save lifecycle and minimum-entry rules apply.
func (s *Server) handleSaveSection(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}

	section := r.PathValue("section")
	if !knownSections[section] {
		s.errorResponse(w, http.StatusNotFound, "Unknown section: "+section)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid body: "+err.Error())
		return
	}
	if err := schemas.ValidatePatch(raw); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var patch types.SectionPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	sess, err := s.session(r.Context(), resume.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := sess.SaveSection(r.Context(), section, &patch); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"section":  section,
		"saved":    true,
		"document": sess.Store.Snapshot(),
	})
}
