package server

import (
	"fmt"
	"net/http"

	"github.com/RohanMakvana24/Resume-Pilot/internal/export"
	"github.com/RohanMakvana24/Resume-Pilot/internal/preview"
)

// handlePreview renders the resume's print layout as standalone HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}

	html, err := preview.RenderHTML(preview.Project(resume))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleExport prints the resume to an A4 PDF. ?fit=center vertically
// centers short documents on the page.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}

	fit := export.FitTop
	if r.URL.Query().Get("fit") == "center" {
		fit = export.FitCenter
	}

	pdf, err := s.exporter.ExportResume(r.Context(), resume, fit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Export error: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(resume)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
