package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/RohanMakvana24/Resume-Pilot/internal/progress"
	"github.com/RohanMakvana24/Resume-Pilot/internal/schemas"
	"github.com/RohanMakvana24/Resume-Pilot/internal/server/middleware"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// maxBodyBytes caps patch payloads; rich-text sections stay well under this.
const maxBodyBytes = 1 << 20

// CreateResumeRequest is the payload to create a new resume document.
type CreateResumeRequest struct {
	Title string `json:"title"`
}

// handleCreateResume creates an empty resume owned by the caller
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Title == "" {
		req.Title = "Untitled Resume"
	}

	id, err := s.resumes.CreateResume(r.Context(), userID, req.Title)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id, "title": req.Title})
}

// handleListResumes returns the caller's resumes with per-document completion.
// Progress requires the full document, so rows are enriched concurrently.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := s.resumes.ListResumes(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(8)
	for i := range summaries {
		g.Go(func() error {
			resume, err := s.resumes.GetResume(ctx, summaries[i].ID)
			if err != nil {
				return err
			}
			summaries[i].Progress = progress.Evaluate(resume).Percent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

// handleGetResume returns one resume document
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handlePatchResume applies a partial update to a resume's fields. A live
// editing session, if open, sees the change immediately.
func (s *Server) handlePatchResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
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
	if patch.IsEmpty() {
		s.errorResponse(w, http.StatusBadRequest, "Empty patch")
		return
	}

	if err := s.resumes.PatchResume(r.Context(), resume.ID, &patch); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Direct patches bypass the editor path; drop any open session so the
	// next section save reloads fresh state.
	s.sessions.drop(resume.ID)

	updated, err := s.resumes.GetResume(r.Context(), resume.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteResume removes a resume and its editing session
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}

	if err := s.resumes.DeleteResume(r.Context(), resume.ID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.sessions.drop(resume.ID)
	w.WriteHeader(http.StatusNoContent)
}

// handleProgress reports section completion for a resume
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.fetchOwned(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, progress.Evaluate(resume))
}

// fetchOwned loads the resume in the URL path and verifies the caller owns
// it. Documents owned by other users read as not found.
func (s *Server) fetchOwned(w http.ResponseWriter, r *http.Request) (*types.Resume, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return nil, false
	}

	resume, err := s.resumes.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if resume == nil || resume.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return nil, false
	}
	return resume, true
}
