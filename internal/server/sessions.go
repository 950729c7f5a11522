package server

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/RohanMakvana24/Resume-Pilot/internal/editor"
	"github.com/RohanMakvana24/Resume-Pilot/internal/llm"
	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
)

// sessionRegistry keeps one live editor session per open resume. Sessions are
// created lazily on first section save and dropped when the resume is deleted
// or patched outside the editor path.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*editor.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[uuid.UUID]*editor.Session)}
}

func (r *sessionRegistry) get(ctx context.Context, gateway store.Gateway, id uuid.UUID, client llm.Client) (*editor.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[id]; ok {
		return sess, nil
	}
	sess, err := editor.NewSession(ctx, gateway, id, client)
	if err != nil {
		return nil, err
	}
	r.sessions[id] = sess
	return sess, nil
}

func (r *sessionRegistry) drop(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// session returns the live editing session for a resume, creating one if none
// is open yet.
func (s *Server) session(ctx context.Context, id uuid.UUID) (*editor.Session, error) {
	return s.sessions.get(ctx, s.resumes, id, s.llm)
}
