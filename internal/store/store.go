// Package store holds the shared Document Model slot for one editing session.
//
// The store is the single source of truth for the resume currently being
// edited: section editors merge partial patches into it, the preview
// projection and progress tracker re-derive from it on every change, and
// explicit saves go through the persistence gateway. Local merges never
// touch the network.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// ErrNotFound indicates the requested resume does not exist in the gateway.
var ErrNotFound = errors.New("resume not found")

// Gateway is the persistence collaborator the store and editors save
// through. Implemented by db.DB; mocked in tests.
type Gateway interface {
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	PatchResume(ctx context.Context, id uuid.UUID, patch *types.SectionPatch) error
}

// Listener is notified with a snapshot after every successful change to the
// document slot.
type Listener func(*types.Resume)

// Store is a single-slot, observable holder of the resume being edited.
// Merges to disjoint keys commute; concurrent merges to the same key are
// last-write-wins, which is acceptable since the UI exposes one active
// editor per section at a time.
type Store struct {
	gateway Gateway

	mu        sync.Mutex
	id        uuid.UUID
	resume    *types.Resume
	listeners []Listener
}

// New creates a store bound to a resume ID. The slot starts empty until
// Load or the first PatchLocal.
func New(gateway Gateway, id uuid.UUID) *Store {
	return &Store{
		gateway: gateway,
		id:      id,
		resume:  &types.Resume{ID: id},
	}
}

// ID returns the document ID this store is bound to.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// Load fetches the full document from the gateway and replaces the slot
// wholesale. On failure the slot keeps its previous (stale) value.
func (s *Store) Load(ctx context.Context) (*types.Resume, error) {
	resume, err := s.gateway.GetResume(ctx, s.id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume %s: %w", s.id, err)
	}
	if resume == nil {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	s.resume = resume
	snapshot := cloneResume(s.resume)
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, snapshot)
	return snapshot, nil
}

// PatchLocal merges the named keys of the patch into the slot immediately
// and synchronously, with no network call. It never fails; nil or empty
// patches are no-ops.
func (s *Store) PatchLocal(patch *types.SectionPatch) *types.Resume {
	s.mu.Lock()
	if patch != nil {
		mergePatch(s.resume, patch)
	}
	snapshot := cloneResume(s.resume)
	listeners := s.listeners
	s.mu.Unlock()

	if patch != nil && !patch.IsEmpty() {
		notify(listeners, snapshot)
	}
	return snapshot
}

// Snapshot returns a copy of the current document.
func (s *Store) Snapshot() *types.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneResume(s.resume)
}

// Subscribe registers a change listener. Listeners receive a snapshot after
// every Load and every non-empty PatchLocal.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Save persists a partial patch through the gateway. Local state is not
// touched: callers merge locally first, so a failed save preserves edits.
func (s *Store) Save(ctx context.Context, patch *types.SectionPatch) error {
	if err := s.gateway.PatchResume(ctx, s.id, patch); err != nil {
		return fmt.Errorf("failed to save resume %s: %w", s.id, err)
	}
	return nil
}

func notify(listeners []Listener, snapshot *types.Resume) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// mergePatch applies an object-level shallow merge by key: only non-nil
// patch fields replace the corresponding document field.
func mergePatch(r *types.Resume, p *types.SectionPatch) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.ThemeColor != nil {
		r.ThemeColor = *p.ThemeColor
	}
	if p.FirstName != nil {
		r.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		r.LastName = *p.LastName
	}
	if p.JobTitle != nil {
		r.JobTitle = *p.JobTitle
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Summary != nil {
		r.Summary = *p.Summary
	}
	if p.Experience != nil {
		r.Experience = append([]types.Experience(nil), (*p.Experience)...)
	}
	if p.Education != nil {
		r.Education = append([]types.Education(nil), (*p.Education)...)
	}
	if p.Skills != nil {
		r.Skills = append([]types.Skill(nil), (*p.Skills)...)
	}
	if p.Projects != nil {
		r.Projects = append([]types.Project(nil), (*p.Projects)...)
	}
}

func cloneResume(r *types.Resume) *types.Resume {
	clone := *r
	clone.Experience = append([]types.Experience(nil), r.Experience...)
	clone.Education = append([]types.Education(nil), r.Education...)
	clone.Skills = append([]types.Skill(nil), r.Skills...)
	clone.Projects = append([]types.Project(nil), r.Projects...)
	return &clone
}
