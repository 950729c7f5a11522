package editor

import (
	"context"
	"sync"

	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// ListEditor is the generic editor for ordered list sections. Entries are
// identified by position; removing an entry shifts later entries down.
type ListEditor[E any] struct {
	core

	defaultEntry E
	minEntries   int
	makePatch    func([]E) *types.SectionPatch

	mu      sync.Mutex
	entries []E
}

// newListEditor seeds the local list from the document snapshot. A missing
// section seeds a single default empty entry; seeding alone does not patch
// the shared store.
func newListEditor[E any](s *store.Store, section string, seed []E, defaultEntry E, minEntries int, makePatch func([]E) *types.SectionPatch) *ListEditor[E] {
	entries := append([]E(nil), seed...)
	if len(entries) == 0 {
		entries = []E{defaultEntry}
	}
	return &ListEditor[E]{
		core:         core{store: s, section: section},
		defaultEntry: defaultEntry,
		minEntries:   minEntries,
		makePatch:    makePatch,
		entries:      entries,
	}
}

// Entries returns a copy of the current local list.
func (e *ListEditor[E]) Entries() []E {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]E(nil), e.entries...)
}

// Len returns the current number of entries.
func (e *ListEditor[E]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// Update replaces the entry at position i and synchronously merges the
// whole section into the shared store, driving the live preview.
func (e *ListEditor[E]) Update(i int, entry E) error {
	e.mu.Lock()
	if i < 0 || i >= len(e.entries) {
		n := len(e.entries)
		e.mu.Unlock()
		return &ErrIndexOutOfRange{Section: e.section, Index: i, Length: n}
	}
	e.entries[i] = entry
	snapshot := append([]E(nil), e.entries...)
	e.mu.Unlock()

	e.touch()
	e.store.PatchLocal(e.makePatch(snapshot))
	return nil
}

// Add appends a new default entry to the end of the list.
func (e *ListEditor[E]) Add() {
	e.mu.Lock()
	e.entries = append(e.entries, e.defaultEntry)
	snapshot := append([]E(nil), e.entries...)
	e.mu.Unlock()

	e.touch()
	e.store.PatchLocal(e.makePatch(snapshot))
}

// Remove deletes the entry at position i; entries after i shift down by
// one. A removal that would drop below the section minimum is rejected
// with no state change.
func (e *ListEditor[E]) Remove(i int) error {
	e.mu.Lock()
	if i < 0 || i >= len(e.entries) {
		n := len(e.entries)
		e.mu.Unlock()
		return &ErrIndexOutOfRange{Section: e.section, Index: i, Length: n}
	}
	if len(e.entries)-1 < e.minEntries {
		e.mu.Unlock()
		return &ErrMinEntries{Section: e.section, Min: e.minEntries}
	}
	e.entries = append(e.entries[:i], e.entries[i+1:]...)
	snapshot := append([]E(nil), e.entries...)
	e.mu.Unlock()

	e.touch()
	e.store.PatchLocal(e.makePatch(snapshot))
	return nil
}

// Save persists only this section's current value as a partial patch. The
// list is snapshotted at submit time; at most one save is in flight.
func (e *ListEditor[E]) Save(ctx context.Context) error {
	e.mu.Lock()
	snapshot := append([]E(nil), e.entries...)
	e.mu.Unlock()

	return e.save(ctx, e.makePatch(snapshot))
}
