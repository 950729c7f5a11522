package editor

import (
	"context"
	"sync"

	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// saveState is the per-editor request state machine:
// Idle -> Saving -> Idle(success) | Idle(error).
type saveState int

const (
	stateIdle saveState = iota
	stateSaving
)

// core carries the behavior shared by every section editor: the bound
// store, the explicit save state machine, and the section-complete flag
// that is invalidated on every local edit.
type core struct {
	store   *store.Store
	section string

	mu       sync.Mutex
	state    saveState
	complete bool
}

// Section returns the editor's section label.
func (c *core) Section() string {
	return c.section
}

// Complete reports whether the section has been explicitly saved since its
// last edit.
func (c *core) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.complete
}

// Saving reports whether a save is currently in flight.
func (c *core) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateSaving
}

// touch records a local edit: downstream navigation affordances stay
// disabled until the section is explicitly saved again.
func (c *core) touch() {
	c.mu.Lock()
	c.complete = false
	c.mu.Unlock()
}

// beginSave transitions Idle -> Saving, rejecting re-entrant saves.
func (c *core) beginSave() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == stateSaving {
		return &ErrSaveInFlight{Section: c.section}
	}
	c.state = stateSaving
	return nil
}

// endSave transitions back to Idle. Success marks the section complete;
// failure leaves local state untouched so the user can resubmit.
func (c *core) endSave(err error) {
	c.mu.Lock()
	c.state = stateIdle
	if err == nil {
		c.complete = true
	}
	c.mu.Unlock()
}

// save runs the full save cycle for a snapshot patch captured at submit
// time. There is no retry and no rollback.
func (c *core) save(ctx context.Context, patch *types.SectionPatch) error {
	if err := c.beginSave(); err != nil {
		return err
	}
	err := c.store.Save(ctx, patch)
	c.endSave(err)
	return err
}
