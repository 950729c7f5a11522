package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

type mockGateway struct {
	resume  *types.Resume
	getErr  error
	saveErr error
	patches []*types.SectionPatch
}

func (m *mockGateway) GetResume(_ context.Context, _ uuid.UUID) (*types.Resume, error) {
	return m.resume, m.getErr
}

func (m *mockGateway) PatchResume(_ context.Context, _ uuid.UUID, patch *types.SectionPatch) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.patches = append(m.patches, patch)
	return nil
}

func strPtr(s string) *string { return &s }

func TestLoad_ReplacesSlotWholesale(t *testing.T) {
	id := uuid.New()
	gw := &mockGateway{resume: &types.Resume{ID: id, FirstName: "Ada", Summary: "builder"}}
	s := New(gw, id)

	s.PatchLocal(&types.SectionPatch{FirstName: strPtr("local")})

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.FirstName)
	assert.Equal(t, "Ada", s.Snapshot().FirstName)
	assert.Equal(t, "builder", s.Snapshot().Summary)
}

func TestLoad_FailureKeepsStaleValue(t *testing.T) {
	id := uuid.New()
	gw := &mockGateway{resume: &types.Resume{ID: id, FirstName: "Ada"}}
	s := New(gw, id)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	gw.getErr = fmt.Errorf("connection refused")
	_, err = s.Load(context.Background())
	require.Error(t, err)

	// The slot still holds the last good document.
	assert.Equal(t, "Ada", s.Snapshot().FirstName)
}

func TestLoad_MissingResume(t *testing.T) {
	id := uuid.New()
	s := New(&mockGateway{resume: nil}, id)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchLocal_MergesOnlyNamedKeys(t *testing.T) {
	id := uuid.New()
	s := New(&mockGateway{}, id)
	s.PatchLocal(&types.SectionPatch{FirstName: strPtr("Ada"), Summary: strPtr("original")})

	got := s.PatchLocal(&types.SectionPatch{Summary: strPtr("rewritten")})

	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "rewritten", got.Summary)
}

func TestPatchLocal_DisjointPatchesCommute(t *testing.T) {
	id := uuid.New()
	personal := &types.SectionPatch{FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")}
	skills := &types.SectionPatch{Skills: &[]types.Skill{{Name: "Go", Rating: 5}}}

	a := New(&mockGateway{}, id)
	a.PatchLocal(personal)
	a.PatchLocal(skills)

	b := New(&mockGateway{}, id)
	b.PatchLocal(skills)
	b.PatchLocal(personal)

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestPatchLocal_NotifiesListenersWithSnapshot(t *testing.T) {
	id := uuid.New()
	s := New(&mockGateway{}, id)

	var seen []string
	s.Subscribe(func(r *types.Resume) {
		seen = append(seen, r.FirstName)
	})

	s.PatchLocal(&types.SectionPatch{FirstName: strPtr("Ada")})
	s.PatchLocal(&types.SectionPatch{FirstName: strPtr("Grace")})
	s.PatchLocal(nil)
	s.PatchLocal(&types.SectionPatch{}) // empty patch is a no-op

	assert.Equal(t, []string{"Ada", "Grace"}, seen)
}

func TestPatchLocal_SnapshotIsIsolated(t *testing.T) {
	id := uuid.New()
	s := New(&mockGateway{}, id)
	s.PatchLocal(&types.SectionPatch{Skills: &[]types.Skill{{Name: "Go", Rating: 4}}})

	snap := s.Snapshot()
	snap.Skills[0].Name = "mutated"

	assert.Equal(t, "Go", s.Snapshot().Skills[0].Name)
}

func TestSave_FailureDoesNotTouchLocalState(t *testing.T) {
	id := uuid.New()
	gw := &mockGateway{saveErr: fmt.Errorf("write timeout")}
	s := New(gw, id)

	s.PatchLocal(&types.SectionPatch{Summary: strPtr("unsaved edit")})
	err := s.Save(context.Background(), &types.SectionPatch{Summary: strPtr("unsaved edit")})

	require.Error(t, err)
	assert.Equal(t, "unsaved edit", s.Snapshot().Summary)
}

func TestSave_SendsPartialPatchOnly(t *testing.T) {
	id := uuid.New()
	gw := &mockGateway{}
	s := New(gw, id)

	patch := &types.SectionPatch{Summary: strPtr("persisted")}
	require.NoError(t, s.Save(context.Background(), patch))

	require.Len(t, gw.patches, 1)
	assert.Equal(t, "persisted", *gw.patches[0].Summary)
	assert.Nil(t, gw.patches[0].FirstName)
	assert.Nil(t, gw.patches[0].Experience)
}
