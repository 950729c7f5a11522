package editor

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// mockGateway is an in-memory persistence gateway. failures>0 makes the next
// that many PatchResume calls fail; blockSave holds saves until released.
type mockGateway struct {
	mu        sync.Mutex
	resume    *types.Resume
	patches   []*types.SectionPatch
	failures  int
	blockSave chan struct{}
}

func newMockGateway(resume *types.Resume) *mockGateway {
	return &mockGateway{resume: resume}
}

func (m *mockGateway) GetResume(_ context.Context, _ uuid.UUID) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resume, nil
}

func (m *mockGateway) PatchResume(_ context.Context, _ uuid.UUID, patch *types.SectionPatch) error {
	if m.blockSave != nil {
		<-m.blockSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return fmt.Errorf("write timeout")
	}
	m.patches = append(m.patches, patch)
	return nil
}

func (m *mockGateway) lastPatch() *types.SectionPatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.patches) == 0 {
		return nil
	}
	return m.patches[len(m.patches)-1]
}

func newTestStore(t *testing.T, resume *types.Resume) (*store.Store, *mockGateway) {
	t.Helper()
	id := uuid.New()
	if resume == nil {
		resume = &types.Resume{ID: id}
	}
	gw := newMockGateway(resume)
	s := store.New(gw, id)
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s, gw
}

func TestPersonalEditor_SetFieldMergesImmediately(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewPersonalEditor(s)

	require.NoError(t, e.SetField("firstName", "Ada"))
	require.NoError(t, e.SetField("jobTitle", "Engineer"))

	snap := s.Snapshot()
	assert.Equal(t, "Ada", snap.FirstName)
	assert.Equal(t, "Engineer", snap.JobTitle)
	assert.False(t, e.Complete())
}

func TestPersonalEditor_UnknownField(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewPersonalEditor(s)

	err := e.SetField("favoriteColor", "blue")
	var unknownErr *ErrUnknownField
	assert.ErrorAs(t, err, &unknownErr)
}

func TestPersonalEditor_SavePatchesOnlyOwnKeys(t *testing.T) {
	s, gw := newTestStore(t, nil)
	e := NewPersonalEditor(s)
	require.NoError(t, e.SetField("firstName", "Ada"))

	require.NoError(t, e.Save(context.Background()))

	patch := gw.lastPatch()
	require.NotNil(t, patch)
	assert.Equal(t, "Ada", *patch.FirstName)
	assert.Nil(t, patch.Summary)
	assert.Nil(t, patch.Experience)
	assert.True(t, e.Complete())
}

func TestEditor_EditAfterSaveClearsComplete(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewPersonalEditor(s)

	require.NoError(t, e.Save(context.Background()))
	assert.True(t, e.Complete())

	require.NoError(t, e.SetField("firstName", "Grace"))
	assert.False(t, e.Complete())
}

func TestEditor_SaveFailureLeavesEditsAndAllowsResubmit(t *testing.T) {
	s, gw := newTestStore(t, nil)
	gw.failures = 1
	e := NewPersonalEditor(s)
	require.NoError(t, e.SetField("firstName", "Ada"))

	err := e.Save(context.Background())
	require.Error(t, err)
	assert.False(t, e.Complete())
	assert.Equal(t, "Ada", s.Snapshot().FirstName) // local edit preserved

	require.NoError(t, e.Save(context.Background()))
	assert.True(t, e.Complete())
}

func TestEditor_RejectsConcurrentSave(t *testing.T) {
	s, gw := newTestStore(t, nil)
	gw.blockSave = make(chan struct{})
	e := NewPersonalEditor(s)

	firstDone := make(chan error, 1)
	go func() { firstDone <- e.Save(context.Background()) }()

	// Wait for the first save to enter the gateway.
	require.Eventually(t, e.Saving, time.Second, time.Millisecond)

	err := e.Save(context.Background())
	var inFlight *ErrSaveInFlight
	require.ErrorAs(t, err, &inFlight)
	assert.Equal(t, SectionPersonal, inFlight.Section)

	close(gw.blockSave)
	require.NoError(t, <-firstDone)
	assert.True(t, e.Complete())
}

func TestListEditor_SeedsOneDefaultEntryWhenEmpty(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewEducationEditor(s)

	assert.Equal(t, 1, e.Len())
	// Seeding is local to the editor; the shared document is untouched.
	assert.Empty(t, s.Snapshot().Education)
}

func TestListEditor_SeedsFromExistingSection(t *testing.T) {
	resume := &types.Resume{Skills: []types.Skill{{Name: "Go", Rating: 5}, {Name: "SQL", Rating: 4}}}
	s, _ := newTestStore(t, resume)
	e := NewSkillsEditor(s)

	assert.Equal(t, 2, e.Len())
	assert.Equal(t, "Go", e.Entries()[0].Name)
}

func TestListEditor_RemoveShiftsLaterEntriesDown(t *testing.T) {
	resume := &types.Resume{Skills: []types.Skill{
		{Name: "Go"}, {Name: "SQL"}, {Name: "Docker"},
	}}
	s, _ := newTestStore(t, resume)
	e := NewSkillsEditor(s)

	require.NoError(t, e.Remove(1))

	entries := e.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Go", entries[0].Name)
	assert.Equal(t, "Docker", entries[1].Name)
}

func TestListEditor_MinEntriesRejectsRemoval(t *testing.T) {
	resume := &types.Resume{Education: []types.Education{{UniversityName: "MIT"}}}
	s, _ := newTestStore(t, resume)
	e := NewEducationEditor(s)

	err := e.Remove(0)
	var minErr *ErrMinEntries
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, SectionEducation, minErr.Section)
	assert.Equal(t, 1, minErr.Min)

	// The rejected removal left the entry unchanged.
	require.Equal(t, 1, e.Len())
	assert.Equal(t, "MIT", e.Entries()[0].UniversityName)
}

func TestListEditor_ProjectsAllowEmptyList(t *testing.T) {
	resume := &types.Resume{Projects: []types.Project{{ProjectName: "CLI"}}}
	s, _ := newTestStore(t, resume)
	e := NewProjectsEditor(s)

	require.NoError(t, e.Remove(0))
	assert.Equal(t, 0, e.Len())
}

func TestListEditor_UpdateOutOfRange(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewSkillsEditor(s)

	err := e.Update(5, types.Skill{Name: "Go"})
	var rangeErr *ErrIndexOutOfRange
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 5, rangeErr.Index)
	assert.Equal(t, 1, rangeErr.Length)
}

func TestListEditor_UpdateDrivesSharedStore(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewSkillsEditor(s)

	var notified int
	s.Subscribe(func(*types.Resume) { notified++ })

	require.NoError(t, e.Update(0, types.Skill{Name: "Go", Rating: 5}))

	assert.Equal(t, 1, notified)
	require.Len(t, s.Snapshot().Skills, 1)
	assert.Equal(t, "Go", s.Snapshot().Skills[0].Name)
}

func TestListEditor_SaveSnapshotsAtSubmitTime(t *testing.T) {
	s, gw := newTestStore(t, nil)
	e := NewSkillsEditor(s)
	require.NoError(t, e.Update(0, types.Skill{Name: "Go", Rating: 3}))

	require.NoError(t, e.Save(context.Background()))

	patch := gw.lastPatch()
	require.NotNil(t, patch)
	require.NotNil(t, patch.Skills)
	require.Len(t, *patch.Skills, 1)
	assert.Equal(t, "Go", (*patch.Skills)[0].Name)
	assert.Nil(t, patch.Education)
}

func TestExperienceEditor_CurrentlyWorkingClearsEndDate(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewExperienceEditor(s)

	require.NoError(t, e.Update(0, types.Experience{
		Title:            "Engineer",
		StartDate:        "2023-06-01",
		EndDate:          "2024-01-01",
		CurrentlyWorking: true,
	}))

	assert.Equal(t, "", e.Entries()[0].EndDate)
}

func TestExperienceEditor_DurationAt(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewExperienceEditor(s)
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, e.Update(0, types.Experience{
		Title:            "Engineer",
		StartDate:        "2023-06-01",
		CurrentlyWorking: true,
	}))

	d, err := e.DurationAt(0, now)
	require.NoError(t, err)
	assert.Equal(t, "1 yr", d)

	_, err = e.DurationAt(3, now)
	var rangeErr *ErrIndexOutOfRange
	assert.ErrorAs(t, err, &rangeErr)
}

func TestSession_DisjointSectionEditsDoNotClobberSiblings(t *testing.T) {
	resume := &types.Resume{FirstName: "Ada", Summary: "existing summary"}
	s, _ := newTestStore(t, resume)

	personal := NewPersonalEditor(s)
	skills := NewSkillsEditor(s)

	require.NoError(t, personal.SetField("lastName", "Lovelace"))
	require.NoError(t, skills.Update(0, types.Skill{Name: "Go", Rating: 5}))

	snap := s.Snapshot()
	assert.Equal(t, "Ada", snap.FirstName)
	assert.Equal(t, "Lovelace", snap.LastName)
	assert.Equal(t, "existing summary", snap.Summary)
	assert.Len(t, snap.Skills, 1)
}

func TestSession_SaveSection(t *testing.T) {
	id := uuid.New()
	gw := newMockGateway(&types.Resume{ID: id})
	sess, err := NewSession(context.Background(), gw, id, nil)
	require.NoError(t, err)

	summary := "Seasoned engineer."
	err = sess.SaveSection(context.Background(), SectionSummary, &types.SectionPatch{Summary: &summary})
	require.NoError(t, err)

	patch := gw.lastPatch()
	require.NotNil(t, patch)
	assert.Equal(t, summary, *patch.Summary)
	assert.True(t, sess.Summary.Complete())
}

func TestSession_SaveSectionEnforcesMinEntries(t *testing.T) {
	id := uuid.New()
	gw := newMockGateway(&types.Resume{ID: id, Education: []types.Education{{UniversityName: "MIT"}}})
	sess, err := NewSession(context.Background(), gw, id, nil)
	require.NoError(t, err)

	empty := []types.Education{}
	err = sess.SaveSection(context.Background(), SectionEducation, &types.SectionPatch{Education: &empty})

	var minErr *ErrMinEntries
	require.ErrorAs(t, err, &minErr)
	assert.Nil(t, gw.lastPatch())
}

func TestSession_SaveSectionNormalizesCurrentEmployment(t *testing.T) {
	id := uuid.New()
	gw := newMockGateway(&types.Resume{ID: id})
	sess, err := NewSession(context.Background(), gw, id, nil)
	require.NoError(t, err)

	entries := []types.Experience{{
		Title:            "Engineer",
		StartDate:        "2023-01-01",
		EndDate:          "2024-01-01",
		CurrentlyWorking: true,
	}}
	err = sess.SaveSection(context.Background(), SectionExperience, &types.SectionPatch{Experience: &entries})
	require.NoError(t, err)

	patch := gw.lastPatch()
	require.NotNil(t, patch)
	require.NotNil(t, patch.Experience)
	assert.Equal(t, "", (*patch.Experience)[0].EndDate)
}

func TestSession_SaveSectionUnknown(t *testing.T) {
	id := uuid.New()
	gw := newMockGateway(&types.Resume{ID: id})
	sess, err := NewSession(context.Background(), gw, id, nil)
	require.NoError(t, err)

	err = sess.SaveSection(context.Background(), "hobbies", &types.SectionPatch{})
	var unknownErr *ErrUnknownField
	assert.ErrorAs(t, err, &unknownErr)
}
