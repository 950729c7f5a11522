package editor

import (
	"context"
	"sync"
	"time"

	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// Section labels used in patches, errors, and the editing-session API.
const (
	SectionPersonal   = "personal"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
)

// PersonalDetails is the scalar identity slice of the document owned by
// the personal editor.
type PersonalDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	JobTitle  string `json:"jobTitle"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// PersonalEditor edits the personal details section.
type PersonalEditor struct {
	core

	mu      sync.Mutex
	details PersonalDetails
}

// NewPersonalEditor seeds the editor from the current document snapshot.
func NewPersonalEditor(s *store.Store) *PersonalEditor {
	snap := s.Snapshot()
	return &PersonalEditor{
		core: core{store: s, section: SectionPersonal},
		details: PersonalDetails{
			FirstName: snap.FirstName,
			LastName:  snap.LastName,
			JobTitle:  snap.JobTitle,
			Address:   snap.Address,
			Phone:     snap.Phone,
			Email:     snap.Email,
		},
	}
}

// Details returns a copy of the local field values.
func (e *PersonalEditor) Details() PersonalDetails {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.details
}

// SetField updates one field by its document key and merges it into the
// shared store immediately.
func (e *PersonalEditor) SetField(name, value string) error {
	e.mu.Lock()
	patch := &types.SectionPatch{}
	switch name {
	case "firstName":
		e.details.FirstName = value
		patch.FirstName = &value
	case "lastName":
		e.details.LastName = value
		patch.LastName = &value
	case "jobTitle":
		e.details.JobTitle = value
		patch.JobTitle = &value
	case "address":
		e.details.Address = value
		patch.Address = &value
	case "phone":
		e.details.Phone = value
		patch.Phone = &value
	case "email":
		e.details.Email = value
		patch.Email = &value
	default:
		e.mu.Unlock()
		return &ErrUnknownField{Field: name}
	}
	e.mu.Unlock()

	e.touch()
	e.store.PatchLocal(patch)
	return nil
}

// Save persists the personal fields as a partial patch naming only this
// section's keys.
func (e *PersonalEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	d := e.details
	e.mu.Unlock()

	return e.save(ctx, &types.SectionPatch{
		FirstName: &d.FirstName,
		LastName:  &d.LastName,
		JobTitle:  &d.JobTitle,
		Address:   &d.Address,
		Phone:     &d.Phone,
		Email:     &d.Email,
	})
}

// ExperienceEditor edits the ordered experience list.
type ExperienceEditor struct {
	*ListEditor[types.Experience]
}

// NewExperienceEditor seeds the editor from the current document snapshot.
func NewExperienceEditor(s *store.Store) *ExperienceEditor {
	return &ExperienceEditor{
		ListEditor: newListEditor(
			s, SectionExperience,
			s.Snapshot().Experience,
			types.Experience{},
			0,
			func(entries []types.Experience) *types.SectionPatch {
				return &types.SectionPatch{Experience: &entries}
			},
		),
	}
}

// Update replaces the entry at position i, clearing the end date whenever
// the entry is marked as current employment.
func (e *ExperienceEditor) Update(i int, entry types.Experience) error {
	if entry.CurrentlyWorking {
		entry.EndDate = ""
	}
	return e.ListEditor.Update(i, entry)
}

// DurationAt formats the elapsed duration of the entry at position i,
// using now as the end bound for current employment.
func (e *ExperienceEditor) DurationAt(i int, now time.Time) (string, error) {
	entries := e.Entries()
	if i < 0 || i >= len(entries) {
		return "", &ErrIndexOutOfRange{Section: e.section, Index: i, Length: len(entries)}
	}
	exp := entries[i]
	return Duration(exp.StartDate, exp.EndDate, exp.CurrentlyWorking, now), nil
}

// NewEducationEditor seeds the education editor; the section enforces a
// minimum of one entry.
func NewEducationEditor(s *store.Store) *ListEditor[types.Education] {
	return newListEditor(
		s, SectionEducation,
		s.Snapshot().Education,
		types.Education{},
		1,
		func(entries []types.Education) *types.SectionPatch {
			return &types.SectionPatch{Education: &entries}
		},
	)
}

// NewSkillsEditor seeds the skills editor; the section enforces a minimum
// of one entry.
func NewSkillsEditor(s *store.Store) *ListEditor[types.Skill] {
	return newListEditor(
		s, SectionSkills,
		s.Snapshot().Skills,
		types.Skill{},
		1,
		func(entries []types.Skill) *types.SectionPatch {
			return &types.SectionPatch{Skills: &entries}
		},
	)
}

// NewProjectsEditor seeds the projects editor.
func NewProjectsEditor(s *store.Store) *ListEditor[types.Project] {
	return newListEditor(
		s, SectionProjects,
		s.Snapshot().Projects,
		types.Project{},
		0,
		func(entries []types.Project) *types.SectionPatch {
			return &types.SectionPatch{Projects: &entries}
		},
	)
}
