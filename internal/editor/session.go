package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/RohanMakvana24/Resume-Pilot/internal/llm"
	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// Session is one editing session for one resume: a shared document store
// plus the six section editors bound to it. Editors merge into the shared
// slot rather than replacing it, so sibling sections are never clobbered.
type Session struct {
	Store *store.Store

	Personal   *PersonalEditor
	Summary    *SummaryEditor
	Experience *ExperienceEditor
	Education  *ListEditor[types.Education]
	Skills     *ListEditor[types.Skill]
	Projects   *ListEditor[types.Project]
}

// NewSession loads the document from the gateway and seeds all six editors
// from it. The llm client may be nil when AI drafting is disabled.
func NewSession(ctx context.Context, gateway store.Gateway, id uuid.UUID, client llm.Client) (*Session, error) {
	s := store.New(gateway, id)
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	return &Session{
		Store:      s,
		Personal:   NewPersonalEditor(s),
		Summary:    NewSummaryEditor(s, client),
		Experience: NewExperienceEditor(s),
		Education:  NewEducationEditor(s),
		Skills:     NewSkillsEditor(s),
		Projects:   NewProjectsEditor(s),
	}, nil
}

// SaveSection applies a raw section patch through the matching editor and
// persists only that section's keys. Unknown sections are rejected.
func (s *Session) SaveSection(ctx context.Context, section string, patch *types.SectionPatch) error {
	switch section {
	case SectionPersonal:
		if patch.FirstName != nil {
			_ = s.Personal.SetField("firstName", *patch.FirstName)
		}
		if patch.LastName != nil {
			_ = s.Personal.SetField("lastName", *patch.LastName)
		}
		if patch.JobTitle != nil {
			_ = s.Personal.SetField("jobTitle", *patch.JobTitle)
		}
		if patch.Address != nil {
			_ = s.Personal.SetField("address", *patch.Address)
		}
		if patch.Phone != nil {
			_ = s.Personal.SetField("phone", *patch.Phone)
		}
		if patch.Email != nil {
			_ = s.Personal.SetField("email", *patch.Email)
		}
		return s.Personal.Save(ctx)
	case SectionSummary:
		if patch.Summary != nil {
			s.Summary.Set(*patch.Summary)
		}
		return s.Summary.Save(ctx)
	case SectionExperience:
		if patch.Experience != nil {
			entries := append([]types.Experience(nil), (*patch.Experience)...)
			for i := range entries {
				if entries[i].CurrentlyWorking {
					entries[i].EndDate = ""
				}
			}
			if err := replaceEntries(s.Experience.ListEditor, entries); err != nil {
				return err
			}
		}
		return s.Experience.Save(ctx)
	case SectionEducation:
		if patch.Education != nil {
			if err := replaceEntries(s.Education, *patch.Education); err != nil {
				return err
			}
		}
		return s.Education.Save(ctx)
	case SectionSkills:
		if patch.Skills != nil {
			if err := replaceEntries(s.Skills, *patch.Skills); err != nil {
				return err
			}
		}
		return s.Skills.Save(ctx)
	case SectionProjects:
		if patch.Projects != nil {
			if err := replaceEntries(s.Projects, *patch.Projects); err != nil {
				return err
			}
		}
		return s.Projects.Save(ctx)
	default:
		return &ErrUnknownField{Field: section}
	}
}

// replaceEntries reshapes an editor's list to match an incoming section
// value while going through the editor's own add/update/remove operations,
// so minimum-entry rules still apply.
func replaceEntries[E any](e *ListEditor[E], entries []E) error {
	for e.Len() < len(entries) {
		e.Add()
	}
	for e.Len() > len(entries) {
		if err := e.Remove(e.Len() - 1); err != nil {
			return err
		}
	}
	for i, entry := range entries {
		if err := e.Update(i, entry); err != nil {
			return err
		}
	}
	return nil
}
