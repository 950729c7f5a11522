// Package preview projects a resume document into a visual layout.
//
// The projection is pure: it never mutates the document and has no side
// effects. Sections whose underlying data is absent or empty are omitted
// entirely, so the rendered output has no empty headings.
package preview

import (
	"strings"

	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// BlockKind identifies the section a content block was projected from.
type BlockKind string

// Content block kinds, in canonical display order.
const (
	BlockSummary    BlockKind = "summary"
	BlockExperience BlockKind = "experience"
	BlockProjects   BlockKind = "projects"
	BlockEducation  BlockKind = "education"
	BlockSkills     BlockKind = "skills"
)

// Header is the identity block at the top of every layout.
type Header struct {
	FullName string
	JobTitle string
	Address  string
	Phone    string
	Email    string
}

// Block is one populated content section. Exactly one of the payload
// fields is set, matching Kind.
type Block struct {
	Kind  BlockKind
	Title string

	Summary    string
	Experience []types.Experience
	Projects   []types.Project
	Education  []types.Education
	Skills     []types.Skill
}

// Layout is the single-column canonical projection: identity header plus
// ordered content blocks.
type Layout struct {
	ThemeColor string
	Header     Header
	Blocks     []Block
}

// SplitLayout is the two-column variant: Summary/Experience/Projects in the
// main column, Skills/Education in the sidebar.
type SplitLayout struct {
	ThemeColor string
	Header     Header
	Main       []Block
	Sidebar    []Block
}

// Project derives the canonical single-column layout from a document.
func Project(r *types.Resume) Layout {
	layout := Layout{
		ThemeColor: r.Theme(),
		Header:     projectHeader(r),
	}
	for _, b := range projectBlocks(r) {
		layout.Blocks = append(layout.Blocks, b)
	}
	return layout
}

// ProjectSplit derives the two-column layout variant from a document.
func ProjectSplit(r *types.Resume) SplitLayout {
	layout := SplitLayout{
		ThemeColor: r.Theme(),
		Header:     projectHeader(r),
	}
	for _, b := range projectBlocks(r) {
		switch b.Kind {
		case BlockSkills, BlockEducation:
			layout.Sidebar = append(layout.Sidebar, b)
		default:
			layout.Main = append(layout.Main, b)
		}
	}
	return layout
}

func projectHeader(r *types.Resume) Header {
	return Header{
		FullName: strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName)),
		JobTitle: r.JobTitle,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
	}
}

// projectBlocks emits one block per populated section in the fixed order
// Summary, Experience, Projects, Education, Skills.
func projectBlocks(r *types.Resume) []Block {
	var blocks []Block
	if r.Summary != "" {
		blocks = append(blocks, Block{
			Kind:    BlockSummary,
			Title:   "Professional Summary",
			Summary: r.Summary,
		})
	}
	if len(r.Experience) > 0 {
		blocks = append(blocks, Block{
			Kind:       BlockExperience,
			Title:      "Professional Experience",
			Experience: r.Experience,
		})
	}
	if len(r.Projects) > 0 {
		blocks = append(blocks, Block{
			Kind:     BlockProjects,
			Title:    "Projects",
			Projects: r.Projects,
		})
	}
	if len(r.Education) > 0 {
		blocks = append(blocks, Block{
			Kind:      BlockEducation,
			Title:     "Education",
			Education: r.Education,
		})
	}
	if len(r.Skills) > 0 {
		blocks = append(blocks, Block{
			Kind:   BlockSkills,
			Title:  "Skills",
			Skills: r.Skills,
		})
	}
	return blocks
}
