package preview

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

func renderDoc(t *testing.T, r *types.Resume) *goquery.Document {
	t.Helper()
	html, err := RenderHTML(Project(r))
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestProject_OmitsEmptySections(t *testing.T) {
	layout := Project(&types.Resume{FirstName: "Ada", Summary: "Engineer."})

	require.Len(t, layout.Blocks, 1)
	assert.Equal(t, BlockSummary, layout.Blocks[0].Kind)
}

func TestProject_BlockOrderIsFixed(t *testing.T) {
	layout := Project(&types.Resume{
		Skills:     []types.Skill{{Name: "Go"}},
		Summary:    "Engineer.",
		Education:  []types.Education{{UniversityName: "MIT"}},
		Experience: []types.Experience{{Title: "Engineer"}},
		Projects:   []types.Project{{ProjectName: "CLI"}},
	})

	var kinds []BlockKind
	for _, b := range layout.Blocks {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []BlockKind{
		BlockSummary, BlockExperience, BlockProjects, BlockEducation, BlockSkills,
	}, kinds)
}

func TestProject_ThemeColorFallback(t *testing.T) {
	assert.Equal(t, types.DefaultThemeColor, Project(&types.Resume{}).ThemeColor)
	assert.Equal(t, "#111111", Project(&types.Resume{ThemeColor: "#111111"}).ThemeColor)
}

func TestProject_HeaderJoinsName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Project(&types.Resume{FirstName: "Ada", LastName: "Lovelace"}).Header.FullName)
	assert.Equal(t, "Ada", Project(&types.Resume{FirstName: " Ada "}).Header.FullName)
	assert.Equal(t, "", Project(&types.Resume{}).Header.FullName)
}

func TestProjectSplit_RoutesSkillsAndEducationToSidebar(t *testing.T) {
	layout := ProjectSplit(&types.Resume{
		Summary:    "Engineer.",
		Experience: []types.Experience{{Title: "Engineer"}},
		Education:  []types.Education{{UniversityName: "MIT"}},
		Skills:     []types.Skill{{Name: "Go"}},
	})

	require.Len(t, layout.Main, 2)
	require.Len(t, layout.Sidebar, 2)
	assert.Equal(t, BlockEducation, layout.Sidebar[0].Kind)
	assert.Equal(t, BlockSkills, layout.Sidebar[1].Kind)
}

func TestRenderHTML_EmptySectionsProduceNoHeadings(t *testing.T) {
	doc := renderDoc(t, &types.Resume{FirstName: "Ada", Summary: "Engineer."})

	assert.Equal(t, 1, doc.Find(".section").Length())
	assert.Equal(t, 0, doc.Find(`[data-section="experience"]`).Length())
	assert.Equal(t, 0, doc.Find(`[data-section="skills"]`).Length())
}

func TestRenderHTML_SectionContent(t *testing.T) {
	doc := renderDoc(t, &types.Resume{
		FirstName: "Ada",
		LastName:  "Lovelace",
		JobTitle:  "Engineer",
		Email:     "ada@example.com",
		Summary:   "Analytical engineer.",
		Experience: []types.Experience{{
			Title:            "Staff Engineer",
			CompanyName:      "Acme",
			StartDate:        "2020-01",
			CurrentlyWorking: true,
		}},
		Skills: []types.Skill{{Name: "Go", Rating: 4}},
	})

	assert.Equal(t, "Ada Lovelace", doc.Find(".name").Text())
	assert.Contains(t, doc.Find(`[data-section="summary"]`).Text(), "Analytical engineer.")

	experience := doc.Find(`[data-section="experience"]`).Text()
	assert.Contains(t, experience, "Staff Engineer")
	assert.Contains(t, experience, "Present")

	assert.Equal(t, "●●●●○", doc.Find(".skill-dots").Text())
}

func TestRenderHTML_EscapesPlainFieldsButTrustsRichText(t *testing.T) {
	doc := renderDoc(t, &types.Resume{
		FirstName: "<script>alert(1)</script>",
		Experience: []types.Experience{{
			Title:       "Engineer",
			WorkSummary: "<ul><li>Shipped the thing</li></ul>",
		}},
	})

	// Plain fields are escaped, so no script element survives.
	assert.Equal(t, 0, doc.Find("body script").Length())
	// Rich-text fragments pass through as markup.
	assert.Equal(t, 1, doc.Find(`[data-section="experience"] ul li`).Length())
}

func TestRatingDots_ClampsRange(t *testing.T) {
	assert.Equal(t, "○○○○○", ratingDots(-1))
	assert.Equal(t, "●●●●●", ratingDots(9))
	assert.Equal(t, "●●○○○", ratingDots(2))
}
