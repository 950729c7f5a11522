package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/RohanMakvana24/Resume-Pilot/internal/llm"
	"github.com/RohanMakvana24/Resume-Pilot/internal/prompts"
	"github.com/RohanMakvana24/Resume-Pilot/internal/store"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// Experience tier labels for AI-drafted summaries.
const (
	TierEntry  = "Entry Level"
	TierMid    = "Mid Level"
	TierSenior = "Senior Level"
)

// SummaryEditor edits the professional summary and offers AI-assisted
// drafts built from the document's job title.
type SummaryEditor struct {
	core
	llm llm.Client

	mu     sync.Mutex
	text   string
	aiBusy bool
}

// NewSummaryEditor seeds the editor from the current document snapshot.
// The llm client may be nil when AI drafting is disabled.
func NewSummaryEditor(s *store.Store, client llm.Client) *SummaryEditor {
	return &SummaryEditor{
		core: core{store: s, section: SectionSummary},
		llm:  client,
		text: s.Snapshot().Summary,
	}
}

// Text returns the current local summary text.
func (e *SummaryEditor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Set replaces the local summary and merges it into the shared store
// immediately.
func (e *SummaryEditor) Set(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()

	e.touch()
	e.store.PatchLocal(&types.SectionPatch{Summary: &text})
}

// Apply overwrites the summary with an AI-drafted suggestion. The change
// is local only; it still requires an explicit save.
func (e *SummaryEditor) Apply(s types.SummarySuggestion) {
	e.Set(s.Summary)
}

// Save persists only the summary as a partial patch.
func (e *SummaryEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	text := e.text
	e.mu.Unlock()

	return e.save(ctx, &types.SectionPatch{Summary: &text})
}

// GenerateSuggestions issues one prompt requesting three tiered drafts for
// the document's job title. At most one request is in flight per editor.
// A response that fails to parse as the expected structured list falls
// back to wrapping the raw text into all three tiers.
func (e *SummaryEditor) GenerateSuggestions(ctx context.Context) ([]types.SummarySuggestion, error) {
	if e.llm == nil {
		return nil, fmt.Errorf("AI drafting is not configured")
	}

	jobTitle := e.store.Snapshot().JobTitle
	if jobTitle == "" {
		return nil, &ErrMissingJobTitle{}
	}

	e.mu.Lock()
	if e.aiBusy {
		e.mu.Unlock()
		return nil, &ErrRequestInFlight{}
	}
	e.aiBusy = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.aiBusy = false
		e.mu.Unlock()
	}()

	prompt := prompts.Format(
		prompts.MustGet("summary.json", "tiered_summaries"),
		map[string]string{"JobTitle": jobTitle},
	)

	raw, err := e.llm.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summaries: %w", err)
	}

	return parseSuggestions(raw), nil
}

// parseSuggestions decodes the model response. Parse failure is recovered
// locally: the raw text is wrapped identically into all three tiers rather
// than discarded.
func parseSuggestions(raw string) []types.SummarySuggestion {
	cleaned := llm.CleanJSONBlock(raw)

	var list []types.SummarySuggestion
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil && len(list) > 0 {
		return list
	}

	var single types.SummarySuggestion
	if err := json.Unmarshal([]byte(cleaned), &single); err == nil && single.Summary != "" {
		return []types.SummarySuggestion{single}
	}

	return []types.SummarySuggestion{
		{ExperienceLevel: TierEntry, Summary: raw},
		{ExperienceLevel: TierMid, Summary: raw},
		{ExperienceLevel: TierSenior, Summary: raw},
	}
}
