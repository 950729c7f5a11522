package editor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RohanMakvana24/Resume-Pilot/internal/llm"
	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// mockLLM returns a canned response; block holds the request open, and
// started (when non-nil) is closed once a request reaches the client.
type mockLLM struct {
	response string
	err      error
	block    chan struct{}
	started  chan struct{}
	prompts  []string
}

func (m *mockLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return m.GenerateJSON(context.Background(), prompt, llm.TierLite)
}

func (m *mockLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (m *mockLLM) Close() error { return nil }

func TestGenerateSuggestions_ParsesTieredList(t *testing.T) {
	s, _ := newTestStore(t, &types.Resume{JobTitle: "Backend Engineer"})
	client := &mockLLM{response: `[
		{"experience_level": "Entry Level", "summary": "Eager backend engineer."},
		{"experience_level": "Mid Level", "summary": "Backend engineer with impact."},
		{"experience_level": "Senior Level", "summary": "Backend engineer leading teams."}
	]`}
	e := NewSummaryEditor(s, client)

	suggestions, err := e.GenerateSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, TierEntry, suggestions[0].ExperienceLevel)
	assert.Equal(t, TierSenior, suggestions[2].ExperienceLevel)

	// The prompt carries the document's job title.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Backend Engineer")
}

func TestGenerateSuggestions_StripsMarkdownFences(t *testing.T) {
	s, _ := newTestStore(t, &types.Resume{JobTitle: "Designer"})
	client := &mockLLM{response: "```json\n[{\"experience_level\": \"Mid Level\", \"summary\": \"Designer.\"}]\n```"}
	e := NewSummaryEditor(s, client)

	suggestions, err := e.GenerateSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Designer.", suggestions[0].Summary)
}

func TestGenerateSuggestions_UnparsableResponseWrapsAllTiers(t *testing.T) {
	s, _ := newTestStore(t, &types.Resume{JobTitle: "Engineer"})
	raw := "Here are some great summaries for you!"
	client := &mockLLM{response: raw}
	e := NewSummaryEditor(s, client)

	suggestions, err := e.GenerateSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, []string{TierEntry, TierMid, TierSenior}, []string{
		suggestions[0].ExperienceLevel,
		suggestions[1].ExperienceLevel,
		suggestions[2].ExperienceLevel,
	})
	for _, s := range suggestions {
		assert.Equal(t, raw, s.Summary)
	}
}

func TestGenerateSuggestions_MissingJobTitle(t *testing.T) {
	s, _ := newTestStore(t, nil)
	e := NewSummaryEditor(s, &mockLLM{response: "[]"})

	_, err := e.GenerateSuggestions(context.Background())
	var missingErr *ErrMissingJobTitle
	assert.ErrorAs(t, err, &missingErr)
}

func TestGenerateSuggestions_NilClient(t *testing.T) {
	s, _ := newTestStore(t, &types.Resume{JobTitle: "Engineer"})
	e := NewSummaryEditor(s, nil)

	_, err := e.GenerateSuggestions(context.Background())
	assert.Error(t, err)
}

func TestGenerateSuggestions_RejectsConcurrentRequest(t *testing.T) {
	s, _ := newTestStore(t, &types.Resume{JobTitle: "Engineer"})
	client := &mockLLM{response: "[]", block: make(chan struct{}), started: make(chan struct{})}
	e := NewSummaryEditor(s, client)

	done := make(chan struct{})
	go func() {
		_, _ = e.GenerateSuggestions(context.Background())
		close(done)
	}()
	<-client.started // first request is in flight before asserting rejection

	var busyErr *ErrRequestInFlight
	assert.Eventually(t, func() bool {
		_, err := e.GenerateSuggestions(context.Background())
		return errors.As(err, &busyErr)
	}, time.Second, time.Millisecond)

	close(client.block)
	<-done
}

func TestGenerateSuggestions_PropagatesLLMError(t *testing.T) {
	s, _ := newTestStore(t, &types.Resume{JobTitle: "Engineer"})
	client := &mockLLM{err: fmt.Errorf("quota exceeded")}
	e := NewSummaryEditor(s, client)

	_, err := e.GenerateSuggestions(context.Background())
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSummaryEditor_ApplySuggestionIsLocalOnly(t *testing.T) {
	s, gw := newTestStore(t, nil)
	e := NewSummaryEditor(s, nil)

	e.Apply(types.SummarySuggestion{ExperienceLevel: TierMid, Summary: "Drafted."})

	assert.Equal(t, "Drafted.", s.Snapshot().Summary)
	assert.Nil(t, gw.lastPatch()) // applying never persists
	assert.False(t, e.Complete())
}
