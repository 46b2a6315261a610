package prompt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate-ai/healthmate/internal/knowledge"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
	"github.com/healthmate-ai/healthmate/internal/profile"
	"github.com/healthmate-ai/healthmate/internal/prompt"
)

type fakeMemory struct {
	results []memory.Result
	err     error
}

func (f *fakeMemory) Search(_ context.Context, _, _ string, _ int, _ string) ([]memory.Result, error) {
	return f.results, f.err
}

type fakeKnowledge struct {
	results []knowledge.SearchResult
	err     error
}

func (f *fakeKnowledge) Search(_ context.Context, _ string, _ int, _ string) ([]knowledge.SearchResult, error) {
	return f.results, f.err
}

func memResult(role, content string) memory.Result {
	return memory.Result{
		Record:     memory.Record{Role: role, Content: content},
		Similarity: 0.9,
	}
}

func TestBuildOrdersSections(t *testing.T) {
	profiles := profile.NewStaticProvider()
	profiles.Set(profile.Profile{UserID: "u1", Age: 40, Allergies: "peanuts"})

	a, err := prompt.NewAssembler(prompt.Config{
		Memory:    &fakeMemory{results: []memory.Result{memResult("user", "I had a headache last week")}},
		Knowledge: &fakeKnowledge{results: []knowledge.SearchResult{{Title: "Common Headache Types and Their Management", Content: "TENSION HEADACHES: ...", Similarity: 0.82}}},
		Profiles:  profiles,
		Logger:    log.NewNop(),
	})
	require.NoError(t, err)

	req, err := a.Build(context.Background(), "u1", "My head hurts again")
	require.NoError(t, err)

	assert.Equal(t, prompt.SystemPrompt, req.System)

	idxProfile := strings.Index(req.Prompt, "**Patient Profile:**")
	idxHistory := strings.Index(req.Prompt, "**Conversation History:**")
	idxLiterature := strings.Index(req.Prompt, "**Relevant Medical Literature:**")
	idxQuestion := strings.Index(req.Prompt, "**Current Question:**")
	idxInstructions := strings.Index(req.Prompt, "**Instructions:**")

	require.GreaterOrEqual(t, idxProfile, 0)
	assert.Less(t, idxProfile, idxHistory)
	assert.Less(t, idxHistory, idxLiterature)
	assert.Less(t, idxLiterature, idxQuestion)
	assert.Less(t, idxQuestion, idxInstructions)

	assert.Contains(t, req.Prompt, "Age: 40")
	assert.Contains(t, req.Prompt, "1. [user]: I had a headache last week")
	assert.Contains(t, req.Prompt, "(Relevance: 0.82)")
	assert.Contains(t, req.Prompt, "My head hurts again")
}

func TestBuildOmitsEmptySections(t *testing.T) {
	a, err := prompt.NewAssembler(prompt.Config{
		Memory:    &fakeMemory{},
		Knowledge: &fakeKnowledge{},
		Profiles:  profile.NewStaticProvider(),
		Logger:    log.NewNop(),
	})
	require.NoError(t, err)

	req, err := a.Build(context.Background(), "u1", "What helps with a sore throat?")
	require.NoError(t, err)

	assert.NotContains(t, req.Prompt, "**Patient Profile:**")
	assert.NotContains(t, req.Prompt, "**Conversation History:**")
	assert.NotContains(t, req.Prompt, "**Relevant Medical Literature:**")
	assert.Contains(t, req.Prompt, "**Current Question:**")
	assert.Contains(t, req.Prompt, "**Instructions:**")
}

func TestBuildDegradesOnSourceErrors(t *testing.T) {
	a, err := prompt.NewAssembler(prompt.Config{
		Memory:    &fakeMemory{err: errors.New("memory down")},
		Knowledge: &fakeKnowledge{err: errors.New("knowledge down")},
		Profiles:  profile.NewStaticProvider(),
		Logger:    log.NewNop(),
	})
	require.NoError(t, err)

	// Failing sources are skipped, never fatal.
	req, err := a.Build(context.Background(), "u1", "Is my fever serious?")
	require.NoError(t, err)
	assert.Contains(t, req.Prompt, "Is my fever serious?")
	assert.NotContains(t, req.Prompt, "**Conversation History:**")
	assert.NotContains(t, req.Prompt, "**Relevant Medical Literature:**")
}

func TestBuildClipsOversizedSections(t *testing.T) {
	long := strings.Repeat("previous conversation detail\n", 100)
	a, err := prompt.NewAssembler(prompt.Config{
		Memory:  &fakeMemory{results: []memory.Result{memResult("user", long)}},
		Logger:  log.NewNop(),
		Budgets: prompt.Budgets{Profile: 100, Memory: 200, Knowledge: 200},
	})
	require.NoError(t, err)

	question := strings.Repeat("a very long current question ", 50)
	req, err := a.Build(context.Background(), "u1", question)
	require.NoError(t, err)

	historyStart := strings.Index(req.Prompt, "**Conversation History:**")
	questionStart := strings.Index(req.Prompt, "**Current Question:**")
	require.GreaterOrEqual(t, historyStart, 0)
	history := req.Prompt[historyStart:questionStart]
	assert.LessOrEqual(t, len(history), 300)

	// The current question is never clipped.
	assert.Contains(t, req.Prompt, question)
}

func TestBuildValidation(t *testing.T) {
	a, err := prompt.NewAssembler(prompt.Config{Logger: log.NewNop()})
	require.NoError(t, err)

	_, err = a.Build(context.Background(), "", "hello")
	assert.Error(t, err)

	_, err = a.Build(context.Background(), "u1", "   ")
	assert.Error(t, err)
}
