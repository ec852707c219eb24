package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/pkg/llm"
)

type fakeLLM struct {
	responses []string
	calls     [][]llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls = append(f.calls, history)
	if len(f.responses) == 0 {
		return "", errors.New("no response configured")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeRetriever struct {
	passages []Passage
	queries  []string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	f.queries = append(f.queries, query)
	return f.passages, nil
}

type fakeCheckpoints struct {
	turns   map[string][]Turn
	failing bool
}

func newFakeCheckpoints() *fakeCheckpoints {
	return &fakeCheckpoints{turns: make(map[string][]Turn)}
}

func (f *fakeCheckpoints) AppendTurn(ctx context.Context, threadID string, turn Turn, passages []Passage) error {
	if f.failing {
		return errors.New("checkpoint store down")
	}
	f.turns[threadID] = append(f.turns[threadID], turn)
	return nil
}

func (f *fakeCheckpoints) LoadTurns(ctx context.Context, threadID string) ([]Turn, error) {
	return f.turns[threadID], nil
}

func TestAnswerSkipsRewriteOnEmptyHistory(t *testing.T) {
	provider := &fakeLLM{responses: []string{"Binary search halves the range each step."}}
	retriever := &fakeRetriever{passages: []Passage{{Content: "binary search", Source: "algo.pdf", Score: 0.9}}}
	e := New(provider, retriever, newFakeCheckpoints(), "alice:algorithms:s1", 5)

	result, err := e.Answer(context.Background(), "What is binary search?")
	require.NoError(t, err)

	// with no history the question goes to retrieval verbatim and only the
	// answering call hits the model
	require.Len(t, retriever.queries, 1)
	assert.Equal(t, "What is binary search?", retriever.queries[0])
	assert.Len(t, provider.calls, 1)
	assert.Equal(t, "Binary search halves the range each step.", result.Answer)
	assert.Equal(t, retriever.passages, result.Context)
}

func TestAnswerRewritesFollowUp(t *testing.T) {
	provider := &fakeLLM{responses: []string{
		"What is the time complexity of binary search?",
		"It runs in O(log n).",
	}}
	retriever := &fakeRetriever{passages: []Passage{{Content: "O(log n)", Source: "algo.pdf", Score: 0.7}}}
	store := newFakeCheckpoints()
	e := New(provider, retriever, store, "alice:algorithms:s1", 5)

	first := &Result{Answer: "Binary search halves the range each step."}
	require.NoError(t, e.CommitTurn(context.Background(), "What is binary search?", first))

	result, err := e.Answer(context.Background(), "And its complexity?")
	require.NoError(t, err)

	require.Len(t, provider.calls, 2)
	assert.Contains(t, provider.calls[0][0].Content, "standalone question")
	require.Len(t, retriever.queries, 1)
	assert.Equal(t, "What is the time complexity of binary search?", retriever.queries[0])
	assert.Equal(t, "It runs in O(log n).", result.Answer)

	// the answering call sees the prior exchange plus the original question
	answering := provider.calls[1]
	assert.Equal(t, "And its complexity?", answering[len(answering)-1].Content)
}

func TestResumeRebuildsHistoryFromCheckpoints(t *testing.T) {
	store := newFakeCheckpoints()
	store.turns["alice:algorithms:s1"] = []Turn{
		{Input: "What is binary search?", Answer: "Halves the range each step."},
		{Input: "And its complexity?", Answer: "O(log n)."},
	}

	e, err := Resume(context.Background(), &fakeLLM{}, &fakeRetriever{}, store, "alice:algorithms:s1", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, e.HistoryLen())
	assert.Equal(t, "assistant", e.history[3].Role)
	assert.Equal(t, "O(log n).", e.history[3].Content)
}

func TestCommitTurnFailureKeepsHistoryUntouched(t *testing.T) {
	store := newFakeCheckpoints()
	store.failing = true
	e := New(&fakeLLM{}, &fakeRetriever{}, store, "alice:algorithms:s1", 5)

	err := e.CommitTurn(context.Background(), "q", &Result{Answer: "a"})
	require.Error(t, err)
	assert.Equal(t, 0, e.HistoryLen())
}

func TestRenderContextLabelsSources(t *testing.T) {
	rendered := renderContext([]Passage{
		{Content: "first", Source: "a.pdf"},
		{Content: "second", Source: "b.pdf"},
	})
	assert.True(t, strings.HasPrefix(rendered, "[a.pdf]"))
	assert.Contains(t, rendered, "[b.pdf]\nsecond")
}
