package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ai-coursechat-be/pkg/apperrors"
	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/prompt"
)

// DefaultTopK is the number of passages retrieved per question.
const DefaultTopK = 5

// Retriever returns the passages most relevant to a query, already scoped to
// one (user, course) index.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}

// Result is the output of one answered question.
type Result struct {
	Answer  string
	Context []Passage
}

// Engine runs the conversational retrieval chain for one thread: rewrite the
// question against history, retrieve, then generate a grounded answer.
type Engine struct {
	llm         llm.LLMProvider
	retriever   Retriever
	checkpoints CheckpointStore
	threadID    string
	topK        int

	mu      sync.Mutex
	history []llm.Message
}

func New(provider llm.LLMProvider, retriever Retriever, checkpoints CheckpointStore, threadID string, topK int) *Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{
		llm:         provider,
		retriever:   retriever,
		checkpoints: checkpoints,
		threadID:    threadID,
		topK:        topK,
	}
}

// Resume rebuilds an engine from its persisted turns, so an instance evicted
// from the in-memory registry picks up the conversation where it left off.
func Resume(ctx context.Context, provider llm.LLMProvider, retriever Retriever, checkpoints CheckpointStore, threadID string, topK int) (*Engine, error) {
	e := New(provider, retriever, checkpoints, threadID, topK)

	turns, err := checkpoints.LoadTurns(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoints for %s: %w", threadID, err)
	}
	for _, t := range turns {
		e.history = append(e.history,
			llm.Message{Role: "user", Content: t.Input},
			llm.Message{Role: "assistant", Content: t.Answer},
		)
	}
	return e, nil
}

// ThreadID returns the conversation thread this engine serves.
func (e *Engine) ThreadID() string {
	return e.threadID
}

// HistoryLen returns the number of messages in the in-memory history.
func (e *Engine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.history)
}

// Answer runs one question through the chain. It does not mutate the engine's
// history; call CommitTurn once the turn has been accepted.
func (e *Engine) Answer(ctx context.Context, input string) (*Result, error) {
	e.mu.Lock()
	history := make([]llm.Message, len(e.history))
	copy(history, e.history)
	e.mu.Unlock()

	query := input
	if len(history) > 0 {
		rewritten, err := e.rewrite(ctx, history, input)
		if err != nil {
			return nil, fmt.Errorf("%w: question rewrite: %v", apperrors.ErrGeneration, err)
		}
		query = rewritten
	}

	passages, err := e.retriever.Retrieve(ctx, query, e.topK)
	if err != nil {
		return nil, err
	}

	answer, err := e.generate(ctx, history, input, passages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGeneration, err)
	}

	return &Result{Answer: answer, Context: passages}, nil
}

// CommitTurn durably checkpoints the turn, then appends it to the in-memory
// history. If the checkpoint write fails the history stays untouched, so a
// retried question sees the same state as before.
func (e *Engine) CommitTurn(ctx context.Context, input string, result *Result) error {
	turn := Turn{Input: input, Answer: result.Answer}
	if err := e.checkpoints.AppendTurn(ctx, e.threadID, turn, result.Context); err != nil {
		return fmt.Errorf("failed to checkpoint turn for %s: %w", e.threadID, err)
	}

	e.mu.Lock()
	e.history = append(e.history,
		llm.Message{Role: "user", Content: input},
		llm.Message{Role: "assistant", Content: result.Answer},
	)
	e.mu.Unlock()
	return nil
}

// rewrite turns a history-dependent follow-up into a standalone question.
func (e *Engine) rewrite(ctx context.Context, history []llm.Message, input string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: prompt.ContextualizeSystem})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: input})

	rewritten, err := e.llm.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return input, nil
	}
	return rewritten, nil
}

func (e *Engine) generate(ctx context.Context, history []llm.Message, input string, passages []Passage) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: prompt.QASystem(renderContext(passages))})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: input})

	answer, err := e.llm.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func renderContext(passages []Passage) string {
	if len(passages) == 0 {
		return "(no course material found)"
	}
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[%s]\n%s", p.Source, p.Content)
	}
	return strings.Join(parts, "\n\n")
}
