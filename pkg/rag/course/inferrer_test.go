package course

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-coursechat-be/pkg/llm"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func TestInferParsesCandidates(t *testing.T) {
	i := NewInferrer(&stubLLM{response: `{"course_candidates": ["Operating Systems", "Computer Architecture", "Systems Programming"]}`})

	got := i.Infer(context.Background(), "processes, scheduling, virtual memory", []string{"Operating Systems"})
	assert.Equal(t, []string{"Operating Systems", "Computer Architecture", "Systems Programming"}, got)
}

func TestInferStripsCodeFences(t *testing.T) {
	i := NewInferrer(&stubLLM{response: "```json\n{\"course_candidates\": [\"Databases\", \"Data Modeling\", \"SQL Fundamentals\"]}\n```"})

	got := i.Infer(context.Background(), "relational algebra and normalization", nil)
	assert.Equal(t, []string{"Databases", "Data Modeling", "SQL Fundamentals"}, got)
}

func TestInferFallsBackOnFailure(t *testing.T) {
	cases := []struct {
		name string
		stub *stubLLM
	}{
		{"model error", &stubLLM{err: errors.New("timeout")}},
		{"invalid json", &stubLLM{response: "not json at all"}},
		{"empty candidates", &stubLLM{response: `{"course_candidates": []}`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewInferrer(tc.stub).Infer(context.Background(), "some text", nil)
			assert.Equal(t, []string{FallbackCandidate}, got)
		})
	}
}
