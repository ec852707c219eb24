package course

import (
	"context"
	"encoding/json"
	"strings"

	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/prompt"
)

// FallbackCandidate is returned when inference fails for any reason, so the
// caller can always show the user something actionable.
const FallbackCandidate = "Please enter a course name"

// Inferrer suggests course names for a lecture document using a single LLM call.
type Inferrer struct {
	llm llm.LLMProvider
}

func NewInferrer(provider llm.LLMProvider) *Inferrer {
	return &Inferrer{llm: provider}
}

type candidatesPayload struct {
	CourseCandidates []string `json:"course_candidates"`
}

// Infer extracts likely course names from the document text, biased towards
// the user's existing courses. It never returns an error: any failure yields
// the fallback candidate list.
func (i *Inferrer) Infer(ctx context.Context, text string, existingCourses []string) []string {
	messages := []llm.Message{
		{Role: "system", Content: prompt.CourseCandidatesSystem(existingCourses)},
		{Role: "user", Content: text},
	}

	resp, err := i.llm.Chat(ctx, messages)
	if err != nil {
		return []string{FallbackCandidate}
	}

	var payload candidatesPayload
	if err := json.Unmarshal([]byte(extractJSON(resp)), &payload); err != nil {
		return []string{FallbackCandidate}
	}
	if len(payload.CourseCandidates) == 0 {
		return []string{FallbackCandidate}
	}
	return payload.CourseCandidates
}

// extractJSON trims code fences and surrounding prose some models wrap around
// JSON responses.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
