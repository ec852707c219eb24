package prompt

import (
	"fmt"
	"strings"
)

// ContextualizeSystem instructs the model to rewrite a follow-up question into
// a standalone one. It must never answer the question itself.
const ContextualizeSystem = "You are given a conversation history and the user's latest question. " +
	"If the question depends on previous context, rewrite it as a standalone question that makes sense on its own. " +
	"If it already stands alone, return it as-is. " +
	"Do NOT answer the question, only return the reformulated or original question."

// qaSystemTemplate grounds the answer in retrieved course material and tells
// the model to admit when the context does not contain the answer.
const qaSystemTemplate = "You are an academic assistant helping university students understand their course materials. " +
	"Use the following retrieved context to provide clear, well-structured answers. " +
	"Ensure your response is informative and appropriate for a university-level audience. " +
	"If the answer is not found in the context, say you don't know. Do not guess or make up information.\n\n%s"

// QASystem renders the grounded answering system prompt with the retrieved context.
func QASystem(context string) string {
	return fmt.Sprintf(qaSystemTemplate, context)
}

// SessionTitle asks for a short noun-phrase title from the first exchange of a session.
func SessionTitle(question, answer string) string {
	return fmt.Sprintf(
		"Based on the following Q&A, write a concise session title. "+
			"It should be a short phrase, not a full sentence.\n\nQ: %s\nA: %s",
		question, answer,
	)
}

// CourseCandidatesSystem asks for likely course names for a lecture document.
// The model must respond with a JSON object {"course_candidates": ["..."]}.
func CourseCandidatesSystem(existingCourses []string) string {
	var b strings.Builder
	b.WriteString("You are a lecture material analyst. From the text below, extract at least 3 likely course names (`course`).\n")
	b.WriteString("- A `course` is the name of a subject based on the lecture content.\n")
	b.WriteString("- Exclude course codes (e.g., CSE3050).\n")
	b.WriteString("- You may infer names freely from context.\n\n")
	b.WriteString("Existing course list:\n")
	b.WriteString(fmt.Sprintf("%v\n", existingCourses))
	b.WriteString("- First, check if any existing courses closely match the content. If so, include them.\n")
	b.WriteString("- Then, if needed, add new candidates based on the text to reach at least 3 suggestions.\n")
	b.WriteString("- Do not include unrelated existing courses.\n\n")
	b.WriteString(`Respond in this format: {"course_candidates": ["..."]}`)
	return b.String()
}
