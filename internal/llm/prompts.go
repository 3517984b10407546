package llm

import (
	_ "embed"
	"strings"
)

// SystemPrompt is sent ahead of every advisor prompt where the provider
// supports a system role.
const SystemPrompt = "You are a helpful assistant providing professional, concise responses."

var (
	//go:embed prompts/improve.txt
	promptImprove string
	//go:embed prompts/questions.txt
	promptQuestions string
	//go:embed prompts/interview_feedback.txt
	promptInterviewFeedback string
)

// Prompt names.
const (
	PromptImprove           = "improve"
	PromptQuestions         = "questions"
	PromptInterviewFeedback = "interview_feedback"
)

// PromptTemplate returns the template text and whether the name was recognized.
func PromptTemplate(name string) (string, bool) {
	switch name {
	case PromptImprove:
		return promptImprove, true
	case PromptQuestions:
		return promptQuestions, true
	case PromptInterviewFeedback:
		return promptInterviewFeedback, true
	default:
		return "", false
	}
}

// Render fills {{key}} placeholders in the named template. Unknown names
// render to an empty string.
func Render(name string, vars map[string]string) string {
	tmpl, ok := PromptTemplate(name)
	if !ok {
		return ""
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(tmpl))
}
