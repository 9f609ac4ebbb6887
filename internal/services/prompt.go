package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEntityRecognitionPrompt creates a prompt asking the model to label
// spans of résumé text with one of labels.
func (pb *PromptBuilder) BuildEntityRecognitionPrompt(resumeText string, labels []string) string {
	return fmt.Sprintf(`You are a named entity recognizer for résumés.

Label every relevant span in the RESUME TEXT using exactly one of these labels:
%s

Label meanings:
- PERSON: the name of a person
- EMAIL: an email address
- PHONE: a phone number
- ORG: an organization, company or institution
- EDUCATION: a degree or qualification
- DATE: a date or date range
- SKILL: a professional or technical skill

Rules:
- Copy each span exactly as it appears in the text. Do not rephrase or translate.
- List spans in the order they appear.
- Do not invent spans that are not in the text.

RESUME TEXT:
%s

Return ONLY a JSON array, with no commentary, in this format:
[
  {"text": "<span>", "label": "<LABEL>"}
]
If nothing is found return [].`,
		strings.Join(labels, ", "),
		resumeText,
	)
}
