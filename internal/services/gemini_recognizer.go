package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var geminiLabels = []string{LabelPerson, LabelEmail, LabelPhone, LabelOrg, LabelEducation, LabelDate, LabelSkill}

// GeminiRecognizer labels résumé spans with a Gemini model. Text longer than
// the chunk size is recognized chunk by chunk and the results concatenated in
// text order.
type GeminiRecognizer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	chunker       TextChuncker
	chunkSize     int
	maxRetries    int
	log           *zap.Logger
}

func NewGeminiRecognizer(gemini GeminiService, chunkSize, maxRetries int, log *zap.Logger) *GeminiRecognizer {
	return &GeminiRecognizer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		chunker:       NewTextChunker(),
		chunkSize:     chunkSize,
		maxRetries:    maxRetries,
		log:           log.Named("ner"),
	}
}

// Recognize implements Recognizer.
func (g *GeminiRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	chunks := g.chunker.ChunkText(text, g.chunkSize, 0)

	var entities []Entity
	for i, chunk := range chunks {
		prompt := g.promptBuilder.BuildEntityRecognitionPrompt(chunk, geminiLabels)

		response, err := g.gemini.GenerateTextWithRetry(ctx, prompt, 0, g.maxRetries)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}

		found, err := parseEntityResponse(response)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		entities = append(entities, found...)
	}

	g.log.Debug("entities recognized",
		zap.Int("chunks", len(chunks)),
		zap.Int("entities", len(entities)),
	)
	return entities, nil
}

func parseEntityResponse(response string) ([]Entity, error) {
	jsonStr := extractJSON(response)

	var raw []Entity
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}

	entities := make([]Entity, 0, len(raw))
	for _, e := range raw {
		e.Text = strings.TrimSpace(e.Text)
		e.Label = strings.ToUpper(strings.TrimSpace(e.Label))
		if e.Text == "" || e.Label == "" {
			continue
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// extractJSON strips markdown fences and surrounding prose from a model reply.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}
