package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedGenerator struct {
	responses []string
	errs      []error
	prompts   []string

	retryCalls int
}

func (s *scriptedGenerator) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)

	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "[]", nil
}

func (s *scriptedGenerator) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	s.retryCalls++
	return generateWithRetry(ctx, s, prompt, temperature, maxRetries, zap.NewNop())
}

func newTestGeminiRecognizer(gen GeminiService, chunkSize, retries int) *GeminiRecognizer {
	return &GeminiRecognizer{
		gemini:        gen,
		promptBuilder: NewPromptBuilder(),
		chunker:       NewTextChunker(),
		chunkSize:     chunkSize,
		maxRetries:    retries,
		log:           zap.NewNop(),
	}
}

func TestGeminiRecognizerParsesFencedJSON(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: []string{
		"Here you go:\n```json\n[{\"text\": \" Jane Smith \", \"label\": \"person\"}, {\"text\": \"Go\", \"label\": \"SKILL\"}, {\"text\": \"\", \"label\": \"ORG\"}]\n```",
	}}

	entities, err := newTestGeminiRecognizer(gen, 4000, 1).Recognize(context.Background(), "Jane Smith writes Go.")
	require.NoError(t, err)
	assert.Equal(t, []Entity{
		{Text: "Jane Smith", Label: LabelPerson},
		{Text: "Go", Label: LabelSkill},
	}, entities)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Jane Smith writes Go.")
	assert.Contains(t, gen.prompts[0], "PERSON, EMAIL, PHONE, ORG, EDUCATION, DATE, SKILL")
}

func TestGeminiRecognizerChunksLongText(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{responses: []string{
		`[{"text": "Alpha", "label": "ORG"}]`,
		`[{"text": "Beta", "label": "ORG"}]`,
	}}

	text := "Alpha works here. Beta works there."
	entities, err := newTestGeminiRecognizer(gen, 20, 1).Recognize(context.Background(), text)
	require.NoError(t, err)
	assert.Len(t, gen.prompts, 2)
	assert.Equal(t, []Entity{{Text: "Alpha", Label: LabelOrg}, {Text: "Beta", Label: LabelOrg}}, entities)
}

func TestGeminiRecognizerRetries(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{
		errs:      []error{errors.New("unavailable")},
		responses: []string{"", `[{"text": "Jane", "label": "PERSON"}]`},
	}

	entities, err := newTestGeminiRecognizer(gen, 4000, 3).Recognize(context.Background(), "Jane")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.retryCalls)
	assert.Len(t, gen.prompts, 2)
	assert.Equal(t, []Entity{{Text: "Jane", Label: LabelPerson}}, entities)
}

func TestGeminiRecognizerFailures(t *testing.T) {
	t.Parallel()

	t.Run("exhausted retries", func(t *testing.T) {
		t.Parallel()
		gen := &scriptedGenerator{errs: []error{errors.New("a"), errors.New("b")}}
		_, err := newTestGeminiRecognizer(gen, 4000, 2).Recognize(context.Background(), "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 2 attempts")
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()
		gen := &scriptedGenerator{responses: []string{"not json at all"}}
		_, err := newTestGeminiRecognizer(gen, 4000, 1).Recognize(context.Background(), "text")
		require.Error(t, err)
	})
}

func TestNewRecognizer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := zap.NewNop()

	_, err := NewRecognizer(ctx, RecognizerOptions{Provider: "gemini"}, log)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	_, err = NewRecognizer(ctx, RecognizerOptions{Provider: "spacy"}, log)
	assert.ErrorIs(t, err, ErrModelUnavailable)

	if testing.Short() {
		return
	}

	r, err := NewRecognizer(ctx, RecognizerOptions{}, log)
	require.NoError(t, err)
	assert.IsType(t, &ModelRecognizer{}, r)

	r, err = NewRecognizer(ctx, RecognizerOptions{Provider: " Prose "}, log)
	require.NoError(t, err)
	assert.IsType(t, &ModelRecognizer{}, r)
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `[1, 2]`, extractJSON("```json\n[1, 2]\n```"))
	assert.Equal(t, `[]`, extractJSON("Result: [] done"))
	assert.Equal(t, "plain", strings.TrimSpace(extractJSON(" plain ")))
}
