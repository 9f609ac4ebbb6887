package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAnalyzer(recognizer Recognizer, vocab []string) AnalyzerService {
	return NewAnalyzerService(
		NewDocumentExtractor(NewPDFParserService()),
		NewEntityExtractor(recognizer, DefaultLabelMapping(), NameLastWins),
		NewSkillMatcher(),
		NewSimilarityScorer(NewCountVectorComparer()),
		NewSkillVocabulary(vocab),
		zap.NewNop(),
	)
}

func textDoc(text string) Document {
	return Document{Filename: "resume.txt", ContentType: ContentTypeText, Data: []byte(text)}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	t.Parallel()

	analyzer := newTestAnalyzer(NewModelRecognizer(namesModel{"John Doe", "Jane Smith"}), []string{"Python", "SQL", "Power BI"})

	result, err := analyzer.Analyze(context.Background(),
		textDoc("John   Doe has\nPython and SQL skills."),
		"Looking for Python and SQL expert.",
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Python", "SQL"}, result.MatchedSkills)
	assert.InDelta(t, 0.667, result.Match.SkillCoverage, 1e-3)
	assert.InDelta(t, 2.0/3.0, result.Match.SkillCoverage, 1e-12)
	assert.Greater(t, result.Match.Similarity, 0.0)
	assert.InDelta(t, 0.6*result.Match.Similarity+0.4*result.Match.SkillCoverage, result.Match.FitScore, 1e-6)

	require.NotNil(t, result.Profile.Name)
	assert.Equal(t, "John Doe", *result.Profile.Name)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.ID.String())
	assert.False(t, result.CreatedAt.IsZero())
}

func TestAnalyzeEmptyVocabulary(t *testing.T) {
	t.Parallel()

	result, err := newTestAnalyzer(NewModelRecognizer(namesModel{"John Doe", "Jane Smith"}), nil).Analyze(context.Background(),
		textDoc("John Doe has Python and SQL skills."),
		"Looking for Python and SQL expert.",
	)
	require.NoError(t, err)

	assert.Empty(t, result.MatchedSkills)
	assert.Equal(t, 0.0, result.Match.SkillCoverage)
	assert.InDelta(t, 0.6*result.Match.Similarity, result.Match.FitScore, 1e-15)
}

func TestAnalyzeNoMatch(t *testing.T) {
	t.Parallel()

	result, err := newTestAnalyzer(NewModelRecognizer(namesModel{"John Doe", "Jane Smith"}), []string{"Python", "SQL", "Power BI"}).Analyze(context.Background(),
		textDoc("experienced pastry chef, baker"),
		"Looking for Python and SQL expert.",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{}, result.MatchedSkills)
	assert.Equal(t, 0.0, result.Match.SkillCoverage)
	assert.Equal(t, 0.0, result.Match.Similarity)
	assert.Equal(t, 0.0, result.Match.FitScore)
	assert.Nil(t, result.Profile.Name)
	assert.Nil(t, result.Profile.Contact)
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	analyzer := newTestAnalyzer(NewModelRecognizer(namesModel{"John Doe", "Jane Smith"}), DefaultSkills)
	ctx := context.Background()

	_, err := analyzer.Analyze(ctx, Document{Filename: "resume.pdf"}, "job")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = analyzer.Analyze(ctx, textDoc("Python"), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = analyzer.Analyze(ctx, Document{Filename: "resume.pdf", Data: []byte("%PDF-1.4 broken")}, "job")
	assert.ErrorIs(t, err, ErrDocumentRead)

	failing := newTestAnalyzer(stubRecognizer{err: errors.New("model crashed")}, DefaultSkills)
	_, err = failing.Analyze(ctx, textDoc("Python"), "job")
	assert.ErrorIs(t, err, ErrRecognition)
}

func TestAnalyzeFromPDF(t *testing.T) {
	t.Parallel()

	analyzer := newTestAnalyzer(NewModelRecognizer(namesModel{"John Doe", "Jane Smith"}), DefaultSkills)
	result, err := analyzer.Analyze(context.Background(),
		Document{Filename: "resume.pdf", Data: buildPDF("Jane Smith", "Data Analysis and Machine Learning in Python")},
		"Machine Learning engineer, Python",
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Data Analysis", "Machine Learning", "Python"}, result.MatchedSkills)
	assert.InDelta(t, 3.0/5.0, result.Match.SkillCoverage, 1e-12)
}

func TestAnalyzerVocabulary(t *testing.T) {
	t.Parallel()

	analyzer := newTestAnalyzer(NewModelRecognizer(namesModel{"John Doe", "Jane Smith"}), []string{"Go", "go", "Rust"})
	assert.Equal(t, []string{"Go", "Rust"}, analyzer.Vocabulary().Terms())
}
