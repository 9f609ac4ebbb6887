package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	ProviderProse  = "prose"
	ProviderGemini = "gemini"
)

type RecognizerOptions struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	MaxRetries   int
	ChunkSize    int
}

// NewRecognizer loads the recognizer named by opts.Provider. It returns
// ErrModelUnavailable when the recognizer cannot be loaded.
func NewRecognizer(ctx context.Context, opts RecognizerOptions, log *zap.Logger) (Recognizer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderProse:
		model, err := LoadProseModel()
		if err != nil {
			return nil, err
		}
		return NewModelRecognizer(model), nil
	case ProviderGemini:
		gemini, err := NewGeminiService(ctx, opts.GeminiAPIKey, opts.GeminiModel, log)
		if err != nil {
			return nil, err
		}
		return NewGeminiRecognizer(gemini, opts.ChunkSize, opts.MaxRetries, log), nil
	default:
		return nil, fmt.Errorf("unknown recognizer provider %q: %w", opts.Provider, ErrModelUnavailable)
	}
}

type AnalyzerService interface {
	Analyze(ctx context.Context, doc Document, jobDescription string) (*models.AnalysisResult, error)
	Vocabulary() SkillVocabulary
}

// analyzerService carries everything an analysis reads. It is built once at
// startup and never written afterwards, so one value serves every request.
type analyzerService struct {
	extractor       DocumentExtractor
	entityExtractor EntityExtractor
	skillMatcher    SkillMatcher
	scorer          SimilarityScorer
	vocabulary      SkillVocabulary
	log             *zap.Logger
}

func NewAnalyzerService(
	extractor DocumentExtractor,
	entityExtractor EntityExtractor,
	skillMatcher SkillMatcher,
	scorer SimilarityScorer,
	vocabulary SkillVocabulary,
	log *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		extractor:       extractor,
		entityExtractor: entityExtractor,
		skillMatcher:    skillMatcher,
		scorer:          scorer,
		vocabulary:      vocabulary,
		log:             log.Named("analyzer"),
	}
}

func (a *analyzerService) Vocabulary() SkillVocabulary {
	return a.vocabulary
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, doc Document, jobDescription string) (*models.AnalysisResult, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("resume document is required: %w", ErrEmptyInput)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("job description is required: %w", ErrEmptyInput)
	}

	id := uuid.New()
	log := logger.ForAnalysis(a.log, id, doc.Filename)

	// Step 1: Extract text
	rawText, err := a.extractor.Extract(doc)
	if err != nil {
		log.Warn("failed to extract resume text", zap.Error(err))
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}

	// Step 2: Normalize
	resumeText := Normalize(rawText)
	jobText := Normalize(jobDescription)

	// Step 3: Entities and skills
	profile, err := a.entityExtractor.Extract(ctx, resumeText)
	if err != nil {
		log.Error("entity extraction failed", zap.Error(err))
		return nil, fmt.Errorf("failed to extract entities: %w", err)
	}

	matched := a.skillMatcher.Match(resumeText, a.vocabulary)

	// Step 4: Score
	match := a.scorer.Score(resumeText, jobText, matched, a.vocabulary)

	log.Info("resume analyzed",
		zap.Int("text_chars", len(resumeText)),
		zap.Bool("name_found", profile.Name != nil),
		zap.Int("entity_skills", len(profile.Skills)),
		zap.Int("education", len(profile.Education)),
		zap.Int("experience", len(profile.Experience)),
		zap.Strings("matched_skills", matched),
		zap.Float64("similarity", match.Similarity),
		zap.Float64("skill_coverage", match.SkillCoverage),
		zap.Float64("fit_score", match.FitScore),
	)

	return &models.AnalysisResult{
		ID:            id,
		Profile:       profile,
		MatchedSkills: matched,
		Match:         match,
		CreatedAt:     time.Now(),
	}, nil
}
