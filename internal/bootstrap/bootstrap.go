// Package bootstrap assembles the analyzer from configuration. The API server
// and the CLI share it so both load the same recognizer and vocabulary.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// NewAnalyzer loads the recognizer and skill vocabulary once. An error
// wrapping services.ErrModelUnavailable means no analysis can run.
func NewAnalyzer(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.AnalyzerService, error) {
	namePolicy, err := services.ParseNamePolicy(cfg.Analysis.NamePolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid NAME_POLICY: %w", err)
	}

	recognizer, err := services.NewRecognizer(ctx, services.RecognizerOptions{
		Provider:     cfg.NER.Provider,
		GeminiAPIKey: cfg.NER.GeminiAPIKey,
		GeminiModel:  cfg.NER.GeminiModel,
		MaxRetries:   cfg.NER.MaxRetries,
		ChunkSize:    cfg.NER.ChunkSize,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load entity recognizer: %w", err)
	}

	vocabulary := services.ParseSkillVocabulary(cfg.Analysis.SkillVocabulary)
	if vocabulary.Len() == 0 {
		log.Warn("skill vocabulary is empty, skill coverage will always be 0")
	}

	log.Info("analyzer ready",
		zap.String("ner_provider", cfg.NER.Provider),
		zap.String("name_policy", string(namePolicy)),
		zap.Strings("skills", vocabulary.Terms()),
	)

	return services.NewAnalyzerService(
		services.NewDocumentExtractor(services.NewPDFParserService()),
		services.NewEntityExtractor(recognizer, services.DefaultLabelMapping(), namePolicy),
		services.NewSkillMatcher(),
		services.NewSimilarityScorer(services.NewCountVectorComparer()),
		vocabulary,
		log,
	), nil
}
