package services

import (
	"math"
	"regexp"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	SimilarityWeight = 0.6
	CoverageWeight   = 0.4
)

// TextComparer rates how alike two texts are, in [0,1].
type TextComparer interface {
	Compare(a, b string) float64
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// CountVectorComparer compares bag-of-words count vectors by cosine.
type CountVectorComparer struct{}

func NewCountVectorComparer() *CountVectorComparer {
	return &CountVectorComparer{}
}

// Compare implements TextComparer. It returns 0 when either text has no tokens.
func (c *CountVectorComparer) Compare(a, b string) float64 {
	va := countTerms(a)
	vb := countTerms(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, normA, normB int
	for term, n := range va {
		normA += n * n
		dot += n * vb[term]
	}
	for _, n := range vb {
		normB += n * n
	}

	// Integer norms keep identical inputs at exactly 1.
	return float64(dot) / math.Sqrt(float64(normA)*float64(normB))
}

func countTerms(text string) map[string]int {
	counts := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		counts[w]++
	}
	return counts
}

type SimilarityScorer interface {
	Score(resumeText, jobDescription string, matchedSkills []string, vocab SkillVocabulary) models.MatchResult
}

type similarityScorer struct {
	comparer TextComparer
}

func NewSimilarityScorer(comparer TextComparer) SimilarityScorer {
	if comparer == nil {
		comparer = NewCountVectorComparer()
	}
	return &similarityScorer{comparer: comparer}
}

// Score implements SimilarityScorer.
func (s *similarityScorer) Score(resumeText, jobDescription string, matchedSkills []string, vocab SkillVocabulary) models.MatchResult {
	similarity := clamp01(s.comparer.Compare(resumeText, jobDescription))

	coverage := 0.0
	if vocab.Len() > 0 {
		coverage = clamp01(float64(len(matchedSkills)) / float64(vocab.Len()))
	}

	return models.MatchResult{
		Similarity:    similarity,
		SkillCoverage: coverage,
		FitScore:      clamp01(SimilarityWeight*similarity + CoverageWeight*coverage),
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
