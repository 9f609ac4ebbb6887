package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountVectorComparer(t *testing.T) {
	t.Parallel()

	c := NewCountVectorComparer()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "Python and SQL expert", b: "Python and SQL expert", want: 1},
		{name: "identical ignoring case", a: "python SQL", b: "PYTHON sql", want: 1},
		{name: "disjoint", a: "chef baker", b: "python developer", want: 0},
		{name: "empty left", a: "", b: "python", want: 0},
		{name: "empty both", a: "", b: "", want: 0},
		{name: "single char tokens ignored", a: "a b c", b: "a b c", want: 0},
		{
			name: "partial overlap",
			a:    "John Doe has Python and SQL skills.",
			b:    "Looking for Python and SQL expert.",
			want: 3 / math.Sqrt(42),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, c.Compare(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCountVectorComparerProperties(t *testing.T) {
	t.Parallel()

	c := NewCountVectorComparer()
	texts := []string{
		"",
		"Python",
		"Python Python SQL",
		"Senior data analyst with Power BI and SQL",
		"We need a data engineer: Python, Spark, SQL, SQL",
		"machine learning machine learning research",
	}

	for _, a := range texts {
		for _, b := range texts {
			ab := c.Compare(a, b)
			assert.Equal(t, ab, c.Compare(b, a), "symmetry %q / %q", a, b)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
		if a != "" {
			assert.Equal(t, 1.0, c.Compare(a, a), "self similarity %q", a)
		}
	}
}

type fixedComparer float64

func (f fixedComparer) Compare(string, string) float64 { return float64(f) }

func TestSimilarityScorer(t *testing.T) {
	t.Parallel()

	vocab := NewSkillVocabulary([]string{"Python", "SQL", "Power BI"})

	tests := []struct {
		name     string
		comparer TextComparer
		matched  []string
		vocab    SkillVocabulary
		wantSim  float64
		wantCov  float64
	}{
		{name: "weighted", comparer: fixedComparer(0.5), matched: []string{"Python", "SQL"}, vocab: vocab, wantSim: 0.5, wantCov: 2.0 / 3.0},
		{name: "empty vocabulary", comparer: fixedComparer(0.5), matched: nil, vocab: NewSkillVocabulary(nil), wantSim: 0.5, wantCov: 0},
		{name: "no match", comparer: fixedComparer(0.2), matched: []string{}, vocab: vocab, wantSim: 0.2, wantCov: 0},
		{name: "clamps high", comparer: fixedComparer(1.5), matched: []string{"Python", "SQL", "Power BI", "extra"}, vocab: vocab, wantSim: 1, wantCov: 1},
		{name: "clamps low", comparer: fixedComparer(-0.3), matched: nil, vocab: vocab, wantSim: 0, wantCov: 0},
		{name: "nan", comparer: fixedComparer(math.NaN()), matched: nil, vocab: vocab, wantSim: 0, wantCov: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewSimilarityScorer(tt.comparer).Score("resume", "job", tt.matched, tt.vocab)

			assert.InDelta(t, tt.wantSim, got.Similarity, 1e-12)
			assert.InDelta(t, tt.wantCov, got.SkillCoverage, 1e-12)
			assert.InDelta(t, 0.6*got.Similarity+0.4*got.SkillCoverage, got.FitScore, 1e-15)
			assert.GreaterOrEqual(t, got.FitScore, 0.0)
			assert.LessOrEqual(t, got.FitScore, 1.0)
		})
	}
}

func TestSimilarityScorerDefaultsToCountVectors(t *testing.T) {
	t.Parallel()

	got := NewSimilarityScorer(nil).Score("python sql", "python sql", nil, NewSkillVocabulary(nil))
	assert.Equal(t, 1.0, got.Similarity)
	assert.Equal(t, 0.0, got.SkillCoverage)
	assert.Equal(t, 0.6, got.FitScore)
}
