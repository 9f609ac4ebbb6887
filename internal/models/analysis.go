package models

import (
	"time"

	"github.com/google/uuid"
)

// ExtractedProfile holds the résumé fields bucketed from recognized entities.
// Name and Contact are nil when nothing was recognized for them.
type ExtractedProfile struct {
	Name       *string  `json:"name"`
	Contact    *string  `json:"contact"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
}

// MatchResult scores a résumé against a job description. All values are in [0,1].
type MatchResult struct {
	Similarity    float64 `json:"similarity"`
	SkillCoverage float64 `json:"skill_coverage"`
	FitScore      float64 `json:"fit_score"`
}

// AnalysisResult is the record produced by one analysis. It is never stored.
type AnalysisResult struct {
	ID            uuid.UUID        `json:"id"`
	Profile       ExtractedProfile `json:"profile"`
	MatchedSkills []string         `json:"matched_skills"`
	Match         MatchResult      `json:"match"`
	CreatedAt     time.Time        `json:"created_at"`
}
