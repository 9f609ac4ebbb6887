package models

type AnalysisResponse struct {
	ID              string           `json:"id"`
	Profile         ExtractedProfile `json:"profile"`
	MatchedSkills   []string         `json:"matched_skills"`
	Match           MatchResult      `json:"match"`
	JobMatchScore   string           `json:"job_match_score"`
	OverallFitScore string           `json:"overall_fit_score"`
}

type VocabularyResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
