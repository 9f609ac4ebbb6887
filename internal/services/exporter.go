package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var exportHeader = []string{
	"Name",
	"Contact",
	"Skills",
	"Education",
	"Experience",
	"Job Match Score",
	"Overall Fit Score",
}

// FormatPercent renders a [0,1] score as a percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// ExportCSV renders a result as a header line plus a single CSV row. The
// Skills column lists the vocabulary skills matched in the résumé.
func ExportCSV(result *models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	row := []string{
		derefOrEmpty(result.Profile.Name),
		derefOrEmpty(result.Profile.Contact),
		strings.Join(result.MatchedSkills, ", "),
		strings.Join(result.Profile.Education, ", "),
		strings.Join(result.Profile.Experience, ", "),
		FormatPercent(result.Match.Similarity),
		FormatPercent(result.Match.FitScore),
	}

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("failed to write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
