package domain

import "fmt"

// AuditReport is the structured verdict returned by a content audit. Field
// names follow the JSON schema the text model is instructed to emit.
type AuditReport struct {
	OverallScore           int      `json:"overall_score"`
	ToneScore              int      `json:"tone_score"`
	RubricBreakdown        []string `json:"rubric_breakdown"`
	ImprovementSuggestions string   `json:"improvement_suggestions"`
}

// Validate checks the report against the declared schema bounds.
func (r *AuditReport) Validate() error {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("overall_score %d out of range [0,100]", r.OverallScore)
	}
	if r.ToneScore < 0 || r.ToneScore > 100 {
		return fmt.Errorf("tone_score %d out of range [0,100]", r.ToneScore)
	}
	return nil
}
