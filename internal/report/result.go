package report

// AnalysisResult is the structured record recovered from a model reply.
// Every field has a default, so an interpreted result is always fully
// populated no matter how malformed the raw reply was.
type AnalysisResult struct {
	Score           int      `json:"score"`
	Verdict         string   `json:"verdict"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ImprovementPlan []string `json:"improvement_plan"`
	CodeFeedback    string   `json:"code_feedback"`
}

// Defaults returns the sentinel record used when nothing can be recovered.
func Defaults() AnalysisResult {
	return AnalysisResult{
		Score:           0,
		Verdict:         "Better Luck Next Time",
		Summary:         "Unable to parse AI response.",
		Strengths:       []string{"None observed"},
		Weaknesses:      []string{"Parsing failed"},
		ImprovementPlan: []string{"Retry interview"},
		CodeFeedback:    "N/A",
	}
}
