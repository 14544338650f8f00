package prompt

import (
	"fmt"
	"strings"
)

// maxResumeChars bounds how much resume text is inlined into a prompt
// to stay inside the model's context window.
const (
	maxResumeChars      = 4000
	maxBatchResumeChars = 3500
)

// BatchFilters are the recruiter constraints applied during batch
// resume screening.
type BatchFilters struct {
	Role            string
	MainLanguage    string
	CandidateType   string // "fresher", "professional", or "any"
	PrefersProjects bool
	ExpYears        string
}

// Resume renders the single-resume ATS analysis prompt.
func Resume(text string) string {
	return fmt.Sprintf(`You are an expert ATS. Analyze this resume.
Return raw JSON: { "ats_score": <0-100>, "skills": [], "summary": "", "improvements": [] }
Resume: %s
`, truncate(text, maxResumeChars))
}

// BatchResume renders the strict screening prompt for one resume in a
// batch, with the recruiter's filter rules folded into the rubric.
func BatchResume(text string, f BatchFilters) string {
	role := f.Role
	if role == "" {
		role = "Any"
	}

	var rules []string
	rules = append(rules, fmt.Sprintf("1. TARGET ROLE: %s. CRITICAL: If resume is for a different role (e.g., Marketing vs Developer), SCORE = 0.", role))

	lang := strings.TrimSpace(f.MainLanguage)
	if lang != "" && !strings.EqualFold(lang, "none") {
		rules = append(rules, fmt.Sprintf("2. MAIN LANGUAGE: %s. CRITICAL: Candidate MUST know %s. If %s is missing or weak, Max Score = 40.", lang, lang, lang))
	}

	switch f.CandidateType {
	case "fresher":
		rules = append(rules, "3. TYPE: Fresher. Penalize if no Projects/Hackathons/Internships are listed.")
		if f.PrefersProjects {
			rules = append(rules, "   - HR PREFERENCE: Projects are MANDATORY. High score requires significant project work.")
		}
	case "professional":
		rules = append(rules, fmt.Sprintf("3. TYPE: Professional. REQUIREMENT: Approx %s years experience. Penalize significantly if experience is far below.", f.ExpYears))
	}

	return fmt.Sprintf(`Act as a STRICT & BRUTAL Technical Recruiter. Rate this resume (0-100) based ONLY on these constraints:
%s

SCORING MATRIX:
- 90-100: Perfect Fit (Matches Role + Strong %s + Exact Experience/Projects).
- 75-89: Good Fit (Matches Role + Good %s, minor experience gap).
- 50-74: Average (Matches Role, but weak %s or lacks sufficient depth).
- < 50: Weak (Matches Role but missing key skills like %s).
- 0: WRONG ROLE (Instant Reject).

Return JSON only: { "score": <0-100 int>, "summary": "<reason for score>" }
Resume Text: %s
`, strings.Join(rules, "\n"), lang, lang, lang, lang, truncate(text, maxBatchResumeChars))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
