package report

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Interpret recovers an AnalysisResult from a raw model reply. It never
// fails: structural extraction is tried first, then a lexical fallback,
// and any field neither strategy can fill keeps its default.
func Interpret(raw string) AnalysisResult {
	result := Defaults()
	if obj, ok := ExtractObject(raw); ok {
		overlay(&result, obj)
		return result
	}
	lexical(&result, raw)
	return result
}

// ExtractObject slices the span between the first "{" and the last "}"
// and decodes it as a JSON object. Models are asked for bare JSON but
// routinely wrap it in prose or markdown fences; only the structurally
// bounded span is treated as data.
func ExtractObject(raw string) (map[string]any, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// overlay copies decoded fields onto the defaults with per-field
// coercion. A field that is present but cannot be coerced keeps its
// default rather than propagating a wrong-typed value.
func overlay(result *AnalysisResult, obj map[string]any) {
	if v, ok := obj["score"]; ok {
		if n, ok := CoerceInt(v); ok {
			result.Score = n
		}
	}
	if v, ok := obj["verdict"]; ok {
		if s, ok := CoerceString(v); ok {
			result.Verdict = s
		}
	}
	if v, ok := obj["summary"]; ok {
		if s, ok := CoerceString(v); ok {
			result.Summary = s
		}
	}
	if v, ok := obj["strengths"]; ok {
		if l, ok := CoerceStringList(v); ok {
			result.Strengths = l
		}
	}
	if v, ok := obj["weaknesses"]; ok {
		if l, ok := CoerceStringList(v); ok {
			result.Weaknesses = l
		}
	}
	if v, ok := obj["improvement_plan"]; ok {
		if l, ok := CoerceStringList(v); ok {
			result.ImprovementPlan = l
		}
	}
	if v, ok := obj["code_feedback"]; ok {
		if s, ok := CoerceString(v); ok {
			result.CodeFeedback = s
		}
	}
}

// labelRx matches a recognized section label, tolerating markdown
// emphasis around it. Matching is case-insensitive and not anchored to
// line starts since models inline labels mid-sentence.
var labelRx = regexp.MustCompile(`(?i)[*_]{0,2}(SCORE|VERDICT|SUMMARY|STRENGTHS|WEAKNESSES|IMPROVEMENT[ _]?PLAN|CODE[ _]?FEEDBACK)[*_]{0,2}\s*:`)

var (
	scoreRx  = regexp.MustCompile(`^[*_\s"']*(\d+)`)
	bulletRx = regexp.MustCompile(`^\s*(?:[-*]|\d+\.)\s*(.+)$`)
)

// extractor fills one field of the result from its labeled section body.
type extractor struct {
	label string
	apply func(*AnalysisResult, string)
}

// extractors is the ordered table of fallback rules, one per field.
var extractors = []extractor{
	{"SCORE", func(r *AnalysisResult, body string) {
		if m := scoreRx.FindStringSubmatch(body); m != nil {
			if n, ok := CoerceInt(m[1]); ok {
				r.Score = n
			}
		}
	}},
	{"VERDICT", func(r *AnalysisResult, body string) {
		if v := shortPhrase(body); v != "" {
			r.Verdict = v
		}
	}},
	{"SUMMARY", func(r *AnalysisResult, body string) {
		if body != "" {
			r.Summary = body
		}
	}},
	{"STRENGTHS", func(r *AnalysisResult, body string) {
		if items := listItems(body); len(items) > 0 {
			r.Strengths = items
		}
	}},
	{"WEAKNESSES", func(r *AnalysisResult, body string) {
		if items := listItems(body); len(items) > 0 {
			r.Weaknesses = items
		}
	}},
	{"IMPROVEMENT PLAN", func(r *AnalysisResult, body string) {
		if items := listItems(body); len(items) > 0 {
			r.ImprovementPlan = items
		}
	}},
	{"CODE FEEDBACK", func(r *AnalysisResult, body string) {
		if body != "" {
			r.CodeFeedback = body
		}
	}},
}

// lexical runs the fallback extraction: segment the reply into labeled
// sections, then apply each field's rule to its own section.
func lexical(result *AnalysisResult, raw string) {
	secs := sections(raw)
	for _, ex := range extractors {
		if body, ok := secs[ex.label]; ok {
			ex.apply(result, body)
		}
	}
}

// sections maps each canonical label to the text between its colon and
// the next recognized label (or end of input). Only the first
// occurrence of a label wins.
func sections(raw string) map[string]string {
	matches := labelRx.FindAllStringSubmatchIndex(raw, -1)
	out := make(map[string]string, len(matches))
	for i, m := range matches {
		name := canonicalLabel(raw[m[2]:m[3]])
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = strings.TrimSpace(raw[m[1]:end])
	}
	return out
}

func canonicalLabel(s string) string {
	return strings.ReplaceAll(strings.ToUpper(s), "_", " ")
}

// shortPhrase takes the first line of a section and strips quotes and
// emphasis markers.
func shortPhrase(body string) string {
	line := body
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.Trim(line, "\"'*_ \t")
}

// listItems extracts bulleted or numbered lines from a section. When a
// section has content but no bullets, each non-empty line counts as one
// item.
func listItems(body string) []string {
	var items []string
	lines := strings.Split(body, "\n")
	for _, line := range lines {
		if m := bulletRx.FindStringSubmatch(line); m != nil {
			if item := strings.TrimSpace(m[1]); item != "" {
				items = append(items, item)
			}
		}
	}
	if len(items) > 0 {
		return items
	}
	if len(strings.TrimSpace(body)) <= 3 {
		return nil
	}
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
