package prompt

import (
	"strings"
	"testing"
)

func TestBuildDeterministic(t *testing.T) {
	ctx := Context{Company: "Google", Role: "SWE", Round: "System Design"}
	a := Build("transcript", ModeReport, ctx)
	b := Build("transcript", ModeReport, ctx)
	if a != b {
		t.Error("expected identical prompts for identical input")
	}
}

func TestBuildChatContextDefaults(t *testing.T) {
	p := Build("Hello", ModeChat, Context{})
	for _, want := range []string{"Tech Company", "Candidate", "General", "Medium", "Normal interviewer"} {
		if !strings.Contains(p, want) {
			t.Errorf("expected default %q in chat prompt", want)
		}
	}
	if !strings.Contains(p, "Hello") {
		t.Error("expected conversation context in chat prompt")
	}
}

func TestBuildChatCompanyAndRoundStyle(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{"service company", Context{Company: "TCS"}, "Service-Based"},
		{"product company", Context{Company: "Google"}, "Product-Based"},
		{"hr round", Context{Round: "HR Round"}, "Tell me about yourself"},
		{"behavioral round", Context{Round: "Behavioral"}, "STAR method"},
		{"technical round", Context{Round: "Technical Coding"}, "DATA STRUCTURES"},
		{"technical two", Context{Round: "Technical II"}, "DATA STRUCTURES"},
		{"strict persona", Context{Persona: "Strict"}, "skeptical"},
		{"friendly persona", Context{Persona: "Friendly"}, "encouraging"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build("hi", ModeChat, tt.ctx)
			if !strings.Contains(p, tt.want) {
				t.Errorf("expected %q in prompt", tt.want)
			}
		})
	}
}

func TestBuildReport(t *testing.T) {
	p := Build("User: I know Go.", ModeReport, Context{Company: "Acme", Role: "Backend Dev"})
	for _, want := range []string{
		"TRANSCRIPT START",
		"User: I know Go.",
		"TRANSCRIPT END",
		"Backend Dev interview at Acme",
		`"improvement_plan"`,
		"RETURN ONLY VALID JSON",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("expected %q in report prompt", want)
		}
	}
}

func TestBuildCodeAnalysis(t *testing.T) {
	p := Build("func main() {}", ModeCodeAnalysis, Context{Company: "Acme"})
	if !strings.Contains(p, "func main() {}") {
		t.Error("expected submitted code in prompt")
	}
	if !strings.Contains(p, "Time/Space Complexity") {
		t.Error("expected complexity instruction in prompt")
	}
}

func TestBuildUnknownModePassthrough(t *testing.T) {
	if got := Build("raw input", Mode("other"), Context{}); got != "raw input" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestResumePromptTruncates(t *testing.T) {
	long := strings.Repeat("x", maxResumeChars+500)
	p := Resume(long)
	if strings.Contains(p, strings.Repeat("x", maxResumeChars+1)) {
		t.Error("expected resume text truncated")
	}
	if !strings.Contains(p, `"ats_score"`) {
		t.Error("expected ats_score schema in prompt")
	}
}

func TestBatchResumeRules(t *testing.T) {
	tests := []struct {
		name    string
		filters BatchFilters
		want    []string
		absent  []string
	}{
		{
			name:    "role gate always present",
			filters: BatchFilters{},
			want:    []string{"TARGET ROLE: Any", "WRONG ROLE"},
			absent:  []string{"MAIN LANGUAGE"},
		},
		{
			name:    "language rule",
			filters: BatchFilters{MainLanguage: "Go"},
			want:    []string{"MAIN LANGUAGE: Go", "Max Score = 40"},
		},
		{
			name:    "language none skipped",
			filters: BatchFilters{MainLanguage: "None"},
			absent:  []string{"MAIN LANGUAGE"},
		},
		{
			name:    "fresher with projects",
			filters: BatchFilters{CandidateType: "fresher", PrefersProjects: true},
			want:    []string{"TYPE: Fresher", "Projects are MANDATORY"},
		},
		{
			name:    "professional experience",
			filters: BatchFilters{CandidateType: "professional", ExpYears: "5"},
			want:    []string{"Approx 5 years experience"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BatchResume("resume text", tt.filters)
			for _, w := range tt.want {
				if !strings.Contains(p, w) {
					t.Errorf("expected %q in prompt", w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(p, a) {
					t.Errorf("did not expect %q in prompt", a)
				}
			}
		})
	}
}
