// Package prompt renders the final prompt sent to the model. Rendering
// is pure: the same input, mode, and context always produce the same
// string.
package prompt

import (
	"fmt"
	"strings"
)

// Mode selects which template wraps the caller's input.
type Mode string

const (
	ModeChat         Mode = "chat"
	ModeCodeAnalysis Mode = "code_analysis"
	ModeReport       Mode = "report"
)

// Context carries the interview setting. All fields are optional.
type Context struct {
	Company    string `json:"company"`
	Role       string `json:"role"`
	Round      string `json:"round"`
	Difficulty string `json:"difficulty"`
	Persona    string `json:"persona"`
}

func (c Context) withDefaults() Context {
	if c.Company == "" {
		c.Company = "Tech Company"
	}
	if c.Role == "" {
		c.Role = "Candidate"
	}
	if c.Round == "" {
		c.Round = "General"
	}
	if c.Difficulty == "" {
		c.Difficulty = "Medium"
	}
	if c.Persona == "" {
		c.Persona = "Normal"
	}
	return c
}

// Build renders the prompt for the given mode. Unknown modes pass the
// input through untouched.
func Build(input string, mode Mode, ctx Context) string {
	ctx = ctx.withDefaults()
	switch mode {
	case ModeChat:
		return buildChat(input, ctx)
	case ModeCodeAnalysis:
		return buildCodeAnalysis(input, ctx)
	case ModeReport:
		return buildReport(input, ctx)
	default:
		return input
	}
}

var serviceCompanies = map[string]bool{
	"TCS": true, "Infosys": true, "Wipro": true, "HCL Tech": true,
}

var productCompanies = map[string]bool{
	"Google": true, "Amazon": true, "Meta": true, "Netflix": true,
}

func companyStyle(company string) string {
	switch {
	case serviceCompanies[company]:
		return `COMPANY STYLE (Service-Based):
- Focus heavily on fundamentals (OOPs, SQL, basic coding logic).
- Ask about willingness to relocate, shifts, and specific project technologies.
- Professionalism and communication skills are paramount.`
	case productCompanies[company]:
		return `COMPANY STYLE (Product-Based):
- Focus on problem-solving, optimization, and deep technical understanding.
- Expect high autonomy and "engineering excellence" in answers.`
	default:
		return ""
	}
}

var roundContexts = map[string]string{
	"HR Round": `ROUND: HR Round
GOAL: Assess culture fit, stability, and motivation.

KEY QUESTIONS TO ASK (one by one):
1. "Tell me about yourself." (Start with this)
2. "Why do you want to join this company?"
3. "Why are you leaving your current job?" (If experienced)
4. "What are your strengths and weaknesses?"
5. "How do you handle stress?"
6. "Where do you see yourself in 5 years?"

FRESHER LOGIC:
- If they say they are a fresher, ask about internships, final year projects, and academic challenges.

EXPERIENCED LOGIC:
- Ask about specific challenges in previous roles and reasons for switching.`,

	"Behavioral": `ROUND: Behavioral
GOAL: Assess soft skills using STAR method.

KEY QUESTIONS (Friendly tone):
1. "Tell me about a time you faced a tough decision."
2. "Have you ever had to sell an idea to a coworker?"
3. "Tell me about a conflict you resolved."
4. "Describe a time you failed and how you handled it."

Always ask for the 'Result' of their actions.`,

	"Phone Screen": `ROUND: Phone Screen
GOAL: Quick 5-minute background check.

FOCUS:
- Verify experience verbally (Experience, Tech Stack).
- Basic communication skills.
- Salary expectations and notice period.`,

	"System Design": `ROUND: System Design
GOAL: Scalable architecture discussion.

TOPICS: Load Balancers, Caching, Sharding, CAP Theorem.
Task: Ask them to design a specific system (e.g., URL Shortener, Chat App).`,
}

const technicalRoundContext = `ROUND: Technical Coding (C++ DSA Focus)
GOAL: Assess algorithmic thinking and C++ proficiency.

STRICT RULES:
- Ask DATA STRUCTURES & ALGORITHMS questions only.
- Expect solutions in C++.
- Ask about Time/Space complexity (Big O).`

func roundContext(round string) string {
	if rc, ok := roundContexts[round]; ok {
		return rc
	}
	if round == "Technical Coding" || round == "Technical II" {
		return technicalRoundContext
	}
	return ""
}

func personaInstruction(persona string) string {
	instr := fmt.Sprintf("You are a %s interviewer named Rohan.", persona)
	switch persona {
	case "Strict":
		instr += " Be formal, skeptical, and drill down into details."
	case "Friendly":
		instr += " Be encouraging, warm, and professional."
	}
	return instr
}

func buildChat(input string, ctx Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", personaInstruction(ctx.Persona))
	fmt.Fprintf(&b, "You are conducting a simulated interview for %s.\n", ctx.Company)
	fmt.Fprintf(&b, "Role: %s | Round: %s | Difficulty: %s\n\n", ctx.Role, ctx.Round, ctx.Difficulty)

	if style := companyStyle(ctx.Company); style != "" {
		b.WriteString(style)
		b.WriteString("\n\n")
	}
	if rc := roundContext(ctx.Round); rc != "" {
		b.WriteString(rc)
		b.WriteString("\n\n")
	}

	b.WriteString(`*** CRITICAL RULES ***
1. **NO RESUME REQUESTS:** Do NOT ask the candidate to upload a resume or mention "I have reviewed your resume". This is a verbal conversation. Ask them to describe their experience verbally.
2. **STAY ON TOPIC:** If the candidate goes off-topic, firmly remind them to focus on the interview.
3. **ONE QUESTION:** Ask exactly one question at a time.
4. **ASTERISKS:** Do NOT use asterisks (*) for actions (e.g., *nods*). Just speak naturally.
5. **FRESHER CHECK:** At the start, if you haven't asked yet, ask if they are a fresher or experienced. Adapt questions accordingly.
6. **PROJECT TECH STACK:** If the candidate mentions a project, explicitly ask them what tech stack they used if they haven't mentioned it.

Current Conversation Context:
`)
	b.WriteString(input)
	b.WriteString("\n\ninterviewer:\n")
	return b.String()
}

func buildCodeAnalysis(input string, ctx Context) string {
	return fmt.Sprintf(`You are a Senior Technical Interviewer at %s.
The candidate has submitted code for a %s problem.

Context:
Role: %s
Difficulty: %s

Candidate's Code:
%s

Your Task:
1. Analyze correctness and efficiency (Time/Space Complexity).
2. If the code is bad or incorrect, give a score of 0 for this section.
3. Ask ONE follow-up question specifically about their implementation.
`, ctx.Company, ctx.Round, ctx.Role, ctx.Difficulty, input)
}

func buildReport(transcript string, ctx Context) string {
	return fmt.Sprintf(`You are a NO-NONSENSE, BRUTALLY HONEST Senior Technical Recruiter.
Analyze the transcript below for a %s interview at %s.

TRANSCRIPT START
%s
TRANSCRIPT END

*** CRITICAL: HALLUCINATION CHECK ***
1. Look ONLY at the "TRANSCRIPT" text above.
2. Did the candidate (User) actually provide answers?
3. **IF THE CANDIDATE SAID NOTHING, OR ONLY "HELLO"/"STOP", OR THE TRANSCRIPT IS EMPTY:**
   - **SCORE MUST BE 0.**
   - **VERDICT MUST BE "Better Luck Next Time".**
   - **SUMMARY MUST BE:** "The candidate did not participate in the interview or ended the session immediately."
   - **STRENGTHS MUST BE:** ["The AI did not see any KEY STRENGTHS in this interview."].
   - **DO NOT MAKE UP STRENGTHS.**

*** SCORING RUBRIC (Only if candidate answered) ***

1. **0-20 (Better Luck Next Time):**
   - Criteria: Wrong answers, silence, or complete lack of basic knowledge.
   - Verdict: "Better Luck Next Time"
   - Key Strengths: ["The AI did not see any KEY STRENGTHS in this interview."]

2. **21-40 (Moderate):**
   - Criteria: Vague answers, buzzwords only, lacks depth. Answers are "almost" correct or generally okay but not fully accurate.
   - Verdict: "Moderate"
   - Key Strengths: Must provide at least 2-3 genuine strengths (e.g. "Good attempt at X").

3. **41-80 (Good):**
   - Criteria: Correct answers but general/standard. Little bit vague but acceptable.
   - Verdict: "Good"
   - Key Strengths: Must provide 2-3 genuine strengths.

4. **81-100 (Excellent):**
   - Criteria: Strong, clear, optimized answers. Deep knowledge, perfect communication.
   - Verdict: "Excellent"
   - Key Strengths: Must provide 2-3 strong key strengths.

*** FEEDBACK STYLE ***
- Be friendly but **brutal**. Do not sugarcoat failures.
- If they failed, say exactly why (e.g., "You didn't answer the question about Polymorphism").

*** OUTPUT FORMAT ***
- RETURN ONLY VALID JSON.
- DO NOT INCLUDE "Here is the report" or any markdown fences like `+"```json"+`.
- Just start with { and end with }.

{
    "score": <integer_0_to_100>,
    "verdict": "<Verdict String>",
    "summary": "<Brutally honest assessment.>",
    "strengths": ["<Strength 1>", "<Strength 2>"],
    "weaknesses": ["<Weakness 1>", "<Weakness 2>"],
    "improvement_plan": ["<Step 1>", "<Step 2>", "<Step 3>"],
    "code_feedback": "<Specific critique of code or 'N/A'>"
}
`, ctx.Role, ctx.Company, transcript)
}
