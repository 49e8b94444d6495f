package framework

// Framework is one entry in the prompt-framework catalog.
type Framework struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WhenToUse string `json:"when_to_use"`
	Structure string `json:"structure"`
	Example   string `json:"example"`
}

// Catalog is the fixed prompt-framework library. The suggestion prompt and
// the semantic-search index are both built from it.
var Catalog = []Framework{
	{
		ID:        "rtf",
		Name:      "R-T-F",
		WhenToUse: "Quick, simple tasks. Fast, focused output with structure.",
		Structure: "Role, Task, Format",
		Example:   "Role: Act as a brand strategist\nTask: Write a messaging hierarchy\nFormat: Use a bulleted list with 3 core benefits",
	},
	{
		ID:        "solve",
		Name:      "S-O-L-V-E",
		WhenToUse: "Strategy, business plans, decision-making. Strategic plan with clear constraints.",
		Structure: "Situation, Objective, Limitations, Vision, Execution",
		Example:   "Situation: I run a new productivity app for freelancers\nObjective: Increase daily active users by 30%\nLimitations: Small team, limited ad budget\nVision: Become the go-to app for remote workers\nExecution: Suggest 3 campaigns with metrics to track",
	},
	{
		ID:        "tag",
		Name:      "T-A-G",
		WhenToUse: "Small tasks, UX tweaks, productivity prompts. Focused improvements or iterations.",
		Structure: "Task, Action, Goal",
		Example:   "Task: Improve our signup page\nAction: Redesign copy and layout\nGoal: Increase conversion rate by 15%",
	},
	{
		ID:        "race",
		Name:      "R-A-C-E",
		WhenToUse: "Persona-based communication (sales, cold emails). Consider the audience and desired outcome.",
		Structure: "Role, Action, Context, Expectation",
		Example:   "Role: Act as a SaaS email marketer\nAction: Write a cold outreach email\nContext: Our tool helps HR teams automate onboarding\nExpectation: The email should drive 15%+ reply rate",
	},
	{
		ID:        "dream",
		Name:      "D-R-E-A-M",
		WhenToUse: "Research-based, complex planning tasks. Iterative, full-cycle help.",
		Structure: "Define, Research, Execute, Analyse, Measure",
		Example:   "Define: I want to launch an AI course for creators\nResearch: Top competitors and pricing models\nExecute: Draft a 4-week curriculum\nAnalyse: Get feedback from beta users\nMeasure: Track signups, completions, and NPS",
	},
	{
		ID:        "pact",
		Name:      "P-A-C-T",
		WhenToUse: "A/B testing, growth experiments. Variation and validation before launching.",
		Structure: "Problem, Approach, Components, Test",
		Example:   "Problem: Low click-through rate on landing page\nApproach: Try 3 headline variations\nComponents: Headline, subheadline, CTA\nTest: Use A/B test and compare CTR over 7 days",
	},
	{
		ID:        "care",
		Name:      "C-A-R-E",
		WhenToUse: "Storytelling, testimonials, credibility. Persuasive proof or storytelling copy.",
		Structure: "Context, Action, Result, Example",
		Example:   "Context: Our client used to struggle with onboarding\nAction: We implemented a 3-step automation flow\nResult: Onboarding time reduced by 50%\nExample: A case where this saved 3 hours per new hire",
	},
	{
		ID:        "rise",
		Name:      "R-I-S-E",
		WhenToUse: "Complex tasks, team ops, goal-setting. Need a system, not just an answer.",
		Structure: "Role, Input, Steps, Expectation",
		Example:   "Role: Act as a project manager\nInput: We're building an AI assistant feature\nSteps: Ideation, prototyping, user testing\nExpectation: Provide a checklist and timeline with ownership per task",
	},
	{
		ID:        "score",
		Name:      "S.C.O.R.E.",
		WhenToUse: "Persuasive writing, testimonials.",
		Structure: "Situation, Challenge, Outcome, Response, Evidence",
		Example:   "Situation: Before they used us\nChallenge: They had X problems\nOutcome: After using our product, they achieved Y\nResponse: What they said about it\nEvidence: Data or stat backing it up",
	},
	{
		ID:        "idea",
		Name:      "I.D.E.A.",
		WhenToUse: "Creative brainstorming.",
		Structure: "Inspiration, Development, Execution, Analysis",
		Example:   "Inspiration: What triggered the idea\nDevelopment: How we'll build it\nExecution: How we'll launch it\nAnalysis: How we'll learn from it",
	},
	{
		ID:        "mice",
		Name:      "M.I.C.E.",
		WhenToUse: "Storytelling or narrative design.",
		Structure: "Milieu, Idea, Character, Event",
		Example:   "Milieu: World/setting\nIdea: Concept or dilemma\nCharacter: Who changes\nEvent: What happens",
	},
	{
		ID:        "jobs",
		Name:      "J.O.B.S.",
		WhenToUse: "Career or job-related prompts.",
		Structure: "Job Role, Objectives, Barriers, Solutions",
		Example:   "Job Role: Product Designer\nObjectives: Improve design-to-dev handoff\nBarriers: Miscommunication and rework\nSolutions: Design tokens, shared Figma libraries",
	},
	{
		ID:        "clear",
		Name:      "C.L.E.A.R.",
		WhenToUse: "Coaching, feedback, leadership conversations.",
		Structure: "Clarify, Listen, Explore, Act, Review",
		Example:   "Clarify: What's the real issue?\nListen: Reflect and understand\nExplore: Generate possible options\nAct: Choose one step forward\nReview: Reflect on results and iterate",
	},
	{
		ID:        "create",
		Name:      "C.R.E.A.T.E.",
		WhenToUse: "Product or project creation.",
		Structure: "Customer, Research, Execution, Action Plan, Testing, Evaluation",
		Example:   "Customer: Who are we serving\nResearch: What do they need\nExecution: Build core solution\nAction Plan: Timeline + milestones\nTesting: Validate the idea\nEvaluation: Reflect on results",
	},
}

// ByID looks up a catalog entry; ok is false for unknown ids.
func ByID(id string) (Framework, bool) {
	for _, f := range Catalog {
		if f.ID == id {
			return f, true
		}
	}
	return Framework{}, false
}

// ByName looks up a catalog entry by display name (e.g. "R-T-F").
func ByName(name string) (Framework, bool) {
	for _, f := range Catalog {
		if f.Name == name {
			return f, true
		}
	}
	return Framework{}, false
}
