package persona

import (
	"sync"

	"rumo/internal/interview"
)

var (
	schemaOnce sync.Once
	schema     *interview.Schema
)

// Schema returns the Chief of Staff interview. It is built once and shared.
func Schema() *interview.Schema {
	schemaOnce.Do(func() {
		schema = interview.MustSchema(Sections()...)
	})
	return schema
}

// Sections returns a fresh copy of the interview declaration, for callers
// that want to build a variant schema.
func Sections() []interview.Section {
	return []interview.Section{
		{
			ID:    SectionStance,
			Title: "Stance & Style",
			Questions: []interview.Question{
				{
					Key:      FieldStance,
					Kind:     interview.KindSingleChoice,
					Title:    "I want my Chief of Staff to be...",
					Subtitle: "Choose the archetype that resonates with how you want to be supported.",
					Options: []interview.Option{
						{Value: "challenger", Label: "The Challenger", Description: "Pushes back, surfaces blind spots, won't let you off easy"},
						{Value: "muse", Label: "The Muse", Description: "Sparks ideas, connects dots, inspires new thinking"},
						{Value: "scientist", Label: "The Scientist", Description: "Analyzes data, tests assumptions, seeks evidence"},
						{Value: "coach", Label: "The Coach", Description: "Encourages growth, builds confidence, celebrates wins"},
						{Value: "strategist", Label: "The Strategist", Description: "Plans ahead, sees the big picture, anticipates obstacles"},
						{Value: "anchor", Label: "The Anchor", Description: "Grounds you, provides calm, steadies the ship"},
					},
				},
				{
					Key:      FieldVoice,
					Kind:     interview.KindSingleChoice,
					Title:    "How should your Chief of Staff present?",
					Subtitle: "Choose a voice and persona.",
					Options: []interview.Option{
						{Value: "masculine", Label: "Masculine", Description: "He/him, more assertive tone"},
						{Value: "feminine", Label: "Feminine", Description: "She/her, more nurturing tone"},
						{Value: "neutral", Label: "Neutral", Description: "They/them, balanced and non-gendered"},
						{Value: "abstract", Label: "Abstract", Description: "No persona, pure function"},
					},
				},
				{
					Key:       FieldToneWords,
					Kind:      interview.KindMultiChoice,
					Title:     "Choose the characteristics you want your Chief of Staff to have.",
					Subtitle:  "Select three.",
					Options:   plainOptions(ToneWords),
					MaxSelect: ToneWordCap,
				},
				{
					Key:   FieldFormatPreference,
					Kind:  interview.KindSingleChoice,
					Title: "How should responses be formatted?",
					Options: []interview.Option{
						{Value: "bullets", Label: "Bullets", Description: "Concise, scannable"},
						{Value: "paragraphs", Label: "Short paragraphs", Description: "More context, flowing"},
					},
				},
				{
					Key:   FieldPlanningStyle,
					Kind:  interview.KindSingleChoice,
					Title: "When analyzing a problem...",
					Options: []interview.Option{
						{Value: "plan-first", Label: "Plan first", Description: "Start with structure and next steps"},
						{Value: "analysis-first", Label: "Analysis first", Description: "Understand before prescribing"},
					},
				},
			},
		},
		{
			ID:    SectionContext,
			Title: "Context Capture",
			Questions: []interview.Question{
				{
					Key:         FieldRole,
					Kind:        interview.KindFreeText,
					Title:       "What is your current role?",
					Subtitle:    "Include multiple roles if relevant.",
					Placeholder: "e.g., VP of Product at a Series B startup, also a parent of two",
				},
				longText(FieldOutcomes, "What are your top three outcomes for the next 90 days?",
					"e.g., Launch v2, hire two senior engineers, establish exec team rhythm"),
				longText(FieldDecisions, "What are the three recurring decisions you make that have the biggest impact?",
					"e.g., Resource allocation, roadmap prioritization, hiring calls"),
				longText(FieldUncertainty, "Where does uncertainty show up most right now?",
					"What keeps you uncertain or anxious?"),
				longText(FieldAvoidance, "What do you consistently avoid or delay, even though it matters?",
					"Be honest. This helps your COS know where to push."),
			},
		},
		{
			ID:    SectionConstraints,
			Title: "Operating Constraints",
			Questions: []interview.Question{
				withSubtitle(longText(FieldConstraints, "What constraints are real right now?",
					"e.g., Limited bandwidth, young kids, recovering from burnout"),
					"Time, energy, money, family, attention, health, etc."),
				longText(FieldGoodDay, "What does a good day look like?",
					"Describe the texture: energy, accomplishment, presence"),
				longText(FieldBadDay, "What does a bad day look like?",
					"What patterns show up when things go wrong?"),
				{
					Key:       FieldFailureModes,
					Kind:      interview.KindMultiChoice,
					Title:     "What are your most common failure modes?",
					Subtitle:  "Pick your top three.",
					Options:   plainOptions(FailureModes),
					MaxSelect: FailureModeCap,
				},
			},
		},
		{
			ID:    SectionValues,
			Title: "Values & Guardrails",
			Questions: []interview.Question{
				longText(FieldProtectedValues, "What values should your Chief of Staff protect at all costs?",
					"e.g., Integrity, family time, creative freedom, health"),
				longText(FieldBoundaries, "What boundaries should your COS never cross?",
					"e.g., Never encourage overwork, don't schedule during family dinner"),
				longText(FieldAccountability, "What kind of accountability actually works for you?",
					"e.g., Gentle reminders, direct callouts, progress tracking"),
			},
		},
		{
			ID:    SectionRelationship,
			Title: "AI Relationship",
			Questions: []interview.Question{
				optional(longText(FieldCurrentAIUse, "How are you currently using AI, and what frustrates you?",
					"Be specific about pain points")),
				optional(longText(FieldIdealPartner, "What would make AI feel like a true partner?",
					"What's missing from your current experience?")),
				optional(longText(FieldExistingTools, "What tools or systems are already part of your daily life?",
					"e.g., Notion, Linear, Apple Notes, calendar blocking")),
			},
		},
		{
			ID:    SectionOutput,
			Title: "Output Preferences",
			Questions: []interview.Question{
				{
					Key:   FieldPrimaryLLM,
					Kind:  interview.KindSingleChoice,
					Title: "Which LLM are you primarily using?",
					Options: []interview.Option{
						{Value: "chatgpt", Label: "ChatGPT", Description: "OpenAI"},
						{Value: "claude", Label: "Claude", Description: "Anthropic"},
						{Value: "gemini", Label: "Gemini", Description: "Google"},
						{Value: "other", Label: "Other / Multiple", Description: "Various platforms"},
					},
				},
				{
					Key:   FieldOptimizationFocus,
					Kind:  interview.KindSingleChoice,
					Title: "What should your COS optimize for?",
					Options: []interview.Option{
						{Value: "planning", Label: "Daily Planning", Description: "Structure, priorities, execution"},
						{Value: "leadership", Label: "Leadership & Decisions", Description: "Strategy, stakeholders, judgment"},
						{Value: "creative", Label: "Writing & Creativity", Description: "Expression, ideas, craft"},
						{Value: "balanced", Label: "Balanced", Description: "All of the above"},
					},
				},
			},
		},
	}
}

func plainOptions(values []string) []interview.Option {
	opts := make([]interview.Option, len(values))
	for i, v := range values {
		opts[i] = interview.Option{Value: v, Label: v}
	}
	return opts
}

func longText(key, title, placeholder string) interview.Question {
	return interview.Question{
		Key:         key,
		Kind:        interview.KindFreeText,
		Title:       title,
		Placeholder: placeholder,
		Multiline:   true,
	}
}

func withSubtitle(q interview.Question, subtitle string) interview.Question {
	q.Subtitle = subtitle
	return q
}

func optional(q interview.Question) interview.Question {
	q.Optional = true
	return q
}
