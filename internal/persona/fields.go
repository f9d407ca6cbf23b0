// Package persona defines the Chief of Staff interview: the concrete
// six-section question schema, the phrase tables for coded answers, and the
// renderer that turns a completed profile into the persona document pasted
// into an assistant's custom instructions.
//
// The package holds no state. Schema() and Render are safe to call from any
// goroutine.
package persona

// =============================================================================
// FIELD KEYS
// =============================================================================

// Field keys written by the interview. They double as the JSON keys of a
// persisted profile, so renaming one orphans saved answers.
const (
	// Stance & Style
	FieldStance           = "stance"
	FieldVoice            = "voice"
	FieldToneWords        = "toneWords"
	FieldFormatPreference = "formatPreference"
	FieldPlanningStyle    = "planningStyle"

	// Context Capture
	FieldRole        = "role"
	FieldOutcomes    = "outcomes"
	FieldDecisions   = "decisions"
	FieldUncertainty = "uncertainty"
	FieldAvoidance   = "avoidance"

	// Operating Constraints
	FieldConstraints  = "constraints"
	FieldGoodDay      = "goodDay"
	FieldBadDay       = "badDay"
	FieldFailureModes = "failureModes"

	// Values & Guardrails
	FieldProtectedValues = "protectedValues"
	FieldBoundaries      = "boundaries"
	FieldAccountability  = "accountability"

	// AI Relationship
	FieldCurrentAIUse  = "currentAIUse"
	FieldIdealPartner  = "idealPartner"
	FieldExistingTools = "existingTools"

	// Output Preferences
	FieldPrimaryLLM        = "primaryLLM"
	FieldOptimizationFocus = "optimizationFocus"
)

// Section identifiers.
const (
	SectionStance       = "stance"
	SectionContext      = "context"
	SectionConstraints  = "constraints"
	SectionValues       = "values"
	SectionRelationship = "relationship"
	SectionOutput       = "output"
)

// NotSpecified is substituted for any blank or missing answer.
const NotSpecified = "Not specified"

// ToneWords is the pool for the characteristics question.
var ToneWords = []string{
	"calm", "direct", "warm", "witty", "formal",
	"concise", "thoughtful", "measured", "sharp", "patient",
}

// FailureModes is the pool for the failure-mode question.
var FailureModes = []string{
	"overthinking", "impulsivity", "perfectionism", "distraction",
	"people-pleasing", "avoidance", "scattered focus", "overcommitting",
}

// Caps on the two multi-choice questions. A selection must hit the cap
// exactly before the interview moves on.
const (
	ToneWordCap    = 3
	FailureModeCap = 3
)
