package persona

import "sort"

// PhraseTable maps the coded answer of a single-choice field to the phrase
// the document uses for it. Every table carries a default so that a stale
// or unknown code still resolves to something readable.
type PhraseTable struct {
	field   string
	phrases map[string]string
	def     string
}

// NewPhraseTable builds a table for field. def must be non-empty.
func NewPhraseTable(field, def string, phrases map[string]string) PhraseTable {
	if def == "" {
		panic("persona: phrase table " + field + " needs a default phrase")
	}
	cp := make(map[string]string, len(phrases))
	for k, v := range phrases {
		cp[k] = v
	}
	return PhraseTable{field: field, phrases: cp, def: def}
}

// Field returns the profile key the table resolves.
func (t PhraseTable) Field() string { return t.field }

// Default returns the fallback phrase.
func (t PhraseTable) Default() string { return t.def }

// Phrase resolves code, falling back to the default.
func (t PhraseTable) Phrase(code string) string {
	if p, ok := t.phrases[code]; ok {
		return p
	}
	return t.def
}

// Lookup resolves code and reports whether it was a known entry.
func (t PhraseTable) Lookup(code string) (string, bool) {
	p, ok := t.phrases[code]
	return p, ok
}

// Codes returns the known codes, sorted.
func (t PhraseTable) Codes() []string {
	out := make([]string, 0, len(t.phrases))
	for k := range t.phrases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// =============================================================================
// TABLES
// =============================================================================

var archetypes = NewPhraseTable(FieldStance, "a supportive partner", map[string]string{
	"challenger": "The Challenger: you push back, surface blind spots, and won't let me off easy",
	"muse":       "The Muse: you spark ideas, connect dots, and inspire new thinking",
	"scientist":  "The Scientist: you analyze data, test assumptions, and seek evidence",
	"coach":      "The Coach: you encourage growth, build confidence, and celebrate wins",
	"strategist": "The Strategist: you plan ahead, see the big picture, and anticipate obstacles",
	"anchor":     "The Anchor: you ground me, provide calm, and steady the ship",
})

// The default move is keyed by stance as well; it used to live in the
// principles list, which now stays the same for every profile.
var defaultMoves = NewPhraseTable(FieldStance, "Support forward momentum", map[string]string{
	"challenger": "Challenge comfortable answers",
	"muse":       "Offer a fresh angle before settling on an answer",
	"scientist":  "Ask what evidence would change my mind",
	"coach":      "Name progress before pointing at gaps",
	"strategist": "Zoom out to the longer arc before zooming in",
	"anchor":     "Slow things down when I start spinning",
})

var voices = NewPhraseTable(FieldVoice, "Refer to yourself however reads most naturally, and keep the focus on me.", map[string]string{
	"masculine": "Use he/him pronouns if referring to yourself. Take a more assertive, direct tone.",
	"feminine":  "Use she/her pronouns if referring to yourself. Take a more nurturing, empathetic tone.",
	"neutral":   "Use they/them pronouns if referring to yourself. Maintain a balanced, non-gendered presence.",
	"abstract":  "Do not refer to yourself with pronouns. You are pure function, not persona.",
})

var formats = NewPhraseTable(FieldFormatPreference, "Use flowing short paragraphs", map[string]string{
	"bullets":    "Use bullets and short statements",
	"paragraphs": "Use flowing short paragraphs",
})

var approaches = NewPhraseTable(FieldPlanningStyle, "Understand context before prescribing", map[string]string{
	"plan-first":     "Lead with structure and next steps",
	"analysis-first": "Understand context before prescribing",
})

var llms = NewPhraseTable(FieldPrimaryLLM, "Whichever assistant I happen to be using", map[string]string{
	"chatgpt": "ChatGPT (these are my custom instructions)",
	"claude":  "Claude (these are my project instructions)",
	"gemini":  "Gemini (these are my Gem instructions)",
	"other":   "Several assistants, so keep this document portable",
})

var focuses = NewPhraseTable(FieldOptimizationFocus, "Whatever matters most that day", map[string]string{
	"planning":   "Daily planning: structure, priorities, execution",
	"leadership": "Leadership and decisions: strategy, stakeholders, judgment",
	"creative":   "Writing and creativity: expression, ideas, craft",
	"balanced":   "A balance of planning, leadership, and creative work",
})

// Tables returns every phrase table the renderer consults.
func Tables() []PhraseTable {
	return []PhraseTable{archetypes, defaultMoves, voices, formats, approaches, llms, focuses}
}
