package persona

import (
	"fmt"
	"strings"

	"rumo/internal/interview"
)

// Principles close every document. They do not depend on the profile.
var Principles = []string{
	"Begin each day with Synthesis: clarity before productivity",
	"Ask questions before giving advice",
	"Support forward momentum without skipping the hard questions",
	"Track patterns across conversations",
	"Connect daily actions to longer-term direction",
	"Name what I might be avoiding",
	"Keep responses focused and actionable",
}

const sweats = `## SWEATS Integration
Support my daily practice across six domains:
- **Synthesis**: Morning orientation and planning (this is where we start)
- **Work**: Professional progress and output
- **Energy**: Physical health and vitality
- **Art**: Creative expression and craft
- **Ties**: Relationships and connection
- **Service**: Contribution beyond self

When I check in, help me distribute attention across what matters.
`

// line is one "- Label: value" row of a document section.
type line struct {
	label string
	field string
	table *PhraseTable
}

var (
	toneLines = []line{
		{label: "Characteristics", field: FieldToneWords},
		{label: "Format", field: FieldFormatPreference, table: &formats},
		{label: "Approach", field: FieldPlanningStyle, table: &approaches},
	}
	contextLines = []line{
		{label: "Role", field: FieldRole},
		{label: "90-day outcomes", field: FieldOutcomes},
		{label: "Key decisions", field: FieldDecisions},
		{label: "Current uncertainty", field: FieldUncertainty},
		{label: "Avoidance patterns", field: FieldAvoidance},
	}
	constraintLines = []line{
		{label: "Real constraints", field: FieldConstraints},
		{label: "Good day looks like", field: FieldGoodDay},
		{label: "Bad day looks like", field: FieldBadDay},
		{label: "Failure modes to watch", field: FieldFailureModes},
	}
	valueLines = []line{
		{label: "Protect these values", field: FieldProtectedValues},
		{label: "Never cross these boundaries", field: FieldBoundaries},
		{label: "Accountability that works", field: FieldAccountability},
	}
	togetherLines = []line{
		{label: "How I use AI today", field: FieldCurrentAIUse},
		{label: "What would make this a real partnership", field: FieldIdealPartner},
		{label: "Tools already in my day", field: FieldExistingTools},
		{label: "Where this runs", field: FieldPrimaryLLM, table: &llms},
		{label: "Optimize for", field: FieldOptimizationFocus, table: &focuses},
	}
)

// Render builds the Chief of Staff document. It never fails: blank or
// missing answers render as NotSpecified, unknown codes render as the
// table default. Keys outside the interview are ignored.
func Render(p interview.Profile) string {
	var sb strings.Builder

	sb.WriteString("# Personal Chief of Staff\n\n")

	sb.WriteString("## Who You Are\n")
	sb.WriteString("You are my Chief of Staff, a thinking partner who helps me maintain direction and make better decisions.\n")
	fmt.Fprintf(&sb, "- Archetype: %s\n", resolve(p, line{field: FieldStance, table: &archetypes}))
	fmt.Fprintf(&sb, "- Default move: %s\n", defaultMoves.Phrase(p.Text(FieldStance)))
	if p.Text(FieldVoice) != "abstract" {
		fmt.Fprintf(&sb, "- Persona: %s\n", resolve(p, line{field: FieldVoice, table: &voices}))
	}

	writeSection(&sb, "Tone & Style", p, toneLines)
	writeSection(&sb, "My Context", p, contextLines)
	writeSection(&sb, "Operating Constraints", p, constraintLines)
	writeSection(&sb, "Values & Guardrails", p, valueLines)
	writeSection(&sb, "Working Together", p, togetherLines)

	sb.WriteString("\n## Operating Principles\n")
	for i, pr := range Principles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, pr)
	}

	sb.WriteString("\n")
	sb.WriteString(sweats)
	return sb.String()
}

// Renderer adapts Render to the wizard's renderer hook.
func Renderer() interview.Renderer { return Render }

// Fields returns every profile key the document references, in document order.
func Fields() []string {
	out := []string{FieldStance, FieldVoice}
	for _, group := range [][]line{toneLines, contextLines, constraintLines, valueLines, togetherLines} {
		for _, l := range group {
			out = append(out, l.field)
		}
	}
	return out
}

func writeSection(sb *strings.Builder, title string, p interview.Profile, lines []line) {
	fmt.Fprintf(sb, "\n## %s\n", title)
	for _, l := range lines {
		fmt.Fprintf(sb, "- %s: %s\n", l.label, resolve(p, l))
	}
}

func resolve(p interview.Profile, l line) string {
	v, ok := p[l.field]
	if !ok || v.Empty() {
		return NotSpecified
	}
	if l.table != nil {
		return l.table.Phrase(strings.TrimSpace(v.Join(", ")))
	}
	return oneLine(v.Join(", "))
}

// oneLine folds multi-line answers so each stays inside its list item.
func oneLine(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
