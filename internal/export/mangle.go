package export

import (
	"fmt"
	"strings"

	"github.com/google/mangle/parse"

	"rumo/internal/interview"
)

// =============================================================================
// MANGLE FACTS
// =============================================================================

// mangleExporter writes the profile as Mangle facts:
//
//	profile_status(/completed).
//	profile_revision("...").
//	question_kind("stance", /single_choice).
//	profile_field("stance", "challenger").
//	profile_item("toneWords", "calm").
//
// Multi-choice answers produce one profile_item fact per selected item;
// every other answer produces a single profile_field fact.
type mangleExporter struct{}

func (mangleExporter) Name() string      { return "mangle" }
func (mangleExporter) Extension() string { return ".mg" }

func (mangleExporter) Export(b Bundle) ([]byte, error) {
	src := Facts(b)
	if err := checkFacts(src); err != nil {
		return nil, err
	}
	return []byte(src), nil
}

// checkFacts parses src so a malformed file is never written.
func checkFacts(src string) error {
	if _, err := parse.Unit(strings.NewReader(src)); err != nil {
		return fmt.Errorf("mangle facts do not parse: %w", err)
	}
	return nil
}

// Facts renders b as Mangle source. The output is deterministic for a
// given bundle.
func Facts(b Bundle) string {
	var sb strings.Builder

	sb.WriteString("# RUMO Chief of Staff profile\n")
	if ts := stamp(b.UpdatedAt); ts != "" {
		sb.WriteString(fmt.Sprintf("# Saved: %s\n", ts))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("profile_status(/%s).\n", status(b.Completed)))
	if b.Revision != "" {
		sb.WriteString(fmt.Sprintf("profile_revision(%s).\n", mangleString(b.Revision)))
	}
	sb.WriteString("\n")

	if b.Schema != nil {
		sb.WriteString("# Questions\n")
		for _, sec := range b.Schema.Sections() {
			for _, q := range sec.Questions {
				sb.WriteString(fmt.Sprintf("question_kind(%s, /%s).\n", mangleString(q.Key), kindName(q.Kind)))
				sb.WriteString(fmt.Sprintf("question_section(%s, %s).\n", mangleString(q.Key), mangleString(sec.ID)))
			}
		}
		sb.WriteString("\n")
	}

	keys := orderedKeys(b)
	if len(keys) > 0 {
		sb.WriteString("# Answers\n")
	}
	for _, k := range keys {
		v := b.Profile[k]
		if v.IsSet() {
			for _, item := range v.Items {
				sb.WriteString(fmt.Sprintf("profile_item(%s, %s).\n", mangleString(k), mangleString(item)))
			}
			continue
		}
		sb.WriteString(fmt.Sprintf("profile_field(%s, %s).\n", mangleString(k), mangleString(v.Text)))
	}

	return sb.String()
}

// kindName maps a kind to a Mangle name constant suffix.
func kindName(k interview.Kind) string {
	return strings.ReplaceAll(k.String(), "-", "_")
}

// mangleString quotes s as a Mangle string literal. Only the escapes the
// Mangle lexer understands are produced; other control characters are
// dropped.
func mangleString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
