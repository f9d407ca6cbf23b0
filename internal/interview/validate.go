package interview

import "strings"

// Draft is the uncommitted answer for the current question.
type Draft struct {
	Choice    string   // single-choice
	Selection []string // multi-choice buffer
	Text      string   // free-text
}

func (d Draft) clone() Draft {
	d.Selection = append([]string(nil), d.Selection...)
	return d
}

// Valid reports whether d is acceptable for q. Validators are pure.
func Valid(q Question, d Draft) bool {
	switch q.Kind {
	case KindSingleChoice:
		return ValidChoice(q, d.Choice)
	case KindMultiChoice:
		return ValidSelection(q, d.Selection)
	case KindFreeText:
		return ValidText(q, d.Text)
	}
	return false
}

// ValidChoice: any declared option counts as selected.
func ValidChoice(q Question, choice string) bool {
	return choice != "" && q.HasOption(choice)
}

// ValidSelection requires exactly MaxSelect distinct declared options.
func ValidSelection(q Question, selection []string) bool {
	if len(selection) != q.MaxSelect {
		return false
	}
	seen := make(map[string]bool, len(selection))
	for _, v := range selection {
		if seen[v] || !q.HasOption(v) {
			return false
		}
		seen[v] = true
	}
	return true
}

// ValidText accepts anything for optional questions, otherwise non-blank text.
func ValidText(q Question, text string) bool {
	return q.Optional || strings.TrimSpace(text) != ""
}

// Toggle flips value in selection and returns the new selection plus whether
// anything changed. Unknown values, and additions once the cap is reached,
// are ignored.
func Toggle(q Question, selection []string, value string) ([]string, bool) {
	for i, v := range selection {
		if v == value {
			out := make([]string, 0, len(selection)-1)
			out = append(out, selection[:i]...)
			return append(out, selection[i+1:]...), true
		}
	}
	if !q.HasOption(value) || len(selection) >= q.MaxSelect {
		return selection, false
	}
	out := make([]string, len(selection), len(selection)+1)
	copy(out, selection)
	return append(out, value), true
}
