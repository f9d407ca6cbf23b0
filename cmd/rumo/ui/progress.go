package ui

import (
	"fmt"
	"strings"

	"rumo/internal/interview"
)

type segmentState int

const (
	segmentPending segmentState = iota
	segmentCurrent
	segmentDone
)

// segmentStates returns one state per section: sections before the
// current one are done, the current one is current, the rest pending.
func segmentStates(schema *interview.Schema, pos interview.Position, completed bool) []segmentState {
	out := make([]segmentState, schema.SectionCount())
	for i := range out {
		switch {
		case completed || i < pos.Section:
			out[i] = segmentDone
		case i == pos.Section:
			out[i] = segmentCurrent
		}
	}
	return out
}

// StepLabel is the "N of total" counter, N counting from one.
func StepLabel(w *interview.Wizard) string {
	linear, total := w.Progress()
	if w.Completed() {
		return fmt.Sprintf("%d of %d", total, total)
	}
	return fmt.Sprintf("%d of %d", linear+1, total)
}

// renderProgress draws the counter and one bar per section, each as wide
// as its question count.
func renderProgress(s Styles, w *interview.Wizard) string {
	schema := w.Schema()
	states := segmentStates(schema, w.Position(), w.Completed())

	bars := make([]string, len(states))
	for i, st := range states {
		bar := strings.Repeat("━", 2*schema.QuestionCount(i))
		switch st {
		case segmentDone:
			bars[i] = s.SegmentDone.Render(bar)
		case segmentCurrent:
			bars[i] = s.SegmentCurrent.Render(bar)
		default:
			bars[i] = s.SegmentPending.Render(bar)
		}
	}
	return s.Muted.Render(StepLabel(w)) + "  " + strings.Join(bars, " ")
}
