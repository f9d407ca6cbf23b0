package interview

import (
	"fmt"
	"strings"
)

// State is the navigation state of a wizard.
type State int

const (
	// StateInProgress means Position addresses the current question.
	StateInProgress State = iota
	// StateCompleted is terminal: the Profile is frozen and rendered.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Renderer turns a Profile into the final document. It must be pure.
type Renderer func(Profile) string

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithRenderer sets the renderer used on completion.
func WithRenderer(r Renderer) WizardOption {
	return func(w *Wizard) {
		if r != nil {
			w.render = r
		}
	}
}

// WithOnComplete registers the completion callback, fired exactly once.
func WithOnComplete(fn func(Profile)) WizardOption {
	return func(w *Wizard) { w.onComplete = fn }
}

// WithOnExit registers the callback fired when Back is pressed on the first question.
func WithOnExit(fn func()) WizardOption {
	return func(w *Wizard) { w.onExit = fn }
}

// WithProfile pre-seeds the Answer Store, e.g. from persisted state.
// Keys the schema does not declare are dropped.
func WithProfile(p Profile) WizardOption {
	return func(w *Wizard) { w.seed = p }
}

// Wizard is the Navigation Controller. It owns Position and is the only
// writer of the Answer Store.
type Wizard struct {
	schema  *Schema
	answers *AnswerStore
	pos     Position
	state   State
	draft   Draft

	seed       Profile
	render     Renderer
	onComplete func(Profile)
	onExit     func()

	document string
	final    Profile
}

// New starts a wizard at (0,0).
func New(schema *Schema, opts ...WizardOption) *Wizard {
	w := &Wizard{
		schema: schema,
		render: Outline(schema),
	}
	for _, opt := range opts {
		opt(w)
	}
	seed, _ := w.seed.Sanitize(schema)
	w.seed = nil
	w.answers = newAnswerStore(seed)
	w.enter(Position{})
	return w
}

// Restore rebuilds a wizard that already completed in an earlier session.
// The document is rendered once; onComplete is not fired again.
func Restore(schema *Schema, p Profile, opts ...WizardOption) *Wizard {
	w := New(schema, append(opts, WithProfile(p))...)
	last := schema.SectionCount() - 1
	w.pos = Position{Section: last, Step: schema.QuestionCount(last) - 1}
	w.finish(false)
	return w
}

// Schema returns the schema being walked.
func (w *Wizard) Schema() *Schema { return w.schema }

// State returns the navigation state.
func (w *Wizard) State() State { return w.state }

// Completed reports whether the terminal state was reached.
func (w *Wizard) Completed() bool { return w.state == StateCompleted }

// Position returns the current (section, sub-step) coordinate. After
// completion it stays at the last question.
func (w *Wizard) Position() Position { return w.pos }

// Progress returns the linear progress and the total step count.
func (w *Wizard) Progress() (int, int) {
	total := w.schema.TotalSteps()
	if w.state == StateCompleted {
		return total, total
	}
	return w.schema.Linear(w.pos), total
}

// Current returns the question at Position; false once completed.
func (w *Wizard) Current() (Question, bool) {
	if w.state == StateCompleted {
		return Question{}, false
	}
	return w.schema.Question(w.pos)
}

// CurrentSection returns the section holding the current question.
func (w *Wizard) CurrentSection() Section {
	sec, _ := w.schema.Section(w.pos.Section)
	return sec
}

// Draft returns a copy of the uncommitted answer.
func (w *Wizard) Draft() Draft { return w.draft.clone() }

// Profile returns a snapshot of the committed answers.
func (w *Wizard) Profile() Profile {
	if w.state == StateCompleted {
		return w.final.Clone()
	}
	return w.answers.Snapshot()
}

// Answers exposes read access to the Answer Store.
func (w *Wizard) Answers() *AnswerStore { return w.answers }

// Document returns the rendered document once completed.
func (w *Wizard) Document() (string, bool) {
	if w.state != StateCompleted {
		return "", false
	}
	return w.document, true
}

// CanAdvance reports whether the current draft passes its validator.
func (w *Wizard) CanAdvance() bool {
	q, ok := w.Current()
	if !ok {
		return false
	}
	return Valid(q, w.draft)
}

// Select picks an option of a single-choice question, committing and
// advancing in the same action. Returns false when nothing happened.
func (w *Wizard) Select(value string) bool {
	q, ok := w.Current()
	if !ok || q.Kind != KindSingleChoice || !q.HasOption(value) {
		return false
	}
	w.draft.Choice = value
	return w.Advance()
}

// Toggle flips an option of a multi-choice question. Adding past the cap
// is ignored.
func (w *Wizard) Toggle(value string) bool {
	q, ok := w.Current()
	if !ok || q.Kind != KindMultiChoice {
		return false
	}
	sel, changed := Toggle(q, w.draft.Selection, value)
	w.draft.Selection = sel
	return changed
}

// SetText replaces the free-text draft.
func (w *Wizard) SetText(text string) bool {
	q, ok := w.Current()
	if !ok || q.Kind != KindFreeText {
		return false
	}
	w.draft.Text = text
	return true
}

// Advance commits the draft and moves forward. It is a no-op when the
// validator rejects the draft.
func (w *Wizard) Advance() bool {
	q, ok := w.Current()
	if !ok || !Valid(q, w.draft) {
		return false
	}

	switch q.Kind {
	case KindSingleChoice:
		w.answers.commit(q.Key, Text(w.draft.Choice))
	case KindMultiChoice:
		w.answers.commit(q.Key, Set(w.draft.Selection...))
	case KindFreeText:
		w.answers.commit(q.Key, Text(strings.TrimSpace(w.draft.Text)))
	}
	w.draft = Draft{}

	switch {
	case w.pos.Step+1 < w.schema.QuestionCount(w.pos.Section):
		w.enter(Position{Section: w.pos.Section, Step: w.pos.Step + 1})
	case w.pos.Section+1 < w.schema.SectionCount():
		w.enter(Position{Section: w.pos.Section + 1})
	default:
		w.finish(true)
	}
	return true
}

// Back moves to the previous question. On the first question it leaves
// Position alone, fires onExit and returns false.
func (w *Wizard) Back() bool {
	if w.state == StateCompleted {
		return false
	}
	switch {
	case w.pos.Step > 0:
		w.enter(Position{Section: w.pos.Section, Step: w.pos.Step - 1})
	case w.pos.Section > 0:
		prev := w.pos.Section - 1
		w.enter(Position{Section: prev, Step: w.schema.QuestionCount(prev) - 1})
	default:
		if w.onExit != nil {
			w.onExit()
		}
		return false
	}
	return true
}

// enter moves to p and seeds the draft from any committed answer.
func (w *Wizard) enter(p Position) {
	w.pos = p
	w.draft = Draft{}
	q, ok := w.schema.Question(p)
	if !ok {
		return
	}
	v, ok := w.answers.Get(q.Key)
	if !ok {
		return
	}
	switch q.Kind {
	case KindSingleChoice:
		if q.HasOption(v.Text) {
			w.draft.Choice = v.Text
		}
	case KindMultiChoice:
		for _, it := range v.Items {
			w.draft.Selection, _ = Toggle(q, w.draft.Selection, it)
		}
	case KindFreeText:
		w.draft.Text = v.Text
	}
}

func (w *Wizard) finish(notify bool) {
	w.state = StateCompleted
	w.draft = Draft{}
	w.final = w.answers.Snapshot()
	w.document = w.render(w.final.Clone())
	if notify && w.onComplete != nil {
		w.onComplete(w.final.Clone())
	}
}

// Outline is the fallback renderer: one "Title: answer" line per question
// in schema order, with "Not specified" for blanks.
func Outline(schema *Schema) Renderer {
	return func(p Profile) string {
		var sb strings.Builder
		for _, sec := range schema.Sections() {
			fmt.Fprintf(&sb, "## %s\n", sec.Title)
			for _, q := range sec.Questions {
				answer := "Not specified"
				if v, ok := p[q.Key]; ok && !v.Empty() {
					answer = v.Join(", ")
				}
				fmt.Fprintf(&sb, "- %s: %s\n", q.Title, answer)
			}
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n") + "\n"
	}
}
