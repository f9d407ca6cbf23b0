// Package interview implements the guided interview that collects a
// Profile: the declarative Step Schema, the Answer Store, per-kind input
// validators and the Navigation Controller that walks the schema.
//
// Everything in this package is synchronous and single-owner. A Wizard is
// driven by one caller, one discrete action at a time; nothing here blocks
// or starts goroutines, so there is no locking.
package interview

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is returned by NewSchema when a declaration is inconsistent.
var ErrInvalidSchema = errors.New("invalid step schema")

// Kind is the input kind of a question.
type Kind int

const (
	// KindSingleChoice picks exactly one option; selecting commits and advances.
	KindSingleChoice Kind = iota
	// KindMultiChoice toggles options until exactly MaxSelect are chosen.
	KindMultiChoice
	// KindFreeText accepts arbitrary text, optionally blank.
	KindFreeText
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSingleChoice:
		return "single-choice"
	case KindMultiChoice:
		return "multi-choice"
	case KindFreeText:
		return "free-text"
	default:
		return "unknown"
	}
}

// ParseKind maps a stable kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "single-choice", "choice", "single":
		return KindSingleChoice, true
	case "multi-choice", "multi":
		return KindMultiChoice, true
	case "free-text", "text":
		return KindFreeText, true
	}
	return 0, false
}

// Option is one selectable answer of a choice question.
type Option struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question describes one step of the interview. Key is the Profile field
// the answer is committed to.
type Question struct {
	Key      string
	Kind     Kind
	Title    string
	Subtitle string

	// Choice parameters.
	Options   []Option
	MaxSelect int // multi-choice only: the exact selection count required

	// Free-text parameters.
	Placeholder string
	Multiline   bool
	Optional    bool
}

// HasOption reports whether value is one of the declared options.
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Option returns the declared option for value.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Section groups an ordered list of questions under a title.
type Section struct {
	ID        string
	Title     string
	Questions []Question
}

// Position identifies the current question as (section, sub-step).
type Position struct {
	Section int `json:"section"`
	Step    int `json:"step"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Section, p.Step)
}

// Schema is the immutable Step Schema. Every count the navigator needs is
// derived from the sections, never stored separately.
type Schema struct {
	sections []Section
	index    map[string]Position
	offsets  []int
	total    int
}

// NewSchema validates the declaration and builds the schema.
func NewSchema(sections ...Section) (*Schema, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrInvalidSchema)
	}

	s := &Schema{
		sections: make([]Section, len(sections)),
		index:    make(map[string]Position),
		offsets:  make([]int, len(sections)),
	}
	sectionIDs := make(map[string]bool)

	for i, sec := range sections {
		if strings.TrimSpace(sec.ID) == "" {
			return nil, fmt.Errorf("%w: section %d has no id", ErrInvalidSchema, i)
		}
		if sectionIDs[sec.ID] {
			return nil, fmt.Errorf("%w: duplicate section id %q", ErrInvalidSchema, sec.ID)
		}
		sectionIDs[sec.ID] = true
		if len(sec.Questions) == 0 {
			return nil, fmt.Errorf("%w: section %q has no questions", ErrInvalidSchema, sec.ID)
		}

		s.offsets[i] = s.total
		questions := make([]Question, len(sec.Questions))
		for j, q := range sec.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, fmt.Errorf("%w: section %q step %d: %v", ErrInvalidSchema, sec.ID, j, err)
			}
			if _, dup := s.index[q.Key]; dup {
				return nil, fmt.Errorf("%w: duplicate field key %q", ErrInvalidSchema, q.Key)
			}
			s.index[q.Key] = Position{Section: i, Step: j}
			q.Options = append([]Option(nil), q.Options...)
			questions[j] = q
		}
		sec.Questions = questions
		s.sections[i] = sec
		s.total += len(questions)
	}

	return s, nil
}

// MustSchema is NewSchema for static declarations; it panics on error.
func MustSchema(sections ...Section) *Schema {
	s, err := NewSchema(sections...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.Key) == "" {
		return errors.New("empty field key")
	}
	switch q.Kind {
	case KindSingleChoice, KindMultiChoice:
		if len(q.Options) == 0 {
			return fmt.Errorf("%s question %q has no options", q.Kind, q.Key)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.Value == "" {
				return fmt.Errorf("question %q has an option with an empty value", q.Key)
			}
			if seen[o.Value] {
				return fmt.Errorf("question %q repeats option %q", q.Key, o.Value)
			}
			seen[o.Value] = true
		}
		if q.Kind == KindMultiChoice && (q.MaxSelect < 1 || q.MaxSelect > len(q.Options)) {
			return fmt.Errorf("question %q: max selection %d outside [1,%d]", q.Key, q.MaxSelect, len(q.Options))
		}
	case KindFreeText:
	default:
		return fmt.Errorf("question %q has unknown kind %d", q.Key, int(q.Kind))
	}
	return nil
}

// Sections returns a copy of the section list.
func (s *Schema) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// SectionCount returns the number of sections.
func (s *Schema) SectionCount() int { return len(s.sections) }

// Section returns the section at index i.
func (s *Schema) Section(i int) (Section, bool) {
	if i < 0 || i >= len(s.sections) {
		return Section{}, false
	}
	return s.sections[i], true
}

// QuestionCount returns how many questions section i holds, or 0 when out of range.
func (s *Schema) QuestionCount(i int) int {
	if i < 0 || i >= len(s.sections) {
		return 0
	}
	return len(s.sections[i].Questions)
}

// TotalSteps is the sum of question counts across all sections.
func (s *Schema) TotalSteps() int { return s.total }

// Valid reports whether p addresses a question.
func (s *Schema) Valid(p Position) bool {
	return p.Section >= 0 && p.Section < len(s.sections) &&
		p.Step >= 0 && p.Step < len(s.sections[p.Section].Questions)
}

// Question returns the question at p.
func (s *Schema) Question(p Position) (Question, bool) {
	if !s.Valid(p) {
		return Question{}, false
	}
	return s.sections[p.Section].Questions[p.Step], true
}

// Linear converts p into the flat progress count: the question counts of
// all prior sections plus the sub-step. Returns -1 for invalid positions.
func (s *Schema) Linear(p Position) int {
	if !s.Valid(p) {
		return -1
	}
	return s.offsets[p.Section] + p.Step
}

// At converts a flat progress count back into a position.
func (s *Schema) At(linear int) (Position, bool) {
	if linear < 0 || linear >= s.total {
		return Position{}, false
	}
	for i := len(s.offsets) - 1; i >= 0; i-- {
		if linear >= s.offsets[i] {
			return Position{Section: i, Step: linear - s.offsets[i]}, true
		}
	}
	return Position{}, false
}

// PositionOf returns where the question writing to key lives.
func (s *Schema) PositionOf(key string) (Position, bool) {
	p, ok := s.index[key]
	return p, ok
}

// Lookup returns the question writing to key.
func (s *Schema) Lookup(key string) (Question, bool) {
	p, ok := s.index[key]
	if !ok {
		return Question{}, false
	}
	return s.sections[p.Section].Questions[p.Step], true
}

// Has reports whether key is declared by some question.
func (s *Schema) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Keys returns every field key in schema order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, s.total)
	for _, sec := range s.sections {
		for _, q := range sec.Questions {
			keys = append(keys, q.Key)
		}
	}
	return keys
}
