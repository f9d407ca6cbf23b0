package interview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choice(key string, values ...string) Question {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return Question{Key: key, Kind: KindSingleChoice, Title: key, Options: opts}
}

func multi(key string, max int, values ...string) Question {
	q := choice(key, values...)
	q.Kind = KindMultiChoice
	q.MaxSelect = max
	return q
}

func text(key string, optional bool) Question {
	return Question{Key: key, Kind: KindFreeText, Title: key, Optional: optional}
}

// twoSections has 2 questions in section 0 and 3 in section 1.
func twoSections(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(
		Section{ID: "a", Title: "A", Questions: []Question{
			choice("a0", "x", "y"),
			text("a1", false),
		}},
		Section{ID: "b", Title: "B", Questions: []Question{
			text("b0", true),
			choice("b1", "x", "y"),
			text("b2", false),
		}},
	)
	require.NoError(t, err)
	return s
}

func TestSchemaDerivedCounts(t *testing.T) {
	s := twoSections(t)

	assert.Equal(t, 2, s.SectionCount())
	assert.Equal(t, 2, s.QuestionCount(0))
	assert.Equal(t, 3, s.QuestionCount(1))
	assert.Equal(t, 0, s.QuestionCount(2))
	assert.Equal(t, 5, s.TotalSteps())

	assert.Equal(t, 0, s.Linear(Position{0, 0}))
	assert.Equal(t, 1, s.Linear(Position{0, 1}))
	assert.Equal(t, 2, s.Linear(Position{1, 0}))
	assert.Equal(t, 4, s.Linear(Position{1, 2}))
	assert.Equal(t, -1, s.Linear(Position{1, 3}))
	assert.Equal(t, -1, s.Linear(Position{0, 2}))

	for i := 0; i < s.TotalSteps(); i++ {
		p, ok := s.At(i)
		require.True(t, ok)
		assert.Equal(t, i, s.Linear(p))
	}
	_, ok := s.At(s.TotalSteps())
	assert.False(t, ok)
}

func TestSchemaLookup(t *testing.T) {
	s := twoSections(t)

	p, ok := s.PositionOf("b1")
	require.True(t, ok)
	assert.Equal(t, Position{Section: 1, Step: 1}, p)

	q, ok := s.Lookup("a1")
	require.True(t, ok)
	assert.Equal(t, KindFreeText, q.Kind)

	assert.False(t, s.Has("missing"))
	assert.Equal(t, []string{"a0", "a1", "b0", "b1", "b2"}, s.Keys())
}

func TestNewSchemaRejectsInconsistentDeclarations(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
	}{
		{"no sections", nil},
		{"empty section", []Section{{ID: "a"}}},
		{"missing id", []Section{{Questions: []Question{text("k", false)}}}},
		{"duplicate section", []Section{
			{ID: "a", Questions: []Question{text("k1", false)}},
			{ID: "a", Questions: []Question{text("k2", false)}},
		}},
		{"duplicate key", []Section{
			{ID: "a", Questions: []Question{text("k", false)}},
			{ID: "b", Questions: []Question{text("k", false)}},
		}},
		{"empty key", []Section{{ID: "a", Questions: []Question{text("", false)}}}},
		{"choice without options", []Section{{ID: "a", Questions: []Question{choice("k")}}}},
		{"repeated option", []Section{{ID: "a", Questions: []Question{choice("k", "x", "x")}}}},
		{"cap above pool", []Section{{ID: "a", Questions: []Question{multi("k", 3, "x", "y")}}}},
		{"zero cap", []Section{{ID: "a", Questions: []Question{multi("k", 0, "x", "y")}}}},
		{"unknown kind", []Section{{ID: "a", Questions: []Question{{Key: "k", Kind: Kind(9)}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.sections...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchema))
		})
	}
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() { MustSchema() })
}

func TestSchemaCopiesDeclarations(t *testing.T) {
	opts := []Option{{Value: "x"}, {Value: "y"}}
	s, err := NewSchema(Section{ID: "a", Questions: []Question{{Key: "k", Kind: KindSingleChoice, Options: opts}}})
	require.NoError(t, err)

	opts[0].Value = "mutated"
	q, _ := s.Lookup("k")
	assert.True(t, q.HasOption("x"))
}

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{KindSingleChoice, KindMultiChoice, KindFreeText} {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "unknown", Kind(42).String())
	_, ok := ParseKind("slider")
	assert.False(t, ok)
}
