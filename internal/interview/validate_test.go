package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidChoice(t *testing.T) {
	q := choice("k", "a", "b")
	assert.False(t, Valid(q, Draft{}))
	assert.False(t, Valid(q, Draft{Choice: "c"}))
	assert.True(t, Valid(q, Draft{Choice: "a"}))
}

func TestValidSelectionRequiresExactCap(t *testing.T) {
	q := multi("k", 3, "a", "b", "c", "d")

	assert.False(t, Valid(q, Draft{}))
	assert.False(t, Valid(q, Draft{Selection: []string{"a", "b"}}))
	assert.True(t, Valid(q, Draft{Selection: []string{"a", "b", "c"}}))
	assert.False(t, Valid(q, Draft{Selection: []string{"a", "b", "c", "d"}}))
	assert.False(t, Valid(q, Draft{Selection: []string{"a", "a", "b"}}))
	assert.False(t, Valid(q, Draft{Selection: []string{"a", "b", "z"}}))
}

func TestValidText(t *testing.T) {
	required := text("k", false)
	assert.False(t, Valid(required, Draft{}))
	assert.False(t, Valid(required, Draft{Text: "  \t\n "}))
	assert.True(t, Valid(required, Draft{Text: " x "}))

	optional := text("k", true)
	assert.True(t, Valid(optional, Draft{}))
	assert.True(t, Valid(optional, Draft{Text: "   "}))
}

func TestValidUnknownKind(t *testing.T) {
	assert.False(t, Valid(Question{Kind: Kind(7)}, Draft{Text: "x"}))
}

func TestToggle(t *testing.T) {
	q := multi("k", 2, "a", "b", "c")

	sel, changed := Toggle(q, nil, "a")
	assert.True(t, changed)
	assert.Equal(t, []string{"a"}, sel)

	sel, changed = Toggle(q, sel, "b")
	assert.True(t, changed)
	assert.Equal(t, []string{"a", "b"}, sel)

	// At the cap, additions are ignored.
	sel, changed = Toggle(q, sel, "c")
	assert.False(t, changed)
	assert.Equal(t, []string{"a", "b"}, sel)

	// Removal always works.
	sel, changed = Toggle(q, sel, "a")
	assert.True(t, changed)
	assert.Equal(t, []string{"b"}, sel)

	// Undeclared values are ignored.
	sel, changed = Toggle(q, sel, "zzz")
	assert.False(t, changed)
	assert.Equal(t, []string{"b"}, sel)
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	q := multi("k", 3, "a", "b", "c", "d")
	start := []string{"a", "c"}
	for _, v := range []string{"a", "b", "c", "d"} {
		once, _ := Toggle(q, start, v)
		twice, _ := Toggle(q, once, v)
		assert.ElementsMatch(t, start, twice, "toggle %q twice", v)
	}
}

func TestToggleDoesNotAliasInput(t *testing.T) {
	q := multi("k", 3, "a", "b", "c")
	in := make([]string, 1, 4)
	in[0] = "a"
	out, _ := Toggle(q, in, "b")
	out[0] = "changed"
	assert.Equal(t, "a", in[0])
}
