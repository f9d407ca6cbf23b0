package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rumo/internal/config"
	"rumo/internal/persona"
)

func TestComputeKey(t *testing.T) {
	if ComputeKey(123) != ComputeKey(123) {
		t.Error("expected same hash for same int")
	}
	if ComputeKey("test", 80, true) != ComputeKey("test", 80, true) {
		t.Error("expected same hash for same mixed inputs")
	}
	if ComputeKey("ab", "c") == ComputeKey("a", "bc") {
		t.Error("string boundaries must be part of the key")
	}
	if ComputeKey("doc", 80) == ComputeKey("doc", 60) {
		t.Error("width must be part of the key")
	}
}

func TestRenderCacheGetOrCompute(t *testing.T) {
	rc := NewRenderCache(4)
	calls := 0
	compute := func() (string, error) { calls++; return "out", nil }

	for i := 0; i < 3; i++ {
		got, err := rc.GetOrCompute(1, compute)
		require.NoError(t, err)
		assert.Equal(t, "out", got)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, rc.Hits())

	_, err := rc.GetOrCompute(2, func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	_, ok := rc.Get(2)
	assert.False(t, ok, "errors are not cached")
}

func TestRenderCacheBounded(t *testing.T) {
	rc := NewRenderCache(2)
	rc.Set(1, "a")
	rc.Set(2, "b")
	rc.Set(2, "b2")
	assert.Equal(t, 2, rc.Len(), "overwriting does not evict")

	rc.Set(3, "c")
	assert.Equal(t, 1, rc.Len())
	got, ok := rc.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "c", got)
}

func TestDocumentRenderer(t *testing.T) {
	r := NewDocumentRenderer(config.UIConfig{GlamourStyle: "notty", WordWrap: 80})
	doc := persona.Render(nil)

	out, err := r.Render(doc, 0)
	require.NoError(t, err)
	assert.Contains(t, out, "Personal Chief of Staff")
	assert.Contains(t, out, persona.NotSpecified)
	assert.True(t, strings.HasSuffix(out, "\n"))

	again, err := r.Render(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Equal(t, 1, r.cache.Hits())
}

func TestDocumentRendererWrap(t *testing.T) {
	r := NewDocumentRenderer(config.UIConfig{})
	assert.Equal(t, "auto", r.style)
	assert.Equal(t, 80, r.wrapFor(0))
	assert.Equal(t, 56, r.wrapFor(60))
	assert.Equal(t, 80, r.wrapFor(200))
	assert.Equal(t, 20, r.wrapFor(10))
}
