package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/mangle/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rumo/internal/interview"
	"rumo/internal/persona"
)

func sampleBundle() Bundle {
	p := interview.Profile{
		persona.FieldStance:       interview.Text("challenger"),
		persona.FieldToneWords:    interview.Set("calm", "direct", "sharp"),
		persona.FieldRole:         interview.Text(`Head of "Ops"` + "\nand parent"),
		persona.FieldPrimaryLLM:   interview.Text("claude"),
		persona.FieldCurrentAIUse: interview.Text(""),
	}
	return Bundle{
		Profile:   p,
		Document:  persona.Render(p),
		Completed: true,
		Revision:  "rev-1",
		UpdatedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Schema:    persona.Schema(),
	}
}

func TestLookup(t *testing.T) {
	for name, want := range map[string]string{
		"md": "md", "Markdown": "md", "json": "json", "YML": "yaml",
		"toml": "toml", " mangle ": "mangle", "mg": "mangle",
	} {
		e, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, e.Name(), name)
	}

	_, err := Lookup("docx")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Contains(t, err.Error(), "json, mangle, md")
}

func TestFormatsSorted(t *testing.T) {
	assert.Equal(t, []string{"json", "mangle", "md", "toml", "yaml"}, Formats())
}

func TestMarkdownNeedsDocument(t *testing.T) {
	_, err := Render("md", Bundle{Profile: interview.Profile{}})
	assert.Error(t, err)

	b := sampleBundle()
	out, err := Render("md", b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# Personal Chief of Staff"))
	assert.True(t, strings.HasSuffix(string(out), "\n"))
}

func TestJSONExport(t *testing.T) {
	out, err := Render("json", sampleBundle())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "rev-1", got["revision"])
	assert.Equal(t, "2025-03-01T09:30:00Z", got["updated_at"])

	profile := got["profile"].(map[string]any)
	assert.Equal(t, []any{"calm", "direct", "sharp"}, profile[persona.FieldToneWords])
	assert.Equal(t, "challenger", profile[persona.FieldStance])
}

func TestYAMLExportRoundTrips(t *testing.T) {
	b := sampleBundle()
	out, err := Render("yaml", b)
	require.NoError(t, err)

	var got record
	require.NoError(t, yaml.Unmarshal(out, &got))
	assert.Equal(t, "completed", got.Status)
	if diff := cmp.Diff(b.Profile, got.Profile); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLExport(t *testing.T) {
	b := sampleBundle()
	b.Completed = false
	out, err := Render("toml", b)
	require.NoError(t, err)

	var got struct {
		Status  string         `toml:"status"`
		Profile map[string]any `toml:"profile"`
	}
	_, err = toml.Decode(string(out), &got)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", got.Status)
	assert.Equal(t, "challenger", got.Profile[persona.FieldStance])
	assert.Equal(t, []any{"calm", "direct", "sharp"}, got.Profile[persona.FieldToneWords])
}

func TestMangleFactsParse(t *testing.T) {
	b := sampleBundle()
	src := Facts(b)

	unit, err := parse.Unit(strings.NewReader(src))
	require.NoError(t, err, src)

	counts := map[string]int{}
	for _, c := range unit.Clauses {
		counts[c.Head.Predicate.Symbol]++
	}
	total := b.Schema.TotalSteps()
	assert.Equal(t, 1, counts["profile_status"])
	assert.Equal(t, 1, counts["profile_revision"])
	assert.Equal(t, total, counts["question_kind"])
	assert.Equal(t, total, counts["question_section"])
	assert.Equal(t, 3, counts["profile_item"])
	assert.Equal(t, 4, counts["profile_field"])

	assert.Contains(t, src, `profile_status(/completed).`)
	assert.Contains(t, src, `question_kind("toneWords", /multi_choice).`)
	assert.Contains(t, src, `profile_item("toneWords", "direct").`)
	assert.Contains(t, src, `profile_field("role", "Head of \"Ops\"\nand parent").`)
}

func TestMangleFactsWithoutSchema(t *testing.T) {
	src := Facts(Bundle{Profile: interview.Profile{
		"b": interview.Text("2"),
		"a": interview.Text("1\x00\x07"),
	}})
	_, err := parse.Unit(strings.NewReader(src))
	require.NoError(t, err, src)

	assert.Contains(t, src, "profile_status(/in_progress).")
	assert.NotContains(t, src, "question_kind")
	assert.Less(t, strings.Index(src, `"a"`), strings.Index(src, `"b"`))
	assert.Contains(t, src, `profile_field("a", "1").`)
}

func TestRenderMangleChecksFacts(t *testing.T) {
	b := sampleBundle()
	b.Profile[persona.FieldCurrentAIUse] = interview.Text("tabs\there, bell\x07, back\\slash, caf\u00e9 \"quoted\"")

	out, err := Render("mangle", b)
	require.NoError(t, err)
	assert.Equal(t, Facts(b), string(out))
	assert.Contains(t, string(out), `profile_field("currentAIUse", "tabs\there, bell, back\\slash, café \"quoted\"").`)

	assert.Error(t, checkFacts(`profile_field("role", .`))
}

func TestMangleFactsDeterministic(t *testing.T) {
	b := sampleBundle()
	assert.Equal(t, Facts(b), Facts(b))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", sampleBundle()))
	assert.True(t, json.Valid(buf.Bytes()))

	assert.ErrorIs(t, Write(&buf, "pdf", sampleBundle()), ErrUnknownFormat)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteFiles(context.Background(), dir, "chief-of-staff", Formats(), sampleBundle(), zap.NewNop())
	require.NoError(t, err)
	require.Len(t, paths, len(Formats()))

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
	assert.Equal(t, filepath.Join(dir, "chief-of-staff.json"), paths[0])
}

func TestWriteFilesUnknownFormatWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteFiles(context.Background(), dir, "x", []string{"md", "rtf"}, sampleBundle(), nil)
	require.ErrorIs(t, err, ErrUnknownFormat)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WriteFiles(ctx, t.TempDir(), "x", []string{"md"}, sampleBundle(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
