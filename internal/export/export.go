// Package export turns a completed (or partial) profile into files and
// clipboard text: the rendered markdown document plus structured
// renditions of the raw answers.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"rumo/internal/interview"
)

// ErrUnknownFormat is returned for a format name no exporter handles.
var ErrUnknownFormat = errors.New("unknown export format")

// Bundle is everything an exporter may draw on.
type Bundle struct {
	Profile   interview.Profile
	Document  string
	Completed bool
	Revision  string
	UpdatedAt time.Time

	// Schema is optional. When set, field order and question kinds follow it.
	Schema *interview.Schema
}

// Exporter encodes a Bundle in one format.
type Exporter interface {
	Name() string
	Extension() string
	Export(b Bundle) ([]byte, error)
}

// =============================================================================
// REGISTRY
// =============================================================================

var exporters = map[string]Exporter{
	"md":     markdownExporter{},
	"json":   jsonExporter{},
	"yaml":   yamlExporter{},
	"toml":   tomlExporter{},
	"mangle": mangleExporter{},
}

var aliases = map[string]string{
	"markdown": "md",
	"yml":      "yaml",
	"mg":       "mangle",
}

// Lookup returns the exporter for name (case-insensitive, common aliases
// accepted).
func Lookup(name string) (Exporter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	e, ok := exporters[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return e, nil
}

// Formats lists the canonical format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(exporters))
	for name := range exporters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Render encodes b in the named format.
func Render(format string, b Bundle) ([]byte, error) {
	e, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	return e.Export(b)
}

// =============================================================================
// FORMATS
// =============================================================================

type markdownExporter struct{}

func (markdownExporter) Name() string      { return "md" }
func (markdownExporter) Extension() string { return ".md" }

func (markdownExporter) Export(b Bundle) ([]byte, error) {
	if strings.TrimSpace(b.Document) == "" {
		return nil, errors.New("no document to export: the interview is not complete")
	}
	doc := b.Document
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	return []byte(doc), nil
}

// record is the structured shape shared by the json and yaml exporters.
type record struct {
	Revision  string            `json:"revision,omitempty" yaml:"revision,omitempty"`
	Status    string            `json:"status" yaml:"status"`
	UpdatedAt string            `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Profile   interview.Profile `json:"profile" yaml:"profile"`
	Document  string            `json:"document,omitempty" yaml:"document,omitempty"`
}

func newRecord(b Bundle) record {
	p := b.Profile
	if p == nil {
		p = interview.Profile{}
	}
	return record{
		Revision:  b.Revision,
		Status:    status(b.Completed),
		UpdatedAt: stamp(b.UpdatedAt),
		Profile:   p,
		Document:  b.Document,
	}
}

type jsonExporter struct{}

func (jsonExporter) Name() string      { return "json" }
func (jsonExporter) Extension() string { return ".json" }

func (jsonExporter) Export(b Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(newRecord(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return append(data, '\n'), nil
}

type yamlExporter struct{}

func (yamlExporter) Name() string      { return "yaml" }
func (yamlExporter) Extension() string { return ".yaml" }

func (yamlExporter) Export(b Bundle) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newRecord(b)); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tomlRecord mirrors record with the profile flattened to plain values,
// since Value has no TOML marshaler.
type tomlRecord struct {
	Revision  string         `toml:"revision,omitempty"`
	Status    string         `toml:"status"`
	UpdatedAt string         `toml:"updated_at,omitempty"`
	Document  string         `toml:"document,omitempty"`
	Profile   map[string]any `toml:"profile"`
}

type tomlExporter struct{}

func (tomlExporter) Name() string      { return "toml" }
func (tomlExporter) Extension() string { return ".toml" }

func (tomlExporter) Export(b Bundle) ([]byte, error) {
	rec := tomlRecord{
		Revision:  b.Revision,
		Status:    status(b.Completed),
		UpdatedAt: stamp(b.UpdatedAt),
		Document:  b.Document,
		Profile:   make(map[string]any, len(b.Profile)),
	}
	for k, v := range b.Profile {
		if v.IsSet() {
			rec.Profile[k] = append([]string{}, v.Items...)
		} else {
			rec.Profile[k] = v.Text
		}
	}
	data, err := toml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return data, nil
}

func status(completed bool) string {
	if completed {
		return "completed"
	}
	return "in_progress"
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// orderedKeys returns the profile keys in schema order when a schema is
// known, then any remaining keys sorted.
func orderedKeys(b Bundle) []string {
	seen := make(map[string]bool, len(b.Profile))
	var out []string
	if b.Schema != nil {
		for _, k := range b.Schema.Keys() {
			if _, ok := b.Profile[k]; ok {
				out = append(out, k)
				seen[k] = true
			}
		}
	}
	var rest []string
	for k := range b.Profile {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
