package interview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is one committed answer. Single-choice and free-text answers hold
// Text; multi-choice answers hold a duplicate-free Items set.
type Value struct {
	Text  string
	Items []string
	multi bool
}

// Text builds a single-string value.
func Text(s string) Value {
	return Value{Text: s}
}

// Set builds a multi-choice value. Duplicates are dropped, first occurrence wins.
func Set(items ...string) Value {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return Value{Items: out, multi: true}
}

// IsSet reports whether the value is a multi-choice set.
func (v Value) IsSet() bool { return v.multi }

// Empty reports whether the value carries nothing worth rendering.
func (v Value) Empty() bool {
	if v.multi {
		return len(v.Items) == 0
	}
	return strings.TrimSpace(v.Text) == ""
}

// Contains reports whether a set value holds item.
func (v Value) Contains(item string) bool {
	for _, it := range v.Items {
		if it == item {
			return true
		}
	}
	return false
}

// Join renders the value as a single string; sets are joined by sep.
func (v Value) Join(sep string) string {
	if v.multi {
		return strings.Join(v.Items, sep)
	}
	return v.Text
}

func (v Value) String() string { return v.Join(", ") }

// Equal compares kind, text and set members in order.
func (v Value) Equal(o Value) bool {
	if v.multi != o.multi {
		return false
	}
	if !v.multi {
		return v.Text == o.Text
	}
	if len(v.Items) != len(o.Items) {
		return false
	}
	for i := range v.Items {
		if v.Items[i] != o.Items[i] {
			return false
		}
	}
	return true
}

func (v Value) clone() Value {
	if v.multi {
		v.Items = append([]string(nil), v.Items...)
	}
	return v
}

// MarshalJSON encodes text values as JSON strings and sets as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts a string or an array of strings; anything else is malformed.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty answer value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("answer set must hold strings: %w", err)
		}
		*v = Set(items...)
		return nil
	}
	return fmt.Errorf("answer must be a string or a list of strings, got %s", string(data))
}

// MarshalYAML mirrors the JSON shape.
func (v Value) MarshalYAML() (interface{}, error) {
	if v.multi {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return items, nil
	}
	return v.Text, nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var items []string
	if err := unmarshal(&items); err == nil {
		*v = Set(items...)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings: %w", err)
	}
	*v = Text(s)
	return nil
}

// Profile maps field keys to committed answers. It is the FieldMap handed
// to the renderer and to persistence.
type Profile map[string]Value

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v.clone()
	}
	return out
}

// Text returns the trimmed text of key, or "" when absent or a set.
func (p Profile) Text(key string) string {
	v, ok := p[key]
	if !ok || v.multi {
		return ""
	}
	return strings.TrimSpace(v.Text)
}

// Items returns the set stored under key, or nil.
func (p Profile) Items(key string) []string {
	v, ok := p[key]
	if !ok || !v.multi {
		return nil
	}
	return append([]string(nil), v.Items...)
}

// Sanitize returns a copy holding only keys declared in schema whose value
// shape matches the question kind, and the keys that were dropped.
func (p Profile) Sanitize(schema *Schema) (Profile, []string) {
	out := make(Profile, len(p))
	var dropped []string
	for k, v := range p {
		q, ok := schema.Lookup(k)
		if !ok || v.multi != (q.Kind == KindMultiChoice) {
			dropped = append(dropped, k)
			continue
		}
		if v.multi && len(v.Items) > q.MaxSelect {
			dropped = append(dropped, k)
			continue
		}
		out[k] = v.clone()
	}
	return out, dropped
}

// AnswerStore accumulates committed answers for the lifetime of a wizard.
// Only the Navigation Controller commits; everyone else reads snapshots.
type AnswerStore struct {
	fields Profile
}

func newAnswerStore(seed Profile) *AnswerStore {
	if seed == nil {
		return &AnswerStore{fields: Profile{}}
	}
	return &AnswerStore{fields: seed.Clone()}
}

// Get returns the committed answer for key.
func (s *AnswerStore) Get(key string) (Value, bool) {
	v, ok := s.fields[key]
	if !ok {
		return Value{}, false
	}
	return v.clone(), true
}

// Len returns how many fields have been committed.
func (s *AnswerStore) Len() int { return len(s.fields) }

// Snapshot returns a copy safe to hand out.
func (s *AnswerStore) Snapshot() Profile { return s.fields.Clone() }

// commit replaces the whole field.
func (s *AnswerStore) commit(key string, v Value) {
	s.fields[key] = v.clone()
}
