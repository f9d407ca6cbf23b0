// Package store persists the interview profile between sessions.
//
// Every backend holds a single Record: the latest answers, whether the
// interview was completed, and a revision id minted on each save. Backends
// are plain get/set of JSON; none of them knows what the answers mean.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rumo/internal/interview"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("store: no saved profile")

// ErrMalformed wraps decode failures of persisted data.
var ErrMalformed = errors.New("store: malformed profile record")

// Record is the persisted unit.
type Record struct {
	Revision  string            `json:"revision"`
	Completed bool              `json:"completed"`
	UpdatedAt time.Time         `json:"updated_at"`
	Profile   interview.Profile `json:"profile"`
}

// Store is implemented by every backend.
type Store interface {
	// Load returns the saved record, ErrNotFound, or an error wrapping
	// ErrMalformed when the stored bytes cannot be decoded.
	Load(ctx context.Context) (*Record, error)
	// Save replaces the record and returns it with a fresh revision.
	Save(ctx context.Context, p interview.Profile, completed bool) (*Record, error)
	// Clear removes the record. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	// Describe names the backend and location, for status output.
	Describe() string
	Close() error
}

func newRecord(p interview.Profile, completed bool) *Record {
	if p == nil {
		p = interview.Profile{}
	}
	return &Record{
		Revision:  uuid.NewString(),
		Completed: completed,
		UpdatedAt: time.Now().UTC(),
		Profile:   p.Clone(),
	}
}

func encodeRecord(r *Record) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.Profile == nil {
		r.Profile = interview.Profile{}
	}
	return &r, nil
}
