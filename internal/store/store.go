package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/salesqueen/internal/model"
)

var (
	// ErrNoData is returned by Load when nothing has been saved.
	ErrNoData = errors.New("no saved project")
	// ErrCorrupt is returned by Load when the stored content does not parse.
	ErrCorrupt = errors.New("saved project is corrupt")
	// ErrUnknownBackend is returned by Open for an unsupported backend kind.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrRevisionNotFound is returned when a revision id does not exist.
	ErrRevisionNotFound = errors.New("revision not found")
)

// Backend stores a single project document.
type Backend interface {
	// Save serializes p and overwrites the stored document.
	Save(ctx context.Context, p *model.Project) error
	// Load returns the stored document, ErrNoData when there is none,
	// or an error wrapping ErrCorrupt when it cannot be parsed.
	Load(ctx context.Context) (*model.Project, error)
	// Clear removes the stored document. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
	// Close releases the resources held by the backend.
	Close() error
}

// Revision describes one historical save.
type Revision struct {
	ID         string    `json:"id"`
	SavedAt    time.Time `json:"savedAt"`
	Percentage int       `json:"percentage"`
}

// Historian is implemented by backends that keep a revision history.
type Historian interface {
	// History lists the most recent revisions first. limit <= 0 means all.
	History(ctx context.Context, limit int) ([]Revision, error)
	// Revision returns the document saved by revision id.
	Revision(ctx context.Context, id string) (*model.Project, error)
}

// Kind names a backend implementation.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
	KindMemory Kind = "memory"
)

// OpenOptions selects and configures a backend.
type OpenOptions struct {
	Kind Kind
	// Dir is the directory of the SQLite database file.
	Dir string
	// RedisURL is a redis:// URL for the Redis backend.
	RedisURL string
}

// Open creates the backend described by opts.
func Open(opts OpenOptions) (Backend, error) {
	switch opts.Kind {
	case KindSQLite:
		return OpenSQLite(opts.Dir, DefaultSQLiteOptions())
	case KindRedis:
		return NewRedis(opts.RedisURL)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Kind)
	}
}

// Encode serializes p the way every backend stores it.
func Encode(p *model.Project) ([]byte, error) {
	if p == nil {
		return nil, errors.New("cannot save a nil project")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize project: %w", err)
	}
	return data, nil
}

// Decode parses stored content. Empty content and a JSON null are treated as
// no data.
func Decode(raw []byte) (*model.Project, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNoData
	}
	var p model.Project
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &p, nil
}
