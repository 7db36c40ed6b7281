package store

import (
	"context"
	"sync"

	"github.com/nao1215/salesqueen/internal/model"
)

// Memory is an in-process Backend holding the serialized document.
type Memory struct {
	mu  sync.Mutex
	raw []byte
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save implements Backend.
func (m *Memory) Save(_ context.Context, p *model.Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = data
	return nil
}

// Load implements Backend.
func (m *Memory) Load(_ context.Context) (*model.Project, error) {
	m.mu.Lock()
	raw := append([]byte(nil), m.raw...)
	m.mu.Unlock()
	return Decode(raw)
}

// Clear implements Backend.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = nil
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error {
	return nil
}

// Raw returns a copy of the stored bytes.
func (m *Memory) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.raw...)
}

// PutRaw replaces the stored bytes without validation.
func (m *Memory) PutRaw(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = append([]byte(nil), raw...)
}
