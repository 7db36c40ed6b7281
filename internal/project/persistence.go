package project

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/store"
)

// Persistence adapts a store backend to the save/load contract of a session:
// Save reports success as a bool, Load treats missing and corrupt data alike
// as "no data", and Clear never fails. Errors are logged, not returned.
type Persistence struct {
	backend store.Backend
	logger  *slog.Logger
}

// NewPersistence wraps backend. A nil logger discards log output.
func NewPersistence(backend store.Backend, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Persistence{backend: backend, logger: logger}
}

// Backend returns the wrapped backend.
func (p *Persistence) Backend() store.Backend {
	return p.backend
}

// Save writes doc and reports whether the write succeeded.
func (p *Persistence) Save(ctx context.Context, doc model.Project) bool {
	if err := p.backend.Save(ctx, &doc); err != nil {
		p.logger.Error("save failed", "error", err)
		return false
	}
	p.logger.Debug("project saved", "key", model.ProjectKey)
	return true
}

// Load returns the saved document, or false when there is none or it cannot
// be read.
func (p *Persistence) Load(ctx context.Context) (model.Project, bool) {
	doc, err := p.backend.Load(ctx)
	switch {
	case err == nil:
		return *doc, true
	case errors.Is(err, store.ErrNoData):
		p.logger.Debug("no saved project")
	default:
		p.logger.Error("load failed", "error", err)
	}
	return model.Project{}, false
}

// Clear removes the saved document.
func (p *Persistence) Clear(ctx context.Context) {
	if err := p.backend.Clear(ctx); err != nil {
		p.logger.Error("clear failed", "error", err)
	}
}
