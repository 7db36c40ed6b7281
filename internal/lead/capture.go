package lead

import (
	"context"

	"github.com/nao1215/salesqueen/internal/model"
)

// Persister writes the current lead into durable storage.
// It reports whether the write succeeded.
type Persister interface {
	PersistLead(ctx context.Context, l model.Lead) bool
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, l model.Lead) bool

// PersistLead implements Persister.
func (f PersisterFunc) PersistLead(ctx context.Context, l model.Lead) bool {
	return f(ctx, l)
}

// Capture holds the lead of the current session.
type Capture struct {
	lead      model.Lead
	persister Persister
}

// NewCapture returns an empty Capture that writes through p.
// A nil p disables write-through.
func NewCapture(p Persister) *Capture {
	return &Capture{persister: p}
}

// Get returns a copy of the current lead.
func (c *Capture) Get() model.Lead {
	return c.lead
}

// Set sanitizes and merges p into the lead, then persists the result.
// The returned bool is the outcome of the write.
func (c *Capture) Set(ctx context.Context, p Patch) bool {
	c.lead = Merge(c.lead, p)
	if c.persister == nil {
		return true
	}
	return c.persister.PersistLead(ctx, c.lead)
}

// CaptureFromPlace sets the business name and address from a lookup result.
func (c *Capture) CaptureFromPlace(ctx context.Context, place model.Place) bool {
	return c.Set(ctx, FromPlace(place))
}

// Replace overwrites the lead without persisting. It is used when restoring
// a saved project.
func (c *Capture) Replace(l model.Lead) {
	c.lead = SanitizeLead(l)
}

// FromPlace returns the patch captured for place.
// The address prefers the vicinity over the formatted address.
func FromPlace(place model.Place) Patch {
	return Patch{
		FieldBusinessName: place.Name,
		FieldAddress:      place.Address(),
	}
}
