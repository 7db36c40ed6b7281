package project

import (
	"github.com/nao1215/salesqueen/internal/layout"
	"github.com/nao1215/salesqueen/internal/lead"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/progress"
)

// Aggregator owns the live state of every session component.
type Aggregator struct {
	catalog pricing.Catalog

	progress  *progress.Tracker
	selection model.Selection
	quote     *model.PageQuote
	layout    *layout.Builder
	lead      *lead.Capture
	query     string
}

// NewAggregator returns an Aggregator in its initial state.
// capture holds the lead; catalog decides which feature ids are kept on restore.
func NewAggregator(capture *lead.Capture, catalog pricing.Catalog) *Aggregator {
	return &Aggregator{
		catalog:   catalog,
		progress:  progress.New(),
		selection: model.NewSelection(),
		layout:    &layout.Builder{},
		lead:      capture,
	}
}

// Progress returns the progress tracker.
func (a *Aggregator) Progress() *progress.Tracker { return a.progress }

// Layout returns the block builder.
func (a *Aggregator) Layout() *layout.Builder { return a.layout }

// Lead returns the lead capture.
func (a *Aggregator) Lead() *lead.Capture { return a.lead }

// Selection returns a copy of the catalog selection.
func (a *Aggregator) Selection() model.Selection { return a.selection.Clone() }

// Quote returns the page quote form, or false when none was submitted.
func (a *Aggregator) Quote() (model.PageQuote, bool) {
	if a.quote == nil {
		return model.PageQuote{}, false
	}
	return *a.quote, true
}

// Query returns the last search text.
func (a *Aggregator) Query() string { return a.query }

// Collect assembles the project document from the current state.
// It has no side effects.
func (a *Aggregator) Collect() model.Project {
	sel := a.selection.Clone()
	l := a.lead.Get()
	doc := model.Project{
		Progress: a.progress.State(),
		Estimate: &sel,
		Design:   &model.Design{Blocks: a.layout.Blocks()},
		Lead:     &l,
		Find:     &model.Find{Query: a.query},
	}
	if a.quote != nil {
		q := *a.quote
		doc.Quote = &q
	}
	return doc
}

// Restore pushes every present section of doc into the components.
// Missing sections keep their current state; a nil doc changes nothing.
func (a *Aggregator) Restore(doc *model.Project) {
	if doc == nil {
		return
	}
	if doc.Progress != nil {
		a.progress.SetState(doc.Progress)
	}
	if doc.Estimate != nil {
		a.selection = a.normalizeSelection(*doc.Estimate)
	}
	if doc.Quote != nil {
		q := *doc.Quote
		a.quote = &q
	}
	if doc.Design != nil {
		a.layout.Replace(doc.Design.Blocks)
	}
	if doc.Lead != nil {
		a.lead.Replace(*doc.Lead)
	}
	if doc.Find != nil {
		a.query = doc.Find.Query
	}
}

// Reset returns every component to its initial state.
func (a *Aggregator) Reset() {
	a.progress = progress.New()
	a.selection = model.NewSelection()
	a.quote = nil
	a.layout = &layout.Builder{}
	a.lead.Replace(model.Lead{})
	a.query = ""
}

// normalizeSelection keeps only unique catalog feature ids and known timelines.
func (a *Aggregator) normalizeSelection(sel model.Selection) model.Selection {
	out := model.Selection{
		Type:     sel.Type,
		Features: make([]string, 0, len(sel.Features)),
		Timeline: sel.Timeline.Normalize(),
		Budget:   sel.Budget,
	}
	if _, ok := a.catalog.Type(sel.Type); !ok {
		out.Type = ""
	}
	seen := make(map[string]bool, len(sel.Features))
	for _, id := range sel.Features {
		if _, ok := a.catalog.Feature(id); ok && !seen[id] {
			seen[id] = true
			out.Features = append(out.Features, id)
		}
	}
	if out.Budget < 0 {
		out.Budget = 0
	}
	return out
}
