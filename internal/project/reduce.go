package project

import (
	"github.com/nao1215/salesqueen/internal/layout"
	"github.com/nao1215/salesqueen/internal/lead"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/progress"
)

// Action is one user intent. Actions are applied with Reduce.
type Action interface {
	// Name identifies the action in logs.
	Name() string
	apply(r *Reducer, doc *model.Project) error
}

// Reducer computes the next document for an action using fixed price tables.
type Reducer struct {
	catalog pricing.Catalog
	pages   *pricing.PageEstimator
}

// NewReducer returns a Reducer over catalog and rates.
func NewReducer(catalog pricing.Catalog, rates pricing.PageRates) *Reducer {
	return &Reducer{catalog: catalog, pages: pricing.NewPageEstimator(rates)}
}

var defaultReducer = NewReducer(pricing.DefaultCatalog(), pricing.DefaultPageRates())

// Reduce applies a to doc with the default price tables.
func Reduce(doc model.Project, a Action) (model.Project, error) {
	return defaultReducer.Reduce(doc, a)
}

// Reduce returns the document that results from applying a to doc.
// doc is never modified. On error the returned document is doc unchanged.
func (r *Reducer) Reduce(doc model.Project, a Action) (model.Project, error) {
	next := doc.Clone()
	if err := a.apply(r, &next); err != nil {
		return doc, err
	}
	return next, nil
}

func setStage(doc *model.Project, stage model.Stage, state model.StageState) {
	t := progress.FromProgress(doc.Progress)
	t.SetStage(stage, state)
	doc.Progress = t.State()
}

func selection(doc *model.Project) *model.Selection {
	if doc.Estimate == nil {
		s := model.NewSelection()
		doc.Estimate = &s
	}
	return doc.Estimate
}

func builder(doc *model.Project) *layout.Builder {
	return layout.NewBuilder(doc.Blocks())
}

func setBlocks(doc *model.Project, b *layout.Builder) {
	doc.Design = &model.Design{Blocks: b.Blocks()}
}

func currentLead(doc *model.Project) model.Lead {
	if doc.Lead == nil {
		return model.Lead{}
	}
	return *doc.Lead
}

// SelectType chooses the site type of the catalog estimate.
// An empty TypeID clears the choice.
type SelectType struct {
	TypeID string
}

func (SelectType) Name() string { return "select-type" }

func (a SelectType) apply(r *Reducer, doc *model.Project) error {
	if a.TypeID != "" {
		if _, ok := r.catalog.Type(a.TypeID); !ok {
			return invalid(ErrUnknownType)
		}
	}
	selection(doc).Type = a.TypeID
	setStage(doc, model.StageQuote, model.StateComplete)
	return nil
}

// ToggleFeature adds or removes a catalog feature.
// Ids that are not in the catalog are ignored.
type ToggleFeature struct {
	ID       string
	Selected bool
}

func (ToggleFeature) Name() string { return "toggle-feature" }

func (a ToggleFeature) apply(r *Reducer, doc *model.Project) error {
	sel := selection(doc)
	if _, ok := r.catalog.Feature(a.ID); ok {
		features := make([]string, 0, len(sel.Features)+1)
		for _, f := range sel.Features {
			if f != a.ID {
				features = append(features, f)
			}
		}
		if a.Selected {
			features = append(features, a.ID)
		}
		sel.Features = features
	}
	setStage(doc, model.StageQuote, model.StateComplete)
	return nil
}

// SetTimeline sets the delivery timeline. Unknown values become standard.
type SetTimeline struct {
	Timeline model.Timeline
}

func (SetTimeline) Name() string { return "set-timeline" }

func (a SetTimeline) apply(_ *Reducer, doc *model.Project) error {
	selection(doc).Timeline = a.Timeline.Normalize()
	setStage(doc, model.StageQuote, model.StateComplete)
	return nil
}

// SetBudget sets the budget. Zero means no budget.
type SetBudget struct {
	Budget int64
}

func (SetBudget) Name() string { return "set-budget" }

func (a SetBudget) apply(_ *Reducer, doc *model.Project) error {
	if a.Budget < 0 {
		return invalid(ErrNegativeBudget)
	}
	selection(doc).Budget = a.Budget
	setStage(doc, model.StageQuote, model.StateComplete)
	return nil
}

// SubmitPageQuote records a validated page-count quote form.
type SubmitPageQuote struct {
	Quote model.PageQuote
}

func (SubmitPageQuote) Name() string { return "submit-page-quote" }

func (a SubmitPageQuote) apply(r *Reducer, doc *model.Project) error {
	if err := r.pages.Validate(pricing.Input{Pages: a.Quote}); err != nil {
		return invalid(err)
	}
	q := a.Quote
	doc.Quote = &q
	setStage(doc, model.StageQuote, model.StateComplete)
	return nil
}

// AddBlock adds a default block of Type. The block is appended unless
// AtIndex is set, in which case it is inserted before Index.
type AddBlock struct {
	Type    string
	Index   int
	AtIndex bool
}

func (AddBlock) Name() string { return "add-block" }

func (a AddBlock) apply(_ *Reducer, doc *model.Project) error {
	if a.Type == "" {
		return invalid(ErrEmptyBlockType)
	}
	b := builder(doc)
	if a.AtIndex {
		if err := b.InsertAt(a.Index, layout.NewBlock(a.Type)); err != nil {
			return invalid(err)
		}
	} else {
		b.Append(a.Type)
	}
	setBlocks(doc, b)
	setStage(doc, model.StageDesign, model.StateInProgress)
	return nil
}

// MoveBlock moves the block at From to position To.
type MoveBlock struct {
	From int
	To   int
}

func (MoveBlock) Name() string { return "move-block" }

func (a MoveBlock) apply(_ *Reducer, doc *model.Project) error {
	b := builder(doc)
	if err := b.MoveBlock(a.From, a.To); err != nil {
		return invalid(err)
	}
	setBlocks(doc, b)
	return nil
}

// RemoveBlock deletes the block at Index.
type RemoveBlock struct {
	Index int
}

func (RemoveBlock) Name() string { return "remove-block" }

func (a RemoveBlock) apply(_ *Reducer, doc *model.Project) error {
	b := builder(doc)
	if _, err := b.Remove(a.Index); err != nil {
		return invalid(err)
	}
	setBlocks(doc, b)
	return nil
}

// StyleBlock replaces the inline CSS of the block at Index.
type StyleBlock struct {
	Index int
	CSS   string
}

func (StyleBlock) Name() string { return "style-block" }

func (a StyleBlock) apply(_ *Reducer, doc *model.Project) error {
	b := builder(doc)
	if err := b.SetStyle(a.Index, a.CSS); err != nil {
		return invalid(err)
	}
	setBlocks(doc, b)
	return nil
}

// EditBlock replaces the markup of the block at Index.
type EditBlock struct {
	Index int
	HTML  string
}

func (EditBlock) Name() string { return "edit-block" }

func (a EditBlock) apply(_ *Reducer, doc *model.Project) error {
	b := builder(doc)
	if err := b.SetHTML(a.Index, a.HTML); err != nil {
		return invalid(err)
	}
	setBlocks(doc, b)
	return nil
}

// SubmitLead merges a manually entered lead and validates the result.
type SubmitLead struct {
	Patch lead.Patch
}

func (SubmitLead) Name() string { return "submit-lead" }

func (a SubmitLead) apply(_ *Reducer, doc *model.Project) error {
	merged := lead.Merge(currentLead(doc), a.Patch)
	if err := lead.Validate(merged); err != nil {
		return invalid(err)
	}
	doc.Lead = &merged
	setStage(doc, model.StageLead, model.StateComplete)
	return nil
}

// ClaimPlace captures a looked-up business as the lead.
type ClaimPlace struct {
	Place model.Place
}

func (ClaimPlace) Name() string { return "claim-place" }

func (a ClaimPlace) apply(_ *Reducer, doc *model.Project) error {
	merged := lead.Merge(currentLead(doc), lead.FromPlace(a.Place))
	doc.Lead = &merged
	setStage(doc, model.StageLead, model.StateComplete)
	return nil
}

// SetQuery records the place search text.
type SetQuery struct {
	Query string
}

func (SetQuery) Name() string { return "set-query" }

func (a SetQuery) apply(_ *Reducer, doc *model.Project) error {
	doc.Find = &model.Find{Query: a.Query}
	return nil
}

// FocusLocation records that a location was found for Query.
type FocusLocation struct {
	Query string
}

func (FocusLocation) Name() string { return "focus-location" }

func (a FocusLocation) apply(_ *Reducer, doc *model.Project) error {
	if a.Query != "" {
		doc.Find = &model.Find{Query: a.Query}
	}
	setStage(doc, model.StageLead, model.StateInProgress)
	return nil
}

// SetStage sets a stage directly. Unknown stages or states are ignored.
type SetStage struct {
	Stage model.Stage
	State model.StageState
}

func (SetStage) Name() string { return "set-stage" }

func (a SetStage) apply(_ *Reducer, doc *model.Project) error {
	setStage(doc, a.Stage, a.State)
	return nil
}
