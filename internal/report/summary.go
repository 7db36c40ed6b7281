package report

import (
	"time"

	"github.com/nao1215/salesqueen/internal/layout"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/progress"
)

// DefaultTitle is the heading of a report without a lead.
const DefaultTitle = "SalesQueen Project"

// StageStatus is one row of the progress section.
type StageStatus struct {
	Stage model.Stage      `json:"stage"`
	State model.StageState `json:"state"`
}

// BlockSummary describes one design block by its readable content.
type BlockSummary struct {
	Type     string `json:"type"`
	Headline string `json:"headline,omitempty"`
	Styled   bool   `json:"styled,omitempty"`
}

// Summary is the reportable view of a project and its estimate.
type Summary struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`

	Percentage int           `json:"percentage"`
	Stages     []StageStatus `json:"stages"`

	// SiteType and Features are catalog labels, empty in the page strategy
	// when nothing was selected.
	SiteType string           `json:"siteType,omitempty"`
	Features []string         `json:"features,omitempty"`
	Timeline model.Timeline   `json:"timeline,omitempty"`
	Budget   int64            `json:"budget,omitempty"`
	Pages    *model.PageQuote `json:"pages,omitempty"`

	Breakdown pricing.Breakdown `json:"breakdown"`

	Lead   *model.Lead    `json:"lead,omitempty"`
	Blocks []BlockSummary `json:"blocks,omitempty"`
}

// NewSummary builds a Summary of doc priced as b.
// Labels are looked up in catalog; unknown ids are shown as they are.
func NewSummary(doc model.Project, b pricing.Breakdown, catalog pricing.Catalog, now time.Time) *Summary {
	s := &Summary{
		Title:       DefaultTitle,
		GeneratedAt: now,
		Percentage:  progress.Percentage(doc.Progress),
		Breakdown:   b,
	}

	for _, stage := range model.Stages() {
		state, ok := doc.Progress[stage]
		if !ok {
			state = model.StateIncomplete
		}
		s.Stages = append(s.Stages, StageStatus{Stage: stage, State: state})
	}

	if sel := doc.Estimate; sel != nil {
		if item, ok := catalog.Type(sel.Type); ok {
			s.SiteType = item.Label
		} else {
			s.SiteType = sel.Type
		}
		for _, id := range sel.Features {
			if item, ok := catalog.Feature(id); ok {
				s.Features = append(s.Features, item.Label)
			} else {
				s.Features = append(s.Features, id)
			}
		}
		s.Timeline = sel.Timeline
		s.Budget = sel.Budget
	}

	if doc.Quote != nil {
		q := *doc.Quote
		s.Pages = &q
	}

	if doc.Lead != nil && !doc.Lead.IsZero() {
		l := *doc.Lead
		s.Lead = &l
		if l.BusinessName != "" {
			s.Title = "SalesQueen Proposal for " + l.BusinessName
		}
	}

	for _, blk := range doc.Blocks() {
		bs := BlockSummary{Type: blk.Type, Styled: blk.Style != ""}
		if info, err := layout.Inspect(blk.HTML); err == nil {
			bs.Headline = info.Headline
		}
		s.Blocks = append(s.Blocks, bs)
	}

	return s
}

// chartLabel is the short label of a breakdown line in charts.
func chartLabel(kind pricing.ItemKind) string {
	switch kind {
	case pricing.ItemBase:
		return "Base"
	case pricing.ItemFeatures:
		return "Features"
	case pricing.ItemPages:
		return "Pages"
	case pricing.ItemEcommerce:
		return "E-commerce"
	case pricing.ItemSEO:
		return "SEO"
	case pricing.ItemTimeline:
		return "Timeline"
	case pricing.ItemTax:
		return "GST"
	default:
		return string(kind)
	}
}

// formatItem renders an item amount with a sign when it is a delta.
func formatItem(c pricing.Currency, it pricing.LineItem) string {
	if it.Signed {
		return c.FormatSigned(it.Amount)
	}
	return c.Format(it.Amount)
}
