package pricing

import (
	"errors"
	"fmt"
)

// PageRates holds the constants of the page-count estimator.
type PageRates struct {
	PerPage            int64
	Ecommerce          map[string]int64
	SEO                map[string]int64
	RushWeeksThreshold int
	RushMultiplier     float64
	MaintenanceMonthly int64
}

// DefaultPageRates returns the built-in page-count rates.
func DefaultPageRates() PageRates {
	return PageRates{
		PerPage: 150,
		Ecommerce: map[string]int64{
			"basic":    1200,
			"advanced": 2400,
		},
		SEO: map[string]int64{
			"standard": 500,
			"plus":     900,
			"premium":  1500,
		},
		RushWeeksThreshold: 4,
		RushMultiplier:     1.25,
		MaintenanceMonthly: 120,
	}
}

// Page quote validation errors.
var (
	// ErrInvalidPageCount is returned when fewer than one page is requested.
	ErrInvalidPageCount = errors.New("number of pages must be at least 1")
	// ErrInvalidWeeks is returned when the timeline is not a positive number of weeks.
	ErrInvalidWeeks = errors.New("timeline must be at least 1 week")
	// ErrUnknownTier is returned for an e-commerce or SEO tier outside the rate table.
	ErrUnknownTier = errors.New("unknown tier")
)

// PageEstimator prices a page-count quote.
type PageEstimator struct {
	rates PageRates
}

// NewPageEstimator returns an estimator over rates.
func NewPageEstimator(rates PageRates) *PageEstimator {
	return &PageEstimator{rates: rates}
}

// Strategy implements Estimator.
func (e *PageEstimator) Strategy() Strategy {
	return StrategyPages
}

// Estimate implements Estimator.
func (e *PageEstimator) Estimate(in Input) Breakdown {
	q := in.Pages

	pages := int64(q.NumPages) * e.rates.PerPage
	ecommerce := e.rates.Ecommerce[q.Ecommerce]
	seo := e.rates.SEO[q.SEO]
	subtotal := pages + ecommerce + seo

	multiplier := 1.0
	if q.TimelineWeeks <= e.rates.RushWeeksThreshold {
		multiplier = e.rates.RushMultiplier
	}
	total := roundHalfUp(float64(subtotal) * multiplier)

	b := Breakdown{
		Strategy: StrategyPages,
		Currency: USD,
		Items: []LineItem{
			{Kind: ItemPages, Label: "Pages", Amount: pages},
			{Kind: ItemEcommerce, Label: "E-commerce", Amount: ecommerce},
			{Kind: ItemSEO, Label: "SEO", Amount: seo},
			{Kind: ItemTimeline, Label: fmt.Sprintf("Timeline (%d weeks)", q.TimelineWeeks), Amount: total - subtotal, Signed: true},
		},
		PreTimeline: subtotal,
		Modified:    total,
		Total:       total,
	}
	if q.Maintenance {
		b.Recurring = []LineItem{
			{Kind: ItemMaintenance, Label: "Maintenance (monthly)", Amount: e.rates.MaintenanceMonthly},
		}
	}
	return b
}

// Validate checks a page quote form before it is accepted.
// An empty or "none" tier means the option is not wanted.
func (e *PageEstimator) Validate(in Input) error {
	q := in.Pages
	if q.NumPages < 1 {
		return ErrInvalidPageCount
	}
	if q.TimelineWeeks < 1 {
		return ErrInvalidWeeks
	}
	if !knownTier(e.rates.Ecommerce, q.Ecommerce) {
		return fmt.Errorf("%w: e-commerce %q", ErrUnknownTier, q.Ecommerce)
	}
	if !knownTier(e.rates.SEO, q.SEO) {
		return fmt.Errorf("%w: seo %q", ErrUnknownTier, q.SEO)
	}
	return nil
}

func knownTier(table map[string]int64, tier string) bool {
	if tier == "" || tier == "none" {
		return true
	}
	_, ok := table[tier]
	return ok
}
