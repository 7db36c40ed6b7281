package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/nao1215/salesqueen/internal/model"
)

// Strategy names a quoting mode.
type Strategy string

const (
	// StrategyCatalog prices a site type and catalog features.
	StrategyCatalog Strategy = "catalog"
	// StrategyPages prices a page count and tiered fees.
	StrategyPages Strategy = "pages"
)

// ErrUnknownStrategy is returned by ParseStrategy for unsupported names.
var ErrUnknownStrategy = errors.New("unknown pricing strategy")

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCatalog, StrategyPages:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrUnknownStrategy, s, StrategyCatalog, StrategyPages)
	}
}

// Input carries the selections of both quoting modes.
// Each strategy reads only its own part.
type Input struct {
	Selection model.Selection
	Pages     model.PageQuote
}

// Estimator computes a Breakdown for one quoting mode.
// Implementations are pure: the same Input always yields the same Breakdown.
type Estimator interface {
	Strategy() Strategy
	Estimate(in Input) Breakdown
}

// New returns the estimator for strategy using the default tables.
func New(strategy Strategy) (Estimator, error) {
	switch strategy {
	case StrategyCatalog:
		return NewCatalogEstimator(DefaultCatalog()), nil
	case StrategyPages:
		return NewPageEstimator(DefaultPageRates()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// ItemKind identifies a breakdown line independently of its label.
type ItemKind string

const (
	ItemBase        ItemKind = "base"
	ItemFeatures    ItemKind = "features"
	ItemPages       ItemKind = "pages"
	ItemEcommerce   ItemKind = "ecommerce"
	ItemSEO         ItemKind = "seo"
	ItemTimeline    ItemKind = "timeline"
	ItemTax         ItemKind = "tax"
	ItemMaintenance ItemKind = "maintenance"
)

// LineItem is one row of a breakdown.
// Signed items are deltas and are rendered with an explicit sign.
type LineItem struct {
	Kind   ItemKind `json:"kind"`
	Label  string   `json:"label"`
	Amount int64    `json:"amount"`
	Signed bool     `json:"signed,omitempty"`
}

// BudgetWarning reports that a total exceeds the stated budget.
type BudgetWarning struct {
	Budget  int64 `json:"budget"`
	Total   int64 `json:"total"`
	Overage int64 `json:"overage"`
}

// Message renders the warning shown next to an estimate.
func (w BudgetWarning) Message(c Currency) string {
	return fmt.Sprintf("Your selections exceed your budget by %s. Consider deselecting some features or choosing a flexible timeline.", c.Format(w.Overage))
}

// Breakdown is the shared result contract of every Estimator.
type Breakdown struct {
	Strategy Strategy `json:"strategy"`
	Currency Currency `json:"currency"`

	// Items are the rows in display order.
	Items []LineItem `json:"items"`

	// PreTimeline is the sum before the timeline modifier.
	PreTimeline int64 `json:"preTimeline"`

	// Modified is PreTimeline after the timeline modifier, before tax.
	Modified int64 `json:"modified"`

	Tax   int64 `json:"tax"`
	Total int64 `json:"total"`

	// Recurring lists charges billed outside Total, such as monthly maintenance.
	Recurring []LineItem `json:"recurring,omitempty"`

	Warning *BudgetWarning `json:"warning,omitempty"`
}

// Amount returns the amount of the first item of kind, or 0.
func (b Breakdown) Amount(kind ItemKind) int64 {
	for _, it := range b.Items {
		if it.Kind == kind {
			return it.Amount
		}
	}
	for _, it := range b.Recurring {
		if it.Kind == kind {
			return it.Amount
		}
	}
	return 0
}

// HasTax reports whether the breakdown carries a tax line.
func (b Breakdown) HasTax() bool {
	for _, it := range b.Items {
		if it.Kind == ItemTax {
			return true
		}
	}
	return false
}

// roundHalfUp rounds to the nearest integer, halves away from negative infinity.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
