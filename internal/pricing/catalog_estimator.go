package pricing

import (
	"fmt"

	"github.com/nao1215/salesqueen/internal/model"
)

// Catalog estimator constants.
const (
	// GSTRate is the fixed tax rate applied to the modified amount.
	GSTRate = 0.18
	// RushMultiplier is applied for the rush timeline.
	RushMultiplier = 1.3
	// FlexMultiplier is applied for the flexible timeline.
	FlexMultiplier = 0.9
)

// CatalogEstimator prices a catalog selection.
type CatalogEstimator struct {
	catalog Catalog
}

// NewCatalogEstimator returns an estimator over catalog.
func NewCatalogEstimator(catalog Catalog) *CatalogEstimator {
	return &CatalogEstimator{catalog: catalog}
}

// Catalog returns the price tables in use.
func (e *CatalogEstimator) Catalog() Catalog {
	return e.catalog
}

// Strategy implements Estimator.
func (e *CatalogEstimator) Strategy() Strategy {
	return StrategyCatalog
}

// Estimate implements Estimator.
func (e *CatalogEstimator) Estimate(in Input) Breakdown {
	sel := in.Selection

	base := e.BasePrice(sel.Type)
	features := e.FeaturesTotal(sel.Features)
	pre := base + features
	timeline := sel.Timeline.Normalize()
	modified := ApplyTimeline(pre, timeline)
	tax := roundHalfUp(float64(modified) * GSTRate)
	total := modified + tax

	b := Breakdown{
		Strategy: StrategyCatalog,
		Currency: INR,
		Items: []LineItem{
			{Kind: ItemBase, Label: "Base package", Amount: base},
			{Kind: ItemFeatures, Label: "Selected features", Amount: features},
			{Kind: ItemTimeline, Label: fmt.Sprintf("Timeline (%s)", timeline), Amount: modified - pre, Signed: true},
			{Kind: ItemTax, Label: "GST (18%)", Amount: tax},
		},
		PreTimeline: pre,
		Modified:    modified,
		Tax:         tax,
		Total:       total,
	}
	b.Warning = CheckBudget(total, sel.Budget)
	return b
}

// BasePrice returns the price of the site type, or 0 when none or unknown.
func (e *CatalogEstimator) BasePrice(typeID string) int64 {
	if t, ok := e.catalog.Type(typeID); ok {
		return t.Price
	}
	return 0
}

// FeaturesTotal sums the prices of the given feature ids.
// Ids missing from the catalog contribute nothing.
func (e *CatalogEstimator) FeaturesTotal(ids []string) int64 {
	var sum int64
	for _, id := range ids {
		if f, ok := e.catalog.Feature(id); ok {
			sum += f.Price
		}
	}
	return sum
}

// ApplyTimeline applies the timeline modifier to amount.
// Unknown timelines behave like standard.
func ApplyTimeline(amount int64, t model.Timeline) int64 {
	switch t {
	case model.TimelineRush:
		return roundHalfUp(float64(amount) * RushMultiplier)
	case model.TimelineFlex:
		return roundHalfUp(float64(amount) * FlexMultiplier)
	default:
		return amount
	}
}

// CheckBudget returns a warning when budget is set and total exceeds it.
// A budget of zero or less means "no budget".
func CheckBudget(total, budget int64) *BudgetWarning {
	if budget <= 0 || total <= budget {
		return nil
	}
	return &BudgetWarning{Budget: budget, Total: total, Overage: total - budget}
}
