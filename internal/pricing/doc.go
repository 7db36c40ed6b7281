// Package pricing turns a quote selection into a price breakdown.
//
// Two quoting modes are supported as interchangeable Estimator strategies:
//   - CatalogEstimator prices a site type plus catalog features, applies a
//     timeline modifier and an 18% GST line, and checks the result against a budget.
//   - PageEstimator prices a page count plus tiered e-commerce and SEO fees and
//     applies a rush multiplier for short timelines. It has no tax line.
//
// The two modes use different currencies and different tax treatment. They are
// kept separate on purpose and never reconciled into one formula.
//
// All amounts are integer currency units. Rounding is half-up to the nearest unit.
package pricing
