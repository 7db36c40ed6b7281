// Package model defines the project document shared by every SalesQueen component.
//
// The document is the single persisted entity of the tool:
//   - Progress: completion state of the lead, quote and design stages
//   - Selection: the catalog-based estimate selection (type, features, timeline, budget)
//   - PageQuote: the page-count quote form
//   - Design: the ordered list of layout blocks
//   - Lead: sanitized contact and business fields
//   - Find: the last place search query
//
// Every type serializes to JSON with only string, number and boolean leaves,
// so a document always round-trips through encoding/json without loss.
package model
