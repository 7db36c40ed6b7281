// Package geo resolves free-text locations and finds nearby businesses.
//
// Locator is the common interface of three interchangeable strategies:
//   - GoogleLocator uses the Google Maps geocoding and places web services.
//   - OSMLocator uses the OpenStreetMap Nominatim REST API and falls back to
//     built-in sample businesses when the service fails or finds nothing nearby.
//   - MockLocator answers from built-in sample data only.
//
// The strategies return slightly different data for the same query and are
// not expected to agree. Searcher debounces interactive input before it
// reaches a Locator.
package geo
