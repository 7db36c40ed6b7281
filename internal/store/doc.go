// Package store persists the project document.
//
// Exactly one document exists per store, kept under model.ProjectKey. Every
// save overwrites it completely. Three backends implement Backend:
//   - SQLite keeps the document in a single local file and also appends every
//     save to a revision history.
//   - Redis keeps the document under one key with no expiry.
//   - Memory keeps the serialized document in process, for tests and
//     ephemeral sessions.
//
// All backends serialize with the same JSON encoding, so a document written by
// one can be read by any other.
package store
