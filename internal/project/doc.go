// Package project ties the components of a sales session together.
//
// The Aggregator owns the live component state and converts it to and from a
// model.Project document. Reduce is the pure update function that computes the
// next document for an Action. A Session dispatches actions through Reduce,
// pushes the result back into the Aggregator, recomputes the estimate and
// writes the document to a store backend.
package project
