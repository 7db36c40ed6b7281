// Package progress tracks completion of the lead, quote and design stages.
//
// Each stage is an independent three-state automaton (incomplete, in-progress,
// complete) with no terminal state: callers may move a stage backwards.
// The Tracker is an explicitly constructed value; there is no package-level state.
package progress
