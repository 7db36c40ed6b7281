package progress

import (
	"math"

	"github.com/nao1215/salesqueen/internal/model"
)

// Tracker holds the state of every workflow stage.
type Tracker struct {
	states model.Progress
}

// New returns a Tracker with every stage incomplete.
func New() *Tracker {
	t := &Tracker{states: make(model.Progress, len(model.Stages()))}
	for _, s := range model.Stages() {
		t.states[s] = model.StateIncomplete
	}
	return t
}

// FromProgress returns a Tracker seeded from p.
// Unknown stages and invalid states in p are ignored.
func FromProgress(p model.Progress) *Tracker {
	t := New()
	t.SetState(p)
	return t
}

// SetStage moves stage to state. It reports false and changes nothing when
// either the stage or the state is not recognized.
func (t *Tracker) SetStage(stage model.Stage, state model.StageState) bool {
	if !stage.Valid() || !state.Valid() {
		return false
	}
	t.states[stage] = state
	return true
}

// Stage returns the current state of stage.
func (t *Tracker) Stage(stage model.Stage) model.StageState {
	if s, ok := t.states[stage]; ok {
		return s
	}
	return model.StateIncomplete
}

// State returns a copy of every stage state.
func (t *Tracker) State() model.Progress {
	return t.states.Clone()
}

// SetState merges the recognized stages of partial, leaving the others untouched.
func (t *Tracker) SetState(partial model.Progress) {
	for _, s := range model.Stages() {
		if v, ok := partial[s]; ok {
			t.SetStage(s, v)
		}
	}
}

// Percentage returns the overall completion. A complete stage counts fully,
// an in-progress stage counts half.
func (t *Tracker) Percentage() int {
	return Percentage(t.states)
}

// Percentage computes the completion of p over the fixed stage set.
func Percentage(p model.Progress) int {
	stages := model.Stages()
	var complete, inProgress int
	for _, s := range stages {
		switch p[s] {
		case model.StateComplete:
			complete++
		case model.StateInProgress:
			inProgress++
		}
	}
	pct := int(math.Floor(100*(float64(complete)+0.5*float64(inProgress))/float64(len(stages)) + 0.5))
	return min(100, max(0, pct))
}
