package model

// Stage names a phase of the sales workflow.
type Stage string

const (
	// StageLead covers finding or entering the prospect business.
	StageLead Stage = "lead"
	// StageQuote covers pricing the website.
	StageQuote Stage = "quote"
	// StageDesign covers laying out the page blocks.
	StageDesign Stage = "design"
)

// Stages returns the fixed, ordered set of workflow stages.
func Stages() []Stage {
	return []Stage{StageLead, StageQuote, StageDesign}
}

// Valid reports whether s is one of the known workflow stages.
func (s Stage) Valid() bool {
	switch s {
	case StageLead, StageQuote, StageDesign:
		return true
	default:
		return false
	}
}

// StageState is the status of one stage.
type StageState string

const (
	// StateIncomplete is the initial state of every stage.
	StateIncomplete StageState = "incomplete"
	// StateInProgress marks a stage the user has started.
	StateInProgress StageState = "in-progress"
	// StateComplete marks a finished stage.
	StateComplete StageState = "complete"
)

// Valid reports whether s is one of the three stage states.
func (s StageState) Valid() bool {
	switch s {
	case StateIncomplete, StateInProgress, StateComplete:
		return true
	default:
		return false
	}
}

// Progress maps each stage to its state.
type Progress map[Stage]StageState

// Clone returns an independent copy of p.
func (p Progress) Clone() Progress {
	if p == nil {
		return nil
	}
	out := make(Progress, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
