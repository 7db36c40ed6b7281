package progress

import (
	"testing"

	"github.com/nao1215/salesqueen/internal/model"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tr := New()
	for _, s := range model.Stages() {
		if got := tr.Stage(s); got != model.StateIncomplete {
			t.Errorf("stage %s: expected incomplete, got %s", s, got)
		}
	}
	if tr.Percentage() != 0 {
		t.Errorf("expected 0%%, got %d", tr.Percentage())
	}
}

func TestSetStage(t *testing.T) {
	t.Parallel()

	t.Run("valid stage and state", func(t *testing.T) {
		t.Parallel()
		tr := New()
		if !tr.SetStage(model.StageQuote, model.StateComplete) {
			t.Fatal("expected SetStage to succeed")
		}
		if tr.Stage(model.StageQuote) != model.StateComplete {
			t.Errorf("expected quote complete, got %s", tr.Stage(model.StageQuote))
		}
	})

	t.Run("regression is allowed", func(t *testing.T) {
		t.Parallel()
		tr := New()
		tr.SetStage(model.StageDesign, model.StateComplete)
		tr.SetStage(model.StageDesign, model.StateInProgress)
		if tr.Stage(model.StageDesign) != model.StateInProgress {
			t.Errorf("expected design in-progress, got %s", tr.Stage(model.StageDesign))
		}
	})

	tests := []struct {
		name  string
		stage model.Stage
		state model.StageState
	}{
		{"unknown stage", "billing", model.StateComplete},
		{"unknown state", model.StageLead, "done"},
		{"empty stage", "", model.StateComplete},
		{"empty state", model.StageLead, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name+" leaves state unchanged", func(t *testing.T) {
			t.Parallel()
			tr := New()
			tr.SetStage(model.StageLead, model.StateInProgress)
			before := tr.State()

			if tr.SetStage(tt.stage, tt.state) {
				t.Error("expected SetStage to report false")
			}
			after := tr.State()
			if len(after) != len(before) {
				t.Fatalf("expected %d stages, got %d", len(before), len(after))
			}
			for k, v := range before {
				if after[k] != v {
					t.Errorf("stage %s changed from %s to %s", k, v, after[k])
				}
			}
		})
	}
}

func TestStateIsACopy(t *testing.T) {
	t.Parallel()

	tr := New()
	snapshot := tr.State()
	snapshot[model.StageLead] = model.StateComplete

	if tr.Stage(model.StageLead) != model.StateIncomplete {
		t.Error("mutating the snapshot must not change the tracker")
	}
}

func TestSetState(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.SetStage(model.StageDesign, model.StateInProgress)
	tr.SetState(model.Progress{
		model.StageLead:  model.StateComplete,
		"unknown":        model.StateComplete,
		model.StageQuote: "bogus",
	})

	if tr.Stage(model.StageLead) != model.StateComplete {
		t.Errorf("expected lead complete, got %s", tr.Stage(model.StageLead))
	}
	if tr.Stage(model.StageQuote) != model.StateIncomplete {
		t.Errorf("expected quote untouched, got %s", tr.Stage(model.StageQuote))
	}
	if tr.Stage(model.StageDesign) != model.StateInProgress {
		t.Errorf("expected design untouched, got %s", tr.Stage(model.StageDesign))
	}
	if _, ok := tr.State()["unknown"]; ok {
		t.Error("unknown stage must not be stored")
	}
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		progress model.Progress
		want     int
	}{
		{"nothing started", model.Progress{}, 0},
		{"one in progress", model.Progress{model.StageLead: model.StateInProgress}, 17},
		{"one complete", model.Progress{model.StageLead: model.StateComplete}, 33},
		{"one complete one in progress", model.Progress{model.StageLead: model.StateComplete, model.StageQuote: model.StateInProgress}, 50},
		{"two complete", model.Progress{model.StageLead: model.StateComplete, model.StageQuote: model.StateComplete}, 67},
		{"all in progress", model.Progress{model.StageLead: model.StateInProgress, model.StageQuote: model.StateInProgress, model.StageDesign: model.StateInProgress}, 50},
		{"all complete", model.Progress{model.StageLead: model.StateComplete, model.StageQuote: model.StateComplete, model.StageDesign: model.StateComplete}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FromProgress(tt.progress).Percentage(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
