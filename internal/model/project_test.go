package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestProject_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := Project{
		Progress: Progress{StageQuote: StateComplete},
		Estimate: &Selection{Type: "blog", Features: []string{"cms"}, Timeline: TimelineFlex},
		Design:   &Design{Blocks: []Block{{Type: "hero", HTML: "<h3>Hi</h3>"}}},
		Lead:     &Lead{BusinessName: "Acme"},
		Find:     &Find{Query: "bakery"},
	}

	c := orig.Clone()
	c.Progress[StageLead] = StateInProgress
	c.Estimate.Features[0] = "chatbot"
	c.Design.Blocks[0].Style = "color:red"
	c.Lead.BusinessName = "Other"
	c.Find.Query = "cafe"

	if _, ok := orig.Progress[StageLead]; ok {
		t.Error("progress shares storage with the clone")
	}
	if orig.Estimate.Features[0] != "cms" {
		t.Error("features share storage with the clone")
	}
	if orig.Design.Blocks[0].Style != "" {
		t.Error("blocks share storage with the clone")
	}
	if orig.Lead.BusinessName != "Acme" || orig.Find.Query != "bakery" {
		t.Error("lead or find shares storage with the clone")
	}
}

func TestProject_JSONShape(t *testing.T) {
	t.Parallel()

	doc := Project{
		Progress: Progress{StageLead: StateIncomplete, StageQuote: StateComplete, StageDesign: StateInProgress},
		Estimate: &Selection{Type: "business", Features: []string{"seo-basic", "cms"}, Timeline: TimelineStandard},
		Quote:    &PageQuote{NumPages: 5, Ecommerce: "basic", SEO: "plus", TimelineWeeks: 3, Maintenance: true},
		Design:   &Design{Blocks: []Block{{Type: "hero", HTML: "<h3>Hero Banner</h3>", Style: "padding:2rem"}}},
		Lead:     &Lead{},
		Find:     &Find{Query: "bakery pune"},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"progress", "estimate", "quote", "design", "lead", "find"} {
		if _, ok := generic[key]; !ok {
			t.Errorf("document is missing %q", key)
		}
	}
	quote := generic["quote"].(map[string]any)
	if quote["timeline"] != float64(3) {
		t.Errorf("quote.timeline = %v, want 3", quote["timeline"])
	}

	var back Project
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, doc)
	}
}

func TestProject_EmptySectionsOmitted(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Project{Progress: Progress{}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(raw); got != `{"progress":{}}` {
		t.Errorf("Marshal() = %s, want {\"progress\":{}}", got)
	}
}

func TestTimeline_Normalize(t *testing.T) {
	t.Parallel()

	tests := map[Timeline]Timeline{
		TimelineRush:     TimelineRush,
		TimelineFlex:     TimelineFlex,
		TimelineStandard: TimelineStandard,
		"":               TimelineStandard,
		"asap":           TimelineStandard,
	}
	for in, want := range tests {
		if got := in.Normalize(); got != want {
			t.Errorf("Timeline(%q).Normalize() = %q, want %q", in, got, want)
		}
	}
}
