package model

// Timeline is the delivery mode of a catalog estimate.
type Timeline string

const (
	// TimelineStandard applies no price modifier.
	TimelineStandard Timeline = "standard"
	// TimelineRush applies a 30% surcharge.
	TimelineRush Timeline = "rush"
	// TimelineFlex applies a 10% discount.
	TimelineFlex Timeline = "flex"
)

// Normalize maps unknown timeline values to TimelineStandard.
func (t Timeline) Normalize() Timeline {
	switch t {
	case TimelineRush, TimelineFlex:
		return t
	default:
		return TimelineStandard
	}
}

// Selection is the catalog estimate selection.
// An empty Type means no site type has been chosen yet.
type Selection struct {
	Type     string   `json:"type"`
	Features []string `json:"features"`
	Timeline Timeline `json:"timeline"`
	Budget   int64    `json:"budget"`
}

// NewSelection returns the selection a fresh estimator starts with.
func NewSelection() Selection {
	return Selection{
		Features: []string{},
		Timeline: TimelineStandard,
	}
}

// HasFeature reports whether id is selected.
func (s Selection) HasFeature(id string) bool {
	for _, f := range s.Features {
		if f == id {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of s.
func (s Selection) Clone() Selection {
	out := s
	if s.Features != nil {
		out.Features = append([]string{}, s.Features...)
	}
	return out
}

// PageQuote is the page-count quote form.
type PageQuote struct {
	NumPages      int    `json:"numPages"`
	Ecommerce     string `json:"ecommerce"`
	SEO           string `json:"seo"`
	TimelineWeeks int    `json:"timeline"`
	Maintenance   bool   `json:"maintenance"`
}
