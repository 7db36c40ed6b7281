package model

// ProjectKey is the fixed storage key of the project document.
// Changing the document shape without changing this key breaks existing saves.
const ProjectKey = "salesqueen_project_v1"

// Project is the aggregate of all session state.
// Sections other than Progress are optional; a nil section means "not present"
// and is left untouched on restore.
type Project struct {
	Progress Progress   `json:"progress"`
	Estimate *Selection `json:"estimate,omitempty"`
	Quote    *PageQuote `json:"quote,omitempty"`
	Design   *Design    `json:"design,omitempty"`
	Lead     *Lead      `json:"lead,omitempty"`
	Find     *Find      `json:"find,omitempty"`
}

// Clone returns a deep copy of p.
func (p Project) Clone() Project {
	out := Project{Progress: p.Progress.Clone()}
	if p.Estimate != nil {
		sel := p.Estimate.Clone()
		out.Estimate = &sel
	}
	if p.Quote != nil {
		q := *p.Quote
		out.Quote = &q
	}
	if p.Design != nil {
		d := p.Design.Clone()
		out.Design = &d
	}
	if p.Lead != nil {
		l := *p.Lead
		out.Lead = &l
	}
	if p.Find != nil {
		f := *p.Find
		out.Find = &f
	}
	return out
}

// Blocks returns the design blocks, or nil when there is no design section.
func (p Project) Blocks() []Block {
	if p.Design == nil {
		return nil
	}
	return p.Design.Blocks
}
