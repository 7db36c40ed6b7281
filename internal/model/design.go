package model

// Block is one typed, styleable unit of page content.
// Style holds a CSS declaration list such as "padding:2rem;color:#333".
type Block struct {
	Type  string `json:"type"`
	HTML  string `json:"html"`
	Style string `json:"style"`
}

// Design is the ordered list of blocks on the canvas.
type Design struct {
	Blocks []Block `json:"blocks"`
}

// Clone returns an independent copy of d.
func (d Design) Clone() Design {
	if d.Blocks == nil {
		return Design{}
	}
	return Design{Blocks: append([]Block{}, d.Blocks...)}
}
