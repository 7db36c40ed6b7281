package layout

import (
	"errors"
	"fmt"

	"github.com/nao1215/salesqueen/internal/model"
)

// Block types offered by the palette.
const (
	TypeHero         = "hero"
	TypeFeatures     = "features"
	TypeTestimonials = "testimonials"
	TypeCTA          = "cta"
)

// ErrIndexOutOfRange is returned when a block index does not exist.
var ErrIndexOutOfRange = errors.New("block index out of range")

// Palette returns the block types that have default content, in palette order.
func Palette() []string {
	return []string{TypeHero, TypeFeatures, TypeTestimonials, TypeCTA}
}

// DefaultHTML returns the starting markup of a new block of type t.
// Unknown types get a generic paragraph.
func DefaultHTML(t string) string {
	switch t {
	case TypeHero:
		return "<h3>Hero Banner</h3><p>Click to edit headline and copy.</p>"
	case TypeFeatures:
		return "<h4>Features</h4><ul><li>Feature one</li><li>Feature two</li><li>Feature three</li></ul>"
	case TypeTestimonials:
		return "<h4>Testimonials</h4><blockquote>“Great service!” — Happy Client</blockquote>"
	case TypeCTA:
		return `<h4>Call to Action</h4><button class="btn btn-primary">Get Started</button>`
	default:
		return "<p>New block</p>"
	}
}

// NewBlock returns a block of type t with its default markup.
func NewBlock(t string) model.Block {
	return model.Block{Type: t, HTML: DefaultHTML(t)}
}

// Builder holds the blocks of a design in display order.
// The zero value is an empty design ready to use.
type Builder struct {
	blocks []model.Block
}

// NewBuilder returns a Builder holding a copy of blocks.
func NewBuilder(blocks []model.Block) *Builder {
	b := &Builder{}
	b.Replace(blocks)
	return b
}

// Len returns the number of blocks.
func (b *Builder) Len() int {
	return len(b.blocks)
}

// Blocks returns a copy of the blocks in order.
func (b *Builder) Blocks() []model.Block {
	return append([]model.Block{}, b.blocks...)
}

// Replace discards the current blocks and copies blocks in.
func (b *Builder) Replace(blocks []model.Block) {
	b.blocks = append(b.blocks[:0:0], blocks...)
}

// Append adds a default block of type t at the end and returns its index.
func (b *Builder) Append(t string) int {
	b.blocks = append(b.blocks, NewBlock(t))
	return len(b.blocks) - 1
}

// InsertAt inserts blk before position i. i may equal Len to append.
func (b *Builder) InsertAt(i int, blk model.Block) error {
	if i < 0 || i > len(b.blocks) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, i, len(b.blocks))
	}
	b.blocks = append(b.blocks, model.Block{})
	copy(b.blocks[i+1:], b.blocks[i:])
	b.blocks[i] = blk
	return nil
}

// MoveBlock moves the block at from so that it ends up at index to.
// Blocks in between shift by one; the relative order of the others is kept.
func (b *Builder) MoveBlock(from, to int) error {
	n := len(b.blocks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d of %d", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	blk := b.blocks[from]
	if from < to {
		copy(b.blocks[from:to], b.blocks[from+1:to+1])
	} else {
		copy(b.blocks[to+1:from+1], b.blocks[to:from])
	}
	b.blocks[to] = blk
	return nil
}

// Remove deletes the block at i and returns it.
func (b *Builder) Remove(i int) (model.Block, error) {
	if err := b.check(i); err != nil {
		return model.Block{}, err
	}
	blk := b.blocks[i]
	b.blocks = append(b.blocks[:i], b.blocks[i+1:]...)
	return blk, nil
}

// SetStyle replaces the inline CSS of the block at i.
func (b *Builder) SetStyle(i int, css string) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.blocks[i].Style = css
	return nil
}

// SetHTML replaces the markup of the block at i.
func (b *Builder) SetHTML(i int, markup string) error {
	if err := b.check(i); err != nil {
		return err
	}
	b.blocks[i].HTML = markup
	return nil
}

func (b *Builder) check(i int) error {
	if i < 0 || i >= len(b.blocks) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(b.blocks))
	}
	return nil
}
