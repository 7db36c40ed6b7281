// Package layout maintains the ordered list of content blocks that make up a
// page design.
//
// Reordering is expressed with explicit InsertAt and MoveBlock operations on a
// plain slice. The package also extracts readable text from block markup so
// designs can be summarized outside a browser.
package layout
