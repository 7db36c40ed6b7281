// Package export writes a project out of the tool: JSON files, a standalone
// HTML page of the design, share text and a mailto link for the quote.
package export
