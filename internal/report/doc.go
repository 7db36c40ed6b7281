// Package report renders a project and its estimate for people and tools.
//
// This package contains writers for different output formats:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown with a cost chart
//
// Writers implement the Writer interface, so they can be used
// interchangeably and composed with MultiWriter.
package report
