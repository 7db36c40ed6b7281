package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/salesqueen/internal/pricing"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the whole project summary.
	// Returns the number of bytes written and any error encountered.
	Write(summary *Summary) (int, error)

	// WriteBreakdown outputs only the cost breakdown.
	WriteBreakdown(b pricing.Breakdown) (int, error)
}

// Format names an output format.
type Format string

const (
	// FormatText is the plain text format.
	FormatText Format = "text"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
	// FormatMarkdown is the Markdown format.
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by NewWriter for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats returns the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatMarkdown}
}

// NewWriter returns the writer for format. verbose adds detail to the text
// format and pretty-prints JSON.
func NewWriter(format Format, output io.Writer, verbose bool) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewSimpleWriter(output, WithVerbose(verbose)), nil
	case FormatJSON:
		if verbose {
			return NewJSONWriter(output, WithPrettyPrint()), nil
		}
		return NewJSONWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MultiWriter writes to multiple Writers, for example the terminal and a file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBreakdown outputs the breakdown to all configured Writers.
func (m *MultiWriter) WriteBreakdown(b pricing.Breakdown) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBreakdown(b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
