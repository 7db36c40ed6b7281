package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the whole summary in human-readable format.
func (w *SimpleWriter) Write(summary *Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeSelection(&sb, summary)
	w.writeBreakdown(&sb, summary.Breakdown)
	w.writeProgress(&sb, summary)
	w.writeLead(&sb, summary)
	w.writeDesign(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteBreakdown outputs only the cost breakdown.
func (w *SimpleWriter) WriteBreakdown(b pricing.Breakdown) (int, error) {
	var sb strings.Builder
	w.writeBreakdown(&sb, b)
	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeHeader writes the title block.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SALESQUEEN QUOTE\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Project:   %s\n", s.Title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Progress:  %d%%\n", s.Percentage))
	sb.WriteString("\n")
}

// writeSelection writes what was priced.
func (w *SimpleWriter) writeSelection(sb *strings.Builder, s *Summary) {
	pages := s.Breakdown.Strategy == pricing.StrategyPages
	if !pages && s.SiteType == "" && !w.showEmpty {
		return
	}

	w.section(sb, "SELECTION")

	if pages {
		q := s.Pages
		if q == nil {
			sb.WriteString("  No page quote submitted\n\n")
			return
		}
		sb.WriteString(fmt.Sprintf("  Pages:       %d\n", q.NumPages))
		sb.WriteString(fmt.Sprintf("  E-commerce:  %s\n", orNone(q.Ecommerce)))
		sb.WriteString(fmt.Sprintf("  SEO:         %s\n", orNone(q.SEO)))
		sb.WriteString(fmt.Sprintf("  Timeline:    %d weeks\n", q.TimelineWeeks))
		sb.WriteString(fmt.Sprintf("  Maintenance: %t\n", q.Maintenance))
		sb.WriteString("\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  Website Type: %s\n", orNone(s.SiteType)))
	sb.WriteString(fmt.Sprintf("  Timeline:     %s\n", s.Timeline))
	if s.Budget > 0 {
		sb.WriteString(fmt.Sprintf("  Budget:       %s\n", s.Breakdown.Currency.Format(s.Budget)))
	}
	for _, f := range s.Features {
		sb.WriteString(fmt.Sprintf("  [+] %s\n", f))
	}
	sb.WriteString("\n")
}

// writeBreakdown writes the cost lines and totals.
func (w *SimpleWriter) writeBreakdown(sb *strings.Builder, b pricing.Breakdown) {
	w.section(sb, "BREAKDOWN")

	for _, it := range b.Items {
		sb.WriteString(fmt.Sprintf("  %-34s %16s\n", it.Label+":", formatItem(b.Currency, it)))
	}
	sb.WriteString(fmt.Sprintf("  %-34s %16s\n", "TOTAL:", b.Currency.Format(b.Total)))
	for _, it := range b.Recurring {
		sb.WriteString(fmt.Sprintf("  %-34s %16s\n", it.Label+":", formatItem(b.Currency, it)))
	}

	if w.verbose {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Before timeline: %s\n", b.Currency.Format(b.PreTimeline)))
		sb.WriteString(fmt.Sprintf("  After timeline:  %s\n", b.Currency.Format(b.Modified)))
		if b.HasTax() {
			sb.WriteString(fmt.Sprintf("  Tax:             %s\n", b.Currency.Format(b.Tax)))
		}
	}

	if b.Warning != nil {
		sb.WriteString("\n")
		sb.WriteString("  [!] ")
		sb.WriteString(b.Warning.Message(b.Currency))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeProgress writes the stage states.
func (w *SimpleWriter) writeProgress(sb *strings.Builder, s *Summary) {
	w.section(sb, "PROGRESS")

	for _, st := range s.Stages {
		sb.WriteString(fmt.Sprintf("  [%s] %-8s %s\n", stageMark(st), st.Stage, st.State))
	}
	sb.WriteString("\n")
}

// writeLead writes the captured prospect.
func (w *SimpleWriter) writeLead(sb *strings.Builder, s *Summary) {
	if s.Lead == nil && !w.showEmpty {
		return
	}

	w.section(sb, "LEAD")

	if s.Lead == nil {
		sb.WriteString("  No lead captured\n\n")
		return
	}

	l := s.Lead
	rows := []struct{ name, value string }{
		{"Business", l.BusinessName},
		{"Industry", l.Industry},
		{"Phone", l.Phone},
		{"Email", l.Email},
		{"Website", l.Website},
		{"Address", l.Address},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-9s %s\n", r.name+":", r.value))
	}
	if w.verbose && l.Notes != "" {
		sb.WriteString(fmt.Sprintf("  %-9s %s\n", "Notes:", l.Notes))
	}
	sb.WriteString("\n")
}

// writeDesign writes the block list.
func (w *SimpleWriter) writeDesign(sb *strings.Builder, s *Summary) {
	if len(s.Blocks) == 0 && !w.showEmpty {
		return
	}

	w.section(sb, "DESIGN")

	if len(s.Blocks) == 0 {
		sb.WriteString("  No blocks\n\n")
		return
	}

	for i, blk := range s.Blocks {
		line := fmt.Sprintf("  %d. %s", i+1, blk.Type)
		if blk.Headline != "" {
			line += " - " + blk.Headline
		}
		if w.verbose && blk.Styled {
			line += " (styled)"
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Quote generated by SalesQueen\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

func stageMark(st StageStatus) string {
	switch st.State {
	case model.StateComplete:
		return "x"
	case model.StateInProgress:
		return "~"
	default:
		return " "
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
