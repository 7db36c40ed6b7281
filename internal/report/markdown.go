package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown for sharing
// with the client.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the whole summary in Markdown format.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeBreakdown(md, summary.Breakdown)
	w.writeLead(md, summary)
	w.writeDesign(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBreakdown outputs the breakdown in Markdown format.
func (w *MarkdownWriter) WriteBreakdown(b pricing.Breakdown) (int, error) {
	md := markdown.NewMarkdown(w.output)
	w.writeBreakdown(md, b)
	return len(md.String()), md.Build()
}

// writeHeader writes the title and project overview table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *Summary) {
	md.H1(s.Title)
	md.PlainText("")

	rows := [][]string{
		{"Generated", s.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Progress", strconv.Itoa(s.Percentage) + "%"},
	}
	for _, st := range s.Stages {
		rows = append(rows, []string{"Stage `" + string(st.Stage) + "`", stateText(st.State)})
	}
	if s.SiteType != "" {
		rows = append(rows, []string{"Website Type", s.SiteType})
		rows = append(rows, []string{"Timeline", string(s.Timeline)})
	}
	if s.Pages != nil {
		rows = append(rows,
			[]string{"Pages", strconv.Itoa(s.Pages.NumPages)},
			[]string{"Delivery", strconv.Itoa(s.Pages.TimelineWeeks) + " weeks"},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(s.Features) > 0 {
		md.H2("Features")
		md.PlainText("")
		md.BulletList(s.Features...)
		md.PlainText("")
	}
}

// writeBreakdown writes the cost table, chart and budget alert.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, b pricing.Breakdown) {
	md.H2("Cost Breakdown")
	md.PlainText("")

	rows := make([][]string, 0, len(b.Items)+len(b.Recurring)+1)
	for _, it := range b.Items {
		rows = append(rows, []string{it.Label, formatItem(b.Currency, it)})
	}
	rows = append(rows, []string{"**Total**", "**" + b.Currency.Format(b.Total) + "**"})
	for _, it := range b.Recurring {
		rows = append(rows, []string{it.Label, formatItem(b.Currency, it)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Item", "Amount"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, b)
	w.writeAlert(md, b)
}

// writePieChart writes a mermaid pie chart of the positive cost lines.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, b pricing.Breakdown) {
	if b.Total <= 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Cost Distribution"),
		piechart.WithShowData(true),
	)
	for _, it := range b.Items {
		if it.Amount > 0 {
			chart.LabelAndIntValue(chartLabel(it.Kind), uint64(it.Amount))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes the budget warning or a confirmation.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, b pricing.Breakdown) {
	switch {
	case b.Warning != nil:
		md.Warningf("%s", b.Warning.Message(b.Currency))
	case b.Total == 0:
		md.Note("Select a website type to see an estimate.")
	default:
		md.Tip("Quote ready. You can print or share now.")
	}
	md.PlainText("")
}

// writeLead writes the prospect details.
func (w *MarkdownWriter) writeLead(md *markdown.Markdown, s *Summary) {
	md.H2("Client")
	md.PlainText("")

	if s.Lead == nil {
		md.PlainText("No lead captured yet.")
		md.PlainText("")
		return
	}

	l := s.Lead
	rows := [][]string{}
	for _, r := range [][2]string{
		{"Business", l.BusinessName},
		{"Industry", l.Industry},
		{"Phone", l.Phone},
		{"Email", l.Email},
		{"Website", l.Website},
		{"Address", l.Address},
	} {
		if r[1] != "" {
			rows = append(rows, []string{r[0], r[1]})
		}
	}
	if len(rows) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Field", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}
	if l.Notes != "" {
		md.Details("Notes", l.Notes)
		md.PlainText("")
	}
}

// writeDesign writes the page outline.
func (w *MarkdownWriter) writeDesign(md *markdown.Markdown, s *Summary) {
	md.H2("Page Outline")
	md.PlainText("")

	if len(s.Blocks) == 0 {
		md.PlainText("No blocks added yet.")
		md.PlainText("")
		return
	}

	items := make([]string, len(s.Blocks))
	for i, blk := range s.Blocks {
		items[i] = "**" + blk.Type + "**"
		if blk.Headline != "" {
			items[i] += ": " + blk.Headline
		}
	}
	md.OrderedList(items...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Quote generated by SalesQueen*")
}

func stateText(s model.StageState) string {
	switch s {
	case model.StateComplete:
		return "✅ complete"
	case model.StateInProgress:
		return "🟡 in-progress"
	default:
		return "⚪ incomplete"
	}
}
