package export

import (
	"html/template"
	"io"

	"github.com/nao1215/salesqueen/internal/model"
)

// pageTemplate renders blocks as sections of a standalone page.
// Block markup and styles are authored in the design stage and emitted verbatim.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
{{- range .Blocks}}
<section data-type="{{.Type}}" style="{{.Style}}">{{.HTML}}</section>
{{- end}}
</body>
</html>
`))

type pageBlock struct {
	Type  string
	Style template.CSS
	HTML  template.HTML
}

type page struct {
	Title  string
	Blocks []pageBlock
}

// HTML writes blocks as a minimal standalone HTML document.
func HTML(w io.Writer, title string, blocks []model.Block) error {
	p := page{Title: title, Blocks: make([]pageBlock, len(blocks))}
	for i, b := range blocks {
		p.Blocks[i] = pageBlock{
			Type:  b.Type,
			Style: template.CSS(b.Style), //nolint:gosec // styles come from the local design stage
			HTML:  template.HTML(b.HTML), //nolint:gosec // markup comes from the local design stage
		}
	}
	return pageTemplate.Execute(w, p)
}
