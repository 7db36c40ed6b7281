package layout

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Summary is the readable content of one block.
type Summary struct {
	// Headline is the text of the first heading element, if any.
	Headline string
	// Text is all visible text with whitespace collapsed.
	Text string
	// Links are the href values of anchors, in document order.
	Links []string
	// Emails are addresses found in the visible text.
	Emails []string
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// Inspect parses block markup and extracts its readable content.
// Markup that is not well formed is parsed leniently the way browsers do.
func Inspect(markup string) (Summary, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext())
	if err != nil {
		return Summary{}, err
	}

	var (
		sum  Summary
		text strings.Builder
	)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6":
				if sum.Headline == "" {
					sum.Headline = collapse(nodeText(n))
				}
			case "a":
				if href := attr(n, "href"); href != "" {
					sum.Links = append(sum.Links, href)
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	sum.Text = collapse(text.String())
	sum.Emails = emailPattern.FindAllString(sum.Text, -1)
	return sum, nil
}

// PlainText returns the visible text of markup, or the markup itself when
// it cannot be parsed.
func PlainText(markup string) string {
	sum, err := Inspect(markup)
	if err != nil {
		return markup
	}
	return sum.Text
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
