package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags are kept, without attributes, by SanitizeSummary.
var allowedTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.U:      true,
	atom.Br:     true,
}

// droppedTags are removed together with their content.
var droppedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Noscript: true,
	atom.Template: true,
}

// SanitizeSummary reduces summary markup to a small set of formatting tags.
// Attributes and comments are stripped, other elements are unwrapped.
func SanitizeSummary(summary string) string {
	if summary == "" {
		return ""
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(summary), body)
	if err != nil {
		return html.EscapeString(summary)
	}

	var sb strings.Builder
	for _, n := range nodes {
		writeSanitized(&sb, n)
	}
	return sb.String()
}

func writeSanitized(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		if droppedTags[n.DataAtom] {
			return
		}
		if allowedTags[n.DataAtom] {
			sb.WriteString("<" + n.Data + ">")
			if n.DataAtom == atom.Br {
				return
			}
			writeChildren(sb, n)
			sb.WriteString("</" + n.Data + ">")
			return
		}
		writeChildren(sb, n)
	case html.DocumentNode:
		writeChildren(sb, n)
	}
}

func writeChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeSanitized(sb, c)
	}
}

// SummaryText returns the text content of summary markup.
func SummaryText(summary string) string {
	if summary == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(summary))
	if err != nil {
		return summary
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}
