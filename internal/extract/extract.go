// Package extract turns raw HTML into the normalized plain text that change
// detection compares. Output must be byte-identical for identical input; the
// snapshot diff is a plain equality check.
package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text parses markup permissively and returns only human-visible text nodes,
// one per line, each trimmed of leading/trailing whitespace. Malformed HTML
// never fails: the parser repairs what it can and the rest is treated as
// text.
func Text(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse only errors on reader failure, which a string reader
		// cannot produce. Treat the input as opaque text if it ever does.
		return strings.TrimSpace(raw)
	}
	var lines []string
	collect(doc, &lines)
	return strings.Join(lines, "\n")
}

func collect(n *html.Node, lines *[]string) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Iframe:
			return
		}
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*lines = append(*lines, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, lines)
	}
}
