package app

import (
	"strings"

	"golang.org/x/net/html"
)

const excerptMaxRunes = 200

// deriveExcerpt produces a plain-text preview from post content when the
// author did not supply one. Content may be rich HTML from the editor or
// plain text.
func deriveExcerpt(content string) string {
	text := content
	if strings.Contains(content, "<") {
		if doc, err := html.Parse(strings.NewReader(content)); err == nil {
			text = extractText(doc)
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= excerptMaxRunes {
		return text
	}
	cut := string(runes[:excerptMaxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func extractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			buf.WriteString(node.Data)
			buf.WriteString(" ")
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == html.ElementNode && (node.Data == "p" || node.Data == "br" || node.Data == "div" || node.Data == "li") {
			buf.WriteString(" ")
		}
	}
	walk(n)
	return buf.String()
}
