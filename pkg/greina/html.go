package greina

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Elements whose text content is not natural language.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Elements that end a paragraph of running text.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "section": true, "article": true,
}

// ExtractText pulls the readable text out of an HTML document, with
// newlines at block element boundaries so that paragraph splitting can
// pick them up.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] && b.Len() > 0 {
			b.WriteByte('\n')
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String()), nil
}

// SubmitHTML extracts the text of an HTML document and submits it as a
// paragraph-split job.
func (g *Greina) SubmitHTML(r io.Reader, opts SubmitOptions) (*Job, error) {
	text, err := ExtractText(r)
	if err != nil {
		return nil, err
	}
	opts.SplitParagraphs = true
	return g.Submit(text, opts)
}
