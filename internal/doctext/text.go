package doctext

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/joseph-ayodele/tourpack/constants"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func extractPlain(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{SourceType: constants.TEXT}, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	var warns []string
	if !utf8.Valid(data) {
		warns = append(warns, "invalid UTF-8 replaced")
		data = bytes.ToValidUTF8(data, []byte("\uFFFD"))
	}
	return Result{Text: string(data), Pages: 1, SourceType: constants.TEXT, Method: "plain", Warnings: warns}, nil
}

func extractHTML(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{SourceType: constants.HTML}, err
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return Result{SourceType: constants.HTML}, err
	}
	return Result{Text: htmlText(doc), Pages: 1, SourceType: constants.HTML, Method: "html"}, nil
}

// htmlText renders visible text with block elements on their own lines, so line-oriented rules
// (title, Day N, headers) see the same shape a PDF would give.
func htmlText(root *html.Node) string {
	var sb strings.Builder
	lineBreak := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text := strings.Join(strings.Fields(n.Data), " ")
			if text == "" {
				return
			}
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head:
				return
			case atom.Br:
				sb.WriteByte('\n')
				return
			}
		}

		block := n.Type == html.ElementNode && isBlock(n.DataAtom)
		if block {
			lineBreak()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			lineBreak()
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.P || isHeading(n.DataAtom)) {
			sb.WriteByte('\n')
		}
	}
	walk(root)
	return sb.String()
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func isBlock(a atom.Atom) bool {
	if isHeading(a) {
		return true
	}
	switch a {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Li, atom.Ul, atom.Ol, atom.Tr,
		atom.Table, atom.Blockquote, atom.Pre, atom.Header, atom.Footer, atom.Dt, atom.Dd, atom.Hr:
		return true
	}
	return false
}
