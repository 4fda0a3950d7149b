// Package htmlparser provides the default implementation of the single
// external collaborator named in the spec: parse_html_file, which
// turns a crawled file into a {url, title, body} Page. The indexer
// depends only on the Parser interface, so callers may substitute any
// other implementation.
package htmlparser

import (
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Page is the plain-text triple the indexer consumes. Title and Body
// must already have HTML tags stripped.
type Page struct {
	URL   string
	Title string
	Body  string
}

// Parser parses one file into a Page.
type Parser interface {
	ParseFile(path string) (Page, error)
}

// DefaultParser extracts <title> and <body> text content using
// golang.org/x/net/html, falling back to the document root's text if
// no <body> element is present.
type DefaultParser struct{}

// ParseFile reads path and parses it as HTML.
func (DefaultParser) ParseFile(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	return Parse(string(data), path)
}

// Parse parses raw HTML content, tagging the result with url.
func Parse(content, url string) (Page, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return Page{}, err
	}

	titleNode := findFirst(doc, "title")
	title := ""
	if titleNode != nil {
		title = textContent(titleNode)
	}

	bodyNode := findFirst(doc, "body")
	body := ""
	if bodyNode != nil {
		body = textContent(bodyNode)
	} else {
		body = textContent(doc)
	}

	return Page{URL: url, Title: title, Body: body}, nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
