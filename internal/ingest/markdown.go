package ingest

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// elements that end a line of lyrics once rendered
var blockElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "blockquote": true, "pre": true, "br": true, "hr": true,
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the markup, keeping one
// line per block so verses stay on their own lines.
func ConvertMarkdownToText(input string) string {
	rendered := string(blackfriday.Run([]byte(input), blackfriday.WithNoExtensions()))

	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return RemoveLinks(input)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	lines := make([]string, 0)
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}

	return RemoveLinks(strings.Join(lines, "\n"))
}
