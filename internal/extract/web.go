package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DecodeWebPage fetches the URL and returns its visible text with
// script/style/navigation/header/footer content stripped and blank lines
// removed.
func (e *Extractor) DecodeWebPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", decodeErr("web", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", decodeErr("web", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeErr("web", fmt.Errorf("GET %s returned status %d", pageURL, resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", decodeErr("web", err)
	}

	doc.Find("script, style, noscript, header, footer, nav").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var lines []string
	for _, node := range root.Nodes {
		collectTextLines(node, &lines)
	}
	return strings.Join(lines, "\n"), nil
}

// collectTextLines appends one trimmed line per non-blank text node, in
// document order.
func collectTextLines(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*lines = append(*lines, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextLines(c, lines)
	}
}
