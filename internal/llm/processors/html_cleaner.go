package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTagRe      = regexp.MustCompile(`(?i)<(html|body|div|p|br|li|ul|span|section|article|h[1-6]|table|td)[\s/>]`)
	blankRunRe     = regexp.MustCompile(`[ \t\f\v]+`)
	extraNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// HTMLCleaner turns pasted job-board or résumé-builder markup into plain text
type HTMLCleaner struct {
	removeTags []string
	blockTags  []string
	selectors  []string
}

// NewHTMLCleaner creates a new HTML cleaner instance
func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"form", "input", "button", "select", "textarea",
			"nav", "header", "footer", "aside", "menu",
			"svg", "meta", "link", "title", "base",
		},
		blockTags: []string{
			"p", "div", "li", "br", "tr", "section", "article",
			"h1", "h2", "h3", "h4", "h5", "h6",
		},
		selectors: []string{
			"main", "[role='main']", "article",
			".job-description", ".job-detail", ".posting", ".description",
			".resume", ".cv",
		},
	}
}

// LooksLikeHTML reports whether text contains common block-level markup
func LooksLikeHTML(text string) bool {
	return htmlTagRe.MatchString(text)
}

// ExtractText returns the visible text, one block per line. When a main
// content container is found only its text is kept.
func (hc *HTMLCleaner) ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, tag := range hc.removeTags {
		doc.Find(tag).Remove()
	}

	// Force a line break after each block so list items stay separate
	for _, tag := range hc.blockTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			s.AppendHtml("\n")
		})
	}

	root := doc.Selection
	for _, sel := range hc.selectors {
		if found := doc.Find(sel).First(); found.Length() > 0 && len(strings.TrimSpace(found.Text())) > 50 {
			root = found
			break
		}
	}

	return cleanExtractedText(root.Text()), nil
}

func cleanExtractedText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(blankRunRe.ReplaceAllString(line, " "))
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")
	text = extraNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
