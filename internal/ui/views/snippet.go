package views

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
)

// NoSnippet is shown when a result carries no snippet
const NoSnippet = "(no snippet available)"

var spaceRE = regexp.MustCompile(`\s+`)

// highlightTags are the only elements kept from backend markup
var highlightTags = []string{"em", "b", "strong", "mark"}

// SnippetRenderer turns backend snippet markup into terminal text.
// Markup is untrusted: everything except highlight tags is stripped first.
type SnippetRenderer struct {
	policy    *bluemonday.Policy
	highlight lipgloss.Style
}

// NewSnippetRenderer creates a renderer that styles highlighted fragments with highlight
func NewSnippetRenderer(highlight lipgloss.Style) *SnippetRenderer {
	p := bluemonday.NewPolicy()
	p.AllowElements(highlightTags...)
	return &SnippetRenderer{policy: p, highlight: highlight}
}

// Sanitize returns snippet markup with every non-highlight element removed
func (s *SnippetRenderer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}

// Render returns the snippet with highlighted fragments styled.
// With highlight disabled the markup is dropped and plain text returned.
func (s *SnippetRenderer) Render(raw string, highlight bool) string {
	if strings.TrimSpace(raw) == "" {
		return NoSnippet
	}
	if !highlight {
		return s.Plain(raw)
	}

	body, ok := s.parse(raw)
	if !ok {
		return s.Plain(raw)
	}

	var b strings.Builder
	body.Contents().Each(func(_ int, node *goquery.Selection) {
		text := spaceRE.ReplaceAllString(node.Text(), " ")
		if isHighlight(node) {
			b.WriteString(s.highlight.Render(text))
		} else {
			b.WriteString(text)
		}
	})

	out := strings.TrimSpace(b.String())
	if out == "" {
		return NoSnippet
	}
	return out
}

// Plain returns the snippet text with all markup removed, for the pager and clipboard
func (s *SnippetRenderer) Plain(raw string) string {
	body, ok := s.parse(raw)
	if !ok {
		return strings.TrimSpace(spaceRE.ReplaceAllString(raw, " "))
	}
	out := strings.TrimSpace(spaceRE.ReplaceAllString(body.Text(), " "))
	if out == "" {
		return NoSnippet
	}
	return out
}

func (s *SnippetRenderer) parse(raw string) (*goquery.Selection, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s.Sanitize(raw)))
	if err != nil {
		return nil, false
	}
	return doc.Find("body"), true
}

func isHighlight(node *goquery.Selection) bool {
	name := goquery.NodeName(node)
	for _, tag := range highlightTags {
		if name == tag {
			return true
		}
	}
	return false
}
