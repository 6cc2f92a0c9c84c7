package clean

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	markupRe     = regexp.MustCompile(`<[^<>]+>`)
	blockBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>|</h[1-6]>|</tr>`)
	listItemRe   = regexp.MustCompile(`(?i)<li[^>]*>`)
	imageRe      = regexp.MustCompile(`(?i)<img[^>]*>`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
)

// HasMarkup reports whether s contains something tag-shaped.
func HasMarkup(s string) bool { return markupRe.MatchString(s) }

// StripMarkup turns an HTML-ish description into plain text, keeping line
// structure and list bullets.
func StripMarkup(s string) string {
	s = blockBreakRe.ReplaceAllString(s, "\n")
	s = listItemRe.ReplaceAllString(s, "• ")
	s = imageRe.ReplaceAllString(s, "")
	s = dropTags(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")

	s = blankRunRe.ReplaceAllString(s, "\n\n")
	s = spaceRunRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// dropTags removes every remaining tag, then decodes entities. A "<" that
// opens no tag is plain text and is kept.
func dropTags(s string) string {
	return decodeEntities(markupRe.ReplaceAllString(s, ""))
}

// decodeEntities runs tag-free text through the HTML tokenizer, which decodes
// named and numeric entities. Any "<" left is escaped first so it stays text.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	escaped := strings.ReplaceAll(s, "<", "&lt;")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(escaped))
	if err != nil {
		return html.UnescapeString(s)
	}
	return doc.Text()
}
