package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CountRunes returns the number of characters in text.
func CountRunes(text string) int {
	return len([]rune(text))
}

// PlainText renders the visible text of an HTML fragment with runs of
// whitespace collapsed to single spaces.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most limit characters of the plain text of html,
// cut at a word boundary when possible and suffixed with "…" if shortened.
func Excerpt(html string, limit int) string {
	plain := PlainText(html)
	if limit <= 0 || CountRunes(plain) <= limit {
		return plain
	}

	runes := []rune(plain)[:limit]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
