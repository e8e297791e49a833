// Package htmltext turns rich-text article bodies into plain text.
package htmltext

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr, td, blockquote, pre"

// PlainText strips markup from body and collapses whitespace. Input that
// fails to parse as HTML is returned with whitespace collapsed.
func PlainText(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.Join(strings.Fields(body), " ")
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find(blockElements).AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most maxRunes runes of the body's plain text, cut at a
// word boundary and suffixed with "..." when truncated.
func Excerpt(body string, maxRunes int) string {
	text := PlainText(body)
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return text
	}
	cut := runes[:maxRunes]
	if !unicode.IsSpace(runes[maxRunes]) {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "..."
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if unicode.IsSpace(rs[i]) {
			return i
		}
	}
	return -1
}
