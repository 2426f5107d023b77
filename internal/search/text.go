package search

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases s, strips diacritics and collapses whitespace so that
// "Kompetisi  Désain" and "kompetisi desain" compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// PlainText converts an HTML fragment to its visible text, collapsing
// whitespace. Input that is not HTML passes through unchanged.
func PlainText(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.Join(strings.Fields(html), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	// Block elements carry no separating whitespace of their own.
	doc.Find("br, p, li, div, h1, h2, h3, h4, h5, h6, td").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}
