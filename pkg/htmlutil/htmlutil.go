package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// GetText concatenates every text node under `node`.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// Unescape decodes entities in an html fragment, non-breaking spaces become regular spaces.
func Unescape(fragment string) string {
	return strings.ReplaceAll(html.UnescapeString(fragment), "\u00a0", " ")
}

// Trim removes surrounding whitespace, it is idempotent.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// CleanText unescapes a fragment, drops non-printable runes, collapses runs of whitespace and
// trims the result.
func CleanText(fragment string) string {
	text := Unescape(fragment)
	text = removeNonPrintable(text)
	text = innerWhitespace.ReplaceAllString(text, " ")
	return Trim(text)
}
