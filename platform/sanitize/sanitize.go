// Package sanitize cleans user supplied free text before it is forwarded to
// external services.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// Text strips HTML markup, decodes entities and collapses runs of whitespace
// into single spaces.
func Text(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, " ")
	result = html.UnescapeString(result)
	// Entities may have encoded markup.
	result = htmlTagRegex.ReplaceAllString(result, " ")
	return strings.Join(strings.Fields(result), " ")
}
