package md

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ImportOptions configures the HTML to markdown conversion.
type ImportOptions struct {
	// KeepComments keeps HTML comments instead of stripping them before conversion.
	KeepComments bool
}

var (
	htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	scriptPattern      = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

// FromHTML converts a legacy HTML body to wiki markdown.
func FromHTML(html string) (string, error) {
	return FromHTMLWithOptions(html, ImportOptions{})
}

// FromHTMLWithOptions converts a legacy HTML body to wiki markdown with
// configurable options. Script and style elements are always dropped.
func FromHTMLWithOptions(html string, opts ImportOptions) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	html = scriptPattern.ReplaceAllString(html, "")
	if !opts.KeepComments {
		html = htmlCommentPattern.ReplaceAllString(html, "")
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	// Normalize line endings and trim so imported bodies compare cleanly
	return strings.TrimSpace(normalizeNewlines(markdown)), nil
}
