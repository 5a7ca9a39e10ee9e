// Package md renders the wiki's Markdown dialect to HTML.
//
// The builtin renderer is a small line-oriented parser: one open block at a
// time, HTML escaping before any markup is generated, and a fixed sequence of
// inline passes. Content that does not parse as Markdown degrades to escaped
// paragraph text; rendering never fails.
package md

import (
	"fmt"
	"regexp"
	"strings"
)

// Engine selects the Markdown implementation used by RenderWith.
type Engine string

const (
	EngineBuiltin    Engine = "builtin"    // wiki dialect, escape-first
	EngineCommonMark Engine = "commonmark" // goldmark with GFM tables
)

// ParseEngine validates an engine name. An empty name selects the builtin engine.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineBuiltin:
		return EngineBuiltin, nil
	case EngineCommonMark:
		return EngineCommonMark, nil
	default:
		return "", fmt.Errorf("unknown markdown engine %q (valid: builtin, commonmark)", name)
	}
}

// Renderer converts wiki Markdown to HTML. A Renderer holds only compiled
// patterns and is safe for concurrent use.
type Renderer struct {
	heading    *regexp.Regexp
	rule       *regexp.Regexp
	blockquote *regexp.Regexp
	unordered  *regexp.Regexp
	ordered    *regexp.Regexp
	fenceLang  *regexp.Regexp
	inline     *inlineRenderer
}

// NewRenderer creates a Renderer for the wiki dialect.
func NewRenderer() *Renderer {
	return &Renderer{
		heading:    regexp.MustCompile(`^(#{1,6})\s+(.+)$`),
		rule:       regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`),
		blockquote: regexp.MustCompile(`^>\s?(.*)$`),
		unordered:  regexp.MustCompile(`^[-*]\s+(.+)$`),
		ordered:    regexp.MustCompile(`^\d+\.\s+(.+)$`),
		fenceLang:  regexp.MustCompile(`^[A-Za-z0-9_+-]+$`),
		inline:     newInlineRenderer(),
	}
}

var defaultRenderer = NewRenderer()

// Render converts markdown to HTML with the builtin engine.
func Render(markdown string) string {
	return defaultRenderer.Render(markdown)
}

// RenderWith converts markdown to HTML using the given engine.
func RenderWith(engine Engine, markdown string) (string, error) {
	switch engine {
	case "", EngineBuiltin:
		return Render(markdown), nil
	case EngineCommonMark:
		return ToCommonMarkHTML([]byte(markdown))
	default:
		return "", fmt.Errorf("unknown markdown engine %q", engine)
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the characters that are significant in HTML text and
// attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// normalizeNewlines converts CRLF and CR line endings to LF and drops NUL
// bytes, which the inline renderer reserves for placeholders.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\x00", "")
}
