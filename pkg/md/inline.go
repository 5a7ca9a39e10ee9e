// inline.go implements the inline passes applied to escaped block content.
package md

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Code spans are swapped out for placeholders before the emphasis and link
// passes and restored last. NUL cannot occur in normalized input.
const (
	codePlaceholderPrefix = "\x00"
	codePlaceholderSuffix = "\x00"
)

// allowedLinkSchemes are the destinations a rendered anchor may point to.
var allowedLinkSchemes = []string{"http:", "https:", "mailto:", "/"}

type inlineRenderer struct {
	code     *regexp.Regexp
	strongEm []*regexp.Regexp
	strong   []*regexp.Regexp
	em       *regexp.Regexp
	link     *regexp.Regexp
	schemes  []string
}

func newInlineRenderer() *inlineRenderer {
	return &inlineRenderer{
		code: regexp.MustCompile("`([^`]+)`"),
		strongEm: []*regexp.Regexp{
			regexp.MustCompile(`\*\*\*(.+?)\*\*\*`),
			regexp.MustCompile(`___(.+?)___`),
		},
		strong: []*regexp.Regexp{
			regexp.MustCompile(`\*\*(.+?)\*\*`),
			regexp.MustCompile(`__(.+?)__`),
		},
		em:      regexp.MustCompile(`\*(.+?)\*`),
		link:    regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`),
		schemes: allowedLinkSchemes,
	}
}

// render applies the inline passes to text that is already HTML-escaped.
func (ir *inlineRenderer) render(escaped string) string {
	var spans []string
	s := ir.code.ReplaceAllStringFunc(escaped, func(match string) string {
		spans = append(spans, match[1:len(match)-1])
		return codePlaceholderPrefix + strconv.Itoa(len(spans)-1) + codePlaceholderSuffix
	})

	for _, re := range ir.strongEm {
		s = re.ReplaceAllString(s, "<strong><em>$1</em></strong>")
	}
	for _, re := range ir.strong {
		s = re.ReplaceAllString(s, "<strong>$1</strong>")
	}
	s = ir.em.ReplaceAllString(s, "<em>$1</em>")
	s = underscoreEmphasis(s)
	s = ir.link.ReplaceAllStringFunc(s, ir.renderLink)
	s = hardBreaks(s)

	for i, span := range spans {
		placeholder := codePlaceholderPrefix + strconv.Itoa(i) + codePlaceholderSuffix
		s = strings.Replace(s, placeholder, "<code>"+span+"</code>", 1)
	}
	return s
}

// renderLink keeps an anchor only for allow-listed destinations; otherwise
// the link text stands alone.
func (ir *inlineRenderer) renderLink(match string) string {
	m := ir.link.FindStringSubmatch(match)
	text, dest := m[1], m[2]
	if !ir.safeDestination(dest) {
		return text
	}
	return `<a href="` + dest + `" rel="noopener">` + text + `</a>`
}

// safeDestination inspects the entity-decoded destination.
func (ir *inlineRenderer) safeDestination(escapedDest string) bool {
	dest := strings.ToLower(strings.TrimSpace(html.UnescapeString(escapedDest)))
	for _, scheme := range ir.schemes {
		if strings.HasPrefix(dest, scheme) {
			return true
		}
	}
	return false
}

// underscoreEmphasis turns _text_ into <em>text</em> when neither underscore
// touches a word character on its outer side, so snake_case stays intact.
func underscoreEmphasis(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '_' || wordBefore(s, i) {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := closingUnderscore(s, i+1)
		if end < 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString("<em>")
		b.WriteString(s[i+1 : end])
		b.WriteString("</em>")
		i = end + 1
	}
	return b.String()
}

// closingUnderscore returns the index of the first underscore after at least
// one byte of content that is not followed by a word character, or -1. The
// span never crosses a newline.
func closingUnderscore(s string, from int) int {
	if from >= len(s) || s[from] == '\n' {
		return -1
	}
	for j := from + 1; j < len(s); j++ {
		switch s[j] {
		case '\n':
			return -1
		case '_':
			if !wordAfter(s, j+1) {
				return j
			}
		}
	}
	return -1
}

func wordBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// hardBreaks converts lines ending in exactly two spaces into <br> breaks.
func hardBreaks(s string) string {
	if !strings.Contains(s, "  \n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 0; i < len(lines)-1; i++ {
		line := lines[i]
		if strings.HasSuffix(line, "  ") && !strings.HasSuffix(line, "   ") {
			lines[i] = strings.TrimSuffix(line, "  ") + "<br>"
		}
	}
	return strings.Join(lines, "\n")
}
