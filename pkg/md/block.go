// block.go implements the line-oriented block parser.
package md

import (
	"strings"
)

const codeFence = "```"

// blockKind is the type of the single block that may be open while parsing.
type blockKind int

const (
	blockNone blockKind = iota
	blockParagraph
	blockUnorderedList
	blockOrderedList
	blockCode
	blockQuote
)

// block is the currently open block. Headings and rules are written as soon
// as they are seen and never stay open.
type block struct {
	kind  blockKind
	lang  string   // fence info, code blocks only
	lines []string // raw lines, list item bodies or quote bodies
}

type blockParser struct {
	r    *Renderer
	out  strings.Builder
	open block
}

// Render converts markdown to HTML.
func (r *Renderer) Render(markdown string) string {
	text := normalizeNewlines(markdown)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	p := &blockParser{r: r}
	for _, line := range strings.Split(text, "\n") {
		p.feed(line)
	}
	p.closeBlock()

	return p.out.String()
}

// feed advances the parser by one line.
func (p *blockParser) feed(line string) {
	trimmed := strings.TrimSpace(line)

	// Inside a fence everything is content until the exact closing marker.
	if p.open.kind == blockCode {
		if trimmed == codeFence {
			p.closeBlock()
			return
		}
		p.open.lines = append(p.open.lines, line)
		return
	}

	switch {
	case opensFence(trimmed):
		p.closeBlock()
		p.open = block{kind: blockCode, lang: p.fenceLanguage(trimmed[len(codeFence):])}

	case trimmed == "":
		p.closeBlock()

	case p.r.rule.MatchString(trimmed):
		p.closeBlock()
		p.out.WriteString("<hr>\n")

	case p.r.heading.MatchString(trimmed):
		p.closeBlock()
		m := p.r.heading.FindStringSubmatch(trimmed)
		level := len(m[1])
		p.out.WriteString("<h")
		p.out.WriteByte(byte('0' + level))
		p.out.WriteString(">")
		p.out.WriteString(p.r.inline.render(EscapeHTML(strings.TrimSpace(m[2]))))
		p.out.WriteString("</h")
		p.out.WriteByte(byte('0' + level))
		p.out.WriteString(">\n")

	case p.r.blockquote.MatchString(trimmed):
		p.continueBlock(blockQuote)
		m := p.r.blockquote.FindStringSubmatch(trimmed)
		p.open.lines = append(p.open.lines, m[1])

	case p.r.unordered.MatchString(trimmed):
		p.continueBlock(blockUnorderedList)
		m := p.r.unordered.FindStringSubmatch(trimmed)
		p.open.lines = append(p.open.lines, strings.TrimSpace(m[1]))

	case p.r.ordered.MatchString(trimmed):
		p.continueBlock(blockOrderedList)
		m := p.r.ordered.FindStringSubmatch(trimmed)
		p.open.lines = append(p.open.lines, strings.TrimSpace(m[1]))

	default:
		p.continueBlock(blockParagraph)
		p.open.lines = append(p.open.lines, line)
	}
}

// continueBlock keeps the open block when it already has the wanted kind and
// otherwise closes it and opens a fresh one.
func (p *blockParser) continueBlock(kind blockKind) {
	if p.open.kind == kind {
		return
	}
	p.closeBlock()
	p.open = block{kind: kind}
}

// closeBlock writes the open block, if any, and resets the state to none.
func (p *blockParser) closeBlock() {
	b := p.open
	p.open = block{}

	switch b.kind {
	case blockParagraph:
		p.out.WriteString("<p>")
		p.out.WriteString(p.r.inline.render(EscapeHTML(strings.Join(b.lines, "\n"))))
		p.out.WriteString("</p>\n")

	case blockUnorderedList, blockOrderedList:
		tag := "ul"
		if b.kind == blockOrderedList {
			tag = "ol"
		}
		p.out.WriteString("<" + tag + ">\n")
		for _, item := range b.lines {
			p.out.WriteString("<li>")
			p.out.WriteString(p.r.inline.render(EscapeHTML(item)))
			p.out.WriteString("</li>\n")
		}
		p.out.WriteString("</" + tag + ">\n")

	case blockQuote:
		p.out.WriteString("<blockquote><p>")
		p.out.WriteString(p.r.inline.render(EscapeHTML(strings.Join(b.lines, "\n"))))
		p.out.WriteString("</p></blockquote>\n")

	case blockCode:
		p.out.WriteString("<pre><code")
		if b.lang != "" {
			p.out.WriteString(` class="language-`)
			p.out.WriteString(EscapeHTML(b.lang))
			p.out.WriteString(`"`)
		}
		p.out.WriteString(">")
		p.out.WriteString(EscapeHTML(strings.Join(b.lines, "\n")))
		p.out.WriteString("</code></pre>\n")
	}
}

// opensFence reports whether a line starts a code block. A backtick in the
// info string means the line is prose with inline code, not a fence.
func opensFence(trimmed string) bool {
	if !strings.HasPrefix(trimmed, codeFence) {
		return false
	}
	return !strings.Contains(trimmed[len(codeFence):], "`")
}

// fenceLanguage returns the info string of an opening fence when it is a
// plain language identifier.
func (p *blockParser) fenceLanguage(info string) string {
	info = strings.TrimSpace(info)
	if !p.r.fenceLang.MatchString(info) {
		return ""
	}
	return info
}
