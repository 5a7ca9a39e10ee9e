// commonmark.go provides the goldmark-backed engine for long-form documents.
package md

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// cmParser is a pre-configured goldmark instance with GFM tables and
// strikethrough. Raw HTML is omitted (goldmark's default), so the output keeps
// the same no-unescaped-input guarantee as the builtin engine.
var cmParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		&safeLinks{schemes: allowedLinkSchemes},
	),
)

// ToCommonMarkHTML converts markdown to HTML with goldmark.
func ToCommonMarkHTML(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := cmParser.Convert([]byte(normalizeNewlines(string(markdown))), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// safeLinks applies the builtin link policy to goldmark's AST: allowed links
// get rel="noopener", all others are unwrapped to their text.
type safeLinks struct {
	schemes []string
}

func (e *safeLinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&safeLinkTransformer{schemes: e.schemes}, 100),
	))
}

type safeLinkTransformer struct {
	schemes []string
}

func (t *safeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	var unsafe []*ast.Link
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if t.allowed(link.Destination) {
				link.SetAttributeString("rel", []byte("noopener"))
			} else {
				unsafe = append(unsafe, link)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, link := range unsafe {
		unwrapNode(link)
	}
}

func (t *safeLinkTransformer) allowed(dest []byte) bool {
	s := strings.ToLower(strings.TrimSpace(string(dest)))
	for _, scheme := range t.schemes {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

// unwrapNode replaces n with its children.
func unwrapNode(n ast.Node) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	for child := n.FirstChild(); child != nil; {
		next := child.NextSibling()
		parent.InsertBefore(parent, n, child)
		child = next
	}
	parent.RemoveChild(parent, n)
}
