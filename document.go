package main

import (
	"errors"
	"io/fs"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// commonMark brings gomarkdown in line with CommonMark: intra-word
// underscores are literal and ATX headings need a space after the '#'.
const commonMark = parser.NoIntraEmphasis | parser.SpaceHeadings

// bodyExtensions is the fixed extension set used for page bodies. Fenced
// code is part of CommonMark proper; strikethrough is the only addition.
const bodyExtensions = commonMark | parser.FencedCode | parser.Strikethrough

var errInvalidUTF8 = errors.New("contents are not valid UTF-8")

type document struct {
	path     string
	contents []byte
}

func loadDocument(fsys fs.FS, path string) (*document, error) {
	contents, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(contents) {
		return nil, &IOError{Op: "read", Path: path, Err: errInvalidUTF8}
	}
	return &document{path: path, contents: contents}, nil
}

// Title returns the text of the first level-1 heading, or "" if there is none.
func (d *document) Title() string {
	doc := markdown.Parse(d.contents, parser.NewWithExtensions(commonMark))
	return extractTitle(doc)
}

// Render converts the document body to an HTML fragment.
func (d *document) Render() string {
	doc := markdown.Parse(d.contents, parser.NewWithExtensions(bodyExtensions))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.FlagsNone})
	return string(markdown.Render(doc, renderer))
}

// extractTitle walks the tree once. Inside the first level-1 heading each
// text run replaces the previous one, so "# A *B* C" yields " C".
func extractTitle(doc ast.Node) string {
	var title string
	inTitle := false

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Heading:
			if n.Level != 1 {
				return ast.GoToNext
			}
			if entering {
				inTitle = true
			} else if inTitle {
				return ast.Terminate
			}
		case *ast.Text:
			if entering && inTitle {
				title = string(n.Literal)
			}
		}
		return ast.GoToNext
	})

	return title
}
