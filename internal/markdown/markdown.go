// Package markdown flattens Markdown into plain terminal text. Summaries from
// the chat endpoint are model output and sometimes carry emphasis, lists or
// code; the terminal shows them as readable text instead of raw markup.
package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Flatten renders src as plain text. Paragraphs are separated by a blank line,
// list items are bulleted ("• " or "1. ") and indented by nesting depth,
// emphasis and link markup are dropped, and code is kept verbatim.
func Flatten(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	f := &flattener{src: source}
	_ = ast.Walk(doc, f.visit)
	return strings.TrimRight(f.out.String(), "\n")
}

type flattener struct {
	src []byte
	out strings.Builder
	cur strings.Builder

	listDepth  int
	marker     string
	lastInList bool
	wrote      bool
}

func (f *flattener) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.List:
		if entering {
			f.listDepth++
		} else {
			f.listDepth--
		}

	case *ast.ListItem:
		if entering {
			f.marker = listMarker(node)
		}

	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		if entering {
			f.cur.Reset()
		} else {
			f.block(f.cur.String())
		}

	case *ast.Text:
		if entering {
			f.cur.Write(node.Segment.Value(f.src))
			switch {
			case node.HardLineBreak():
				f.cur.WriteString("\n")
			case node.SoftLineBreak():
				f.cur.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			f.cur.Write(node.Value)
		}

	case *ast.AutoLink:
		if entering {
			f.cur.Write(node.Label(f.src))
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			var lines []string
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				lines = append(lines, strings.TrimRight(string(seg.Value(f.src)), "\n"))
			}
			f.block(strings.Join(lines, "\n"))
		}
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		if entering {
			f.block("---")
		}

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

// block appends one finished block of text.
func (f *flattener) block(s string) {
	inList := f.listDepth > 0
	if f.wrote {
		if inList && f.lastInList {
			f.out.WriteString("\n")
		} else {
			f.out.WriteString("\n\n")
		}
	}

	if inList {
		indent := strings.Repeat("  ", f.listDepth-1)
		prefix := indent + f.marker
		if f.marker == "" {
			prefix = indent + "  "
		}
		f.marker = ""
		s = prefix + s
	}

	f.out.WriteString(s)
	f.wrote = true
	f.lastInList = inList
}

// listMarker returns the bullet for a list item.
func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "• "
	}
	idx := 0
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		idx++
	}
	return fmt.Sprintf("%d. ", list.Start+idx)
}
