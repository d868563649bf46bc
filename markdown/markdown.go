// markdown/markdown.go
//
// Package markdown converts markdown source into an IR component subtree
// using the markdown component family (headings, lists, blockquotes, code
// blocks, links, inline spans, tables).
package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/waozixyz/kryon-ir/ir"
)

// Convert parses source and builds a Column container holding one component
// per top-level block. The result is layout-ready; ids come from ctx.
func Convert(ctx *ir.Context, source string) *ir.Component {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables | parser.Strikethrough | parser.OrderedListStart)
	doc := p.Parse([]byte(source))

	root := ir.NewComponent(ctx, ir.ComponentColumn)
	root.EnsureLayout().Gap = 8

	b := &builder{ctx: ctx}
	for _, child := range doc.GetChildren() {
		if c := b.block(child); c != nil {
			root.AddChild(c)
		}
	}
	return root
}

type builder struct {
	ctx *ir.Context
}

func (b *builder) block(node ast.Node) *ir.Component {
	switch n := node.(type) {
	case *ast.Heading:
		c := ir.NewComponent(b.ctx, ir.ComponentHeading)
		c.Text = inlineText(n)
		c.CustomData = &ir.HeadingData{
			Level:  n.Level,
			Text:   c.Text,
			IDAttr: n.HeadingID,
		}
		c.EnsureStyle().Font.Size = headingFontSize(n.Level)
		c.Style.Font.Bold = true
		return c
	case *ast.Paragraph:
		return b.inlineRun(n)
	case *ast.BlockQuote:
		c := ir.NewComponent(b.ctx, ir.ComponentBlockquote)
		c.CustomData = &ir.BlockquoteData{Depth: 1}
		c.EnsureStyle().Padding.Left = 16
		for _, child := range n.GetChildren() {
			if sub := b.block(child); sub != nil {
				c.AddChild(sub)
			}
		}
		return c
	case *ast.List:
		return b.list(n)
	case *ast.CodeBlock:
		c := ir.NewComponent(b.ctx, ir.ComponentCodeBlock)
		code := strings.TrimRight(string(n.Literal), "\n")
		c.Text = code
		c.CustomData = &ir.CodeBlockData{
			Language:  canonicalLanguage(string(n.Info)),
			Code:      code,
			StartLine: 1,
		}
		return c
	case *ast.HorizontalRule:
		return ir.NewComponent(b.ctx, ir.ComponentHorizontalRule)
	case *ast.Table:
		return b.table(n)
	}
	return nil
}

// inlineRun flattens a paragraph into a text component, or an inline
// container when the paragraph mixes styled spans and links.
func (b *builder) inlineRun(n ast.Node) *ir.Component {
	children := n.GetChildren()
	plain := true
	for _, child := range children {
		if _, ok := child.(*ast.Text); !ok {
			plain = false
			break
		}
	}
	if plain {
		c := ir.NewComponent(b.ctx, ir.ComponentText)
		c.Text = inlineText(n)
		return c
	}

	run := ir.NewComponent(b.ctx, ir.ComponentInlineContainer)
	run.EnsureLayout().Direction = ir.DirectionRow
	for _, child := range children {
		if span := b.inline(child); span != nil {
			run.AddChild(span)
		}
	}
	return run
}

func (b *builder) inline(node ast.Node) *ir.Component {
	switch n := node.(type) {
	case *ast.Text:
		if len(n.Literal) == 0 {
			return nil
		}
		c := ir.NewComponent(b.ctx, ir.ComponentText)
		c.Text = string(n.Literal)
		return c
	case *ast.Strong:
		c := ir.NewComponent(b.ctx, ir.ComponentBold)
		c.Text = inlineText(n)
		c.EnsureStyle().Font.Bold = true
		return c
	case *ast.Emph:
		c := ir.NewComponent(b.ctx, ir.ComponentItalic)
		c.Text = inlineText(n)
		c.EnsureStyle().Font.Italic = true
		return c
	case *ast.Del:
		c := ir.NewComponent(b.ctx, ir.ComponentStrikethrough)
		c.Text = inlineText(n)
		return c
	case *ast.Code:
		c := ir.NewComponent(b.ctx, ir.ComponentInlineCode)
		c.Text = string(n.Literal)
		return c
	case *ast.Link:
		c := ir.NewComponent(b.ctx, ir.ComponentLink)
		c.Text = inlineText(n)
		c.CustomData = &ir.LinkData{
			URL:   string(n.Destination),
			Title: string(n.Title),
		}
		return c
	case *ast.Image:
		c := ir.NewComponent(b.ctx, ir.ComponentImage)
		c.CustomData = &ir.ImageData{
			Src: string(n.Destination),
			Alt: inlineText(n),
		}
		return c
	}
	return nil
}

func (b *builder) list(n *ast.List) *ir.Component {
	c := ir.NewComponent(b.ctx, ir.ComponentList)
	ordered := n.ListFlags&ast.ListTypeOrdered != 0
	c.CustomData = &ir.ListData{
		Ordered: ordered,
		Start:   max(n.Start, 1),
		Tight:   n.Tight,
	}
	idx := 0
	for _, child := range n.GetChildren() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		li := ir.NewComponent(b.ctx, ir.ComponentListItem)
		li.CustomData = &ir.ListItemData{Index: idx}
		for _, sub := range item.GetChildren() {
			if blockC := b.block(sub); blockC != nil {
				li.AddChild(blockC)
			}
		}
		c.AddChild(li)
		idx++
	}
	return c
}

func (b *builder) table(n *ast.Table) *ir.Component {
	c := ir.NewComponent(b.ctx, ir.ComponentTable)
	data := &ir.TableData{Style: ir.TableStyle{Borders: true}}
	c.CustomData = data

	for _, section := range n.GetChildren() {
		var sectionType ir.ComponentType
		isHeader := false
		switch section.(type) {
		case *ast.TableHeader:
			sectionType, isHeader = ir.ComponentTableHeader, true
		case *ast.TableBody:
			sectionType = ir.ComponentTableBody
		case *ast.TableFooter:
			sectionType = ir.ComponentTableFooter
		default:
			continue
		}
		sec := ir.NewComponent(b.ctx, sectionType)
		for _, rowNode := range section.GetChildren() {
			row, ok := rowNode.(*ast.TableRow)
			if !ok {
				continue
			}
			rowC := ir.NewComponent(b.ctx, ir.ComponentTableRow)
			rowC.EnsureLayout().Direction = ir.DirectionRow
			for _, cellNode := range row.GetChildren() {
				cell, ok := cellNode.(*ast.TableCell)
				if !ok {
					continue
				}
				cellC := ir.NewComponent(b.ctx, ir.ComponentTableCell)
				cellC.Text = inlineText(cell)
				cellC.CustomData = &ir.TableCellData{
					ColSpan:   1,
					RowSpan:   1,
					IsHeader:  isHeader,
					Alignment: cellAlign(cell.Align),
				}
				rowC.AddChild(cellC)
				if isHeader {
					data.Columns = append(data.Columns, ir.TableColumn{
						Title:     cellC.Text,
						Alignment: cellAlign(cell.Align),
					})
				}
			}
			sec.AddChild(rowC)
		}
		c.AddChild(sec)
	}
	return c
}

func cellAlign(a ast.CellAlignFlags) ir.TextAlign {
	switch a {
	case ast.TableAlignmentCenter:
		return ir.TextAlignCenter
	case ast.TableAlignmentRight:
		return ir.TextAlignRight
	default:
		return ir.TextAlignLeft
	}
}

// canonicalLanguage normalizes a fenced-code info string to the lexer's
// canonical name, so "golang" and "go" persist identically.
func canonicalLanguage(info string) string {
	info = strings.TrimSpace(info)
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		info = info[:i]
	}
	if info == "" {
		return ""
	}
	if lx := lexers.Get(info); lx != nil {
		return strings.ToLower(lx.Config().Name)
	}
	return strings.ToLower(info)
}

func headingFontSize(level int) float32 {
	sizes := [...]float32{32, 28, 24, 20, 18, 16}
	if level >= 1 && level <= len(sizes) {
		return sizes[level-1]
	}
	return 16
}

// inlineText concatenates the literal text of a node's inline descendants.
func inlineText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Literal)
		case *ast.Code:
			b.Write(t.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}
