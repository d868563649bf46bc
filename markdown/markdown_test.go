// markdown/markdown_test.go
package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-ir/ir"
)

func convert(t *testing.T, source string) *ir.Component {
	t.Helper()
	root := Convert(ir.NewContext(), source)
	require.NotNil(t, root)
	require.Equal(t, ir.ComponentColumn, root.Type)
	return root
}

func TestHeadingConversion(t *testing.T) {
	root := convert(t, "# Title\n\n## Section\n")
	require.Equal(t, 2, root.ChildCount())

	h1 := root.Children[0]
	assert.Equal(t, ir.ComponentHeading, h1.Type)
	assert.Equal(t, "Title", h1.Text)
	assert.Equal(t, float32(32), h1.Style.Font.Size)
	assert.True(t, h1.Style.Font.Bold)

	hd := h1.CustomData.(*ir.HeadingData)
	assert.Equal(t, 1, hd.Level)
	assert.Equal(t, "Title", hd.Text)

	h2 := root.Children[1]
	assert.Equal(t, 2, h2.CustomData.(*ir.HeadingData).Level)
	assert.Equal(t, float32(28), h2.Style.Font.Size)
}

func TestPlainParagraphBecomesText(t *testing.T) {
	root := convert(t, "Just a sentence.\n")
	require.Equal(t, 1, root.ChildCount())
	p := root.Children[0]
	assert.Equal(t, ir.ComponentText, p.Type)
	assert.Equal(t, "Just a sentence.", p.Text)
}

func TestStyledParagraphBecomesInlineRun(t *testing.T) {
	root := convert(t, "Mix of **bold** and *italic* and `code`.\n")
	require.Equal(t, 1, root.ChildCount())

	run := root.Children[0]
	assert.Equal(t, ir.ComponentInlineContainer, run.Type)
	assert.Equal(t, ir.DirectionRow, run.Layout.Direction)

	types := map[ir.ComponentType]int{}
	for _, span := range run.Children {
		types[span.Type]++
	}
	assert.Equal(t, 1, types[ir.ComponentBold])
	assert.Equal(t, 1, types[ir.ComponentItalic])
	assert.Equal(t, 1, types[ir.ComponentInlineCode])
	assert.Greater(t, types[ir.ComponentText], 0)
}

func TestLinkSpan(t *testing.T) {
	root := convert(t, "See [docs](https://example.com \"Docs\").\n")
	run := root.Children[0]
	require.Equal(t, ir.ComponentInlineContainer, run.Type)

	var link *ir.Component
	for _, span := range run.Children {
		if span.Type == ir.ComponentLink {
			link = span
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, "docs", link.Text)
	ld := link.CustomData.(*ir.LinkData)
	assert.Equal(t, "https://example.com", ld.URL)
	assert.Equal(t, "Docs", ld.Title)
}

func TestUnorderedList(t *testing.T) {
	root := convert(t, "- one\n- two\n- three\n")
	require.Equal(t, 1, root.ChildCount())

	list := root.Children[0]
	assert.Equal(t, ir.ComponentList, list.Type)
	ld := list.CustomData.(*ir.ListData)
	assert.False(t, ld.Ordered)
	require.Equal(t, 3, list.ChildCount())

	for i, item := range list.Children {
		assert.Equal(t, ir.ComponentListItem, item.Type)
		assert.Equal(t, i, item.CustomData.(*ir.ListItemData).Index)
	}
	assert.Equal(t, "two", list.Children[1].Children[0].Text)
}

func TestOrderedListKeepsStart(t *testing.T) {
	root := convert(t, "3. three\n4. four\n")
	list := root.Children[0]
	ld := list.CustomData.(*ir.ListData)
	assert.True(t, ld.Ordered)
	assert.Equal(t, 3, ld.Start)
}

func TestCodeBlockLanguageIsCanonical(t *testing.T) {
	root := convert(t, "```golang\nfmt.Println(\"hi\")\n```\n")
	require.Equal(t, 1, root.ChildCount())

	cb := root.Children[0]
	assert.Equal(t, ir.ComponentCodeBlock, cb.Type)
	data := cb.CustomData.(*ir.CodeBlockData)
	assert.Equal(t, "go", data.Language, "golang normalizes to the canonical lexer name")
	assert.Equal(t, "fmt.Println(\"hi\")", data.Code)
	assert.Equal(t, cb.Text, data.Code)
	assert.Equal(t, 1, data.StartLine)
}

func TestBlockquoteNestsBlocks(t *testing.T) {
	root := convert(t, "> quoted line\n")
	bq := root.Children[0]
	assert.Equal(t, ir.ComponentBlockquote, bq.Type)
	assert.Equal(t, float32(16), bq.Style.Padding.Left)
	require.Equal(t, 1, bq.ChildCount())
	assert.Equal(t, "quoted line", bq.Children[0].Text)
}

func TestHorizontalRule(t *testing.T) {
	root := convert(t, "above\n\n---\n\nbelow\n")
	require.Equal(t, 3, root.ChildCount())
	assert.Equal(t, ir.ComponentHorizontalRule, root.Children[1].Type)
}

func TestTableConversion(t *testing.T) {
	src := "| Name | Count |\n|:-----|------:|\n| a | 1 |\n| b | 2 |\n"
	root := convert(t, src)
	require.Equal(t, 1, root.ChildCount())

	table := root.Children[0]
	assert.Equal(t, ir.ComponentTable, table.Type)

	data := table.CustomData.(*ir.TableData)
	require.Len(t, data.Columns, 2)
	assert.Equal(t, "Name", data.Columns[0].Title)
	assert.Equal(t, ir.TextAlignRight, data.Columns[1].Alignment)

	require.Equal(t, 2, table.ChildCount())
	header := table.Children[0]
	assert.Equal(t, ir.ComponentTableHeader, header.Type)
	headerCell := header.Children[0].Children[0]
	assert.True(t, headerCell.CustomData.(*ir.TableCellData).IsHeader)

	body := table.Children[1]
	assert.Equal(t, ir.ComponentTableBody, body.Type)
	require.Equal(t, 2, body.ChildCount())
	assert.Equal(t, "a", body.Children[0].Children[0].Text)
	assert.Equal(t, "2", body.Children[1].Children[1].Text)
	assert.False(t, body.Children[0].Children[0].CustomData.(*ir.TableCellData).IsHeader)
}

func TestEmptySourceYieldsEmptyColumn(t *testing.T) {
	root := convert(t, "")
	assert.Equal(t, 0, root.ChildCount())
}
