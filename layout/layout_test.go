// layout/layout_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-ir/ir"
)

func newTree(t *testing.T) (*ir.Context, *ir.Component) {
	t.Helper()
	ctx := ir.NewContext()
	root := ir.NewComponent(ctx, ir.ComponentContainer)
	return ctx, root
}

func TestComputeTreeFillsViewport(t *testing.T) {
	_, root := newTree(t)
	ComputeTree(root, 800, 600)

	x, y, w, h, ok := Bounds(root)
	require.True(t, ok)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
	assert.Equal(t, float32(800), w)
	assert.Equal(t, float32(600), h)
}

func TestExplicitPixelsClampedToConstraints(t *testing.T) {
	ctx, root := newTree(t)
	child := ir.NewComponent(ctx, ir.ComponentContainer)
	child.EnsureStyle().Width = ir.Px(500)
	child.Style.Height = ir.Px(120)
	root.AddChild(child)

	ComputeTree(root, 300, 300)

	_, _, w, h, ok := Bounds(child)
	require.True(t, ok)
	assert.Equal(t, float32(300), w, "width must clamp to the max constraint")
	assert.Equal(t, float32(120), h)
}

func TestPercentResolvesAgainstParent(t *testing.T) {
	ctx, root := newTree(t)
	child := ir.NewComponent(ctx, ir.ComponentContainer)
	child.EnsureStyle().Width = ir.Percent(50)
	child.Style.Height = ir.Px(40)
	root.AddChild(child)

	ComputeTree(root, 400, 300)

	_, _, w, _, ok := Bounds(child)
	require.True(t, ok)
	assert.Equal(t, float32(200), w)
}

func TestColumnFlowWithGap(t *testing.T) {
	ctx, root := newTree(t)
	root.EnsureLayout().Gap = 10

	first := ir.NewComponent(ctx, ir.ComponentContainer)
	first.EnsureStyle().Height = ir.Px(50)
	second := ir.NewComponent(ctx, ir.ComponentContainer)
	second.EnsureStyle().Height = ir.Px(30)
	root.AddChild(first)
	root.AddChild(second)

	ComputeTree(root, 200, 400)

	_, y1, _, _, ok := Bounds(first)
	require.True(t, ok)
	_, y2, _, _, ok := Bounds(second)
	require.True(t, ok)

	assert.Equal(t, float32(0), y1)
	assert.Equal(t, float32(60), y2, "gap goes between children, not after")
}

func TestRowFlowConsumesConstraintWindow(t *testing.T) {
	ctx, root := newTree(t)
	row := ir.NewComponent(ctx, ir.ComponentRow)
	root.AddChild(row)

	wide := ir.NewComponent(ctx, ir.ComponentContainer)
	wide.EnsureStyle().Width = ir.Px(150)
	wide.Style.Height = ir.Px(20)
	greedy := ir.NewComponent(ctx, ir.ComponentContainer)
	greedy.EnsureStyle().Width = ir.Px(500)
	greedy.Style.Height = ir.Px(20)
	row.AddChild(wide)
	row.AddChild(greedy)

	ComputeTree(root, 200, 100)

	_, _, w1, _, ok := Bounds(wide)
	require.True(t, ok)
	x2, _, w2, _, ok := Bounds(greedy)
	require.True(t, ok)

	assert.Equal(t, float32(150), w1)
	assert.Equal(t, float32(150), x2)
	assert.Equal(t, float32(50), w2, "second child cannot claim consumed space")
}

func TestPaddingOffsetsChildren(t *testing.T) {
	ctx, root := newTree(t)
	root.EnsureStyle().Padding = ir.UniformSpacing(12)
	child := ir.NewComponent(ctx, ir.ComponentContainer)
	child.EnsureStyle().Height = ir.Px(10)
	root.AddChild(child)

	ComputeTree(root, 100, 100)

	x, y, w, _, ok := Bounds(child)
	require.True(t, ok)
	assert.Equal(t, float32(12), x)
	assert.Equal(t, float32(12), y)
	assert.Equal(t, float32(76), w)
}

func TestIdempotentLayout(t *testing.T) {
	ctx, root := newTree(t)
	root.EnsureLayout().Gap = 4
	for i := 0; i < 3; i++ {
		child := ir.NewComponent(ctx, ir.ComponentText)
		child.Text = "row"
		root.AddChild(child)
	}

	ComputeTree(root, 320, 240)
	type box struct{ x, y, w, h float32 }
	first := map[uint32]box{}
	root.Walk(func(c *ir.Component) bool {
		st := c.LayoutState
		first[c.ID] = box{st.X, st.Y, st.Width, st.Height}
		return true
	})

	ComputeTree(root, 320, 240)
	root.Walk(func(c *ir.Component) bool {
		st := c.LayoutState
		assert.Equal(t, first[c.ID], box{st.X, st.Y, st.Width, st.Height}, "component %d moved", c.ID)
		return true
	})
}

func TestViewportChangeInvalidates(t *testing.T) {
	ctx, root := newTree(t)
	child := ir.NewComponent(ctx, ir.ComponentContainer)
	child.EnsureStyle().Width = ir.Percent(100)
	child.Style.Height = ir.Px(10)
	root.AddChild(child)

	ComputeTree(root, 100, 100)
	_, _, w, _, _ := Bounds(child)
	assert.Equal(t, float32(100), w)

	ComputeTree(root, 250, 100)
	_, _, w, _, _ = Bounds(child)
	assert.Equal(t, float32(250), w)
}

func TestInvisibleNodesCollapse(t *testing.T) {
	ctx, root := newTree(t)
	hidden := ir.NewComponent(ctx, ir.ComponentContainer)
	hidden.EnsureStyle().Visible = false
	hidden.Style.Height = ir.Px(80)
	after := ir.NewComponent(ctx, ir.ComponentContainer)
	after.EnsureStyle().Height = ir.Px(10)
	root.AddChild(hidden)
	root.AddChild(after)

	ComputeTree(root, 100, 100)

	_, y, _, _, ok := Bounds(after)
	require.True(t, ok)
	assert.Equal(t, float32(0), y, "hidden children take no space")
}

func TestTextMeasureCallback(t *testing.T) {
	SetTextMeasure(func(text string, fontSize, maxWidth float32) (float32, float32) {
		return float32(len(text)) * 7, fontSize + 4
	})
	defer SetTextMeasure(nil)

	ctx, root := newTree(t)
	text := ir.NewComponent(ctx, ir.ComponentText)
	text.Text = "abcd"
	text.EnsureStyle().Font.Size = 16
	root.AddChild(text)

	ComputeTree(root, 500, 500)

	_, _, w, h, ok := Bounds(text)
	require.True(t, ok)
	assert.Equal(t, float32(28), w)
	assert.Equal(t, float32(20), h)
}

func TestTextEstimateFallback(t *testing.T) {
	SetTextMeasure(nil)

	ctx, root := newTree(t)
	text := ir.NewComponent(ctx, ir.ComponentText)
	text.Text = "abcdefgh"
	text.EnsureStyle().Font.Size = 10
	root.AddChild(text)

	ComputeTree(root, 500, 500)

	_, _, w, _, ok := Bounds(text)
	require.True(t, ok)
	assert.Equal(t, float32(40), w, "8 chars * 10px * 0.5")
}

func TestJustifyCenterColumn(t *testing.T) {
	ctx, root := newTree(t)
	root.EnsureLayout().JustifyContent = ir.AlignCenter
	child := ir.NewComponent(ctx, ir.ComponentContainer)
	child.EnsureStyle().Height = ir.Px(50)
	root.AddChild(child)

	ComputeTree(root, 100, 200)

	_, y, _, _, ok := Bounds(child)
	require.True(t, ok)
	assert.Equal(t, float32(75), y)
}

func TestAlignItemsStretch(t *testing.T) {
	ctx, root := newTree(t)
	root.EnsureLayout().AlignItems = ir.AlignStretch
	child := ir.NewComponent(ctx, ir.ComponentContainer)
	child.EnsureStyle().Height = ir.Px(30)
	child.Style.Width = ir.Px(20)
	root.AddChild(child)

	ComputeTree(root, 120, 120)

	_, _, w, _, ok := Bounds(child)
	require.True(t, ok)
	assert.Equal(t, float32(120), w, "stretch fills the cross axis")
}

func TestNilSafety(t *testing.T) {
	assert.NotPanics(t, func() {
		ComputeTree(nil, 100, 100)
		singlePass(nil, Constraints{}, 0, 0)
	})

	_, _, _, _, ok := Bounds(nil)
	assert.False(t, ok)
}

func TestReferenceNodesAreSkipped(t *testing.T) {
	ctx, root := newTree(t)
	ref := ir.NewComponent(ctx, ir.ComponentContainer)
	ref.ComponentRef = "Card"
	root.AddChild(ref)

	ComputeTree(root, 100, 100)

	_, _, _, _, ok := Bounds(ref)
	assert.False(t, ok, "unexpanded references must not be layout-walked")
}
