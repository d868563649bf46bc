// layout/tabs_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-ir/ir"
)

// buildTabGroup assembles bar + content with the given labels; panel 0 starts
// attached.
func buildTabGroup(ctx *ir.Context, labels ...string) *ir.Component {
	group := ir.NewComponent(ctx, ir.ComponentTabGroup)
	bar := ir.NewComponent(ctx, ir.ComponentTabBar)
	content := ir.NewComponent(ctx, ir.ComponentTabContent)
	group.AddChild(bar)
	group.AddChild(content)

	tg := group.EnsureTabGroup()
	for i, label := range labels {
		tab := ir.NewComponent(ctx, ir.ComponentTab)
		tab.Text = label
		tab.CustomData = &ir.TabData{Index: i, Active: i == 0}
		bar.AddChild(tab)

		panel := ir.NewComponent(ctx, ir.ComponentTabPanel)
		tg.Panels = append(tg.Panels, panel)
		if i == 0 {
			content.AddChild(panel)
		}
	}
	return group
}

func TestTabWidthFromLabel(t *testing.T) {
	ctx := ir.NewContext()
	root := ir.NewComponent(ctx, ir.ComponentContainer)
	group := buildTabGroup(ctx, "Tab One")
	root.AddChild(group)

	ComputeTree(root, 640, 480)

	bar := group.Children[0]
	tab := bar.Children[0]
	_, _, w, h, ok := Bounds(tab)
	require.True(t, ok)
	assert.InDelta(t, 7*14*0.55+16+24, w, 0.01)
	assert.Equal(t, float32(36), h)
}

func TestTabWithoutLabelUsesFallbackWidth(t *testing.T) {
	ctx := ir.NewContext()
	root := ir.NewComponent(ctx, ir.ComponentContainer)
	group := buildTabGroup(ctx, "")
	root.AddChild(group)

	ComputeTree(root, 640, 480)

	tab := group.Children[0].Children[0]
	_, _, w, _, ok := Bounds(tab)
	require.True(t, ok)
	assert.Equal(t, float32(80), w)
}

func TestTabGroupStacksBarAboveContent(t *testing.T) {
	ctx := ir.NewContext()
	group := buildTabGroup(ctx, "A", "B")

	ComputeTree(group, 400, 300)

	bar := group.Children[0]
	content := group.Children[1]

	_, by, bw, bh, ok := Bounds(bar)
	require.True(t, ok)
	assert.Equal(t, float32(0), by)
	assert.Equal(t, float32(400), bw)
	assert.Equal(t, float32(44), bh)

	_, cy, cw, ch, ok := Bounds(content)
	require.True(t, ok)
	assert.Equal(t, float32(44), cy)
	assert.Equal(t, float32(400), cw)
	assert.Equal(t, float32(256), ch)

	panel := content.Children[0]
	_, py, pw, ph, ok := Bounds(panel)
	require.True(t, ok)
	assert.Equal(t, float32(44), py)
	assert.Equal(t, float32(400), pw)
	assert.Equal(t, float32(256), ph)
}

func TestTabsFlowLeftToRight(t *testing.T) {
	ctx := ir.NewContext()
	group := buildTabGroup(ctx, "AA", "BB")

	ComputeTree(group, 400, 300)

	bar := group.Children[0]
	first := bar.Children[0]
	second := bar.Children[1]

	x1, _, w1, _, ok := Bounds(first)
	require.True(t, ok)
	x2, _, _, _, ok := Bounds(second)
	require.True(t, ok)

	assert.Equal(t, float32(0), x1)
	assert.Equal(t, x1+w1, x2)
}

func TestTabGroupDefaultSizeWhenUnconstrained(t *testing.T) {
	ctx := ir.NewContext()
	group := buildTabGroup(ctx, "A")

	singlePass(group, Constraints{}, 0, 0)

	_, _, w, h, ok := Bounds(group)
	require.True(t, ok)
	assert.Equal(t, float32(400), w)
	assert.Equal(t, float32(300), h)
}

func TestActivateTabSwapsPanel(t *testing.T) {
	ctx := ir.NewContext()
	group := buildTabGroup(ctx, "A", "B")
	tg := group.TabGroup()
	content := group.Children[1]

	require.Same(t, tg.Panels[0], content.Children[0])

	ActivateTab(group, 1)

	assert.Equal(t, 1, tg.ActiveIndex)
	require.Equal(t, 1, content.ChildCount())
	assert.Same(t, tg.Panels[1], content.Children[0])
	assert.Nil(t, tg.Panels[0].Parent, "deselected panel detaches")

	bar := group.Children[0]
	assert.False(t, bar.Children[0].CustomData.(*ir.TabData).Active)
	assert.True(t, bar.Children[1].CustomData.(*ir.TabData).Active)
}

func TestActivateTabOutOfRangeIsNoOp(t *testing.T) {
	ctx := ir.NewContext()
	group := buildTabGroup(ctx, "A", "B")
	tg := group.TabGroup()
	content := group.Children[1]

	ActivateTab(group, 5)
	ActivateTab(group, -1)

	assert.Equal(t, 0, tg.ActiveIndex)
	assert.Same(t, tg.Panels[0], content.Children[0])
}

func TestTabPanelStacksChildrenWithGap(t *testing.T) {
	ctx := ir.NewContext()
	group := buildTabGroup(ctx, "A")
	panel := group.TabGroup().Panels[0]
	panel.EnsureLayout().Gap = 8

	first := ir.NewComponent(ctx, ir.ComponentContainer)
	first.EnsureStyle().Height = ir.Px(40)
	second := ir.NewComponent(ctx, ir.ComponentContainer)
	second.EnsureStyle().Height = ir.Px(20)
	panel.AddChild(first)
	panel.AddChild(second)

	ComputeTree(group, 400, 300)

	_, y1, _, _, ok := Bounds(first)
	require.True(t, ok)
	_, y2, _, _, ok := Bounds(second)
	require.True(t, ok)

	// Panel starts under the 44px bar.
	assert.Equal(t, float32(44), y1)
	assert.Equal(t, float32(44+40+8), y2)
}
