// ir/component_test.go
package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildOrderAndCount(t *testing.T) {
	ctx := NewContext()
	parent := NewComponent(ctx, ComponentColumn)
	a := NewComponent(ctx, ComponentText)
	b := NewComponent(ctx, ComponentText)
	c := NewComponent(ctx, ComponentText)

	parent.AddChild(a)
	parent.AddChild(c)
	parent.InsertChild(1, b)

	require.Equal(t, 3, parent.ChildCount())
	assert.Equal(t, []*Component{a, b, c}, parent.Children)
	for _, child := range parent.Children {
		assert.Same(t, parent, child.Parent)
	}

	require.True(t, parent.RemoveChild(b))
	assert.Equal(t, []*Component{a, c}, parent.Children)
	assert.Nil(t, b.Parent)
	assert.False(t, parent.RemoveChild(b))
}

func TestContextIDsAreUnique(t *testing.T) {
	ctx := NewContext()
	seen := map[uint32]bool{}
	for i := 0; i < 100; i++ {
		id := ctx.NextID()
		require.False(t, seen[id])
		seen[id] = true
	}
	for i := 0; i < 100; i++ {
		id := ctx.NextExpansionID()
		require.False(t, seen[id], "expansion id %d collided", id)
		seen[id] = true
	}
}

func TestObserveIDAdvancesCounter(t *testing.T) {
	ctx := NewContext()
	ctx.ObserveID(500)
	assert.Equal(t, uint32(501), ctx.NextID())
}

func TestMarkDirtyPropagatesUp(t *testing.T) {
	ctx := NewContext()
	root := NewComponent(ctx, ComponentContainer)
	child := NewComponent(ctx, ComponentText)
	root.AddChild(child)

	root.LayoutState.Valid = true
	child.LayoutState.Valid = true

	child.MarkDirty()
	assert.False(t, child.LayoutState.Valid)
	assert.False(t, root.LayoutState.Valid)
	assert.True(t, root.LayoutState.Dirty)
}

func TestComponentTypeNameTable(t *testing.T) {
	got, ok := ComponentTypeFromString("tabgroup")
	require.True(t, ok)
	assert.Equal(t, ComponentTabGroup, got)

	got, ok = ComponentTypeFromString("Body")
	require.True(t, ok)
	assert.Equal(t, ComponentContainer, got)

	got, ok = ComponentTypeFromString("SomethingNew")
	assert.False(t, ok)
	assert.Equal(t, ComponentContainer, got)
}

func TestCloneIsDeep(t *testing.T) {
	ctx := NewContext()
	root := NewComponent(ctx, ComponentColumn)
	root.EnsureStyle().Padding = UniformSpacing(4)
	root.EnsureLayout().Gap = 6

	text := NewComponent(ctx, ComponentText)
	text.Text = "hello"
	text.CustomData = &LinkData{URL: "https://example.com"}
	root.AddChild(text)

	dup := root.Clone()
	require.Equal(t, 1, dup.ChildCount())
	assert.Equal(t, "hello", dup.Children[0].Text)

	dup.Style.Padding.Top = 99
	dup.Children[0].Text = "changed"
	if link, ok := dup.Children[0].CustomData.(*LinkData); ok {
		link.URL = "https://other"
	}

	assert.Equal(t, float32(4), root.Style.Padding.Top)
	assert.Equal(t, "hello", root.Children[0].Text)
	assert.Equal(t, "https://example.com", root.Children[0].CustomData.(*LinkData).URL)
}

func TestClonePreservesDetachedPanels(t *testing.T) {
	ctx := NewContext()
	group := NewComponent(ctx, ComponentTabGroup)
	content := NewComponent(ctx, ComponentTabContent)
	group.AddChild(content)

	active := NewComponent(ctx, ComponentTabPanel)
	hidden := NewComponent(ctx, ComponentTabPanel)
	hidden.Text = "hidden"
	content.AddChild(active)

	tg := group.EnsureTabGroup()
	tg.Panels = []*Component{active, hidden}

	dup := group.Clone()
	dtg := dup.TabGroup()
	require.NotNil(t, dtg)
	require.Len(t, dtg.Panels, 2)

	// Active panel maps to the cloned child, not the original.
	assert.Same(t, dup.Children[0].Children[0], dtg.Panels[0])
	assert.NotSame(t, active, dtg.Panels[0])
	assert.Equal(t, "hidden", dtg.Panels[1].Text)
	assert.NotSame(t, hidden, dtg.Panels[1])
}

func TestWalkVisitsDetachedPanels(t *testing.T) {
	ctx := NewContext()
	group := NewComponent(ctx, ComponentTabGroup)
	content := NewComponent(ctx, ComponentTabContent)
	group.AddChild(content)

	active := NewComponent(ctx, ComponentTabPanel)
	content.AddChild(active)
	hidden := NewComponent(ctx, ComponentTabPanel)
	group.EnsureTabGroup().Panels = []*Component{active, hidden}

	visits := map[uint32]int{}
	group.Walk(func(c *Component) bool {
		visits[c.ID]++
		return true
	})
	assert.Equal(t, 1, visits[active.ID], "attached panel visited once")
	assert.Equal(t, 1, visits[hidden.ID], "detached panel visited once")
}
