// layout/tabs.go
//
// Layout traits for the tab family. A trait owns the full placement of its
// component; the generic single pass defers to a trait whenever one exists
// for the node's type. Dispatch is a compile-time type switch, not a runtime
// registry.
package layout

import (
	"github.com/chewxy/math32"

	"github.com/waozixyz/kryon-ir/ir"
)

const (
	defaultTabHeight    = 36.0
	defaultTabBarHeight = 44.0
	defaultTabGroupW    = 400.0
	defaultTabGroupH    = 300.0
)

// trait is a per-type layout pass. layout must set the node's box, place its
// children, and mark the layout state valid.
type trait interface {
	layout(c *ir.Component, cs Constraints, px, py float32)
}

// traitFor returns the specialized trait for t, or nil when the generic pass
// applies.
func traitFor(t ir.ComponentType) trait {
	switch t {
	case ir.ComponentTabGroup:
		return tabGroupTrait{}
	case ir.ComponentTabBar:
		return tabBarTrait{}
	case ir.ComponentTab:
		return tabTrait{}
	case ir.ComponentTabContent:
		return tabContentTrait{}
	case ir.ComponentTabPanel:
		return tabPanelTrait{}
	}
	return nil
}

// explicitOr resolves an explicit px style dimension or the fallback.
func explicitOr(d ir.Dimension, fallback float32) float32 {
	if d.Unit == ir.UnitPx {
		return d.Value
	}
	return fallback
}

// tabGroupTrait stacks TabBar above TabContent, filling available space.
type tabGroupTrait struct{}

func (tabGroupTrait) layout(c *ir.Component, cs Constraints, px, py float32) {
	w := cs.MaxWidth
	if w <= 0 {
		w = defaultTabGroupW
	}
	h := cs.MaxHeight
	if h <= 0 {
		h = defaultTabGroupH
	}
	if c.Style != nil {
		w = explicitOr(c.Style.Width, w)
		h = explicitOr(c.Style.Height, h)
	}
	w = math32.Max(w, cs.MinWidth)
	h = math32.Max(h, cs.MinHeight)

	st := &c.LayoutState
	st.X, st.Y, st.Width, st.Height = px, py, w, h

	curY := py
	for _, child := range c.Children {
		if child == nil {
			continue
		}
		childCS := Constraints{MaxWidth: w, MaxHeight: h - (curY - py)}
		singlePass(child, childCS, px, curY)
		if child.LayoutState.Valid {
			curY += child.LayoutState.Height
		}
	}

	st.Valid = true
	st.Dirty = false
}

// tabBarTrait lays tabs out left to right at a fixed bar height.
type tabBarTrait struct{}

func (tabBarTrait) layout(c *ir.Component, cs Constraints, px, py float32) {
	w := cs.MaxWidth
	if w <= 0 {
		w = defaultTabGroupW
	}
	h := float32(defaultTabBarHeight)
	if c.Style != nil {
		w = explicitOr(c.Style.Width, w)
		h = explicitOr(c.Style.Height, h)
	}
	w = math32.Max(w, cs.MinWidth)
	h = math32.Max(h, cs.MinHeight)

	st := &c.LayoutState
	st.X, st.Y, st.Width, st.Height = px, py, w, h

	curX := px
	for _, child := range c.Children {
		if child == nil {
			continue
		}
		childCS := Constraints{MaxWidth: w - (curX - px), MaxHeight: h}
		singlePass(child, childCS, curX, py)
		if child.LayoutState.Valid {
			curX += child.LayoutState.Width
		}
	}

	st.Valid = true
	st.Dirty = false
}

// tabTrait sizes a tab from its label so it stays clickable.
type tabTrait struct{}

func (tabTrait) layout(c *ir.Component, cs Constraints, px, py float32) {
	fontSize := float32(14)
	padH := float32(16)
	if c.Style != nil {
		fontSize = c.Style.FontSizeOr(14)
		padH = c.Style.Padding.Horizontal()
	}

	w := float32(80)
	if c.Text != "" {
		w = float32(len(c.Text))*fontSize*0.55 + padH + 24
	}
	h := float32(defaultTabHeight)
	if c.Style != nil {
		w = explicitOr(c.Style.Width, w)
		h = explicitOr(c.Style.Height, h)
	}
	w = cs.ClampWidth(w)
	h = cs.ClampHeight(h)

	st := &c.LayoutState
	st.X, st.Y, st.Width, st.Height = px, py, w, h
	st.Valid = true
	st.Dirty = false
}

// tabContentTrait fills remaining space and lays out the attached panel(s)
// into the full content box.
type tabContentTrait struct{}

func (tabContentTrait) layout(c *ir.Component, cs Constraints, px, py float32) {
	w := cs.MaxWidth
	if w <= 0 {
		w = defaultTabGroupW
	}
	h := cs.MaxHeight
	if h <= 0 {
		h = defaultTabGroupH
	}
	if c.Style != nil {
		w = explicitOr(c.Style.Width, w)
		h = explicitOr(c.Style.Height, h)
	}
	w = math32.Max(w, cs.MinWidth)
	h = math32.Max(h, cs.MinHeight)

	st := &c.LayoutState
	st.X, st.Y, st.Width, st.Height = px, py, w, h

	childCS := Constraints{MaxWidth: w, MaxHeight: h}
	for _, child := range c.Children {
		singlePass(child, childCS, px, py)
	}

	st.Valid = true
	st.Dirty = false
}

// tabPanelTrait fills the content space and stacks children vertically with
// gap spacing inside its padding.
type tabPanelTrait struct{}

func (tabPanelTrait) layout(c *ir.Component, cs Constraints, px, py float32) {
	var pad ir.Spacing
	if c.Style != nil {
		pad = c.Style.Padding
	}
	w := cs.MaxWidth
	if w <= 0 {
		w = defaultTabGroupW
	}
	h := cs.MaxHeight
	if h <= 0 {
		h = defaultTabGroupH
	}
	if c.Style != nil {
		w = explicitOr(c.Style.Width, w)
		h = explicitOr(c.Style.Height, h)
	}
	w = math32.Max(w, cs.MinWidth)
	h = math32.Max(h, cs.MinHeight)

	st := &c.LayoutState
	st.X, st.Y, st.Width, st.Height = px, py, w, h

	contentW := w - pad.Horizontal()
	contentH := h - pad.Vertical()
	contentX := px + pad.Left
	contentY := py + pad.Top

	var gap float32
	if c.Layout != nil && c.Layout.Gap > 0 {
		gap = c.Layout.Gap
	}

	curY := contentY
	for i, child := range c.Children {
		if child == nil || (child.Style != nil && !child.Style.Visible) {
			continue
		}
		childCS := Constraints{
			MaxWidth:  contentW,
			MaxHeight: contentH - (curY - contentY),
		}
		singlePass(child, childCS, contentX, curY)
		if child.LayoutState.Valid {
			curY += child.LayoutState.Height
			if i < len(c.Children)-1 {
				curY += gap
			}
		}
	}

	st.Valid = true
	st.Dirty = false
}

// ActivateTab switches a tab group's selection: it updates the shared group
// state, swaps the live TabContent child for the selected panel, and marks
// the subtree for relayout. Selection is scoped to the group instance, so two
// expansions of one template stay independent.
func ActivateTab(group *ir.Component, index int) {
	tg := group.TabGroup()
	if tg == nil || index < 0 || index >= len(tg.Panels) {
		return
	}
	tg.ActiveIndex = index

	var content *ir.Component
	for _, child := range group.Children {
		if child.Type == ir.ComponentTabContent {
			content = child
			break
		}
	}
	if content == nil {
		return
	}
	for len(content.Children) > 0 {
		content.RemoveChild(content.Children[0])
	}
	content.AddChild(tg.Panels[index])

	for _, child := range group.Children {
		if child.Type == ir.ComponentTabBar {
			for i, tab := range child.Children {
				if td, ok := tab.CustomData.(*ir.TabData); ok {
					td.Active = i == index
				}
			}
		}
	}
	group.MarkDirty()
}
