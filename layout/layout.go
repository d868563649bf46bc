// layout/layout.go
//
// Single-pass constraint layout over an ir.Component tree. Every node is
// sized in two phases (intrinsic, then clamp to incoming constraints) and
// containers place children along their main axis with gap spacing. The walk
// is defensive: nil nodes or missing property sets are no-ops, never faults,
// because layout runs on every frame over possibly half-built trees.
package layout

import (
	"github.com/chewxy/math32"

	"github.com/waozixyz/kryon-ir/ir"
)

// Constraints bound one node's size. A zero max means unconstrained on that
// axis.
type Constraints struct {
	MinWidth, MinHeight float32
	MaxWidth, MaxHeight float32
}

// Loose returns constraints with only upper bounds.
func Loose(maxW, maxH float32) Constraints {
	return Constraints{MaxWidth: maxW, MaxHeight: maxH}
}

// clampAxis applies max(min, min(value, max)); max of 0 is unconstrained.
func clampAxis(v, min, max float32) float32 {
	if max > 0 {
		v = math32.Min(v, max)
	}
	return math32.Max(v, min)
}

// ClampWidth clamps w into the horizontal bounds of cs.
func (cs Constraints) ClampWidth(w float32) float32 {
	return clampAxis(w, cs.MinWidth, cs.MaxWidth)
}

// ClampHeight clamps h into the vertical bounds of cs.
func (cs Constraints) ClampHeight(h float32) float32 {
	return clampAxis(h, cs.MinHeight, cs.MaxHeight)
}

// ComputeTree runs a full layout pass over root for the given viewport.
// Changing the viewport invalidates the whole tree first. After the call
// every reachable visible node has a valid computed box.
func ComputeTree(root *ir.Component, viewportW, viewportH float32) {
	if root == nil {
		return
	}
	st := &root.LayoutState
	if st.LastViewportW != viewportW || st.LastViewportH != viewportH {
		invalidateTree(root)
		st.LastViewportW = viewportW
		st.LastViewportH = viewportH
	}
	cs := Constraints{
		MinWidth:  viewportW,
		MinHeight: viewportH,
		MaxWidth:  viewportW,
		MaxHeight: viewportH,
	}
	singlePass(root, cs, 0, 0)
}

func invalidateTree(c *ir.Component) {
	c.Walk(func(n *ir.Component) bool {
		n.LayoutState.Valid = false
		n.LayoutState.Dirty = true
		n.LayoutState.IntrinsicWidth = -1
		n.LayoutState.IntrinsicHeight = -1
		return true
	})
}

// Bounds returns the computed box of c, or ok=false when the geometry is not
// valid yet.
func Bounds(c *ir.Component) (x, y, w, h float32, ok bool) {
	if c == nil || !c.LayoutState.Valid {
		return 0, 0, 0, 0, false
	}
	st := &c.LayoutState
	return st.X, st.Y, st.Width, st.Height, true
}

// singlePass computes the box of c at origin (px, py) under cs, then lays out
// children for container-like types. Reference nodes that were never expanded
// are skipped; their children are not authoritative.
func singlePass(c *ir.Component, cs Constraints, px, py float32) {
	if c == nil {
		return
	}
	if c.IsReference() && len(c.Children) == 0 {
		return
	}
	st := &c.LayoutState
	if c.Style != nil && !c.Style.Visible {
		st.X, st.Y = px, py
		st.Width, st.Height = 0, 0
		st.Valid = true
		st.Dirty = false
		return
	}

	if t := traitFor(c.Type); t != nil {
		t.layout(c, cs, px, py)
		return
	}

	w, h := measure(c, cs)
	st.X, st.Y = px, py
	st.Width, st.Height = w, h

	if c.Type.IsContainerLike() {
		layoutChildren(c, cs)
	}

	st.Valid = true
	st.Dirty = false
}

// measure resolves phase one (intrinsic or explicit size) and phase two
// (clamping) for one node.
func measure(c *ir.Component, cs Constraints) (w, h float32) {
	w = resolveAxis(c, axisWidth, cs)
	h = resolveAxis(c, axisHeight, cs)

	// Layout-level min/max tighten the style-resolved size further.
	if c.Layout != nil {
		w = clampAxis(w, c.Layout.MinWidth, c.Layout.MaxWidth)
		h = clampAxis(h, c.Layout.MinHeight, c.Layout.MaxHeight)
	}
	return cs.ClampWidth(w), cs.ClampHeight(h)
}

type axis uint8

const (
	axisWidth axis = iota
	axisHeight
)

// resolveAxis picks the pre-clamp size for one axis: explicit px wins,
// percent resolves against the parent-provided max, otherwise content
// decides.
func resolveAxis(c *ir.Component, a axis, cs Constraints) float32 {
	var dim ir.Dimension
	var avail float32
	if a == axisWidth {
		if c.Style != nil {
			dim = c.Style.Width
		}
		avail = cs.MaxWidth
	} else {
		if c.Style != nil {
			dim = c.Style.Height
		}
		avail = cs.MaxHeight
	}
	switch dim.Unit {
	case ir.UnitPx:
		return dim.Value
	case ir.UnitPercent:
		return avail * dim.Value / 100
	}
	if a == axisWidth {
		return intrinsicWidth(c)
	}
	return intrinsicHeight(c)
}

// layoutChildren walks children in order along the main axis. Gap is added
// between children, not after the last one, and every placed child shrinks
// the constraint window for the next.
func layoutChildren(c *ir.Component, _ Constraints) {
	st := &c.LayoutState
	var pad ir.Spacing
	var gap float32
	if c.Style != nil {
		pad = c.Style.Padding
	}
	if c.Layout != nil {
		gap = c.Layout.Gap
	}

	contentX := st.X + pad.Left
	contentY := st.Y + pad.Top
	contentW := math32.Max(0, st.Width-pad.Horizontal())
	contentH := math32.Max(0, st.Height-pad.Vertical())

	isRow := c.EffectiveDirection() == ir.DirectionRow

	remaining := contentH
	if isRow {
		remaining = contentW
	}
	cursorX, cursorY := contentX, contentY

	visible := 0
	for _, child := range c.Children {
		if child == nil || (child.Style != nil && !child.Style.Visible) {
			continue
		}
		if visible > 0 {
			if isRow {
				cursorX += gap
			} else {
				cursorY += gap
			}
			remaining = math32.Max(0, remaining-gap)
		}
		var margin ir.Spacing
		if child.Style != nil {
			margin = child.Style.Margin
		}

		childCS := Constraints{}
		if isRow {
			childCS.MaxWidth = math32.Max(0, remaining-margin.Horizontal())
			childCS.MaxHeight = math32.Max(0, contentH-margin.Vertical())
		} else {
			childCS.MaxWidth = math32.Max(0, contentW-margin.Horizontal())
			childCS.MaxHeight = math32.Max(0, remaining-margin.Vertical())
		}

		singlePass(child, childCS, cursorX+margin.Left, cursorY+margin.Top)

		consumed := child.LayoutState.Height + margin.Vertical()
		if isRow {
			consumed = child.LayoutState.Width + margin.Horizontal()
		}
		if isRow {
			cursorX += consumed
		} else {
			cursorY += consumed
		}
		remaining = math32.Max(0, remaining-consumed)
		visible++
	}

	alignChildren(c, contentX, contentY, contentW, contentH, gap, isRow)
}

// alignChildren applies justify-content along the main axis and align-items
// on the cross axis, shifting the already-measured children.
func alignChildren(c *ir.Component, contentX, contentY, contentW, contentH, gap float32, isRow bool) {
	if c.Layout == nil {
		return
	}
	justify := c.Layout.JustifyContent
	alignItems := c.Layout.AlignItems
	if c.Type == ir.ComponentCenter {
		justify = ir.AlignCenter
		alignItems = ir.AlignCenter
	}
	if justify == ir.AlignStart && alignItems == ir.AlignStart {
		return
	}

	var kids []*ir.Component
	used := float32(0)
	for _, child := range c.Children {
		if child == nil || !child.LayoutState.Valid || (child.Style != nil && !child.Style.Visible) {
			continue
		}
		var margin ir.Spacing
		if child.Style != nil {
			margin = child.Style.Margin
		}
		if isRow {
			used += child.LayoutState.Width + margin.Horizontal()
		} else {
			used += child.LayoutState.Height + margin.Vertical()
		}
		kids = append(kids, child)
	}
	if len(kids) == 0 {
		return
	}
	used += gap * float32(len(kids)-1)

	mainSize := contentH
	if isRow {
		mainSize = contentW
	}
	free := math32.Max(0, mainSize-used)

	var lead, between float32
	switch justify {
	case ir.AlignCenter:
		lead = free / 2
	case ir.AlignEnd:
		lead = free
	case ir.AlignSpaceBetween:
		if len(kids) > 1 {
			between = free / float32(len(kids)-1)
		}
	case ir.AlignSpaceAround:
		between = free / float32(len(kids))
		lead = between / 2
	case ir.AlignSpaceEvenly:
		between = free / float32(len(kids)+1)
		lead = between
	}

	for i, child := range kids {
		shift := lead + between*float32(i)
		if isRow {
			shiftSubtree(child, shift, 0)
		} else {
			shiftSubtree(child, 0, shift)
		}

		// Cross-axis placement.
		cst := &child.LayoutState
		var cross float32
		switch alignItems {
		case ir.AlignCenter:
			if isRow {
				cross = contentY + (contentH-cst.Height)/2 - cst.Y
			} else {
				cross = contentX + (contentW-cst.Width)/2 - cst.X
			}
		case ir.AlignEnd:
			if isRow {
				cross = contentY + contentH - cst.Height - cst.Y
			} else {
				cross = contentX + contentW - cst.Width - cst.X
			}
		case ir.AlignStretch:
			// Stretch grows the box to the content cross size without moving
			// it; children keep their own positions.
			if isRow {
				cst.Height = contentH
			} else {
				cst.Width = contentW
			}
			continue
		default:
			continue
		}
		if isRow {
			shiftSubtree(child, 0, cross)
		} else {
			shiftSubtree(child, cross, 0)
		}
	}
}

// shiftSubtree moves a computed subtree without re-measuring it.
func shiftSubtree(c *ir.Component, dx, dy float32) {
	if c == nil || (dx == 0 && dy == 0) {
		return
	}
	c.Walk(func(n *ir.Component) bool {
		if !n.LayoutState.Valid {
			return true
		}
		n.LayoutState.X += dx
		n.LayoutState.Y += dy
		return true
	})
}
