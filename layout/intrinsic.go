// layout/intrinsic.go
package layout

import (
	"github.com/chewxy/math32"

	"github.com/waozixyz/kryon-ir/ir"
)

// TextMeasureFunc measures a text run at a font size, wrapping at maxWidth
// when maxWidth > 0. Renderers install one before the first layout pass.
type TextMeasureFunc func(text string, fontSize, maxWidth float32) (w, h float32)

// measureText is a single process-wide slot. It must not be swapped while a
// layout pass is in flight.
var measureText TextMeasureFunc

// SetTextMeasure installs the renderer-provided measurement callback. Passing
// nil restores the heuristic estimate.
func SetTextMeasure(fn TextMeasureFunc) { measureText = fn }

// TextWidthEstimate is the fallback single-line width heuristic used when no
// renderer callback is installed.
func TextWidthEstimate(text string, fontSize float32) float32 {
	return float32(len(text)) * fontSize * 0.5
}

const (
	defaultFontSize       = 16.0
	defaultButtonFontSize = 14.0
	defaultLineHeight     = 1.5
	defaultInputWidth     = 200.0
	defaultInputHeight    = 30.0
	defaultCanvasWidth    = 300.0
	defaultCanvasHeight   = 150.0
	fallbackWidth         = 100.0
	fallbackHeight        = 50.0
)

// measuredText resolves a text node's size, preferring the installed
// callback.
func measuredText(c *ir.Component, fontSize float32) (w, h float32) {
	maxWidth := float32(0)
	if c.Style != nil && c.Style.Font.MaxTextWidth.Unit == ir.UnitPx {
		maxWidth = c.Style.Font.MaxTextWidth.Value
	}
	if measureText != nil && c.Text != "" {
		return measureText(c.Text, fontSize, maxWidth)
	}
	w = TextWidthEstimate(c.Text, fontSize)
	if maxWidth > 0 && w > maxWidth {
		lines := math32.Ceil(w / maxWidth)
		return maxWidth, lines * fontSize * defaultLineHeight
	}
	lh := defaultLineHeight
	if c.Style != nil {
		lh = float64(c.Style.LineHeightOr(defaultLineHeight))
	}
	return w, fontSize * float32(lh)
}

// intrinsicWidth returns the natural width of c before clamping, cached on
// the node until it is marked dirty.
func intrinsicWidth(c *ir.Component) float32 {
	if c == nil {
		return 0
	}
	st := &c.LayoutState
	if !st.Dirty && st.IntrinsicWidth >= 0 {
		return st.IntrinsicWidth
	}
	w := intrinsicWidthImpl(c)
	st.IntrinsicWidth = w
	return w
}

func intrinsicWidthImpl(c *ir.Component) float32 {
	if c.Style != nil && c.Style.Width.Unit == ir.UnitPx {
		return c.Style.Width.Value
	}
	var pad ir.Spacing
	if c.Style != nil {
		pad = c.Style.Padding
	}
	switch c.Type {
	case ir.ComponentText, ir.ComponentHeading, ir.ComponentLink,
		ir.ComponentInlineCode, ir.ComponentBold, ir.ComponentItalic,
		ir.ComponentStrikethrough, ir.ComponentLabel:
		if c.Text == "" {
			return fallbackHeight
		}
		w, _ := measuredText(c, c.Style.FontSizeOr(defaultFontSize))
		return w
	case ir.ComponentButton:
		if c.Text == "" {
			return 80
		}
		fs := c.Style.FontSizeOr(defaultButtonFontSize)
		return TextWidthEstimate(c.Text, fs) + pad.Horizontal() + 20
	case ir.ComponentInput, ir.ComponentTextarea, ir.ComponentDropdown,
		ir.ComponentSelect:
		return defaultInputWidth
	case ir.ComponentCanvas, ir.ComponentVideo, ir.ComponentImage:
		return defaultCanvasWidth
	case ir.ComponentSpacer:
		return 0
	case ir.ComponentHorizontalRule:
		return fallbackWidth
	}
	if c.Type.IsContainerLike() && len(c.Children) > 0 {
		return childrenIntrinsicWidth(c, pad)
	}
	return fallbackWidth
}

func childrenIntrinsicWidth(c *ir.Component, pad ir.Spacing) float32 {
	isRow := c.EffectiveDirection() == ir.DirectionRow
	var gap float32
	if c.Layout != nil {
		gap = c.Layout.Gap
	}
	total, max := float32(0), float32(0)
	n := 0
	for _, child := range c.Children {
		if child == nil || (child.Style != nil && !child.Style.Visible) {
			continue
		}
		cw := intrinsicWidth(child)
		if child.Style != nil {
			cw += child.Style.Margin.Horizontal()
		}
		if isRow {
			if n > 0 {
				total += gap
			}
			total += cw
		} else {
			max = math32.Max(max, cw)
		}
		n++
	}
	if isRow {
		return total + pad.Horizontal()
	}
	return max + pad.Horizontal()
}

// intrinsicHeight mirrors intrinsicWidth for the vertical axis.
func intrinsicHeight(c *ir.Component) float32 {
	if c == nil {
		return 0
	}
	st := &c.LayoutState
	if !st.Dirty && st.IntrinsicHeight >= 0 {
		return st.IntrinsicHeight
	}
	h := intrinsicHeightImpl(c)
	st.IntrinsicHeight = h
	return h
}

func intrinsicHeightImpl(c *ir.Component) float32 {
	if c.Style != nil && c.Style.Height.Unit == ir.UnitPx {
		return c.Style.Height.Value
	}
	var pad ir.Spacing
	if c.Style != nil {
		pad = c.Style.Padding
	}
	switch c.Type {
	case ir.ComponentText, ir.ComponentHeading, ir.ComponentLink,
		ir.ComponentInlineCode, ir.ComponentBold, ir.ComponentItalic,
		ir.ComponentStrikethrough, ir.ComponentLabel:
		fs := c.Style.FontSizeOr(defaultFontSize)
		if c.Text != "" {
			_, h := measuredText(c, fs)
			return h
		}
		return fs * c.Style.LineHeightOr(defaultLineHeight)
	case ir.ComponentButton:
		fs := c.Style.FontSizeOr(defaultButtonFontSize)
		return fs + pad.Vertical() + 12
	case ir.ComponentInput, ir.ComponentDropdown, ir.ComponentSelect:
		return defaultInputHeight
	case ir.ComponentTextarea:
		return defaultInputHeight * 3
	case ir.ComponentCanvas, ir.ComponentVideo, ir.ComponentImage:
		return defaultCanvasHeight
	case ir.ComponentSpacer:
		return 0
	case ir.ComponentHorizontalRule:
		return 2
	}
	if c.Type.IsContainerLike() && len(c.Children) > 0 {
		return childrenIntrinsicHeight(c, pad)
	}
	return fallbackHeight
}

func childrenIntrinsicHeight(c *ir.Component, pad ir.Spacing) float32 {
	isColumn := c.EffectiveDirection() == ir.DirectionColumn
	var gap float32
	if c.Layout != nil {
		gap = c.Layout.Gap
	}
	total, max := float32(0), float32(0)
	n := 0
	for _, child := range c.Children {
		if child == nil || (child.Style != nil && !child.Style.Visible) {
			continue
		}
		ch := intrinsicHeight(child)
		if child.Style != nil {
			ch += child.Style.Margin.Vertical()
		}
		if isColumn {
			if n > 0 {
				total += gap
			}
			total += ch
		} else {
			max = math32.Max(max, ch)
		}
		n++
	}
	if isColumn {
		return total + pad.Vertical()
	}
	return max + pad.Vertical()
}
