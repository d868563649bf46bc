// kir/serialize_style.go
package kir

import (
	"fmt"

	"github.com/waozixyz/kryon-ir/ir"
)

// colorValue renders a color to its wire form: "transparent", a var()
// reference, hex (with alpha only when not opaque), or a gradient object.
func colorValue(c ir.Color) any {
	if c.Gradient != nil {
		return gradientValue(c.Gradient)
	}
	if c.VarRef != "" {
		return c.VarRef
	}
	if c.IsTransparent() {
		return "transparent"
	}
	if c.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func gradientValue(g *ir.Gradient) map[string]any {
	out := map[string]any{"type": g.Kind}
	if g.Kind == "radial" {
		out["centerX"] = g.CenterX
		out["centerY"] = g.CenterY
	} else {
		out["angle"] = g.Angle
	}
	stops := make([]any, 0, len(g.Stops))
	for _, s := range g.Stops {
		stops = append(stops, map[string]any{
			"position": s.Position,
			"color":    colorValue(s.Color),
		})
	}
	out["stops"] = stops
	return out
}

// spacingValue applies the compaction rule: scalar when uniform,
// [vertical, horizontal] when symmetric, else [top, right, bottom, left].
func spacingValue(s ir.Spacing) any {
	if s.Uniform() {
		return s.Top
	}
	if s.Symmetric() {
		return []any{s.Top, s.Right}
	}
	return []any{s.Top, s.Right, s.Bottom, s.Left}
}

// serializeStyle emits the non-default style fields of c into out. A field
// carrying an active property binding is emitted even at its default value,
// otherwise reloading the document would drop the binding.
func serializeStyle(c *ir.Component, out map[string]any) {
	s := c.Style
	if s == nil {
		return
	}

	if s.Width.IsSet() {
		out["width"] = s.Width.String()
	}
	if s.Height.IsSet() {
		out["height"] = s.Height.String()
	}
	if s.MinWidth.IsSet() {
		out["minWidth"] = s.MinWidth.String()
	}
	if s.MinHeight.IsSet() {
		out["minHeight"] = s.MinHeight.String()
	}
	if s.MaxWidth.IsSet() {
		out["maxWidth"] = s.MaxWidth.String()
	}
	if s.MaxHeight.IsSet() {
		out["maxHeight"] = s.MaxHeight.String()
	}

	if !s.Visible {
		out["visible"] = false
	}
	if s.Opacity != 1.0 {
		out["opacity"] = s.Opacity
	}
	if s.ZIndex != 0 {
		out["zIndex"] = s.ZIndex
	}

	if s.Background.Gradient != nil {
		out["backgroundGradient"] = gradientValue(s.Background.Gradient)
	} else if !s.Background.IsTransparent() || c.HasPropertyBinding("background") {
		out["background"] = colorValue(s.Background)
	}
	if s.BackgroundImage != "" {
		out["backgroundImage"] = s.BackgroundImage
	}
	if s.BackgroundClip != "" {
		out["backgroundClip"] = s.BackgroundClip
	}
	if !s.TextFillColor.IsTransparent() {
		out["textFillColor"] = colorValue(s.TextFillColor)
	}

	if b := borderValue(s.Border); b != nil {
		out["border"] = b
	}

	if s.Position != ir.PositionRelative {
		if s.Position == ir.PositionAbsolute {
			out["position"] = "absolute"
		} else {
			out["position"] = "fixed"
		}
	}
	if s.Left.IsSet() {
		out["left"] = s.Left.String()
	}
	if s.Top.IsSet() {
		out["top"] = s.Top.String()
	}

	if !s.Color.IsTransparent() || c.HasPropertyBinding("color") {
		out["color"] = colorValue(s.Color)
	}
	if s.Font.Size > 0 || c.HasPropertyBinding("fontSize") {
		out["fontSize"] = s.Font.Size
	}
	if s.Font.Family != "" {
		out["fontFamily"] = s.Font.Family
	}
	if s.Font.Weight != 0 {
		out["fontWeight"] = s.Font.Weight
	}
	if s.Font.Bold {
		out["fontBold"] = true
	}
	if s.Font.Italic {
		out["fontItalic"] = true
	}
	if s.Font.LineHeight > 0 {
		out["lineHeight"] = s.Font.LineHeight
	}
	if s.Font.LetterSpacing != 0 {
		out["letterSpacing"] = s.Font.LetterSpacing
	}
	if s.Font.WordSpacing != 0 {
		out["wordSpacing"] = s.Font.WordSpacing
	}
	if s.Font.Align != ir.TextAlignLeft {
		out["textAlign"] = s.Font.Align.String()
	}
	if s.Font.Decoration != "" {
		out["textDecoration"] = s.Font.Decoration
	}
	if s.Font.MaxTextWidth.IsSet() {
		out["maxTextWidth"] = s.Font.MaxTextWidth.String()
	}

	if !s.Padding.IsZero() {
		out["padding"] = spacingValue(s.Padding)
	}
	if !s.Margin.IsZero() {
		out["margin"] = spacingValue(s.Margin)
	}

	if t := s.Transform; t != nil {
		tm := map[string]any{}
		if t.TranslateX != 0 {
			tm["translateX"] = t.TranslateX
		}
		if t.TranslateY != 0 {
			tm["translateY"] = t.TranslateY
		}
		if t.ScaleX != 1 {
			tm["scaleX"] = t.ScaleX
		}
		if t.ScaleY != 1 {
			tm["scaleY"] = t.ScaleY
		}
		if t.Rotate != 0 {
			tm["rotate"] = t.Rotate
		}
		if len(tm) > 0 {
			out["transform"] = tm
		}
	}
}

func borderValue(b ir.Border) map[string]any {
	out := map[string]any{}
	if b.Widths.Uniform() {
		if b.Widths.Top != 0 {
			out["width"] = b.Widths.Top
		}
	} else {
		if b.Widths.Top != 0 {
			out["widthTop"] = b.Widths.Top
		}
		if b.Widths.Right != 0 {
			out["widthRight"] = b.Widths.Right
		}
		if b.Widths.Bottom != 0 {
			out["widthBottom"] = b.Widths.Bottom
		}
		if b.Widths.Left != 0 {
			out["widthLeft"] = b.Widths.Left
		}
	}
	if !b.Color.IsTransparent() {
		out["color"] = colorValue(b.Color)
	}
	if b.Radius != 0 {
		out["radius"] = b.Radius
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// serializeLayout emits the non-default layout fields. flexDirection is only
// written for row (column is the default); shrink defaults to 1.
func serializeLayout(c *ir.Component, out map[string]any) {
	l := c.Layout
	if l == nil {
		return
	}

	if l.Display != ir.DisplayFlex {
		out["display"] = l.Display.String()
	}
	if l.Direction == ir.DirectionRow {
		out["flexDirection"] = "row"
	}
	if l.JustifyContent != ir.AlignStart || c.HasPropertyBinding("justifyContent") {
		out["justifyContent"] = l.JustifyContent.CSSKeyword()
	}
	if l.AlignItems != ir.AlignStart || c.HasPropertyBinding("alignItems") {
		out["alignItems"] = l.AlignItems.CSSKeyword()
	}
	if l.Wrap {
		out["flexWrap"] = "wrap"
	}
	if l.Grow != 0 {
		out["flexGrow"] = l.Grow
	}
	if l.Shrink != 1 && l.Shrink != 0 {
		out["flexShrink"] = l.Shrink
	}
	if l.Gap != 0 || c.HasPropertyBinding("gap") {
		out["gap"] = l.Gap
	}
	if len(l.GridColumns) > 0 {
		out["gridTemplateColumns"] = gridTracksValue(l.GridColumns)
	}
	if len(l.GridRows) > 0 {
		out["gridTemplateRows"] = gridTracksValue(l.GridRows)
	}
	if l.JustifyItems != ir.AlignStart {
		out["justifyItems"] = l.JustifyItems.CSSKeyword()
	}
	if l.GridAlignItems != ir.AlignStart {
		out["gridAlignItems"] = l.GridAlignItems.CSSKeyword()
	}
}

func gridTracksValue(tracks []ir.GridTrack) string {
	out := ""
	for i, t := range tracks {
		if i > 0 {
			out += " "
		}
		switch t.Kind {
		case ir.TrackPx:
			out += fmt.Sprintf("%.1fpx", t.Value)
		case ir.TrackFr:
			out += fmt.Sprintf("%gfr", t.Value)
		case ir.TrackMinMax:
			out += fmt.Sprintf("minmax(%s, %s)", t.Min.String(), t.Max.String())
		default:
			out += "auto"
		}
	}
	return out
}
