// kir/deserialize_style.go
package kir

import (
	"strconv"
	"strings"

	"github.com/waozixyz/kryon-ir/ir"
)

// JSON access helpers. Documents come out of encoding/json as map[string]any
// with float64 numbers.

func jsStr(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

func jsFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		// Values built in memory rather than decoded from JSON.
		return n, true
	case int:
		return float32(n), true
	case interface{ Float64() (float64, error) }:
		// json.Number when a decoder used UseNumber.
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return float32(f), true
	}
	return 0, false
}

func jsBool(m map[string]any, key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

// parseDimension understands "12px", "50%", "1.5em", "2rem", "10vw", "10vh",
// "1fr", "auto", and bare numbers (treated as px). Unknown unit suffixes fall
// back to px, keeping old documents readable.
func parseDimension(v any) (ir.Dimension, bool) {
	if f, ok := jsFloat(v); ok {
		return ir.Px(f), true
	}
	s, ok := v.(string)
	if !ok {
		return ir.Auto(), false
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return ir.Auto(), s == "auto"
	}

	unit := ir.UnitPx
	num := s
	switch {
	case strings.HasSuffix(s, "px"):
		num = s[:len(s)-2]
	case strings.HasSuffix(s, "%"):
		unit, num = ir.UnitPercent, s[:len(s)-1]
	case strings.HasSuffix(s, "rem"):
		unit, num = ir.UnitRem, s[:len(s)-3]
	case strings.HasSuffix(s, "em"):
		unit, num = ir.UnitEm, s[:len(s)-2]
	case strings.HasSuffix(s, "vw"):
		unit, num = ir.UnitVw, s[:len(s)-2]
	case strings.HasSuffix(s, "vh"):
		unit, num = ir.UnitVh, s[:len(s)-2]
	case strings.HasSuffix(s, "fr"):
		unit, num = ir.UnitFr, s[:len(s)-2]
	default:
		num = strings.TrimRightFunc(s, func(r rune) bool {
			return (r < '0' || r > '9') && r != '.' && r != '-'
		})
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 32)
	if err != nil {
		return ir.Auto(), false
	}
	return ir.Dimension{Value: float32(f), Unit: unit}, true
}

var namedColors = map[string]ir.Color{
	"black":   ir.RGB(0, 0, 0),
	"white":   ir.RGB(255, 255, 255),
	"red":     ir.RGB(255, 0, 0),
	"green":   ir.RGB(0, 128, 0),
	"blue":    ir.RGB(0, 0, 255),
	"yellow":  ir.RGB(255, 255, 0),
	"cyan":    ir.RGB(0, 255, 255),
	"magenta": ir.RGB(255, 0, 255),
	"gray":    ir.RGB(128, 128, 128),
	"grey":    ir.RGB(128, 128, 128),
	"orange":  ir.RGB(255, 165, 0),
	"purple":  ir.RGB(128, 0, 128),
}

// parseColor understands "transparent", var() references, rgb()/rgba(),
// #rgb/#rgba/#rrggbb/#rrggbbaa hex, a small named table, and nested gradient
// objects.
func parseColor(v any) (ir.Color, bool) {
	if m, ok := v.(map[string]any); ok {
		if g := parseGradient(m); g != nil {
			return ir.Color{A: 255, Gradient: g}, true
		}
		return ir.Color{}, false
	}
	s, ok := v.(string)
	if !ok {
		return ir.Color{}, false
	}
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "transparent":
		return ir.Transparent(), s == "transparent"
	case strings.HasPrefix(s, "var("):
		return ir.Color{A: 255, VarRef: s}, true
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	return ir.Color{}, false
}

func parseRGBFunc(s string) (ir.Color, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close <= open {
		return ir.Color{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) < 3 {
		return ir.Color{}, false
	}
	comp := func(i int) uint8 {
		f, _ := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	c := ir.Color{R: comp(0), G: comp(1), B: comp(2), A: 255}
	if len(parts) >= 4 {
		a, _ := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if a <= 1.0 {
			a *= 255
		}
		if a < 0 {
			a = 0
		}
		if a > 255 {
			a = 255
		}
		c.A = uint8(a)
	}
	return c, true
}

func parseHexColor(s string) (ir.Color, bool) {
	hex := s[1:]
	expand := func(h byte) uint8 {
		v, _ := strconv.ParseUint(string([]byte{h, h}), 16, 8)
		return uint8(v)
	}
	switch len(hex) {
	case 3:
		return ir.RGB(expand(hex[0]), expand(hex[1]), expand(hex[2])), true
	case 4:
		return ir.RGBA(expand(hex[0]), expand(hex[1]), expand(hex[2]), expand(hex[3])), true
	case 6, 8:
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return ir.Color{}, false
		}
		if len(hex) == 6 {
			return ir.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
		}
		return ir.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), true
	}
	return ir.Color{}, false
}

func parseGradient(m map[string]any) *ir.Gradient {
	kind, _ := jsStr(m, "type")
	if kind != "linear" && kind != "radial" {
		return nil
	}
	g := &ir.Gradient{Kind: kind}
	if f, ok := jsFloat(m["angle"]); ok {
		g.Angle = f
	}
	if f, ok := jsFloat(m["centerX"]); ok {
		g.CenterX = f
	}
	if f, ok := jsFloat(m["centerY"]); ok {
		g.CenterY = f
	}
	stops, _ := m["stops"].([]any)
	for _, sv := range stops {
		sm, ok := sv.(map[string]any)
		if !ok {
			continue
		}
		stop := ir.GradientStop{}
		if f, ok := jsFloat(sm["position"]); ok {
			stop.Position = f
		}
		if c, ok := parseColor(sm["color"]); ok {
			stop.Color = c
		}
		g.Stops = append(g.Stops, stop)
	}
	return g
}

// parseSpacing understands the compaction forms: a bare number, a
// [vertical, horizontal] pair, or a [top, right, bottom, left] quad.
func parseSpacing(v any) (ir.Spacing, bool) {
	if f, ok := jsFloat(v); ok {
		return ir.UniformSpacing(f), true
	}
	arr, ok := v.([]any)
	if !ok {
		return ir.Spacing{}, false
	}
	vals := make([]float32, 0, 4)
	for _, e := range arr {
		f, ok := jsFloat(e)
		if !ok {
			return ir.Spacing{}, false
		}
		vals = append(vals, f)
	}
	switch len(vals) {
	case 2:
		return ir.Spacing{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, true
	case 4:
		return ir.Spacing{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, true
	}
	return ir.Spacing{}, false
}

func parseAlignment(s string) ir.Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return ir.AlignCenter
	case "end", "flex-end":
		return ir.AlignEnd
	case "space-between":
		return ir.AlignSpaceBetween
	case "space-around":
		return ir.AlignSpaceAround
	case "space-evenly":
		return ir.AlignSpaceEvenly
	case "stretch":
		return ir.AlignStretch
	default:
		return ir.AlignStart
	}
}

func parseTextAlign(s string) ir.TextAlign {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return ir.TextAlignCenter
	case "right":
		return ir.TextAlignRight
	case "justify":
		return ir.TextAlignJustify
	default:
		return ir.TextAlignLeft
	}
}

// styleKeys lists every flattened style field a component object may carry.
var styleKeys = []string{
	"width", "height", "minWidth", "minHeight", "maxWidth", "maxHeight",
	"visible", "opacity", "zIndex", "background", "backgroundGradient",
	"backgroundImage", "backgroundClip", "textFillColor", "border",
	"position", "left", "top", "color", "fontSize", "fontFamily",
	"fontWeight", "fontBold", "fontItalic", "lineHeight", "letterSpacing",
	"wordSpacing", "textAlign", "textDecoration", "maxTextWidth", "padding",
	"margin", "paddingTop", "paddingRight", "paddingBottom", "paddingLeft",
	"marginTop", "marginRight", "marginBottom", "marginLeft", "transform",
}

func hasAnyKey(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// deserializeStyle fills c.Style from the flattened style fields of node.
// The style set is only created when at least one style field is present.
func deserializeStyle(c *ir.Component, node map[string]any) {
	if !hasAnyKey(node, styleKeys) {
		return
	}
	s := c.EnsureStyle()

	if d, ok := parseDimension(node["width"]); ok {
		s.Width = d
	}
	if d, ok := parseDimension(node["height"]); ok {
		s.Height = d
	}
	if d, ok := parseDimension(node["minWidth"]); ok {
		s.MinWidth = d
	}
	if d, ok := parseDimension(node["minHeight"]); ok {
		s.MinHeight = d
	}
	if d, ok := parseDimension(node["maxWidth"]); ok {
		s.MaxWidth = d
	}
	if d, ok := parseDimension(node["maxHeight"]); ok {
		s.MaxHeight = d
	}

	if b, ok := jsBool(node, "visible"); ok {
		s.Visible = b
	}
	if f, ok := jsFloat(node["opacity"]); ok {
		s.Opacity = f
	}
	if f, ok := jsFloat(node["zIndex"]); ok {
		s.ZIndex = int(f)
	}

	if g, ok := node["backgroundGradient"].(map[string]any); ok {
		if grad := parseGradient(g); grad != nil {
			s.Background = ir.Color{A: 255, Gradient: grad}
		}
	} else if c2, ok := parseColor(node["background"]); ok {
		s.Background = c2
	}
	if v, ok := jsStr(node, "backgroundImage"); ok {
		s.BackgroundImage = v
	}
	if v, ok := jsStr(node, "backgroundClip"); ok {
		s.BackgroundClip = v
	}
	if c2, ok := parseColor(node["textFillColor"]); ok {
		s.TextFillColor = c2
	}

	if bm, ok := node["border"].(map[string]any); ok {
		deserializeBorder(&s.Border, bm)
	}

	if v, ok := jsStr(node, "position"); ok {
		switch strings.ToLower(v) {
		case "absolute":
			s.Position = ir.PositionAbsolute
		case "fixed":
			s.Position = ir.PositionFixed
		default:
			s.Position = ir.PositionRelative
		}
	}
	if d, ok := parseDimension(node["left"]); ok {
		s.Left = d
	}
	if d, ok := parseDimension(node["top"]); ok {
		s.Top = d
	}

	if c2, ok := parseColor(node["color"]); ok {
		s.Color = c2
	}
	if f, ok := jsFloat(node["fontSize"]); ok {
		s.Font.Size = f
	}
	if v, ok := jsStr(node, "fontFamily"); ok {
		s.Font.Family = v
	}
	if f, ok := jsFloat(node["fontWeight"]); ok {
		s.Font.Weight = int(f)
	}
	if b, ok := jsBool(node, "fontBold"); ok {
		s.Font.Bold = b
	}
	if b, ok := jsBool(node, "fontItalic"); ok {
		s.Font.Italic = b
	}
	if f, ok := jsFloat(node["lineHeight"]); ok {
		s.Font.LineHeight = f
	}
	if f, ok := jsFloat(node["letterSpacing"]); ok {
		s.Font.LetterSpacing = f
	}
	if f, ok := jsFloat(node["wordSpacing"]); ok {
		s.Font.WordSpacing = f
	}
	if v, ok := jsStr(node, "textAlign"); ok {
		s.Font.Align = parseTextAlign(v)
	}
	if v, ok := jsStr(node, "textDecoration"); ok {
		s.Font.Decoration = v
	}
	if d, ok := parseDimension(node["maxTextWidth"]); ok {
		s.Font.MaxTextWidth = d
	}

	if sp, ok := parseSpacing(node["padding"]); ok {
		s.Padding = sp
	}
	if sp, ok := parseSpacing(node["margin"]); ok {
		s.Margin = sp
	}
	// Per-side overrides win over the shorthand.
	sideOverride(node, "paddingTop", &s.Padding.Top)
	sideOverride(node, "paddingRight", &s.Padding.Right)
	sideOverride(node, "paddingBottom", &s.Padding.Bottom)
	sideOverride(node, "paddingLeft", &s.Padding.Left)
	sideOverride(node, "marginTop", &s.Margin.Top)
	sideOverride(node, "marginRight", &s.Margin.Right)
	sideOverride(node, "marginBottom", &s.Margin.Bottom)
	sideOverride(node, "marginLeft", &s.Margin.Left)

	if tm, ok := node["transform"].(map[string]any); ok {
		t := &ir.Transform{ScaleX: 1, ScaleY: 1}
		if f, ok := jsFloat(tm["translateX"]); ok {
			t.TranslateX = f
		}
		if f, ok := jsFloat(tm["translateY"]); ok {
			t.TranslateY = f
		}
		if f, ok := jsFloat(tm["scaleX"]); ok {
			t.ScaleX = f
		}
		if f, ok := jsFloat(tm["scaleY"]); ok {
			t.ScaleY = f
		}
		if f, ok := jsFloat(tm["rotate"]); ok {
			t.Rotate = f
		}
		s.Transform = t
	}
}

func sideOverride(node map[string]any, key string, dst *float32) {
	if f, ok := jsFloat(node[key]); ok {
		*dst = f
	}
}

func deserializeBorder(b *ir.Border, m map[string]any) {
	if f, ok := jsFloat(m["width"]); ok {
		b.Widths = ir.UniformSpacing(f)
	}
	sideOverride(m, "widthTop", &b.Widths.Top)
	sideOverride(m, "widthRight", &b.Widths.Right)
	sideOverride(m, "widthBottom", &b.Widths.Bottom)
	sideOverride(m, "widthLeft", &b.Widths.Left)
	if c, ok := parseColor(m["color"]); ok {
		b.Color = c
	}
	if f, ok := jsFloat(m["radius"]); ok {
		b.Radius = f
	}
}

// layoutKeys lists every flattened layout field a component object may carry.
var layoutKeys = []string{
	"display", "flexDirection", "justifyContent", "alignItems", "flexWrap",
	"flexGrow", "flexShrink", "gap", "gridTemplateColumns", "gridTemplateRows",
	"justifyItems", "gridAlignItems",
}

// deserializeLayout fills c.Layout from the flattened layout fields of node.
func deserializeLayout(c *ir.Component, node map[string]any) {
	if !hasAnyKey(node, layoutKeys) {
		return
	}
	l := c.EnsureLayout()

	if v, ok := jsStr(node, "display"); ok {
		switch strings.ToLower(v) {
		case "grid":
			l.Display = ir.DisplayGrid
		case "block":
			l.Display = ir.DisplayBlock
		case "none":
			l.Display = ir.DisplayNone
		default:
			l.Display = ir.DisplayFlex
		}
	}
	if v, ok := jsStr(node, "flexDirection"); ok {
		if strings.ToLower(v) == "row" {
			l.Direction = ir.DirectionRow
		} else {
			l.Direction = ir.DirectionColumn
		}
	}
	if v, ok := jsStr(node, "justifyContent"); ok {
		l.JustifyContent = parseAlignment(v)
	}
	if v, ok := jsStr(node, "alignItems"); ok {
		l.AlignItems = parseAlignment(v)
	}
	if v, ok := jsStr(node, "flexWrap"); ok {
		l.Wrap = strings.ToLower(v) == "wrap"
	}
	if f, ok := jsFloat(node["flexGrow"]); ok {
		l.Grow = f
	}
	if f, ok := jsFloat(node["flexShrink"]); ok {
		l.Shrink = f
	}
	if f, ok := jsFloat(node["gap"]); ok {
		l.Gap = f
	}
	if v, ok := jsStr(node, "gridTemplateColumns"); ok {
		l.GridColumns = parseGridTracks(v)
	}
	if v, ok := jsStr(node, "gridTemplateRows"); ok {
		l.GridRows = parseGridTracks(v)
	}
	if v, ok := jsStr(node, "justifyItems"); ok {
		l.JustifyItems = parseAlignment(v)
	}
	if v, ok := jsStr(node, "gridAlignItems"); ok {
		l.GridAlignItems = parseAlignment(v)
	}
}

// parseGridTracks understands a space-separated track list with px/fr/auto
// entries, minmax(a, b), and repeat(n, tracks).
func parseGridTracks(s string) []ir.GridTrack {
	var out []ir.GridTrack
	for _, tok := range splitTracks(s) {
		switch {
		case strings.HasPrefix(tok, "repeat(") && strings.HasSuffix(tok, ")"):
			inner := tok[len("repeat(") : len(tok)-1]
			comma := strings.IndexByte(inner, ',')
			if comma < 0 {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(inner[:comma]))
			if err != nil || n <= 0 || n > 1000 {
				continue
			}
			rep := parseGridTracks(strings.TrimSpace(inner[comma+1:]))
			for i := 0; i < n; i++ {
				out = append(out, rep...)
			}
		case strings.HasPrefix(tok, "minmax(") && strings.HasSuffix(tok, ")"):
			inner := tok[len("minmax(") : len(tok)-1]
			comma := strings.IndexByte(inner, ',')
			if comma < 0 {
				continue
			}
			min, _ := parseDimension(strings.TrimSpace(inner[:comma]))
			max, _ := parseDimension(strings.TrimSpace(inner[comma+1:]))
			out = append(out, ir.GridTrack{Kind: ir.TrackMinMax, Min: min, Max: max})
		case tok == "auto":
			out = append(out, ir.GridTrack{Kind: ir.TrackAuto})
		case strings.HasSuffix(tok, "fr"):
			f, err := strconv.ParseFloat(tok[:len(tok)-2], 32)
			if err == nil {
				out = append(out, ir.GridTrack{Kind: ir.TrackFr, Value: float32(f)})
			}
		default:
			if d, ok := parseDimension(tok); ok && d.Unit == ir.UnitPx {
				out = append(out, ir.GridTrack{Kind: ir.TrackPx, Value: d.Value})
			}
		}
	}
	return out
}

// splitTracks splits on spaces outside parentheses.
func splitTracks(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 {
				if tok := strings.TrimSpace(s[start:i]); tok != "" {
					out = append(out, tok)
				}
				start = i + 1
			}
		}
	}
	if tok := strings.TrimSpace(s[start:]); tok != "" {
		out = append(out, tok)
	}
	return out
}
