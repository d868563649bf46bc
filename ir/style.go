// ir/style.go
package ir

import "fmt"

// DimensionUnit enumerates how a dimension value is interpreted.
type DimensionUnit uint8

const (
	UnitAuto DimensionUnit = iota
	UnitPx
	UnitPercent
	UnitEm
	UnitRem
	UnitVw
	UnitVh
	UnitFr
)

// Dimension is one style length. Auto dimensions carry no value.
type Dimension struct {
	Value float32
	Unit  DimensionUnit
}

func Px(v float32) Dimension      { return Dimension{Value: v, Unit: UnitPx} }
func Percent(v float32) Dimension { return Dimension{Value: v, Unit: UnitPercent} }
func Auto() Dimension             { return Dimension{Unit: UnitAuto} }

// IsSet reports whether the dimension carries an explicit value.
func (d Dimension) IsSet() bool { return d.Unit != UnitAuto }

func (d Dimension) String() string {
	switch d.Unit {
	case UnitPx:
		return fmt.Sprintf("%.1fpx", d.Value)
	case UnitPercent:
		return fmt.Sprintf("%.1f%%", d.Value)
	case UnitEm:
		return fmt.Sprintf("%.1fem", d.Value)
	case UnitRem:
		return fmt.Sprintf("%.1frem", d.Value)
	case UnitVw:
		return fmt.Sprintf("%.1fvw", d.Value)
	case UnitVh:
		return fmt.Sprintf("%.1fvh", d.Value)
	case UnitFr:
		return fmt.Sprintf("%.1ffr", d.Value)
	default:
		return "auto"
	}
}

// GradientStop is one color stop, position in [0,1].
type GradientStop struct {
	Position float32
	Color    Color
}

// Gradient describes a linear or radial background gradient.
type Gradient struct {
	Kind    string // "linear" or "radial"
	Angle   float32
	CenterX float32
	CenterY float32
	Stops   []GradientStop
}

// Color is an RGBA paint value. VarRef, when non-empty, records that the color
// came from a stylesheet variable reference (`var(--name)`) and is
// authoritative for serialization.
type Color struct {
	R, G, B, A uint8
	VarRef     string
	Gradient   *Gradient
}

func RGB(r, g, b uint8) Color      { return Color{R: r, G: g, B: b, A: 255} }
func RGBA(r, g, b, a uint8) Color  { return Color{R: r, G: g, B: b, A: a} }
func Transparent() Color           { return Color{} }
func (c Color) IsTransparent() bool { return c.A == 0 && c.VarRef == "" && c.Gradient == nil }

// Spacing holds per-side box distances (margin, padding, border widths).
type Spacing struct {
	Top, Right, Bottom, Left float32
}

func UniformSpacing(v float32) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v}
}

func (s Spacing) Horizontal() float32 { return s.Left + s.Right }
func (s Spacing) Vertical() float32   { return s.Top + s.Bottom }
func (s Spacing) IsZero() bool        { return s == Spacing{} }
func (s Spacing) Uniform() bool {
	return s.Top == s.Right && s.Right == s.Bottom && s.Bottom == s.Left
}

// Symmetric reports top==bottom and left==right, the shape that serializes to
// a 2-element [vertical, horizontal] array.
func (s Spacing) Symmetric() bool {
	return s.Top == s.Bottom && s.Left == s.Right
}

// Border describes edge decoration. Widths are per side; radius applies to
// all corners.
type Border struct {
	Widths Spacing
	Color  Color
	Radius float32
}

// TextAlign enumerates horizontal text alignment.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
	TextAlignJustify
)

func (a TextAlign) String() string {
	switch a {
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	case TextAlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Font groups typography properties.
type Font struct {
	Size          float32
	Family        string
	Weight        int
	Bold          bool
	Italic        bool
	LineHeight    float32
	LetterSpacing float32
	WordSpacing   float32
	Align         TextAlign
	Decoration    string
	MaxTextWidth  Dimension
}

// Transform holds 2D transform parameters.
type Transform struct {
	TranslateX, TranslateY float32
	ScaleX, ScaleY         float32
	Rotate                 float32
}

// PositionKind selects the positioning scheme.
type PositionKind uint8

const (
	PositionRelative PositionKind = iota
	PositionAbsolute
	PositionFixed
)

// Style is the paint/box property set of one component. Created lazily; a
// component without one renders with defaults.
type Style struct {
	Width, Height       Dimension
	MinWidth, MinHeight Dimension
	MaxWidth, MaxHeight Dimension

	Visible bool
	Opacity float32
	ZIndex  int

	Background      Color
	BackgroundImage string
	BackgroundClip  string
	TextFillColor   Color

	Border Border

	Position  PositionKind
	Left, Top Dimension

	Color Color
	Font  Font

	Padding Spacing
	Margin  Spacing

	Transform *Transform
}

// NewStyle returns a style with the defaults the serializer treats as
// "absent": visible, fully opaque, everything else zero.
func NewStyle() *Style {
	return &Style{Visible: true, Opacity: 1.0}
}

// FontSizeOr returns the explicit font size or the supplied fallback.
func (s *Style) FontSizeOr(fallback float32) float32 {
	if s != nil && s.Font.Size > 0 {
		return s.Font.Size
	}
	return fallback
}

// LineHeightOr returns the explicit line-height multiplier or the fallback.
func (s *Style) LineHeightOr(fallback float32) float32 {
	if s != nil && s.Font.LineHeight > 0 {
		return s.Font.LineHeight
	}
	return fallback
}
