// ir/layoutprops.go
package ir

// Display selects the layout scheme of a container.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayGrid
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayGrid:
		return "grid"
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "flex"
	}
}

// FlexDirection is the main axis of a flex container. Column is the default.
type FlexDirection uint8

const (
	DirectionColumn FlexDirection = iota
	DirectionRow
)

// Alignment covers both justify-content and align-items values.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignSpaceBetween
	AlignSpaceAround
	AlignSpaceEvenly
	AlignStretch
)

// CSSKeyword returns the flexbox keyword used on the wire.
func (a Alignment) CSSKeyword() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "flex-end"
	case AlignSpaceBetween:
		return "space-between"
	case AlignSpaceAround:
		return "space-around"
	case AlignSpaceEvenly:
		return "space-evenly"
	case AlignStretch:
		return "stretch"
	default:
		return "flex-start"
	}
}

// GridTrackKind discriminates grid track sizes.
type GridTrackKind uint8

const (
	TrackAuto GridTrackKind = iota
	TrackPx
	TrackFr
	TrackMinMax
)

// GridTrack is one column/row track of a grid template.
type GridTrack struct {
	Kind GridTrackKind
	// Value is the px or fr amount for TrackPx/TrackFr.
	Value float32
	// Min/Max apply to TrackMinMax tracks.
	Min, Max Dimension
}

// LayoutProps is the flow property set of one component. JustifyContent and
// AlignItems are the single source of truth for axis alignment.
type LayoutProps struct {
	Display   Display
	Direction FlexDirection

	JustifyContent Alignment
	AlignItems     Alignment

	Wrap   bool
	Grow   float32
	Shrink float32
	Gap    float32

	MinWidth, MinHeight float32
	MaxWidth, MaxHeight float32

	GridColumns    []GridTrack
	GridRows       []GridTrack
	JustifyItems   Alignment
	GridAlignItems Alignment
}

// NewLayoutProps returns layout properties with the engine defaults
// (flex column, shrink 1).
func NewLayoutProps() *LayoutProps {
	return &LayoutProps{Shrink: 1}
}

// EffectiveDirection resolves the main axis for a component: Row/TabBar force
// a horizontal flow, Column forces vertical, otherwise the property decides.
func (c *Component) EffectiveDirection() FlexDirection {
	switch c.Type {
	case ComponentRow, ComponentTabBar:
		return DirectionRow
	case ComponentColumn, ComponentTabGroup, ComponentTabPanel, ComponentList:
		return DirectionColumn
	}
	if c.Layout != nil {
		return c.Layout.Direction
	}
	return DirectionColumn
}
