// kir/style_test.go
package kir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-ir/ir"
)

func TestSpacingCompaction(t *testing.T) {
	assert.Equal(t, float32(8), spacingValue(ir.UniformSpacing(8)))
	assert.Equal(t, []any{float32(4), float32(8)},
		spacingValue(ir.Spacing{Top: 4, Right: 8, Bottom: 4, Left: 8}))
	assert.Equal(t, []any{float32(1), float32(2), float32(3), float32(4)},
		spacingValue(ir.Spacing{Top: 1, Right: 2, Bottom: 3, Left: 4}))
}

func TestParseSpacingForms(t *testing.T) {
	sp, ok := parseSpacing(float64(8))
	require.True(t, ok)
	assert.Equal(t, ir.UniformSpacing(8), sp)

	sp, ok = parseSpacing([]any{4.0, 8.0})
	require.True(t, ok)
	assert.Equal(t, ir.Spacing{Top: 4, Right: 8, Bottom: 4, Left: 8}, sp)

	sp, ok = parseSpacing([]any{1.0, 2.0, 3.0, 4.0})
	require.True(t, ok)
	assert.Equal(t, ir.Spacing{Top: 1, Right: 2, Bottom: 3, Left: 4}, sp)

	_, ok = parseSpacing([]any{1.0, 2.0, 3.0})
	assert.False(t, ok, "three-element arrays are not a spacing form")
	_, ok = parseSpacing("8px")
	assert.False(t, ok)
}

func TestDimensionRoundTrip(t *testing.T) {
	cases := []ir.Dimension{
		ir.Px(12),
		ir.Px(0.5),
		ir.Percent(50),
		{Value: 1.5, Unit: ir.UnitEm},
		{Value: 2, Unit: ir.UnitRem},
		{Value: 10, Unit: ir.UnitVw},
		{Value: 25, Unit: ir.UnitVh},
		{Value: 1, Unit: ir.UnitFr},
	}
	for _, want := range cases {
		got, ok := parseDimension(want.String())
		require.True(t, ok, "parse %q", want.String())
		assert.Equal(t, want, got, "round trip of %q", want.String())
	}

	got, ok := parseDimension("auto")
	require.True(t, ok)
	assert.False(t, got.IsSet())

	got, ok = parseDimension(float64(24))
	require.True(t, ok)
	assert.Equal(t, ir.Px(24), got)

	// Unknown suffixes degrade to px rather than failing.
	got, ok = parseDimension("12pt")
	require.True(t, ok)
	assert.Equal(t, ir.Px(12), got)

	_, ok = parseDimension(nil)
	assert.False(t, ok)
}

func TestColorSerialization(t *testing.T) {
	assert.Equal(t, "#ff0000", colorValue(ir.RGB(255, 0, 0)))
	assert.Equal(t, "#00ff0080", colorValue(ir.RGBA(0, 255, 0, 128)))
	assert.Equal(t, "transparent", colorValue(ir.Transparent()))
	assert.Equal(t, "var(--accent)", colorValue(ir.Color{A: 255, VarRef: "var(--accent)"}))
}

func TestParseColorForms(t *testing.T) {
	c, ok := parseColor("#ff0000")
	require.True(t, ok)
	assert.Equal(t, ir.RGB(255, 0, 0), c)

	c, ok = parseColor("#00ff0080")
	require.True(t, ok)
	assert.Equal(t, ir.RGBA(0, 255, 0, 128), c)

	c, ok = parseColor("#abc")
	require.True(t, ok)
	assert.Equal(t, ir.RGB(0xaa, 0xbb, 0xcc), c)

	c, ok = parseColor("transparent")
	require.True(t, ok)
	assert.True(t, c.IsTransparent())

	c, ok = parseColor("rgba(10, 20, 30, 0.5)")
	require.True(t, ok)
	assert.Equal(t, ir.RGBA(10, 20, 30, 127), c)

	c, ok = parseColor("rgb(1, 2, 3)")
	require.True(t, ok)
	assert.Equal(t, ir.RGB(1, 2, 3), c)

	c, ok = parseColor("Orange")
	require.True(t, ok)
	assert.Equal(t, ir.RGB(255, 165, 0), c)

	c, ok = parseColor("var(--fg)")
	require.True(t, ok)
	assert.Equal(t, "var(--fg)", c.VarRef)

	_, ok = parseColor("not-a-color")
	assert.False(t, ok)
	_, ok = parseColor(12.0)
	assert.False(t, ok)
}

func TestColorRoundTrip(t *testing.T) {
	cases := []ir.Color{
		ir.RGB(1, 2, 3),
		ir.RGBA(200, 100, 50, 25),
		ir.Transparent(),
		{A: 255, VarRef: "var(--bg)"},
	}
	for _, want := range cases {
		got, ok := parseColor(colorValue(want))
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestGradientRoundTrip(t *testing.T) {
	g := &ir.Gradient{
		Kind:  "linear",
		Angle: 45,
		Stops: []ir.GradientStop{
			{Position: 0, Color: ir.RGB(255, 0, 0)},
			{Position: 1, Color: ir.RGB(0, 0, 255)},
		},
	}
	wire := gradientValue(g)

	got, ok := parseColor(wire)
	require.True(t, ok)
	require.NotNil(t, got.Gradient)
	assert.Equal(t, "linear", got.Gradient.Kind)
	assert.Equal(t, float32(45), got.Gradient.Angle)
	require.Len(t, got.Gradient.Stops, 2)
	assert.Equal(t, ir.RGB(255, 0, 0), got.Gradient.Stops[0].Color)
	assert.Equal(t, float32(1), got.Gradient.Stops[1].Position)
}

func TestParseAlignmentKeywords(t *testing.T) {
	assert.Equal(t, ir.AlignCenter, parseAlignment("center"))
	assert.Equal(t, ir.AlignEnd, parseAlignment("flex-end"))
	assert.Equal(t, ir.AlignSpaceBetween, parseAlignment("space-between"))
	assert.Equal(t, ir.AlignStretch, parseAlignment("stretch"))
	assert.Equal(t, ir.AlignStart, parseAlignment("flex-start"))
	assert.Equal(t, ir.AlignStart, parseAlignment("nonsense"))
}

func TestParseGridTracks(t *testing.T) {
	tracks := parseGridTracks("repeat(2, 1fr) minmax(100px, 1fr) auto 50px")
	require.Len(t, tracks, 5)
	assert.Equal(t, ir.GridTrack{Kind: ir.TrackFr, Value: 1}, tracks[0])
	assert.Equal(t, ir.GridTrack{Kind: ir.TrackFr, Value: 1}, tracks[1])
	assert.Equal(t, ir.TrackMinMax, tracks[2].Kind)
	assert.Equal(t, ir.Px(100), tracks[2].Min)
	assert.Equal(t, ir.TrackAuto, tracks[3].Kind)
	assert.Equal(t, ir.GridTrack{Kind: ir.TrackPx, Value: 50}, tracks[4])
}

func TestDeserializeStyleIsLazy(t *testing.T) {
	ctx := ir.NewContext()
	c := ir.NewComponent(ctx, ir.ComponentContainer)

	deserializeStyle(c, map[string]any{"id": 1.0, "type": "Container"})
	assert.Nil(t, c.Style, "no style keys means no style set")

	deserializeStyle(c, map[string]any{"background": "#102030", "padding": 8.0})
	require.NotNil(t, c.Style)
	assert.Equal(t, ir.RGB(0x10, 0x20, 0x30), c.Style.Background)
	assert.Equal(t, ir.UniformSpacing(8), c.Style.Padding)
	assert.True(t, c.Style.Visible, "defaults survive partial deserialization")
}

func TestPerSideSpacingOverrides(t *testing.T) {
	ctx := ir.NewContext()
	c := ir.NewComponent(ctx, ir.ComponentContainer)

	deserializeStyle(c, map[string]any{
		"padding":     8.0,
		"paddingLeft": 20.0,
	})
	require.NotNil(t, c.Style)
	assert.Equal(t, ir.Spacing{Top: 8, Right: 8, Bottom: 8, Left: 20}, c.Style.Padding)
}
