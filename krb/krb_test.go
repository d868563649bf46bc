// krb/krb_test.go
package krb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-ir/ir"
)

func buildSampleTree(ctx *ir.Context) *ir.Component {
	root := ir.NewComponent(ctx, ir.ComponentColumn)
	root.EnsureStyle().Background = ir.RGB(30, 30, 30)
	root.Style.Padding = ir.UniformSpacing(16)
	root.EnsureLayout().Gap = 12

	heading := ir.NewComponent(ctx, ir.ComponentHeading)
	heading.Text = "Snapshot"
	heading.EnsureStyle().Font.Size = 28
	heading.Style.Font.Bold = true
	heading.CustomData = &ir.HeadingData{Level: 2, Text: "Snapshot"}
	root.AddChild(heading)

	button := ir.NewComponent(ctx, ir.ComponentButton)
	button.Text = "Go"
	button.EnsureStyle().Width = ir.Px(120)
	button.Style.Color = ir.RGBA(255, 255, 255, 200)
	button.Events = append(button.Events, ir.Event{Kind: ir.EventClick, LogicID: "on_go"})
	root.AddChild(button)

	row := ir.NewComponent(ctx, ir.ComponentRow)
	row.EnsureLayout().Direction = ir.DirectionRow
	row.Layout.JustifyContent = ir.AlignCenter
	root.AddChild(row)
	return root
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := ir.NewContext()
	root := buildSampleTree(ctx)

	data, err := Encode(root, EncodeOptions{
		WindowTitle:  "Demo",
		WindowWidth:  640,
		WindowHeight: 480,
	})
	require.NoError(t, err)

	got, meta, err := Decode(data, ir.NewContext())
	require.NoError(t, err)

	assert.Equal(t, "Demo", meta.WindowTitle)
	assert.Equal(t, 640, meta.WindowWidth)
	assert.Equal(t, 480, meta.WindowHeight)

	assert.Equal(t, root.ID, got.ID)
	assert.Equal(t, ir.ComponentColumn, got.Type)
	assert.Equal(t, ir.RGB(30, 30, 30), got.Style.Background)
	assert.Equal(t, ir.UniformSpacing(16), got.Style.Padding)
	assert.Equal(t, float32(12), got.Layout.Gap)
	require.Equal(t, 3, got.ChildCount())

	heading := got.Children[0]
	assert.Equal(t, "Snapshot", heading.Text)
	assert.Equal(t, float32(28), heading.Style.Font.Size)
	assert.True(t, heading.Style.Font.Bold)
	hd := heading.CustomData.(*ir.HeadingData)
	assert.Equal(t, 2, hd.Level)

	button := got.Children[1]
	assert.Equal(t, ir.Px(120), button.Style.Width)
	assert.Equal(t, ir.RGBA(255, 255, 255, 200), button.Style.Color)
	require.Len(t, button.Events, 1)
	assert.Equal(t, ir.EventClick, button.Events[0].Kind)
	assert.Equal(t, "on_go", button.Events[0].LogicID)

	row := got.Children[2]
	assert.Equal(t, ir.DirectionRow, row.Layout.Direction)
	assert.Equal(t, ir.AlignCenter, row.Layout.JustifyContent)
}

func TestSnapshotCarriesAllTabPanels(t *testing.T) {
	ctx := ir.NewContext()
	group := ir.NewComponent(ctx, ir.ComponentTabGroup)
	content := ir.NewComponent(ctx, ir.ComponentTabContent)
	group.AddChild(content)

	first := ir.NewComponent(ctx, ir.ComponentTabPanel)
	second := ir.NewComponent(ctx, ir.ComponentTabPanel)
	second.Text = "hidden"
	content.AddChild(first)

	tg := group.EnsureTabGroup()
	tg.Panels = []*ir.Component{first, second}
	tg.ActiveIndex = 0

	data, err := Encode(group, EncodeOptions{})
	require.NoError(t, err)

	got, _, err := Decode(data, ir.NewContext())
	require.NoError(t, err)

	dtg := got.TabGroup()
	require.NotNil(t, dtg)
	require.Len(t, dtg.Panels, 2)
	assert.Equal(t, "hidden", dtg.Panels[1].Text)

	decodedContent := got.Children[0]
	require.Equal(t, 1, decodedContent.ChildCount(), "only the active panel reattaches")
	assert.Same(t, dtg.Panels[0], decodedContent.Children[0])
}

func TestDecodeRegistersIDs(t *testing.T) {
	ctx := ir.NewContext()
	root := ir.NewComponent(ctx, ir.ComponentContainer)
	root.ID = 900

	data, err := Encode(root, EncodeOptions{})
	require.NoError(t, err)

	fresh := ir.NewContext()
	_, _, err = Decode(data, fresh)
	require.NoError(t, err)
	assert.Equal(t, uint32(901), fresh.NextID())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode([]byte("not a snapshot"), ir.NewContext())
	assert.Error(t, err)

	_, _, err = Decode(nil, ir.NewContext())
	assert.Error(t, err)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	ctx := ir.NewContext()
	root := ir.NewComponent(ctx, ir.ComponentContainer)
	data, err := Encode(root, EncodeOptions{})
	require.NoError(t, err)

	data[4] = 0xFF
	_, _, err = Decode(data, ir.NewContext())
	assert.Error(t, err)
}

func TestDecodeRejectsTruncated(t *testing.T) {
	ctx := ir.NewContext()
	root := buildSampleTree(ctx)
	data, err := Encode(root, EncodeOptions{WindowTitle: "x"})
	require.NoError(t, err)

	_, _, err = Decode(data[:len(data)-10], ir.NewContext())
	assert.Error(t, err)
}
