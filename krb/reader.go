// krb/reader.go
package krb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/waozixyz/kryon-ir/ir"
)

// Meta is the document-level state recovered from a snapshot.
type Meta struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
}

// Decode reads a KRB snapshot back into a live component tree. Ids are
// registered with ctx so later allocations stay collision-free.
func Decode(data []byte, ctx *ir.Context) (*ir.Component, *Meta, error) {
	if len(data) < HeaderSize {
		return nil, nil, fmt.Errorf("krb: file too small for header (%d bytes)", len(data))
	}
	if !bytes.Equal(data[0:4], MagicNumber[:]) {
		return nil, nil, fmt.Errorf("krb: bad magic %q", data[0:4])
	}
	version := readU16(data[4:])
	if version != ExpectedVersion {
		return nil, nil, fmt.Errorf("krb: unsupported version 0x%04x, want 0x%04x", version, ExpectedVersion)
	}

	hdr := Header{
		Version:       version,
		Flags:         readU16(data[6:]),
		ElementCount:  readU32(data[8:]),
		StringCount:   readU32(data[12:]),
		StringOffset:  readU32(data[16:]),
		ElementOffset: readU32(data[20:]),
		TotalSize:     readU32(data[24:]),
	}
	if int(hdr.TotalSize) > len(data) {
		return nil, nil, fmt.Errorf("krb: truncated file: header claims %d bytes, have %d", hdr.TotalSize, len(data))
	}

	meta := &Meta{}
	appTitleIndex := uint32(0)
	if hdr.Flags&FlagHasApp != 0 {
		if len(data) < HeaderSize+AppBlockSize {
			return nil, nil, fmt.Errorf("krb: truncated app block")
		}
		appTitleIndex = readU32(data[HeaderSize:])
		meta.WindowWidth = int(readU16(data[HeaderSize+4:]))
		meta.WindowHeight = int(readU16(data[HeaderSize+6:]))
	}

	strs, err := readStringTable(data, hdr)
	if err != nil {
		return nil, nil, err
	}
	if int(appTitleIndex) < len(strs) {
		meta.WindowTitle = strs[appTitleIndex]
	}

	d := &decoder{
		data:    data,
		pos:     int(hdr.ElementOffset),
		strings: strs,
		ctx:     ctx,
	}
	root, err := d.element()
	if err != nil {
		return nil, nil, err
	}
	return root, meta, nil
}

// ReadFile loads and decodes a snapshot from path.
func ReadFile(path string, ctx *ir.Context) (*ir.Component, *Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return Decode(data, ctx)
}

func readStringTable(data []byte, hdr Header) ([]string, error) {
	pos := int(hdr.StringOffset)
	strs := make([]string, 0, hdr.StringCount)
	for i := uint32(0); i < hdr.StringCount; i++ {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("krb: truncated string table at entry %d", i)
		}
		n := int(readU16(data[pos:]))
		pos += 2
		if pos+n > len(data) {
			return nil, fmt.Errorf("krb: truncated string entry %d", i)
		}
		strs = append(strs, string(data[pos:pos+n]))
		pos += n
	}
	return strs, nil
}

type decoder struct {
	data    []byte
	pos     int
	strings []string
	ctx     *ir.Context
}

func (d *decoder) str(idx uint32) string {
	if int(idx) < len(d.strings) {
		return d.strings[idx]
	}
	return ""
}

func (d *decoder) take(n int) ([]byte, error) {
	if d.pos+n > len(d.data) {
		return nil, fmt.Errorf("krb: truncated element stream at offset %d", d.pos)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) element() (*ir.Component, error) {
	hdr, err := d.take(ElementHeaderSize)
	if err != nil {
		return nil, err
	}

	c := ir.NewComponent(d.ctx, ir.ComponentType(hdr[0]))
	c.ID = readU32(hdr[1:])
	d.ctx.ObserveID(c.ID)
	c.OwnerInstanceID = readU32(hdr[5:])
	c.Text = d.str(readU32(hdr[9:]))
	c.TextExpression = d.str(readU32(hdr[13:]))

	propCount := int(hdr[17])
	eventCount := int(hdr[18])
	childCount := int(readU16(hdr[19:]))

	for i := 0; i < propCount; i++ {
		if err := d.property(c); err != nil {
			return nil, err
		}
	}

	for i := 0; i < eventCount; i++ {
		entry, err := d.take(EventEntrySize)
		if err != nil {
			return nil, err
		}
		c.Events = append(c.Events, ir.Event{
			Kind:        ir.EventKind(entry[0]),
			LogicID:     d.str(readU32(entry[1:])),
			HandlerData: d.str(readU32(entry[5:])),
		})
	}

	for i := 0; i < childCount; i++ {
		child, err := d.element()
		if err != nil {
			return nil, err
		}
		c.AddChild(child)
	}

	if c.Type == ir.ComponentTabGroup {
		rewireTabs(c)
	}
	return c, nil
}

func (d *decoder) property(c *ir.Component) error {
	tl, err := d.take(4)
	if err != nil {
		return err
	}
	id := PropertyID(tl[0])
	size := int(readU16(tl[2:]))
	value, err := d.take(size)
	if err != nil {
		return err
	}

	color := func() ir.Color {
		if len(value) < 4 {
			return ir.Color{}
		}
		return ir.RGBA(value[0], value[1], value[2], value[3])
	}
	f32 := func() float32 {
		if len(value) < 4 {
			return 0
		}
		return math.Float32frombits(readU32(value))
	}
	dim := func() ir.Dimension {
		if len(value) < 5 {
			return ir.Auto()
		}
		return ir.Dimension{
			Unit:  ir.DimensionUnit(value[0]),
			Value: math.Float32frombits(readU32(value[1:])),
		}
	}
	insets := func() ir.Spacing {
		if len(value) < 16 {
			return ir.Spacing{}
		}
		return ir.Spacing{
			Top:    math.Float32frombits(readU32(value[0:])),
			Right:  math.Float32frombits(readU32(value[4:])),
			Bottom: math.Float32frombits(readU32(value[8:])),
			Left:   math.Float32frombits(readU32(value[12:])),
		}
	}
	strVal := func() string {
		if len(value) < 4 {
			return ""
		}
		return d.str(readU32(value))
	}

	switch id {
	case PropIDBgColor:
		c.EnsureStyle().Background = color()
	case PropIDFgColor:
		c.EnsureStyle().Color = color()
	case PropIDBorderColor:
		c.EnsureStyle().Border.Color = color()
	case PropIDBorderWidths:
		c.EnsureStyle().Border.Widths = insets()
	case PropIDBorderRadius:
		c.EnsureStyle().Border.Radius = f32()
	case PropIDPadding:
		c.EnsureStyle().Padding = insets()
	case PropIDMargin:
		c.EnsureStyle().Margin = insets()
	case PropIDFontSize:
		c.EnsureStyle().Font.Size = f32()
	case PropIDFontFlags:
		if len(value) >= 1 {
			s := c.EnsureStyle()
			s.Font.Bold = value[0]&FontFlagBold != 0
			s.Font.Italic = value[0]&FontFlagItalic != 0
		}
	case PropIDOpacity:
		c.EnsureStyle().Opacity = f32()
	case PropIDVisibility:
		if len(value) >= 1 {
			c.EnsureStyle().Visible = value[0] != 0
		}
	case PropIDGap:
		c.EnsureLayout().Gap = f32()
	case PropIDWidth:
		c.EnsureStyle().Width = dim()
	case PropIDHeight:
		c.EnsureStyle().Height = dim()
	case PropIDMinWidth:
		c.EnsureStyle().MinWidth = dim()
	case PropIDMinHeight:
		c.EnsureStyle().MinHeight = dim()
	case PropIDMaxWidth:
		c.EnsureStyle().MaxWidth = dim()
	case PropIDMaxHeight:
		c.EnsureStyle().MaxHeight = dim()
	case PropIDLayoutFlags:
		if len(value) >= 3 {
			l := c.EnsureLayout()
			l.Direction = ir.FlexDirection(value[0])
			l.JustifyContent = ir.Alignment(value[1])
			l.AlignItems = ir.Alignment(value[2])
		}
	case PropIDCustomData:
		if err := decodeCustomData(c, value); err != nil {
			return err
		}
	case PropIDComponentRef:
		c.ComponentRef = strVal()
	case PropIDModuleRef:
		c.ModuleRef = strVal()
	case PropIDExportName:
		c.ExportName = strVal()
	case PropIDActualType:
		c.ActualType = strVal()
	default:
		// Unknown property ids are skipped; the value was already consumed.
	}
	return nil
}

// decodeCustomData unmarshals the payload struct matching the component type.
func decodeCustomData(c *ir.Component, blob []byte) error {
	var target ir.CustomData
	switch c.Type {
	case ir.ComponentTabGroup:
		target = &ir.TabGroupData{}
	case ir.ComponentTab:
		target = &ir.TabData{}
	case ir.ComponentDropdown, ir.ComponentSelect:
		target = &ir.DropdownData{}
	case ir.ComponentModal:
		target = &ir.ModalData{}
	case ir.ComponentTable:
		target = &ir.TableData{}
	case ir.ComponentTableCell:
		target = &ir.TableCellData{}
	case ir.ComponentHeading:
		target = &ir.HeadingData{}
	case ir.ComponentList:
		target = &ir.ListData{}
	case ir.ComponentListItem:
		target = &ir.ListItemData{}
	case ir.ComponentBlockquote:
		target = &ir.BlockquoteData{}
	case ir.ComponentCodeBlock:
		target = &ir.CodeBlockData{}
	case ir.ComponentLink:
		target = &ir.LinkData{}
	case ir.ComponentImage:
		target = &ir.ImageData{}
	case ir.ComponentCheckbox:
		target = &ir.CheckboxData{}
	case ir.ComponentInput, ir.ComponentTextarea:
		target = &ir.InputData{}
	case ir.ComponentVideo:
		target = &ir.VideoData{}
	case ir.ComponentRawBlock:
		target = &ir.RawBlockData{}
	case ir.ComponentStaticBlock:
		target = &ir.StaticBlockData{}
	case ir.ComponentForLoop:
		target = &ir.ForLoopData{}
	default:
		return nil
	}
	if err := json.Unmarshal(blob, target); err != nil {
		return fmt.Errorf("krb: custom data on component %d: %w", c.ID, err)
	}
	c.CustomData = target
	return nil
}

// rewireTabs restores runtime tab state: the decoded TabContent holds every
// panel, so register them all and leave only the active one attached.
func rewireTabs(group *ir.Component) {
	tg := group.EnsureTabGroup()
	var content *ir.Component
	for _, child := range group.Children {
		if child.Type == ir.ComponentTabContent {
			content = child
			break
		}
	}
	if content == nil || len(content.Children) == 0 {
		return
	}
	tg.Panels = append([]*ir.Component(nil), content.Children...)
	if tg.ActiveIndex < 0 || tg.ActiveIndex >= len(tg.Panels) {
		tg.ActiveIndex = 0
	}
	active := tg.Panels[tg.ActiveIndex]
	for len(content.Children) > 0 {
		content.RemoveChild(content.Children[0])
	}
	content.AddChild(active)
}
