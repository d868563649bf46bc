// krb/writer.go
package krb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/waozixyz/kryon-ir/ir"
)

// EncodeOptions carries the document-level state a snapshot persists besides
// the tree itself.
type EncodeOptions struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
}

// Encode serializes a fully expanded component tree into KRB snapshot bytes.
func Encode(root *ir.Component, opts EncodeOptions) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("krb: cannot encode nil tree")
	}

	enc := &encoder{
		stringIndex: map[string]uint32{"": 0},
		strings:     []string{""},
	}
	if err := enc.element(root); err != nil {
		return nil, err
	}

	hasApp := opts.WindowTitle != "" || opts.WindowWidth > 0 || opts.WindowHeight > 0
	var appBlock [AppBlockSize]byte
	flags := uint16(0)
	if hasApp {
		flags |= FlagHasApp
		putU32(appBlock[0:], enc.intern(opts.WindowTitle))
		putU16(appBlock[4:], uint16(opts.WindowWidth))
		putU16(appBlock[6:], uint16(opts.WindowHeight))
	}

	var strTable bytes.Buffer
	for _, s := range enc.strings {
		if len(s) > math.MaxUint16 {
			return nil, fmt.Errorf("krb: string of %d bytes exceeds table entry limit", len(s))
		}
		var lenBuf [2]byte
		putU16(lenBuf[:], uint16(len(s)))
		strTable.Write(lenBuf[:])
		strTable.WriteString(s)
	}

	stringOffset := uint32(HeaderSize)
	if hasApp {
		stringOffset += AppBlockSize
	}
	elementOffset := stringOffset + uint32(strTable.Len())
	totalSize := elementOffset + uint32(enc.elems.Len())

	var header [HeaderSize]byte
	copy(header[0:4], MagicNumber[:])
	putU16(header[4:], ExpectedVersion)
	putU16(header[6:], flags)
	putU32(header[8:], enc.elementCount)
	putU32(header[12:], uint32(len(enc.strings)))
	putU32(header[16:], stringOffset)
	putU32(header[20:], elementOffset)
	putU32(header[24:], totalSize)

	out := bytes.NewBuffer(make([]byte, 0, totalSize))
	out.Write(header[:])
	if hasApp {
		out.Write(appBlock[:])
	}
	out.Write(strTable.Bytes())
	out.Write(enc.elems.Bytes())
	return out.Bytes(), nil
}

// WriteFile encodes the tree and writes the snapshot to path.
func WriteFile(path string, root *ir.Component, opts EncodeOptions) error {
	data, err := Encode(root, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type encoder struct {
	elems        bytes.Buffer
	elementCount uint32
	stringIndex  map[string]uint32
	strings      []string
}

func (e *encoder) intern(s string) uint32 {
	if idx, ok := e.stringIndex[s]; ok {
		return idx
	}
	idx := uint32(len(e.strings))
	e.strings = append(e.strings, s)
	e.stringIndex[s] = idx
	return idx
}

type prop struct {
	id    PropertyID
	vt    ValueType
	value []byte
}

// element writes one record and recurses into its persisted children. A
// TabContent node persists every panel of the owning group, not only the
// attached one.
func (e *encoder) element(c *ir.Component) error {
	if c == nil {
		return fmt.Errorf("krb: nil component in tree")
	}
	props, err := e.collectProps(c)
	if err != nil {
		return err
	}
	if len(props) > math.MaxUint8 {
		return fmt.Errorf("krb: component %d has %d properties, limit is %d", c.ID, len(props), math.MaxUint8)
	}
	if len(c.Events) > math.MaxUint8 {
		return fmt.Errorf("krb: component %d has too many events", c.ID)
	}
	children := persistedChildren(c)
	if len(children) > math.MaxUint16 {
		return fmt.Errorf("krb: component %d has too many children", c.ID)
	}

	var hdr [ElementHeaderSize]byte
	hdr[0] = uint8(c.Type)
	putU32(hdr[1:], c.ID)
	putU32(hdr[5:], c.OwnerInstanceID)
	putU32(hdr[9:], e.intern(c.Text))
	putU32(hdr[13:], e.intern(c.TextExpression))
	hdr[17] = uint8(len(props))
	hdr[18] = uint8(len(c.Events))
	putU16(hdr[19:], uint16(len(children)))
	e.elems.Write(hdr[:])
	e.elementCount++

	for _, p := range props {
		if len(p.value) > math.MaxUint16 {
			return fmt.Errorf("krb: property 0x%02x on component %d exceeds size limit", p.id, c.ID)
		}
		var tl [4]byte
		tl[0] = uint8(p.id)
		tl[1] = uint8(p.vt)
		putU16(tl[2:], uint16(len(p.value)))
		e.elems.Write(tl[:])
		e.elems.Write(p.value)
	}

	for i := range c.Events {
		ev := &c.Events[i]
		var entry [EventEntrySize]byte
		entry[0] = uint8(ev.Kind)
		putU32(entry[1:], e.intern(ev.LogicID))
		putU32(entry[5:], e.intern(ev.HandlerData))
		e.elems.Write(entry[:])
	}

	for _, child := range children {
		if err := e.element(child); err != nil {
			return err
		}
	}
	return nil
}

func persistedChildren(c *ir.Component) []*ir.Component {
	if c.Type == ir.ComponentTabContent {
		if group := c.Parent; group != nil {
			if tg := group.TabGroup(); tg != nil && len(tg.Panels) > 0 {
				return tg.Panels
			}
		}
	}
	return c.Children
}

func (e *encoder) collectProps(c *ir.Component) ([]prop, error) {
	var props []prop
	add := func(id PropertyID, vt ValueType, value []byte) {
		props = append(props, prop{id: id, vt: vt, value: value})
	}
	addColor := func(id PropertyID, col ir.Color) {
		add(id, ValTypeColor, []byte{col.R, col.G, col.B, col.A})
	}
	addFloat := func(id PropertyID, f float32) {
		var b [4]byte
		putU32(b[:], math.Float32bits(f))
		add(id, ValTypeFloat, b[:])
	}
	addDim := func(id PropertyID, d ir.Dimension) {
		var b [5]byte
		b[0] = uint8(d.Unit)
		putU32(b[1:], math.Float32bits(d.Value))
		add(id, ValTypeDimension, b[:])
	}
	addInsets := func(id PropertyID, s ir.Spacing) {
		var b [16]byte
		putU32(b[0:], math.Float32bits(s.Top))
		putU32(b[4:], math.Float32bits(s.Right))
		putU32(b[8:], math.Float32bits(s.Bottom))
		putU32(b[12:], math.Float32bits(s.Left))
		add(id, ValTypeEdgeInsets, b[:])
	}
	addString := func(id PropertyID, s string) {
		var b [4]byte
		putU32(b[:], e.intern(s))
		add(id, ValTypeString, b[:])
	}

	if s := c.Style; s != nil {
		if !s.Background.IsTransparent() {
			addColor(PropIDBgColor, s.Background)
		}
		if !s.Color.IsTransparent() {
			addColor(PropIDFgColor, s.Color)
		}
		if !s.Border.Color.IsTransparent() {
			addColor(PropIDBorderColor, s.Border.Color)
		}
		if !s.Border.Widths.IsZero() {
			addInsets(PropIDBorderWidths, s.Border.Widths)
		}
		if s.Border.Radius != 0 {
			addFloat(PropIDBorderRadius, s.Border.Radius)
		}
		if !s.Padding.IsZero() {
			addInsets(PropIDPadding, s.Padding)
		}
		if !s.Margin.IsZero() {
			addInsets(PropIDMargin, s.Margin)
		}
		if s.Font.Size > 0 {
			addFloat(PropIDFontSize, s.Font.Size)
		}
		var fontFlags uint8
		if s.Font.Bold {
			fontFlags |= FontFlagBold
		}
		if s.Font.Italic {
			fontFlags |= FontFlagItalic
		}
		if fontFlags != 0 {
			add(PropIDFontFlags, ValTypeByte, []byte{fontFlags})
		}
		if s.Opacity != 1 {
			addFloat(PropIDOpacity, s.Opacity)
		}
		if !s.Visible {
			add(PropIDVisibility, ValTypeByte, []byte{0})
		}
		if s.Width.IsSet() {
			addDim(PropIDWidth, s.Width)
		}
		if s.Height.IsSet() {
			addDim(PropIDHeight, s.Height)
		}
		if s.MinWidth.IsSet() {
			addDim(PropIDMinWidth, s.MinWidth)
		}
		if s.MinHeight.IsSet() {
			addDim(PropIDMinHeight, s.MinHeight)
		}
		if s.MaxWidth.IsSet() {
			addDim(PropIDMaxWidth, s.MaxWidth)
		}
		if s.MaxHeight.IsSet() {
			addDim(PropIDMaxHeight, s.MaxHeight)
		}
	}

	if l := c.Layout; l != nil {
		if l.Gap != 0 {
			addFloat(PropIDGap, l.Gap)
		}
		if l.Direction != 0 || l.JustifyContent != 0 || l.AlignItems != 0 {
			add(PropIDLayoutFlags, ValTypeBytes, []byte{
				uint8(l.Direction), uint8(l.JustifyContent), uint8(l.AlignItems),
			})
		}
	}

	if cd := customDataJSON(c.CustomData); cd != nil {
		blob, err := json.Marshal(cd)
		if err != nil {
			return nil, fmt.Errorf("krb: component %d custom data: %w", c.ID, err)
		}
		add(PropIDCustomData, ValTypeJSON, blob)
	}

	if c.ComponentRef != "" {
		addString(PropIDComponentRef, c.ComponentRef)
	}
	if c.ModuleRef != "" {
		addString(PropIDModuleRef, c.ModuleRef)
	}
	if c.ExportName != "" {
		addString(PropIDExportName, c.ExportName)
	}
	if c.ActualType != "" {
		addString(PropIDActualType, c.ActualType)
	}
	return props, nil
}

// customDataJSON picks the marshalable view of a payload. Tab group state is
// reduced to its scalar fields: panels are persisted through the tree itself.
func customDataJSON(cd ir.CustomData) any {
	switch d := cd.(type) {
	case nil:
		return nil
	case *ir.TabGroupData:
		return map[string]any{
			"ActiveIndex": d.ActiveIndex,
			"Position":    d.Position,
		}
	default:
		return d
	}
}
