// Package krb implements the KRB binary snapshot format for component trees.
//
// A snapshot carries a fully expanded tree (template and module references
// already resolved) plus the window settings, which makes it a fast-path
// load format: no JSON parsing, no expansion, no module resolution. It is
// not a source format; KIR JSON stays authoritative.
//
// Layout: fixed header, optional app block, string table, then the element
// stream in depth-first order. All integers are little-endian.
package krb

import "encoding/binary"

const (
	SpecVersionMajor = 0
	SpecVersionMinor = 4
	ExpectedVersion  = uint16(SpecVersionMinor<<8 | SpecVersionMajor)
)

var MagicNumber = [4]byte{'K', 'R', 'B', '1'}

// Header flags.
const (
	FlagHasApp uint16 = 1 << 0
	// Bits 1-15 reserved.
)

// PropertyID tags one TLV property in an element record.
type PropertyID uint8

const (
	PropIDInvalid      PropertyID = 0x00
	PropIDBgColor      PropertyID = 0x01
	PropIDFgColor      PropertyID = 0x02
	PropIDBorderColor  PropertyID = 0x03
	PropIDBorderWidths PropertyID = 0x04
	PropIDBorderRadius PropertyID = 0x05
	PropIDPadding      PropertyID = 0x06
	PropIDMargin       PropertyID = 0x07
	PropIDFontSize     PropertyID = 0x09
	PropIDFontFlags    PropertyID = 0x0A
	PropIDOpacity      PropertyID = 0x0D
	PropIDVisibility   PropertyID = 0x0F
	PropIDGap          PropertyID = 0x10
	PropIDWidth        PropertyID = 0x11
	PropIDHeight       PropertyID = 0x12
	PropIDMinWidth     PropertyID = 0x13
	PropIDMinHeight    PropertyID = 0x14
	PropIDMaxWidth     PropertyID = 0x15
	PropIDMaxHeight    PropertyID = 0x16
	PropIDCustomData   PropertyID = 0x19
	PropIDLayoutFlags  PropertyID = 0x1A
	PropIDComponentRef PropertyID = 0x20
	PropIDModuleRef    PropertyID = 0x21
	PropIDExportName   PropertyID = 0x22
	PropIDActualType   PropertyID = 0x23
	// 0x24 - 0xFF reserved.
)

// ValueType describes how a TLV value is encoded.
type ValueType uint8

const (
	ValTypeNone       ValueType = 0x00
	ValTypeByte       ValueType = 0x01
	ValTypeFloat      ValueType = 0x02 // float32 bits
	ValTypeColor      ValueType = 0x03 // RGBA, 4 bytes
	ValTypeString     ValueType = 0x04 // uint32 string table index
	ValTypeDimension  ValueType = 0x05 // unit byte + float32
	ValTypeEdgeInsets ValueType = 0x06 // 4 x float32: top, right, bottom, left
	ValTypeJSON       ValueType = 0x07 // inline UTF-8 JSON
	ValTypeBytes      ValueType = 0x08
)

// FontFlags bits.
const (
	FontFlagBold   uint8 = 1 << 0
	FontFlagItalic uint8 = 1 << 1
)

// Header is the fixed-size file header.
type Header struct {
	Magic         [4]byte
	Version       uint16
	Flags         uint16
	ElementCount  uint32
	StringCount   uint32
	StringOffset  uint32
	ElementOffset uint32
	TotalSize     uint32
}

const HeaderSize = 28

// App is the optional window block; present when FlagHasApp is set.
type App struct {
	TitleIndex uint32
	Width      uint16
	Height     uint16
}

const AppBlockSize = 8

// ElementHeader prefixes every element record in the stream.
type ElementHeader struct {
	Type            uint8
	ID              uint32
	OwnerInstanceID uint32
	TextIndex       uint32
	TextExprIndex   uint32
	PropertyCount   uint8
	EventCount      uint8
	ChildCount      uint16
}

const ElementHeaderSize = 21

// EventEntry is one serialized event hook.
type EventEntry struct {
	Kind             uint8
	LogicIndex       uint32
	HandlerDataIndex uint32
}

const EventEntrySize = 9

func putU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func putU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

func readU16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func readU32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}
