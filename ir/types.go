// ir/types.go
package ir

import "strings"

// ComponentType identifies what kind of UI element a component is. The set is
// closed; unknown type strings in a document map to ComponentContainer so the
// format stays forward compatible.
type ComponentType uint8

const (
	ComponentContainer ComponentType = iota
	ComponentRow
	ComponentColumn
	ComponentCenter
	ComponentText
	ComponentButton
	ComponentInput
	ComponentTextarea
	ComponentCheckbox
	ComponentDropdown
	ComponentSelect
	ComponentOption
	ComponentLabel
	ComponentForm
	ComponentImage
	ComponentCanvas
	ComponentVideo
	ComponentScrollView
	ComponentGrid
	ComponentList
	ComponentListItem
	ComponentSpacer
	ComponentModal
	ComponentTabGroup
	ComponentTabBar
	ComponentTab
	ComponentTabContent
	ComponentTabPanel
	ComponentTable
	ComponentTableHeader
	ComponentTableBody
	ComponentTableRow
	ComponentTableCell
	ComponentTableFooter
	ComponentHeading
	ComponentBlockquote
	ComponentCodeBlock
	ComponentLink
	ComponentHorizontalRule
	ComponentInlineCode
	ComponentBold
	ComponentItalic
	ComponentStrikethrough
	ComponentInlineContainer
	ComponentRawBlock
	ComponentStaticBlock
	ComponentForLoop
	ComponentFragment
)

var componentTypeNames = map[ComponentType]string{
	ComponentContainer:       "Container",
	ComponentRow:             "Row",
	ComponentColumn:          "Column",
	ComponentCenter:          "Center",
	ComponentText:            "Text",
	ComponentButton:          "Button",
	ComponentInput:           "Input",
	ComponentTextarea:        "Textarea",
	ComponentCheckbox:        "Checkbox",
	ComponentDropdown:        "Dropdown",
	ComponentSelect:          "Select",
	ComponentOption:          "Option",
	ComponentLabel:           "Label",
	ComponentForm:            "Form",
	ComponentImage:           "Image",
	ComponentCanvas:          "Canvas",
	ComponentVideo:           "Video",
	ComponentScrollView:      "ScrollView",
	ComponentGrid:            "Grid",
	ComponentList:            "List",
	ComponentListItem:        "ListItem",
	ComponentSpacer:          "Spacer",
	ComponentModal:           "Modal",
	ComponentTabGroup:        "TabGroup",
	ComponentTabBar:          "TabBar",
	ComponentTab:             "Tab",
	ComponentTabContent:      "TabContent",
	ComponentTabPanel:        "TabPanel",
	ComponentTable:           "Table",
	ComponentTableHeader:     "TableHeader",
	ComponentTableBody:       "TableBody",
	ComponentTableRow:        "TableRow",
	ComponentTableCell:       "TableCell",
	ComponentTableFooter:     "TableFooter",
	ComponentHeading:         "Heading",
	ComponentBlockquote:      "Blockquote",
	ComponentCodeBlock:       "CodeBlock",
	ComponentLink:            "Link",
	ComponentHorizontalRule:  "HorizontalRule",
	ComponentInlineCode:      "InlineCode",
	ComponentBold:            "Bold",
	ComponentItalic:          "Italic",
	ComponentStrikethrough:   "Strikethrough",
	ComponentInlineContainer: "InlineContainer",
	ComponentRawBlock:        "RawBlock",
	ComponentStaticBlock:     "StaticBlock",
	ComponentForLoop:         "ForLoop",
	ComponentFragment:        "Fragment",
}

// componentTypeLookup is keyed by lowercase name and includes the legacy
// aliases found in older documents.
var componentTypeLookup = func() map[string]ComponentType {
	m := make(map[string]ComponentType, len(componentTypeNames)+8)
	for t, name := range componentTypeNames {
		m[strings.ToLower(name)] = t
	}
	// Legacy / alternate spellings.
	m["body"] = ComponentContainer
	m["app"] = ComponentContainer
	m["box"] = ComponentContainer
	m["scrollview"] = ComponentScrollView
	m["scroll_view"] = ComponentScrollView
	m["tabgroup"] = ComponentTabGroup
	m["tab_group"] = ComponentTabGroup
	m["tabbar"] = ComponentTabBar
	m["tab_bar"] = ComponentTabBar
	m["tabcontent"] = ComponentTabContent
	m["tab_content"] = ComponentTabContent
	m["tabpanel"] = ComponentTabPanel
	m["tab_panel"] = ComponentTabPanel
	m["hr"] = ComponentHorizontalRule
	m["code"] = ComponentInlineCode
	m["em"] = ComponentItalic
	m["strong"] = ComponentBold
	m["a"] = ComponentLink
	m["native_canvas"] = ComponentCanvas
	return m
}()

// String returns the canonical type name used in KIR documents.
func (t ComponentType) String() string {
	if name, ok := componentTypeNames[t]; ok {
		return name
	}
	return "Container"
}

// ComponentTypeFromString maps a document type string to a ComponentType.
// Matching is case-insensitive; unknown names return (ComponentContainer, false).
func ComponentTypeFromString(name string) (ComponentType, bool) {
	if t, ok := componentTypeLookup[strings.ToLower(name)]; ok {
		return t, true
	}
	return ComponentContainer, false
}

// IsContainerLike reports whether the type lays out children in a flow of its
// own (row or column) rather than delegating to a specialized pass.
func (t ComponentType) IsContainerLike() bool {
	switch t {
	case ComponentContainer, ComponentRow, ComponentColumn, ComponentCenter,
		ComponentScrollView, ComponentGrid, ComponentList, ComponentListItem,
		ComponentModal, ComponentForm, ComponentFragment, ComponentBlockquote,
		ComponentTable, ComponentTableHeader, ComponentTableBody,
		ComponentTableRow, ComponentTableFooter, ComponentInlineContainer:
		return true
	}
	return false
}

// IsInline reports membership in the inline-semantic family produced by the
// markdown front end.
func (t ComponentType) IsInline() bool {
	switch t {
	case ComponentInlineCode, ComponentBold, ComponentItalic,
		ComponentStrikethrough, ComponentInlineContainer, ComponentLink:
		return true
	}
	return false
}
