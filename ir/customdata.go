// ir/customdata.go
package ir

// CustomData is the type-specific payload of a component. Exactly one
// concrete payload kind is meaningful for a given ComponentType; consumers
// switch exhaustively over the concrete types below.
type CustomData interface {
	customData()
}

// DropdownData backs ComponentDropdown and ComponentSelect.
type DropdownData struct {
	Placeholder   string
	Options       []string
	SelectedIndex int
	IsOpen        bool
}

// ModalData backs ComponentModal.
type ModalData struct {
	IsOpen          bool
	CloseOnOverlay  bool
	ShowCloseButton bool
}

// TabGroupData is the shared state of one tab group instance. Panels holds
// every registered panel subtree, including ones not currently attached to
// the live TabContent child; serialization must enumerate Panels, not the
// live child list.
type TabGroupData struct {
	ActiveIndex int
	Position    string // "top" or "bottom"
	Panels      []*Component
}

// TabData backs a single ComponentTab.
type TabData struct {
	Index  int
	Active bool
}

// TableColumn is one declared table column.
type TableColumn struct {
	Title     string
	Width     Dimension
	Alignment TextAlign
	Sortable  bool
}

// TableStyle groups table-wide presentation flags.
type TableStyle struct {
	Borders      bool
	StripedRows  bool
	HeaderBg     Color
	StripeBg     Color
	CellPadding  float32
}

// TableData backs ComponentTable.
type TableData struct {
	Columns       []TableColumn
	Style         TableStyle
	SortColumn    int
	SortAscending bool
}

// TableCellData backs ComponentTableCell.
type TableCellData struct {
	ColSpan   int
	RowSpan   int
	Alignment TextAlign
	IsHeader  bool
}

// HeadingData backs ComponentHeading. Level is 1..6.
type HeadingData struct {
	Level  int
	Text   string
	IDAttr string
}

// ListData backs ComponentList.
type ListData struct {
	Ordered bool
	Start   int
	Tight   bool
}

// ListItemData backs ComponentListItem. Checked is nil for plain items and
// set for task-list items.
type ListItemData struct {
	Index   int
	Checked *bool
}

// BlockquoteData backs ComponentBlockquote.
type BlockquoteData struct {
	Depth int
}

// CodeBlockData backs ComponentCodeBlock.
type CodeBlockData struct {
	Language        string
	Code            string
	ShowLineNumbers bool
	StartLine       int
}

// LinkData backs ComponentLink.
type LinkData struct {
	URL    string
	Title  string
	Target string
	Rel    string
}

// ImageData backs ComponentImage.
type ImageData struct {
	Src string
	Alt string
}

// CheckboxData backs ComponentCheckbox.
type CheckboxData struct {
	Checked bool
	Label   string
}

// InputData backs ComponentInput and ComponentTextarea.
type InputData struct {
	InputType   string
	Placeholder string
	Value       string
}

// VideoData backs ComponentVideo.
type VideoData struct {
	Src      string
	Autoplay bool
	Loop     bool
	Controls bool
}

// RawBlockData preserves a verbatim source block for round-tripping.
type RawBlockData struct {
	Lang string
	Code string
}

// StaticBlockData preserves a front-end static block (const tables, imports).
type StaticBlockData struct {
	Kind   string
	Source string
}

// ForLoopData backs ComponentForLoop nodes emitted by the reactive runtime.
type ForLoopData struct {
	Source    string
	ItemName  string
	IndexName string
}

func (*DropdownData) customData()    {}
func (*ModalData) customData()       {}
func (*TabGroupData) customData()    {}
func (*TabData) customData()         {}
func (*TableData) customData()       {}
func (*TableCellData) customData()   {}
func (*HeadingData) customData()     {}
func (*ListData) customData()        {}
func (*ListItemData) customData()    {}
func (*BlockquoteData) customData()  {}
func (*CodeBlockData) customData()   {}
func (*LinkData) customData()        {}
func (*ImageData) customData()       {}
func (*CheckboxData) customData()    {}
func (*InputData) customData()       {}
func (*VideoData) customData()       {}
func (*RawBlockData) customData()    {}
func (*StaticBlockData) customData() {}
func (*ForLoopData) customData()     {}

// TabGroup returns the tab-group payload of c, or nil when c is not a tab
// group or carries no state yet.
func (c *Component) TabGroup() *TabGroupData {
	if c == nil {
		return nil
	}
	if d, ok := c.CustomData.(*TabGroupData); ok {
		return d
	}
	return nil
}

// EnsureTabGroup returns the tab-group payload, creating it when absent.
func (c *Component) EnsureTabGroup() *TabGroupData {
	if d := c.TabGroup(); d != nil {
		return d
	}
	d := &TabGroupData{Position: "top"}
	c.CustomData = d
	return d
}
