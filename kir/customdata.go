// kir/customdata.go
//
// Wire codec for the per-type component payloads. Each component type owns at
// most one payload shape under "custom_data"; the reader also accepts a few
// legacy flattened fields older documents used (heading "level", code-block
// "language"/"code", link "url", image "src"/"alt", checkbox "checked").
package kir

import (
	"strings"

	"github.com/waozixyz/kryon-ir/ir"
)

func serializeCustomData(c *ir.Component, out map[string]any) {
	var cd map[string]any
	switch d := c.CustomData.(type) {
	case nil:
		return
	case *ir.DropdownData:
		cd = map[string]any{"selected_index": d.SelectedIndex}
		if d.Placeholder != "" {
			cd["placeholder"] = d.Placeholder
		}
		if len(d.Options) > 0 {
			opts := make([]any, 0, len(d.Options))
			for _, o := range d.Options {
				opts = append(opts, o)
			}
			cd["options"] = opts
		}
		if d.IsOpen {
			cd["is_open"] = true
		}
	case *ir.ModalData:
		cd = map[string]any{
			"is_open":           d.IsOpen,
			"close_on_overlay":  d.CloseOnOverlay,
			"show_close_button": d.ShowCloseButton,
		}
	case *ir.TabGroupData:
		cd = map[string]any{"active_index": d.ActiveIndex}
		if d.Position != "" && d.Position != "top" {
			cd["position"] = d.Position
		}
	case *ir.TabData:
		cd = map[string]any{"index": d.Index}
		if d.Active {
			cd["active"] = true
		}
	case *ir.TableData:
		cd = serializeTableData(d)
	case *ir.TableCellData:
		cd = map[string]any{}
		if d.ColSpan > 1 {
			cd["colspan"] = d.ColSpan
		}
		if d.RowSpan > 1 {
			cd["rowspan"] = d.RowSpan
		}
		if d.Alignment != ir.TextAlignLeft {
			cd["alignment"] = d.Alignment.String()
		}
		if d.IsHeader {
			cd["is_header"] = true
		}
	case *ir.HeadingData:
		cd = map[string]any{"level": d.Level}
		if d.Text != "" {
			cd["text"] = d.Text
		}
		if d.IDAttr != "" {
			cd["id_attr"] = d.IDAttr
		}
	case *ir.ListData:
		cd = map[string]any{"ordered": d.Ordered}
		if d.Start > 1 {
			cd["start"] = d.Start
		}
		if d.Tight {
			cd["tight"] = true
		}
	case *ir.ListItemData:
		cd = map[string]any{"index": d.Index}
		if d.Checked != nil {
			cd["checked"] = *d.Checked
		}
	case *ir.BlockquoteData:
		cd = map[string]any{"depth": d.Depth}
	case *ir.CodeBlockData:
		cd = map[string]any{"language": d.Language, "code": d.Code}
		if d.ShowLineNumbers {
			cd["show_line_numbers"] = true
		}
		if d.StartLine > 1 {
			cd["start_line"] = d.StartLine
		}
	case *ir.LinkData:
		cd = map[string]any{"url": d.URL}
		if d.Title != "" {
			cd["title"] = d.Title
		}
		if d.Target != "" {
			cd["target"] = d.Target
		}
		if d.Rel != "" {
			cd["rel"] = d.Rel
		}
	case *ir.ImageData:
		cd = map[string]any{"src": d.Src}
		if d.Alt != "" {
			cd["alt"] = d.Alt
		}
	case *ir.CheckboxData:
		cd = map[string]any{"checked": d.Checked}
		if d.Label != "" {
			cd["label"] = d.Label
		}
	case *ir.InputData:
		cd = map[string]any{}
		if d.InputType != "" {
			cd["input_type"] = d.InputType
		}
		if d.Placeholder != "" {
			cd["placeholder"] = d.Placeholder
		}
		if d.Value != "" {
			cd["value"] = d.Value
		}
	case *ir.VideoData:
		cd = map[string]any{"src": d.Src}
		if d.Autoplay {
			cd["autoplay"] = true
		}
		if d.Loop {
			cd["loop"] = true
		}
		if d.Controls {
			cd["controls"] = true
		}
	case *ir.RawBlockData:
		cd = map[string]any{"lang": d.Lang, "code": d.Code}
	case *ir.StaticBlockData:
		cd = map[string]any{"kind": d.Kind, "source": d.Source}
	case *ir.ForLoopData:
		cd = map[string]any{"source": d.Source}
		if d.ItemName != "" {
			cd["item_name"] = d.ItemName
		}
		if d.IndexName != "" {
			cd["index_name"] = d.IndexName
		}
	}
	if len(cd) > 0 {
		out["custom_data"] = cd
	}
}

func serializeTableData(d *ir.TableData) map[string]any {
	cd := map[string]any{}
	if len(d.Columns) > 0 {
		cols := make([]any, 0, len(d.Columns))
		for _, col := range d.Columns {
			cm := map[string]any{"title": col.Title}
			if col.Width.IsSet() {
				cm["width"] = col.Width.String()
			}
			if col.Alignment != ir.TextAlignLeft {
				cm["alignment"] = col.Alignment.String()
			}
			if col.Sortable {
				cm["sortable"] = true
			}
			cols = append(cols, cm)
		}
		cd["columns"] = cols
	}
	st := map[string]any{}
	if d.Style.Borders {
		st["borders"] = true
	}
	if d.Style.StripedRows {
		st["striped_rows"] = true
	}
	if !d.Style.HeaderBg.IsTransparent() {
		st["header_bg"] = colorValue(d.Style.HeaderBg)
	}
	if !d.Style.StripeBg.IsTransparent() {
		st["stripe_bg"] = colorValue(d.Style.StripeBg)
	}
	if d.Style.CellPadding != 0 {
		st["cell_padding"] = d.Style.CellPadding
	}
	if len(st) > 0 {
		cd["style"] = st
	}
	if d.SortColumn != 0 {
		cd["sort_column"] = d.SortColumn
	}
	if d.SortAscending {
		cd["sort_ascending"] = true
	}
	return cd
}

// deserializeCustomData reconstructs the payload for node type t. Exactly one
// interpretation applies per type.
func deserializeCustomData(c *ir.Component, node map[string]any) {
	cd, _ := node["custom_data"].(map[string]any)

	get := func(key string) (any, bool) {
		if cd != nil {
			if v, ok := cd[key]; ok {
				return v, true
			}
		}
		v, ok := node[key]
		return v, ok
	}
	getStr := func(key string) string {
		v, _ := get(key)
		s, _ := v.(string)
		return s
	}
	getInt := func(key string) (int, bool) {
		v, _ := get(key)
		f, ok := jsFloat(v)
		return int(f), ok
	}
	getBool := func(key string) bool {
		v, _ := get(key)
		b, _ := v.(bool)
		return b
	}

	switch c.Type {
	case ir.ComponentDropdown, ir.ComponentSelect:
		d := &ir.DropdownData{Placeholder: getStr("placeholder")}
		if idx, ok := getInt("selected_index"); ok {
			d.SelectedIndex = idx
		} else {
			d.SelectedIndex = -1
		}
		d.IsOpen = getBool("is_open")
		if raw, ok := get("options"); ok {
			if arr, ok := raw.([]any); ok {
				for _, o := range arr {
					if s, ok := o.(string); ok {
						d.Options = append(d.Options, s)
					}
				}
			}
		}
		c.CustomData = d
	case ir.ComponentModal:
		c.CustomData = &ir.ModalData{
			IsOpen:          getBool("is_open"),
			CloseOnOverlay:  getBool("close_on_overlay"),
			ShowCloseButton: getBool("show_close_button"),
		}
	case ir.ComponentTabGroup:
		d := c.EnsureTabGroup()
		if idx, ok := getInt("active_index"); ok {
			d.ActiveIndex = idx
		}
		if pos := getStr("position"); pos != "" {
			d.Position = pos
		}
	case ir.ComponentTab:
		d := &ir.TabData{Active: getBool("active")}
		if idx, ok := getInt("index"); ok {
			d.Index = idx
		}
		c.CustomData = d
	case ir.ComponentTable:
		c.CustomData = deserializeTableData(cd)
	case ir.ComponentTableCell:
		d := &ir.TableCellData{ColSpan: 1, RowSpan: 1, IsHeader: getBool("is_header")}
		if v, ok := getInt("colspan"); ok && v > 0 {
			d.ColSpan = v
		}
		if v, ok := getInt("rowspan"); ok && v > 0 {
			d.RowSpan = v
		}
		if a := getStr("alignment"); a != "" {
			d.Alignment = parseTextAlign(a)
		}
		c.CustomData = d
	case ir.ComponentHeading:
		d := &ir.HeadingData{Level: 1, Text: getStr("text"), IDAttr: getStr("id_attr")}
		if lvl, ok := getInt("level"); ok && lvl >= 1 && lvl <= 6 {
			d.Level = lvl
		}
		if d.Text == "" {
			d.Text = c.Text
		}
		c.CustomData = d
	case ir.ComponentList:
		d := &ir.ListData{Start: 1, Tight: getBool("tight")}
		if lt := getStr("listType"); lt != "" {
			d.Ordered = strings.EqualFold(lt, "ordered")
		} else {
			d.Ordered = getBool("ordered")
		}
		if s, ok := getInt("start"); ok && s > 0 {
			d.Start = s
		}
		c.CustomData = d
	case ir.ComponentListItem:
		d := &ir.ListItemData{}
		if idx, ok := getInt("index"); ok {
			d.Index = idx
		}
		if v, ok := get("checked"); ok {
			if b, ok := v.(bool); ok {
				d.Checked = &b
			}
		}
		c.CustomData = d
	case ir.ComponentBlockquote:
		d := &ir.BlockquoteData{Depth: 1}
		if depth, ok := getInt("depth"); ok && depth > 0 {
			d.Depth = depth
		}
		c.CustomData = d
	case ir.ComponentCodeBlock:
		d := &ir.CodeBlockData{
			Language:        getStr("language"),
			Code:            getStr("code"),
			ShowLineNumbers: getBool("show_line_numbers"),
			StartLine:       1,
		}
		if d.Code == "" {
			d.Code = c.Text
		}
		if sl, ok := getInt("start_line"); ok && sl > 0 {
			d.StartLine = sl
		}
		c.CustomData = d
	case ir.ComponentLink:
		c.CustomData = &ir.LinkData{
			URL:    getStr("url"),
			Title:  getStr("title"),
			Target: getStr("target"),
			Rel:    getStr("rel"),
		}
	case ir.ComponentImage:
		c.CustomData = &ir.ImageData{Src: getStr("src"), Alt: getStr("alt")}
	case ir.ComponentCheckbox:
		c.CustomData = &ir.CheckboxData{Checked: getBool("checked"), Label: getStr("label")}
	case ir.ComponentInput, ir.ComponentTextarea:
		if cd == nil {
			return
		}
		c.CustomData = &ir.InputData{
			InputType:   getStr("input_type"),
			Placeholder: getStr("placeholder"),
			Value:       getStr("value"),
		}
	case ir.ComponentVideo:
		c.CustomData = &ir.VideoData{
			Src:      getStr("src"),
			Autoplay: getBool("autoplay"),
			Loop:     getBool("loop"),
			Controls: getBool("controls"),
		}
	case ir.ComponentRawBlock:
		c.CustomData = &ir.RawBlockData{Lang: getStr("lang"), Code: getStr("code")}
	case ir.ComponentStaticBlock:
		c.CustomData = &ir.StaticBlockData{Kind: getStr("kind"), Source: getStr("source")}
	case ir.ComponentForLoop:
		c.CustomData = &ir.ForLoopData{
			Source:    getStr("source"),
			ItemName:  getStr("item_name"),
			IndexName: getStr("index_name"),
		}
	}
}

func deserializeTableData(cd map[string]any) *ir.TableData {
	d := &ir.TableData{}
	if cd == nil {
		return d
	}
	if cols, ok := cd["columns"].([]any); ok {
		for _, cv := range cols {
			cm, ok := cv.(map[string]any)
			if !ok {
				continue
			}
			col := ir.TableColumn{}
			col.Title, _ = jsStr(cm, "title")
			if w, ok := parseDimension(cm["width"]); ok {
				col.Width = w
			}
			if a, ok := jsStr(cm, "alignment"); ok {
				col.Alignment = parseTextAlign(a)
			}
			col.Sortable, _ = jsBool(cm, "sortable")
			d.Columns = append(d.Columns, col)
		}
	}
	if st, ok := cd["style"].(map[string]any); ok {
		d.Style.Borders, _ = jsBool(st, "borders")
		d.Style.StripedRows, _ = jsBool(st, "striped_rows")
		if col, ok := parseColor(st["header_bg"]); ok {
			d.Style.HeaderBg = col
		}
		if col, ok := parseColor(st["stripe_bg"]); ok {
			d.Style.StripeBg = col
		}
		if f, ok := jsFloat(st["cell_padding"]); ok {
			d.Style.CellPadding = f
		}
	}
	if f, ok := jsFloat(cd["sort_column"]); ok {
		d.SortColumn = int(f)
	}
	d.SortAscending, _ = jsBool(cd, "sort_ascending")
	return d
}
