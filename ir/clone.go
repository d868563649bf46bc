// ir/clone.go
package ir

import "github.com/jinzhu/copier"

// Clone deep-copies the subtree rooted at c. Ids are preserved; callers that
// need a distinct instance remap them afterwards. The computed layout is
// dropped so the copy lays out from scratch.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := &Component{}
	*out = *c
	out.Parent = nil
	out.LayoutState = LayoutState{IntrinsicWidth: -1, IntrinsicHeight: -1}

	if c.Style != nil {
		out.Style = &Style{}
		copier.CopyWithOption(out.Style, c.Style, copier.Option{DeepCopy: true})
	}
	if c.Layout != nil {
		out.Layout = &LayoutProps{}
		copier.CopyWithOption(out.Layout, c.Layout, copier.Option{DeepCopy: true})
	}
	out.CustomData = cloneCustomData(c.CustomData)

	if c.InstanceProps != nil {
		props := make(map[string]any, len(c.InstanceProps))
		for k, v := range c.InstanceProps {
			props[k] = v
		}
		out.InstanceProps = props
	}
	if c.Events != nil {
		out.Events = make([]Event, len(c.Events))
		copy(out.Events, c.Events)
		for i := range out.Events {
			if src := out.Events[i].HandlerSource; src != nil {
				dup := *src
				dup.ClosureVars = append([]string(nil), src.ClosureVars...)
				out.Events[i].HandlerSource = &dup
			}
		}
	}
	if c.PropertyBindings != nil {
		out.PropertyBindings = append([]PropertyBinding(nil), c.PropertyBindings...)
	}

	out.Children = make([]*Component, 0, len(c.Children))
	for _, child := range c.Children {
		dup := child.Clone()
		dup.Parent = out
		out.Children = append(out.Children, dup)
	}

	// Tab panels reference the cloned children, not the originals.
	if tg, ok := c.CustomData.(*TabGroupData); ok {
		dup := out.EnsureTabGroup()
		dup.ActiveIndex = tg.ActiveIndex
		dup.Position = tg.Position
		dup.Panels = clonePanels(tg.Panels, c, out)
	}
	return out
}

// clonePanels maps each panel either to its already-cloned counterpart (when
// attached somewhere under the group) or to a fresh, parentless clone.
func clonePanels(panels []*Component, oldGroup, newGroup *Component) []*Component {
	out := make([]*Component, 0, len(panels))
	for _, p := range panels {
		if p == nil {
			continue
		}
		if mapped := findCounterpart(p, oldGroup, newGroup); mapped != nil {
			out = append(out, mapped)
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// findCounterpart locates the clone of target by walking both trees in
// lockstep child order.
func findCounterpart(target, oldNode, newNode *Component) *Component {
	if oldNode == target {
		return newNode
	}
	for i, oldChild := range oldNode.Children {
		if i >= len(newNode.Children) {
			break
		}
		if found := findCounterpart(target, oldChild, newNode.Children[i]); found != nil {
			return found
		}
	}
	return nil
}

func cloneCustomData(d CustomData) CustomData {
	switch v := d.(type) {
	case nil:
		return nil
	case *DropdownData:
		dup := *v
		dup.Options = append([]string(nil), v.Options...)
		return &dup
	case *ModalData:
		dup := *v
		return &dup
	case *TabGroupData:
		// Panels are fixed up by Clone after children are copied.
		return &TabGroupData{ActiveIndex: v.ActiveIndex, Position: v.Position}
	case *TabData:
		dup := *v
		return &dup
	case *TableData:
		dup := &TableData{}
		copier.CopyWithOption(dup, v, copier.Option{DeepCopy: true})
		return dup
	case *TableCellData:
		dup := *v
		return &dup
	case *HeadingData:
		dup := *v
		return &dup
	case *ListData:
		dup := *v
		return &dup
	case *ListItemData:
		dup := *v
		if v.Checked != nil {
			checked := *v.Checked
			dup.Checked = &checked
		}
		return &dup
	case *BlockquoteData:
		dup := *v
		return &dup
	case *CodeBlockData:
		dup := *v
		return &dup
	case *LinkData:
		dup := *v
		return &dup
	case *ImageData:
		dup := *v
		return &dup
	case *CheckboxData:
		dup := *v
		return &dup
	case *InputData:
		dup := *v
		return &dup
	case *VideoData:
		dup := *v
		return &dup
	case *RawBlockData:
		dup := *v
		return &dup
	case *StaticBlockData:
		dup := *v
		return &dup
	case *ForLoopData:
		dup := *v
		return &dup
	}
	return nil
}
