// ir/component.go
package ir

// LayoutState is the engine-owned computed box of a component. Geometry is
// only trustworthy while Valid is set; any style, layout, or child mutation
// clears it.
type LayoutState struct {
	X, Y          float32
	Width, Height float32
	Valid         bool
	Dirty         bool

	// Cached intrinsic sizes; negative means not cached.
	IntrinsicWidth  float32
	IntrinsicHeight float32

	// Viewport of the last full-tree pass, tracked on the root only.
	LastViewportW float32
	LastViewportH float32
}

// SelectorType mirrors how the authoring surface addressed this component,
// kept for stylesheet matching and round-tripping.
type SelectorType uint8

const (
	SelectorNone SelectorType = iota
	SelectorTag
	SelectorClass
	SelectorID
)

// Component is one node of the live UI tree. Children are owned; Parent is a
// non-owning back-reference used only for upward queries.
type Component struct {
	ID   uint32
	Type ComponentType

	Style  *Style
	Layout *LayoutProps

	LayoutState LayoutState

	Parent   *Component
	Children []*Component

	// Text is the last-resolved literal; TextExpression, when present, is the
	// authoritative {{name}} template it was resolved from.
	Text           string
	TextExpression string

	CustomData CustomData

	// ComponentRef marks this node as an instance of a named definition;
	// ModuleRef/ExportName reference a definition exported by another
	// document. ActualType preserves the literal type for fallback when a
	// module cannot be resolved. While any ref is set, Children are not
	// authoritative until expansion has replaced them.
	ComponentRef string
	ModuleRef    string
	ExportName   string
	ActualType   string

	// InstanceProps carries the raw property values supplied at the
	// instantiation site, consumed by template expansion.
	InstanceProps map[string]any

	Events           []Event
	PropertyBindings []PropertyBinding

	// OwnerInstanceID scopes shared state (tab selection etc.) to the
	// template instance this node was expanded from; zero for plain nodes.
	OwnerInstanceID uint32

	Scope        string
	Tag          string
	CSSClass     string
	SelectorType SelectorType

	VisibleCondition string
	VisibleWhenTrue  bool

	EachSource    string
	EachItemName  string
	EachIndexName string
}

// NewComponent allocates a component with a fresh id from ctx.
func NewComponent(ctx *Context, t ComponentType) *Component {
	c := &Component{
		ID:   ctx.NextID(),
		Type: t,
		LayoutState: LayoutState{
			IntrinsicWidth:  -1,
			IntrinsicHeight: -1,
		},
	}
	return c
}

// EnsureStyle returns the style set, creating it lazily.
func (c *Component) EnsureStyle() *Style {
	if c.Style == nil {
		c.Style = NewStyle()
	}
	return c.Style
}

// EnsureLayout returns the layout set, creating it lazily.
func (c *Component) EnsureLayout() *LayoutProps {
	if c.Layout == nil {
		c.Layout = NewLayoutProps()
	}
	return c.Layout
}

// AddChild appends child and fixes its parent pointer. Appending invalidates
// cached layout up the tree.
func (c *Component) AddChild(child *Component) {
	if c == nil || child == nil {
		return
	}
	child.Parent = c
	c.Children = append(c.Children, child)
	c.MarkDirty()
}

// InsertChild places child at index i, clamping i into range.
func (c *Component) InsertChild(i int, child *Component) {
	if c == nil || child == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.Children) {
		i = len(c.Children)
	}
	child.Parent = c
	c.Children = append(c.Children, nil)
	copy(c.Children[i+1:], c.Children[i:])
	c.Children[i] = child
	c.MarkDirty()
}

// RemoveChild detaches child, preserving the order of the remaining
// children. Returns false when child is not present.
func (c *Component) RemoveChild(child *Component) bool {
	if c == nil || child == nil {
		return false
	}
	for i, cur := range c.Children {
		if cur == child {
			copy(c.Children[i:], c.Children[i+1:])
			c.Children = c.Children[:len(c.Children)-1]
			child.Parent = nil
			c.MarkDirty()
			return true
		}
	}
	return false
}

// ChildCount returns the length of the child sequence.
func (c *Component) ChildCount() int {
	if c == nil {
		return 0
	}
	return len(c.Children)
}

// IsReference reports whether the node is an unexpanded template or module
// instance.
func (c *Component) IsReference() bool {
	return c != nil && (c.ComponentRef != "" || c.ModuleRef != "")
}

// MarkDirty invalidates the computed layout of this node and every ancestor.
// Intrinsic caches are dropped so the next pass re-measures.
func (c *Component) MarkDirty() {
	for cur := c; cur != nil; cur = cur.Parent {
		cur.LayoutState.Dirty = true
		cur.LayoutState.Valid = false
		cur.LayoutState.IntrinsicWidth = -1
		cur.LayoutState.IntrinsicHeight = -1
	}
}

// Walk visits c and every descendant pre-order. Returning false from fn
// prunes the subtree below the current node.
func (c *Component) Walk(fn func(*Component) bool) {
	if c == nil || fn == nil {
		return
	}
	if !fn(c) {
		return
	}
	for _, child := range c.Children {
		child.Walk(fn)
	}
	// Detached tab panels (parentless but registered in the group state) are
	// still part of the logical tree.
	if tg := c.TabGroup(); tg != nil {
		for _, p := range tg.Panels {
			if p != nil && p.Parent == nil {
				p.Walk(fn)
			}
		}
	}
}

// FindByID returns the first node in the subtree with the given id.
func (c *Component) FindByID(id uint32) *Component {
	var found *Component
	c.Walk(func(n *Component) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Depth returns the maximum nesting depth of the subtree rooted at c.
func (c *Component) Depth() int {
	if c == nil {
		return 0
	}
	max := 0
	for _, child := range c.Children {
		if d := child.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}
