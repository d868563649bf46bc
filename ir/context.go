// ir/context.go
package ir

// expansionIDBase is where template-expansion ids start; instance ids handed
// out by front ends stay below it in practice, keeping expanded subtrees
// disjoint from authored ids.
const expansionIDBase = 1000

// Context owns id allocation for one document's lifetime. It is an explicit
// value threaded through construction and expansion; there is no ambient
// current-context.
type Context struct {
	nextID          uint32
	nextExpansionID uint32
}

// NewContext returns a context with fresh id counters.
func NewContext() *Context {
	return &Context{nextID: 1, nextExpansionID: expansionIDBase}
}

// NextID returns a fresh component id.
func (ctx *Context) NextID() uint32 {
	id := ctx.nextID
	ctx.nextID++
	if ctx.nextID == ctx.nextExpansionID {
		// Authored ids ran into the expansion range; keep both streams
		// disjoint by moving the expansion base up.
		ctx.nextExpansionID += expansionIDBase
	}
	return id
}

// NextExpansionID returns a fresh id for a node produced by template
// expansion. Expansion ids never collide with NextID ids.
func (ctx *Context) NextExpansionID() uint32 {
	id := ctx.nextExpansionID
	ctx.nextExpansionID++
	return id
}

// ObserveID advances the instance counter past an id seen in a parsed
// document, so later allocations stay unique.
func (ctx *Context) ObserveID(id uint32) {
	if id >= ctx.nextID {
		ctx.nextID = id + 1
	}
	if id >= ctx.nextExpansionID {
		ctx.nextExpansionID = id + 1
	}
}
