// kir/validate.go
package kir

import (
	"fmt"

	"github.com/waozixyz/kryon-ir/ir"
)

// MaxNestingDepth is the sanity bound on component tree depth.
const MaxNestingDepth = 256

// Validate inspects a parsed document for structural inconsistencies and
// returns findings as a warning list. Validation never aborts; callers
// decide whether to proceed or reject.
func Validate(doc *Document) []Warning {
	if doc == nil {
		return []Warning{{Code: "no_document", Message: "document is nil"}}
	}
	var out []Warning
	out = append(out, doc.Warnings...)

	if doc.Root == nil {
		out = append(out, Warning{Code: "no_root", Message: "document has no root component"})
		return out
	}

	if depth := doc.Root.Depth(); depth > MaxNestingDepth {
		out = append(out, Warning{
			Code:    "max_depth",
			Message: fmt.Sprintf("tree depth %d exceeds bound %d", depth, MaxNestingDepth),
		})
	}

	seen := map[uint32]bool{}
	doc.Root.Walk(func(c *ir.Component) bool {
		if seen[c.ID] {
			out = append(out, Warning{
				Code:    "duplicate_id",
				Message: fmt.Sprintf("component id %d appears more than once", c.ID),
			})
		}
		seen[c.ID] = true

		for _, child := range c.Children {
			if child != nil && child.Parent != c {
				out = append(out, Warning{
					Code:    "broken_parent",
					Message: fmt.Sprintf("child %d of component %d has a stale parent pointer", child.ID, c.ID),
				})
			}
		}

		if c.IsReference() && c.ComponentRef != "" && len(c.Children) == 0 {
			out = append(out, Warning{
				Code:    "unexpanded_reference",
				Message: fmt.Sprintf("component %d references %q but was never expanded", c.ID, c.ComponentRef),
			})
		}

		if tg := c.TabGroup(); tg != nil {
			if tg.ActiveIndex < 0 || (len(tg.Panels) > 0 && tg.ActiveIndex >= len(tg.Panels)) {
				out = append(out, Warning{
					Code:    "tab_index",
					Message: fmt.Sprintf("tab group %d selects panel %d of %d", c.ID, tg.ActiveIndex, len(tg.Panels)),
				})
			}
		}
		return true
	})
	return out
}
