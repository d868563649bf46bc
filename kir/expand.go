// kir/expand.go
//
// Template and module-reference expansion. A reference node is replaced by a
// deep clone of its definition's template with {{name}} placeholders
// substituted from a per-instance state context, then every id in the clone
// is remapped to a fresh globally-unique id so repeated instances of one
// definition never share identity or state.
package kir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/waozixyz/kryon-ir/ir"
)

type expander struct {
	doc     *Document
	modules *ModuleCache
}

// reservedNodeKeys are structural fields of a component object; everything
// else on a reference node is an instance property.
var reservedNodeKeys = map[string]bool{
	"id": true, "type": true, "children": true, "events": true,
	"custom_data": true, "property_bindings": true, "actual_type": true,
	"owner_instance_id": true, "selector_type": true,
}

// expand turns one JSON node into a live component, resolving template and
// module references. It never aborts over one bad reference; failures
// degrade to the node's literal type and are recorded as warnings.
func (e *expander) expand(node map[string]any) *ir.Component {
	if node == nil {
		return nil
	}
	typeStr, _ := jsStr(node, "type")

	if strings.HasPrefix(typeStr, "$module:") {
		return e.expandModuleRef(node, typeStr)
	}

	if def := e.doc.Definition(typeStr); def != nil {
		return e.instantiate(node, def, "", "")
	}

	t, _ := ir.ComponentTypeFromString(typeStr)
	return e.parsePlainComponent(node, t)
}

// expandModuleRef resolves a "$module:<id>[#<export>]" reference through the
// module cache. An unresolvable module degrades to the preserved actual type
// (or a generic container) and is reported, never silently swallowed.
func (e *expander) expandModuleRef(node map[string]any, ref string) *ir.Component {
	spec := strings.TrimPrefix(ref, "$module:")
	moduleID, exportName := spec, ""
	if i := strings.IndexByte(spec, '#'); i >= 0 {
		moduleID, exportName = spec[:i], spec[i+1:]
	}

	def, err := e.modules.Lookup(moduleID, exportName)
	if def != nil {
		return e.instantiate(node, def, moduleID, exportName)
	}

	msg := fmt.Sprintf("module %q export %q could not be resolved", moduleID, exportName)
	if err != nil {
		msg += ": " + err.Error()
	}
	e.doc.Warn("unresolved_module", msg)

	fallbackType := ir.ComponentContainer
	actual, _ := jsStr(node, "actual_type")
	if actual != "" {
		fallbackType, _ = ir.ComponentTypeFromString(actual)
	}
	c := e.parsePlainComponent(node, fallbackType)
	c.ModuleRef = moduleID
	c.ExportName = exportName
	c.ActualType = actual
	c.InstanceProps = instanceProps(node)
	return c
}

// instantiate expands one reference node against def. The instance keeps the
// node's own id on the expanded subtree root; every other id is freshly
// allocated, and the whole subtree is tagged with the owner instance id.
func (e *expander) instantiate(node map[string]any, def *Definition, moduleID, exportName string) *ir.Component {
	instanceID := uint32(0)
	if f, ok := jsFloat(node["id"]); ok && f > 0 {
		instanceID = uint32(f)
		e.doc.Ctx.ObserveID(instanceID)
	} else {
		instanceID = e.doc.Ctx.NextID()
	}

	props := instanceProps(node)
	state := buildState(def, props)

	if def.Template == nil {
		e.doc.Warn("empty_template", fmt.Sprintf("definition %q has no template", def.Name))
		c := ir.NewComponent(e.doc.Ctx, ir.ComponentContainer)
		c.ID = instanceID
		c.ComponentRef = def.Name
		c.InstanceProps = props
		return c
	}

	clone := substituteNode(def.Template, state)
	root := e.expand(clone)
	if root == nil {
		return nil
	}

	// Fresh ids for the clone, except the subtree root which takes the
	// instance id; the owner tag scopes later state mutations per instance.
	root.Walk(func(n *ir.Component) bool {
		if n == root {
			n.ID = instanceID
		} else {
			n.ID = e.doc.Ctx.NextExpansionID()
		}
		n.OwnerInstanceID = instanceID
		return true
	})

	if moduleID != "" {
		root.ModuleRef = moduleID
		root.ExportName = exportName
		root.ActualType = root.Type.String()
	} else {
		root.ComponentRef = def.Name
	}
	root.InstanceProps = props
	return root
}

// instanceProps collects the flattened per-instance property values.
func instanceProps(node map[string]any) map[string]any {
	props := map[string]any{}
	for k, v := range node {
		if !reservedNodeKeys[k] {
			props[k] = v
		}
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

// buildState seeds the flat name→value substitution table: declared props
// first (instance values override declared defaults), then declared state
// vars, whose initial value may be a literal, a {"var": "propName"}
// reference, a plain prop name, or an expression over the props.
func buildState(def *Definition, props map[string]any) map[string]any {
	state := map[string]any{}
	for _, p := range def.Props {
		if v, ok := props[p.Name]; ok {
			state[p.Name] = v
		} else if p.Default != nil {
			state[p.Name] = p.Default
		}
	}
	for _, sv := range def.StateVars {
		state[sv.Name] = resolveInitial(sv.Initial, state)
	}
	return state
}

func resolveInitial(initial any, state map[string]any) any {
	switch v := initial.(type) {
	case nil:
		return nil
	case map[string]any:
		if name, ok := jsStr(v, "var"); ok {
			return state[name]
		}
		return v
	case string:
		if ref, ok := state[v]; ok {
			return ref
		}
		if out, err := expr.Eval(v, state); err == nil {
			return out
		}
		return v
	default:
		return v
	}
}

// substituteNode deep-clones a template JSON object, replacing {{name}}
// placeholders in string values from state. text_expression values keep
// their placeholder form for later reactive re-evaluation, and a text field
// co-located with a text_expression is recomputed from the expression rather
// than copied.
func substituteNode(node map[string]any, state map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	textExpr, hasExpr := jsStr(node, "text_expression")
	for k, v := range node {
		switch {
		case k == "text_expression":
			out[k] = v
		case k == "text" && hasExpr:
			// Recomputed below from the expression, never copied.
		default:
			out[k] = substituteValue(v, state)
		}
	}
	if hasExpr {
		out["text"] = substituteString(textExpr, state)
	}
	return out
}

func substituteValue(v any, state map[string]any) any {
	switch val := v.(type) {
	case map[string]any:
		return substituteNode(val, state)
	case []any:
		out := make([]any, 0, len(val))
		for _, e := range val {
			out = append(out, substituteValue(e, state))
		}
		return out
	case string:
		return substituteString(val, state)
	default:
		return v
	}
}

// substituteString replaces each {{name}} with the state value; a name with
// no entry is left verbatim.
func substituteString(s string, state map[string]any) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	var b strings.Builder
	for {
		open := strings.Index(s, "{{")
		if open < 0 {
			b.WriteString(s)
			break
		}
		close := strings.Index(s[open:], "}}")
		if close < 0 {
			b.WriteString(s)
			break
		}
		close += open
		name := strings.TrimSpace(s[open+2 : close])
		b.WriteString(s[:open])
		if v, ok := state[name]; ok && v != nil {
			b.WriteString(formatStateValue(v))
		} else {
			b.WriteString(s[open : close+2])
		}
		s = s[close+2:]
	}
	return b.String()
}

func formatStateValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
