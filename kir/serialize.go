// kir/serialize.go
package kir

import (
	"encoding/json"
	"fmt"

	"github.com/waozixyz/kryon-ir/ir"
)

// Serialize renders a document to indented KIR JSON. Output is deterministic
// for a fixed tree: child order is preserved and value formatting is stable
// (Go's encoder additionally sorts object keys).
func Serialize(doc *Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("kir: cannot serialize document without root")
	}
	out := map[string]any{
		"format": FormatName,
		"root":   serializeComponent(doc.Root, false),
	}
	if len(doc.Metadata) > 0 {
		out["metadata"] = doc.Metadata
	}
	if doc.App != nil {
		app := map[string]any{}
		if doc.App.WindowTitle != "" {
			app["windowTitle"] = doc.App.WindowTitle
		}
		if doc.App.WindowWidth > 0 {
			app["windowWidth"] = doc.App.WindowWidth
		}
		if doc.App.WindowHeight > 0 {
			app["windowHeight"] = doc.App.WindowHeight
		}
		if len(app) > 0 {
			out["app"] = app
		}
	}
	if len(doc.Definitions) > 0 {
		out["component_definitions"] = serializeDefinitions(doc.Definitions)
	}
	if doc.Manifest != nil {
		out["reactive_manifest"] = serializeManifest(doc.Manifest)
	}
	if doc.Stylesheet != nil {
		out["stylesheet"] = serializeStylesheet(doc.Stylesheet)
	}
	if len(doc.SourceStructures) > 0 {
		out["source_structures"] = json.RawMessage(doc.SourceStructures)
	}
	if len(doc.LogicBlock) > 0 {
		out["logic_block"] = json.RawMessage(doc.LogicBlock)
	}
	if len(doc.Sources) > 0 {
		out["sources"] = doc.Sources
	}
	return json.MarshalIndent(out, "", "  ")
}

// SerializeComponent renders a single subtree, mainly for tooling and tests.
func SerializeComponent(c *ir.Component) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("kir: cannot serialize nil component")
	}
	return json.MarshalIndent(serializeComponent(c, false), "", "  ")
}

// TemplateFromComponent renders a live subtree into the JSON template form a
// component_definitions entry carries: the full tree is emitted, references
// included, and text expressions keep their resolved text alongside.
func TemplateFromComponent(c *ir.Component) map[string]any {
	return serializeComponent(c, true)
}

// serializeComponent emits one node. In instance mode (asTemplate false) a
// template or module reference collapses to a short reference object; in
// template mode the full subtree is written, which is what
// component_definitions entries need.
func serializeComponent(c *ir.Component, asTemplate bool) map[string]any {
	if c == nil {
		return nil
	}
	if !asTemplate {
		if c.ModuleRef != "" {
			return serializeModuleInstance(c)
		}
		if c.ComponentRef != "" {
			return serializeInstance(c)
		}
	}

	out := map[string]any{
		"id":   c.ID,
		"type": c.Type.String(),
	}
	if c.Tag != "" {
		out["tag"] = c.Tag
	}
	if c.CSSClass != "" {
		out["css_class"] = c.CSSClass
	}
	switch c.SelectorType {
	case ir.SelectorTag:
		out["selector_type"] = "tag"
	case ir.SelectorClass:
		out["selector_type"] = "class"
	case ir.SelectorID:
		out["selector_type"] = "id"
	}
	if c.Scope != "" {
		out["scope"] = c.Scope
	}

	if c.TextExpression != "" {
		out["text_expression"] = c.TextExpression
		// Template mode keeps the resolved text alongside the expression so
		// consumers that ignore reactivity still render something sensible.
		out["text"] = c.Text
	} else if c.Text != "" {
		out["text"] = c.Text
	}

	serializeStyle(c, out)
	serializeLayout(c, out)
	serializeCustomData(c, out)
	serializeEvents(c, out)
	serializeBindings(c, out)

	if c.VisibleCondition != "" {
		out["visible_condition"] = c.VisibleCondition
		out["visible_when_true"] = c.VisibleWhenTrue
	}
	if c.EachSource != "" {
		out["each_source"] = c.EachSource
		if c.EachItemName != "" {
			out["each_item_name"] = c.EachItemName
		}
		if c.EachIndexName != "" {
			out["each_index_name"] = c.EachIndexName
		}
	}
	if c.OwnerInstanceID != 0 {
		out["owner_instance_id"] = c.OwnerInstanceID
	}

	children := enumerateChildren(c)
	if len(children) > 0 {
		arr := make([]any, 0, len(children))
		for _, child := range children {
			arr = append(arr, serializeComponent(child, asTemplate))
		}
		out["children"] = arr
	}
	return out
}

// enumerateChildren returns the children to persist. A TabContent node must
// emit every registered panel from the owning group's state, not only the
// live (active) child, or hidden tabs would be lost on round trip.
func enumerateChildren(c *ir.Component) []*ir.Component {
	if c.Type == ir.ComponentTabContent {
		if group := c.Parent; group != nil {
			if tg := group.TabGroup(); tg != nil && len(tg.Panels) > 0 {
				return tg.Panels
			}
		}
	}
	return c.Children
}

// serializeInstance writes the short form of a template instance: the
// definition name as type, the instance id, and the flattened instance
// properties. The expanded subtree is never persisted in instance mode.
func serializeInstance(c *ir.Component) map[string]any {
	out := map[string]any{
		"id":   c.ID,
		"type": c.ComponentRef,
	}
	for k, v := range c.InstanceProps {
		out[k] = v
	}
	return out
}

// serializeModuleInstance writes a cross-document reference with enough
// fallback state (actual_type, text, colors) to degrade gracefully when the
// module is missing at load time.
func serializeModuleInstance(c *ir.Component) map[string]any {
	ref := "$module:" + c.ModuleRef
	if c.ExportName != "" {
		ref += "#" + c.ExportName
	}
	out := map[string]any{
		"id":   c.ID,
		"type": ref,
	}
	if c.ActualType != "" {
		out["actual_type"] = c.ActualType
	} else {
		out["actual_type"] = c.Type.String()
	}
	if c.Text != "" {
		out["text"] = c.Text
	}
	if c.Style != nil {
		if !c.Style.Background.IsTransparent() {
			out["background"] = colorValue(c.Style.Background)
		}
		if !c.Style.Color.IsTransparent() {
			out["color"] = colorValue(c.Style.Color)
		}
	}
	for k, v := range c.InstanceProps {
		out[k] = v
	}
	return out
}

func serializeEvents(c *ir.Component, out map[string]any) {
	if len(c.Events) == 0 {
		return
	}
	arr := make([]any, 0, len(c.Events))
	for i := range c.Events {
		ev := &c.Events[i]
		em := map[string]any{"type": ev.Kind.String()}
		if ev.LogicID != "" {
			em["logic_id"] = ev.LogicID
		}
		if ev.HandlerData != "" {
			em["handler_data"] = ev.HandlerData
		}
		if ev.BytecodeFunctionID != 0 {
			em["bytecode_function_id"] = ev.BytecodeFunctionID
		}
		if src := ev.HandlerSource; src != nil {
			sm := map[string]any{
				"language": src.Language,
				"code":     src.Code,
			}
			if src.File != "" {
				sm["file"] = src.File
			}
			if src.Line > 0 {
				sm["line"] = src.Line
			}
			if src.UsesClosures {
				sm["uses_closures"] = true
				closures := make([]any, 0, len(src.ClosureVars))
				for _, v := range src.ClosureVars {
					closures = append(closures, v)
				}
				sm["closure_vars"] = closures
			}
			em["handler_source"] = sm
		}
		arr = append(arr, em)
	}
	out["events"] = arr
}

func serializeBindings(c *ir.Component, out map[string]any) {
	if len(c.PropertyBindings) == 0 {
		return
	}
	bm := map[string]any{}
	for i := range c.PropertyBindings {
		b := &c.PropertyBindings[i]
		entry := map[string]any{"source_expr": b.SourceExpr}
		if b.ResolvedValue != "" {
			entry["resolved_value"] = b.ResolvedValue
		}
		if b.BindingType != "" {
			entry["binding_type"] = b.BindingType
		}
		bm[b.PropertyName] = entry
	}
	out["property_bindings"] = bm
}

func serializeDefinitions(defs []Definition) []any {
	arr := make([]any, 0, len(defs))
	for i := range defs {
		d := &defs[i]
		dm := map[string]any{"name": d.Name}
		if d.ModulePath != "" {
			dm["module_path"] = d.ModulePath
		}
		if len(d.Props) > 0 {
			props := make([]any, 0, len(d.Props))
			for _, p := range d.Props {
				pm := map[string]any{"name": p.Name, "type": p.Type}
				if p.Default != nil {
					pm["default"] = p.Default
				}
				props = append(props, pm)
			}
			dm["props"] = props
		}
		if len(d.StateVars) > 0 {
			state := make([]any, 0, len(d.StateVars))
			for _, s := range d.StateVars {
				sm := map[string]any{"name": s.Name, "type": s.Type}
				if s.Initial != nil {
					sm["initial"] = s.Initial
				}
				state = append(state, sm)
			}
			dm["state"] = state
		}
		if d.Template != nil {
			dm["template"] = d.Template
		}
		arr = append(arr, dm)
	}
	return arr
}

func serializeManifest(m *ReactiveManifest) map[string]any {
	out := map[string]any{}
	if len(m.Variables) > 0 {
		vars := make([]any, 0, len(m.Variables))
		for _, v := range m.Variables {
			vm := map[string]any{
				"id":   v.ID,
				"name": v.Name,
				"type": v.TypeString,
			}
			if len(v.InitialValue) > 0 {
				vm["initial_value"] = json.RawMessage(v.InitialValue)
			}
			if v.Scope != "" {
				vm["scope"] = v.Scope
			}
			vars = append(vars, vm)
		}
		out["variables"] = vars
	}
	if len(m.Bindings) > 0 {
		bindings := make([]any, 0, len(m.Bindings))
		for _, b := range m.Bindings {
			bm := map[string]any{
				"component_id":    b.ComponentID,
				"reactive_var_id": b.ReactiveVarID,
				"binding_type":    b.BindingType,
			}
			if b.Expression != "" {
				bm["expression"] = b.Expression
			}
			bindings = append(bindings, bm)
		}
		out["bindings"] = bindings
	}
	if len(m.Conditionals) > 0 {
		conds := make([]any, 0, len(m.Conditionals))
		for _, cond := range m.Conditionals {
			conds = append(conds, map[string]any{
				"component_id": cond.ComponentID,
				"expression":   cond.Expression,
				"then_ids":     cond.ThenIDs,
				"else_ids":     cond.ElseIDs,
			})
		}
		out["conditionals"] = conds
	}
	if len(m.ForLoops) > 0 {
		loops := make([]any, 0, len(m.ForLoops))
		for _, l := range m.ForLoops {
			loops = append(loops, map[string]any{
				"component_id": l.ComponentID,
				"source":       l.SourceName,
				"item_name":    l.ItemName,
				"index_name":   l.IndexName,
			})
		}
		out["for_loops"] = loops
	}
	return out
}

func serializeStylesheet(s *Stylesheet) map[string]any {
	out := map[string]any{}
	if len(s.Variables) > 0 {
		out["variables"] = s.Variables
	}
	if len(s.Rules) > 0 {
		rules := make([]any, 0, len(s.Rules))
		for _, r := range s.Rules {
			rules = append(rules, map[string]any{
				"selector":     r.Selector,
				"specificity":  r.Specificity,
				"declarations": r.Declarations,
			})
		}
		out["rules"] = rules
	}
	if len(s.MediaQueries) > 0 {
		out["mediaQueries"] = s.MediaQueries
	}
	return out
}
