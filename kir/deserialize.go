// kir/deserialize.go
package kir

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/waozixyz/kryon-ir/ir"
)

// ParseOptions tunes document loading.
type ParseOptions struct {
	// ModuleCacheDir overrides the module cache location; empty means the
	// KRYON_CACHE_DIR environment variable or the default cache directory.
	ModuleCacheDir string

	// Modules overrides the module resolver entirely, mainly for tests.
	Modules *ModuleCache
}

// Parse reads a KIR document and builds its live component tree, expanding
// every template and module reference. A malformed or empty document yields
// a nil document and an error; unresolved references degrade per node and
// are reported through Document.Warnings.
func Parse(data []byte) (*Document, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions is Parse with explicit module resolution settings.
func ParseWithOptions(data []byte, opts ParseOptions) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("kir: empty document")
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("kir: malformed document: %w", err)
	}

	doc := &Document{Ctx: ir.NewContext()}

	if meta, ok := raw["metadata"].(map[string]any); ok {
		doc.Metadata = meta
	}
	if app, ok := raw["app"].(map[string]any); ok {
		doc.App = parseApp(app)
	}
	if defs, ok := raw["component_definitions"].([]any); ok {
		doc.Definitions = parseDefinitions(defs)
	}
	if m, ok := raw["reactive_manifest"].(map[string]any); ok {
		doc.Manifest = parseManifest(m)
	}
	if ss, ok := raw["stylesheet"].(map[string]any); ok {
		doc.Stylesheet = parseStylesheet(ss)
	}
	if v, ok := raw["source_structures"]; ok {
		doc.SourceStructures = remarshal(v)
	}
	if v, ok := raw["logic_block"]; ok {
		doc.LogicBlock = remarshal(v)
	}
	if srcs, ok := raw["sources"].([]any); ok {
		for _, sv := range srcs {
			sm, ok := sv.(map[string]any)
			if !ok {
				continue
			}
			entry := SourceEntry{}
			entry.Lang, _ = jsStr(sm, "lang")
			entry.Code, _ = jsStr(sm, "code")
			doc.Sources = append(doc.Sources, entry)
		}
	}

	modules := opts.Modules
	if modules == nil {
		modules = NewModuleCache(opts.ModuleCacheDir)
	}
	exp := &expander{doc: doc, modules: modules}

	rootNode := rootObject(raw)
	if rootNode == nil {
		return nil, fmt.Errorf("kir: document has no root component")
	}
	doc.Root = exp.expand(rootNode)
	if doc.Root == nil {
		return nil, fmt.Errorf("kir: root component failed to parse")
	}
	return doc, nil
}

// rootObject finds the component tree: "root", the legacy "component" key,
// or the document object itself when it already looks like a node.
func rootObject(raw map[string]any) map[string]any {
	if m, ok := raw["root"].(map[string]any); ok {
		return m
	}
	if m, ok := raw["component"].(map[string]any); ok {
		return m
	}
	if _, ok := raw["type"]; ok {
		return raw
	}
	return nil
}

func remarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func parseApp(m map[string]any) *App {
	app := &App{}
	app.WindowTitle, _ = jsStr(m, "windowTitle")
	if f, ok := jsFloat(m["windowWidth"]); ok {
		app.WindowWidth = int(f)
	}
	if f, ok := jsFloat(m["windowHeight"]); ok {
		app.WindowHeight = int(f)
	}
	return app
}

func parseDefinitions(arr []any) []Definition {
	out := make([]Definition, 0, len(arr))
	for _, dv := range arr {
		dm, ok := dv.(map[string]any)
		if !ok {
			continue
		}
		def := Definition{}
		def.Name, _ = jsStr(dm, "name")
		if def.Name == "" {
			continue
		}
		def.ModulePath, _ = jsStr(dm, "module_path")
		if props, ok := dm["props"].([]any); ok {
			for _, pv := range props {
				pm, ok := pv.(map[string]any)
				if !ok {
					continue
				}
				p := PropDecl{Default: pm["default"]}
				p.Name, _ = jsStr(pm, "name")
				p.Type, _ = jsStr(pm, "type")
				def.Props = append(def.Props, p)
			}
		}
		if state, ok := dm["state"].([]any); ok {
			for _, sv := range state {
				sm, ok := sv.(map[string]any)
				if !ok {
					continue
				}
				s := StateVarDecl{Initial: sm["initial"]}
				s.Name, _ = jsStr(sm, "name")
				s.Type, _ = jsStr(sm, "type")
				def.StateVars = append(def.StateVars, s)
			}
		}
		if tpl, ok := dm["template"].(map[string]any); ok {
			def.Template = tpl
		}
		out = append(out, def)
	}
	return out
}

func parseManifest(m map[string]any) *ReactiveManifest {
	out := &ReactiveManifest{}
	if vars, ok := m["variables"].([]any); ok {
		for _, vv := range vars {
			vm, ok := vv.(map[string]any)
			if !ok {
				continue
			}
			v := ReactiveVar{}
			if f, ok := jsFloat(vm["id"]); ok {
				v.ID = uint32(f)
			}
			v.Name, _ = jsStr(vm, "name")
			v.TypeString, _ = jsStr(vm, "type")
			v.Scope, _ = jsStr(vm, "scope")
			if raw, ok := vm["initial_value"]; ok {
				v.InitialValue = remarshal(raw)
			}
			out.Variables = append(out.Variables, v)
		}
	}
	if bindings, ok := m["bindings"].([]any); ok {
		for _, bv := range bindings {
			bm, ok := bv.(map[string]any)
			if !ok {
				continue
			}
			b := ReactiveBinding{}
			if f, ok := jsFloat(bm["component_id"]); ok {
				b.ComponentID = uint32(f)
			}
			if f, ok := jsFloat(bm["reactive_var_id"]); ok {
				b.ReactiveVarID = uint32(f)
			}
			b.BindingType, _ = jsStr(bm, "binding_type")
			b.Expression, _ = jsStr(bm, "expression")
			out.Bindings = append(out.Bindings, b)
		}
	}
	if conds, ok := m["conditionals"].([]any); ok {
		for _, cv := range conds {
			cm, ok := cv.(map[string]any)
			if !ok {
				continue
			}
			cond := ReactiveConditional{}
			if f, ok := jsFloat(cm["component_id"]); ok {
				cond.ComponentID = uint32(f)
			}
			cond.Expression, _ = jsStr(cm, "expression")
			cond.ThenIDs = parseIDList(cm["then_ids"])
			cond.ElseIDs = parseIDList(cm["else_ids"])
			out.Conditionals = append(out.Conditionals, cond)
		}
	}
	if loops, ok := m["for_loops"].([]any); ok {
		for _, lv := range loops {
			lm, ok := lv.(map[string]any)
			if !ok {
				continue
			}
			l := ReactiveForLoop{}
			if f, ok := jsFloat(lm["component_id"]); ok {
				l.ComponentID = uint32(f)
			}
			l.SourceName, _ = jsStr(lm, "source")
			l.ItemName, _ = jsStr(lm, "item_name")
			l.IndexName, _ = jsStr(lm, "index_name")
			out.ForLoops = append(out.ForLoops, l)
		}
	}
	return out
}

func parseIDList(v any) []uint32 {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]uint32, 0, len(arr))
	for _, e := range arr {
		if f, ok := jsFloat(e); ok {
			out = append(out, uint32(f))
		}
	}
	return out
}

func parseStylesheet(m map[string]any) *Stylesheet {
	out := &Stylesheet{}
	if vars, ok := m["variables"].(map[string]any); ok {
		out.Variables = make(map[string]string, len(vars))
		for k, v := range vars {
			if s, ok := v.(string); ok {
				out.Variables[k] = s
			}
		}
	}
	if rules, ok := m["rules"].([]any); ok {
		for _, rv := range rules {
			rm, ok := rv.(map[string]any)
			if !ok {
				continue
			}
			rule := StyleRule{}
			rule.Selector, _ = jsStr(rm, "selector")
			if f, ok := jsFloat(rm["specificity"]); ok {
				rule.Specificity = int(f)
			}
			if decls, ok := rm["declarations"].(map[string]any); ok {
				rule.Declarations = make(map[string]string, len(decls))
				for k, v := range decls {
					if s, ok := v.(string); ok {
						rule.Declarations[k] = s
					}
				}
			}
			out.Rules = append(out.Rules, rule)
		}
	}
	if mqs, ok := m["mediaQueries"].([]any); ok {
		for _, mv := range mqs {
			if s, ok := mv.(string); ok {
				out.MediaQueries = append(out.MediaQueries, s)
			}
		}
	}
	return out
}

// parsePlainComponent builds a component from a node object without any
// reference handling; the expander owns reference resolution.
func (e *expander) parsePlainComponent(node map[string]any, t ir.ComponentType) *ir.Component {
	c := ir.NewComponent(e.doc.Ctx, t)
	if f, ok := jsFloat(node["id"]); ok && f > 0 {
		c.ID = uint32(f)
		e.doc.Ctx.ObserveID(c.ID)
	}

	c.Tag, _ = jsStr(node, "tag")
	c.CSSClass, _ = jsStr(node, "css_class")
	if v, ok := jsStr(node, "selector_type"); ok {
		switch strings.ToLower(v) {
		case "tag":
			c.SelectorType = ir.SelectorTag
		case "class":
			c.SelectorType = ir.SelectorClass
		case "id":
			c.SelectorType = ir.SelectorID
		}
	}
	c.Scope, _ = jsStr(node, "scope")
	c.Text, _ = jsStr(node, "text")
	c.TextExpression, _ = jsStr(node, "text_expression")

	deserializeStyle(c, node)
	deserializeLayout(c, node)
	deserializeCustomData(c, node)
	deserializeEvents(c, node)
	deserializeBindings(c, node)

	if v, ok := jsStr(node, "visible_condition"); ok {
		c.VisibleCondition = v
		c.VisibleWhenTrue, _ = jsBool(node, "visible_when_true")
	}
	c.EachSource, _ = jsStr(node, "each_source")
	c.EachItemName, _ = jsStr(node, "each_item_name")
	c.EachIndexName, _ = jsStr(node, "each_index_name")
	if f, ok := jsFloat(node["owner_instance_id"]); ok {
		c.OwnerInstanceID = uint32(f)
	}

	if children, ok := node["children"].([]any); ok {
		for _, cv := range children {
			cm, ok := cv.(map[string]any)
			if !ok {
				continue
			}
			if child := e.expand(cm); child != nil {
				c.AddChild(child)
			}
		}
	}

	if c.Type == ir.ComponentTabGroup {
		wireTabGroup(c)
	}
	return c
}

func deserializeEvents(c *ir.Component, node map[string]any) {
	events, ok := node["events"].([]any)
	if !ok {
		return
	}
	for _, ev := range events {
		em, ok := ev.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := jsStr(em, "type")
		event := ir.Event{Kind: ir.EventKindFromString(kind)}
		event.LogicID, _ = jsStr(em, "logic_id")
		event.HandlerData, _ = jsStr(em, "handler_data")
		if f, ok := jsFloat(em["bytecode_function_id"]); ok {
			event.BytecodeFunctionID = uint32(f)
		}
		if sm, ok := em["handler_source"].(map[string]any); ok {
			src := &ir.HandlerSource{}
			src.Language, _ = jsStr(sm, "language")
			src.Code, _ = jsStr(sm, "code")
			src.File, _ = jsStr(sm, "file")
			if f, ok := jsFloat(sm["line"]); ok {
				src.Line = int(f)
			}
			src.UsesClosures, _ = jsBool(sm, "uses_closures")
			if vars, ok := sm["closure_vars"].([]any); ok {
				for _, v := range vars {
					if s, ok := v.(string); ok {
						src.ClosureVars = append(src.ClosureVars, s)
					}
				}
			}
			event.HandlerSource = src
		}
		c.Events = append(c.Events, event)
	}
}

func deserializeBindings(c *ir.Component, node map[string]any) {
	bindings, ok := node["property_bindings"].(map[string]any)
	if !ok {
		return
	}
	for name, bv := range bindings {
		bm, ok := bv.(map[string]any)
		if !ok {
			continue
		}
		b := ir.PropertyBinding{PropertyName: name}
		b.SourceExpr, _ = jsStr(bm, "source_expr")
		b.ResolvedValue, _ = jsStr(bm, "resolved_value")
		b.BindingType, _ = jsStr(bm, "binding_type")
		c.PropertyBindings = append(c.PropertyBindings, b)
	}
}

// wireTabGroup registers the parsed TabContent children as the group's
// panels and attaches only the active one, mirroring runtime state.
func wireTabGroup(group *ir.Component) {
	tg := group.EnsureTabGroup()
	var content *ir.Component
	for _, child := range group.Children {
		if child.Type == ir.ComponentTabContent {
			content = child
			break
		}
	}
	if content == nil || len(content.Children) == 0 {
		return
	}
	tg.Panels = append([]*ir.Component(nil), content.Children...)
	if tg.ActiveIndex < 0 || tg.ActiveIndex >= len(tg.Panels) {
		tg.ActiveIndex = 0
	}
	active := tg.Panels[tg.ActiveIndex]
	for len(content.Children) > 0 {
		content.RemoveChild(content.Children[0])
	}
	content.AddChild(active)
}
