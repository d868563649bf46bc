// kir/document.go
//
// Package kir implements the KIR persisted format: a JSON-shaped document
// carrying a component tree plus its auxiliary manifests (component
// definitions, reactive manifest, stylesheet, preserved sources). The
// serializer and deserializer in this package are symmetric; template
// expansion happens at parse time.
package kir

import (
	"encoding/json"

	"github.com/waozixyz/kryon-ir/ir"
)

// FormatName is the required value of the top-level "format" field.
const FormatName = "kir"

// Document is one parsed KIR document: exactly one root component tree plus
// optional auxiliary sections. Definitions and the reactive manifest are
// read-only inputs to expansion; they are not part of the live tree.
type Document struct {
	Metadata map[string]any
	App      *App

	Definitions []Definition
	Manifest    *ReactiveManifest
	Stylesheet  *Stylesheet

	// SourceStructures and LogicBlock are preserved verbatim for round-trip
	// codegen; the core never interprets them.
	SourceStructures json.RawMessage
	LogicBlock       json.RawMessage

	Root    *ir.Component
	Sources []SourceEntry

	// Warnings collects non-fatal findings (unresolved module references,
	// structural oddities) so callers can decide whether to proceed.
	Warnings []Warning

	// Ctx owns id allocation for the lifetime of this document's tree.
	Ctx *ir.Context
}

// Definition returns the named component definition, or nil.
func (d *Document) Definition(name string) *Definition {
	for i := range d.Definitions {
		if d.Definitions[i].Name == name {
			return &d.Definitions[i]
		}
	}
	return nil
}

// Warn appends a warning to the document.
func (d *Document) Warn(code, msg string) {
	d.Warnings = append(d.Warnings, Warning{Code: code, Message: msg})
}

// App holds window-level properties from the document's app block.
type App struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
}

// PropDecl is one declared prop of a component definition.
type PropDecl struct {
	Name    string
	Type    string
	Default any
}

// StateVarDecl is one declared state variable. Initial may be a number, a
// {"var": "propName"} reference, or a plain prop name; it is resolved against
// the prop table at expansion time.
type StateVarDecl struct {
	Name    string
	Type    string
	Initial any
}

// Definition is a named reusable template with declared inputs and local
// state. Template keeps the raw JSON subtree; expansion clones and
// substitutes it per instance.
type Definition struct {
	Name       string
	ModulePath string
	Props      []PropDecl
	StateVars  []StateVarDecl
	Template   map[string]any
}

// PropDefault returns the declared default for a prop name.
func (d *Definition) PropDefault(name string) (any, bool) {
	for i := range d.Props {
		if d.Props[i].Name == name {
			return d.Props[i].Default, true
		}
	}
	return nil, false
}

// ReactiveVar is one typed variable of the reactive manifest.
type ReactiveVar struct {
	ID           uint32
	Name         string
	TypeString   string
	InitialValue json.RawMessage
	Scope        string
}

// ReactiveBinding connects a component property to a reactive variable.
type ReactiveBinding struct {
	ComponentID   uint32
	ReactiveVarID uint32
	BindingType   string
	Expression    string
}

// ReactiveConditional records conditional visibility: which child sets a
// component shows depending on an expression.
type ReactiveConditional struct {
	ComponentID uint32
	Expression  string
	ThenIDs     []uint32
	ElseIDs     []uint32
}

// ReactiveForLoop records loop-driven repetition over a collection variable.
type ReactiveForLoop struct {
	ComponentID uint32
	SourceName  string
	ItemName    string
	IndexName   string
}

// ReactiveManifest is the document section describing reactive structure,
// independent of the concrete tree.
type ReactiveManifest struct {
	Variables    []ReactiveVar
	Bindings     []ReactiveBinding
	Conditionals []ReactiveConditional
	ForLoops     []ReactiveForLoop
}

// StyleRule is one ordered stylesheet rule.
type StyleRule struct {
	Selector     string
	Specificity  int
	Declarations map[string]string
}

// Stylesheet carries selector rules plus raw media-query text.
type Stylesheet struct {
	Variables    map[string]string
	Rules        []StyleRule
	MediaQueries []string
}

// SourceEntry preserves one authoring-surface source verbatim.
type SourceEntry struct {
	Lang string `json:"lang"`
	Code string `json:"code"`
}

// Warning is one non-fatal finding from parsing or validation.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string { return w.Code + ": " + w.Message }
