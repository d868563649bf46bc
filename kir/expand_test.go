// kir/expand_test.go
package kir

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/kryon-ir/ir"
)

const counterDoc = `{
  "format": "kir",
  "component_definitions": [
    {
      "name": "Counter",
      "props": [{"name": "start", "type": "int", "default": 0}],
      "state": [{"name": "count", "type": "int", "initial": {"var": "start"}}],
      "template": {
        "type": "Container",
        "children": [
          {"type": "Text", "text_expression": "{{count}}"}
        ]
      }
    }
  ],
  "root": {
    "id": 1,
    "type": "Container",
    "children": [
      {"id": 10, "type": "Counter", "start": 5},
      {"id": 11, "type": "Counter", "start": 10}
    ]
  }
}`

func TestTemplateExpansionSeedsStateFromProps(t *testing.T) {
	doc, err := Parse([]byte(counterDoc))
	require.NoError(t, err)
	require.Equal(t, 2, doc.Root.ChildCount())

	first := doc.Root.Children[0]
	second := doc.Root.Children[1]

	assert.Equal(t, uint32(10), first.ID)
	assert.Equal(t, uint32(11), second.ID)
	assert.Equal(t, "Counter", first.ComponentRef)
	assert.Equal(t, "Counter", second.ComponentRef)

	require.Equal(t, 1, first.ChildCount())
	assert.Equal(t, "5", first.Children[0].Text)
	assert.Equal(t, "{{count}}", first.Children[0].TextExpression)
	assert.Equal(t, "10", second.Children[0].Text)
}

func TestExpansionIDsAreDisjoint(t *testing.T) {
	doc, err := Parse([]byte(counterDoc))
	require.NoError(t, err)

	collect := func(root *ir.Component) map[uint32]bool {
		ids := map[uint32]bool{}
		root.Walk(func(c *ir.Component) bool {
			ids[c.ID] = true
			return true
		})
		return ids
	}
	first := collect(doc.Root.Children[0])
	second := collect(doc.Root.Children[1])

	for id := range first {
		assert.False(t, second[id], "id %d appears in both instances", id)
	}
	for _, inner := range doc.Root.Children[0].Children {
		assert.GreaterOrEqual(t, inner.ID, uint32(1000), "expanded internals use the expansion id range")
	}
}

func TestExpansionTagsOwnerInstance(t *testing.T) {
	doc, err := Parse([]byte(counterDoc))
	require.NoError(t, err)

	first := doc.Root.Children[0]
	first.Walk(func(c *ir.Component) bool {
		assert.Equal(t, first.ID, c.OwnerInstanceID)
		return true
	})
}

func TestInstancesAreIsolated(t *testing.T) {
	doc, err := Parse([]byte(counterDoc))
	require.NoError(t, err)

	doc.Root.Children[0].Children[0].Text = "mutated"
	assert.Equal(t, "10", doc.Root.Children[1].Children[0].Text)
}

func TestDeclaredDefaultApplies(t *testing.T) {
	withoutProp := `{
	  "component_definitions": [
	    {
	      "name": "Counter",
	      "props": [{"name": "start", "type": "int", "default": 0}],
	      "state": [{"name": "count", "type": "int", "initial": {"var": "start"}}],
	      "template": {"type": "Text", "text_expression": "{{count}}"}
	    }
	  ],
	  "root": {"id": 1, "type": "Counter"}
	}`
	doc, err := Parse([]byte(withoutProp))
	require.NoError(t, err)
	assert.Equal(t, "0", doc.Root.Text)
}

func TestStateInitialExpression(t *testing.T) {
	exprDoc := `{
	  "component_definitions": [
	    {
	      "name": "Badge",
	      "props": [{"name": "start", "type": "int", "default": 0}],
	      "state": [{"name": "next", "type": "int", "initial": "start + 1"}],
	      "template": {"type": "Text", "text_expression": "{{next}}"}
	    }
	  ],
	  "root": {"id": 1, "type": "Badge", "start": 5}
	}`
	doc, err := Parse([]byte(exprDoc))
	require.NoError(t, err)
	assert.Equal(t, "6", doc.Root.Text)
}

func TestUnresolvedPlaceholderStaysVerbatim(t *testing.T) {
	missing := `{
	  "component_definitions": [
	    {"name": "Gone", "template": {"type": "Text", "text_expression": "{{missing}}"}}
	  ],
	  "root": {"id": 1, "type": "Gone"}
	}`
	doc, err := Parse([]byte(missing))
	require.NoError(t, err)
	assert.Equal(t, "{{missing}}", doc.Root.Text)
}

func TestEmptyTemplateWarnsAndDegrades(t *testing.T) {
	empty := `{
	  "component_definitions": [{"name": "Husk"}],
	  "root": {"id": 1, "type": "Husk"}
	}`
	doc, err := Parse([]byte(empty))
	require.NoError(t, err)
	assert.Equal(t, ir.ComponentContainer, doc.Root.Type)
	assert.Equal(t, "Husk", doc.Root.ComponentRef)

	require.NotEmpty(t, doc.Warnings)
	assert.Equal(t, "empty_template", doc.Warnings[0].Code)
}

func TestInstanceSerializesAsShortReference(t *testing.T) {
	doc, err := Parse([]byte(counterDoc))
	require.NoError(t, err)

	out, err := Serialize(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	children := raw["root"].(map[string]any)["children"].([]any)
	node := children[0].(map[string]any)

	assert.Equal(t, "Counter", node["type"])
	assert.Equal(t, float64(10), node["id"])
	assert.Equal(t, float64(5), node["start"])
	_, hasChildren := node["children"]
	assert.False(t, hasChildren, "expanded subtree must not leak into instance form")

	// The short form re-expands on reload because the definition travels with
	// the document.
	reparsed, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "5", reparsed.Root.Children[0].Children[0].Text)
}

func TestModuleFallbackIsObservable(t *testing.T) {
	moduleDoc := `{
	  "root": {
	    "id": 1,
	    "type": "Container",
	    "children": [
	      {"id": 2, "type": "$module:widgets#Card", "actual_type": "Button", "text": "hi"}
	    ]
	  }
	}`
	doc, err := ParseWithOptions([]byte(moduleDoc), ParseOptions{ModuleCacheDir: t.TempDir()})
	require.NoError(t, err)

	require.NotEmpty(t, doc.Warnings)
	assert.Equal(t, "unresolved_module", doc.Warnings[0].Code)

	child := doc.Root.Children[0]
	assert.Equal(t, ir.ComponentButton, child.Type, "fallback honors the preserved actual type")
	assert.Equal(t, "widgets", child.ModuleRef)
	assert.Equal(t, "Card", child.ExportName)
	assert.Equal(t, "hi", child.Text)
}

func TestModuleResolutionFromRegisteredCache(t *testing.T) {
	cache := NewModuleCache(t.TempDir())
	cache.Register("widgets", []Definition{
		{
			Name:  "Card",
			Props: []PropDecl{{Name: "label", Type: "string", Default: "Go"}},
			Template: map[string]any{
				"type": "Button",
				"text": "{{label}}",
			},
		},
	})

	moduleDoc := `{
	  "root": {"id": 1, "type": "$module:widgets#Card"}
	}`
	doc, err := ParseWithOptions([]byte(moduleDoc), ParseOptions{Modules: cache})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)

	assert.Equal(t, ir.ComponentButton, doc.Root.Type)
	assert.Equal(t, "Go", doc.Root.Text)
	assert.Equal(t, "widgets", doc.Root.ModuleRef)
	assert.Equal(t, "Card", doc.Root.ExportName)
	assert.Equal(t, "Button", doc.Root.ActualType)
}

func TestModuleLoadsFromCacheDir(t *testing.T) {
	dir := t.TempDir()
	module := `{
	  "component_definitions": [
	    {"name": "Chip", "template": {"type": "Text", "text": "chip"}}
	  ]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui.kir"), []byte(module), 0o644))

	moduleDoc := `{"root": {"id": 1, "type": "$module:ui#Chip"}}`
	doc, err := ParseWithOptions([]byte(moduleDoc), ParseOptions{ModuleCacheDir: dir})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
	assert.Equal(t, "chip", doc.Root.Text)
}
