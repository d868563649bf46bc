// render/render.go
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/waozixyz/kryon-ir/ir"
	"github.com/waozixyz/kryon-ir/kir"
)

const (
	BaseFontSize = 18.0
)

// WindowConfig holds application-level settings derived from the KIR app
// block.
type WindowConfig struct {
	Width       int
	Height      int
	Title       string
	Resizable   bool
	ScaleFactor float32
	DefaultBg   rl.Color
}

// Renderer defines the core interface every rendering backend implements.
// Backends receive trees whose visible nodes carry valid computed geometry
// and must only read it, never mutate it.
type Renderer interface {
	// Init initializes the backend (window creation) and installs the text
	// measurement callback into the layout engine.
	Init(config WindowConfig) error

	// PrepareTree derives the window configuration from a parsed document
	// and returns the tree to render.
	PrepareTree(doc *kir.Document) (*ir.Component, WindowConfig, error)

	// RenderFrame lays out and draws the current state of the tree.
	RenderFrame(root *ir.Component)

	Cleanup()
	ShouldClose() bool
	BeginFrame()
	EndFrame()
	PollEvents(root *ir.Component)

	// RegisterEventHandler binds a named logic id to a Go callback invoked
	// when a component with that handler receives its event.
	RegisterEventHandler(logicID string, handler func())
}

// DefaultWindowConfig returns the configuration used when a document has no
// app block.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:       800,
		Height:      600,
		Title:       "Kryon Application",
		Resizable:   true,
		ScaleFactor: 1.0,
		DefaultBg:   rl.NewColor(30, 30, 30, 255),
	}
}

// ConfigFromApp derives a window configuration from a document's app block,
// falling back to defaults field by field.
func ConfigFromApp(app *kir.App) WindowConfig {
	cfg := DefaultWindowConfig()
	if app == nil {
		return cfg
	}
	if app.WindowTitle != "" {
		cfg.Title = app.WindowTitle
	}
	if app.WindowWidth > 0 {
		cfg.Width = app.WindowWidth
	}
	if app.WindowHeight > 0 {
		cfg.Height = app.WindowHeight
	}
	return cfg
}
