// render/raylib/raylib_renderer.go
package raylib

import (
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/waozixyz/kryon-ir/ir"
	"github.com/waozixyz/kryon-ir/kir"
	"github.com/waozixyz/kryon-ir/layout"
	"github.com/waozixyz/kryon-ir/render"
)

// baseFontSize defines the default size for text rendering.
const baseFontSize = 18.0

// RaylibRenderer implements render.Renderer using the Raylib graphics
// library. It installs the layout engine's text measurement callback during
// Init, lays the tree out against the current window size every frame, and
// draws the computed boxes.
type RaylibRenderer struct {
	config          render.WindowConfig
	scaleFactor     float32
	font            rl.Font
	fontLoaded      bool
	eventHandlerMap map[string]func()
}

// NewRaylibRenderer creates a renderer with default values.
func NewRaylibRenderer() *RaylibRenderer {
	return &RaylibRenderer{
		scaleFactor:     1.0,
		eventHandlerMap: make(map[string]func()),
	}
}

// Init initializes the Raylib window and wires text measurement into the
// layout engine.
func (r *RaylibRenderer) Init(config render.WindowConfig) error {
	r.config = config
	r.scaleFactor = float32(math.Max(1.0, float64(config.ScaleFactor)))

	log.Printf("RaylibRenderer Init: window %dx%d, title '%s', scale %.2f",
		config.Width, config.Height, config.Title, r.scaleFactor)

	rl.InitWindow(int32(config.Width), int32(config.Height), config.Title)
	if config.Resizable {
		rl.SetWindowState(rl.FlagWindowResizable)
	} else {
		rl.ClearWindowState(rl.FlagWindowResizable)
		rl.SetWindowSize(config.Width, config.Height)
	}
	rl.SetTargetFPS(60)

	if !rl.IsWindowReady() {
		return fmt.Errorf("RaylibRenderer Init: rl.InitWindow failed or window is not ready")
	}

	r.font = rl.GetFontDefault()
	r.fontLoaded = true
	layout.SetTextMeasure(r.measureText)
	return nil
}

// measureText is the layout engine's measurement callback.
func (r *RaylibRenderer) measureText(text string, fontSize, maxWidth float32) (float32, float32) {
	if !r.fontLoaded {
		w := layout.TextWidthEstimate(text, fontSize)
		return w, fontSize * 1.5
	}
	spacing := fontSize / 10
	size := rl.MeasureTextEx(r.font, text, fontSize, spacing)
	if maxWidth > 0 && size.X > maxWidth {
		lines := float32(math.Ceil(float64(size.X / maxWidth)))
		return maxWidth, size.Y * lines
	}
	return size.X, size.Y
}

// PrepareTree derives the window configuration from the document's app
// block.
func (r *RaylibRenderer) PrepareTree(doc *kir.Document) (*ir.Component, render.WindowConfig, error) {
	if doc == nil || doc.Root == nil {
		return nil, render.DefaultWindowConfig(), fmt.Errorf("PrepareTree: document has no root")
	}
	cfg := render.ConfigFromApp(doc.App)
	for _, w := range doc.Warnings {
		log.Printf("WARN: %s", w)
	}
	return doc.Root, cfg, nil
}

// RenderFrame lays the tree out at the current window size and draws it.
func (r *RaylibRenderer) RenderFrame(root *ir.Component) {
	if root == nil {
		return
	}
	layout.ComputeTree(root, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	r.drawComponent(root)
}

func (r *RaylibRenderer) drawComponent(c *ir.Component) {
	if c == nil {
		return
	}
	x, y, w, h, ok := layout.Bounds(c)
	if !ok {
		return
	}
	if c.Style != nil && !c.Style.Visible {
		return
	}

	if c.Style != nil && !c.Style.Background.IsTransparent() {
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), toRaylibColor(c.Style.Background))
	}
	r.drawBorder(c, x, y, w, h)

	switch c.Type {
	case ir.ComponentTab:
		r.drawTab(c, x, y, w, h)
	case ir.ComponentHorizontalRule:
		rl.DrawRectangle(int32(x), int32(y+h/2), int32(w), 1, rl.Gray)
	default:
		if c.Text != "" {
			r.drawText(c, x, y, w, h)
		}
	}

	for _, child := range c.Children {
		r.drawComponent(child)
	}
}

func (r *RaylibRenderer) drawText(c *ir.Component, x, y, w, h float32) {
	fontSize := c.Style.FontSizeOr(baseFontSize)
	fg := rl.RayWhite
	if c.Style != nil && !c.Style.Color.IsTransparent() {
		fg = toRaylibColor(c.Style.Color)
	}

	textX, textY := x, y
	if c.Style != nil {
		textX += c.Style.Padding.Left
		textY += c.Style.Padding.Top
		switch c.Style.Font.Align {
		case ir.TextAlignCenter:
			tw := rl.MeasureTextEx(r.font, c.Text, fontSize, fontSize/10).X
			textX = x + (w-tw)/2
		case ir.TextAlignRight:
			tw := rl.MeasureTextEx(r.font, c.Text, fontSize, fontSize/10).X
			textX = x + w - tw - c.Style.Padding.Right
		}
	}
	rl.DrawTextEx(r.font, c.Text, rl.NewVector2(textX, textY), fontSize, fontSize/10, fg)
	_ = h
}

// drawTab renders a tab label with an active-state underline.
func (r *RaylibRenderer) drawTab(c *ir.Component, x, y, w, h float32) {
	active := false
	if td, ok := c.CustomData.(*ir.TabData); ok {
		active = td.Active
	}
	fontSize := c.Style.FontSizeOr(14)
	fg := rl.LightGray
	if active {
		fg = rl.RayWhite
	}
	tw := rl.MeasureTextEx(r.font, c.Text, fontSize, fontSize/10).X
	rl.DrawTextEx(r.font, c.Text, rl.NewVector2(x+(w-tw)/2, y+(h-fontSize)/2), fontSize, fontSize/10, fg)
	if active {
		rl.DrawRectangle(int32(x), int32(y+h-2), int32(w), 2, rl.SkyBlue)
	}
}

func (r *RaylibRenderer) drawBorder(c *ir.Component, x, y, w, h float32) {
	if c.Style == nil {
		return
	}
	b := c.Style.Border
	if b.Widths.IsZero() || b.Color.IsTransparent() {
		return
	}
	color := toRaylibColor(b.Color)
	if b.Widths.Top > 0 {
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(b.Widths.Top), color)
	}
	if b.Widths.Bottom > 0 {
		rl.DrawRectangle(int32(x), int32(y+h-b.Widths.Bottom), int32(w), int32(b.Widths.Bottom), color)
	}
	if b.Widths.Left > 0 {
		rl.DrawRectangle(int32(x), int32(y), int32(b.Widths.Left), int32(h), color)
	}
	if b.Widths.Right > 0 {
		rl.DrawRectangle(int32(x+w-b.Widths.Right), int32(y), int32(b.Widths.Right), int32(h), color)
	}
}

// PollEvents handles mouse input: tab activation and click handlers.
func (r *RaylibRenderer) PollEvents(root *ir.Component) {
	if root == nil || !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	pos := rl.GetMousePosition()

	var hit *ir.Component
	root.Walk(func(c *ir.Component) bool {
		x, y, w, h, ok := layout.Bounds(c)
		if !ok {
			return true
		}
		if pos.X >= x && pos.X < x+w && pos.Y >= y && pos.Y < y+h {
			hit = c // deepest hit wins; children are visited after parents
		}
		return true
	})
	if hit == nil {
		return
	}

	if hit.Type == ir.ComponentTab {
		r.activateTab(root, hit)
		return
	}
	for i := range hit.Events {
		ev := &hit.Events[i]
		if ev.Kind != ir.EventClick {
			continue
		}
		if handler, ok := r.eventHandlerMap[ev.LogicID]; ok {
			handler()
		} else {
			log.Printf("WARN: no handler registered for logic id %q", ev.LogicID)
		}
	}
}

// activateTab switches the tab's owning group to the clicked index, scoped
// by owner instance so duplicated templates stay independent.
func (r *RaylibRenderer) activateTab(root *ir.Component, tab *ir.Component) {
	group := tab.Parent
	for group != nil && group.Type != ir.ComponentTabGroup {
		group = group.Parent
	}
	if group == nil {
		return
	}
	index := 0
	if td, ok := tab.CustomData.(*ir.TabData); ok {
		index = td.Index
	} else if tab.Parent != nil {
		for i, sib := range tab.Parent.Children {
			if sib == tab {
				index = i
				break
			}
		}
	}
	layout.ActivateTab(group, index)
	_ = root
}

// RegisterEventHandler binds a named logic id to a Go callback.
func (r *RaylibRenderer) RegisterEventHandler(logicID string, handler func()) {
	r.eventHandlerMap[logicID] = handler
}

func (r *RaylibRenderer) Cleanup() {
	layout.SetTextMeasure(nil)
	if rl.IsWindowReady() {
		rl.CloseWindow()
	}
}

func (r *RaylibRenderer) ShouldClose() bool { return rl.WindowShouldClose() }

func (r *RaylibRenderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(r.config.DefaultBg)
}

func (r *RaylibRenderer) EndFrame() { rl.EndDrawing() }

func toRaylibColor(c ir.Color) rl.Color {
	if g := c.Gradient; g != nil && len(g.Stops) > 0 {
		// Flat fill with the first stop; real gradient fills are a renderer
		// concern beyond this backend.
		return toRaylibColor(g.Stops[0].Color)
	}
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
