// internal/app/run.go
package app

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/waozixyz/kryon-ir/internal/config"
	"github.com/waozixyz/kryon-ir/ir"
	"github.com/waozixyz/kryon-ir/kir"
	"github.com/waozixyz/kryon-ir/krb"
	"github.com/waozixyz/kryon-ir/render"

	// NOTE: NO direct import of specific renderers like raylib here!
)

// Run is the core viewer logic, independent of the specific renderer.
func Run(renderer render.Renderer) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	kirFilePath := flag.String("file", "", "Path to the KIR document or KRB snapshot to render")
	configPath := flag.String("config", "", "Optional viewer config (YAML)")
	flag.Parse()

	if *kirFilePath == "" {
		fmt.Println("Usage: <executable_name> -file <kir_file_path> [-config <config.yaml>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	doc := loadDocument(*kirFilePath, cfg)

	root, windowConfig, err := renderer.PrepareTree(doc)
	if err != nil {
		log.Fatalf("ERROR: Failed to prepare render tree: %v", err)
	}

	// Viewer config overrides the document's app block.
	if cfg.Window.Title != "" {
		windowConfig.Title = cfg.Window.Title
	}
	if cfg.Window.Width > 0 {
		windowConfig.Width = cfg.Window.Width
	}
	if cfg.Window.Height > 0 {
		windowConfig.Height = cfg.Window.Height
	}

	if err := renderer.Init(windowConfig); err != nil {
		renderer.Cleanup()
		log.Fatalf("ERROR: Failed to initialize renderer: %v", err)
	}
	defer renderer.Cleanup()

	log.Println("Entering main loop...")
	for !renderer.ShouldClose() {
		renderer.PollEvents(root)
		renderer.BeginFrame()
		renderer.RenderFrame(root)
		renderer.EndFrame()
	}
	log.Println("Exiting.")
}

// loadDocument reads either a KIR source document or a pre-expanded KRB
// snapshot, based on the file extension.
func loadDocument(path string, cfg *config.Config) *kir.Document {
	if strings.HasSuffix(path, ".krb") {
		log.Printf("Loading KRB snapshot: %s", path)
		ctx := ir.NewContext()
		root, meta, err := krb.ReadFile(path, ctx)
		if err != nil {
			log.Fatalf("ERROR: Failed to load KRB snapshot '%s': %v", path, err)
		}
		doc := &kir.Document{Root: root, Ctx: ctx}
		if meta.WindowTitle != "" || meta.WindowWidth > 0 || meta.WindowHeight > 0 {
			doc.App = &kir.App{
				WindowTitle:  meta.WindowTitle,
				WindowWidth:  meta.WindowWidth,
				WindowHeight: meta.WindowHeight,
			}
		}
		return doc
	}

	log.Printf("Loading KIR file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("ERROR: Cannot read KIR file '%s': %v", path, err)
	}
	doc, err := kir.ParseWithOptions(data, kir.ParseOptions{
		ModuleCacheDir: cfg.ModuleCacheDir,
	})
	if err != nil {
		log.Fatalf("ERROR: Failed to parse KIR file '%s': %v", path, err)
	}
	log.Printf("Parsed KIR OK - definitions=%d warnings=%d", len(doc.Definitions), len(doc.Warnings))
	return doc
}
