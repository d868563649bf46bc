// cmd/kir-dump/main.go
//
// kir-dump parses a KIR document, reports validation findings, and re-emits
// the document, which exercises the full round trip from the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/waozixyz/kryon-ir/kir"
	"github.com/waozixyz/kryon-ir/krb"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	inPath := flag.String("file", "", "Path to the KIR file to inspect")
	outPath := flag.String("o", "", "Re-serialize to this path (default: stdout)")
	validateOnly := flag.Bool("validate", false, "Validate without re-serializing")
	cacheDir := flag.String("cache", "", "Module cache directory override")
	krbPath := flag.String("krb", "", "Also write a binary snapshot to this path")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: kir-dump -file <kir_file_path> [-o out.kir] [-validate]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("ERROR: Cannot read '%s': %v", *inPath, err)
	}

	doc, err := kir.ParseWithOptions(data, kir.ParseOptions{ModuleCacheDir: *cacheDir})
	if err != nil {
		log.Fatalf("ERROR: Failed to parse '%s': %v", *inPath, err)
	}

	warnings := kir.Validate(doc)
	warn := color.New(color.FgYellow)
	for _, w := range warnings {
		warn.Fprintf(os.Stderr, "WARN %s\n", w)
	}
	okMsg := color.New(color.FgGreen)
	okMsg.Fprintf(os.Stderr, "parsed %s: %d definitions, %d warnings\n",
		*inPath, len(doc.Definitions), len(warnings))

	if *krbPath != "" {
		opts := krb.EncodeOptions{}
		if doc.App != nil {
			opts.WindowTitle = doc.App.WindowTitle
			opts.WindowWidth = doc.App.WindowWidth
			opts.WindowHeight = doc.App.WindowHeight
		}
		if err := krb.WriteFile(*krbPath, doc.Root, opts); err != nil {
			log.Fatalf("ERROR: Cannot write snapshot '%s': %v", *krbPath, err)
		}
		okMsg.Fprintf(os.Stderr, "wrote snapshot %s\n", *krbPath)
	}

	if *validateOnly {
		if len(warnings) > 0 {
			os.Exit(2)
		}
		return
	}

	out, err := kir.Serialize(doc)
	if err != nil {
		log.Fatalf("ERROR: Failed to serialize: %v", err)
	}
	if *outPath == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Fatalf("ERROR: Cannot write '%s': %v", *outPath, err)
	}
}
