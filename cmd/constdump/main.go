// constdump renders constant-value trees described in TOML. It exists for
// debugging the constant-value layer: describe a value, see exactly how the
// frontend would store and quote it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/cyrene-lang/cyrene/ast"
	"github.com/cyrene-lang/cyrene/constval"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("constdump")

// document is the TOML input: one value tree, an optional type spelling used
// as the rendering prefix, and a render policy block.
type document struct {
	Type   string       `toml:"type"`
	Render renderConfig `toml:"render"`
	Value  node         `toml:"value"`
}

type renderConfig struct {
	Indent    int  `toml:"indent"`
	MaxDepth  int  `toml:"max-depth"`
	Multiline bool `toml:"multiline"`
}

func (r renderConfig) policy() constval.Policy {
	pol := constval.DefaultPolicy()
	if r.Indent > 0 {
		pol.Indent = r.Indent
	}
	if r.MaxDepth > 0 {
		pol.MaxDepth = r.MaxDepth
	}
	pol.Multiline = r.Multiline
	return pol
}

func loadDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return &doc, nil
}

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	multiline := flag.Bool("multiline", false, "Force multiline rendering")
	dumpOnly := flag.Bool("dump", false, "Print only the kind-annotated debug form")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: constdump [options] file.toml\n\n")
		fmt.Fprintf(os.Stderr, "Builds the constant value described in file.toml and renders it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	doc, err := loadDocument(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Infof("loaded %s", path)

	v, err := buildValue(&doc.Value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in %s: %v\n", path, err)
		os.Exit(1)
	}
	defer v.Destroy()
	log.Infof("built %s value", v.GetKind())

	if *dumpOnly {
		fmt.Println(v.Dump())
		return
	}

	pol := doc.Render.policy()
	if *multiline {
		pol.Multiline = true
	}
	var ty *ast.Type
	if doc.Type != "" {
		ty = &ast.Type{Spelling: doc.Type}
	}

	fmt.Println(v.Pretty(ast.DefaultContext(), pol, ty))
	if *verbose {
		fmt.Println(v.Dump())
	}
}
