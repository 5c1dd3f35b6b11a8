package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	typograph "github.com/reoring/typograph"
	"github.com/reoring/typograph/traverse"
	"github.com/reoring/typograph/typepath"
	"github.com/reoring/typograph/typesource"
	"github.com/reoring/typograph/typesource/typedoc"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "inspect":
		inspectCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "typograph CLI\n\nUsage:\n  typograph inspect -f graph.yaml [-type T]\n\nNotes:\n  - inspect loads a type-graph document, adapts it, and prints the reachable\n    graph with inferred declaration names. Rendering output files needs a\n    backend and is not part of this tool.")
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var in string
	var only string
	fs.StringVar(&in, "f", "", "type-graph document (YAML or JSON)")
	fs.StringVar(&only, "type", "", "inspect a single named type")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		fatalf("read %s: %v", in, err)
	}
	doc, diag, err := typedoc.Load(data, typedoc.Options{DefaultSource: in})
	if err != nil {
		fatalf("%v", err)
	}
	for _, w := range diag.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	names := doc.Names()
	if only != "" {
		names = []string{only}
	}

	adapter := typesource.NewAdapter(&typesource.Opt{AddMethods: true})
	for _, name := range names {
		h, ok := doc.Handle(name)
		if !ok {
			fatalf("no type %q in %s", name, in)
		}
		t, err := adapter.Adapt(h)
		if err != nil {
			fatalf("adapt %s: %v", name, err)
		}
		fmt.Printf("%s (inferred: %s)\n", name, typograph.InferTypeName(t))
		err = traverse.WalkDepthFirst(nil, t, traverse.DepthFirstOpt{
			PreventCycles: true,
			Before: func(a traverse.Args) error {
				if len(a.Path) == 0 {
					return nil
				}
				last, _ := typepath.Last(a.Path)
				fmt.Printf("  %s%s: %s\n", strings.Repeat("  ", len(a.Path)-1), stepLabel(last), a.Type)
				return nil
			},
		})
		if err != nil {
			fatalf("walk %s: %v", name, err)
		}
	}
	for _, w := range adapter.Diag().Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
}

func stepLabel(s typepath.Step) string {
	switch {
	case s.Member != nil:
		return "." + s.Member.Name
	case s.Param != nil:
		return "(" + s.Param.Name + ")"
	default:
		return s.Kind.String()
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
