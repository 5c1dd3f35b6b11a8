package typograph_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	typograph "github.com/reoring/typograph"
	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/traverse"
	"github.com/reoring/typograph/typemodel"
)

func TestEnumNameMismatchWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := typograph.NewCompiler(newRecordBackend(), &typograph.CompileOpt{Logger: zap.New(core)})

	color := typemodel.Enum("Color",
		typemodel.EnumMember("Red", "Color.Red", typemodel.NumberLiteral(0)),
	)
	loc := c.AssignDeclarationLocation(color, &ast.DeclarationLocation{
		Location: ast.Location{FileName: "e.out"},
		Name:     "Colour",
	})
	if loc.Name != "Colour" {
		t.Fatalf("assigned = %q", loc.Name)
	}

	entries := logs.FilterMessage("enum declared name does not match assigned declaration name").All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["declared"] != "Color" || fields["assigned"] != "Colour" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestEnumNameMatchDoesNotWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := typograph.NewCompiler(newRecordBackend(), &typograph.CompileOpt{Logger: zap.New(core)})

	color := typemodel.Enum("Color")
	c.AssignDeclarationLocation(color, &ast.DeclarationLocation{
		Location: ast.Location{FileName: "e.out"},
		Name:     "Color",
	})
	if logs.Len() != 0 {
		t.Fatalf("unexpected warnings: %v", logs.All())
	}
}

// naiveBackend recurses through CompileType with a fresh path every time, so
// path-based cycle detection never fires and the depth guard must.
type naiveBackend struct{}

func (naiveBackend) CompileType(c *typograph.Compiler, a traverse.Args) (*ast.Node, error) {
	if a.Type.Kind().IsObjectLike() {
		for _, m := range a.Type.Members() {
			if _, err := c.CompileType(m.Type, nil, nil); err != nil {
				return nil, err
			}
		}
	}
	return ast.New(a.Type.String()).DoNotCache(), nil
}

func (naiveBackend) CompileReference(c *typograph.Compiler, args typograph.ReferenceArgs) (*ast.Node, error) {
	return ast.New(args.To.Location.Name), nil
}

func (naiveBackend) CompileFile(c *typograph.Compiler, file *typograph.File) (*ast.Node, error) {
	return ast.New(), nil
}

func TestRunawayRecursionHitsDepthGuard(t *testing.T) {
	var node *typemodel.Type
	node = typemodel.Deferred(typemodel.KindInterface, func(b *typemodel.Builder) {
		b.SetName("Node")
		b.SetMembers([]typemodel.Member{{Name: "next", Type: node}})
	})

	_, err := typograph.Compile([]typograph.Entry{entry(node, "n.out", "")},
		naiveBackend{}, &typograph.CompileOpt{MaxDepth: 25})
	if err == nil {
		t.Fatalf("expected depth-guard error")
	}
	var circ *typograph.CircularCompilationError
	if !errors.As(err, &circ) {
		t.Fatalf("error = %v", err)
	}
	if circ.Cause == nil {
		t.Fatalf("depth-guard diagnostic should carry the depth error as cause")
	}
	if circ.TypeName != "Node" {
		t.Fatalf("TypeName = %q", circ.TypeName)
	}
}
