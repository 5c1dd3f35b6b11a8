package typograph_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	typograph "github.com/reoring/typograph"
	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/traverse"
	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// recordBackend is the test target: object-like types become
// `record Name { field: Type; }` declarations, primitives become their kind
// name, unions become `A | B`, arrays become `T[]`. It counts CompileType
// calls per type for the memoization checks.
type recordBackend struct {
	suggest func(t *typemodel.Type, from *ast.DeclarationLocation) (ast.Location, bool)
	calls   map[*typemodel.Type]int
}

func newRecordBackend() *recordBackend {
	return &recordBackend{calls: map[*typemodel.Type]int{}}
}

func (b *recordBackend) SuggestDeclarationLocation(t *typemodel.Type, from *ast.DeclarationLocation) (ast.Location, bool) {
	if b.suggest == nil {
		return ast.Location{}, false
	}
	return b.suggest(t, from)
}

func (b *recordBackend) CompileType(c *typograph.Compiler, a traverse.Args) (*ast.Node, error) {
	b.calls[a.Type]++
	t := a.Type

	switch {
	case t.Kind().IsPrimitive():
		return ast.New(t.Kind().String()), nil

	case t.Kind().IsLiteral():
		if s, ok := t.Value().(string); ok {
			return ast.New(`"` + s + `"`), nil
		}
		return ast.New(t.String()), nil

	case t.Kind() == typemodel.KindArray:
		res, ok, err := traverse.NumberIndex(a)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("array without element")
		}
		elem, err := b.inline(c, c.OutputLocation(), res.(*ast.Node))
		if err != nil {
			return nil, err
		}
		return ast.New(elem, "[]"), nil

	case t.Kind() == typemodel.KindUnion:
		results, err := traverse.MapVariants(a)
		if err != nil {
			return nil, err
		}
		node := ast.New()
		for i, r := range results {
			if i > 0 {
				node.Add(" | ")
			}
			variant, err := b.inline(c, c.OutputLocation(), r.(*ast.Node))
			if err != nil {
				return nil, err
			}
			node.Add(variant)
		}
		return node, nil

	case t.Kind().IsObjectLike():
		loc := c.AssignDeclarationLocation(t, nil)
		decl := ast.NewDeclaration(loc, "record "+loc.Name+" {\n")
		members := t.Members()
		for i := range members {
			m := members[i]
			res, err := a.Visit.Step(typepath.Step{Kind: typepath.StepNamedMember, From: t, Index: i, Member: &m}, m.Type)
			if err != nil {
				return nil, err
			}
			field, err := b.inline(c, &loc, res.(*ast.Node))
			if err != nil {
				return nil, err
			}
			decl.Add("  "+m.Name+": ", field, ";\n")
		}
		decl.Add("}\n")
		return decl, nil

	default:
		return nil, &typograph.UnsupportedKindError{Kind: t.Kind()}
	}
}

// inline turns a declaration node into a reference at its use site; other
// nodes pass through.
func (b *recordBackend) inline(c *typograph.Compiler, from *ast.DeclarationLocation, node *ast.Node) (*ast.Node, error) {
	if !node.IsDeclaration() {
		return node, nil
	}
	loc, _ := node.Location()
	return c.CompileReference(typograph.ReferenceArgs{
		From: from,
		To:   typograph.ReferenceTarget{Location: loc, Declaration: node},
	})
}

func (b *recordBackend) CompileReference(c *typograph.Compiler, args typograph.ReferenceArgs) (*ast.Node, error) {
	return ast.New(args.To.Location.Name), nil
}

func (b *recordBackend) CompileFile(c *typograph.Compiler, file *typograph.File) (*ast.Node, error) {
	node := ast.New()
	for _, ref := range file.ReferencesFiles() {
		node.Add("// import " + ref + "\n")
	}
	for _, n := range file.Nodes() {
		node.Add(n)
	}
	return node, nil
}

func entry(t *typemodel.Type, file, name string) typograph.Entry {
	return typograph.Entry{Type: t, Output: ast.DeclarationLocation{
		Location: ast.Location{FileName: file},
		Name:     name,
	}}
}

// Scenario A: a primitive entry produces one file containing the kind name
// and no references.
func TestScenarioPrimitiveRoundTrip(t *testing.T) {
	res, err := typograph.Compile([]typograph.Entry{entry(typemodel.String(), "a.out", "S")}, newRecordBackend(), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	f := res.Files["a.out"]
	if f == nil {
		t.Fatalf("missing file; order=%v", res.Order)
	}
	if f.Text != "string" {
		t.Fatalf("text = %q", f.Text)
	}
	if refs := res.Program.File("a.out").References(); len(refs) != 0 {
		t.Fatalf("references = %v", refs)
	}
}

// Scenario B: an interface entry becomes exactly one record declaration with
// fields in source order.
func TestScenarioObjectWithTwoFields(t *testing.T) {
	point := typemodel.Interface("Point",
		typemodel.Member{Name: "x", Type: typemodel.Number()},
		typemodel.Member{Name: "y", Type: typemodel.Number()},
	)
	res, err := typograph.Compile([]typograph.Entry{entry(point, "point.out", "")}, newRecordBackend(), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	f := res.Files["point.out"]
	want := "record Point {\n  x: number;\n  y: number;\n}\n"
	if f.Text != want {
		t.Fatalf("text = %q, want %q", f.Text, want)
	}
	if got := strings.Count(f.Text, "record "); got != 1 {
		t.Fatalf("declaration count = %d", got)
	}
}

// Scenario C: a member type placed in another file by the backend's
// placement policy produces a reference in the outer file, a recorded
// cross-file edge, and the declaration in the other file.
func TestScenarioCrossFileReference(t *testing.T) {
	inner := typemodel.Interface("Inner",
		typemodel.Member{Name: "value", Type: typemodel.String()},
	)
	outer := typemodel.Interface("Outer",
		typemodel.Member{Name: "inner", Type: inner},
	)
	b := newRecordBackend()
	b.suggest = func(t *typemodel.Type, from *ast.DeclarationLocation) (ast.Location, bool) {
		if t == inner {
			return ast.Location{FileName: "b.out"}, true
		}
		return ast.Location{}, false
	}

	res, err := typograph.Compile([]typograph.Entry{entry(outer, "a.out", "")}, b, nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	a := res.Files["a.out"]
	if a == nil {
		t.Fatalf("a.out missing")
	}
	if !strings.Contains(a.Text, "record Outer {") || !strings.Contains(a.Text, "inner: Inner;") {
		t.Fatalf("a.out = %q", a.Text)
	}
	if strings.Contains(a.Text, "record Inner") {
		t.Fatalf("Inner declared inline in a.out: %q", a.Text)
	}
	if !strings.Contains(a.Text, "// import b.out") {
		t.Fatalf("a.out missing import: %q", a.Text)
	}

	refs := res.Program.File("a.out").References()
	if len(refs) != 1 || refs[0].FileName != "b.out" {
		t.Fatalf("a.out references = %v", refs)
	}

	bf := res.Files["b.out"]
	if bf == nil || !strings.Contains(bf.Text, "record Inner {") {
		t.Fatalf("b.out = %+v", bf)
	}
}

// Scenario D: a self-recursive type compiles to one declaration containing a
// reference back to itself, with no duplicate declarations.
func TestScenarioRecursiveType(t *testing.T) {
	var node *typemodel.Type
	node = typemodel.Deferred(typemodel.KindInterface, func(b *typemodel.Builder) {
		b.SetName("Node")
		b.SetMembers([]typemodel.Member{{Name: "next", Type: node, Optional: true}})
	})

	res, err := typograph.Compile([]typograph.Entry{entry(node, "node.out", "")}, newRecordBackend(), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	f := res.Files["node.out"]
	want := "record Node {\n  next: Node;\n}\n"
	if f.Text != want {
		t.Fatalf("text = %q", f.Text)
	}
	if got := strings.Count(f.Text, "record "); got != 1 {
		t.Fatalf("declaration count = %d", got)
	}
}

// Scenario E: colliding base names get deterministic counter suffixes in
// assignment order.
func TestScenarioUniqueNamingCollision(t *testing.T) {
	c := typograph.NewCompiler(newRecordBackend(), nil)
	suggest := ast.DeclarationLocation{Location: ast.Location{FileName: "x.out"}, Name: "Anonymous"}

	first := c.AssignDeclarationLocation(typemodel.Object(), &suggest)
	second := c.AssignDeclarationLocation(typemodel.Object(), &suggest)

	if first.Name != "Anonymous" || second.Name != "Anonymous1" {
		t.Fatalf("names = %q, %q", first.Name, second.Name)
	}
}

// Scenario F: a discriminated union names itself from its discriminants and
// renders variants in source order.
func TestScenarioDiscriminatedUnion(t *testing.T) {
	va := typemodel.Object(
		typemodel.Member{Name: "kind", Type: typemodel.StringLiteral("a")},
		typemodel.Member{Name: "x", Type: typemodel.Number()},
	)
	vb := typemodel.Object(
		typemodel.Member{Name: "kind", Type: typemodel.StringLiteral("b")},
		typemodel.Member{Name: "y", Type: typemodel.String()},
	)
	u := typemodel.Union(va, vb).WithDiscriminantMembers("kind")

	if got := typograph.InferTypeName(u); got != "AOrB" {
		t.Fatalf("InferTypeName = %q", got)
	}

	res, err := typograph.Compile([]typograph.Entry{entry(u, "u.out", "")}, newRecordBackend(), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	text := res.Files["u.out"].Text
	ia := strings.Index(text, `"a"`)
	ib := strings.Index(text, `"b"`)
	if ia < 0 || ib < 0 || ia > ib {
		t.Fatalf("variant order lost: %q", text)
	}
}

// Invariant: backend CompileType runs at most once per cacheable type, even
// when the type is reachable at several paths.
func TestMemoizationAcrossPaths(t *testing.T) {
	shared := typemodel.Interface("Shared",
		typemodel.Member{Name: "v", Type: typemodel.String()},
	)
	root := typemodel.Interface("Root",
		typemodel.Member{Name: "first", Type: shared},
		typemodel.Member{Name: "second", Type: shared},
	)
	b := newRecordBackend()
	if _, err := typograph.Compile([]typograph.Entry{entry(root, "r.out", "")}, b, nil); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if b.calls[shared] != 1 {
		t.Fatalf("Shared compiled %d times", b.calls[shared])
	}
}

// Invariant: assignment is idempotent and a later explicit location does not
// override the first.
func TestAssignmentIdempotent(t *testing.T) {
	c := typograph.NewCompiler(newRecordBackend(), nil)
	ty := typemodel.Interface("T")
	first := c.AssignDeclarationLocation(ty, &ast.DeclarationLocation{
		Location: ast.Location{FileName: "one.out"}, Name: "T",
	})
	override := ast.DeclarationLocation{Location: ast.Location{FileName: "two.out"}, Name: "Other"}
	second := c.AssignDeclarationLocation(ty, &override)
	if !reflect.DeepEqual(second, first) {
		t.Fatalf("assignment changed: %v -> %v", first, second)
	}
	third := c.AssignDeclarationLocation(ty, nil)
	if !reflect.DeepEqual(third, first) {
		t.Fatalf("assignment changed without argument: %v", third)
	}
}

// Invariant: the same assignment sequence yields the same names, run twice.
func TestDeterministicNaming(t *testing.T) {
	run := func() []string {
		c := typograph.NewCompiler(newRecordBackend(), nil)
		var names []string
		for i := 0; i < 4; i++ {
			loc := c.AssignDeclarationLocation(typemodel.Object(), &ast.DeclarationLocation{
				Location: ast.Location{FileName: "f.out", Namespace: []string{"ns"}},
				Name:     "Item",
			})
			names = append(names, loc.Name)
		}
		// A different namespace gets its own counter.
		other := c.AssignDeclarationLocation(typemodel.Object(), &ast.DeclarationLocation{
			Location: ast.Location{FileName: "f.out"},
			Name:     "Item",
		})
		return append(names, other.Name)
	}
	a := run()
	bn := run()
	want := []string{"Item", "Item1", "Item2", "Item3", "Item"}
	if strings.Join(a, ",") != strings.Join(want, ",") || strings.Join(bn, ",") != strings.Join(want, ",") {
		t.Fatalf("names = %v / %v, want %v", a, bn, want)
	}
}

// Invariant: every declaration reachable from any entry lands in exactly one
// file, once, even when two entries reach it.
func TestFileAssignmentIdempotentAcrossEntries(t *testing.T) {
	inner := typemodel.Interface("Inner",
		typemodel.Member{Name: "v", Type: typemodel.String()},
	)
	left := typemodel.Interface("Left", typemodel.Member{Name: "i", Type: inner})
	right := typemodel.Interface("Right", typemodel.Member{Name: "i", Type: inner})

	b := newRecordBackend()
	b.suggest = func(t *typemodel.Type, from *ast.DeclarationLocation) (ast.Location, bool) {
		if t == inner {
			return ast.Location{FileName: "shared.out"}, true
		}
		return ast.Location{}, false
	}
	res, err := typograph.Compile([]typograph.Entry{
		entry(left, "l.out", ""),
		entry(right, "r.out", ""),
	}, b, nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if got := strings.Count(res.Files["shared.out"].Text, "record Inner"); got != 1 {
		t.Fatalf("Inner declared %d times: %q", got, res.Files["shared.out"].Text)
	}
	for _, file := range []string{"l.out", "r.out"} {
		refs := res.Program.File(file).References()
		if len(refs) != 1 || refs[0].FileName != "shared.out" {
			t.Fatalf("%s references = %v", file, refs)
		}
	}
}

// A cycle with no declaration to break it surfaces the targeted diagnostic
// naming the first named type on the cyclic subpath.
func TestCircularCompilationWithoutBreak(t *testing.T) {
	var loop *typemodel.Type
	loop = typemodel.Deferred(typemodel.KindUnion, func(b *typemodel.Builder) {
		b.SetName("Loop")
		b.SetVariants([]*typemodel.Type{loop, typemodel.String()})
	})
	root := typemodel.Interface("Root", typemodel.Member{Name: "u", Type: loop})

	// Unions are compiled inline by this backend, so nothing assigns the
	// cyclic union a declaration location before the cycle closes.
	_, err := typograph.Compile([]typograph.Entry{entry(root, "x.out", "")}, newRecordBackend(), nil)
	if err == nil {
		t.Fatalf("expected circular-compilation error")
	}
	var circ *typograph.CircularCompilationError
	if !errors.As(err, &circ) {
		t.Fatalf("error = %v", err)
	}
	if circ.TypeName != "Loop" {
		t.Fatalf("TypeName = %q", circ.TypeName)
	}
}

// An errored type refuses to compile.
func TestTypeWithAdapterError(t *testing.T) {
	bad := typemodel.Errored(typemodel.KindUnknown, errors.New("host gave up"))
	root := typemodel.Interface("Root", typemodel.Member{Name: "bad", Type: bad})
	_, err := typograph.Compile([]typograph.Entry{entry(root, "x.out", "")}, newRecordBackend(), nil)
	var te *typograph.TypeError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(err.Error(), "host gave up") {
		t.Fatalf("cause missing: %v", err)
	}
}

// A reference built with no output location fails with the dedicated error.
func TestReferenceWithoutLocation(t *testing.T) {
	c := typograph.NewCompiler(newRecordBackend(), nil)
	_, err := c.CompileReference(typograph.ReferenceArgs{
		To: typograph.ReferenceTarget{Location: ast.DeclarationLocation{
			Location: ast.Location{FileName: "b.out"}, Name: "X",
		}},
	})
	var ml *typograph.MissingLocationError
	if !errors.As(err, &ml) {
		t.Fatalf("error = %v", err)
	}
}

// Errors crossing the compile traversal carry exactly one path annotation.
func TestCompileErrorCarriesPath(t *testing.T) {
	bad := typemodel.Errored(typemodel.KindUnknown, errors.New("boom"))
	root := typemodel.Interface("Root", typemodel.Member{Name: "leaf", Type: bad})
	_, err := typograph.Compile([]typograph.Entry{entry(root, "x.out", "")}, newRecordBackend(), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := strings.Count(err.Error(), "\nPath: "); got != 1 {
		t.Fatalf("path annotations = %d: %q", got, err.Error())
	}
	if !strings.Contains(err.Error(), "Root.leaf") {
		t.Fatalf("path missing: %q", err.Error())
	}
}
