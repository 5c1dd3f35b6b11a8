package typepath_test

import (
	"testing"

	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

func step(kind typepath.StepKind, from *typemodel.Type) typepath.Step {
	return typepath.Step{Kind: kind, From: from}
}

func TestConcatDoesNotShareStorage(t *testing.T) {
	a := typemodel.String()
	b := typemodel.Number()

	prefix := typepath.Concat(nil, step(typepath.StepReturn, a))
	extended := typepath.Concat(prefix, step(typepath.StepAwaited, b))

	if len(prefix) != 1 {
		t.Fatalf("prefix mutated: len=%d", len(prefix))
	}
	if len(extended) != 2 {
		t.Fatalf("extended len=%d, want 2", len(extended))
	}

	// Appending to the prefix afterwards must not leak into extended.
	_ = typepath.Concat(prefix, step(typepath.StepReturn, b))
	if extended[1].Kind != typepath.StepAwaited {
		t.Fatalf("extended changed after unrelated concat")
	}
}

func TestIncludesAndSubpathFrom(t *testing.T) {
	root := typemodel.Interface("Root")
	mid := typemodel.Interface("Mid")
	leaf := typemodel.String()

	p := typepath.Path{
		{Kind: typepath.StepNamedMember, From: root, Member: &typemodel.Member{Name: "m"}},
		{Kind: typepath.StepNamedMember, From: mid, Member: &typemodel.Member{Name: "n"}},
	}

	if !typepath.Includes(p, root) || !typepath.Includes(p, mid) {
		t.Fatalf("Includes missed a step origin")
	}
	if typepath.Includes(p, leaf) {
		t.Fatalf("Includes matched a type not on the path")
	}

	sub, ok := typepath.SubpathFrom(p, mid)
	if !ok || len(sub) != 1 || sub[0].From != mid {
		t.Fatalf("SubpathFrom(mid) = %v, %v", sub, ok)
	}
	if _, ok := typepath.SubpathFrom(p, leaf); ok {
		t.Fatalf("SubpathFrom matched a type not on the path")
	}
}

func TestLastAndRoot(t *testing.T) {
	if _, ok := typepath.Last(nil); ok {
		t.Fatalf("Last of empty path reported a step")
	}
	if typepath.Root(nil) != nil {
		t.Fatalf("Root of empty path is not nil")
	}

	a := typemodel.Interface("A")
	b := typemodel.Interface("B")
	p := typepath.Path{step(typepath.StepAliased, a), step(typepath.StepReturn, b)}
	last, ok := typepath.Last(p)
	if !ok || last.From != b {
		t.Fatalf("Last = %v, %v", last, ok)
	}
	if typepath.Root(p) != a {
		t.Fatalf("Root != first step origin")
	}
}

func TestRenderFixedForms(t *testing.T) {
	obj := typemodel.Interface("Config")
	fn := typemodel.Function(nil, typemodel.String())
	arr := typemodel.Array(typemodel.Number())

	p := typepath.Path{
		{Kind: typepath.StepNamedMember, From: obj, Index: 0, Member: &typemodel.Member{Name: "load"}},
		{Kind: typepath.StepReturn, From: fn},
		{Kind: typepath.StepNumberIndex, From: arr},
	}
	got := typepath.Render(p, typemodel.Number())
	want := "Config.load->return[number] => number"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	// Identical paths render identically.
	if again := typepath.Render(p, typemodel.Number()); again != got {
		t.Fatalf("Render not stable: %q vs %q", again, got)
	}
}

func TestRenderEmptyPathUsesTarget(t *testing.T) {
	got := typepath.Render(nil, typemodel.Interface("Lonely"))
	if got != "Lonely" {
		t.Fatalf("Render(empty) = %q", got)
	}
}

func TestToTypescript(t *testing.T) {
	obj := typemodel.Interface("Api")
	fn := typemodel.Function(nil, typemodel.Promise(typemodel.String()))
	prom := typemodel.Promise(typemodel.String())

	p := typepath.Path{
		{Kind: typepath.StepNamedMember, From: obj, Member: &typemodel.Member{Name: "fetch"}},
		{Kind: typepath.StepReturn, From: fn},
		{Kind: typepath.StepAwaited, From: prom},
	}
	got := typepath.ToTypescript(p)
	want := `Awaited<ReturnType<Api["fetch"]>>`
	if got != want {
		t.Fatalf("ToTypescript = %q, want %q", got, want)
	}
}

func TestStepKindStrings(t *testing.T) {
	cases := map[typepath.StepKind]string{
		typepath.StepNamedMember:             "named-member",
		typepath.StepIndexedMember:           "indexed-member",
		typepath.StepStringIndex:             "string-index",
		typepath.StepNumberIndex:             "number-index",
		typepath.StepVariant:                 "variant",
		typepath.StepAwaited:                 "awaited",
		typepath.StepTypeParameter:           "type-parameter",
		typepath.StepTypeParameterConstraint: "type-parameter-constraint",
		typepath.StepTypeParameterDefault:    "type-parameter-default",
		typepath.StepParameter:               "parameter",
		typepath.StepReturn:                  "return",
		typepath.StepCallSignature:           "call-signature",
		typepath.StepCtorSignature:           "ctor-signature",
		typepath.StepGenericArgument:         "generic-argument",
		typepath.StepGenericTarget:           "generic-target",
		typepath.StepAliased:                 "aliased",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("StepKind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
