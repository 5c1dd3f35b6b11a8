package typemodel

import (
	"fmt"
	"strings"
)

// Pos is a source position recovered from the host type checker.
// Line and Column are 1-based.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether the position is empty.
func (p Pos) IsZero() bool { return p.File == "" && p.Line == 0 && p.Column == 0 }

// Host is the escape hatch back to the host type checker. The engine only
// uses it to recover declaration positions and documentation; it never
// inspects the underlying handle.
type Host interface {
	Pos() (Pos, bool)
	Docs() string
	Underlying() any
}

// Member is a named member of an object-like type.
type Member struct {
	Name      string
	Type      *Type
	Optional  bool
	Modifiers Modifier
}

// IndexedMember is a positional member of a tuple.
type IndexedMember struct {
	Type     *Type
	Optional bool
}

// Parameter is one parameter of a callable.
type Parameter struct {
	Name           string
	Type           *Type
	Optional       bool
	Rest           bool
	HasInitializer bool
}

// TypePredicate narrows a parameter in the host language ("x is T").
type TypePredicate struct {
	ParameterName  string
	ParameterIndex int
	Type           *Type
}

// Type is one node of the type graph. Values are immutable once constructed;
// equality is identity (pointer) equality. The graph may contain cycles
// through any field that carries another *Type.
//
// A Type built by the adapter may be deferred: its fields are populated on
// first access. Accessors on a deferred value behave exactly like accessors
// on an eager one.
type Type struct {
	kind Kind

	name          string
	qualifiedName string // enum members only
	value         any    // literal kinds: string, float64, bool, or string for bigint

	members         []Member
	callSignature   *Type
	ctorSignature   *Type
	typeParameters  []*Type
	stringIndexType *Type
	numberIndexType *Type

	variants            []*Type  // union, intersection, enum
	discriminantMembers []string // union only
	intersected         *Type    // intersection: reduced form, when representable

	parameters []Parameter
	returnType *Type
	predicate  *TypePredicate

	constraint  *Type // generic parameter
	defaultType *Type // generic parameter

	target        *Type   // alias target, enum-member value, generic-arguments target
	typeArguments []*Type // generic-arguments
	instantiated  *Type   // generic-arguments

	indexedMembers []IndexedMember // tuple
	hasRest        bool            // tuple

	element *Type // array, promise

	err  error
	host Host

	fill func(*Type)
}

func (t *Type) ensure() {
	if t.fill != nil {
		f := t.fill
		t.fill = nil
		f(t)
	}
}

// Kind returns the type's kind. It is fixed at construction and never
// triggers deferred population.
func (t *Type) Kind() Kind { return t.kind }

// Name returns the declared name, if any.
func (t *Type) Name() string { t.ensure(); return t.name }

// QualifiedName returns the qualified name of an enum member ("Color.Red").
func (t *Type) QualifiedName() string { t.ensure(); return t.qualifiedName }

// Value returns the literal value of a literal kind.
func (t *Type) Value() any { t.ensure(); return t.value }

// Members returns the ordered named members of an object-like type.
func (t *Type) Members() []Member { t.ensure(); return t.members }

// CallSignature returns the call signature of an object-like type, if any.
func (t *Type) CallSignature() *Type { t.ensure(); return t.callSignature }

// CtorSignature returns the constructor signature, if any.
func (t *Type) CtorSignature() *Type { t.ensure(); return t.ctorSignature }

// TypeParameters returns the generic parameters, if any.
func (t *Type) TypeParameters() []*Type { t.ensure(); return t.typeParameters }

// StringIndexType returns the string-index type, if any.
func (t *Type) StringIndexType() *Type { t.ensure(); return t.stringIndexType }

// NumberIndexType returns the number-index type. For arrays this is the
// element type.
func (t *Type) NumberIndexType() *Type {
	t.ensure()
	if t.kind == KindArray {
		return t.element
	}
	return t.numberIndexType
}

// Variants returns the constituents of a union, intersection, or enum.
func (t *Type) Variants() []*Type { t.ensure(); return t.variants }

// DiscriminantMembers returns the names of discriminant members of a union.
func (t *Type) DiscriminantMembers() []string { t.ensure(); return t.discriminantMembers }

// Intersected returns the reduced form of an intersection, when the target
// type system cannot represent intersections directly.
func (t *Type) Intersected() *Type { t.ensure(); return t.intersected }

// Parameters returns the ordered parameters of a callable.
func (t *Type) Parameters() []Parameter { t.ensure(); return t.parameters }

// ReturnType returns the return type of a callable.
func (t *Type) ReturnType() *Type { t.ensure(); return t.returnType }

// Predicate returns the type predicate of a callable, if any.
func (t *Type) Predicate() *TypePredicate { t.ensure(); return t.predicate }

// Constraint returns the constraint of a generic parameter, if any.
func (t *Type) Constraint() *Type { t.ensure(); return t.constraint }

// Default returns the default of a generic parameter, if any.
func (t *Type) Default() *Type { t.ensure(); return t.defaultType }

// Target returns the inner target: the aliased type of an alias, the literal
// value of an enum member, or the generic of a generic-arguments.
func (t *Type) Target() *Type { t.ensure(); return t.target }

// TypeArguments returns the arguments of a generic-arguments.
func (t *Type) TypeArguments() []*Type { t.ensure(); return t.typeArguments }

// Instantiated returns the post-substitution body of a generic-arguments.
func (t *Type) Instantiated() *Type { t.ensure(); return t.instantiated }

// IndexedMembers returns the ordered members of a tuple.
func (t *Type) IndexedMembers() []IndexedMember { t.ensure(); return t.indexedMembers }

// HasRest reports whether a tuple ends in a rest element.
func (t *Type) HasRest() bool { t.ensure(); return t.hasRest }

// Element returns the element type of an array or promise.
func (t *Type) Element() *Type { t.ensure(); return t.element }

// Err returns the adapter error carried by an untranslatable type, if any.
func (t *Type) Err() error { t.ensure(); return t.err }

// Host returns the host type-checker handle, when the adapter attached one.
func (t *Type) Host() Host { t.ensure(); return t.host }

// Resolve forces deferred population. It is a no-op on eager values; any
// accessor has the same effect.
func (t *Type) Resolve() { t.ensure() }

// String renders a short diagnostic label: the name when present, otherwise
// the kind.
func (t *Type) String() string {
	t.ensure()
	if t.name != "" {
		return t.name
	}
	if t.kind.IsLiteral() {
		return fmt.Sprintf("%s(%v)", t.kind, t.value)
	}
	return t.kind.String()
}

// Describe renders a longer diagnostic label, expanding one level of
// structure for algebraic kinds.
func (t *Type) Describe() string {
	t.ensure()
	switch t.kind {
	case KindUnion, KindIntersection, KindEnum:
		parts := make([]string, 0, len(t.variants))
		for _, v := range t.variants {
			parts = append(parts, v.String())
		}
		return fmt.Sprintf("%s[%s]", t.kind, strings.Join(parts, ", "))
	default:
		return t.String()
	}
}
