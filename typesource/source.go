// Package typesource converts host type-checker output into the type model.
// The host is specified only by the Handle contract below; the adapter owns
// caching, laziness, generic and alias lifting, simplification, and
// well-known type recognition.
package typesource

import (
	"github.com/reoring/typograph/typemodel"
)

// Handle is the core contract every host type handle satisfies. Structural
// detail is exposed through the capability interfaces below, discovered by
// type assertion; a host only implements the capabilities its types have.
type Handle interface {
	// ID is a stable identity for this host type. Two handles with equal IDs
	// denote the same host type; the adapter's cache is keyed by it.
	ID() string

	// Kind classifies the underlying type, before generic or alias lifting.
	Kind() typemodel.Kind

	// Name is the declared name, or empty for anonymous types.
	Name() string
}

// MemberInfo describes one named member.
type MemberInfo struct {
	Name      string
	Type      Handle
	Optional  bool
	Modifiers typemodel.Modifier
	// HasDeclaration is false for synthetic members the host manufactured;
	// the adapter drops those.
	HasDeclaration bool
}

// IndexedMemberInfo describes one tuple member.
type IndexedMemberInfo struct {
	Type     Handle
	Optional bool
}

// ParameterInfo describes one callable parameter.
type ParameterInfo struct {
	Name           string
	Type           Handle
	Optional       bool
	Rest           bool
	HasInitializer bool
}

// TypeParameterInfo describes one generic parameter.
type TypeParameterInfo struct {
	Name       string
	Constraint Handle
	Default    Handle
}

// PredicateInfo describes a type predicate ("x is T").
type PredicateInfo struct {
	ParameterName  string
	ParameterIndex int
	Type           Handle
}

// SignatureInfo describes one call or constructor signature.
type SignatureInfo struct {
	Parameters     []ParameterInfo
	Return         Handle
	TypeParameters []TypeParameterInfo
	Predicate      *PredicateInfo
}

// ObjectHandle exposes the members of object-like types.
type ObjectHandle interface {
	Members() []MemberInfo
	CallSignature() (SignatureInfo, bool)
	CtorSignature() (SignatureInfo, bool)
	StringIndexType() Handle
	NumberIndexType() Handle
	TypeParameters() []TypeParameterInfo
}

// CallableHandle exposes the signature of function and method types.
type CallableHandle interface {
	Signature() (SignatureInfo, bool)
}

// AlgebraicHandle exposes the constituents of unions and intersections.
type AlgebraicHandle interface {
	Variants() []Handle
	DiscriminantMembers() []string
}

// LiteralHandle exposes the value of literal types: string, float64, bool,
// or a decimal string for bigint literals.
type LiteralHandle interface {
	Literal() any
}

// EnumHandle exposes the ordered members of an enum.
type EnumHandle interface {
	EnumMembers() []Handle
}

// EnumMemberHandle exposes enum-member identity. Literal types whose host
// symbol is an enum member also implement it; the adapter lifts them into
// enum-member values.
type EnumMemberHandle interface {
	EnumMemberName() (name, qualifiedName string, ok bool)
}

// GenericHandle exposes instantiation structure: the generic being applied
// and the type arguments.
type GenericHandle interface {
	GenericTarget() (Handle, bool)
	GenericArguments() []Handle
}

// GenericParameterHandle exposes the constraint and default of a generic
// parameter.
type GenericParameterHandle interface {
	ParameterConstraint() Handle
	ParameterDefault() Handle
}

// AliasHandle exposes the alias symbol attached to a type, if any.
type AliasHandle interface {
	AliasName() (string, bool)
	AliasTypeParameters() []TypeParameterInfo
}

// SequenceHandle exposes the element type of hosts that classify arrays and
// promises directly (instead of as generic instantiations).
type SequenceHandle interface {
	Element() Handle
}

// TupleHandle exposes tuple structure.
type TupleHandle interface {
	TupleMembers() []IndexedMemberInfo
	TupleHasRest() bool
}

// PosHandle exposes the declaration position.
type PosHandle interface {
	Pos() (typemodel.Pos, bool)
}

// DocHandle exposes documentation text.
type DocHandle interface {
	Docs() string
}

// ExportHandle exposes export visibility.
type ExportHandle interface {
	Exported() bool
}

// ErrHandle lets a host mark a handle as untranslatable. The adapter carries
// the error on the produced type instead of failing.
type ErrHandle interface {
	Err() error
}
