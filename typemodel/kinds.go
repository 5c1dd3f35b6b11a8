// Package typemodel is the intermediate type model: a closed set of kinds
// describing nominal, structural, algebraic, generic, callable, and
// enum-like types as immutable, identity-compared values.
package typemodel

// Kind identifies the shape of a Type. The set is closed: every Type carries
// exactly one Kind and the Kind determines which fields are meaningful.
type Kind int

const (
	// Primitives.
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindNull
	KindUndefined
	KindVoid
	KindAny
	KindUnknown
	KindNever
	KindNonPrimitiveObject
	KindDate

	// Primitive literals.
	KindStringLiteral
	KindNumberLiteral
	KindBooleanLiteral
	KindBigIntLiteral
	KindUniqueSymbol

	// Enums.
	KindEnumMember
	KindEnum

	// Composite algebraic.
	KindUnion
	KindIntersection

	// Object-like.
	KindInterface
	KindObject
	KindClass

	// Callable.
	KindFunction
	KindMethod

	// Generics.
	KindGenericParameter
	KindGenericArguments

	// Alias wrapper.
	KindAlias

	// Sequences.
	KindArray
	KindTuple

	// Awaited.
	KindPromise
)

var kindNames = map[Kind]string{
	KindString:             "string",
	KindNumber:             "number",
	KindBoolean:            "boolean",
	KindBigInt:             "bigint",
	KindSymbol:             "symbol",
	KindNull:               "null",
	KindUndefined:          "undefined",
	KindVoid:               "void",
	KindAny:                "any",
	KindUnknown:            "unknown",
	KindNever:              "never",
	KindNonPrimitiveObject: "non-primitive-object",
	KindDate:               "date",
	KindStringLiteral:      "string-literal",
	KindNumberLiteral:      "number-literal",
	KindBooleanLiteral:     "boolean-literal",
	KindBigIntLiteral:      "bigint-literal",
	KindUniqueSymbol:       "unique-symbol",
	KindEnumMember:         "enum-member",
	KindEnum:               "enum",
	KindUnion:              "union",
	KindIntersection:       "intersection",
	KindInterface:          "interface",
	KindObject:             "object",
	KindClass:              "class",
	KindFunction:           "function",
	KindMethod:             "method",
	KindGenericParameter:   "generic-parameter",
	KindGenericArguments:   "generic-arguments",
	KindAlias:              "alias",
	KindArray:              "array",
	KindTuple:              "tuple",
	KindPromise:            "promise",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// IsPrimitive reports whether k is one of the primitive kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindString && k <= KindDate
}

// IsLiteral reports whether k is a primitive literal kind.
func (k Kind) IsLiteral() bool {
	return k >= KindStringLiteral && k <= KindUniqueSymbol
}

// IsObjectLike reports whether k is interface, object, or class.
func (k Kind) IsObjectLike() bool {
	return k == KindInterface || k == KindObject || k == KindClass
}

// IsCallable reports whether k is function or method.
func (k Kind) IsCallable() bool {
	return k == KindFunction || k == KindMethod
}

// Modifier is a bit set of member modifiers.
type Modifier uint16

const (
	ModExport Modifier = 1 << iota
	ModAmbient
	ModPublic
	ModPrivate
	ModProtected
	ModStatic
	ModReadonly
	ModAbstract
	ModAsync
	ModDefault
)

// Has reports whether all bits of other are set on m.
func (m Modifier) Has(other Modifier) bool { return m&other == other }
