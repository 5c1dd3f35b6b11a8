package typemodel

// Constructors for Type values. Backends and tests build types with these;
// the adapter builds through Deferred/Builder so that population can be
// delayed until first access.
//
// Construction is the only time a Type may be shaped. Once a value is shared
// it must be treated as immutable.

func prim(k Kind) *Type { return &Type{kind: k} }

// String returns a new string primitive.
func String() *Type { return prim(KindString) }

// Number returns a new number primitive.
func Number() *Type { return prim(KindNumber) }

// Boolean returns a new boolean primitive.
func Boolean() *Type { return prim(KindBoolean) }

// BigInt returns a new bigint primitive.
func BigInt() *Type { return prim(KindBigInt) }

// Symbol returns a new symbol primitive.
func Symbol() *Type { return prim(KindSymbol) }

// Null returns a new null primitive.
func Null() *Type { return prim(KindNull) }

// Undefined returns a new undefined primitive.
func Undefined() *Type { return prim(KindUndefined) }

// Void returns a new void primitive.
func Void() *Type { return prim(KindVoid) }

// Any returns a new any primitive.
func Any() *Type { return prim(KindAny) }

// Unknown returns a new unknown primitive.
func Unknown() *Type { return prim(KindUnknown) }

// Never returns a new never primitive.
func Never() *Type { return prim(KindNever) }

// NonPrimitiveObject returns a new non-primitive-object primitive.
func NonPrimitiveObject() *Type { return prim(KindNonPrimitiveObject) }

// Date returns a new date primitive.
func Date() *Type { return prim(KindDate) }

// StringLiteral returns a string literal type.
func StringLiteral(v string) *Type { return &Type{kind: KindStringLiteral, value: v} }

// NumberLiteral returns a number literal type.
func NumberLiteral(v float64) *Type { return &Type{kind: KindNumberLiteral, value: v} }

// BooleanLiteral returns a boolean literal type.
func BooleanLiteral(v bool) *Type { return &Type{kind: KindBooleanLiteral, value: v} }

// BigIntLiteral returns a bigint literal type. The value is kept as its
// decimal string form.
func BigIntLiteral(v string) *Type { return &Type{kind: KindBigIntLiteral, value: v} }

// UniqueSymbol returns a unique-symbol type named name.
func UniqueSymbol(name string) *Type { return &Type{kind: KindUniqueSymbol, name: name, value: name} }

// EnumMember returns an enum member carrying its literal value.
func EnumMember(name, qualifiedName string, value *Type) *Type {
	return &Type{kind: KindEnumMember, name: name, qualifiedName: qualifiedName, target: value}
}

// Enum returns an enum with its ordered members.
func Enum(name string, members ...*Type) *Type {
	return &Type{kind: KindEnum, name: name, variants: members}
}

// Union returns a union of variants.
func Union(variants ...*Type) *Type { return &Type{kind: KindUnion, variants: variants} }

// Intersection returns an intersection of variants.
func Intersection(variants ...*Type) *Type {
	return &Type{kind: KindIntersection, variants: variants}
}

// Interface returns an interface with ordered named members.
func Interface(name string, members ...Member) *Type {
	return &Type{kind: KindInterface, name: name, members: members}
}

// Object returns an anonymous object type with ordered named members.
func Object(members ...Member) *Type { return &Type{kind: KindObject, members: members} }

// Class returns a class with ordered named members.
func Class(name string, members ...Member) *Type {
	return &Type{kind: KindClass, name: name, members: members}
}

// Function returns a function type.
func Function(params []Parameter, ret *Type) *Type {
	return &Type{kind: KindFunction, parameters: params, returnType: ret}
}

// Method returns a method type.
func Method(name string, params []Parameter, ret *Type) *Type {
	return &Type{kind: KindMethod, name: name, parameters: params, returnType: ret}
}

// GenericParameter returns a generic parameter.
func GenericParameter(name string, constraint, def *Type) *Type {
	return &Type{kind: KindGenericParameter, name: name, constraint: constraint, defaultType: def}
}

// GenericArguments returns an instantiation of target with typeArguments,
// whose post-substitution body is instantiated.
func GenericArguments(target *Type, typeArguments []*Type, instantiated *Type) *Type {
	return &Type{kind: KindGenericArguments, target: target, typeArguments: typeArguments, instantiated: instantiated}
}

// Alias returns a named pointer to target.
func Alias(name string, target *Type, typeParameters ...*Type) *Type {
	return &Type{kind: KindAlias, name: name, target: target, typeParameters: typeParameters}
}

// Array returns an array of element.
func Array(element *Type) *Type { return &Type{kind: KindArray, element: element} }

// Tuple returns a tuple with ordered members.
func Tuple(members ...IndexedMember) *Type { return &Type{kind: KindTuple, indexedMembers: members} }

// Promise returns a promise of element.
func Promise(element *Type) *Type { return &Type{kind: KindPromise, element: element} }

// Errored returns a type of kind k carrying an adapter error. Backends must
// refuse to compile it.
func Errored(k Kind, err error) *Type { return &Type{kind: k, err: err} }

// Builder shapes a Type during construction or deferred population. It is
// the adapter's interface to the unexported fields; once the fill function
// returns, the value is frozen by convention.
type Builder struct{ t *Type }

// Deferred returns a Type of kind k whose remaining fields are populated by
// fill on first access. The fill function runs at most once. The returned
// placeholder is indistinguishable from an eager value to all callers.
func Deferred(k Kind, fill func(*Builder)) *Type {
	t := &Type{kind: k}
	t.fill = func(t *Type) { fill(&Builder{t: t}) }
	return t
}

// Shape returns a Builder over an eagerly constructed placeholder of kind k.
// The adapter uses this when it must insert a value into its cache before
// recursing into fields.
func Shape(k Kind) (*Type, *Builder) {
	t := &Type{kind: k}
	return t, &Builder{t: t}
}

func (b *Builder) SetName(name string) *Builder { b.t.name = name; return b }

func (b *Builder) SetQualifiedName(q string) *Builder { b.t.qualifiedName = q; return b }

func (b *Builder) SetValue(v any) *Builder { b.t.value = v; return b }

func (b *Builder) SetMembers(ms []Member) *Builder { b.t.members = ms; return b }

func (b *Builder) SetCallSignature(t *Type) *Builder { b.t.callSignature = t; return b }

func (b *Builder) SetCtorSignature(t *Type) *Builder { b.t.ctorSignature = t; return b }

func (b *Builder) SetTypeParameters(ts []*Type) *Builder { b.t.typeParameters = ts; return b }

func (b *Builder) SetStringIndexType(t *Type) *Builder { b.t.stringIndexType = t; return b }

func (b *Builder) SetNumberIndexType(t *Type) *Builder { b.t.numberIndexType = t; return b }

func (b *Builder) SetVariants(ts []*Type) *Builder { b.t.variants = ts; return b }

func (b *Builder) SetDiscriminantMembers(names []string) *Builder {
	b.t.discriminantMembers = names
	return b
}

func (b *Builder) SetIntersected(t *Type) *Builder { b.t.intersected = t; return b }

func (b *Builder) SetParameters(ps []Parameter) *Builder { b.t.parameters = ps; return b }

func (b *Builder) SetReturnType(t *Type) *Builder { b.t.returnType = t; return b }

func (b *Builder) SetPredicate(p *TypePredicate) *Builder { b.t.predicate = p; return b }

func (b *Builder) SetConstraint(t *Type) *Builder { b.t.constraint = t; return b }

func (b *Builder) SetDefault(t *Type) *Builder { b.t.defaultType = t; return b }

func (b *Builder) SetTarget(t *Type) *Builder { b.t.target = t; return b }

func (b *Builder) SetTypeArguments(ts []*Type) *Builder { b.t.typeArguments = ts; return b }

func (b *Builder) SetInstantiated(t *Type) *Builder { b.t.instantiated = t; return b }

func (b *Builder) SetIndexedMembers(ms []IndexedMember) *Builder { b.t.indexedMembers = ms; return b }

func (b *Builder) SetHasRest(v bool) *Builder { b.t.hasRest = v; return b }

func (b *Builder) SetElement(t *Type) *Builder { b.t.element = t; return b }

func (b *Builder) SetErr(err error) *Builder { b.t.err = err; return b }

func (b *Builder) SetHost(h Host) *Builder { b.t.host = h; return b }

// Construction-time setters mirroring the Builder, for literal construction
// in backends and tests. They return the receiver for chaining and must not
// be called after the value is shared.

// WithCallSignature sets the call signature of an object-like type.
func (t *Type) WithCallSignature(sig *Type) *Type { t.callSignature = sig; return t }

// WithCtorSignature sets the constructor signature of an object-like type.
func (t *Type) WithCtorSignature(sig *Type) *Type { t.ctorSignature = sig; return t }

// WithTypeParameters sets the generic parameters.
func (t *Type) WithTypeParameters(ps ...*Type) *Type { t.typeParameters = ps; return t }

// WithStringIndexType sets the string-index type of an object-like type.
func (t *Type) WithStringIndexType(idx *Type) *Type { t.stringIndexType = idx; return t }

// WithNumberIndexType sets the number-index type of an object-like type.
func (t *Type) WithNumberIndexType(idx *Type) *Type { t.numberIndexType = idx; return t }

// WithDiscriminantMembers records the discriminant member names of a union.
func (t *Type) WithDiscriminantMembers(names ...string) *Type {
	t.discriminantMembers = names
	return t
}

// WithIntersected sets the reduced form of an intersection.
func (t *Type) WithIntersected(reduced *Type) *Type { t.intersected = reduced; return t }

// WithPredicate sets the type predicate of a callable.
func (t *Type) WithPredicate(p *TypePredicate) *Type { t.predicate = p; return t }

// WithRest marks a tuple as ending in a rest element.
func (t *Type) WithRest() *Type { t.hasRest = true; return t }

// WithHost attaches the host type-checker handle.
func (t *Type) WithHost(h Host) *Type { t.host = h; return t }

// WithName sets the declared name. Useful for anonymous constructors such
// as Function or Union when the host declares a name.
func (t *Type) WithName(name string) *Type { t.name = name; return t }
