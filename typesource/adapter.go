package typesource

import (
	"github.com/cockroachdb/errors"

	"github.com/reoring/typograph/typemodel"
)

// Opt controls adaptation.
type Opt struct {
	// Eager populates every field at Adapt time. The default is lazy: a
	// placeholder is returned and populated on first access.
	Eager bool

	// Cache shares adapted types across adapters and compilations. Nil gets
	// a fresh cache. The cache is append-only: entries are never removed or
	// replaced.
	Cache *Cache

	// AddMethods attaches the host handle to produced types so declaration
	// positions and documentation can be recovered downstream.
	AddMethods bool

	// PreserveSimpleAliases keeps alias wrappers even when degenerate
	// (no type parameters). The default elides those and attaches the alias
	// name to the target when the target has no name of its own.
	PreserveSimpleAliases bool
}

// Cache maps host-type identity to adapted types. For a given cache, two
// adaptations of the same host type return the same *Type instance; the
// compiler's cycle detection and memoization depend on that.
type Cache struct {
	m map[string]*typemodel.Type
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{m: map[string]*typemodel.Type{}} }

func (c *Cache) get(id string) (*typemodel.Type, bool) {
	t, ok := c.m[id]
	return t, ok
}

func (c *Cache) put(id string, t *typemodel.Type) {
	if _, ok := c.m[id]; ok {
		return
	}
	c.m[id] = t
}

// Adapter converts host handles into the type model.
type Adapter struct {
	opt   Opt
	cache *Cache
	diag  *Diag
}

// NewAdapter returns an adapter. opt may be nil.
func NewAdapter(opt *Opt) *Adapter {
	a := &Adapter{diag: &Diag{}}
	if opt != nil {
		a.opt = *opt
	}
	a.cache = a.opt.Cache
	if a.cache == nil {
		a.cache = NewCache()
	}
	return a
}

// Diag returns the warnings accumulated across Adapt calls.
func (a *Adapter) Diag() *Diag { return a.diag }

// Cache returns the identity cache in use.
func (a *Adapter) Cache() *Cache { return a.cache }

// Adapt converts h into a Type. Untranslatable shapes warn and produce
// types carrying an error; only a nil handle fails.
func (a *Adapter) Adapt(h Handle) (*typemodel.Type, error) {
	if h == nil {
		return nil, errors.New("typesource: nil handle")
	}
	return a.adapt(h), nil
}

// wellKnown classifies host generics the model represents natively.
type wellKnown int

const (
	wkNone wellKnown = iota
	wkArray
	wkPromise
	wkDate
)

var wellKnownArrays = map[string]bool{
	"Array": true, "ReadonlyArray": true, "ArrayLike": true, "ConcatArray": true,
}

var wellKnownPromises = map[string]bool{
	"Promise": true, "PromiseLike": true,
}

// plan captures the lifting decisions for one handle: which wrappers apply
// and what the structural body's kind is. Planning only enumerates the
// handle's immediate surface; recursion happens at fill time.
type plan struct {
	kind     typemodel.Kind // outermost kind
	baseKind typemodel.Kind

	hasAlias    bool
	aliasName   string
	aliasParams []TypeParameterInfo

	hasGeneric    bool
	genericTarget Handle
	genericArgs   []Handle

	known wellKnown

	enumLift      bool
	enumName      string
	enumQualified string

	collapse Handle // single-variant union collapses to its element
}

func (a *Adapter) adapt(h Handle) *typemodel.Type {
	if t, ok := a.cache.get(h.ID()); ok {
		return t
	}

	p := a.plan(h)

	// A degenerate union with one constituent and no wrapper is the
	// constituent itself.
	if p.collapse != nil && !p.hasAlias && !p.hasGeneric {
		t := a.adapt(p.collapse)
		a.cache.put(h.ID(), t)
		return t
	}

	t := typemodel.Deferred(p.kind, func(b *typemodel.Builder) { a.fill(b, h, p) })
	a.cache.put(h.ID(), t)
	if a.opt.Eager {
		t.Resolve()
	}
	return t
}

func (a *Adapter) plan(h Handle) plan {
	p := plan{baseKind: h.Kind()}

	if gh, ok := h.(GenericHandle); ok {
		if target, ok := gh.GenericTarget(); ok {
			p.genericTarget = target
			p.genericArgs = gh.GenericArguments()
			p.hasGeneric = len(p.genericArgs) > 0
		}
	}

	// Well-known recognition replaces generic structure with the native
	// kind.
	name := h.Name()
	if p.genericTarget != nil && p.genericTarget.Name() != "" {
		name = p.genericTarget.Name()
	}
	switch {
	case p.hasGeneric && len(p.genericArgs) == 1 && wellKnownArrays[name]:
		p.known = wkArray
		p.baseKind = typemodel.KindArray
		p.hasGeneric = false
	case p.hasGeneric && len(p.genericArgs) == 1 && wellKnownPromises[name]:
		p.known = wkPromise
		p.baseKind = typemodel.KindPromise
		p.hasGeneric = false
	case name == "Date" && !p.hasGeneric:
		p.known = wkDate
		p.baseKind = typemodel.KindDate
	}

	// Literal types declared by an enum member lift to enum-member values.
	if p.baseKind.IsLiteral() {
		if eh, ok := h.(EnumMemberHandle); ok {
			if name, qualified, ok := eh.EnumMemberName(); ok {
				p.enumLift = true
				p.enumName = name
				p.enumQualified = qualified
				p.baseKind = typemodel.KindEnumMember
			}
		}
	}

	// Union normalization that changes the outermost kind happens at plan
	// time: empty unions collapse to never, single-element unions to the
	// element.
	if p.baseKind == typemodel.KindUnion {
		if ah, ok := h.(AlgebraicHandle); ok {
			variants := dedupeHandles(ah.Variants())
			switch len(variants) {
			case 0:
				p.baseKind = typemodel.KindNever
			case 1:
				p.collapse = variants[0]
			}
		}
	}

	if ah, ok := h.(AliasHandle); ok {
		if name, ok := ah.AliasName(); ok {
			p.aliasParams = ah.AliasTypeParameters()
			// A simple alias (no type parameters) is elided unless asked to
			// be preserved; its name sticks to the target.
			p.hasAlias = a.opt.PreserveSimpleAliases || len(p.aliasParams) > 0
			p.aliasName = name
		}
	}

	p.kind = p.baseKind
	if p.hasGeneric {
		p.kind = typemodel.KindGenericArguments
	}
	if p.hasAlias {
		p.kind = typemodel.KindAlias
	}
	return p
}

func dedupeHandles(hs []Handle) []Handle {
	seen := map[string]bool{}
	out := hs[:0:0]
	for _, h := range hs {
		if h == nil || seen[h.ID()] {
			continue
		}
		seen[h.ID()] = true
		out = append(out, h)
	}
	return out
}

// fill populates the outermost layer and builds inner layers as fresh
// values. Wrapping order is fixed: the generic lift happens first, the
// alias wrap goes outermost.
func (a *Adapter) fill(b *typemodel.Builder, h Handle, p plan) {
	if eh, ok := h.(ErrHandle); ok {
		if err := eh.Err(); err != nil {
			a.diag.warnf("type %q (%s): untranslatable: %v", h.Name(), h.ID(), err)
			b.SetErr(err)
			a.attachHost(b, h)
			return
		}
	}

	switch {
	case p.hasAlias:
		b.SetName(p.aliasName)
		b.SetTypeParameters(a.typeParameters(p.aliasParams))
		b.SetTarget(a.belowAlias(h, p))
	case p.hasGeneric:
		a.fillGeneric(b, h, p)
	default:
		a.fillBase(b, h, p)
	}
	a.attachHost(b, h)
}

// belowAlias builds the layer under an alias wrapper: the generic lift when
// present, otherwise the structural body.
func (a *Adapter) belowAlias(h Handle, p plan) *typemodel.Type {
	if p.collapse != nil {
		return a.adapt(p.collapse)
	}
	if p.hasGeneric {
		t, b := typemodel.Shape(typemodel.KindGenericArguments)
		a.fillGeneric(b, h, p)
		a.attachHost(b, h)
		return t
	}
	t, b := typemodel.Shape(p.baseKind)
	a.fillBase(b, h, p)
	a.attachHost(b, h)
	return t
}

func (a *Adapter) fillGeneric(b *typemodel.Builder, h Handle, p plan) {
	b.SetTarget(a.adapt(p.genericTarget))
	args := make([]*typemodel.Type, 0, len(p.genericArgs))
	for _, arg := range p.genericArgs {
		args = append(args, a.adapt(arg))
	}
	b.SetTypeArguments(args)

	inst, ib := typemodel.Shape(p.baseKind)
	a.fillBase(ib, h, p)
	a.attachHost(ib, h)
	b.SetInstantiated(inst)
}

func (a *Adapter) fillBase(b *typemodel.Builder, h Handle, p plan) {
	name := h.Name()
	if p.known != wkNone {
		// Well-known hosts keep their native kinds nameless; "Array" or
		// "Promise" as a declared name would only leak back into naming.
		name = ""
	}
	if name == "" && p.aliasName != "" && !p.hasAlias {
		// Elided simple alias: the name sticks to the target.
		name = p.aliasName
	}
	if name != "" {
		b.SetName(name)
	}

	switch p.baseKind {
	case typemodel.KindArray, typemodel.KindPromise:
		b.SetElement(a.element(h, p))

	case typemodel.KindDate:
		// Nothing beyond the kind.

	case typemodel.KindInterface, typemodel.KindObject, typemodel.KindClass:
		a.fillObject(b, h)

	case typemodel.KindUnion, typemodel.KindIntersection:
		a.fillAlgebraic(b, h)

	case typemodel.KindEnum:
		a.fillEnum(b, h)

	case typemodel.KindEnumMember:
		a.fillEnumMember(b, h, p)

	case typemodel.KindFunction, typemodel.KindMethod:
		a.fillCallable(b, h)

	case typemodel.KindGenericParameter:
		if gp, ok := h.(GenericParameterHandle); ok {
			b.SetConstraint(a.adaptOrNil(gp.ParameterConstraint()))
			b.SetDefault(a.adaptOrNil(gp.ParameterDefault()))
		}

	case typemodel.KindTuple:
		if th, ok := h.(TupleHandle); ok {
			infos := th.TupleMembers()
			ms := make([]typemodel.IndexedMember, 0, len(infos))
			for _, m := range infos {
				ms = append(ms, typemodel.IndexedMember{Type: a.adapt(m.Type), Optional: m.Optional})
			}
			b.SetIndexedMembers(ms)
			b.SetHasRest(th.TupleHasRest())
		}

	default:
		if p.baseKind.IsLiteral() {
			if lh, ok := h.(LiteralHandle); ok {
				b.SetValue(lh.Literal())
			}
		}
		// Primitives carry nothing beyond the kind.
	}
}

// element finds the single element type of an array or promise, whether the
// host classified it directly or as a well-known generic.
func (a *Adapter) element(h Handle, p plan) *typemodel.Type {
	if p.known != wkNone && len(p.genericArgs) == 1 {
		return a.adapt(p.genericArgs[0])
	}
	if sh, ok := h.(SequenceHandle); ok {
		if el := sh.Element(); el != nil {
			return a.adapt(el)
		}
	}
	a.diag.warnf("type %q (%s): %s without an element type", h.Name(), h.ID(), p.baseKind)
	return typemodel.Unknown()
}

func (a *Adapter) fillObject(b *typemodel.Builder, h Handle) {
	oh, ok := h.(ObjectHandle)
	if !ok {
		return
	}
	infos := oh.Members()
	ms := make([]typemodel.Member, 0, len(infos))
	for _, m := range infos {
		if !m.HasDeclaration {
			a.diag.warnf("type %q (%s): dropped member %q with no declaration", h.Name(), h.ID(), m.Name)
			continue
		}
		ms = append(ms, typemodel.Member{
			Name:      m.Name,
			Type:      a.adapt(m.Type),
			Optional:  m.Optional,
			Modifiers: m.Modifiers,
		})
	}
	b.SetMembers(ms)

	if sig, ok := oh.CallSignature(); ok {
		b.SetCallSignature(a.signature(sig, typemodel.KindFunction, ""))
	}
	if sig, ok := oh.CtorSignature(); ok {
		b.SetCtorSignature(a.signature(sig, typemodel.KindFunction, ""))
	}
	b.SetTypeParameters(a.typeParameters(oh.TypeParameters()))
	b.SetStringIndexType(a.adaptOrNil(oh.StringIndexType()))
	b.SetNumberIndexType(a.adaptOrNil(oh.NumberIndexType()))
}

func (a *Adapter) fillAlgebraic(b *typemodel.Builder, h Handle) {
	ah, ok := h.(AlgebraicHandle)
	if !ok {
		return
	}
	variants := dedupeHandles(ah.Variants())
	ts := make([]*typemodel.Type, 0, len(variants))
	for _, v := range variants {
		ts = append(ts, a.adapt(v))
	}
	b.SetVariants(ts)
	b.SetDiscriminantMembers(ah.DiscriminantMembers())
}

func (a *Adapter) fillEnum(b *typemodel.Builder, h Handle) {
	eh, ok := h.(EnumHandle)
	if !ok {
		a.diag.warnf("type %q (%s): enum without member enumeration", h.Name(), h.ID())
		return
	}
	members := eh.EnumMembers()
	ts := make([]*typemodel.Type, 0, len(members))
	for _, m := range members {
		ts = append(ts, a.adapt(m))
	}
	b.SetVariants(ts)
}

func (a *Adapter) fillEnumMember(b *typemodel.Builder, h Handle, p plan) {
	name := p.enumName
	qualified := p.enumQualified
	if name == "" {
		if eh, ok := h.(EnumMemberHandle); ok {
			name, qualified, _ = eh.EnumMemberName()
		}
	}
	b.SetName(name)
	b.SetQualifiedName(qualified)
	if lh, ok := h.(LiteralHandle); ok {
		b.SetTarget(literalType(lh.Literal()))
	}
}

func (a *Adapter) fillCallable(b *typemodel.Builder, h Handle) {
	ch, ok := h.(CallableHandle)
	if !ok {
		return
	}
	sig, ok := ch.Signature()
	if !ok {
		return
	}
	b.SetParameters(a.parameters(sig.Parameters))
	b.SetReturnType(a.adaptOrNil(sig.Return))
	b.SetTypeParameters(a.typeParameters(sig.TypeParameters))
	if pr := sig.Predicate; pr != nil {
		b.SetPredicate(&typemodel.TypePredicate{
			ParameterName:  pr.ParameterName,
			ParameterIndex: pr.ParameterIndex,
			Type:           a.adaptOrNil(pr.Type),
		})
	}
}

// signature builds a standalone callable from one signature description.
func (a *Adapter) signature(sig SignatureInfo, kind typemodel.Kind, name string) *typemodel.Type {
	t, b := typemodel.Shape(kind)
	if name != "" {
		b.SetName(name)
	}
	b.SetParameters(a.parameters(sig.Parameters))
	b.SetReturnType(a.adaptOrNil(sig.Return))
	b.SetTypeParameters(a.typeParameters(sig.TypeParameters))
	if pr := sig.Predicate; pr != nil {
		b.SetPredicate(&typemodel.TypePredicate{
			ParameterName:  pr.ParameterName,
			ParameterIndex: pr.ParameterIndex,
			Type:           a.adaptOrNil(pr.Type),
		})
	}
	return t
}

func (a *Adapter) parameters(infos []ParameterInfo) []typemodel.Parameter {
	ps := make([]typemodel.Parameter, 0, len(infos))
	for _, p := range infos {
		ps = append(ps, typemodel.Parameter{
			Name:           p.Name,
			Type:           a.adapt(p.Type),
			Optional:       p.Optional,
			Rest:           p.Rest,
			HasInitializer: p.HasInitializer,
		})
	}
	return ps
}

func (a *Adapter) typeParameters(infos []TypeParameterInfo) []*typemodel.Type {
	if len(infos) == 0 {
		return nil
	}
	ps := make([]*typemodel.Type, 0, len(infos))
	for _, tp := range infos {
		ps = append(ps, typemodel.GenericParameter(tp.Name, a.adaptOrNil(tp.Constraint), a.adaptOrNil(tp.Default)))
	}
	return ps
}

func (a *Adapter) adaptOrNil(h Handle) *typemodel.Type {
	if h == nil {
		return nil
	}
	return a.adapt(h)
}

func (a *Adapter) attachHost(b *typemodel.Builder, h Handle) {
	if !a.opt.AddMethods {
		return
	}
	b.SetHost(hostAdapter{h: h})
}

// literalType maps a raw literal value to its literal kind.
func literalType(v any) *typemodel.Type {
	switch lit := v.(type) {
	case string:
		return typemodel.StringLiteral(lit)
	case float64:
		return typemodel.NumberLiteral(lit)
	case int:
		return typemodel.NumberLiteral(float64(lit))
	case bool:
		return typemodel.BooleanLiteral(lit)
	default:
		return typemodel.Unknown()
	}
}

// hostAdapter exposes a Handle through the model's Host escape hatch.
type hostAdapter struct {
	h Handle
}

func (ha hostAdapter) Pos() (typemodel.Pos, bool) {
	if ph, ok := ha.h.(PosHandle); ok {
		return ph.Pos()
	}
	return typemodel.Pos{}, false
}

func (ha hostAdapter) Docs() string {
	if dh, ok := ha.h.(DocHandle); ok {
		return dh.Docs()
	}
	return ""
}

func (ha hostAdapter) Underlying() any { return ha.h }
