package traverse

import (
	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// Enumerator descends every edge of one axis of a type, in source order, and
// returns the visitor results. An axis with no edges yields an empty slice.
type Enumerator func(Args) ([]any, error)

// SingleEnumerator descends a single optional edge. The bool result is false
// when the slot is empty.
type SingleEnumerator func(Args) (any, bool, error)

// ---- list enumerators ----

// MapNamedMembers visits the type of every named member, in member order.
func MapNamedMembers(a Args) ([]any, error) {
	ms := a.Type.Members()
	out := make([]any, 0, len(ms))
	for i := range ms {
		m := ms[i]
		r, err := a.Visit.Step(typepath.Step{Kind: typepath.StepNamedMember, From: a.Type, Index: i, Member: &m}, m.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MapIndexedMembers visits the type of every tuple member, in order.
func MapIndexedMembers(a Args) ([]any, error) {
	ms := a.Type.IndexedMembers()
	out := make([]any, 0, len(ms))
	for i := range ms {
		m := ms[i]
		r, err := a.Visit.Step(typepath.Step{Kind: typepath.StepIndexedMember, From: a.Type, Index: i, Indexed: &m}, m.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MapVariants visits every constituent of a union, intersection, or enum,
// in source order.
func MapVariants(a Args) ([]any, error) {
	vs := a.Type.Variants()
	out := make([]any, 0, len(vs))
	for i, v := range vs {
		r, err := a.Visit.Step(typepath.Step{Kind: typepath.StepVariant, From: a.Type, Index: i}, v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MapTypeParameters visits every generic parameter, in order.
func MapTypeParameters(a Args) ([]any, error) {
	ps := a.Type.TypeParameters()
	out := make([]any, 0, len(ps))
	for i, p := range ps {
		r, err := a.Visit.Step(typepath.Step{Kind: typepath.StepTypeParameter, From: a.Type, Index: i, Name: p.Name()}, p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MapParameters visits the type of every callable parameter, in order.
func MapParameters(a Args) ([]any, error) {
	ps := a.Type.Parameters()
	out := make([]any, 0, len(ps))
	for i := range ps {
		p := ps[i]
		r, err := a.Visit.Step(typepath.Step{Kind: typepath.StepParameter, From: a.Type, Index: i, Param: &p}, p.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MapGenericArguments visits every type argument of an instantiation, in
// order. The step carries the matching parameter name when the generic
// target declares one.
func MapGenericArguments(a Args) ([]any, error) {
	args := a.Type.TypeArguments()
	var params []*typemodel.Type
	if target := a.Type.Target(); target != nil {
		params = target.TypeParameters()
	}
	out := make([]any, 0, len(args))
	for i, arg := range args {
		name := ""
		if i < len(params) {
			name = params[i].Name()
		}
		r, err := a.Visit.Step(typepath.Step{Kind: typepath.StepGenericArgument, From: a.Type, Index: i, Name: name}, arg)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ---- single enumerators ----

func single(a Args, kind typepath.StepKind, child *typemodel.Type) (any, bool, error) {
	if child == nil {
		return nil, false, nil
	}
	r, err := a.Visit.Step(typepath.Step{Kind: kind, From: a.Type}, child)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

// StringIndex visits the string-index type of an object-like type.
func StringIndex(a Args) (any, bool, error) {
	return single(a, typepath.StepStringIndex, a.Type.StringIndexType())
}

// NumberIndex visits the number-index type of an object-like type, or the
// element type of an array.
func NumberIndex(a Args) (any, bool, error) {
	return single(a, typepath.StepNumberIndex, a.Type.NumberIndexType())
}

// Awaited visits the element of a promise.
func Awaited(a Args) (any, bool, error) {
	return single(a, typepath.StepAwaited, a.Type.Element())
}

// TypeParameterConstraint visits the constraint of a generic parameter.
func TypeParameterConstraint(a Args) (any, bool, error) {
	return single(a, typepath.StepTypeParameterConstraint, a.Type.Constraint())
}

// TypeParameterDefault visits the default of a generic parameter.
func TypeParameterDefault(a Args) (any, bool, error) {
	return single(a, typepath.StepTypeParameterDefault, a.Type.Default())
}

// Return visits the return type of a callable.
func Return(a Args) (any, bool, error) {
	return single(a, typepath.StepReturn, a.Type.ReturnType())
}

// CallSignature visits the call signature of an object-like type.
func CallSignature(a Args) (any, bool, error) {
	return single(a, typepath.StepCallSignature, a.Type.CallSignature())
}

// CtorSignature visits the constructor signature of an object-like type.
func CtorSignature(a Args) (any, bool, error) {
	return single(a, typepath.StepCtorSignature, a.Type.CtorSignature())
}

// GenericTarget visits the generic a generic-arguments instantiates.
func GenericTarget(a Args) (any, bool, error) {
	return single(a, typepath.StepGenericTarget, a.Type.Target())
}

// Aliased visits the inner target: the aliased type of an alias, the literal
// value of an enum member, or the instantiated body of a generic-arguments.
func Aliased(a Args) (any, bool, error) {
	child := a.Type.Target()
	if a.Type.Kind() == typemodel.KindGenericArguments {
		child = a.Type.Instantiated()
	}
	return single(a, typepath.StepAliased, child)
}
