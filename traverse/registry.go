package traverse

import (
	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// The registry lists the outgoing-edge enumerators of every kind that has
// edges, in a fixed declaration order. MapAnySteps iterates it verbatim, so
// generic traversals are deterministic.

type registryEntry struct {
	step   typepath.StepKind
	list   Enumerator
	single SingleEnumerator
	json   bool // part of the value-oriented projection
}

func listEntry(step typepath.StepKind, e Enumerator, json bool) registryEntry {
	return registryEntry{step: step, list: e, json: json}
}

func singleEntry(step typepath.StepKind, e SingleEnumerator, json bool) registryEntry {
	return registryEntry{step: step, single: e, json: json}
}

var objectLikeEntries = []registryEntry{
	listEntry(typepath.StepNamedMember, MapNamedMembers, true),
	singleEntry(typepath.StepCallSignature, CallSignature, false),
	singleEntry(typepath.StepCtorSignature, CtorSignature, false),
	listEntry(typepath.StepTypeParameter, MapTypeParameters, false),
	singleEntry(typepath.StepStringIndex, StringIndex, true),
	singleEntry(typepath.StepNumberIndex, NumberIndex, true),
}

var callableEntries = []registryEntry{
	listEntry(typepath.StepParameter, MapParameters, false),
	singleEntry(typepath.StepReturn, Return, false),
	listEntry(typepath.StepTypeParameter, MapTypeParameters, false),
}

var registry = map[typemodel.Kind][]registryEntry{
	typemodel.KindInterface: objectLikeEntries,
	typemodel.KindObject:    objectLikeEntries,
	typemodel.KindClass:     objectLikeEntries,

	typemodel.KindUnion:        {listEntry(typepath.StepVariant, MapVariants, true)},
	typemodel.KindIntersection: {listEntry(typepath.StepVariant, MapVariants, true)},
	typemodel.KindEnum:         {listEntry(typepath.StepVariant, MapVariants, true)},
	typemodel.KindEnumMember:   {singleEntry(typepath.StepAliased, Aliased, true)},

	typemodel.KindTuple: {listEntry(typepath.StepIndexedMember, MapIndexedMembers, true)},
	typemodel.KindArray: {singleEntry(typepath.StepNumberIndex, NumberIndex, true)},

	typemodel.KindPromise: {singleEntry(typepath.StepAwaited, Awaited, false)},

	typemodel.KindFunction: callableEntries,
	typemodel.KindMethod:   callableEntries,

	typemodel.KindGenericParameter: {
		singleEntry(typepath.StepTypeParameterConstraint, TypeParameterConstraint, false),
		singleEntry(typepath.StepTypeParameterDefault, TypeParameterDefault, false),
	},

	typemodel.KindGenericArguments: {
		singleEntry(typepath.StepGenericTarget, GenericTarget, false),
		listEntry(typepath.StepGenericArgument, MapGenericArguments, false),
		singleEntry(typepath.StepAliased, Aliased, true),
	},

	typemodel.KindAlias: {
		singleEntry(typepath.StepAliased, Aliased, true),
		listEntry(typepath.StepTypeParameter, MapTypeParameters, false),
	},
}

func mapEntries(a Args, jsonOnly bool) ([]any, error) {
	entries := registry[a.Type.Kind()]
	var out []any
	for _, e := range entries {
		if jsonOnly && !e.json {
			continue
		}
		if e.list != nil {
			rs, err := e.list(a)
			if err != nil {
				return nil, err
			}
			out = append(out, rs...)
			continue
		}
		r, ok, err := e.single(a)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// MapAnySteps visits every outgoing edge of the type, in registry order.
// Kinds with no outgoing edges (primitives, literals) yield no results.
func MapAnySteps(a Args) ([]any, error) {
	return mapEntries(a, false)
}

// MapJSONSteps visits only the edges that survive a value-oriented
// projection: algebraic constituents, named members, indices, element
// types, and aliasing. Signatures, type parameters, generic-argument
// structure, and promise awaiting are skipped.
func MapJSONSteps(a Args) ([]any, error) {
	return mapEntries(a, true)
}

// StepKinds returns the edge kinds the registry declares for kind k, in
// registry order. Useful for tooling and tests.
func StepKinds(k typemodel.Kind) []typepath.StepKind {
	entries := registry[k]
	out := make([]typepath.StepKind, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.step)
	}
	return out
}
