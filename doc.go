package typograph

// Package typograph is a type-directed code generation engine. It ingests a
// declarative model of program types produced by a host type checker and
// emits linkable, cross-file textual artifacts in arbitrary target
// languages, with source maps back to the original declaration sites.
//
// The engine provides:
//
// - An immutable type model covering nominal, structural, algebraic,
//   generic, callable, and enum-like types (typemodel).
// - A path model over the type graph's labelled edges (typepath).
// - A recursive traversal engine with per-kind edge enumerators and an
//   opt-in cycle combinator (traverse).
// - An adapter turning host type-checker handles into the model, with
//   caching and optional laziness (typesource; typesource/typedoc reads
//   serialized type-graph documents).
// - A source-mapped output AST (ast) and source-map v3 emission
//   (sourcemap).
// - The compiler orchestrator in this package: entry-point compilation,
//   memoization, cycle breaking via references, deterministic naming, file
//   routing, serialization.
//
// Target backends are pluggable and not bundled; a backend implements
// Backend (and optionally DeclarationLocationSuggester) and decides all
// syntax.
//
// Typical usage:
//
//	res, err := typograph.Compile([]typograph.Entry{
//		{Type: t, Output: ast.DeclarationLocation{
//			Location: ast.Location{FileName: "types.out"},
//			Name:     "Root",
//		}},
//	}, backend, nil)
//
// Design policy:
// - Keep only public APIs and the orchestrator in the root package; models
//   live in small subpackages.
// - Prefer black-box testing against public APIs.
