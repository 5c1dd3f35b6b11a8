// Package traverse provides the recursive walker over the type graph, the
// per-kind edge enumerators, and the cycle-prevention combinator.
//
// The walker itself makes no ordering or cycle decisions: visitors request
// edges through enumerators, and visitors that must tolerate cycles wrap
// themselves with PreventCycles.
package traverse

import (
	"github.com/cockroachdb/errors"

	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// Args is the context handed to a visitor: the type under visit, the path
// that reached it, and a Visit for descending into outgoing edges.
type Args struct {
	Type  *typemodel.Type
	Path  typepath.Path
	Visit Visit
}

// Visitor computes a result for one type. Errors propagate upward and are
// annotated once with the path that reached the failing type.
type Visitor func(Args) (any, error)

// Visit descends one edge, recursing with the visitor the walk was started
// with unless an alternative is bound via With or passed to StepWith.
type Visit struct {
	path    typepath.Path
	visitor Visitor
}

// Step walks child through the given step with the current visitor.
func (v Visit) Step(step typepath.Step, child *typemodel.Type) (any, error) {
	return Walk(typepath.Concat(v.path, step), child, v.visitor)
}

// StepWith walks child with alt as the recursive visitor. A nil alt falls
// back to the current visitor.
func (v Visit) StepWith(step typepath.Step, child *typemodel.Type, alt Visitor) (any, error) {
	vis := v.visitor
	if alt != nil {
		vis = alt
	}
	return Walk(typepath.Concat(v.path, step), child, vis)
}

// With returns a Visit whose default recursive visitor is alt.
func (v Visit) With(alt Visitor) Visit {
	return Visit{path: v.path, visitor: alt}
}

// Walk invokes visitor on t at path and returns its result. Synchronous and
// single-threaded; recursion happens only through Visit.
func Walk(path typepath.Path, t *typemodel.Type, visitor Visitor) (any, error) {
	res, err := visitor(Args{Type: t, Path: path, Visit: Visit{path: path, visitor: visitor}})
	if err != nil {
		return nil, annotatePath(err, path, t)
	}
	return res, nil
}

// pathError carries the one-time path annotation. The message suffix is
// appended exactly once per error identity, no matter how many walker
// frames the error crosses.
type pathError struct {
	cause    error
	rendered string
}

func (e *pathError) Error() string { return e.cause.Error() + "\nPath: " + e.rendered }
func (e *pathError) Unwrap() error { return e.cause }

func annotatePath(err error, path typepath.Path, t *typemodel.Type) error {
	var pe *pathError
	if errors.As(err, &pe) {
		return err
	}
	return &pathError{cause: err, rendered: typepath.Render(path, t)}
}

// Cyclical is the distinguished result produced by PreventCycles when the
// current path already passed through the type under visit. Subpath is the
// cycle: the path suffix from the earlier occurrence to the current one.
type Cyclical struct {
	Subpath typepath.Path
}

// IsCyclical reports whether a visitor result is the Cyclical value.
func IsCyclical(res any) bool {
	_, ok := res.(Cyclical)
	return ok
}

// PreventCycles wraps visitor so that revisiting a type already on the path
// short-circuits to a Cyclical value instead of recursing forever. Visitors
// that know their graph is finite, or that break cycles another way, skip
// the wrapper.
func PreventCycles(visitor Visitor) Visitor {
	return func(a Args) (any, error) {
		if sub, ok := typepath.SubpathFrom(a.Path, a.Type); ok {
			return Cyclical{Subpath: sub}, nil
		}
		return visitor(a)
	}
}

// DepthFirstOpt configures WalkDepthFirst. Traverse defaults to MapAnySteps.
// PreventCycles wraps the internal visitor with the cycle combinator, for
// callers whose graphs may be cyclic.
type DepthFirstOpt struct {
	Before        func(Args) error
	After         func(Args) error
	Traverse      Enumerator
	PreventCycles bool
}

// WalkDepthFirst runs Before, descends every edge selected by Traverse
// (discarding edge results), then runs After. State accumulates in the
// callbacks; the walk itself returns nothing.
func WalkDepthFirst(path typepath.Path, t *typemodel.Type, opt DepthFirstOpt) error {
	traverse := opt.Traverse
	if traverse == nil {
		traverse = MapAnySteps
	}
	visitor := func(a Args) (any, error) {
		if opt.Before != nil {
			if err := opt.Before(a); err != nil {
				return nil, err
			}
		}
		if _, err := traverse(a); err != nil {
			return nil, err
		}
		if opt.After != nil {
			if err := opt.After(a); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	if opt.PreventCycles {
		visitor = PreventCycles(visitor)
	}
	_, err := Walk(path, t, visitor)
	return err
}
