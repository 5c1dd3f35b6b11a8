package typograph

import (
	"fmt"

	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// Error kinds raised by the core. Nothing is recovered automatically: errors
// propagate to the Compile caller, annotated once with the traversal path.

// TypeError reports an attempt to compile a type the adapter could not
// translate. The adapter error is the cause.
type TypeError struct {
	Type *typemodel.Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("typograph: type %s carries an adapter error: %v", e.Type, e.Type.Err())
}

func (e *TypeError) Unwrap() error { return e.Type.Err() }

// UnsupportedKindError reports that a backend has no rendering for a kind.
// Backends raise it from their kind dispatch; the core never second-guesses
// a backend's coverage.
type UnsupportedKindError struct {
	Kind typemodel.Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("typograph: no backend rendering for kind %q", e.Kind)
}

// CircularCompilationError reports compilation that recursed through a cycle
// without a declaration break. TypeName is the first named type found on the
// cyclic subpath; the fix is for the backend to assign that type a
// declaration location before recursing, or to build a reference node
// directly.
type CircularCompilationError struct {
	TypeName string
	Subpath  typepath.Path
	Cause    error
}

func (e *CircularCompilationError) Error() string {
	name := e.TypeName
	if name == "" {
		name = "the cyclic type"
	}
	return fmt.Sprintf(
		"typograph: compilation recursed through a cycle without assigning a declaration location; "+
			"call AssignDeclarationLocation for %q before recursing, or build a reference node directly", name)
}

func (e *CircularCompilationError) Unwrap() error { return e.Cause }

// MissingLocationError reports a reference built while no output location
// was set.
type MissingLocationError struct {
	To ast.DeclarationLocation
}

func (e *MissingLocationError) Error() string {
	return fmt.Sprintf("typograph: reference to %s built without an output location", e.To)
}

// firstNamedOnCycle names the first named type on the cyclic subpath of
// path through t, falling back to the nearest named type on the whole path.
func firstNamedOnCycle(path typepath.Path, t *typemodel.Type) string {
	scan := path
	if sub, ok := typepath.SubpathFrom(path, t); ok {
		scan = sub
	}
	for i := range scan {
		if n := scan[i].From.Name(); n != "" {
			return n
		}
	}
	for i := len(path) - 1; i >= 0; i-- {
		if n := path[i].From.Name(); n != "" {
			return n
		}
	}
	if t != nil {
		return t.Name()
	}
	return ""
}
