package typograph

import (
	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/traverse"
	"github.com/reoring/typograph/typemodel"
)

// Backend is the contract a target implements. The engine drives traversal,
// memoization, naming, and file routing; the backend decides syntax.
//
// A backend may recursively invoke Compiler.CompileType,
// Compiler.CompileReference, and Compiler.AssignDeclarationLocation during
// its own CompileType; the compiler saves and restores its scoped state
// across every such call.
type Backend interface {
	// CompileType renders one type. Recursion into inner types goes through
	// args.Visit so the compiler can memoize and break cycles; c gives
	// access to AssignDeclarationLocation and CompileReference.
	CompileType(c *Compiler, args traverse.Args) (*ast.Node, error)

	// CompileReference produces the syntactic form used to refer to the
	// declaration at args.To from args.From. Typical behavior: same file and
	// namespace, bare name; different file, qualified name plus an import.
	CompileReference(c *Compiler, args ReferenceArgs) (*ast.Node, error)

	// CompileFile renders one complete output file from its declarations and
	// outgoing references: headers, imports, body, footer.
	CompileFile(c *Compiler, file *File) (*ast.Node, error)
}

// DeclarationLocationSuggester is an optional backend capability: a
// placement policy for types that need a declaration location and got no
// explicit one. Discovered by type assertion, like the optional hooks of
// the parse pipeline libraries this engine grew out of.
type DeclarationLocationSuggester interface {
	SuggestDeclarationLocation(t *typemodel.Type, from *ast.DeclarationLocation) (ast.Location, bool)
}

// ReferenceTarget names the declaration a reference points at, with the
// declaration node itself when it is already compiled.
type ReferenceTarget struct {
	Location    ast.DeclarationLocation
	Declaration *ast.Node
}

// ReferenceArgs is the input to Backend.CompileReference.
type ReferenceArgs struct {
	From *ast.DeclarationLocation
	To   ReferenceTarget
}
