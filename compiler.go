package typograph

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/traverse"
	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typepath"
)

// defaultMaxDepth bounds compile recursion. A well-behaved backend breaks
// cycles with declarations long before this; the guard turns runaway
// recursion into the actionable circular-compilation diagnostic instead of
// a fatal stack overflow.
const defaultMaxDepth = 1000

// current is the compiler's scoped state cell, saved and restored around
// every recursive invocation.
type current struct {
	outputLocation *ast.DeclarationLocation
}

// Compiler drives one compilation run against one backend. It owns the
// Program and the reentrant scoped state; it is not safe for concurrent
// use.
type Compiler struct {
	backend  Backend
	program  *Program
	logger   *zap.Logger
	maxDepth int

	current current
	depth   int
}

// NewCompiler returns a Compiler with a fresh Program. opt may be nil.
func NewCompiler(backend Backend, opt *CompileOpt) *Compiler {
	c := &Compiler{
		backend:  backend,
		program:  NewProgram(),
		logger:   zap.NewNop(),
		maxDepth: defaultMaxDepth,
	}
	if opt != nil {
		if opt.Logger != nil {
			c.logger = opt.Logger
		}
		if opt.MaxDepth > 0 {
			c.maxDepth = opt.MaxDepth
		}
	}
	return c
}

// Program returns the per-run state.
func (c *Compiler) Program() *Program { return c.program }

// OutputLocation returns the scoped output location: the declaration
// currently being emitted. Backends use it as the From side of references
// they build themselves. Nil outside any compilation.
func (c *Compiler) OutputLocation() *ast.DeclarationLocation { return c.current.outputLocation }

// CompileType compiles t at path, optionally overriding the scoped output
// location. Results are memoized per type; a type already on the path with
// an assigned declaration location compiles to a reference node instead of
// recursing.
func (c *Compiler) CompileType(t *typemodel.Type, path typepath.Path, outputLocation *ast.DeclarationLocation) (*ast.Node, error) {
	saved := c.current
	defer func() { c.current = saved }()
	if outputLocation != nil {
		c.current.outputLocation = outputLocation
	}
	res, err := traverse.Walk(path, t, c.kernel)
	if err != nil {
		return nil, err
	}
	return res.(*ast.Node), nil
}

// kernel is the visitor at the heart of compilation: cache, cycle break,
// backend dispatch.
func (c *Compiler) kernel(a traverse.Args) (any, error) {
	if a.Type.Err() != nil {
		return nil, &TypeError{Type: a.Type}
	}

	if n, ok := c.program.Node(a.Type); ok {
		return n, nil
	}

	if typepath.Includes(a.Path, a.Type) {
		loc, ok := c.program.DeclarationLocation(a.Type)
		if !ok {
			// A cycle with no declaration to break it is uncompilable.
			sub, _ := typepath.SubpathFrom(a.Path, a.Type)
			return nil, &CircularCompilationError{
				TypeName: firstNamedOnCycle(a.Path, a.Type),
				Subpath:  sub,
			}
		}
		decl, _ := c.program.Node(a.Type)
		return c.CompileReference(ReferenceArgs{
			From: c.current.outputLocation,
			To:   ReferenceTarget{Location: loc, Declaration: decl},
		})
	}

	if c.depth >= c.maxDepth {
		sub, _ := typepath.SubpathFrom(a.Path, a.Type)
		return nil, &CircularCompilationError{
			TypeName: firstNamedOnCycle(a.Path, a.Type),
			Subpath:  sub,
			Cause:    errors.Newf("compile recursion exceeded %d frames", c.maxDepth),
		}
	}
	c.depth++
	defer func() { c.depth-- }()

	node, err := c.backend.CompileType(c, a)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.Newf("typograph: backend returned no node for kind %q", a.Type.Kind())
	}
	c.decorate(node, a)
	if node.ShouldCache() {
		c.program.typeToNode[a.Type] = node
	}
	return node, nil
}

// decorate records origin and source position on a freshly compiled node
// when the backend did not.
func (c *Compiler) decorate(node *ast.Node, a traverse.Args) {
	if t, _ := node.Origin(); t == nil {
		node.WithOrigin(a.Type, a.Path)
	}
	if _, ok := node.Pos(); ok {
		return
	}
	if h := a.Type.Host(); h != nil {
		if pos, ok := h.Pos(); ok {
			node.At(pos)
		}
	}
}

// CompileReference compiles the syntactic form referring to args.To from
// args.From. A plain node coming back from the backend is wrapped as a
// reference node so the reference edge stays collectable; reference nodes
// are never memoized.
func (c *Compiler) CompileReference(args ReferenceArgs) (*ast.Node, error) {
	if args.From == nil {
		return nil, &MissingLocationError{To: args.To.Location}
	}
	saved := c.current
	defer func() { c.current = saved }()
	c.current.outputLocation = args.From

	node, err := c.backend.CompileReference(c, args)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.Newf("typograph: backend returned no node for reference to %s", args.To.Location)
	}
	if !node.IsReference() {
		node.AsReference(args.To.Location, args.To.Declaration)
	}
	node.DoNotCache()
	return node, nil
}

// AssignDeclarationLocation returns t's declaration location, computing and
// recording one on first call. The location is: explicit argument, then the
// backend's placement policy, then the scoped output location, then empty.
// The name is the explicit name when given, otherwise InferTypeName, made
// unique per (file, namespace, base name) with a deterministic counter.
// Idempotent per (type, program): later calls, with or without an argument,
// return the first assignment.
func (c *Compiler) AssignDeclarationLocation(t *typemodel.Type, suggested *ast.DeclarationLocation) ast.DeclarationLocation {
	if loc, ok := c.program.DeclarationLocation(t); ok {
		return loc
	}

	var base ast.Location
	var name string
	if suggested != nil {
		base = suggested.Location
		name = suggested.Name
	}
	if base.FileName == "" && len(base.Namespace) == 0 {
		placed := false
		if s, ok := c.backend.(DeclarationLocationSuggester); ok {
			if loc, ok := s.SuggestDeclarationLocation(t, c.current.outputLocation); ok {
				base = loc
				placed = true
			}
		}
		if !placed && c.current.outputLocation != nil {
			base = c.current.outputLocation.Location
		}
	}
	if name == "" {
		name = InferTypeName(t)
	}

	assigned := ast.DeclarationLocation{Location: base, Name: c.program.nextName(base, name)}
	c.program.typeToLocation[t] = assigned

	if t.Kind() == typemodel.KindEnum && t.Name() != "" && t.Name() != assigned.Name {
		c.logger.Warn("enum declared name does not match assigned declaration name",
			zap.String("declared", t.Name()),
			zap.String("assigned", assigned.Name),
			zap.String("file", assigned.FileName),
			zap.String("program", c.program.ID.String()),
		)
	}
	return assigned
}

// registerOutput walks a compiled entry root, assigning every declaration
// node to its file and recording every reference edge. Idempotent across
// entry points: a declaration reached from two entries contributes once.
func (c *Compiler) registerOutput(root *ast.Node, entryFile string) {
	c.placeNode(root, entryFile, true)
}

func (c *Compiler) placeNode(n *ast.Node, currentFile string, isRoot bool) {
	if c.program.placed[n] {
		return
	}
	c.program.placed[n] = true

	if ref, ok := n.RefersTo(); ok {
		c.program.File(currentFile).AddReference(ref)
	}
	if decl := n.RefersToDeclaration(); decl != nil {
		c.placeNode(decl, currentFile, false)
	}

	file := currentFile
	if loc, ok := n.Location(); ok {
		file = loc.FileName
		c.program.File(file).AddNode(n)
	} else if isRoot {
		c.program.File(file).AddNode(n)
	}

	for _, child := range n.Children() {
		c.placeNode(child, file, false)
	}
}
