package typograph

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/sourcemap"
	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typesource"
)

// Entry is one requested output: a root type and where its declaration
// should land. Type takes precedence; when it is nil, Handle is adapted
// through the compile options' Adapter. Output.Name may be empty, in which
// case the name is inferred.
type Entry struct {
	Type   *typemodel.Type
	Handle typesource.Handle
	Output ast.DeclarationLocation
}

// CompileOpt bundles compilation options. The zero value is usable.
type CompileOpt struct {
	// Logger receives warnings (enum name mismatches and the like). Nil
	// means no logging.
	Logger *zap.Logger

	// MaxDepth overrides the compile recursion guard.
	MaxDepth int

	// Adapter adapts Entry.Handle inputs. Nil falls back to a fresh
	// default adapter.
	Adapter *typesource.Adapter

	// SourceContent loads original source text for embedding into source
	// maps. Nil disables embedding.
	SourceContent func(file string) (string, bool)
}

// CompiledFile is one serialized output file.
type CompiledFile struct {
	FileName     string
	Text         string
	SourceMap    *sourcemap.Map
	AST          *ast.Node
	CompiledFrom []ast.DeclarationLocation
}

// Result is the outcome of one compilation run.
type Result struct {
	// Files maps output file names to their compiled form; Order lists the
	// file names in the order first touched.
	Files map[string]*CompiledFile
	Order []string

	Program *Program
}

// Compile runs one full compilation: adapt entries, assign entry
// declaration locations, compile each entry, route declarations and
// references into files, and render every touched file through the backend.
func Compile(entries []Entry, backend Backend, opt *CompileOpt) (*Result, error) {
	return NewCompiler(backend, opt).CompileProgram(entries, opt)
}

// CompileProgram implements the orchestration sequence on an existing
// Compiler. opt may be nil; it only contributes the adapter and source
// content loader at this level.
func (c *Compiler) CompileProgram(entries []Entry, opt *CompileOpt) (*Result, error) {
	var adapter *typesource.Adapter
	var sourceContent func(string) (string, bool)
	if opt != nil {
		adapter = opt.Adapter
		sourceContent = opt.SourceContent
	}

	// Entry locations are assigned before any compilation so entry types
	// are known to be externally referenced.
	roots := make([]EntryPoint, 0, len(entries))
	for i, e := range entries {
		t := e.Type
		if t == nil {
			if e.Handle == nil {
				return nil, errors.Newf("typograph: entry %d has neither a type nor a handle", i)
			}
			if adapter == nil {
				adapter = typesource.NewAdapter(nil)
			}
			adapted, err := adapter.Adapt(e.Handle)
			if err != nil {
				return nil, errors.Wrapf(err, "typograph: adapt entry %d", i)
			}
			t = adapted
		}
		out := e.Output
		loc := c.AssignDeclarationLocation(t, &out)
		c.program.AddEntryPoint(t, loc)
		roots = append(roots, EntryPoint{Type: t, Location: loc})
	}

	for _, r := range roots {
		loc := r.Location
		node, err := c.CompileType(r.Type, nil, &loc)
		if err != nil {
			return nil, err
		}
		c.registerOutput(node, loc.FileName)
	}

	res := &Result{Files: map[string]*CompiledFile{}, Program: c.program}
	for _, f := range c.program.Files() {
		fileNode, err := c.backend.CompileFile(c, f)
		if err != nil {
			return nil, errors.Wrapf(err, "typograph: compile file %s", f.FileName)
		}
		ser := ast.Serialize(fileNode, ast.SerializeOpt{FileName: f.FileName, SourceContent: sourceContent})
		res.Files[f.FileName] = &CompiledFile{
			FileName:     f.FileName,
			Text:         ser.Text,
			SourceMap:    ser.SourceMap,
			AST:          fileNode,
			CompiledFrom: compiledFrom(c.program, f.FileName),
		}
		res.Order = append(res.Order, f.FileName)
	}
	return res, nil
}

// compiledFrom lists the entry-point locations that landed in fileName.
func compiledFrom(p *Program, fileName string) []ast.DeclarationLocation {
	var out []ast.DeclarationLocation
	for _, e := range p.EntryPoints() {
		if e.Location.FileName == fileName {
			out = append(out, e.Location)
		}
	}
	return out
}
