package typograph

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/reoring/typograph/ast"
	"github.com/reoring/typograph/typemodel"
)

// EntryPoint pairs a requested root type with its assigned declaration
// location.
type EntryPoint struct {
	Type     *typemodel.Type
	Location ast.DeclarationLocation
}

// Program is the per-compilation state: entry points, accumulating files,
// assigned declaration locations, memoized compilations, and the counters
// behind deterministic naming. A Program belongs to one compilation run and
// is dropped with it; the identity-keyed maps take the place of weak maps.
type Program struct {
	// ID correlates warnings and log lines for one run.
	ID uuid.UUID

	entryOrder  []*typemodel.Type
	entryPoints map[*typemodel.Type]ast.DeclarationLocation

	fileOrder []string
	files     map[string]*File

	typeToLocation map[*typemodel.Type]ast.DeclarationLocation
	typeToNode     map[*typemodel.Type]*ast.Node

	nameCounts map[string]int

	placed map[*ast.Node]bool
}

// NewProgram returns fresh per-compilation state.
func NewProgram() *Program {
	return &Program{
		ID:             uuid.New(),
		entryPoints:    map[*typemodel.Type]ast.DeclarationLocation{},
		files:          map[string]*File{},
		typeToLocation: map[*typemodel.Type]ast.DeclarationLocation{},
		typeToNode:     map[*typemodel.Type]*ast.Node{},
		nameCounts:     map[string]int{},
		placed:         map[*ast.Node]bool{},
	}
}

// AddEntryPoint records a requested output before any compilation runs, so
// that entry types are known to be externally referenced.
func (p *Program) AddEntryPoint(t *typemodel.Type, loc ast.DeclarationLocation) {
	if _, ok := p.entryPoints[t]; !ok {
		p.entryOrder = append(p.entryOrder, t)
	}
	p.entryPoints[t] = loc
}

// EntryPoints returns the entry points in registration order.
func (p *Program) EntryPoints() []EntryPoint {
	out := make([]EntryPoint, 0, len(p.entryOrder))
	for _, t := range p.entryOrder {
		out = append(out, EntryPoint{Type: t, Location: p.entryPoints[t]})
	}
	return out
}

// File returns the builder for fileName, creating it on first use. Files
// keep insertion order.
func (p *Program) File(fileName string) *File {
	if f, ok := p.files[fileName]; ok {
		return f
	}
	f := &File{FileName: fileName, refSeen: map[string]bool{}, nodeSeen: map[*ast.Node]bool{}}
	p.files[fileName] = f
	p.fileOrder = append(p.fileOrder, fileName)
	return f
}

// Files returns every touched file, in the order first touched.
func (p *Program) Files() []*File {
	out := make([]*File, 0, len(p.fileOrder))
	for _, name := range p.fileOrder {
		out = append(out, p.files[name])
	}
	return out
}

// DeclarationLocation returns the location assigned to t, if any.
func (p *Program) DeclarationLocation(t *typemodel.Type) (ast.DeclarationLocation, bool) {
	loc, ok := p.typeToLocation[t]
	return loc, ok
}

// Node returns the memoized compilation of t, if any.
func (p *Program) Node(t *typemodel.Type) (*ast.Node, bool) {
	n, ok := p.typeToNode[t]
	return n, ok
}

// nextName reserves the deterministic unique name for base at loc: the first
// occurrence keeps base, later occurrences append the counter value.
func (p *Program) nextName(loc ast.Location, base string) string {
	key := loc.FileName + "\x00" + strings.Join(loc.Namespace, ".") + "\x00" + base
	n := p.nameCounts[key]
	p.nameCounts[key] = n + 1
	if n == 0 {
		return base
	}
	return base + strconv.Itoa(n)
}

// File accumulates one output file: the declaration nodes assigned to it, in
// insertion order, and the deduplicated set of locations it references.
type File struct {
	FileName string

	nodes    []*ast.Node
	nodeSeen map[*ast.Node]bool

	refs    []ast.DeclarationLocation
	refSeen map[string]bool
}

// AddNode appends a node once.
func (f *File) AddNode(n *ast.Node) {
	if f.nodeSeen[n] {
		return
	}
	f.nodeSeen[n] = true
	f.nodes = append(f.nodes, n)
}

// AddReference records an outgoing reference once per distinct location.
func (f *File) AddReference(loc ast.DeclarationLocation) {
	key := loc.String()
	if f.refSeen[key] {
		return
	}
	f.refSeen[key] = true
	f.refs = append(f.refs, loc)
}

// Nodes returns the file's nodes in insertion order.
func (f *File) Nodes() []*ast.Node { return f.nodes }

// References returns the outgoing reference locations in first-seen order.
func (f *File) References() []ast.DeclarationLocation { return f.refs }

// ReferencesFiles returns the distinct referenced file names, in first-seen
// order, excluding the file itself.
func (f *File) ReferencesFiles() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range f.refs {
		if r.FileName == f.FileName || seen[r.FileName] {
			continue
		}
		seen[r.FileName] = true
		out = append(out, r.FileName)
	}
	return out
}
