// Package typedoc reads serialized type-graph documents (YAML or JSON) and
// exposes them as typesource handles. Documents are the stand-in for a live
// host type checker in tests and tooling: a `types` table of named type
// specs, with `$ref` links between them.
//
//	types:
//	  Point:
//	    kind: interface
//	    members:
//	      - name: x
//	        type: { kind: number }
//	      - name: next
//	        type: { $ref: Point }
package typedoc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/typograph/typemodel"
	"github.com/reoring/typograph/typesource"
)

// Format selects the document encoding.
type Format int

const (
	FormatAuto Format = iota
	FormatYAML
	FormatJSON
)

// Options controls document loading.
type Options struct {
	Format Format
	// DefaultSource names the original source file for specs that carry a
	// position without a file.
	DefaultSource string
}

// Diag carries non-fatal warnings produced during loading: unknown kinds,
// dangling refs. Loading warns and continues; only undecodable input or a
// document without a types table fails.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

// Document is a loaded type-graph document.
type Document struct {
	// Source is the document-wide default original source file.
	Source string

	types map[string]*typeSpec
	diag  *simpleDiag
	opt   Options
}

type document struct {
	Source string               `yaml:"source" json:"source"`
	Types  map[string]*typeSpec `yaml:"types" json:"types"`
}

type typeSpec struct {
	Ref  string `yaml:"$ref" json:"$ref"`
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`

	Doc      string   `yaml:"doc" json:"doc"`
	Pos      *posSpec `yaml:"pos" json:"pos"`
	Exported bool     `yaml:"exported" json:"exported"`

	Members       []*memberSpec `yaml:"members" json:"members"`
	Discriminants []string      `yaml:"discriminants" json:"discriminants"`
	Variants      []*typeSpec   `yaml:"variants" json:"variants"`
	Element       *typeSpec     `yaml:"element" json:"element"`

	Parameters     []*paramSpec     `yaml:"parameters" json:"parameters"`
	Returns        *typeSpec        `yaml:"returns" json:"returns"`
	TypeParameters []*typeParamSpec `yaml:"typeParameters" json:"typeParameters"`

	CallSignature *typeSpec `yaml:"callSignature" json:"callSignature"`
	CtorSignature *typeSpec `yaml:"ctorSignature" json:"ctorSignature"`
	StringIndex   *typeSpec `yaml:"stringIndex" json:"stringIndex"`
	NumberIndex   *typeSpec `yaml:"numberIndex" json:"numberIndex"`

	Items   []*typeSpec `yaml:"items" json:"items"`
	HasRest bool        `yaml:"hasRest" json:"hasRest"`

	Value         any    `yaml:"value" json:"value"`
	QualifiedName string `yaml:"qualifiedName" json:"qualifiedName"`

	Constraint *typeSpec `yaml:"constraint" json:"constraint"`
	Default    *typeSpec `yaml:"default" json:"default"`

	// Generic instantiations: the generic being applied, the arguments, and
	// the post-substitution body.
	Target *typeSpec   `yaml:"target" json:"target"`
	Args   []*typeSpec `yaml:"args" json:"args"`
	Body   *typeSpec   `yaml:"body" json:"body"`
}

type memberSpec struct {
	Name      string    `yaml:"name" json:"name"`
	Type      *typeSpec `yaml:"type" json:"type"`
	Optional  bool      `yaml:"optional" json:"optional"`
	Modifiers []string  `yaml:"modifiers" json:"modifiers"`
	Value     any       `yaml:"value" json:"value"` // enum members
}

type paramSpec struct {
	Name     string    `yaml:"name" json:"name"`
	Type     *typeSpec `yaml:"type" json:"type"`
	Optional bool      `yaml:"optional" json:"optional"`
	Rest     bool      `yaml:"rest" json:"rest"`
}

type typeParamSpec struct {
	Name       string    `yaml:"name" json:"name"`
	Constraint *typeSpec `yaml:"constraint" json:"constraint"`
	Default    *typeSpec `yaml:"default" json:"default"`
}

type posSpec struct {
	File   string `yaml:"file" json:"file"`
	Line   int    `yaml:"line" json:"line"`
	Column int    `yaml:"column" json:"column"`
}

// Load decodes a document. The input can be YAML or JSON; FormatAuto treats
// input starting with '{' as JSON.
func Load(data []byte, opt Options) (*Document, Diag, error) {
	d := &simpleDiag{}
	var raw document

	format := opt.Format
	if format == FormatAuto {
		format = FormatYAML
		if looksLikeJSON(data) {
			format = FormatJSON
		}
	}
	switch format {
	case FormatJSON:
		if err := gojson.Unmarshal(data, &raw); err != nil {
			return nil, d, errors.Wrap(err, "typedoc: invalid JSON")
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, d, errors.Wrap(err, "typedoc: invalid YAML")
		}
	}
	if raw.Types == nil {
		return nil, d, errors.New("typedoc: document has no types table")
	}

	doc := &Document{Source: raw.Source, types: raw.Types, diag: d, opt: opt}
	doc.lint()
	return doc, d, nil
}

func looksLikeJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// lint walks every spec once, warning about unknown kinds and dangling refs
// up front so problems surface before compilation.
func (doc *Document) lint() {
	for _, name := range doc.Names() {
		doc.lintSpec(doc.types[name], "types/"+name)
	}
}

func (doc *Document) lintSpec(s *typeSpec, at string) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		if _, ok := doc.types[s.Ref]; !ok {
			doc.diag.warnf("%s: $ref to unknown type %q", at, s.Ref)
		}
		return
	}
	if s.Kind != "" {
		if _, ok := kindFromString(s.Kind); !ok {
			doc.diag.warnf("%s: unknown kind %q", at, s.Kind)
		}
	}
	for i, m := range s.Members {
		doc.lintSpec(m.Type, at+"/members/"+strconv.Itoa(i))
	}
	for i, v := range s.Variants {
		doc.lintSpec(v, at+"/variants/"+strconv.Itoa(i))
	}
	for i, p := range s.Parameters {
		doc.lintSpec(p.Type, at+"/parameters/"+strconv.Itoa(i))
	}
	for i, it := range s.Items {
		doc.lintSpec(it, at+"/items/"+strconv.Itoa(i))
	}
	for i, tp := range s.TypeParameters {
		doc.lintSpec(tp.Constraint, at+"/typeParameters/"+strconv.Itoa(i)+"/constraint")
		doc.lintSpec(tp.Default, at+"/typeParameters/"+strconv.Itoa(i)+"/default")
	}
	for i, arg := range s.Args {
		doc.lintSpec(arg, at+"/args/"+strconv.Itoa(i))
	}
	doc.lintSpec(s.Element, at+"/element")
	doc.lintSpec(s.Returns, at+"/returns")
	doc.lintSpec(s.CallSignature, at+"/callSignature")
	doc.lintSpec(s.CtorSignature, at+"/ctorSignature")
	doc.lintSpec(s.StringIndex, at+"/stringIndex")
	doc.lintSpec(s.NumberIndex, at+"/numberIndex")
	doc.lintSpec(s.Constraint, at+"/constraint")
	doc.lintSpec(s.Default, at+"/default")
	doc.lintSpec(s.Target, at+"/target")
	doc.lintSpec(s.Body, at+"/body")
}

// Names lists the document's named types, sorted.
func (doc *Document) Names() []string {
	out := make([]string, 0, len(doc.types))
	for name := range doc.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Handle returns the handle for a named type.
func (doc *Document) Handle(name string) (typesource.Handle, bool) {
	s, ok := doc.types[name]
	if !ok {
		return nil, false
	}
	return doc.handle(s, "types/"+name, name), true
}

// handle resolves refs to the named handle so that every occurrence of a
// named type shares one identity.
func (doc *Document) handle(s *typeSpec, id, name string) *docHandle {
	for s != nil && s.Ref != "" {
		target, ok := doc.types[s.Ref]
		if !ok {
			return &docHandle{doc: doc, id: id, name: s.Ref, err: errors.Newf("typedoc: $ref to unknown type %q", s.Ref)}
		}
		id = "types/" + s.Ref
		name = s.Ref
		s = target
	}
	if s == nil {
		return &docHandle{doc: doc, id: id, name: name, err: errors.New("typedoc: empty type spec")}
	}
	if s.Name != "" {
		name = s.Name
	}
	return &docHandle{doc: doc, spec: s, id: id, name: name}
}

func (doc *Document) child(s *typeSpec, id string) *docHandle {
	return doc.handle(s, id, "")
}

var kindsByName = func() map[string]typemodel.Kind {
	m := map[string]typemodel.Kind{}
	for k := typemodel.KindString; k <= typemodel.KindPromise; k++ {
		m[k.String()] = k
	}
	return m
}()

func kindFromString(s string) (typemodel.Kind, bool) {
	k, ok := kindsByName[s]
	return k, ok
}

// docHandle is one node of the document, addressed by path. It implements
// the typesource capability surface; capabilities a spec does not use
// report absence.
//
// Alias and generic-arguments specs classify as their underlying body, the
// way a host checker reports an instantiation or aliased type: the
// structural accessors delegate to the body, and the lift information rides
// on AliasName/GenericTarget.
type docHandle struct {
	doc  *Document
	spec *typeSpec
	id   string
	name string
	err  error

	// enum members are synthesized nodes
	enumMember *memberSpec
	enumName   string
}

var _ typesource.Handle = (*docHandle)(nil)

func (h *docHandle) ID() string { return h.id }

func (h *docHandle) Err() error { return h.err }

func (h *docHandle) Name() string {
	if h.spec != nil && (h.spec.Kind == "alias" || h.spec.Kind == "generic-arguments") {
		s, base := h.body()
		if s == nil {
			return ""
		}
		if s.Name != "" {
			return s.Name
		}
		if name, ok := strings.CutPrefix(base, "types/"); ok && !strings.Contains(name, "/") {
			return name
		}
		return ""
	}
	return h.name
}

// body resolves the structural spec and the ID base its children hang off.
// Named targets keep their own base so shared types keep one identity.
func (h *docHandle) body() (*typeSpec, string) {
	if h.spec == nil {
		return nil, h.id
	}
	switch h.spec.Kind {
	case "alias":
		return h.resolve(h.spec.Target, h.id+"/target")
	case "generic-arguments":
		return h.resolve(h.spec.Body, h.id+"/body")
	}
	return h.spec, h.id
}

func (h *docHandle) resolve(s *typeSpec, base string) (*typeSpec, string) {
	for s != nil && s.Ref != "" {
		target, ok := h.doc.types[s.Ref]
		if !ok {
			return nil, base
		}
		base = "types/" + s.Ref
		s = target
	}
	return s, base
}

func (h *docHandle) Kind() typemodel.Kind {
	if h.enumMember != nil {
		return typemodel.KindEnumMember
	}
	s, _ := h.body()
	// Nested wrapper specs flatten to the innermost body for
	// classification; the adapter re-applies wrapping from the lift
	// accessors. The bound stops cyclic wrapper chains.
	for i := 0; i < 32 && s != nil && (s.Kind == "alias" || s.Kind == "generic-arguments"); i++ {
		inner := &docHandle{doc: h.doc, spec: s, id: h.id}
		s, _ = inner.body()
	}
	if s == nil {
		return typemodel.KindUnknown
	}
	kind := s.Kind
	if kind == "" {
		// A bare members table is an object; a bare value is a literal.
		switch {
		case len(s.Members) > 0:
			return typemodel.KindObject
		case s.Value != nil:
			return literalKind(s.Value)
		default:
			return typemodel.KindUnknown
		}
	}
	if k, ok := kindFromString(kind); ok {
		return k
	}
	if h.err == nil {
		h.err = errors.Newf("typedoc: unknown kind %q at %s", kind, h.id)
	}
	return typemodel.KindUnknown
}

func literalKind(v any) typemodel.Kind {
	switch v.(type) {
	case string:
		return typemodel.KindStringLiteral
	case bool:
		return typemodel.KindBooleanLiteral
	case int, int64, float64:
		return typemodel.KindNumberLiteral
	default:
		return typemodel.KindUnknown
	}
}

// ---- alias capability ----

func (h *docHandle) AliasName() (string, bool) {
	if h.spec == nil || h.spec.Kind != "alias" {
		return "", false
	}
	if h.spec.Name != "" {
		return h.spec.Name, true
	}
	return h.name, h.name != ""
}

func (h *docHandle) AliasTypeParameters() []typesource.TypeParameterInfo {
	if h.spec == nil || h.spec.Kind != "alias" {
		return nil
	}
	return typeParameterInfos(h.doc, h.spec.TypeParameters, h.id)
}

// ---- generics capability ----

func (h *docHandle) GenericTarget() (typesource.Handle, bool) {
	if h.spec == nil || h.spec.Kind != "generic-arguments" || h.spec.Target == nil {
		return nil, false
	}
	return h.doc.child(h.spec.Target, h.id+"/target"), true
}

func (h *docHandle) GenericArguments() []typesource.Handle {
	if h.spec == nil || h.spec.Kind != "generic-arguments" {
		return nil
	}
	out := make([]typesource.Handle, 0, len(h.spec.Args))
	for i, arg := range h.spec.Args {
		out = append(out, h.doc.child(arg, h.id+"/args/"+strconv.Itoa(i)))
	}
	return out
}

// ---- object capability ----

func (h *docHandle) Members() []typesource.MemberInfo {
	s, base := h.body()
	if s == nil {
		return nil
	}
	out := make([]typesource.MemberInfo, 0, len(s.Members))
	for i, m := range s.Members {
		out = append(out, typesource.MemberInfo{
			Name:           m.Name,
			Type:           h.doc.child(m.Type, base+"/members/"+strconv.Itoa(i)+"/type"),
			Optional:       m.Optional,
			Modifiers:      parseModifiers(m.Modifiers),
			HasDeclaration: true,
		})
	}
	return out
}

func (h *docHandle) CallSignature() (typesource.SignatureInfo, bool) {
	s, base := h.body()
	if s == nil || s.CallSignature == nil {
		return typesource.SignatureInfo{}, false
	}
	return h.doc.child(s.CallSignature, base+"/callSignature").signatureInfo()
}

func (h *docHandle) CtorSignature() (typesource.SignatureInfo, bool) {
	s, base := h.body()
	if s == nil || s.CtorSignature == nil {
		return typesource.SignatureInfo{}, false
	}
	return h.doc.child(s.CtorSignature, base+"/ctorSignature").signatureInfo()
}

func (h *docHandle) StringIndexType() typesource.Handle {
	s, base := h.body()
	if s == nil || s.StringIndex == nil {
		return nil
	}
	return h.doc.child(s.StringIndex, base+"/stringIndex")
}

func (h *docHandle) NumberIndexType() typesource.Handle {
	s, base := h.body()
	if s == nil || s.NumberIndex == nil {
		return nil
	}
	return h.doc.child(s.NumberIndex, base+"/numberIndex")
}

func (h *docHandle) TypeParameters() []typesource.TypeParameterInfo {
	s, base := h.body()
	if s == nil {
		return nil
	}
	return typeParameterInfos(h.doc, s.TypeParameters, base)
}

func typeParameterInfos(doc *Document, specs []*typeParamSpec, base string) []typesource.TypeParameterInfo {
	out := make([]typesource.TypeParameterInfo, 0, len(specs))
	for i, tp := range specs {
		info := typesource.TypeParameterInfo{Name: tp.Name}
		at := base + "/typeParameters/" + strconv.Itoa(i)
		if tp.Constraint != nil {
			info.Constraint = doc.child(tp.Constraint, at+"/constraint")
		}
		if tp.Default != nil {
			info.Default = doc.child(tp.Default, at+"/default")
		}
		out = append(out, info)
	}
	return out
}

// ---- callable capability ----

func (h *docHandle) Signature() (typesource.SignatureInfo, bool) {
	return h.signatureInfo()
}

func (h *docHandle) signatureInfo() (typesource.SignatureInfo, bool) {
	s, base := h.body()
	if s == nil {
		return typesource.SignatureInfo{}, false
	}
	sig := typesource.SignatureInfo{TypeParameters: typeParameterInfos(h.doc, s.TypeParameters, base)}
	for i, p := range s.Parameters {
		sig.Parameters = append(sig.Parameters, typesource.ParameterInfo{
			Name:     p.Name,
			Type:     h.doc.child(p.Type, base+"/parameters/"+strconv.Itoa(i)+"/type"),
			Optional: p.Optional,
			Rest:     p.Rest,
		})
	}
	if s.Returns != nil {
		sig.Return = h.doc.child(s.Returns, base+"/returns")
	}
	return sig, true
}

// ---- algebraic capability ----

func (h *docHandle) Variants() []typesource.Handle {
	s, base := h.body()
	if s == nil {
		return nil
	}
	out := make([]typesource.Handle, 0, len(s.Variants))
	for i, v := range s.Variants {
		out = append(out, h.doc.child(v, base+"/variants/"+strconv.Itoa(i)))
	}
	return out
}

func (h *docHandle) DiscriminantMembers() []string {
	s, _ := h.body()
	if s == nil {
		return nil
	}
	return s.Discriminants
}

// ---- enum capability ----

func (h *docHandle) EnumMembers() []typesource.Handle {
	s, base := h.body()
	if s == nil {
		return nil
	}
	out := make([]typesource.Handle, 0, len(s.Members))
	for i, m := range s.Members {
		out = append(out, &docHandle{
			doc:        h.doc,
			id:         base + "/members/" + strconv.Itoa(i),
			name:       m.Name,
			enumMember: m,
			enumName:   h.name,
		})
	}
	return out
}

func (h *docHandle) EnumMemberName() (string, string, bool) {
	if h.enumMember == nil {
		return "", "", false
	}
	qualified := h.enumMember.Name
	if h.enumName != "" {
		qualified = h.enumName + "." + h.enumMember.Name
	}
	return h.enumMember.Name, qualified, true
}

// ---- literal capability ----

func (h *docHandle) Literal() any {
	if h.enumMember != nil {
		return normalizeScalar(h.enumMember.Value)
	}
	s, _ := h.body()
	if s == nil {
		return nil
	}
	return normalizeScalar(s.Value)
}

// normalizeScalar folds decoder-specific integer types into the model's
// float64 numbers.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case gojson.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}

// ---- sequence / tuple capability ----

func (h *docHandle) Element() typesource.Handle {
	s, base := h.body()
	if s == nil || s.Element == nil {
		return nil
	}
	return h.doc.child(s.Element, base+"/element")
}

func (h *docHandle) TupleMembers() []typesource.IndexedMemberInfo {
	s, base := h.body()
	if s == nil {
		return nil
	}
	out := make([]typesource.IndexedMemberInfo, 0, len(s.Items))
	for i, it := range s.Items {
		out = append(out, typesource.IndexedMemberInfo{
			Type: h.doc.child(it, base+"/items/"+strconv.Itoa(i)),
		})
	}
	return out
}

func (h *docHandle) TupleHasRest() bool {
	s, _ := h.body()
	return s != nil && s.HasRest
}

// ---- generic parameter capability ----

func (h *docHandle) ParameterConstraint() typesource.Handle {
	s, base := h.body()
	if s == nil || s.Constraint == nil {
		return nil
	}
	return h.doc.child(s.Constraint, base+"/constraint")
}

func (h *docHandle) ParameterDefault() typesource.Handle {
	s, base := h.body()
	if s == nil || s.Default == nil {
		return nil
	}
	return h.doc.child(s.Default, base+"/default")
}

// ---- position, docs, visibility ----

func (h *docHandle) Pos() (typemodel.Pos, bool) {
	s, _ := h.body()
	if s == nil || s.Pos == nil {
		return typemodel.Pos{}, false
	}
	p := typemodel.Pos{File: s.Pos.File, Line: s.Pos.Line, Column: s.Pos.Column}
	if p.File == "" {
		p.File = h.doc.Source
		if p.File == "" {
			p.File = h.doc.opt.DefaultSource
		}
	}
	return p, p.File != ""
}

func (h *docHandle) Docs() string {
	s, _ := h.body()
	if s == nil {
		return ""
	}
	return s.Doc
}

func (h *docHandle) Exported() bool {
	s, _ := h.body()
	return s != nil && s.Exported
}

func parseModifiers(names []string) typemodel.Modifier {
	var m typemodel.Modifier
	for _, n := range names {
		switch strings.ToLower(n) {
		case "export":
			m |= typemodel.ModExport
		case "ambient":
			m |= typemodel.ModAmbient
		case "public":
			m |= typemodel.ModPublic
		case "private":
			m |= typemodel.ModPrivate
		case "protected":
			m |= typemodel.ModProtected
		case "static":
			m |= typemodel.ModStatic
		case "readonly":
			m |= typemodel.ModReadonly
		case "abstract":
			m |= typemodel.ModAbstract
		case "async":
			m |= typemodel.ModAsync
		case "default":
			m |= typemodel.ModDefault
		}
	}
	return m
}
