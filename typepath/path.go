// Package typepath models paths through the type graph: ordered sequences of
// labelled edges from a root type. All operations are pure; inputs are never
// mutated.
package typepath

import (
	"github.com/reoring/typograph/typemodel"
)

// StepKind labels one edge kind of the type graph.
type StepKind int

const (
	StepNamedMember StepKind = iota
	StepIndexedMember
	StepStringIndex
	StepNumberIndex
	StepVariant
	StepAwaited
	StepTypeParameter
	StepTypeParameterConstraint
	StepTypeParameterDefault
	StepParameter
	StepReturn
	StepCallSignature
	StepCtorSignature
	StepGenericArgument
	StepGenericTarget
	StepAliased
)

var stepKindNames = map[StepKind]string{
	StepNamedMember:             "named-member",
	StepIndexedMember:           "indexed-member",
	StepStringIndex:             "string-index",
	StepNumberIndex:             "number-index",
	StepVariant:                 "variant",
	StepAwaited:                 "awaited",
	StepTypeParameter:           "type-parameter",
	StepTypeParameterConstraint: "type-parameter-constraint",
	StepTypeParameterDefault:    "type-parameter-default",
	StepParameter:               "parameter",
	StepReturn:                  "return",
	StepCallSignature:           "call-signature",
	StepCtorSignature:           "ctor-signature",
	StepGenericArgument:         "generic-argument",
	StepGenericTarget:           "generic-target",
	StepAliased:                 "aliased",
}

func (k StepKind) String() string {
	if s, ok := stepKindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Step is one labelled edge. From is the type the edge leaves; the payload
// fields carried depend on Kind.
type Step struct {
	Kind StepKind
	From *typemodel.Type

	Index int    // named-member, indexed-member, variant, type-parameter, parameter, generic-argument
	Name  string // type-parameter, generic-argument (optional)

	Member  *typemodel.Member        // named-member
	Indexed *typemodel.IndexedMember // indexed-member
	Param   *typemodel.Parameter     // parameter
}

// Path is an ordered sequence of steps from a root. Step i's From is the
// destination of step i-1; step 0's From is the root.
type Path []Step

// Concat returns prefix extended with steps, sharing no backing storage with
// either input.
func Concat(prefix Path, steps ...Step) Path {
	out := make(Path, 0, len(prefix)+len(steps))
	out = append(out, prefix...)
	out = append(out, steps...)
	return out
}

// Extend returns prefix followed by suffix as a new path.
func Extend(prefix, suffix Path) Path {
	return Concat(prefix, suffix...)
}

// Includes reports whether any step of p originates at t.
func Includes(p Path, t *typemodel.Type) bool {
	for i := range p {
		if p[i].From == t {
			return true
		}
	}
	return false
}

// SubpathFrom returns the suffix of p starting at the first step originating
// at t. The second result is false when no step originates at t.
func SubpathFrom(p Path, t *typemodel.Type) (Path, bool) {
	for i := range p {
		if p[i].From == t {
			return p[i:], true
		}
	}
	return nil, false
}

// Last returns the final step of p, if any.
func Last(p Path) (Step, bool) {
	if len(p) == 0 {
		return Step{}, false
	}
	return p[len(p)-1], true
}

// Root returns the type the path starts from, or nil for an empty path.
func Root(p Path) *typemodel.Type {
	if len(p) == 0 {
		return nil
	}
	return p[0].From
}
