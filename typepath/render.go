package typepath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/typograph/typemodel"
)

// Render produces the human-readable form of a path for diagnostics. Each
// step kind has a fixed textual form, so identical paths always render
// identically. When target is non-nil it labels the type the path arrives
// at; for an empty path only the target is rendered.
func Render(p Path, target *typemodel.Type) string {
	var b strings.Builder
	if root := Root(p); root != nil {
		b.WriteString(root.String())
	} else if target != nil {
		return target.String()
	}
	for i := range p {
		b.WriteString(segment(p[i]))
	}
	if target != nil {
		fmt.Fprintf(&b, " => %s", target.String())
	}
	return b.String()
}

// segment is the fixed accessor form of one step.
func segment(s Step) string {
	switch s.Kind {
	case StepNamedMember:
		name := ""
		if s.Member != nil {
			name = s.Member.Name
		}
		return "." + name
	case StepIndexedMember:
		return "[" + strconv.Itoa(s.Index) + "]"
	case StepStringIndex:
		return "[string]"
	case StepNumberIndex:
		return "[number]"
	case StepVariant:
		return "|" + strconv.Itoa(s.Index)
	case StepAwaited:
		return "->awaited"
	case StepTypeParameter:
		return "<" + s.Name + ">"
	case StepTypeParameterConstraint:
		return "->constraint"
	case StepTypeParameterDefault:
		return "->default"
	case StepParameter:
		name := strconv.Itoa(s.Index)
		if s.Param != nil && s.Param.Name != "" {
			name = s.Param.Name
		}
		return "(" + name + ")"
	case StepReturn:
		return "->return"
	case StepCallSignature:
		return "->call"
	case StepCtorSignature:
		return "->new"
	case StepGenericArgument:
		if s.Name != "" {
			return "<" + s.Name + "=" + strconv.Itoa(s.Index) + ">"
		}
		return "<" + strconv.Itoa(s.Index) + ">"
	case StepGenericTarget:
		return "->target"
	case StepAliased:
		return "->aliased"
	}
	return "->?"
}

// ToTypescript projects a path into a best-effort TypeScript type accessor.
// Steps with no structural accessor form pass the expression through
// unchanged. InferTypeName does not call it; derived names come from the
// structural naming rules alone.
func ToTypescript(p Path) string {
	expr := "T"
	if root := Root(p); root != nil && root.Name() != "" {
		expr = root.Name()
	}
	for i := range p {
		expr = tsStep(expr, p[i])
	}
	return expr
}

func tsStep(expr string, s Step) string {
	switch s.Kind {
	case StepNamedMember:
		name := ""
		if s.Member != nil {
			name = s.Member.Name
		}
		return expr + `["` + name + `"]`
	case StepIndexedMember:
		return expr + "[" + strconv.Itoa(s.Index) + "]"
	case StepStringIndex:
		return expr + "[string]"
	case StepNumberIndex:
		return expr + "[number]"
	case StepAwaited:
		return "Awaited<" + expr + ">"
	case StepParameter:
		return "Parameters<" + expr + ">[" + strconv.Itoa(s.Index) + "]"
	case StepReturn:
		return "ReturnType<" + expr + ">"
	case StepCtorSignature:
		return "ConstructorParameters<" + expr + ">"
	case StepGenericArgument:
		return expr + "<" + strconv.Itoa(s.Index) + ">"
	default:
		// variant, aliasing, signatures, and type-parameter structure have no
		// accessor syntax; keep the expression as-is.
		return expr
	}
}
