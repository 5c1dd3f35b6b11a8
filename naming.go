package typograph

import (
	"fmt"
	"strings"

	"github.com/reoring/typograph/typemodel"
)

// InferTypeName derives a stable, readable name for t. Named types keep
// their name; anonymous types get one derived from structure with a fixed
// depth-first traversal order, so the result is deterministic.
func InferTypeName(t *typemodel.Type) string {
	name, _ := inferName(t, map[*typemodel.Type]bool{})
	return name
}

// inferName reports ok=false when it fell back to an Anonymous* name, so
// composite rules can collapse to their generic form instead of chaining
// Anonymous segments.
func inferName(t *typemodel.Type, seen map[*typemodel.Type]bool) (string, bool) {
	if t == nil || seen[t] {
		return "", false
	}
	seen[t] = true
	defer delete(seen, t)

	if n := t.Name(); n != "" {
		return n, true
	}

	switch t.Kind() {
	case typemodel.KindArray:
		if en, ok := inferName(t.Element(), seen); ok {
			return "ArrayOf" + upperFirst(en), true
		}
		return "Array", true

	case typemodel.KindUnion:
		if name, ok := unionNameFromDiscriminants(t); ok {
			return name, true
		}
		if name, ok := joinVariantNames(t.Variants(), "Or", seen); ok {
			return name, true
		}
		return "Union", true

	case typemodel.KindIntersection:
		if name, ok := joinVariantNames(t.Variants(), "And", seen); ok {
			return name, true
		}
		return "Intersection", true

	case typemodel.KindGenericArguments:
		if tn, ok := inferName(t.Target(), seen); ok {
			parts := make([]string, 0, len(t.TypeArguments()))
			for _, arg := range t.TypeArguments() {
				an, ok := inferName(arg, seen)
				if !ok {
					parts = nil
					break
				}
				parts = append(parts, upperFirst(an))
			}
			if len(parts) > 0 {
				return tn + "Of" + strings.Join(parts, "And"), true
			}
			return tn, true
		}
		if inst := t.Instantiated(); inst != nil && inst.Name() != "" {
			return inst.Name(), true
		}

	case typemodel.KindAlias:
		return inferName(t.Target(), seen)

	case typemodel.KindStringLiteral:
		if s, ok := t.Value().(string); ok && s != "" {
			return camelWords(s), true
		}
	}

	return "Anonymous" + camelWords(t.Kind().String()), false
}

// unionNameFromDiscriminants derives a union's name from the literal values
// of its first discriminant member ("a" | "b" on member kind => AOrB).
func unionNameFromDiscriminants(t *typemodel.Type) (string, bool) {
	discs := t.DiscriminantMembers()
	if len(discs) == 0 {
		return "", false
	}
	disc := discs[0]
	parts := make([]string, 0, len(t.Variants()))
	for _, v := range t.Variants() {
		label, ok := discriminantLabel(v, disc)
		if !ok {
			return "", false
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "Or"), true
}

func discriminantLabel(variant *typemodel.Type, disc string) (string, bool) {
	if !variant.Kind().IsObjectLike() {
		return "", false
	}
	for _, m := range variant.Members() {
		if m.Name != disc {
			continue
		}
		switch v := m.Type.Value().(type) {
		case string:
			return camelWords(v), true
		case float64:
			return camelWords(fmt.Sprintf("%v", v)), true
		case bool:
			return camelWords(fmt.Sprintf("%v", v)), true
		}
	}
	return "", false
}

func joinVariantNames(variants []*typemodel.Type, sep string, seen map[*typemodel.Type]bool) (string, bool) {
	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		n, ok := inferName(v, seen)
		if !ok {
			return "", false
		}
		parts = append(parts, upperFirst(n))
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, sep), true
}

// camelWords turns a hyphen/space/underscore separated phrase into
// CamelCase: "non-primitive-object" => "NonPrimitiveObject".
func camelWords(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			upper = true
		case upper:
			b.WriteRune(toUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
