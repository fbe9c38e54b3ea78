package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/pyrrust/internal/ast"
)

// baseAnnotations is the direct Source-annotation-name to Target-type
// table, in arg-position form.
var baseAnnotations = map[string]Type{
	"bool":  Bool,
	"int":   I64,
	"long":  I64,
	"float": F64,
	"str":   BorrowedStr,
}

// MapAnnotation converts a parsed Source type annotation expression into a
// Target Type. container selects which position the type is rendered for:
// false for a function parameter (arg position, e.g. "&str"), true for a
// return type, assignment target, or instance attribute (container
// position, e.g. "String"). A missing annotation maps to Unknown; callers
// give an unannotated `self` parameter its receiver type themselves.
func MapAnnotation(expr ast.Expression, container bool) Type {
	return mapAnnotationNamed(expr, "", container)
}

func mapAnnotationNamed(expr ast.Expression, name string, container bool) Type {
	if expr == nil {
		if name == "self" {
			return Empty
		}
		return UnknownT
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		if t, ok := baseAnnotations[e.Value]; ok {
			if container {
				return ContainerType(t)
			}
			return t
		}
		// A locally defined type, e.g. a class name: container position
		// uses it directly, arg position borrows it.
		if container {
			return Type(e.Value)
		}
		return Type("&" + e.Value)
	case *ast.NoneLiteral:
		return Empty
	case *ast.Subscript:
		return mapSubscriptAnnotation(e, container)
	default:
		return UnknownT
	}
}

// mapSubscriptAnnotation renders a subscripted generic annotation
// (Tuple[...]/List[...]/Set[...]/Dict[...]). Inner element types are always
// resolved in container position, regardless of the outer context, since a
// `Vec<&str>` would need a lifetime Target code has no clean way to carry.
func mapSubscriptAnnotation(sub *ast.Subscript, container bool) Type {
	head, ok := sub.Value.(*ast.Identifier)
	if !ok {
		return UnknownT
	}

	var start, end string
	switch head.Value {
	case "Tuple", "tuple":
		start, end = "(", ")"
	case "List", "list":
		start, end = "&[", "]"
	case "Set", "set":
		start, end = "HashSet<", ">"
	case "Dict", "dict":
		start, end = "HashMap<", ">"
	default:
		return UnknownT
	}

	var inner string
	if tup, ok := sub.Index.(*ast.TupleLiteral); ok {
		parts := make([]string, 0, len(tup.Elements))
		for _, el := range tup.Elements {
			parts = append(parts, string(mapAnnotationNamed(el, "", true)))
		}
		inner = strings.Join(parts, ", ")
	} else {
		inner = string(mapAnnotationNamed(sub.Index, "", true))
	}

	result := Type(start + inner + end)
	if container {
		return ContainerType(result)
	}
	return result
}

// ContainerForm renders a concrete element type into an owned container
// shell: "i64" with "Vec" gives "Vec<i64>".
func ContainerForm(container string, elem Type) Type {
	return Type(fmt.Sprintf("%s<%s>", container, elem))
}

// DictTypeFromList recovers a HashMap<K, V> type from the &[(K, V)] list of
// pairs passed to the `dict(...)` builtin.
func DictTypeFromList(listType Type) Type {
	pair := StripContainer(listType)
	keyValue := StripContainer(Type(pair))
	return Type(fmt.Sprintf("HashMap<%s>", keyValue))
}
