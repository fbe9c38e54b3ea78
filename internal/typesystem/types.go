// Package typesystem implements the pure, total functions over the type
// grammar: construction, comparison, coercion, container extraction,
// de-templatization, and the Source→Target annotation mapping. Everything
// here operates on Type, a thin wrapper over a string grammar (`bool`,
// `i64`, `&str`, `Vec<T>`, `HashMap<K, V>`, tuples, references, the
// iterator sentinel, and `Unknown`). Type.String() round-trips through
// that same syntax, giving call sites a named type instead of bare
// strings while keeping every operation a trivial string manipulation.
package typesystem

import "strings"

// Unknown is the distinguished "top" type: never written to emitted Target
// code, and a diagnostic is raised if it reaches a declaration.
const Unknown = "Unknown"

// Type is a Target type rendered in the grammar above.
type Type string

// Leaf scalar types.
const (
	Bool       Type = "bool"
	I64        Type = "i64"
	F64        Type = "f64"
	BorrowedStr Type = "&str"
	OwnedStr   Type = "String"
	UnknownT   Type = Unknown
	Empty      Type = "" // "no return value"
)

func (t Type) String() string { return string(t) }

// IsUnknown reports whether t is the distinguished Unknown marker.
func (t Type) IsUnknown() bool { return string(t) == Unknown }

// IsEmpty reports whether t is the empty "no value" type.
func (t Type) IsEmpty() bool { return string(t) == "" }

// matchingBrackets gives, for the last character of a container type, the
// opening bracket that must appear earlier in the string.
var matchingBrackets = map[byte]byte{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'<': '>', '>': '<',
}

// findContainer returns the index just after the container's opening
// delimiter, or 0 if text does not end in a recognized closing bracket.
func findContainer(text string) int {
	if len(text) < 2 {
		return 0
	}
	last := text[len(text)-1]
	matching, ok := matchingBrackets[last]
	if !ok {
		return 0
	}
	idx := strings.IndexByte(text, matching)
	if idx < 0 {
		return 0
	}
	return idx + 1
}

// ExtractContainer returns the container prefix of a type, e.g. "Vec<" for
// "Vec<i64>", or "" if t is not a container.
func ExtractContainer(t Type) string {
	s := string(t)
	n := findContainer(s)
	if n == 0 {
		return ""
	}
	return s[:n]
}

// StripContainer returns the inner payload of a container type, e.g. "i64"
// for "Vec<i64>", or the whole string if t is not a container.
func StripContainer(t Type) string {
	s := string(t)
	n := findContainer(s)
	if n == 0 {
		return s
	}
	return s[n : len(s)-1]
}

// IsList reports whether t is a borrowed slice or an owned Vec.
func IsList(t Type) bool {
	s := string(t)
	return strings.HasSuffix(s, "]") || strings.HasPrefix(s, "Vec<")
}

// IsDict reports whether t is a HashMap.
func IsDict(t Type) bool {
	return strings.HasPrefix(string(t), "HashMap<")
}

// IsSet reports whether t is a HashSet.
func IsSet(t Type) bool {
	return strings.HasPrefix(string(t), "HashSet<")
}

// IsString reports whether t is a borrowed or owned string.
func IsString(t Type) bool {
	return t == BorrowedStr || t == OwnedStr
}

// IsReference reports whether t is a reference type (leading '&').
func IsReference(t Type) bool {
	s := string(t)
	return len(s) > 0 && s[0] == '&'
}

// IsIterator reports whether t is the internal "produced by iteration"
// sentinel: a leading '[' that is not the prefix of a Vec<...> rendering.
func IsIterator(t Type) bool {
	s := string(t)
	return len(s) > 0 && s[0] == '['
}

// Dereference strips every leading '&' from t.
func Dereference(t Type) Type {
	s := string(t)
	for len(s) > 0 && s[0] == '&' {
		s = s[1:]
	}
	return Type(s)
}

// ComponentTypes splits the comma-separated type arguments out of a
// container or tuple type, e.g. "(i64, bool)" -> ["i64", "bool"].
func ComponentTypes(t Type) []string {
	s := string(t)
	left := strings.IndexByte(s, '<')
	right := strings.LastIndexByte(s, '>')
	if left < 0 || right < 0 {
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			return splitTopLevel(s[1 : len(s)-1])
		}
		return nil
	}
	return splitTopLevel(s[left+1 : right])
}

// splitTopLevel splits on ", " while respecting nested angle brackets and
// parens, so "HashMap<i64, Vec<bool>>, i64" splits correctly.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, strings.TrimSpace(s[start:]))
	}
	return parts
}

// Detemplatize replaces every inner type parameter with "_", e.g.
// "HashMap<&str, i64>" -> "HashMap<_>". Used as the key into the method
// catalog, which dispatches on container shape, not element types.
func Detemplatize(t Type) string {
	s := string(t)
	left := strings.IndexByte(s, '<')
	right := strings.LastIndexByte(s, '>')
	if left < 0 || right < 0 {
		return s
	}
	return s[:left] + "<_>" + s[right+1:]
}

// ContainerOf returns the container prefix without its bracket, e.g. "Vec"
// for "Vec<i64>" or "HashMap" for "HashMap<K, V>".
func ContainerOf(t Type) string {
	c := ExtractContainer(t)
	return strings.TrimRight(c, "<[")
}

// ElementType returns the single element type of a list/set, the value type
// of a map, or t itself if it is not a recognized container.
func ElementType(t Type) Type {
	comps := ComponentTypes(t)
	switch {
	case IsDict(t):
		if len(comps) == 2 {
			return Type(comps[1])
		}
	case IsList(t) || IsSet(t):
		if len(comps) >= 1 {
			return Type(comps[0])
		}
	}
	return t
}
