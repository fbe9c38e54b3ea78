package typesystem

import "strings"

// coercions lists, for a pair of scalar or container-head types seen on
// either side of an operator or across two assignment branches, the single
// Target type both widen to.
var coercions = map[[2]Type]Type{
	{Bool, I64}: I64,
	{I64, Bool}: I64,
	{Bool, F64}: F64,
	{F64, Bool}: F64,
	{I64, F64}:  F64,
	{F64, I64}:  F64,
	{"Vec<", "&["}: "Vec<",
	{"&[", "Vec<"}: "Vec<",
	{BorrowedStr, I64}: OwnedStr,
	{I64, BorrowedStr}: OwnedStr,
	{OwnedStr, I64}:    OwnedStr,
	{I64, OwnedStr}:    OwnedStr,
}

// matchingBracket gives, for the opening bracket character ending a
// container head (e.g. "Vec<"'s '<'), the closing bracket to terminate a
// rebuilt container type with.
var matchingBracket = map[byte]byte{'<': '>', '[': ']', '(': ')'}

// Merge combines two types seen for the same variable or expression slot
// (e.g. literals on either arm of an if/else, or the two operands of a
// binary op) into the single Target type both must coerce to, recursing
// into container component types when both sides share a container head.
func Merge(current, typed Type) Type {
	if typed.IsEmpty() {
		return current
	}
	if current.IsEmpty() {
		return typed
	}
	if current == typed {
		return current
	}
	if t, ok := coercions[[2]Type{current, typed}]; ok {
		return t
	}

	currCtr := Type(ExtractContainer(current))
	givenCtr := Type(ExtractContainer(typed))
	ctr := currCtr
	if currCtr != givenCtr {
		var ok bool
		ctr, ok = coercions[[2]Type{currCtr, givenCtr}]
		if !ok {
			return UnknownT
		}
	}
	if ctr == "" {
		return UnknownT
	}

	currSub := splitTopLevel(StripContainer(current))
	givenSub := splitTopLevel(StripContainer(typed))
	n := len(currSub)
	if len(givenSub) < n {
		n = len(givenSub)
	}
	subtypes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		subtypes = append(subtypes, string(Merge(Type(currSub[i]), Type(givenSub[i]))))
	}

	terminator := matchingBracket[ctr[len(ctr)-1]]
	return Type(string(ctr) + strings.Join(subtypes, ", ") + string(terminator))
}

// ContainerType converts an arg-position type (the kind passed as a
// function parameter, e.g. "&str" or "&[i64]") into the owned,
// container/variable-position type Target code must declare a local or a
// return value as.
func ContainerType(argType Type) Type {
	switch {
	case argType == BorrowedStr:
		return OwnedStr
	case argType.IsEmpty():
		return argType
	case strings.HasSuffix(string(argType), "]"):
		return Type("Vec<" + StripContainer(argType) + ">")
	default:
		return argType
	}
}

// containerConversions gives the Target expression suffix needed to widen
// an arg-position value into its owned container form, e.g. `&str` needs
// `.to_string()`.
var containerConversions = map[Type]string{
	BorrowedStr:    ".to_string()",
	"&String":      ".clone()",
}

// ContainerConversion returns the Target suffix needed to convert t from
// its arg-position form into its container/variable-position form, and
// whether one is needed at all.
func ContainerConversion(t Type) (string, bool) {
	s, ok := containerConversions[t]
	return s, ok
}

// ContainerTypeNeeded decides, given the two operand types of any binary
// operator, whether both are lists or both are sets; codegen then renders
// the operation element-wise through a zip/map/collect chain
// (codegen/rewrites.go) rather than a bare Target operator.
func ContainerTypeNeeded(left, right Type) bool {
	return (IsList(left) && IsList(right)) || (IsSet(left) && IsSet(right))
}
