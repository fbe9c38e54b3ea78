// Package config holds pyrrust's fixed constants and the mutable run-mode
// flags that the CLI and pipeline consult: file-extension tables, builtin
// names, and the IsTestMode/IsBatchMode globals.
package config

// Version is the current pyrrust version.
var Version = "0.1.0"

// SourceFileExt is the canonical Source file extension.
const SourceFileExt = ".py"

// SourceFileExtensions are every recognized Source file extension.
var SourceFileExtensions = []string{".py", ".pyr"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TargetFileExt is the extension written for generated Target code.
const TargetFileExt = ".rs"

// IsTestMode marks a run under the golden-fixture test harness. Nothing in
// cmd/pyrrust sets it, so it stays false.
var IsTestMode = false

// IsBatchMode indicates a directory (not a single file) was given on the
// command line, so cmd/pyrrust fans translation out across an errgroup.
var IsBatchMode = false

// Builtin function names recognized by the catalog.
const (
	PrintFuncName = "print"
	LenFuncName   = "len"
	RangeFuncName = "range"
	ZipFuncName   = "zip"
	DictFuncName  = "dict"
	ListFuncName  = "list"
	SetFuncName   = "set"
	StrFuncName   = "str"
	IntFuncName   = "int"
	FloatFuncName = "float"
	AssertFuncName = "assert"
)

// Builtin container type names recognized by the annotation mapper.
const (
	ListTypeName  = "list"
	DictTypeName  = "dict"
	SetTypeName   = "set"
	TupleTypeName = "tuple"
)

// DefaultValues gives, for each scalar Target type, the literal a fresh
// hoisted declaration is initialized with before its first real assignment.
var DefaultValues = map[string]string{
	"bool":  "false",
	"i64":   "0",
	"f64":   "0.0",
	"&str":  "\"\"",
	"String": "String::new()",
}
