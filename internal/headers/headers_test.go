package headers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/parser"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

func parse(t *testing.T, source string) *headers.Index {
	t.Helper()
	diags := diagnostics.NewCollector()
	prog := parser.ParseProgram(source, "test.py", diags)
	require.False(t, diags.HasFatal(), "unexpected fatal parse errors")
	return headers.Find(prog)
}

func TestFindFunctionHeader(t *testing.T) {
	idx := parse(t, `def add_mult(a: int, b: int, c: int) -> int:
    return a + b * c
`)
	h, ok := idx.Functions["add_mult"]
	require.True(t, ok)
	assert.Equal(t, typesystem.I64, h.Returns)
	require.Len(t, h.Args, 3)
	assert.Equal(t, "a", h.Args[0].Name)
	assert.Equal(t, typesystem.I64, h.Args[0].Type)
}

func TestFindClassHeaderHarvestsInstanceAttributes(t *testing.T) {
	idx := parse(t, `class Foo:
    def __init__(self, a: int, b: str):
        self.a = a
        self.b = b
        self.counter = 0

    def increment(self):
        self.counter += 1
`)
	cls, ok := idx.Classes["Foo"]
	require.True(t, ok)
	assert.Equal(t, typesystem.I64, cls.InstanceAttributes["a"])
	assert.Equal(t, typesystem.BorrowedStr, cls.InstanceAttributes["b"])
	assert.Equal(t, typesystem.I64, cls.InstanceAttributes["counter"])

	init, ok := cls.Methods["__init__"]
	require.True(t, ok)
	assert.Equal(t, "self", init.Args[0].Name)
	assert.Equal(t, typesystem.Type("&Foo"), init.Args[0].Type)

	inc, ok := cls.Methods["increment"]
	require.True(t, ok)
	assert.Len(t, inc.Args, 1)
}

func TestFindAnnotatedInstanceAttribute(t *testing.T) {
	idx := parse(t, `from typing import List

class Bag:
    def __init__(self):
        self.items: List[int] = []
`)
	cls, ok := idx.Classes["Bag"]
	require.True(t, ok)
	assert.Equal(t, typesystem.Type("Vec<i64>"), cls.InstanceAttributes["items"])
}
