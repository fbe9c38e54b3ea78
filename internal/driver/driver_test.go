package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyrrust/internal/config"
	"github.com/funvibe/pyrrust/internal/driver"
)

func TestTranslateHelloWorld(t *testing.T) {
	src := `def hello_world():
    print("Hello, world!")
`
	ctx := driver.Translate("hello_world.py", src, config.DefaultFile())
	require.False(t, ctx.Collector.HasFatal())
	assert.Contains(t, ctx.Output, "pub fn hello_world()")
	assert.Contains(t, ctx.Output, `println!("Hello, world!");`)
}

func TestTranslateWithoutConfigUsesDefaults(t *testing.T) {
	src := `def add_mult(a: int, b: int, c: int) -> int:
    return a + b * c
`
	ctx := driver.Translate("add_mult.py", src, nil)
	require.False(t, ctx.Collector.HasFatal())
	assert.Contains(t, ctx.Output, "pub fn add_mult(a: i64, b: i64, c: i64) -> i64 {")
}
