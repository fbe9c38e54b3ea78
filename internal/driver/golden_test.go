package driver_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/funvibe/pyrrust/internal/config"
	"github.com/funvibe/pyrrust/internal/driver"
)

// Golden fixtures pair a Source input with its expected Target output in a
// single txtar archive, rather than two files that have to be kept in sync
// by hand.
func TestGoldenFixtures(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, archives, "expected at least one golden fixture")

	for _, path := range archives {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var source, want string
			var haveSource, haveWant bool
			for _, f := range ar.Files {
				switch f.Name {
				case "source.py":
					source, haveSource = string(f.Data), true
				case "target.rs":
					want, haveWant = string(f.Data), true
				}
			}
			require.True(t, haveSource, "archive missing source.py section")
			require.True(t, haveWant, "archive missing target.rs section")

			ctx := driver.Translate(filepath.Base(path), source, config.DefaultFile())
			require.False(t, ctx.Collector.HasFatal())

			if ctx.Output != want {
				diff := pretty.Diff(strings.Split(want, "\n"), strings.Split(ctx.Output, "\n"))
				t.Fatalf("golden mismatch in %s:\n%s", path, strings.Join(diff, "\n"))
			}
		})
	}
}
