package typesystem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funvibe/pyrrust/internal/typesystem"
)

func TestStripContainerAndExtractContainer(t *testing.T) {
	assert.Equal(t, "i64", typesystem.StripContainer(typesystem.Type("Vec<i64>")))
	assert.Equal(t, "Vec<", typesystem.ExtractContainer(typesystem.Type("Vec<i64>")))
	assert.Equal(t, "&str, i64", typesystem.StripContainer(typesystem.Type("HashMap<&str, i64>")))
	// Not a recognized container: returned unchanged.
	assert.Equal(t, "i64", typesystem.StripContainer(typesystem.I64))
}

func TestIsListIsDictIsSet(t *testing.T) {
	assert.True(t, typesystem.IsList(typesystem.Type("&[i64]")))
	assert.True(t, typesystem.IsList(typesystem.Type("Vec<i64>")))
	assert.False(t, typesystem.IsList(typesystem.Type("HashMap<i64, i64>")))
	assert.True(t, typesystem.IsDict(typesystem.Type("HashMap<&str, i64>")))
	assert.True(t, typesystem.IsSet(typesystem.Type("HashSet<i64>")))
}

func TestDereferenceStripsLeadingAmpersands(t *testing.T) {
	assert.Equal(t, typesystem.Type("Foo"), typesystem.Dereference(typesystem.Type("&&Foo")))
	assert.Equal(t, typesystem.I64, typesystem.Dereference(typesystem.I64))
}

func TestComponentTypesSplitsTopLevelOnly(t *testing.T) {
	assert.Equal(t, []string{"&str", "Vec<bool>"}, typesystem.ComponentTypes(typesystem.Type("HashMap<&str, Vec<bool>>")))
	assert.Equal(t, []string{"i64", "bool"}, typesystem.ComponentTypes(typesystem.Type("(i64, bool)")))
}

func TestDetemplatizeKeepsHeadDropsArgs(t *testing.T) {
	assert.Equal(t, "HashMap<_>", typesystem.Detemplatize(typesystem.Type("HashMap<&str, i64>")))
	assert.Equal(t, "i64", typesystem.Detemplatize(typesystem.I64))
}

func TestElementType(t *testing.T) {
	assert.Equal(t, typesystem.I64, typesystem.ElementType(typesystem.Type("Vec<i64>")))
	assert.Equal(t, typesystem.I64, typesystem.ElementType(typesystem.Type("HashMap<&str, i64>")))
	assert.Equal(t, typesystem.Bool, typesystem.ElementType(typesystem.Bool))
}

func TestContainerType(t *testing.T) {
	assert.Equal(t, typesystem.OwnedStr, typesystem.ContainerType(typesystem.BorrowedStr))
	assert.Equal(t, typesystem.Type("Vec<i64>"), typesystem.ContainerType(typesystem.Type("&[i64]")))
	assert.Equal(t, typesystem.I64, typesystem.ContainerType(typesystem.I64))
}

func TestMergeWidensScalarsPerCoercionTable(t *testing.T) {
	assert.Equal(t, typesystem.I64, typesystem.Merge(typesystem.Bool, typesystem.I64))
	assert.Equal(t, typesystem.F64, typesystem.Merge(typesystem.I64, typesystem.F64))
	assert.Equal(t, typesystem.I64, typesystem.Merge(typesystem.Empty, typesystem.I64))
}

func TestMergeRecursesIntoContainerComponents(t *testing.T) {
	got := typesystem.Merge(typesystem.Type("Vec<i64>"), typesystem.Type("&[i64]"))
	assert.Equal(t, typesystem.Type("Vec<i64>"), got)
}

func TestMergeIncompatibleContainersIsUnknown(t *testing.T) {
	got := typesystem.Merge(typesystem.Type("Vec<i64>"), typesystem.Type("HashMap<&str, i64>"))
	assert.True(t, got.IsUnknown())
}

// A component type that is itself a container must not be split on its own
// internal comma: merging two HashMaps whose values are tuples needs
// bracket-aware splitting, not a blind strings.Split on ", ".
func TestMergeRecursesPastNestedContainerComponents(t *testing.T) {
	got := typesystem.Merge(
		typesystem.Type("HashMap<i64, (i64, bool)>"),
		typesystem.Type("HashMap<f64, (i64, bool)>"),
	)
	assert.Equal(t, typesystem.Type("HashMap<f64, (i64, bool)>"), got)
}

func TestContainerTypeNeededOnlyForMatchingCollectionKinds(t *testing.T) {
	assert.True(t, typesystem.ContainerTypeNeeded(typesystem.Type("&[i64]"), typesystem.Type("Vec<i64>")))
	assert.False(t, typesystem.ContainerTypeNeeded(typesystem.I64, typesystem.I64))
}
