package dispatch

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds-generator/internal/catalog"
	"pds-generator/internal/schema"
)

func TestBuildValueTable_RoundTrip(t *testing.T) {
	cat := catalog.Default()

	table, err := BuildValueTable(cat, DefaultValueTableConfig())
	require.NoError(t, err)
	assert.Equal(t, len(cat.Combos()), table.Len())
	assert.Equal(t, 577, table.Size())

	for _, c := range cat.Combos() {
		got, slot, ok := table.Lookup(c.DataTypeID, c.Container)
		require.True(t, ok, "%s", c.BaseTypeCombo)
		assert.Equal(t, c.BaseTypeCombo, got.BaseTypeCombo)
		assert.GreaterOrEqual(t, slot, 0)
	}

	_, _, ok := table.Lookup(0x7ff, catalog.ContainerNone)
	assert.False(t, ok)

	entries := table.Entries()
	require.Len(t, entries, table.Len())

	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Slot, entries[i].Slot)
	}
}

func TestBuildValueTable_HomeSlot(t *testing.T) {
	table, err := BuildValueTable(catalog.Default(), DefaultValueTableConfig())
	require.NoError(t, err)

	// bool/none is the first combination inserted, so it sits in its home slot.
	_, slot, ok := table.Lookup(0x11, catalog.ContainerNone)
	require.True(t, ok)
	assert.Equal(t, (0x11*109)%577, slot)
	assert.Equal(t, slot, table.Hash(0x11, catalog.ContainerNone))
}

func TestBuildValueTable_Errors(t *testing.T) {
	cat := catalog.Default()

	_, err := BuildValueTable(cat, ValueTableConfig{Size: len(cat.Combos()), DataTypeMult: 1, ContainerMult: 1})
	require.ErrorIs(t, err, ErrTableTooSmall)

	_, err = BuildValueTable(cat, ValueTableConfig{Size: 577})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFNV1a(t *testing.T) {
	want := func(s string) uint64 {
		hash := uint64(0xcbf29ce484222325)
		for i := 0; i < len(s); i++ {
			hash ^= uint64(s[i])
			hash *= 0x100000001b3
		}

		return hash
	}

	for _, s := range []string{"", "a", "TestPackage.V1_1.TestEntityA", "ü"} {
		assert.Equal(t, want(s), FNV1a(s), s)
	}
}

func TestPrimeAtLeast(t *testing.T) {
	tests := map[int]int{0: 2, 2: 2, 20: 23, 23: 23, 24: 29, 100: 101}
	for n, want := range tests {
		assert.Equal(t, want, PrimeAtLeast(n), "n=%d", n)
	}
}

func TestEntityTableConfig_TableSize(t *testing.T) {
	prime := DefaultEntityTableConfig()

	size, err := prime.TableSize(3)
	require.NoError(t, err)
	assert.Equal(t, 23, size, "minimum of 20 rounds up to 23")

	size, err = prime.TableSize(15)
	require.NoError(t, err)
	assert.Equal(t, 31, size)

	fixed := EntityTableConfig{Policy: SizeFixed}

	size, err = fixed.TableSize(15)
	require.NoError(t, err)
	assert.Equal(t, 37, size)

	_, err = fixed.TableSize(37)
	require.ErrorIs(t, err, ErrTableTooSmall)
}

func TestSizePolicy_Text(t *testing.T) {
	var p SizePolicy

	require.NoError(t, p.UnmarshalText([]byte("fixed")))
	assert.Equal(t, SizeFixed, p)

	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fixed", string(text))

	require.ErrorIs(t, p.UnmarshalText([]byte("golden")), ErrInvalidConfig)
}

func testPackage(t *testing.T, entities int) *schema.Package {
	t.Helper()

	items := make([]*schema.Item, 0, entities)
	for i := range entities {
		items = append(items, schema.NewEntity(fmt.Sprintf("E%d", i), []*schema.Field{schema.MustField("i32", "X")}))
	}

	v1 := schema.NewVersion("V1", nil, items...)

	renamed := []*schema.Item{schema.ModifiedEntity("E0",
		[]*schema.Field{schema.MustField("i32", "Y")},
		[]schema.Mapping{schema.RenamedFieldMapping("Y", "X")})}
	for i := 1; i < entities; i++ {
		renamed = append(renamed, schema.IdenticalEntity(fmt.Sprintf("E%d", i)))
	}

	v2 := schema.NewVersion("V2", v1, renamed...)

	pkg, err := schema.BuildPackage("Pkg", ".", []*schema.Version{v1, v2})
	require.NoError(t, err)

	return pkg
}

func TestBuildEntityTable(t *testing.T) {
	pkg := testPackage(t, 12)

	table, err := BuildEntityTable(pkg, DefaultEntityTableConfig())
	require.NoError(t, err)
	assert.Equal(t, 13, table.Len(), "12 new entities plus one modified")
	assert.Equal(t, 29, table.Size())

	for _, it := range pkg.Entities() {
		_, got, ok := table.Lookup(it.TypeString())
		require.True(t, ok, it.TypeString())
		assert.Same(t, it, got)
	}

	_, _, ok := table.Lookup("Pkg.V2.E5")
	assert.False(t, ok, "identical entities are not keys")

	_, _, ok = table.Lookup("Pkg.V9.Nope")
	assert.False(t, ok)
}

func TestBuildEntityTable_FixedTooSmall(t *testing.T) {
	pkg := testPackage(t, 40)

	_, err := BuildEntityTable(pkg, EntityTableConfig{Policy: SizeFixed, FixedSize: DefaultFixedSize})
	require.ErrorIs(t, err, ErrTableTooSmall)
}

func TestBuildTables_Concurrently(t *testing.T) {
	pkg := testPackage(t, 5)

	var wg sync.WaitGroup

	errs := make([]error, 2)

	wg.Add(2)

	go func() {
		defer wg.Done()

		_, errs[0] = BuildValueTable(pkg.Catalog(), DefaultValueTableConfig())
	}()

	go func() {
		defer wg.Done()

		_, errs[1] = BuildEntityTable(pkg, DefaultEntityTableConfig())
	}()

	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
}
