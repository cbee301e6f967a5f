package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds-generator/internal/catalog"
)

const runtimePath = "pds-generator/pds"

func TestAnalyzer_LoadPackages(t *testing.T) {
	a := NewAnalyzer()
	require.NoError(t, a.LoadPackages("", runtimePath))

	pkg, ok := a.Package(runtimePath)
	require.True(t, ok)
	assert.Equal(t, "pds", pkg.Name())

	// Dependencies are added too.
	_, ok = a.Package("github.com/google/uuid")
	assert.True(t, ok)

	_, ok = pkg.Scope().Lookup("EntityRecord").(*types.TypeName)
	assert.True(t, ok)
}

func TestAnalyzer_LoadPackages_Error(t *testing.T) {
	a := NewAnalyzer()
	err := a.LoadPackages("", "pds-generator/no/such/package")
	require.Error(t, err)
}

func TestAnalyzer_VerifyRuntime(t *testing.T) {
	a := NewAnalyzer()
	require.NoError(t, a.LoadPackages("", runtimePath))

	r := a.VerifyRuntime(catalog.Default(), runtimePath)
	assert.True(t, r.OK(), "findings: %v", r.Findings)
	assert.NoError(t, r.Err())
}

func TestAnalyzer_VerifyRuntime_Mismatch(t *testing.T) {
	a := NewAnalyzer()
	check(t, a, mapImporter{}, runtimePath, `package pds

type DataType uint8
type ContainerType uint8

const (
	DtBool DataType = 0x12
	CtNone ContainerType = 0x00
)
`)

	r := a.VerifyRuntime(catalog.Default(), runtimePath)
	require.False(t, r.OK())

	var names []string
	for _, f := range r.Findings {
		names = append(names, f.Name)
	}

	assert.Contains(t, names, "DtBool")
	assert.Contains(t, names, "DtI32")
	assert.Contains(t, names, "CtVector")
	assert.NotContains(t, names, "CtNone")

	assert.Equal(t, "package not loaded", a.VerifyRuntime(catalog.Default(), "pds-generator/other").Findings[0].Msg)
}
