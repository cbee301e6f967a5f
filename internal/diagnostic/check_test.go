package diagnostic

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds-generator/internal/dispatch"
	"pds-generator/internal/schema"
)

func build(t *testing.T, src string) (*schema.Package, error) {
	t.Helper()

	f, err := schema.Parse([]byte(src))
	require.NoError(t, err)

	return f.Build()
}

func codes(ds []Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}

	return out
}

const lintYAML = `
package: Lint
versions:
  - name: V1
    items:
      - name: Orphan
        fields:
          - {name: X, type: i32}
      - name: Empty
        entity: true
      - name: Reading
        entity: true
        fields:
          - {name: Value, type: double}
          - {name: Note, type: string}
          - {name: Old, type: u8}
  - name: V2
    previous: V1
    items:
      - {name: Orphan, lifecycle: identical}
      - {name: Empty, entity: true, lifecycle: identical}
      - name: Reading
        entity: true
        lifecycle: modified
        fields:
          - {name: Value, type: double}
          - {name: Note, type: string}
          - {name: Old, type: u8}
        mappings:
          - {same: Value}
          - {same: Note}
          - {same: Old}
  - name: V3
    previous: V2
    items:
      - {name: Orphan, lifecycle: identical}
      - {name: Empty, entity: true, lifecycle: identical}
      - name: Reading
        entity: true
        lifecycle: modified
        fields:
          - {name: Value, type: double}
        mappings:
          - {same: Value}
`

func TestCheck_Lints(t *testing.T) {
	pkg, err := build(t, lintYAML)
	require.NoError(t, err)

	d := Check(pkg, dispatch.DefaultEntityTableConfig())
	require.False(t, d.HasErrors(), spew.Sdump(d.Errors))

	assert.ElementsMatch(t, []string{CodePreviousFieldLost, CodePreviousFieldLost, CodeEmptyItem}, codes(d.Warnings))
	assert.ElementsMatch(t, []string{CodeRedundantModified, CodeUnusedItem}, codes(d.Infos))

	for _, w := range d.Warnings {
		if w.Code == CodePreviousFieldLost {
			assert.Equal(t, "Lint.V3.Reading", w.Item)
			assert.Contains(t, []string{"Note", "Old"}, w.Field)
		}
	}

	assert.NoError(t, d.Error())
}

func TestCheck_EntityTable(t *testing.T) {
	pkg, err := build(t, lintYAML)
	require.NoError(t, err)

	d := Check(pkg, dispatch.EntityTableConfig{Policy: dispatch.SizeFixed, FixedSize: 3})
	require.True(t, d.HasErrors(), "four entities do not fit in three slots")
	assert.Equal(t, []string{CodeEntityTable}, codes(d.Errors))

	d = Check(pkg, dispatch.EntityTableConfig{Policy: dispatch.SizeFixed, FixedSize: 5})
	assert.Contains(t, codes(d.Warnings), CodeEntityTableLoad)
}

func TestCheck_Migration(t *testing.T) {
	pkg, err := build(t, `
package: P
versions:
  - name: V1
    items:
      - name: A
        fields:
          - {name: X, type: i32}
  - name: V2
    previous: V1
    items:
      - name: A
        lifecycle: modified
        fields:
          - {name: X, type: string}
          - {name: Y, type: i32}
        mappings:
          - {same: X}
          - custom: [Y]
            from_previous: "dst.Y = src.X"
`)
	require.NoError(t, err)

	d := Check(pkg, dispatch.DefaultEntityTableConfig())
	assert.Equal(t, []string{CodeMigration}, codes(d.Errors))
	assert.Equal(t, "P.V2.A", d.Errors[0].Item)
	assert.Contains(t, codes(d.Warnings), CodeCustomOneWay)
	require.Error(t, d.Error())
}

func TestFromError(t *testing.T) {
	_, err := build(t, `
package: P
versions:
  - name: V1
    items:
      - name: A
        fields:
          - {name: X, type: nope}
`)
	require.Error(t, err)

	d := FromError(err)
	require.Len(t, d.Errors, 1)
	assert.Equal(t, schema.CodeUnknownFieldType, d.Errors[0].Code)
	assert.Equal(t, "P.V1.A", d.Errors[0].Item)
	assert.Equal(t, "X", d.Errors[0].Field)
	assert.Equal(t, "[P.V1.A] X: [unknown_field_type] "+d.Errors[0].Message, d.Errors[0].String())

	d = FromError(errors.New("boom"))
	assert.Equal(t, []string{CodeBuildFailed}, codes(d.Errors))

	d = FromError(nil)
	assert.False(t, d.HasErrors())
}

func TestDiagnostics_AllAndMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("i", "info", "", "")
	b.AddError("e", "error", "P.V1.A", "")
	b.AddWarning("w", "warning", "", "F")
	a.Merge(b)

	assert.Equal(t, []string{"e", "w", "i"}, codes(a.All()))
	assert.Equal(t, "F: [w] warning", a.Warnings[0].String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
