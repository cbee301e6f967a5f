package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	types := []string{"i8", "i16", "i32", "i64", "u32", "string", "item_ref", "entity_ref"}

	tests := []struct {
		name       string
		candidates []string
		want       string
		ok         bool
	}{
		{name: "int32", candidates: types, want: "i32", ok: true},
		{name: "strng", candidates: types, want: "string", ok: true},
		{name: "ItemRef", candidates: types, want: "item_ref", ok: true},
		{name: "Pointt", candidates: []string{"Shape", "Point"}, want: "Point", ok: true},
		{name: "Quaternion", candidates: types},
		{name: "i32", candidates: []string{"i32"}},
		{name: "x", candidates: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.name, tt.candidates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClosest_TieGoesToFirst(t *testing.T) {
	got, ok := Closest("ab", []string{"ax", "xb"})
	assert.True(t, ok)
	assert.Equal(t, "ax", got)
}

func TestHint(t *testing.T) {
	assert.Equal(t, "; did you mean Label?", Hint("Lable", []string{"Name", "Label"}))
	assert.Empty(t, Hint("Zzz", []string{"Name", "Label"}))
}
