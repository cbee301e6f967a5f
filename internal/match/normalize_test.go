package match

import (
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ItemRef", "itemref"},
		{"item_ref", "itemref"},
		{"item-ref", "itemref"},
		{"ITEM_REF", "itemref"},
		{"PreviousName", "previousname"},
		{"previous name", "previousname"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := NormalizeIdent(tt.input); result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
