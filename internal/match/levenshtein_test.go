package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"i32", "i32", 0},
		{"", "abc", 3},
		{"abc", "", 3},

		{"i32", "i64", 2},
		{"i32", "u32", 1},
		{"strng", "string", 1},
		{"fvec3", "dvec3", 1},
		{"kitten", "sitting", 3},

		// Case-sensitive
		{"Point", "point", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			if rev := Levenshtein(tt.b, tt.a); rev != result {
				t.Errorf("Levenshtein(%q, %q) = %d, not symmetric with %d", tt.b, tt.a, rev, result)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"uuid", "uuid", 1.0},
		{"abc", "xyz", 0.0},
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		{"int32", "i32", 1.0 - 2.0/5.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			if diff := result - tt.expected; diff < -0.001 || diff > 0.001 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func BenchmarkLevenshtein(b *testing.B) {
	for b.Loop() {
		Levenshtein("optional_idx_vector", "optional_vector")
	}
}
