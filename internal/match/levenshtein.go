package match

import "unicode/utf8"

// Levenshtein computes the edit distance between two strings: the minimum
// number of rune insertions, deletions or substitutions turning one into
// the other.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// row[i] is the distance between ra[:i] and the prefix of rb seen so far.
	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j, cb := range rb {
		diag := row[0]
		row[0] = j + 1

		for i, ca := range ra {
			sub := diag
			if ca != cb {
				sub++
			}

			diag = row[i+1]
			row[i+1] = min(row[i+1]+1, row[i]+1, sub)
		}
	}

	return row[len(ra)]
}

// Similarity scores two strings between 0 (nothing in common) and 1
// (identical): 1 - distance/length of the longer string.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))

	return 1.0 - float64(Levenshtein(a, b))/float64(n)
}
