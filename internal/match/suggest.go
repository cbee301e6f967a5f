package match

import "fmt"

// MinSimilarity is the normalized similarity a candidate needs to be
// suggested.
const MinSimilarity = 0.5

// Closest returns the candidate most similar to name, ignoring name itself.
// Ties go to the earlier candidate.
func Closest(name string, candidates []string) (string, bool) {
	norm := NormalizeIdent(name)

	var (
		best      string
		bestScore float64
		found     bool
	)

	for _, c := range candidates {
		if c == name {
			continue
		}

		s := Similarity(norm, NormalizeIdent(c))
		if s >= MinSimilarity && (!found || s > bestScore) {
			best, bestScore, found = c, s, true
		}
	}

	return best, found
}

// Hint formats the closest candidate as a message suffix, "" when there is
// none.
func Hint(name string, candidates []string) string {
	if c, ok := Closest(name, candidates); ok {
		return fmt.Sprintf("; did you mean %s?", c)
	}

	return ""
}
