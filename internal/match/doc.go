// Package match suggests the closest known name for a misspelled one.
//
// Names are compared after normalization (case folded, separators removed)
// by Levenshtein similarity, so "Int32" finds "i32" and "previous_name"
// finds "PreviousName".
package match
