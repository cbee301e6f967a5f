package pds

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// ValidationError is a bit set of validation failure kinds.
type ValidationError uint64

const (
	NoError        ValidationError = 0x00
	InvalidCount   ValidationError = 0x01 // invalid size of a list
	NullNotAllowed ValidationError = 0x02 // empty object where the type forbids it
	MissingObject  ValidationError = 0x04 // a required object is missing
	InvalidObject  ValidationError = 0x08 // an object is invalid or used in an invalid way
	InvalidSetup   ValidationError = 0x10 // the setup of an object or system is invalid
	InvalidValue   ValidationError = 0x20 // a value or index is out of bounds
)

var validationErrorNames = []struct {
	bit  ValidationError
	name string
}{
	{InvalidCount, "InvalidCount"},
	{NullNotAllowed, "NullNotAllowed"},
	{MissingObject, "MissingObject"},
	{InvalidObject, "InvalidObject"},
	{InvalidSetup, "InvalidSetup"},
	{InvalidValue, "InvalidValue"},
}

func (e ValidationError) String() string {
	if e == NoError {
		return "NoError"
	}

	var parts []string

	for _, n := range validationErrorNames {
		if e&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// Validator collects validation failures of an object graph. Reported
// failures do not stop validation; Validate methods return an error only
// when validation itself cannot proceed.
type Validator struct {
	count int
	ids   ValidationError
	msgs  []string
}

// NewValidator returns an empty validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ReportError records a failure of kind id.
func (v *Validator) ReportError(id ValidationError, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	v.count++
	v.ids |= id
	v.msgs = append(v.msgs, msg)

	Logger().Warn("validation error", zap.Stringer("id", id), zap.String("msg", msg))
}

// ErrorCount returns the number of reported failures.
func (v *Validator) ErrorCount() int { return v.count }

// ErrorIDs returns the union of reported failure kinds.
func (v *Validator) ErrorIDs() ValidationError { return v.ids }

// Messages returns the reported failure messages in order.
func (v *Validator) Messages() []string { return v.msgs }

// Valid reports whether no failure was reported.
func (v *Validator) Valid() bool { return v.count == 0 }

// Reset forgets all reported failures.
func (v *Validator) Reset() {
	v.count = 0
	v.ids = NoError
	v.msgs = nil
}

// ValidateIdxVector reports values vectors too large to be indexed by int32
// and index entries out of range.
func ValidateIdxVector[T any](v *Validator, name string, vec IdxVector[T]) error {
	ValidateIndex(v, name, vec.Index, len(vec.Values))
	return nil
}

// ValidateIndex checks an index list against n values.
func ValidateIndex(v *Validator, name string, index []int32, n int) {
	if n > math.MaxInt32 {
		v.ReportError(InvalidCount, "%s has %d values, more than an int32 index can address", name, n)
		n = math.MaxInt32
	}

	for i, p := range index {
		if p < 0 || int(p) >= n {
			v.ReportError(InvalidValue, "%s: index value %d at position %d is out of bounds", name, p, i)
		}
	}
}

// ValidateOptionalIdxVector validates a present optional indexed vector.
func ValidateOptionalIdxVector[T any](v *Validator, name string, vec OptionalIdxVector[T]) error {
	if !vec.set {
		return nil
	}

	return ValidateIdxVector(v, name, vec.vec)
}

// ValidateAllKeysInTable reports every key of keys missing from table.
func ValidateAllKeysInTable[T comparable](v *Validator, keys, table []T, tableName string) error {
	present := make(map[T]struct{}, len(table))
	for _, k := range table {
		present[k] = struct{}{}
	}

	for _, k := range keys {
		if _, ok := present[k]; !ok {
			v.ReportError(MissingObject, "the key %v is missing in %s", k, tableName)
		}
	}

	return nil
}
