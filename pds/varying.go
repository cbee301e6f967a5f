package pds

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	varyingTypeKey      = "Type"
	varyingContainerKey = "ContainerType"
	varyingDataKey      = "Data"
)

// Varying holds one value of any data type and container, chosen at run
// time. The zero Varying holds nothing. Copying a Varying by assignment
// shares its data; use DeepCopy for an independent value.
type Varying struct {
	dt   DataType
	ct   ContainerType
	data any
}

// Initialize sets the type of x and allocates a zero value of it. Any held
// value is dropped.
func (x *Varying) Initialize(dt DataType, ct ContainerType) error {
	x.reset()

	data, err := NewValue(dt, ct)
	if err != nil {
		return err
	}

	x.dt, x.ct, x.data = dt, ct, data

	return nil
}

// Set initializes x with the type dt/ct and copies the value data points to,
// e.g. a *[]float32 for DtFloat/CtVector.
func (x *Varying) Set(dt DataType, ct ContainerType, data any) error {
	if err := x.Initialize(dt, ct); err != nil {
		return err
	}

	if err := CopyValue(dt, ct, x.data, data); err != nil {
		x.reset()
		return fmt.Errorf("varying %#x/%#x: %w", uint16(dt), uint8(ct), err)
	}

	return nil
}

// Type returns the data type and container of the held value.
func (x *Varying) Type() (DataType, ContainerType) { return x.dt, x.ct }

// IsInitialized reports whether x holds a value.
func (x *Varying) IsInitialized() bool { return x.data != nil }

// Data returns a pointer to the held value, nil when uninitialized.
func (x *Varying) Data() any { return x.data }

// VaryingData returns the value held by x when it is of container type C.
func VaryingData[C any](x *Varying) (*C, bool) {
	p, ok := x.data.(*C)
	return p, ok
}

func (x *Varying) reset() {
	*x = Varying{}
}

// Clear resets the held value to its zero value; the type is kept.
func (x *Varying) Clear() {
	if !x.IsInitialized() {
		return
	}

	if err := ClearValue(x.dt, x.ct, x.data); err != nil {
		Logger().Error("clearing varying value", zap.Error(err))
		x.reset()
	}
}

// DeepCopy makes x an independent copy of src.
func (x *Varying) DeepCopy(src *Varying) {
	x.reset()

	if src == nil || !src.IsInitialized() {
		return
	}

	if err := x.Set(src.dt, src.ct, src.data); err != nil {
		Logger().Error("copying varying value", zap.Error(err))
	}
}

// Equals reports whether both hold the same type and value. Two
// uninitialized values are equal.
func (x *Varying) Equals(o *Varying) bool {
	if x == o {
		return true
	}

	if x == nil || o == nil {
		return false
	}

	if x.dt != o.dt || x.ct != o.ct || x.IsInitialized() != o.IsInitialized() {
		return false
	}

	if !x.IsInitialized() {
		return true
	}

	eq, err := EqualsValue(x.dt, x.ct, x.data, o.data)
	if err != nil {
		Logger().Error("comparing varying values", zap.Error(err))
		return false
	}

	return eq
}

func (x *Varying) Write(w *Writer) error {
	if !x.IsInitialized() {
		return ErrNotInitialized
	}

	if err := WriteValue(w, varyingTypeKey, uint16(x.dt)); err != nil {
		return err
	}

	if err := WriteValue(w, varyingContainerKey, uint16(x.ct)); err != nil {
		return err
	}

	return WriteDynamicValue(x.dt, x.ct, w, varyingDataKey, x.data)
}

func (x *Varying) Read(r *Reader) error {
	x.reset()

	var dt, ct uint16

	if err := ReadValue(r, varyingTypeKey, &dt); err != nil {
		return err
	}

	if err := ReadValue(r, varyingContainerKey, &ct); err != nil {
		return err
	}

	if ct > 0xff {
		return fmt.Errorf("%w: container type %#x", ErrCorrupt, ct)
	}

	if err := x.Initialize(DataType(dt), ContainerType(ct)); err != nil {
		return err
	}

	return ReadDynamicValue(x.dt, x.ct, r, varyingDataKey, x.data)
}

// Validate reports an uninitialized value and index entries of indexed
// containers that are out of range.
func (x *Varying) Validate(v *Validator) error {
	if !x.IsInitialized() {
		v.ReportError(NullNotAllowed, "varying value has no type; use an optional field for an absent value")
		return nil
	}

	return ValidateValue(x.dt, x.ct, v, varyingDataKey, x.data)
}
