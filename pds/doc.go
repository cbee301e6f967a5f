// Package pds is the runtime library of code produced by pds-generator.
//
// It defines the value types of the type catalog, the container types that
// wrap them, the section-oriented Writer and Reader every generated Write and
// Read method is built on, the Validator, and the dispatch entry points that
// operate on a value given only its (DataType, ContainerType) pair or an
// entity given only its type name.
//
// # Sections
//
// Base type values are written directly under a key. Everything else, nested
// items and entities, is wrapped in a section:
//
//	sec, err := w.BeginSection("Origin")
//	if err != nil {
//		return err
//	}
//	if err := obj.Origin.Write(sec); err != nil {
//		return err
//	}
//	return w.EndSection(sec)
//
// A section array holds N sections and optionally a re-index list. A missing
// index list means identity order. An absent optional item is written as a
// null section, which a Reader only accepts when asked with canBeNull.
//
// Every operation returns an error; the first failing field aborts the whole
// item Write or Read. A failed Read leaves the target partially populated and
// it must be discarded.
//
// # Dispatch
//
// NewValue, ClearValue, CopyValue, EqualsValue, WriteDynamicValue,
// ReadDynamicValue and DeleteValue look up a record in a static open
// addressing table generated into dynamic_types_gen.go. Unknown pairs are
// logged and reported as ErrUnknownType; nil data is reported as ErrNilData.
package pds
