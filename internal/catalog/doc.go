// Package catalog is the static registry of base value types, their storage
// variants and the container kinds that wrap them.
//
// The catalog is pure data. Every other component reads it, and the order in
// which it enumerates combinations is load-bearing: it fixes the numeric data
// type ids and the insertion order of the value dispatch table, so it must be
// stable across regenerations.
//
// # Combinations
//
// The dispatch space is BaseType × Variant × ContainerKind, enumerated in
// declaration order:
//
//	for each BaseType (declaration order)
//	  for each Variant of the BaseType (declaration order)
//	    for each ContainerKind (declaration order)
//
// # Ids
//
// A data type id is ((baseIndex+1) << 4) | (variantIndex+1), both axes
// 1-based so that 0 means "no type". Container ids come from a fixed table.
//
// # Override variants
//
// A variant with Overrides set is a logically distinct type (an item
// reference, an entity reference) that is physically stored as another
// variant of the same base type. Emitters generate conversion shims for it
// instead of native write/read code.
package catalog
