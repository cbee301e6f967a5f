// Package dispatch builds the two static dispatch tables emitted into
// generated code.
//
// The value table maps a (data type id, container id) pair to its catalog
// combination. The entity table maps a fully qualified entity type name
// ("package.version.entity") to its defining item. Both are open addressing
// tables with linear probing and wraparound, computed once at generation time
// and never mutated afterwards; building both from the same package
// concurrently is safe.
package dispatch
