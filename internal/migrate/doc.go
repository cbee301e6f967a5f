// Package migrate plans and applies the conversion between a Modified item
// and its previous definition.
//
// A Plan holds one list of steps per direction, derived from the item's
// mappings:
//
//   - new field: cleared when migrating from the previous version
//   - deleted field: no step
//   - renamed or same field: assigned for base types, copied item by item
//     for item-typed fields, migrating nested Modified items through their
//     own plans
//   - custom: an opaque conversion, registered by id with the Executor
//
// Plans are pure functions of a linked package and may be built
// concurrently with the dispatch tables.
package migrate
