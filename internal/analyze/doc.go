// Package analyze loads generated Go packages and checks them against the
// schema they were generated from.
//
// It uses golang.org/x/tools/go/packages with go/types, so the generated
// code must type-check before anything is compared. Each live item must be
// declared in its version package: an alias for identical items, a struct
// with the schema's fields in order otherwise, with the entity and
// migration methods its lifecycle calls for. The root package must carry
// the entity Record and alias the default version.
package analyze
