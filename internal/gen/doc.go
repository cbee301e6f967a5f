// Package gen emits the Go code of a linked pds package and of the runtime
// value dispatch table.
//
// Generation uses text/template, then golang.org/x/tools/imports to format
// the result and prune unused imports. A file that fails to format is
// returned unformatted, with a .unformatted.go sidecar written next to the
// output for inspection.
//
// Package output layout, for a package TestPackage with versions V1_1 and
// V1_2:
//
//	<out>/handler.go            entity table of every version
//	<out>/latest.go             aliases of the default version
//	<out>/v1_1/doc.go           items in dependency order
//	<out>/v1_1/test_entity.go   one file per item
//	<out>/v1_2/...
//
// Identical items become type aliases of their definition. Modified items
// gain FromPrevious and ToPrevious methods built from their migration plans.
// Version packages render concurrently; the package, its plans and its
// tables are only read.
package gen
