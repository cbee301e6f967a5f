// Package diagnostic collects structured findings about a schema package:
// definition errors reported by the linker, migration plans that cannot be
// built, and lint warnings for schemas that link but are likely mistakes.
package diagnostic
