// Package schema is the in-memory object model of a versioned pds package
// and the linker that validates it.
//
// A Package owns an ordered list of Versions. Each Version holds the Items
// valid as of that version, each tagged with a Lifecycle:
//
//   - New: first appearance, full definition.
//   - Identical: unchanged; an alias of the previous definition.
//   - Modified: changed; must map every field to the previous version.
//   - Deleted: gone; later versions must not carry it.
//
// BuildPackage is the only way to obtain a Package. It runs the linker
// passes in order and stops at the first violation:
//
//  1. link every Version and Item back to the Package
//  2. presence and Item/Entity kind continuity between adjacent versions
//  3. predecessor binding for Identical and Modified items, skipping
//     Identical aliases so the binding lands on the actual definition
//  4. mapping completeness for Modified items
//
// followed by field type resolution against the catalog and the checks of
// the declared validation rules. A failed build leaves its inputs untouched
// and returns a *DefinitionError; a successful build returns a Package that
// is never mutated afterwards.
//
// # YAML front end
//
// Schemas can also be written as YAML and loaded with LoadFile or Parse:
//
//	package: TestPackage
//	path: ./testpackage
//	versions:
//	  - name: v1_0
//	    items:
//	      - name: TestEntity
//	        entity: true
//	        fields:
//	          - {name: Name, type: string}
//	          - {name: Tags, type: string, vector: true}
//	  - name: v1_1
//	    previous: v1_0
//	    items:
//	      - name: TestEntity
//	        entity: true
//	        lifecycle: modified
//	        fields:
//	          - {name: Title, type: string}
//	        mappings:
//	          - {renamed: Title, previous: Name}
//	          - {deleted: Tags}
package schema
