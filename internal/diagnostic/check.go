package diagnostic

import (
	"errors"
	"fmt"

	"pds-generator/internal/dispatch"
	"pds-generator/internal/migrate"
	"pds-generator/internal/schema"
)

// Diagnostic codes reported by Check, besides the linker codes carried over
// by FromError.
const (
	CodeBuildFailed       = "build_failed"
	CodeMigration         = "migration"
	CodeEntityTable       = "entity_table"
	CodeEntityTableLoad   = "entity_table_load"
	CodeCustomOneWay      = "custom_one_way"
	CodePreviousFieldLost = "previous_field_unmapped"
	CodeEmptyItem         = "empty_item"
	CodeUnusedItem        = "unused_item"
	CodeRedundantModified = "redundant_modified"
)

// FromError turns a package construction error into diagnostics. A
// schema.DefinitionError keeps its code and location.
func FromError(err error) Diagnostics {
	var d Diagnostics

	if err == nil {
		return d
	}

	var de *schema.DefinitionError
	if !errors.As(err, &de) {
		d.AddError(CodeBuildFailed, err.Error(), "", "")
		return d
	}

	item := de.Item
	if item != "" && de.Version != "" {
		item = de.Version + "." + item
		if de.Package != "" {
			item = de.Package + "." + item
		}
	}

	msg := de.Msg
	if msg == "" && de.Err != nil {
		msg = de.Err.Error()
	}

	d.AddError(de.Code, msg, item, de.Field)

	return d
}

// Check lints a linked package: migrations that cannot be planned, an entity
// table that cannot be built or is crowded, and schema shapes that link but
// are likely mistakes.
func Check(pkg *schema.Package, entities dispatch.EntityTableConfig) Diagnostics {
	var d Diagnostics

	for _, it := range pkg.ModifiedItems() {
		if _, err := migrate.PlanMigration(it); err != nil {
			d.AddError(CodeMigration, err.Error(), it.TypeString(), "")
		}

		checkMappings(&d, it)
	}

	table, err := dispatch.BuildEntityTable(pkg, entities)
	if err != nil {
		d.AddError(CodeEntityTable, err.Error(), "", "")
	} else if 2*table.Len() > table.Size() {
		d.AddWarning(CodeEntityTableLoad,
			fmt.Sprintf("%d entities in %d slots; lookups scan long runs", table.Len(), table.Size()), "", "")
	}

	used := referencedItems(pkg)

	for _, v := range pkg.Versions() {
		for _, it := range v.Items() {
			if !it.IsDefining() {
				continue
			}

			if len(it.Fields()) == 0 {
				d.AddWarning(CodeEmptyItem, "item declares no fields", it.TypeString(), "")
			}

			if !it.IsEntity() && !used[it] {
				d.AddInfo(CodeUnusedItem, "no item or entity refers to this item", it.TypeString(), "")
			}
		}
	}

	return d
}

func checkMappings(d *Diagnostics, it *schema.Item) {
	prev := it.PreviousVersion()
	handled := make(map[string]bool)
	redundant := len(it.Fields()) == len(prev.Fields())
	custom := false

	for _, m := range it.Mappings() {
		switch m.Kind {
		case schema.MappingRenamedField, schema.MappingDeletedField:
			handled[m.PreviousName] = true
		case schema.MappingCustom:
			custom = true

			if (m.ToPrevious == "") != (m.FromPrevious == "") {
				d.AddWarning(CodeCustomOneWay, "custom mapping converts in one direction only", it.TypeString(), m.Fields[0])
			}
		}

		if !m.IsSame() {
			redundant = false
		}
	}

	for _, f := range prev.Fields() {
		// Custom code may read any previous field.
		if !custom && !handled[f.Name()] {
			d.AddWarning(CodePreviousFieldLost,
				fmt.Sprintf("%s is neither renamed nor deleted; its value is dropped", f.Name()), it.TypeString(), f.Name())
		}
	}

	if redundant {
		for _, f := range it.Fields() {
			old, ok := prev.FindField(f.Name())
			if !ok || old.TypeString() != f.TypeString() || !(f.IsBaseType() || f.IsBuiltIn()) {
				return
			}
		}

		d.AddInfo(CodeRedundantModified, "every field is kept unchanged; the item could be identical", it.TypeString(), "")
	}
}

// referencedItems returns the definitions some field, dependency or template
// of the package refers to.
func referencedItems(pkg *schema.Package) map[*schema.Item]bool {
	used := make(map[*schema.Item]bool)

	for _, v := range pkg.Versions() {
		mark := func(name string) {
			if ref, ok := v.FindItem(name); ok {
				used[ref.Definition()] = true
			}
		}

		for _, it := range v.Items() {
			for _, f := range it.Fields() {
				if f.Ref() != nil {
					used[f.Ref().Definition()] = true
				}
			}

			for _, dep := range it.Dependencies() {
				mark(dep.Name)
			}

			for _, t := range it.Templates() {
				for _, name := range t.Types {
					mark(name)
				}
			}
		}
	}

	return used
}
