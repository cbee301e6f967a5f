package schema

import (
	"fmt"
	"slices"

	"pds-generator/internal/catalog"
	"pds-generator/internal/match"
)

type fieldResolution struct {
	baseType catalog.BaseType
	variant  catalog.Variant
	ref      *Item
	builtin  string
	template *Template
}

func (r fieldResolution) isBase() bool {
	return r.ref == nil && r.builtin == "" && r.template == nil
}

// linker stages every binding it computes and only writes them into the
// model once all passes succeed.
type linker struct {
	pkg      *Package
	previous map[*Item]*Item
	fields   map[*Field]fieldResolution
	owner    map[*Field]*Item
}

func newLinker(p *Package) *linker {
	return &linker{
		pkg:      p,
		previous: make(map[*Item]*Item),
		fields:   make(map[*Field]fieldResolution),
		owner:    make(map[*Field]*Item),
	}
}

func (l *linker) run() error {
	passes := []func() error{
		l.link,
		l.checkContinuity,
		l.bindPredecessors,
		l.checkMappings,
		l.resolveFields,
		l.checkValueCycles,
		l.checkValidations,
	}

	for _, pass := range passes {
		if err := pass(); err != nil {
			return err
		}
	}

	return nil
}

func (l *linker) commit() {
	for _, v := range l.pkg.versions {
		v.pkg = l.pkg

		for _, it := range v.items {
			it.pkg = l.pkg
			it.previous = l.previous[it]
		}
	}

	for f, r := range l.fields {
		f.resolved = true
		f.baseType = r.baseType
		f.variant = r.variant
		f.ref = r.ref
		f.builtin = r.builtin
		f.template = r.template
	}

	for f, it := range l.owner {
		f.item = it
	}
}

func (l *linker) errorf(code string, sentinel error, v *Version, it *Item, field, format string, args ...any) error {
	e := &DefinitionError{
		Code:    code,
		Package: l.pkg.name,
		Field:   field,
		Msg:     fmt.Sprintf(format, args...),
		Err:     sentinel,
	}

	if v != nil {
		e.Version = v.name
	}

	if it != nil {
		e.Item = it.name
	}

	return e
}

// fieldNames lists the field names of it, for hints.
func fieldNames(it *Item) []string {
	names := make([]string, len(it.fields))
	for i, f := range it.fields {
		names[i] = f.name
	}

	return names
}

// liveItemNames lists the items of v that are not deleted, for hints.
func liveItemNames(v *Version) []string {
	var names []string

	for _, it := range v.items {
		if it.lifecycle != LifecycleDeleted {
			names = append(names, it.name)
		}
	}

	return names
}

// link checks the structure every later pass relies on: unique names,
// versions ordered after their predecessor, items and fields owned once.
func (l *linker) link() error {
	if !isIdentifier(l.pkg.name) {
		return l.errorf(CodeInvalidName, ErrInvalidName, nil, nil, "", "package name %q is not an identifier", l.pkg.name)
	}

	declared := make(map[*Version]bool, len(l.pkg.versions))
	names := make(map[string]bool, len(l.pkg.versions))

	for _, v := range l.pkg.versions {
		if v == nil {
			return l.errorf(CodeInvalidName, ErrInvalidName, nil, nil, "", "nil version")
		}

		if !isIdentifier(v.name) {
			return l.errorf(CodeInvalidName, ErrInvalidName, v, nil, "", "version name %q is not an identifier", v.name)
		}

		if names[v.name] || declared[v] {
			return l.errorf(CodeDuplicateVersion, ErrDuplicateVersion, v, nil, "", "version %s declared twice", v.name)
		}

		if v.previous != nil && !declared[v.previous] {
			return l.errorf(CodeUnknownPreviousVersion, ErrUnknownPreviousVersion, v, nil, "",
				"previous version %s is not declared before %s", v.previous.name, v.name)
		}

		if err := l.linkItems(v); err != nil {
			return err
		}

		declared[v] = true
		names[v.name] = true
	}

	return nil
}

func (l *linker) linkItems(v *Version) error {
	seen := make(map[string]bool, len(v.items))

	for _, it := range v.items {
		if it == nil {
			return l.errorf(CodeInvalidName, ErrInvalidName, v, nil, "", "nil item")
		}

		if it.version != v {
			return l.errorf(CodeItemShared, ErrItemShared, v, it, "", "%s %s is already declared by another version", it.kindName(), it.name)
		}

		if !isIdentifier(it.name) {
			return l.errorf(CodeInvalidName, ErrInvalidName, v, it, "", "item name %q is not an identifier", it.name)
		}

		if seen[it.name] {
			return l.errorf(CodeDuplicateItem, ErrDuplicateItem, v, it, "", "%s declared twice", it.name)
		}

		seen[it.name] = true

		if it.lifecycle != LifecycleModified && len(it.mappings) > 0 {
			return l.errorf(CodeMappingsOnUnmodified, ErrMappingsOnUnmodified, v, it, "",
				"%s %s is %s but declares mappings", it.kindName(), it.name, it.lifecycle)
		}

		fieldNames := make(map[string]bool, len(it.fields))

		for _, f := range it.fields {
			if f == nil {
				return l.errorf(CodeInvalidName, ErrInvalidName, v, it, "", "nil field")
			}

			if fieldNames[f.name] {
				return l.errorf(CodeDuplicateField, ErrDuplicateField, v, it, f.name, "field declared twice")
			}

			if _, shared := l.owner[f]; shared {
				return l.errorf(CodeDuplicateField, ErrDuplicateField, v, it, f.name, "field value is shared with another item")
			}

			fieldNames[f.name] = true
			l.owner[f] = it
		}
	}

	return nil
}

// checkContinuity requires every non-deleted item of a predecessor to exist
// in its successor with the same item/entity kind.
func (l *linker) checkContinuity() error {
	for _, v := range l.pkg.versions {
		if v.previous == nil {
			continue
		}

		for _, prev := range v.previous.items {
			if prev.lifecycle == LifecycleDeleted {
				continue
			}

			it, ok := v.FindItem(prev.name)
			if !ok {
				return l.errorf(CodeItemNotCarriedForward, ErrItemNotCarriedForward, v, prev, "",
					"%s %s of version %s is not defined in subsequent version %s",
					prev.kindName(), prev.name, v.previous.name, v.name)
			}

			if it.entity != prev.entity {
				return l.errorf(CodeKindMismatch, ErrKindMismatch, v, it, "",
					"%s in version %s is an %s but an %s in version %s",
					it.name, v.previous.name, prev.kindName(), it.kindName(), v.name)
			}
		}
	}

	return nil
}

// bindPredecessors binds Identical and Modified items to the version that
// actually defines them. Identical aliases never end the search.
func (l *linker) bindPredecessors() error {
	for _, v := range l.pkg.versions {
		for _, it := range v.items {
			if it.lifecycle != LifecycleIdentical && it.lifecycle != LifecycleModified {
				continue
			}

			def, err := l.findDefinition(v, it)
			if err != nil {
				return err
			}

			l.previous[it] = def
		}
	}

	return nil
}

func (l *linker) findDefinition(v *Version, it *Item) (*Item, error) {
	for anc := v.previous; anc != nil; anc = anc.previous {
		cand, ok := anc.FindItem(it.name)
		if !ok || cand.lifecycle == LifecycleIdentical {
			continue
		}

		if cand.entity != it.entity {
			return nil, l.errorf(CodeKindMismatch, ErrKindMismatch, v, it, "",
				"previous definition of %s in version %s is an %s, not an %s",
				it.name, anc.name, cand.kindName(), it.kindName())
		}

		if cand.lifecycle == LifecycleDeleted {
			return nil, l.errorf(CodeNoPreviousDefinition, ErrNoPreviousDefinition, v, it, "",
				"%s %s was deleted in version %s", it.kindName(), it.name, anc.name)
		}

		return cand, nil
	}

	return nil, l.errorf(CodeNoPreviousDefinition, ErrNoPreviousDefinition, v, it, "",
		"no previous definition of %s %s found in any earlier version", it.kindName(), it.name)
}

// checkMappings requires the mappings of a Modified item to cover exactly
// its declared fields.
func (l *linker) checkMappings() error {
	for _, v := range l.pkg.versions {
		for _, it := range v.items {
			if it.lifecycle != LifecycleModified {
				continue
			}

			if err := l.checkItemMappings(v, it); err != nil {
				return err
			}
		}
	}

	return nil
}

func (l *linker) checkItemMappings(v *Version, it *Item) error {
	prev := l.previous[it]
	covered := make(map[string]bool, len(it.fields))

	for _, m := range it.mappings {
		for _, name := range m.Fields {
			if _, ok := it.FindField(name); !ok {
				return l.errorf(CodeUnknownMappedField, ErrUnknownMappedField, v, it, name,
					"mapping %s names a field the item does not declare%s", m, match.Hint(name, fieldNames(it)))
			}

			covered[name] = true
		}

		if m.Kind == MappingRenamedField || m.Kind == MappingDeletedField {
			if _, ok := prev.FindField(m.PreviousName); !ok {
				return l.errorf(CodeUnknownPreviousField, ErrUnknownPreviousField, v, it, m.PreviousName,
					"mapping %s names a field missing from %s%s", m, prev.TypeString(), match.Hint(m.PreviousName, fieldNames(prev)))
			}
		}
	}

	for _, f := range it.fields {
		if !covered[f.name] {
			return l.errorf(CodeFieldNotMapped, ErrFieldNotMapped, v, it, f.name,
				"field %s is not handled by a mapping in version %s of %s", f.name, v.name, it.name)
		}
	}

	return nil
}

// resolveFields binds every field type to a catalog variant, a built-in, a
// field template of the item or an item of the same version.
func (l *linker) resolveFields() error {
	for _, v := range l.pkg.versions {
		for _, it := range v.items {
			if err := l.resolveReferences(v, it); err != nil {
				return err
			}

			for _, f := range it.fields {
				r, err := l.resolveField(v, it, f)
				if err != nil {
					return err
				}

				l.fields[f] = r
			}
		}
	}

	return nil
}

func (l *linker) resolveField(v *Version, it *Item, f *Field) (fieldResolution, error) {
	if bt, variant, ok := l.pkg.cat.Lookup(f.typeName); ok {
		return fieldResolution{baseType: bt, variant: variant}, nil
	}

	if f.typeName == BuiltInVarying {
		return fieldResolution{builtin: BuiltInVarying}, nil
	}

	if i := slices.IndexFunc(it.templates, func(t Template) bool { return t.Name == f.typeName }); i >= 0 {
		t := &it.templates[i]

		if !t.IsFieldType() {
			return fieldResolution{}, l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, f.name,
				"template %s is a %s; only ItemTable, DirectedGraph and BidirectionalMap templates name field types", t.Name, t.Template)
		}

		if f.optional || f.vector || f.indexed {
			return fieldResolution{}, l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, f.name,
				"template field %s cannot be optional, a vector or indexed", f.name)
		}

		return fieldResolution{template: t}, nil
	}

	ref, ok := v.FindItem(f.typeName)
	if !ok || ref.lifecycle == LifecycleDeleted {
		candidates := append(l.pkg.cat.Names(), BuiltInVarying)
		for _, t := range it.templates {
			candidates = append(candidates, t.Name)
		}

		return fieldResolution{}, l.errorf(CodeUnknownFieldType, ErrUnknownFieldType, v, it, f.name,
			"type %q is neither a base type nor an item of version %s%s", f.typeName, v.name,
			match.Hint(f.typeName, append(candidates, liveItemNames(v)...)))
	}

	return fieldResolution{ref: ref}, nil
}

func (l *linker) resolveReferences(v *Version, it *Item) error {
	for _, dep := range it.dependencies {
		ref, ok := v.FindItem(dep.Name)
		if !ok || ref.lifecycle == LifecycleDeleted {
			return l.errorf(CodeUnknownDependency, ErrUnknownDependency, v, it, "",
				"dependency %s is not an item of version %s%s", dep.Name, v.name, match.Hint(dep.Name, liveItemNames(v)))
		}
	}

	names := make(map[string]bool, len(it.templates))

	for _, t := range it.templates {
		if err := l.checkTemplate(v, it, t); err != nil {
			return err
		}

		if names[t.Name] {
			return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "", "template %s declared twice", t.Name)
		}

		names[t.Name] = true
	}

	return nil
}

func (l *linker) checkTemplate(v *Version, it *Item, t Template) error {
	spec, ok := templateSpecs[t.Kind()]
	if !ok || !isIdentifier(t.Name) || len(t.Types) != len(spec.args) {
		return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "",
			"template %s: want one of %s with matching type arguments, got %s%v",
			t.Name, templateKindNames(), t.Template, t.Types)
	}

	if _, clash := v.FindItem(t.Name); clash || t.Name == BuiltInVarying || l.pkg.cat.IsBaseType(t.Name) {
		return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "",
			"template name %s is already a type of version %s", t.Name, v.name)
	}

	for i, arg := range t.Types {
		isBase := l.pkg.cat.IsBaseType(arg)
		isItem := arg == BuiltInVarying
		if ref, ok := v.FindItem(arg); ok && ref.lifecycle != LifecycleDeleted {
			isItem = true
		}

		switch want := spec.args[i]; {
		case !isBase && !isItem:
			return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "",
				"template %s: unknown type %s", t.Name, arg)
		case want == argBase && !isBase:
			return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "",
				"template %s: type argument %d of %s must be a base type, got %s", t.Name, i+1, t.Template, arg)
		case want == argItem && !isItem:
			return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "",
				"template %s: type argument %d of %s must be an item, got %s", t.Name, i+1, t.Template, arg)
		}
	}

	for _, flag := range t.Flags {
		if _, ok := spec.flags[flag]; !ok {
			return l.errorf(CodeInvalidTemplate, ErrInvalidTemplate, v, it, "",
				"template %s: unknown %s flag %q; valid flags are %v", t.Name, t.Template, flag, flagNames(t.Kind()))
		}
	}

	return nil
}

// checkValueCycles rejects items that contain themselves by value. Only
// fields without a container embed the referenced item.
func (l *linker) checkValueCycles() error {
	for _, v := range l.pkg.versions {
		state := make(map[*Item]int)

		var visit func(it *Item, path []string) error

		visit = func(it *Item, path []string) error {
			def := it
			if it.lifecycle == LifecycleIdentical {
				def = l.previous[it]
			}

			switch state[def] {
			case 1:
				return l.errorf(CodeRecursiveItem, ErrRecursiveItem, v, it, "",
					"%s contains itself by value through %v", it.name, append(path, it.name))
			case 2:
				return nil
			}

			state[def] = 1

			for _, f := range def.fields {
				r := l.fields[f]
				if r.ref == nil || f.Container() != catalog.ContainerNone {
					continue
				}

				if err := visit(r.ref, append(slices.Clone(path), it.name)); err != nil {
					return err
				}
			}

			state[def] = 2

			return nil
		}

		for _, it := range v.items {
			if !it.IsDefining() {
				continue
			}

			if err := visit(it, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkValidations requires the fields named by validation rules to exist
// and to be vectors of the same type.
func (l *linker) checkValidations() error {
	for _, v := range l.pkg.versions {
		for _, it := range v.items {
			for _, rule := range it.validations {
				if rule.Kind != ValidateAllKeysInTable {
					return l.errorf(CodeInvalidValidation, ErrInvalidValidation, v, it, "",
						"unknown validation kind %d", rule.Kind)
				}

				table, ok := it.FindField(rule.Table)
				if !ok {
					return l.errorf(CodeUnknownValidationField, ErrUnknownValidationField, v, it, rule.Table,
						"validation names unknown field %s%s", rule.Table, match.Hint(rule.Table, fieldNames(it)))
				}

				target, ok := it.FindField(rule.MustExistIn)
				if !ok {
					return l.errorf(CodeUnknownValidationField, ErrUnknownValidationField, v, it, rule.MustExistIn,
						"validation names unknown field %s%s", rule.MustExistIn, match.Hint(rule.MustExistIn, fieldNames(it)))
				}

				if !table.vector || !target.vector {
					return l.errorf(CodeInvalidValidation, ErrInvalidValidation, v, it, rule.Table,
						"all-keys-in-table needs vector fields, got %s and %s", table.TypeString(), target.TypeString())
				}

				if table.typeName != target.typeName {
					return l.errorf(CodeInvalidValidation, ErrInvalidValidation, v, it, rule.Table,
						"key types differ: %s and %s", table.typeName, target.typeName)
				}

				if !l.fields[table].isBase() {
					return l.errorf(CodeInvalidValidation, ErrInvalidValidation, v, it, rule.Table,
						"keys must be base type values, got %s", table.typeName)
				}
			}
		}
	}

	return nil
}
