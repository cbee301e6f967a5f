package schema

import (
	"unicode"
)

// Dependency names another Item or Entity an Item refers to. Include marks a
// dependency the emitted code needs in full rather than by name.
type Dependency struct {
	Name    string `yaml:"name"`
	Include bool   `yaml:"include,omitempty"`
}

// Template is a named instantiation of a generic runtime container
// ("type Lookup = pds.IdxVector[pds.UUID]"). Flags name validation flags of
// the ItemTable and DirectedGraph kinds.
type Template struct {
	Name     string   `yaml:"name"`
	Template string   `yaml:"template"`
	Types    []string `yaml:"types"`
	Flags    []string `yaml:"flags,omitempty"`
}

// ValidationKind enumerates the cross-field validation rules.
type ValidationKind int

const (
	// ValidateAllKeysInTable requires every element of Table to be present
	// in MustExistIn.
	ValidateAllKeysInTable ValidationKind = iota + 1
)

// Validation is an Item-level cross-field rule, run after per-field validation.
type Validation struct {
	Kind        ValidationKind
	Table       string
	MustExistIn string
}

// AllKeysInTable returns the rule "every key of table exists in mustExistIn".
func AllKeysInTable(table, mustExistIn string) Validation {
	return Validation{Kind: ValidateAllKeysInTable, Table: table, MustExistIn: mustExistIn}
}

// ItemOption configures the optional parts of an Item declaration.
type ItemOption func(*Item)

// WithDependencies declares the items the item refers to.
func WithDependencies(deps ...Dependency) ItemOption {
	return func(it *Item) { it.dependencies = append(it.dependencies, deps...) }
}

// WithTemplates declares the template instantiations the item uses.
func WithTemplates(templates ...Template) ItemOption {
	return func(it *Item) { it.templates = append(it.templates, templates...) }
}

// WithValidations declares the cross-field validation rules of the item.
func WithValidations(rules ...Validation) ItemOption {
	return func(it *Item) { it.validations = append(it.validations, rules...) }
}

// Item is a named record type of a Version. An Entity is an Item with a
// global type identity.
type Item struct {
	name      string
	entity    bool
	lifecycle Lifecycle

	fields       []*Field
	dependencies []Dependency
	templates    []Template
	validations  []Validation
	mappings     []Mapping

	version  *Version
	pkg      *Package
	previous *Item
}

func newItem(name string, entity bool, lc Lifecycle, fields []*Field, mappings []Mapping, opts []ItemOption) *Item {
	it := &Item{
		name:      name,
		entity:    entity,
		lifecycle: lc,
		fields:    fields,
		mappings:  mappings,
	}
	for _, opt := range opts {
		opt(it)
	}

	return it
}

// NewItem declares an item appearing for the first time.
func NewItem(name string, fields []*Field, opts ...ItemOption) *Item {
	return newItem(name, false, LifecycleNew, fields, nil, opts)
}

// NewEntity declares an entity appearing for the first time.
func NewEntity(name string, fields []*Field, opts ...ItemOption) *Item {
	return newItem(name, true, LifecycleNew, fields, nil, opts)
}

// ModifiedItem declares a changed item. mappings must cover every field.
func ModifiedItem(name string, fields []*Field, mappings []Mapping, opts ...ItemOption) *Item {
	return newItem(name, false, LifecycleModified, fields, mappings, opts)
}

// ModifiedEntity declares a changed entity. mappings must cover every field.
func ModifiedEntity(name string, fields []*Field, mappings []Mapping, opts ...ItemOption) *Item {
	return newItem(name, true, LifecycleModified, fields, mappings, opts)
}

// IdenticalItem carries an item over unchanged.
func IdenticalItem(name string) *Item {
	return newItem(name, false, LifecycleIdentical, nil, nil, nil)
}

// IdenticalEntity carries an entity over unchanged.
func IdenticalEntity(name string) *Item {
	return newItem(name, true, LifecycleIdentical, nil, nil, nil)
}

// DeletedItem marks an item as removed from this version on.
func DeletedItem(name string) *Item {
	return newItem(name, false, LifecycleDeleted, nil, nil, nil)
}

// DeletedEntity marks an entity as removed from this version on.
func DeletedEntity(name string) *Item {
	return newItem(name, true, LifecycleDeleted, nil, nil, nil)
}

func (it *Item) Name() string { return it.name }
func (it *Item) IsEntity() bool { return it.entity }
func (it *Item) Lifecycle() Lifecycle { return it.lifecycle }
func (it *Item) Dependencies() []Dependency { return it.dependencies }
func (it *Item) Templates() []Template { return it.templates }

// FindTemplate returns the template called name.
func (it *Item) FindTemplate(name string) (Template, bool) {
	for _, t := range it.templates {
		if t.Name == name {
			return t, true
		}
	}

	return Template{}, false
}
func (it *Item) Validations() []Validation { return it.validations }
func (it *Item) Mappings() []Mapping { return it.mappings }
func (it *Item) Version() *Version { return it.version }
func (it *Item) Package() *Package { return it.pkg }

// Fields returns the declared fields. Identical and Deleted items have none;
// use Definition to reach the fields of an alias.
func (it *Item) Fields() []*Field { return it.fields }

// FindField returns the field called name.
func (it *Item) FindField(name string) (*Field, bool) {
	for _, f := range it.fields {
		if f.name == name {
			return f, true
		}
	}

	return nil, false
}

// PreviousVersion returns the actual definition this Identical or Modified
// item derives from. It is never an Identical alias.
func (it *Item) PreviousVersion() *Item { return it.previous }

// Definition returns the item holding the fields: the item itself unless it
// is an Identical alias.
func (it *Item) Definition() *Item {
	if it.lifecycle == LifecycleIdentical && it.previous != nil {
		return it.previous
	}

	return it
}

// IsDefining reports whether the item contributes a definition of its own.
func (it *Item) IsDefining() bool {
	return it.lifecycle == LifecycleNew || it.lifecycle == LifecycleModified
}

// TypeString is the fully qualified name "package.version.item".
func (it *Item) TypeString() string {
	if it.version == nil {
		return it.name
	}

	if it.pkg == nil {
		return it.version.name + "." + it.name
	}

	return it.pkg.name + "." + it.version.name + "." + it.name
}

func (it *Item) String() string {
	return it.TypeString()
}

// kindName is used in error messages.
func (it *Item) kindName() string {
	if it.entity {
		return "entity"
	}

	return "item"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' && i > 0:
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
		case unicode.IsDigit(r) && i > 0 && r < unicode.MaxASCII:
		default:
			return false
		}
	}

	return true
}
