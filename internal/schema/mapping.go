package schema

import "strings"

// MappingKind enumerates how a field transfers between a Modified item and
// its previous definition.
type MappingKind int

const (
	MappingNewField MappingKind = iota + 1
	MappingDeletedField
	MappingRenamedField
	MappingCustom
)

func (k MappingKind) String() string {
	switch k {
	case MappingNewField:
		return "new"
	case MappingDeletedField:
		return "deleted"
	case MappingRenamedField:
		return "renamed"
	case MappingCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Mapping is one declared field transfer rule of a Modified item.
type Mapping struct {
	Kind MappingKind
	// Fields are the fields of the modified item the mapping covers.
	Fields []string
	// PreviousName is the field of the previous definition (renamed, deleted).
	PreviousName string
	// ToPrevious and FromPrevious are the opaque conversion bodies of a
	// custom mapping. They are emitted verbatim and see dst and src.
	ToPrevious   string
	FromPrevious string
}

// NewFieldMapping declares a field without counterpart in the previous
// version. Migrating from the previous version clears it.
func NewFieldMapping(name string) Mapping {
	return Mapping{Kind: MappingNewField, Fields: []string{name}}
}

// DeletedFieldMapping declares a field of the previous version that no
// longer exists. It covers no current field.
func DeletedFieldMapping(previousName string) Mapping {
	return Mapping{Kind: MappingDeletedField, PreviousName: previousName}
}

// RenamedFieldMapping copies previousName into name and back.
func RenamedFieldMapping(name, previousName string) Mapping {
	return Mapping{Kind: MappingRenamedField, Fields: []string{name}, PreviousName: previousName}
}

// SameFieldMapping is RenamedFieldMapping with an unchanged name.
func SameFieldMapping(name string) Mapping {
	return RenamedFieldMapping(name, name)
}

// CustomMapping covers fields whose transfer is supplied as code.
func CustomMapping(fields []string, toPrevious, fromPrevious string) Mapping {
	return Mapping{
		Kind:         MappingCustom,
		Fields:       fields,
		ToPrevious:   toPrevious,
		FromPrevious: fromPrevious,
	}
}

// IsSame reports whether a renamed mapping keeps the field name.
func (m Mapping) IsSame() bool {
	return m.Kind == MappingRenamedField && len(m.Fields) == 1 && m.Fields[0] == m.PreviousName
}

func (m Mapping) String() string {
	switch m.Kind {
	case MappingRenamedField:
		if m.IsSame() {
			return "same(" + m.PreviousName + ")"
		}

		return "renamed(" + strings.Join(m.Fields, ",") + " <- " + m.PreviousName + ")"
	case MappingDeletedField:
		return "deleted(" + m.PreviousName + ")"
	default:
		return m.Kind.String() + "(" + strings.Join(m.Fields, ",") + ")"
	}
}
