package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by DefinitionError. Match them with errors.Is.
var (
	ErrItemNotCarriedForward  = errors.New("item not carried forward")
	ErrKindMismatch           = errors.New("item/entity kind mismatch")
	ErrNoPreviousDefinition   = errors.New("no previous definition")
	ErrFieldNotMapped         = errors.New("field not mapped")
	ErrUnknownMappedField     = errors.New("mapping names an undeclared field")
	ErrUnknownPreviousField   = errors.New("mapping names a field missing from the previous definition")
	ErrIndexedRequiresVector  = errors.New("indexed requires vector")
	ErrDuplicateItem          = errors.New("duplicate item")
	ErrDuplicateField         = errors.New("duplicate field")
	ErrUnknownFieldType       = errors.New("unknown field type")
	ErrUnknownValidationField = errors.New("validation names an unknown field")
	ErrInvalidValidation      = errors.New("invalid validation rule")
	ErrDuplicateVersion       = errors.New("duplicate version")
	ErrUnknownPreviousVersion = errors.New("previous version not in package")
	ErrItemShared             = errors.New("item belongs to another version")
	ErrMappingsOnUnmodified   = errors.New("mappings on an item that is not modified")
	ErrInvalidName            = errors.New("invalid name")
	ErrRecursiveItem          = errors.New("item contains itself by value")
	ErrUnknownDependency      = errors.New("unknown dependency")
	ErrInvalidTemplate        = errors.New("invalid template")
)

// Error codes carried by DefinitionError.
const (
	CodeItemNotCarriedForward  = "item_not_carried_forward"
	CodeKindMismatch           = "kind_mismatch"
	CodeNoPreviousDefinition   = "no_previous_definition"
	CodeFieldNotMapped         = "field_not_mapped"
	CodeUnknownMappedField     = "unknown_mapped_field"
	CodeUnknownPreviousField   = "unknown_previous_field"
	CodeIndexedRequiresVector  = "indexed_requires_vector"
	CodeDuplicateItem          = "duplicate_item"
	CodeDuplicateField         = "duplicate_field"
	CodeUnknownFieldType       = "unknown_field_type"
	CodeUnknownValidationField = "unknown_validation_field"
	CodeInvalidValidation      = "invalid_validation"
	CodeDuplicateVersion       = "duplicate_version"
	CodeUnknownPreviousVersion = "unknown_previous_version"
	CodeItemShared             = "item_shared"
	CodeMappingsOnUnmodified   = "mappings_on_unmodified"
	CodeInvalidName            = "invalid_name"
	CodeRecursiveItem          = "recursive_item"
	CodeUnknownDependency      = "unknown_dependency"
	CodeInvalidTemplate        = "invalid_template"
)

// DefinitionError is a schema definition error. It aborts package
// construction; there is no partially built package.
type DefinitionError struct {
	Code    string
	Package string
	Version string
	Item    string
	Field   string
	Msg     string
	Err     error
}

func (e *DefinitionError) Error() string {
	var loc []string
	if e.Package != "" {
		loc = append(loc, "package "+e.Package)
	}

	if e.Version != "" {
		loc = append(loc, "version "+e.Version)
	}

	if e.Item != "" {
		loc = append(loc, "item "+e.Item)
	}

	if e.Field != "" {
		loc = append(loc, "field "+e.Field)
	}

	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	msg = fmt.Sprintf("[%s] %s", e.Code, msg)

	if len(loc) == 0 {
		return msg
	}

	return strings.Join(loc, ", ") + ": " + msg
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
