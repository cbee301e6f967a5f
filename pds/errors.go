package pds

import "errors"

// Stream errors.
var (
	ErrKeyTooLong      = errors.New("pds: key too long")
	ErrSectionActive   = errors.New("pds: a section is still open")
	ErrNotActive       = errors.New("pds: section is not open")
	ErrArrayIndex      = errors.New("pds: sections array index out of order")
	ErrArrayIncomplete = errors.New("pds: sections array incomplete")
	ErrKeyMismatch     = errors.New("pds: unexpected key")
	ErrTypeMismatch    = errors.New("pds: unexpected value type")
	ErrNullValue       = errors.New("pds: value is absent")
	ErrNullSection     = errors.New("pds: section is null")
	ErrCorrupt         = errors.New("pds: corrupt stream")
)

// Dispatch errors.
var (
	ErrUnknownType   = errors.New("pds: unknown data type/container type pair")
	ErrUnknownEntity = errors.New("pds: unknown entity type")
	ErrNilData       = errors.New("pds: nil data")
	ErrWrongData     = errors.New("pds: data does not match the dispatch record")
	ErrNotVector     = errors.New("pds: not a vector container")
	ErrNotIndexed    = errors.New("pds: not an indexed container")
)

// Built-in item errors.
var (
	ErrNotInitialized = errors.New("pds: varying value has no type")
	ErrDuplicateKey   = errors.New("pds: duplicate key")
)
