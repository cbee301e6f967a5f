package pds

import (
	"fmt"
	"hash/fnv"

	"go.uber.org/zap"
)

// Entity is an item with a global type identity.
type Entity interface {
	Object
	EntityTypeString() string
}

// EntityPtr constrains a pointer to a generated entity type T.
type EntityPtr[T any] interface {
	ItemPtr[T]
	EntityTypeString() string
}

// EntityRecord dispatches the operations of one entity type.
type EntityRecord struct {
	TypeString string
	New        func() Entity
	Clear      func(e Entity) error
	Equals     func(a, b Entity) (bool, error)
	Write      func(e Entity, w *Writer) error
	Read       func(e Entity, r *Reader) error
	Validate   func(e Entity, v *Validator) error
}

// NewEntityRecord returns the record of entity type T.
func NewEntityRecord[T any, P EntityPtr[T]](typeString string) *EntityRecord {
	as := func(e Entity) (P, error) {
		if e == nil {
			return nil, ErrNilData
		}

		p, ok := e.(P)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a %s", ErrWrongData, e.EntityTypeString(), typeString)
		}

		if (*T)(p) == nil {
			return nil, ErrNilData
		}

		return p, nil
	}

	return &EntityRecord{
		TypeString: typeString,
		New: func() Entity {
			return P(new(T))
		},
		Clear: func(e Entity) error {
			p, err := as(e)
			if err != nil {
				return err
			}

			p.Clear()

			return nil
		},
		Equals: func(a, b Entity) (bool, error) {
			pa, err := as(a)
			if err != nil {
				return false, err
			}

			pb, err := as(b)
			if err != nil {
				return false, err
			}

			return pa.Equals((*T)(pb)), nil
		},
		Write: func(e Entity, w *Writer) error {
			p, err := as(e)
			if err != nil {
				return err
			}

			return p.Write(w)
		},
		Read: func(e Entity, r *Reader) error {
			p, err := as(e)
			if err != nil {
				return err
			}

			return p.Read(r)
		},
		Validate: func(e Entity, v *Validator) error {
			p, err := as(e)
			if err != nil {
				return err
			}

			return p.Validate(v)
		},
	}
}

// EntityHash is the 64-bit FNV-1a hash of an entity type string.
func EntityHash(typeString string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(typeString))

	return h.Sum64()
}

// EntityTable is a fixed open-addressing table of entity records, slotted at
// generation time by EntityHash modulo the table size with linear probing.
type EntityTable struct {
	slots []*EntityRecord
}

// NewEntityTable wraps precomputed slots.
func NewEntityTable(slots []*EntityRecord) *EntityTable {
	return &EntityTable{slots: slots}
}

// Len returns the number of slots.
func (t *EntityTable) Len() int { return len(t.slots) }

// Lookup returns the record of typeString, or nil.
func (t *EntityTable) Lookup(typeString string) *EntityRecord {
	n := len(t.slots)
	if n == 0 {
		return nil
	}

	h := int(EntityHash(typeString) % uint64(n))

	for range n {
		rec := t.slots[h]
		if rec == nil {
			return nil
		}

		if rec.TypeString == typeString {
			return rec
		}

		h = (h + 1) % n
	}

	return nil
}

// PackageRecord exposes the entity table of one generated package.
type PackageRecord struct {
	name  string
	table *EntityTable
}

// NewPackageRecord returns the record of package name.
func NewPackageRecord(name string, table *EntityTable) *PackageRecord {
	return &PackageRecord{name: name, table: table}
}

func (p *PackageRecord) Name() string { return p.name }

// Lookup returns the record of typeString.
func (p *PackageRecord) Lookup(typeString string) (*EntityRecord, bool) {
	rec := p.table.Lookup(typeString)
	return rec, rec != nil
}

func (p *PackageRecord) record(op string, e Entity) (*EntityRecord, error) {
	if e == nil {
		Logger().Error("nil entity", zap.String("package", p.name), zap.String("op", op))
		return nil, ErrNilData
	}

	typeString := e.EntityTypeString()

	rec := p.table.Lookup(typeString)
	if rec == nil {
		Logger().Error("unknown entity type",
			zap.String("package", p.name), zap.String("op", op), zap.String("type", typeString))

		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, typeString)
	}

	return rec, nil
}

// New constructs a zero entity of typeString.
func (p *PackageRecord) New(typeString string) (Entity, error) {
	rec := p.table.Lookup(typeString)
	if rec == nil {
		Logger().Error("unknown entity type",
			zap.String("package", p.name), zap.String("op", "new"), zap.String("type", typeString))

		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, typeString)
	}

	return rec.New(), nil
}

func (p *PackageRecord) Clear(e Entity) error {
	rec, err := p.record("clear", e)
	if err != nil {
		return err
	}

	return rec.Clear(e)
}

// Equals compares two entities; entities of different types are unequal.
func (p *PackageRecord) Equals(a, b Entity) (bool, error) {
	rec, err := p.record("equals", a)
	if err != nil {
		return false, err
	}

	if b == nil {
		return false, ErrNilData
	}

	if b.EntityTypeString() != rec.TypeString {
		return false, nil
	}

	return rec.Equals(a, b)
}

func (p *PackageRecord) Write(e Entity, w *Writer) error {
	rec, err := p.record("write", e)
	if err != nil {
		return err
	}

	return rec.Write(e, w)
}

func (p *PackageRecord) Read(e Entity, r *Reader) error {
	rec, err := p.record("read", e)
	if err != nil {
		return err
	}

	return rec.Read(e, r)
}

func (p *PackageRecord) Validate(e Entity, v *Validator) error {
	rec, err := p.record("validate", e)
	if err != nil {
		return err
	}

	return rec.Validate(e, v)
}

// Registry dispatches over the entity tables of several packages.
type Registry []*PackageRecord

func (reg Registry) find(typeString string) (*EntityRecord, bool) {
	for _, p := range reg {
		if rec, ok := p.Lookup(typeString); ok {
			return rec, true
		}
	}

	return nil, false
}

func (reg Registry) record(op string, e Entity) (*EntityRecord, error) {
	if e == nil {
		Logger().Error("nil entity", zap.String("op", op))
		return nil, ErrNilData
	}

	rec, ok := reg.find(e.EntityTypeString())
	if !ok {
		Logger().Error("entity not registered with any package",
			zap.String("op", op), zap.String("type", e.EntityTypeString()))

		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, e.EntityTypeString())
	}

	return rec, nil
}

// New constructs a zero entity of typeString from the first package that
// declares it.
func (reg Registry) New(typeString string) (Entity, error) {
	rec, ok := reg.find(typeString)
	if !ok {
		Logger().Error("entity not registered with any package", zap.String("op", "new"), zap.String("type", typeString))
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, typeString)
	}

	return rec.New(), nil
}

func (reg Registry) Write(e Entity, w *Writer) error {
	rec, err := reg.record("write", e)
	if err != nil {
		return err
	}

	return rec.Write(e, w)
}

func (reg Registry) Read(e Entity, r *Reader) error {
	rec, err := reg.record("read", e)
	if err != nil {
		return err
	}

	return rec.Read(e, r)
}

func (reg Registry) Validate(e Entity, v *Validator) error {
	rec, err := reg.record("validate", e)
	if err != nil {
		return err
	}

	return rec.Validate(e, v)
}
