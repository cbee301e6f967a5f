package dispatch

import (
	"errors"
	"fmt"

	"pds-generator/internal/catalog"
)

var (
	// ErrTableTooSmall is returned when a table cannot hold its keys with at
	// least one empty slot.
	ErrTableTooSmall = errors.New("dispatch table too small")
	// ErrInvalidConfig is returned for non-positive sizes or multipliers.
	ErrInvalidConfig = errors.New("invalid dispatch table config")
)

// ValueTableConfig holds the size and hash multipliers of the value table.
type ValueTableConfig struct {
	Size          int `mapstructure:"size"`
	DataTypeMult  int `mapstructure:"data_type_mult"`
	ContainerMult int `mapstructure:"container_mult"`
}

// DefaultValueTableConfig returns the sizing used by the runtime library.
func DefaultValueTableConfig() ValueTableConfig {
	return ValueTableConfig{
		Size:          577,
		DataTypeMult:  109,
		ContainerMult: 991,
	}
}

// ValueSlot is an occupied slot of a ValueTable.
type ValueSlot struct {
	Slot  int
	Combo catalog.Combo
}

// ValueTable is the value dispatch table.
type ValueTable struct {
	cfg   ValueTableConfig
	slots []*catalog.Combo
	count int
}

// BuildValueTable inserts every combination of cat in enumeration order.
func BuildValueTable(cat *catalog.Catalog, cfg ValueTableConfig) (*ValueTable, error) {
	if cfg.Size <= 0 || cfg.DataTypeMult <= 0 || cfg.ContainerMult <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidConfig, cfg)
	}

	combos := cat.Combos()
	if cfg.Size <= len(combos) {
		return nil, fmt.Errorf("%w: %d slots for %d combinations", ErrTableTooSmall, cfg.Size, len(combos))
	}

	t := &ValueTable{cfg: cfg, slots: make([]*catalog.Combo, cfg.Size)}

	for i := range combos {
		c := &combos[i]
		h := t.Hash(c.DataTypeID, c.Container)

		for t.slots[h] != nil {
			h = (h + 1) % cfg.Size
		}

		t.slots[h] = c
		t.count++
	}

	return t, nil
}

// Hash returns the home slot of a key.
func (t *ValueTable) Hash(dataTypeID uint16, k catalog.ContainerKind) int {
	return (int(dataTypeID)*t.cfg.DataTypeMult + int(k.ID())*t.cfg.ContainerMult) % t.cfg.Size
}

// Lookup searches the table for a key. It returns the combination and its slot.
func (t *ValueTable) Lookup(dataTypeID uint16, k catalog.ContainerKind) (catalog.Combo, int, bool) {
	h := t.Hash(dataTypeID, k)

	for range t.cfg.Size {
		c := t.slots[h]
		if c == nil {
			break
		}

		if c.DataTypeID == dataTypeID && c.Container == k {
			return *c, h, true
		}

		h = (h + 1) % t.cfg.Size
	}

	return catalog.Combo{}, -1, false
}

// Config returns the table configuration.
func (t *ValueTable) Config() ValueTableConfig { return t.cfg }

// Size returns the number of slots.
func (t *ValueTable) Size() int { return t.cfg.Size }

// Len returns the number of occupied slots.
func (t *ValueTable) Len() int { return t.count }

// Entries returns the occupied slots in slot order.
func (t *ValueTable) Entries() []ValueSlot {
	out := make([]ValueSlot, 0, t.count)

	for i, c := range t.slots {
		if c != nil {
			out = append(out, ValueSlot{Slot: i, Combo: *c})
		}
	}

	return out
}
