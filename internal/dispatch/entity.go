package dispatch

import (
	"fmt"
	"hash/fnv"
	"strings"

	"pds-generator/internal/schema"
)

// SizePolicy selects how the entity table size is chosen.
type SizePolicy int

const (
	// SizePrimeAboveDouble uses the first prime >= max(2n, 20).
	SizePrimeAboveDouble SizePolicy = iota
	// SizeFixed uses a fixed size, 37 unless configured otherwise.
	SizeFixed
)

// DefaultFixedSize is the legacy fixed entity table size.
const DefaultFixedSize = 37

const minPrimeSize = 20

func (p SizePolicy) String() string {
	switch p {
	case SizePrimeAboveDouble:
		return "prime"
	case SizeFixed:
		return "fixed"
	default:
		return fmt.Sprintf("SizePolicy(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p SizePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler ("prime" or "fixed").
func (p *SizePolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "prime", "":
		*p = SizePrimeAboveDouble
	case "fixed":
		*p = SizeFixed
	default:
		return fmt.Errorf("%w: unknown size policy %q", ErrInvalidConfig, text)
	}

	return nil
}

// EntityTableConfig configures the entity table size.
type EntityTableConfig struct {
	Policy    SizePolicy `mapstructure:"size_policy"`
	FixedSize int        `mapstructure:"fixed_size"`
}

// DefaultEntityTableConfig returns the prime policy.
func DefaultEntityTableConfig() EntityTableConfig {
	return EntityTableConfig{Policy: SizePrimeAboveDouble, FixedSize: DefaultFixedSize}
}

// FNV1a is the 64-bit FNV-1a hash of s.
func FNV1a(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))

	return h.Sum64()
}

// PrimeAtLeast returns the smallest prime >= n, by trial division.
func PrimeAtLeast(n int) int {
	if n <= 2 {
		return 2
	}

	for c := n; ; c++ {
		if isPrime(c) {
			return c
		}
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}

	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}

	return true
}

// TableSize returns the entity table size for n entities.
func (cfg EntityTableConfig) TableSize(n int) (int, error) {
	switch cfg.Policy {
	case SizePrimeAboveDouble:
		return PrimeAtLeast(max(2*n, minPrimeSize)), nil
	case SizeFixed:
		size := cfg.FixedSize
		if size == 0 {
			size = DefaultFixedSize
		}

		if size <= n {
			return 0, fmt.Errorf("%w: fixed size %d for %d entities", ErrTableTooSmall, size, n)
		}

		return size, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidConfig, cfg.Policy)
	}
}

// EntitySlot is an occupied slot of an EntityTable.
type EntitySlot struct {
	Slot       int
	TypeString string
	Item       *schema.Item
}

// EntityTable is the entity dispatch table of a package.
type EntityTable struct {
	cfg   EntityTableConfig
	slots []*EntitySlot
	count int
}

// BuildEntityTable slots every defining entity of pkg, keyed by its type
// string, in declaration order.
func BuildEntityTable(pkg *schema.Package, cfg EntityTableConfig) (*EntityTable, error) {
	entities := pkg.Entities()

	size, err := cfg.TableSize(len(entities))
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", pkg.Name(), err)
	}

	t := &EntityTable{cfg: cfg, slots: make([]*EntitySlot, size)}

	for _, it := range entities {
		name := it.TypeString()
		if _, _, ok := t.Lookup(name); ok {
			return nil, fmt.Errorf("package %s: duplicate entity type %s", pkg.Name(), name)
		}

		h := int(FNV1a(name) % uint64(size))
		for t.slots[h] != nil {
			h = (h + 1) % size
		}

		t.slots[h] = &EntitySlot{Slot: h, TypeString: name, Item: it}
		t.count++
	}

	return t, nil
}

// Lookup returns the slot and item of an entity type string, confirming the
// candidate by exact name comparison.
func (t *EntityTable) Lookup(typeString string) (int, *schema.Item, bool) {
	size := len(t.slots)
	h := int(FNV1a(typeString) % uint64(size))

	for range size {
		s := t.slots[h]
		if s == nil {
			break
		}

		if s.TypeString == typeString {
			return h, s.Item, true
		}

		h = (h + 1) % size
	}

	return -1, nil, false
}

// Size returns the number of slots.
func (t *EntityTable) Size() int { return len(t.slots) }

// Len returns the number of entities.
func (t *EntityTable) Len() int { return t.count }

// Entries returns the occupied slots in slot order.
func (t *EntityTable) Entries() []EntitySlot {
	out := make([]EntitySlot, 0, t.count)

	for _, s := range t.slots {
		if s != nil {
			out = append(out, *s)
		}
	}

	return out
}
