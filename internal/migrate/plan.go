package migrate

//go:generate go tool stringer -type=StepKind -trimprefix=Step -output=step_string.go

import (
	"errors"
	"fmt"
	"strings"

	"pds-generator/internal/schema"
)

var (
	// ErrNotModified is returned when planning an item that is not Modified.
	ErrNotModified = errors.New("item is not modified")
	// ErrIncompatibleFields is returned when a renamed field changes its type
	// or container in a way no step can convert.
	ErrIncompatibleFields = errors.New("incompatible fields")
)

// StepKind is the operation a Step performs.
type StepKind int

const (
	// StepAssign copies a base type value between two fields.
	StepAssign StepKind = iota + 1
	// StepCopyItem copies an item-typed field element by element.
	StepCopyItem
	// StepClear resets a field to its default.
	StepClear
	// StepCustom runs the opaque conversion of a custom mapping.
	StepCustom
)

// Step is one operation of a migration in one direction. Field belongs to
// the destination item, Source to the source item.
type Step struct {
	Kind    StepKind
	Field   *schema.Field
	Source  *schema.Field
	Mapping schema.Mapping
	// Chain migrates the elements of a StepCopyItem whose item definition
	// differs on both sides. It is ordered from the newest definition to the
	// oldest; empty means both sides share the definition.
	Chain []*Plan
	// Code and ID are set for StepCustom.
	Code string
	ID   string
}

func (s Step) String() string {
	switch s.Kind {
	case StepAssign, StepCopyItem:
		return fmt.Sprintf("%s %s <- %s", s.Kind, s.Field.Name(), s.Source.Name())
	case StepClear:
		return fmt.Sprintf("%s %s", s.Kind, s.Field.Name())
	default:
		return fmt.Sprintf("%s %s", s.Kind, s.ID)
	}
}

// Plan is the migration between a Modified item and its previous definition.
type Plan struct {
	Item     *schema.Item
	Previous *schema.Item

	// ToPrevious converts an Item value into a Previous value.
	ToPrevious []Step
	// FromPrevious converts a Previous value into an Item value.
	FromPrevious []Step
}

// CustomIDs returns the ids of the custom steps, in mapping order.
func (p *Plan) CustomIDs() []string {
	var ids []string

	for _, s := range p.FromPrevious {
		if s.Kind == StepCustom {
			ids = append(ids, s.ID)
		}
	}

	return ids
}

// CustomID identifies the custom mapping of item covering fields.
func CustomID(item *schema.Item, fields []string) string {
	return item.TypeString() + "#" + strings.Join(fields, ",")
}

// PlanMigration plans the migration of a Modified item, including the plans
// of nested Modified items its renamed fields refer to.
func PlanMigration(item *schema.Item) (*Plan, error) {
	return newPlanner().plan(item)
}

// PlanPackage plans every Modified item of pkg in declaration order.
func PlanPackage(pkg *schema.Package) ([]*Plan, error) {
	pl := newPlanner()

	modified := pkg.ModifiedItems()
	plans := make([]*Plan, 0, len(modified))

	for _, it := range modified {
		p, err := pl.plan(it)
		if err != nil {
			return nil, err
		}

		plans = append(plans, p)
	}

	return plans, nil
}

// planner shares plans between items so self-referencing items terminate.
type planner struct {
	memo map[*schema.Item]*Plan
}

func newPlanner() *planner {
	return &planner{memo: make(map[*schema.Item]*Plan)}
}

func (pl *planner) plan(item *schema.Item) (*Plan, error) {
	if p, ok := pl.memo[item]; ok {
		return p, nil
	}

	prev := item.PreviousVersion()
	if item.Lifecycle() != schema.LifecycleModified || prev == nil {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotModified, item.TypeString(), item.Lifecycle())
	}

	p := &Plan{Item: item, Previous: prev}
	pl.memo[item] = p

	for _, m := range item.Mappings() {
		if err := pl.addMapping(p, m); err != nil {
			delete(pl.memo, item)
			return nil, fmt.Errorf("%s, mapping %s: %w", item.TypeString(), m, err)
		}
	}

	return p, nil
}

func (pl *planner) addMapping(p *Plan, m schema.Mapping) error {
	switch m.Kind {
	case schema.MappingNewField:
		f, ok := p.Item.FindField(m.Fields[0])
		if !ok {
			return fmt.Errorf("%w: no field %s", schema.ErrUnknownMappedField, m.Fields[0])
		}

		p.FromPrevious = append(p.FromPrevious, Step{Kind: StepClear, Field: f, Mapping: m})

	case schema.MappingDeletedField:

	case schema.MappingRenamedField:
		cur, ok := p.Item.FindField(m.Fields[0])
		if !ok {
			return fmt.Errorf("%w: no field %s", schema.ErrUnknownMappedField, m.Fields[0])
		}

		old, ok := p.Previous.FindField(m.PreviousName)
		if !ok {
			return fmt.Errorf("%w: no field %s", schema.ErrUnknownPreviousField, m.PreviousName)
		}

		kind, chain, err := pl.transfer(cur, old)
		if err != nil {
			return err
		}

		p.ToPrevious = append(p.ToPrevious, Step{Kind: kind, Field: old, Source: cur, Mapping: m, Chain: chain})
		p.FromPrevious = append(p.FromPrevious, Step{Kind: kind, Field: cur, Source: old, Mapping: m, Chain: chain})

	case schema.MappingCustom:
		id := CustomID(p.Item, m.Fields)

		p.ToPrevious = append(p.ToPrevious, Step{Kind: StepCustom, Mapping: m, Code: m.ToPrevious, ID: id})
		p.FromPrevious = append(p.FromPrevious, Step{Kind: StepCustom, Mapping: m, Code: m.FromPrevious, ID: id})

	default:
		return fmt.Errorf("unknown mapping kind %d", m.Kind)
	}

	return nil
}

// transfer decides how the value of cur moves to old and back.
func (pl *planner) transfer(cur, old *schema.Field) (StepKind, []*Plan, error) {
	if cur.Container() != old.Container() {
		return 0, nil, fmt.Errorf("%w: %s is %s, previous %s is %s",
			ErrIncompatibleFields, cur.Name(), cur.TypeString(), old.Name(), old.TypeString())
	}

	if cur.IsBuiltIn() || old.IsBuiltIn() {
		if cur.BuiltIn() != old.BuiltIn() {
			return 0, nil, fmt.Errorf("%w: %s is %s, previous %s is %s",
				ErrIncompatibleFields, cur.Name(), cur.TypeName(), old.Name(), old.TypeName())
		}

		return StepAssign, nil, nil
	}

	ct, curIsTemplate := cur.Template()
	ot, oldIsTemplate := old.Template()

	if curIsTemplate || oldIsTemplate {
		if !curIsTemplate || !oldIsTemplate || !sameTemplateType(cur, ct, old, ot) {
			return 0, nil, fmt.Errorf("%w: %s and previous %s are not the same template type",
				ErrIncompatibleFields, cur.Name(), old.Name())
		}

		return StepAssign, nil, nil
	}

	switch {
	case cur.Ref() == nil && old.Ref() == nil:
		cat := cur.Item().Package().Catalog()

		a, _ := cat.DataTypeID(cur.TypeName())
		b, _ := cat.DataTypeID(old.TypeName())

		if a != b {
			return 0, nil, fmt.Errorf("%w: %s is %s, previous %s is %s",
				ErrIncompatibleFields, cur.Name(), cur.TypeName(), old.Name(), old.TypeName())
		}

		return StepAssign, nil, nil

	case cur.Ref() == nil || old.Ref() == nil:
		return 0, nil, fmt.Errorf("%w: %s is %s, previous %s is %s",
			ErrIncompatibleFields, cur.Name(), cur.TypeName(), old.Name(), old.TypeName())
	}

	target := old.Ref().Definition()

	var chain []*Plan

	for it := cur.Ref().Definition(); it != target; it = it.PreviousVersion() {
		if it == nil || it.Lifecycle() != schema.LifecycleModified {
			return 0, nil, fmt.Errorf("%w: %s does not derive from %s",
				ErrIncompatibleFields, cur.Ref().TypeString(), target.TypeString())
		}

		p, err := pl.plan(it)
		if err != nil {
			return 0, nil, err
		}

		chain = append(chain, p)
	}

	return StepCopyItem, chain, nil
}

// sameTemplateType reports whether two template fields have the same Go
// type: the same generic over the same base types and item definitions.
// Flags only change validation and may differ.
func sameTemplateType(cur *schema.Field, ct schema.Template, old *schema.Field, ot schema.Template) bool {
	if ct.Kind() != ot.Kind() || len(ct.Types) != len(ot.Types) {
		return false
	}

	cat := cur.Item().Package().Catalog()

	for i := range ct.Types {
		a, b := ct.Types[i], ot.Types[i]

		aID, aBase := cat.DataTypeID(a)
		bID, bBase := cat.DataTypeID(b)

		switch {
		case aBase || bBase:
			if !aBase || !bBase || aID != bID {
				return false
			}
		case a == schema.BuiltInVarying || b == schema.BuiltInVarying:
			if a != b {
				return false
			}
		default:
			ai, aok := cur.Item().Version().FindItem(a)
			bi, bok := old.Item().Version().FindItem(b)

			if !aok || !bok || ai.Definition() != bi.Definition() {
				return false
			}
		}
	}

	return true
}
