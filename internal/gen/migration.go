package gen

import (
	"fmt"
	"strings"

	"pds-generator/internal/catalog"
	"pds-generator/internal/migrate"
	"pds-generator/internal/schema"
)

// migrationData holds the statements of the FromPrevious and ToPrevious
// methods of a Modified item.
type migrationData struct {
	Previous        string
	PreviousVersion string
	From            []string
	To              []string
	FromErr         bool
	ToErr           bool
}

type direction int

const (
	fromPrevious direction = iota
	toPrevious
)

func (fc *fileContext) migration(p *migrate.Plan) (*migrationData, error) {
	m := &migrationData{
		Previous:        fc.qualify(p.Previous),
		PreviousVersion: p.Previous.Version().Name(),
	}

	for _, s := range p.FromPrevious {
		code, usesErr, err := fc.step(s, fromPrevious)
		if err != nil {
			return nil, fmt.Errorf("from previous, %s: %w", s, err)
		}

		m.From = append(m.From, code)
		m.FromErr = m.FromErr || usesErr
	}

	for _, s := range p.ToPrevious {
		code, usesErr, err := fc.step(s, toPrevious)
		if err != nil {
			return nil, fmt.Errorf("to previous, %s: %w", s, err)
		}

		m.To = append(m.To, code)
		m.ToErr = m.ToErr || usesErr
	}

	return m, nil
}

// step renders one migration step. usesErr reports whether the code assigns
// the err variable declared by the method.
func (fc *fileContext) step(s migrate.Step, dir direction) (code string, usesErr bool, err error) {
	switch s.Kind {
	case migrate.StepClear:
		return fmt.Sprintf("\t// %s starts cleared.", s.Field.Name()), false, nil

	case migrate.StepCustom:
		if strings.TrimSpace(s.Code) == "" {
			return fmt.Sprintf("\t// Custom mapping %s has no conversion in this direction.", s.ID), false, nil
		}

		return s.Code, false, nil

	case migrate.StepAssign:
		ft, err := fc.fieldType(s.Field)
		if err != nil {
			return "", false, err
		}

		return fmt.Sprintf("\tdst.%s = %s", s.Field.Name(), ft.clone("src."+s.Source.Name())), false, nil

	case migrate.StepCopyItem:
		ft, err := fc.fieldType(s.Field)
		if err != nil {
			return "", false, err
		}

		if len(s.Chain) == 0 {
			return fmt.Sprintf("\tdst.%s = %s", s.Field.Name(), ft.clone("src."+s.Source.Name())), false, nil
		}

		helper := fc.chainHelper(s.Chain, dir)
		dst, src := "dst."+s.Field.Name(), "src."+s.Source.Name()

		if ft.kind == catalog.ContainerNone {
			return fmt.Sprintf("\tif err := %s(&%s, &%s); err != nil {\n\t\treturn fmt.Errorf(%q, err)\n\t}",
				helper, dst, src, s.Field.Name()+": %w"), false, nil
		}

		return fmt.Sprintf("\tif %s, err = pds.%s(%s, %s); err != nil {\n\t\treturn fmt.Errorf(%q, err)\n\t}",
			dst, converters[ft.kind], src, helper, s.Field.Name()+": %w"), true, nil

	default:
		return "", false, fmt.Errorf("unknown step kind %s", s.Kind)
	}
}

// chainHelper adds a function converting one element along chain and
// returns its name. chain runs from the newest definition to the oldest.
func (fc *fileContext) chainHelper(chain []*migrate.Plan, dir direction) string {
	types := make([]*schema.Item, 0, len(chain)+1)
	for _, p := range chain {
		types = append(types, p.Item)
	}

	types = append(types, chain[len(chain)-1].Previous)

	newest, oldest := types[0], types[len(types)-1]
	stem := lowerIdent(newest.Name()) + newest.Version().Name()

	var sb strings.Builder

	if dir == fromPrevious {
		name := stem + "From" + oldest.Version().Name()
		if _, ok := fc.helpers[name]; ok {
			return name
		}

		fmt.Fprintf(&sb, "func %s(dst *%s, src *%s) error {\n", name, fc.qualify(newest), fc.qualify(oldest))

		arg := "src"

		for i := len(types) - 2; i >= 1; i-- {
			v := fmt.Sprintf("m%d", i)
			fmt.Fprintf(&sb, "\tvar %s %s\n\tif err := %s.FromPrevious(%s); err != nil {\n\t\treturn err\n\t}\n\n",
				v, fc.qualify(types[i]), v, arg)
			arg = "&" + v
		}

		fmt.Fprintf(&sb, "\treturn dst.FromPrevious(%s)\n}", arg)
		fc.addHelper(name, sb.String())

		return name
	}

	name := stem + "To" + oldest.Version().Name()
	if _, ok := fc.helpers[name]; ok {
		return name
	}

	fmt.Fprintf(&sb, "func %s(dst *%s, src *%s) error {\n", name, fc.qualify(oldest), fc.qualify(newest))

	recv := "src"

	for i := 1; i < len(types)-1; i++ {
		v := fmt.Sprintf("m%d", i)
		fmt.Fprintf(&sb, "\tvar %s %s\n\tif err := %s.ToPrevious(&%s); err != nil {\n\t\treturn err\n\t}\n\n",
			v, fc.qualify(types[i]), recv, v)
		recv = v
	}

	fmt.Fprintf(&sb, "\treturn %s.ToPrevious(dst)\n}", recv)
	fc.addHelper(name, sb.String())

	return name
}
