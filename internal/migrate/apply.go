package migrate

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"pds-generator/internal/instance"
)

var (
	// ErrCustomNotRegistered is returned when a plan reaches a custom step
	// with no conversion registered under its id.
	ErrCustomNotRegistered = errors.New("custom conversion not registered")
	// ErrPlanMismatch is returned when the objects do not instantiate the
	// items of the plan.
	ErrPlanMismatch = errors.New("objects do not match plan")
)

// CustomFunc converts the fields a custom mapping covers from src to dst.
type CustomFunc func(dst, src *instance.Object) error

type customPair struct {
	toPrevious   CustomFunc
	fromPrevious CustomFunc
}

// Executor applies plans to instance objects.
type Executor struct {
	log *zap.Logger

	mu     sync.RWMutex
	custom map[string]customPair
}

// NewExecutor returns an executor logging to log; nil disables logging.
func NewExecutor(log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}

	return &Executor{log: log.Named("migrate"), custom: make(map[string]customPair)}
}

// RegisterCustom registers the conversions of the custom mapping id, as
// returned by CustomID.
func (e *Executor) RegisterCustom(id string, toPrevious, fromPrevious CustomFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.custom[id] = customPair{toPrevious: toPrevious, fromPrevious: fromPrevious}
}

// ToPrevious converts src, an instance of plan.Item, into dst, an instance
// of plan.Previous. dst is cleared first.
func (e *Executor) ToPrevious(plan *Plan, dst, src *instance.Object) error {
	if src.Item() != plan.Item || dst.Item() != plan.Previous {
		return fmt.Errorf("%w: %s to %s with %s to %s", ErrPlanMismatch,
			src.Item().TypeString(), dst.Item().TypeString(), plan.Item.TypeString(), plan.Previous.TypeString())
	}

	return e.apply(plan, plan.ToPrevious, dst, src, true)
}

// FromPrevious converts src, an instance of plan.Previous, into dst, an
// instance of plan.Item. dst is cleared first.
func (e *Executor) FromPrevious(plan *Plan, dst, src *instance.Object) error {
	if src.Item() != plan.Previous || dst.Item() != plan.Item {
		return fmt.Errorf("%w: %s to %s with %s to %s", ErrPlanMismatch,
			src.Item().TypeString(), dst.Item().TypeString(), plan.Previous.TypeString(), plan.Item.TypeString())
	}

	return e.apply(plan, plan.FromPrevious, dst, src, false)
}

func (e *Executor) apply(plan *Plan, steps []Step, dst, src *instance.Object, toPrevious bool) error {
	if err := dst.Clear(); err != nil {
		return err
	}

	for _, s := range steps {
		if err := e.step(s, dst, src, toPrevious); err != nil {
			return fmt.Errorf("%s: %s: %w", plan.Item.TypeString(), s, err)
		}
	}

	e.log.Debug("migrated",
		zap.String("from", src.Item().TypeString()),
		zap.String("to", dst.Item().TypeString()),
		zap.Int("steps", len(steps)))

	return nil
}

func (e *Executor) step(s Step, dst, src *instance.Object, toPrevious bool) error {
	switch s.Kind {
	case StepAssign:
		return dst.CopyField(s.Field.Name(), src, s.Source.Name())

	case StepClear:
		return dst.ClearField(s.Field.Name())

	case StepCopyItem:
		items, err := src.Items(s.Source.Name())
		if err != nil {
			return err
		}

		out := &instance.Items{Present: items.Present, Index: slices.Clone(items.Index)}

		if items.Values != nil {
			out.Values = make([]*instance.Object, len(items.Values))
		}

		for i, v := range items.Values {
			if out.Values[i], err = e.migrateItem(s.Chain, v, toPrevious); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}

		return dst.SetItems(s.Field.Name(), out)

	case StepCustom:
		e.mu.RLock()
		pair, ok := e.custom[s.ID]
		e.mu.RUnlock()

		f := pair.fromPrevious
		if toPrevious {
			f = pair.toPrevious
		}

		if !ok || f == nil {
			return fmt.Errorf("%w: %s", ErrCustomNotRegistered, s.ID)
		}

		return f(dst, src)

	default:
		return fmt.Errorf("unknown step kind %s", s.Kind)
	}
}

// migrateItem walks chain from v's definition to the other side.
func (e *Executor) migrateItem(chain []*Plan, v *instance.Object, toPrevious bool) (*instance.Object, error) {
	if len(chain) == 0 {
		return v.Clone()
	}

	cur := v

	if toPrevious {
		for _, p := range chain {
			next, err := instance.New(p.Previous)
			if err != nil {
				return nil, err
			}

			if err := e.ToPrevious(p, next, cur); err != nil {
				return nil, err
			}

			cur = next
		}

		return cur, nil
	}

	for _, p := range slices.Backward(chain) {
		next, err := instance.New(p.Item)
		if err != nil {
			return nil, err
		}

		if err := e.FromPrevious(p, next, cur); err != nil {
			return nil, err
		}

		cur = next
	}

	return cur, nil
}
