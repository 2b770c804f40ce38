package sequencing

import (
	"errors"
	"fmt"

	"github.com/kilianp07/jobseq/core/factory"
)

// ErrUnknownStrategy is returned for strategy names without a registered factory.
var ErrUnknownStrategy = errors.New("unknown sequencing strategy")

var registry = factory.NewRegistry[Sequencer]()

func init() {
	_ = registry.Register(StrategyBoundary, func(map[string]any) (Sequencer, error) {
		return BoundarySequencer{}, nil
	})
	_ = registry.Register(StrategySlotSearch, func(map[string]any) (Sequencer, error) {
		return SlotSearchSequencer{}, nil
	})
	_ = registry.Register(StrategyLP, func(conf map[string]any) (Sequencer, error) {
		var c struct {
			MaxVariables int     `json:"max_variables"`
			Tolerance    float64 `json:"tolerance"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		s := NewLPSequencer()
		if c.MaxVariables > 0 {
			s.MaxVariables = c.MaxVariables
		}
		if c.Tolerance > 0 {
			s.Tolerance = c.Tolerance
		}
		return s, nil
	})
}

// RegisterSequencer adds a strategy factory identified by name.
func RegisterSequencer(name string, f factory.Factory[Sequencer]) error {
	return registry.Register(name, f)
}

// Strategies lists the registered strategy names.
func Strategies() []string { return registry.Names() }

// NewSequencer builds the strategy named by name with optional raw settings.
func NewSequencer(name string, conf map[string]any) (Sequencer, error) {
	if !registry.Has(name) {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, registry.Names())
	}
	return registry.Create(factory.ModuleConfig{Type: name, Conf: conf})
}
