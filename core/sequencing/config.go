package sequencing

import "fmt"

// Config selects the sequencing strategy.
type Config struct {
	// Strategy is one of Strategies(). Defaults to "boundary".
	Strategy string `json:"strategy"`
	// Options holds strategy specific settings, e.g. max_variables for lp.
	Options map[string]any `json:"options"`
	// SkipVerify disables the feasibility check Manager runs after each plan.
	SkipVerify bool `json:"skip_verify"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyBoundary
	}
}

// Validate checks that the strategy exists.
func (c Config) Validate() error {
	if !registry.Has(c.Strategy) {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy)
	}
	return nil
}

// Build instantiates the configured Sequencer.
func (c Config) Build() (Sequencer, error) {
	return NewSequencer(c.Strategy, c.Options)
}
