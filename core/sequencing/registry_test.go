package sequencing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategies(t *testing.T) {
	names := Strategies()
	for _, want := range []string{StrategyBoundary, StrategyLP, StrategySlotSearch} {
		assert.Contains(t, names, want)
	}
}

func TestNewSequencer(t *testing.T) {
	s, err := NewSequencer(StrategyBoundary, nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyBoundary, s.Name())

	s, err = NewSequencer(StrategyLP, map[string]any{"max_variables": 64, "tolerance": 1e-9})
	require.NoError(t, err)
	lps, ok := s.(*LPSequencer)
	require.True(t, ok, "expected *LPSequencer got %T", s)
	assert.Equal(t, 64, lps.MaxVariables)
	assert.Equal(t, 1e-9, lps.Tolerance)

	_, err = NewSequencer("brute", nil)
	assert.True(t, errors.Is(err, ErrUnknownStrategy), "got %v", err)

	_, err = NewSequencer(StrategyLP, map[string]any{"max_variables": "many"})
	assert.Error(t, err)
}

func TestRegisterSequencer_Duplicate(t *testing.T) {
	err := RegisterSequencer(StrategyBoundary, func(map[string]any) (Sequencer, error) { return BoundarySequencer{}, nil })
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, StrategyBoundary, c.Strategy)
	require.NoError(t, c.Validate())
	s, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, StrategyBoundary, s.Name())

	c.Strategy = "unknown"
	assert.True(t, errors.Is(c.Validate(), ErrUnknownStrategy))
}
