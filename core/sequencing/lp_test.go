package sequencing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/jobseq/core/model"
)

func TestLPSequencer_Optimal(t *testing.T) {
	s := NewLPSequencer()
	for _, jobs := range [][]model.Job{scenarioOne(), scenarioTwo(), scenarioThree()} {
		plan, err := s.SequenceStrict(jobs)
		require.NoError(t, err)
		require.NoError(t, Verify(plan))
		assert.Equal(t, StrategyLP, plan.Strategy)
		assert.Equal(t, BoundarySequencer{}.Sequence(jobs).Profit(), plan.Profit())
	}
}

func TestLPSequencer_Empty(t *testing.T) {
	s := NewLPSequencer()
	plan, err := s.SequenceStrict(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Len())

	plan, err = s.SequenceStrict([]model.Job{{ID: "free", Deadline: 3, Profit: 0}, {ID: "late", Deadline: 0, Profit: 9}})
	require.NoError(t, err)
	assert.Equal(t, 0, plan.Len())
}

func TestLPSequencer_TooLarge(t *testing.T) {
	s := NewLPSequencer()
	s.MaxVariables = 3
	_, err := s.SequenceStrict(scenarioOne())
	assert.True(t, errors.Is(err, ErrTooLarge), "got %v", err)

	plan := s.Sequence(scenarioOne())
	assert.Equal(t, StrategySlotSearch, plan.Strategy)
	assert.Equal(t, 142, plan.Profit())
}

func TestLPSequencer_SolverFailureFallsBack(t *testing.T) {
	orig := lpSolve
	defer func() { lpSolve = orig }()
	lpSolve = func([]float64, mat.Matrix, []float64, float64, []int) ([]float64, error) {
		return nil, errors.New("boom")
	}

	s := NewLPSequencer()
	_, err := s.SequenceStrict(scenarioTwo())
	require.Error(t, err)

	plan := s.Sequence(scenarioTwo())
	assert.Equal(t, StrategySlotSearch, plan.Strategy)
	assert.Equal(t, ids("x", "y", "w"), plan.IDs())

	s.Fallback = BoundarySequencer{}
	assert.Equal(t, StrategyBoundary, s.Sequence(scenarioTwo()).Strategy)
}

func TestLPSequencer_FractionalRejected(t *testing.T) {
	orig := lpSolve
	defer func() { lpSolve = orig }()
	lpSolve = func(c []float64, _ mat.Matrix, _ []float64, _ float64, _ []int) ([]float64, error) {
		x := make([]float64, len(c))
		x[0] = 0.5
		return x, nil
	}
	_, err := NewLPSequencer().SequenceStrict(scenarioThree())
	assert.True(t, errors.Is(err, ErrFractional), "got %v", err)
}
