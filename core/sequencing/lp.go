package sequencing

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/jobseq/core/model"
)

// DefaultLPMaxVariables bounds the size of the assignment program.
const DefaultLPMaxVariables = 4096

// ErrTooLarge is returned when the assignment program exceeds MaxVariables.
var ErrTooLarge = errors.New("lp: instance too large")

// ErrFractional is returned when the solver does not land on an integral vertex.
var ErrFractional = errors.New("lp: fractional solution")

// LPSequencer solves the job/slot assignment linear program. The assignment
// polytope is integral, so the simplex vertex is an optimal schedule.
type LPSequencer struct {
	// MaxVariables caps the number of LP columns including slacks.
	MaxVariables int
	// Tolerance is passed to the simplex solver.
	Tolerance float64
	// Fallback is used by Sequence when SequenceStrict fails.
	Fallback Sequencer
}

// NewLPSequencer returns an LP sequencer falling back to SlotSearchSequencer.
func NewLPSequencer() *LPSequencer {
	return &LPSequencer{
		MaxVariables: DefaultLPMaxVariables,
		Tolerance:    1e-7,
		Fallback:     SlotSearchSequencer{},
	}
}

// Name returns the registry name of the strategy.
func (s *LPSequencer) Name() string { return StrategyLP }

// lpSolve points to the simplex call. Tests override it to simulate solver failures.
var lpSolve = func(c []float64, a mat.Matrix, b []float64, tol float64, basic []int) ([]float64, error) {
	_, x, err := lp.Simplex(c, a, b, tol, basic)
	return x, err
}

type lpVar struct {
	job  int
	slot int
}

// SequenceStrict solves the program and returns the solver error, if any.
// No fallback is applied.
func (s *LPSequencer) SequenceStrict(jobs []model.Job) (model.Plan, error) {
	var cands []model.Job
	for _, j := range schedulable(jobs) {
		if j.Profit > 0 {
			cands = append(cands, j)
		}
	}
	if len(cands) == 0 {
		return newPlan(StrategyLP, nil), nil
	}

	horizon := 0
	for _, j := range cands {
		horizon = max(horizon, j.Deadline)
	}
	horizon = min(horizon, len(cands))

	var vars []lpVar
	for i, j := range cands {
		for t := 1; t <= min(j.Deadline, horizon); t++ {
			vars = append(vars, lpVar{job: i, slot: t})
		}
	}

	// One row per job and one per slot, each with its own slack column.
	rows := len(cands) + horizon
	cols := len(vars) + rows
	limit := s.MaxVariables
	if limit <= 0 {
		limit = DefaultLPMaxVariables
	}
	if cols > limit {
		return model.Plan{}, fmt.Errorf("%w: %d columns exceed %d", ErrTooLarge, cols, limit)
	}

	c := make([]float64, cols)
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	for k, v := range vars {
		c[k] = -float64(cands[v.job].Profit)
		a.Set(v.job, k, 1)
		a.Set(len(cands)+v.slot-1, k, 1)
	}
	basic := make([]int, rows)
	for r := 0; r < rows; r++ {
		a.Set(r, len(vars)+r, 1)
		b[r] = 1
		basic[r] = len(vars) + r
	}

	tol := s.Tolerance
	if tol <= 0 {
		tol = 1e-7
	}
	x, err := lpSolve(c, a, b, tol, basic)
	if err != nil {
		return model.Plan{}, fmt.Errorf("lp: simplex: %w", err)
	}

	var picked []model.Assignment
	for k, v := range vars {
		switch {
		case x[k] > 1-1e-6:
			picked = append(picked, model.Assignment{Job: cands[v.job], Slot: v.slot})
		case math.Abs(x[k]) > 1e-6:
			return model.Plan{}, fmt.Errorf("%w: x[%s,%d]=%g", ErrFractional, cands[v.job].ID, v.slot, x[k])
		}
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].Slot < picked[j].Slot })
	ordered := make([]model.Job, len(picked))
	for i, p := range picked {
		ordered[i] = p.Job
	}
	return newPlan(StrategyLP, ordered), nil
}

// Sequence solves the program and uses the fallback strategy when the solver fails.
func (s *LPSequencer) Sequence(jobs []model.Job) model.Plan {
	plan, err := s.SequenceStrict(jobs)
	if err != nil {
		fb := s.Fallback
		if fb == nil {
			fb = SlotSearchSequencer{}
		}
		return fb.Sequence(jobs)
	}
	return plan
}
