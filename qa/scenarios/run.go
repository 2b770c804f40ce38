package scenarios

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kilianp07/jobseq/core/model"
	"github.com/kilianp07/jobseq/core/sequencing"
)

// MismatchError reports the first position where a strategy's output
// diverges from the expected order.
type MismatchError struct {
	Scenario string
	Position int
	Got      []model.JobID
	Want     []model.JobID
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("scenario %s: position %d: got %v, want %v", e.Scenario, e.Position, e.Got, e.Want)
}

// Applies reports whether the scenario's expected order binds strategy.
func (sc *Scenario) Applies(strategy string) bool {
	if len(sc.Strategies) == 0 {
		return strategy == sequencing.StrategyBoundary
	}
	return slices.Contains(sc.Strategies, strategy)
}

// Check runs seq on the scenario jobs and compares the output order.
func Check(seq sequencing.Sequencer, sc *Scenario) error {
	got := seq.Sequence(sc.Jobs).IDs()
	n := min(len(got), len(sc.Expected))
	for i := 0; i < n; i++ {
		if got[i] != sc.Expected[i] {
			return &MismatchError{Scenario: sc.Name, Position: i, Got: got, Want: sc.Expected}
		}
	}
	if len(got) != len(sc.Expected) {
		return &MismatchError{Scenario: sc.Name, Position: n, Got: got, Want: sc.Expected}
	}
	return nil
}

// ErrNoScenario is returned by Run when no scenario applies to the strategy.
var ErrNoScenario = errors.New("no scenario applies to strategy")

// Run checks every scenario that applies to seq and stops at the first
// failure. It returns the number of scenarios checked and fails when that
// number is zero.
func Run(seq sequencing.Sequencer, scs []*Scenario) (int, error) {
	checked := 0
	for _, sc := range scs {
		if !sc.Applies(seq.Name()) {
			continue
		}
		if err := Check(seq, sc); err != nil {
			return checked, err
		}
		checked++
	}
	if checked == 0 {
		return 0, fmt.Errorf("%w %q", ErrNoScenario, seq.Name())
	}
	return checked, nil
}
