package sequencing

import "github.com/kilianp07/jobseq/core/model"

// Strategy names accepted by NewSequencer.
const (
	StrategyBoundary   = "boundary"
	StrategySlotSearch = "slotsearch"
	StrategyLP         = "lp"
)

// Sequencer selects a feasible, profit-maximising subset of jobs and orders
// it by execution slot. Implementations must not mutate the input slice and
// keep no state between calls.
type Sequencer interface {
	Name() string
	Sequence(jobs []model.Job) model.Plan
}

// Schedule returns the identifiers of the admitted jobs in slot order using
// the boundary strategy. An empty input yields an empty result.
func Schedule(jobs []model.Job) []model.JobID {
	return BoundarySequencer{}.Sequence(jobs).IDs()
}
