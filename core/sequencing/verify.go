package sequencing

import (
	"errors"
	"fmt"

	"github.com/kilianp07/jobseq/core/model"
)

// ErrInfeasible marks a plan that breaks a deadline or double-books a slot.
var ErrInfeasible = errors.New("infeasible plan")

// Verify checks that every assignment meets its job's deadline and that no
// slot is used twice.
func Verify(p model.Plan) error {
	used := make(map[int]model.JobID, len(p.Assignments))
	for _, a := range p.Assignments {
		if a.Slot < 1 {
			return fmt.Errorf("%w: job %s assigned to slot %d", ErrInfeasible, a.Job.ID, a.Slot)
		}
		if a.Slot > a.Job.Deadline {
			return fmt.Errorf("%w: job %s in slot %d misses deadline %d", ErrInfeasible, a.Job.ID, a.Slot, a.Job.Deadline)
		}
		if other, ok := used[a.Slot]; ok {
			return fmt.Errorf("%w: slot %d booked by %s and %s", ErrInfeasible, a.Slot, other, a.Job.ID)
		}
		used[a.Slot] = a.Job.ID
	}
	return nil
}
