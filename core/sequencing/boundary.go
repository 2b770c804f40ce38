package sequencing

import (
	"sort"

	"github.com/kilianp07/jobseq/core/model"
)

// BoundarySequencer implements the deadline-boundary greedy. It never mutates
// the caller's slice.
type BoundarySequencer struct{}

// Name returns the registry name of the strategy.
func (BoundarySequencer) Name() string { return StrategyBoundary }

// Sequence sorts a private copy of jobs by deadline, counts the slots every
// boundary opens and admits the most profitable pending jobs into them.
func (BoundarySequencer) Sequence(jobs []model.Job) model.Plan {
	sorted := schedulable(jobs)
	sortByDeadline(sorted)
	admitted := selectByProfit(sorted, boundarySlots(sorted))
	sortByDeadline(admitted)
	return newPlan(StrategyBoundary, admitted)
}

// boundarySlots returns, for each job of a deadline-sorted slice, the number
// of slots opened since the previous boundary. The first boundary opens as
// many slots as its deadline. Equal deadlines open zero slots.
func boundarySlots(sorted []model.Job) []int {
	slots := make([]int, len(sorted))
	for i, j := range sorted {
		if i == 0 {
			slots[i] = j.Deadline
			continue
		}
		slots[i] = j.Deadline - sorted[i-1].Deadline
	}
	return slots
}

// selectByProfit walks the boundaries from the largest deadline down. Each job
// joins the queue when its boundary is reached and the boundary's slots are
// filled with the most profitable queued jobs.
func selectByProfit(sorted []model.Job, slots []int) []model.Job {
	q := newProfitQueue(len(sorted))
	var admitted []model.Job
	for i := len(sorted) - 1; i >= 0; i-- {
		q.Push(sorted[i])
		for avail := slots[i]; avail > 0 && q.Len() > 0; avail-- {
			j, _ := q.Pop()
			admitted = append(admitted, j)
		}
	}
	return admitted
}

// schedulable copies jobs whose deadline leaves at least one slot.
func schedulable(jobs []model.Job) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Schedulable() {
			out = append(out, j)
		}
	}
	return out
}

func sortByDeadline(jobs []model.Job) {
	sort.SliceStable(jobs, func(a, b int) bool { return jobs[a].Deadline < jobs[b].Deadline })
}

// newPlan assigns consecutive slots to jobs already in execution order.
func newPlan(strategy string, ordered []model.Job) model.Plan {
	p := model.Plan{Strategy: strategy, Assignments: make([]model.Assignment, len(ordered))}
	for i, j := range ordered {
		p.Assignments[i] = model.Assignment{Job: j, Slot: i + 1}
	}
	return p
}
