package sequencing

import (
	"sort"

	"github.com/kilianp07/jobseq/core/model"
)

// SlotSearchSequencer is the textbook job sequencing greedy: jobs are taken by
// decreasing profit and each one goes to the latest free slot that still
// meets its deadline. Jobs without a free slot are dropped.
type SlotSearchSequencer struct{}

// Name returns the registry name of the strategy.
func (SlotSearchSequencer) Name() string { return StrategySlotSearch }

// Sequence implements Sequencer.
func (SlotSearchSequencer) Sequence(jobs []model.Job) model.Plan {
	byProfit := schedulable(jobs)
	sort.SliceStable(byProfit, func(a, b int) bool { return byProfit[a].Profit > byProfit[b].Profit })

	horizon := 0
	for _, j := range byProfit {
		if j.Deadline > horizon {
			horizon = j.Deadline
		}
	}
	// No more than len(jobs) slots can ever be used.
	if horizon > len(byProfit) {
		horizon = len(byProfit)
	}

	slots := make([]*model.Job, horizon+1)
	for i := range byProfit {
		j := &byProfit[i]
		for t := min(j.Deadline, horizon); t >= 1; t-- {
			if slots[t] == nil {
				slots[t] = j
				break
			}
		}
	}

	var ordered []model.Job
	for t := 1; t <= horizon; t++ {
		if slots[t] != nil {
			ordered = append(ordered, *slots[t])
		}
	}
	return newPlan(StrategySlotSearch, ordered)
}
