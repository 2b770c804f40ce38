package sequencing

import "github.com/kilianp07/jobseq/core/model"

func scenarioOne() []model.Job {
	return []model.Job{
		{ID: "a", Deadline: 2, Profit: 100},
		{ID: "b", Deadline: 1, Profit: 19},
		{ID: "c", Deadline: 2, Profit: 27},
		{ID: "d", Deadline: 1, Profit: 25},
		{ID: "e", Deadline: 3, Profit: 15},
	}
}

func scenarioTwo() []model.Job {
	return []model.Job{
		{ID: "x", Deadline: 1, Profit: 50},
		{ID: "y", Deadline: 2, Profit: 60},
		{ID: "z", Deadline: 2, Profit: 20},
		{ID: "w", Deadline: 3, Profit: 30},
	}
}

func scenarioThree() []model.Job {
	return []model.Job{
		{ID: "a", Deadline: 4, Profit: 20},
		{ID: "b", Deadline: 1, Profit: 10},
		{ID: "c", Deadline: 1, Profit: 40},
		{ID: "d", Deadline: 1, Profit: 30},
	}
}

func ids(s ...string) []model.JobID {
	out := make([]model.JobID, len(s))
	for i, v := range s {
		out[i] = model.JobID(v)
	}
	return out
}
