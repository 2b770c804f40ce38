package model

import (
	"errors"
	"fmt"
)

// JobID identifies a job. It is only used for reporting.
type JobID string

// Job is a unit-time task that earns Profit when it completes by Deadline.
type Job struct {
	ID       JobID `json:"id" yaml:"id" toml:"id"`
	Deadline int   `json:"deadline" yaml:"deadline" toml:"deadline"` // latest 1-based time unit
	Profit   int   `json:"profit" yaml:"profit" toml:"profit"`
}

// ErrEmptyID is returned by Validate for jobs without an identifier.
var ErrEmptyID = errors.New("job id is required")

// Validate checks that the job can be reported. Non-positive deadlines are
// accepted: such jobs have no usable slot and are never scheduled.
func (j Job) Validate() error {
	if j.ID == "" {
		return ErrEmptyID
	}
	return nil
}

// Schedulable reports whether at least one slot exists before the deadline.
func (j Job) Schedulable() bool { return j.Deadline >= 1 }

func (j Job) String() string {
	return fmt.Sprintf("%s(d=%d,p=%d)", j.ID, j.Deadline, j.Profit)
}

// Assignment places a job in a 1-based time slot.
type Assignment struct {
	Job  Job `json:"job"`
	Slot int `json:"slot"`
}

// Plan is the ordered outcome of a sequencing run. Assignments are sorted by
// increasing slot.
type Plan struct {
	Strategy    string       `json:"strategy"`
	Assignments []Assignment `json:"assignments"`
}

// IDs returns the identifiers of the admitted jobs in execution order.
func (p Plan) IDs() []JobID {
	ids := make([]JobID, len(p.Assignments))
	for i, a := range p.Assignments {
		ids[i] = a.Job.ID
	}
	return ids
}

// Profit sums the profit of every admitted job.
func (p Plan) Profit() int {
	total := 0
	for _, a := range p.Assignments {
		total += a.Job.Profit
	}
	return total
}

// Len returns the number of admitted jobs.
func (p Plan) Len() int { return len(p.Assignments) }

// TotalProfit sums the profit of the given jobs.
func TotalProfit(jobs []Job) int {
	total := 0
	for _, j := range jobs {
		total += j.Profit
	}
	return total
}
