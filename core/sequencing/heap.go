package sequencing

import (
	"container/heap"

	"github.com/kilianp07/jobseq/core/model"
)

type queued struct {
	job model.Job
	seq int
}

// profitHeap orders jobs by decreasing profit. Equal profits pop in
// insertion order.
type profitHeap []queued

func (h profitHeap) Len() int { return len(h) }

func (h profitHeap) Less(i, j int) bool {
	if h[i].job.Profit == h[j].job.Profit {
		return h[i].seq < h[j].seq
	}
	return h[i].job.Profit > h[j].job.Profit
}

func (h profitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *profitHeap) Push(x any) { *h = append(*h, x.(queued)) }

func (h *profitHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// profitQueue is a max-priority queue of jobs keyed by profit. It is not safe
// for concurrent use; every sequencing call owns its own queue.
type profitQueue struct {
	h    profitHeap
	next int
}

func newProfitQueue(capacity int) *profitQueue {
	return &profitQueue{h: make(profitHeap, 0, capacity)}
}

func (q *profitQueue) Push(j model.Job) {
	heap.Push(&q.h, queued{job: j, seq: q.next})
	q.next++
}

// Pop removes the most profitable job. The boolean is false when the queue is empty.
func (q *profitQueue) Pop() (model.Job, bool) {
	if q.h.Len() == 0 {
		return model.Job{}, false
	}
	return heap.Pop(&q.h).(queued).job, true
}

func (q *profitQueue) Len() int { return q.h.Len() }
