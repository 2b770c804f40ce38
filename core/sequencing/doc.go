// Package sequencing selects and orders unit-time jobs so that every admitted
// job finishes by its deadline while the total profit is maximised.
//
// Three strategies are provided:
//
//   - boundary: jobs are sorted by deadline and walked from the largest
//     deadline down. Each deadline boundary opens deadline[i]-deadline[i-1]
//     slots, which are filled from a max-heap keyed by profit.
//   - slotsearch: jobs are taken by decreasing profit and placed in the
//     latest free slot not after their deadline.
//   - lp: the job/slot assignment linear program solved with gonum's simplex.
//     It falls back to slotsearch when the solver fails.
//
// Schedule is the package-level entry point and always uses the boundary
// strategy. Manager wraps a Sequencer with verification, metrics, events and
// a run log.
package sequencing
