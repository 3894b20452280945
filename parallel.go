package gnp

import "golang.org/x/sync/errgroup"

// InitTriplesParallel initializes one NodeTriple per entry of triples using
// up to workers goroutines. Each result is written by exactly one goroutine
// and shares no state with the others. If workers <= 1, it runs
// sequentially.
//
// The result is bitwise identical to calling NewNodeTriple on each entry.
// metric and table must be safe for concurrent readers. The trees in this
// package are read-only once built.
func InitTriplesParallel(metric RangeMetric, table NodeTable, triples [][3]NodeID, workers int) []NodeTriple {
	out := make([]NodeTriple, len(triples))
	if workers <= 1 || len(triples) <= 1 {
		for i, nodes := range triples {
			out[i].Init(metric, table, nodes)
		}
		return out
	}

	// Split entries into contiguous chunks. Chunks don't overlap, so no
	// synchronization is needed for writes.
	chunk := (len(triples) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(triples); start += chunk {
		start, end := start, min(start+chunk, len(triples))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i].Init(metric, table, triples[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
