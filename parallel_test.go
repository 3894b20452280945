package gnp

import (
	"math/rand"
	"testing"
)

func randomTriples(tree Tree, count int, seed int64) [][3]NodeID {
	rng := rand.New(rand.NewSource(seed))
	nodes := collectNodes(tree)
	out := make([][3]NodeID, count)
	for i := range out {
		for s := range out[i] {
			out[i][s] = nodes[rng.Intn(len(nodes))]
		}
	}
	return out
}

func TestInitTriplesParallel_BitwiseIdentical(t *testing.T) {
	n, dims := 64, 3
	for _, tree := range testTrees(n, dims) {
		triples := randomTriples(tree, 257, 9)
		metric := EuclideanMetric{}

		sequential := make([]NodeTriple, len(triples))
		for i, ids := range triples {
			sequential[i] = NewNodeTriple(metric, tree, ids)
		}

		for _, workers := range []int{0, 1, 2, 4, 16} {
			parallel := InitTriplesParallel(metric, tree, triples, workers)
			if len(parallel) != len(sequential) {
				t.Fatalf("%T workers=%d: length mismatch %d != %d", tree, workers, len(parallel), len(sequential))
			}
			for i := range sequential {
				if parallel[i] != sequential[i] {
					t.Errorf("%T workers=%d: result[%d] = %+v, expected %+v",
						tree, workers, i, parallel[i], sequential[i])
				}
			}
		}
	}
}

func TestInitTriplesParallel_Empty(t *testing.T) {
	tree := NewKDTree(generateFlatData(4, 2), 4, 2, 1)
	if got := InitTriplesParallel(EuclideanMetric{}, tree, nil, 4); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestInitTriplesParallel_MoreWorkersThanTriples(t *testing.T) {
	tree := NewKDTree(generateFlatData(8, 2), 8, 2, 2)
	triples := [][3]NodeID{{0, 0, 0}, {1, 1, 2}}
	got := InitTriplesParallel(EuclideanMetric{}, tree, triples, 32)
	for i, ids := range triples {
		if want := NewNodeTriple(EuclideanMetric{}, tree, ids); got[i] != want {
			t.Errorf("result[%d] = %+v, want %+v", i, got[i], want)
		}
	}
}
