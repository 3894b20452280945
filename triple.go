package gnp

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// NodeTriple is the unit of work of a triple-tree traversal: three node
// handles, the squared-distance bracket between every pair of their
// bounding regions, and per slot the number of valid point tuples the
// triple represents.
//
// A NodeTriple is a plain value. Assigning it produces an independent copy
// that may be mutated without affecting the original, which is how a
// traversal derives child triples. There is no internal locking; a live
// NodeTriple must not be shared between goroutines.
//
// Slots may hold the same node two or three times. The bracket between two
// slots holding the same node bounds the region against itself and so
// includes the zero self-distance. It remains a valid, possibly loose,
// bracket on distances between distinct points and may be used for pruning
// as is. NumTuples excludes self-pairing independently of the bracket.
type NodeTriple struct {
	nodes     [3]NodeID
	minDistSq [3][3]float64
	maxDistSq [3][3]float64
	numTuples [3]float64
}

// NewNodeTriple returns a NodeTriple initialized with Init.
func NewNodeTriple(metric RangeMetric, table NodeTable, nodes [3]NodeID) NodeTriple {
	var t NodeTriple
	t.Init(metric, table, nodes)
	return t
}

// Init sets the three nodes, computes the bracket for every pair of slots
// and recounts tuples.
func (t *NodeTriple) Init(metric RangeMetric, table NodeTable, nodes [3]NodeID) {
	t.nodes = nodes
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			t.computePair(metric, table, i, j)
		}
	}
	t.computeNumTuples(table)
}

// ReplaceOneNode swaps the node in slot for node. Only the two brackets
// involving slot are recomputed; the bracket between the other two slots
// is kept. The result is identical to calling Init with the new nodes.
func (t *NodeTriple) ReplaceOneNode(metric RangeMetric, table NodeTable, node NodeID, slot int) {
	checkSlot(slot)
	t.nodes[slot] = node
	for k := 1; k < 3; k++ {
		t.computePair(metric, table, slot, (slot+k)%3)
	}
	t.computeNumTuples(table)
}

// Split returns two copies of t with the node in slot replaced by its left
// and right child respectively. Panics if that node is a leaf.
func (t NodeTriple) Split(metric RangeMetric, tree Tree, slot int) (left, right NodeTriple) {
	checkSlot(slot)
	node := t.nodes[slot]
	if tree.IsLeaf(node) {
		panic(fmt.Sprintf("gnp: cannot split leaf node %d in slot %d", node, slot))
	}
	l, r := tree.ChildNodes(node)
	left, right = t, t
	left.ReplaceOneNode(metric, tree, l, slot)
	right.ReplaceOneNode(metric, tree, r, slot)
	return left, right
}

// computePair evaluates the metric with the lower slot's bound first so that
// Init and ReplaceOneNode produce bit-identical brackets.
func (t *NodeTriple) computePair(metric RangeMetric, table NodeTable, i, j int) {
	if i > j {
		i, j = j, i
	}
	r := metric.RangeDistanceSq(table.NodeBound(t.nodes[i]), table.NodeBound(t.nodes[j]))
	t.setRangeDistanceSq(i, j, r)
}

// setRangeDistanceSq stores r symmetrically for the pair (i, j).
func (t *NodeTriple) setRangeDistanceSq(i, j int, r Range) {
	if !(r.Lo >= 0 && r.Lo <= r.Hi) {
		panic(fmt.Sprintf("gnp: malformed squared-distance range [%v, %v] for slots %d, %d", r.Lo, r.Hi, i, j))
	}
	t.minDistSq[i][j] = r.Lo
	t.minDistSq[j][i] = r.Lo
	t.maxDistSq[i][j] = r.Hi
	t.maxDistSq[j][i] = r.Hi
}

// computeNumTuples classifies the slots by node identity and sets, for each
// slot, the number of ways to choose points for the other two slots given a
// fixed point in this one. A point never pairs with itself, and two slots
// sharing a node choose an unordered pair.
func (t *NodeTriple) computeNumTuples(table NodeTable) {
	n0, n1, n2 := t.nodes[0], t.nodes[1], t.nodes[2]
	c0 := nodeCount(table, n0)
	c1 := nodeCount(table, n1)
	c2 := nodeCount(table, n2)

	switch {
	case n0 == n1 && n1 == n2:
		v := choose2(c0 - 1)
		t.numTuples = [3]float64{v, v, v}
	case n0 == n1:
		v := float64(others(c0) * c2)
		t.numTuples = [3]float64{v, v, choose2(c0)}
	case n1 == n2:
		v := float64(others(c1) * c0)
		t.numTuples = [3]float64{choose2(c1), v, v}
	case n0 == n2:
		// Unreachable when slots are kept in non-decreasing order.
		v := float64(others(c0) * c1)
		t.numTuples = [3]float64{v, choose2(c0), v}
	default:
		t.numTuples = [3]float64{
			float64(c1 * c2),
			float64(c0 * c2),
			float64(c0 * c1),
		}
	}
}

func nodeCount(table NodeTable, node NodeID) int {
	c := table.NodeCount(node)
	if c < 0 {
		panic(fmt.Sprintf("gnp: node %d has negative point count %d", node, c))
	}
	return c
}

// others is the number of points of a node other than a fixed one.
func others(c int) int { return max(c-1, 0) }

// choose2 is C(k, 2), zero when fewer than two points are available.
func choose2(k int) float64 {
	if k < 2 {
		return 0
	}
	return float64(combin.Binomial(k, 2))
}

func checkSlot(slot int) {
	if slot < 0 || slot > 2 {
		panic(fmt.Sprintf("gnp: slot %d out of range [0, 2]", slot))
	}
}

// RangeDistanceSq returns the squared-distance bracket between slots i and j.
// The diagonal (i == j) is unused and returns the zero range.
func (t NodeTriple) RangeDistanceSq(i, j int) Range {
	checkSlot(i)
	checkSlot(j)
	return Range{Lo: t.minDistSq[i][j], Hi: t.maxDistSq[i][j]}
}

// NumTuples returns the tuple count for slot.
func (t NodeTriple) NumTuples(slot int) float64 {
	checkSlot(slot)
	return t.numTuples[slot]
}

// NumTriples returns the number of unordered triples of distinct points the
// node-triple denotes. Summed over every multiset of three leaves of a tree
// it equals C(n, 3) for n points.
func (t NodeTriple) NumTriples(table NodeTable) float64 {
	m := 0
	for _, n := range t.nodes {
		if n == t.nodes[0] {
			m++
		}
	}
	return t.numTuples[0] * float64(nodeCount(table, t.nodes[0])) / float64(m)
}

// Node returns the node in slot.
func (t NodeTriple) Node(slot int) NodeID {
	checkSlot(slot)
	return t.nodes[slot]
}

// Nodes returns all three nodes.
func (t NodeTriple) Nodes() [3]NodeID { return t.nodes }

// MinDistanceSq returns a copy of the lower-bound matrix.
func (t NodeTriple) MinDistanceSq() [3][3]float64 { return t.minDistSq }

// MaxDistanceSq returns a copy of the upper-bound matrix.
func (t NodeTriple) MaxDistanceSq() [3][3]float64 { return t.maxDistSq }
