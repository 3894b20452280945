package gnp

import "sort"

// NodeID is a handle into a tree's node arena. The tree owns the node;
// a NodeID only borrows it and is valid for the tree's lifetime.
// Two slots hold "the same node" exactly when their NodeIDs are equal.
type NodeID int

// NodeData describes a single node in a spatial tree.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
	Radius           float64 // ball tree radius; 0 for KD-tree
}

// Count returns the number of points in the node.
func (nd NodeData) Count() int { return nd.IdxEnd - nd.IdxStart }

// NodeTable is the read capability NodeTriple needs from a tree: the bound
// of a node and the number of points under it.
type NodeTable interface {
	// NodeBound returns the bounding region of node.
	NodeBound(node NodeID) Bound

	// NodeCount returns the number of points under node.
	NodeCount(node NodeID) int
}

// Tree is the read interface for KD-trees and Ball trees.
type Tree interface {
	NodeTable

	// Root returns the root node. Valid only when NumPoints() > 0.
	Root() NodeID

	// IsLeaf reports whether node has no children.
	IsLeaf(node NodeID) bool

	// ChildNodes returns the left and right child node handles.
	// Behavior is undefined for leaf nodes.
	ChildNodes(node NodeID) (left, right NodeID)

	// NumNodes returns the total number of nodes (internal + leaf) in the tree.
	NumNodes() int

	// Data returns the flat row-major point data owned by the tree.
	Data() []float64

	// NumPoints returns the number of points in the tree.
	NumPoints() int

	// NumFeatures returns the dimensionality of each point.
	NumFeatures() int

	// IdxArray returns the permutation array mapping tree-order positions
	// back to original point indices.
	IdxArray() []int

	// NodeDataArray returns the node metadata indexed by NodeID. Entries
	// not reachable from the root are zero-valued.
	NodeDataArray() []NodeData

	// NodePoints returns the original indices of the points under node.
	// The slice aliases tree storage and must not be modified.
	NodePoints(node NodeID) []int
}

// maxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func maxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	// Depth of tree: ceil(log2(ceil(n/leafSize))) + 1.
	// Number of nodes in a complete binary tree of depth d = 2^(d+1) - 1.
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// countNodes counts how many nodes were actually initialized by a build.
func countNodes(nodes []NodeData, nodeID int) int {
	if nodeID >= len(nodes) {
		return 0
	}
	if nodes[nodeID].IdxStart == 0 && nodes[nodeID].IdxEnd == 0 && nodeID != 0 {
		return 0
	}
	count := 1
	if !nodes[nodeID].IsLeaf {
		count += countNodes(nodes, 2*nodeID+1)
		count += countNodes(nodes, 2*nodeID+2)
	}
	return count
}

// widestDim returns the dimension with the greatest spread among points
// idxArray[start:end].
func widestDim(data []float64, dims int, idxArray []int, start, end int) int {
	bestDim := 0
	bestSpread := -1.0
	for d := 0; d < dims; d++ {
		lo, hi := data[idxArray[start]*dims+d], data[idxArray[start]*dims+d]
		for i := start + 1; i < end; i++ {
			v := data[idxArray[i]*dims+d]
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if hi-lo > bestSpread {
			bestSpread = hi - lo
			bestDim = d
		}
	}
	return bestDim
}

// sortByDim sorts idxArray[start:end] by the given dimension.
func sortByDim(data []float64, dims int, idxArray []int, start, end, dim int) {
	sub := idxArray[start:end]
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}
