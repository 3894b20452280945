// Package gnp provides the node-triple bound state used by triple-tree
// algorithms for generalized N-body problems such as 3-point correlation
// functions.
//
// A triple-tree traversal descends three (possibly identical) subtrees of a
// spatial tree together. At every step it needs squared-distance brackets
// between each pair of the current nodes, to decide whether to prune or
// refine, and the exact number of distinct point tuples the node-triple
// stands for, so accumulated statistics are weighted correctly. NodeTriple
// supplies both. It does not compute the statistic and does not decide the
// pruning policy.
//
// Basic usage:
//
//	tree, err := gnp.NewTree(data, n, dims, gnp.DefaultTreeConfig())
//	metric := gnp.EuclideanMetric{}
//	root := tree.Root()
//	t := gnp.NewNodeTriple(metric, tree, [3]gnp.NodeID{root, root, root})
//	r := t.RangeDistanceSq(0, 1) // r.Lo, r.Hi bracket every pair's squared distance
//	w := t.NumTuples(2)
//
// Descending replaces one slot at a time on a copy of the parent:
//
//	child := t
//	left, _ := tree.ChildNodes(root)
//	child.ReplaceOneNode(metric, tree, left, 2)
//
// # Tuple counts
//
// When slots hold the same node, a point never pairs with itself and two
// slots sharing a node pick an unordered pair. For a node with c points
// occupying all three slots, every slot counts C(c-1, 2).
package gnp
