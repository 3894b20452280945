package gnp

// BallTree is a ball tree over a point set. Each node stores a centroid and
// the radius of the smallest centroid-centred ball enclosing its points.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - radii are measured with the metric passed to NewBallTree
type BallTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int       // number of points
	dims     int       // dimensionality
	leafSize int
	metric   DistanceMetric
	idxArray []int      // permutation: tree-order position → original index
	nodes    []NodeData // one entry per tree node; Radius is used
	// centroids[node*dims .. (node+1)*dims) = centroid of node
	centroids []float64
	numNodes  int
}

// NewBallTree builds a ball tree from flat row-major data with n points
// of dimensionality dims. leafSize controls the max points per leaf node.
// Bounds are only valid under a RangeMetric equal to metric.
func NewBallTree(data []float64, n, dims int, metric DistanceMetric, leafSize int) *BallTree {
	if leafSize < 1 {
		leafSize = 1
	}

	dataCopy := make([]float64, len(data))
	copy(dataCopy, data)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	size := maxNodes(n, leafSize)
	t := &BallTree{
		data:      dataCopy,
		n:         n,
		dims:      dims,
		leafSize:  leafSize,
		metric:    metric,
		idxArray:  idxArray,
		nodes:     make([]NodeData, size),
		centroids: make([]float64, size*dims),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
		t.numNodes = countNodes(t.nodes, 0)
	}

	return t
}

// buildNode recursively builds the ball tree for points in idxArray[start:end].
func (t *BallTree) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.centroids = append(t.centroids, make([]float64, t.dims)...)
	}

	t.computeCentroid(nodeID, start, end)

	// Radius: max distance from centroid to any point in this node.
	centroid := t.centroids[nodeID*t.dims : (nodeID+1)*t.dims]
	var radius float64
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		pt := t.data[ptIdx*t.dims : (ptIdx+1)*t.dims]
		if d := t.metric.Distance(centroid, pt); d > radius {
			radius = d
		}
	}

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true, Radius: radius}
		return
	}

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false, Radius: radius}

	splitDim := widestDim(t.data, t.dims, t.idxArray, start, end)
	sortByDim(t.data, t.dims, t.idxArray, start, end, splitDim)
	mid := start + count/2

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeCentroid computes the mean of points idxArray[start:end] and stores
// it in the centroids array.
func (t *BallTree) computeCentroid(nodeID, start, end int) {
	base := nodeID * t.dims
	count := float64(end - start)
	for d := 0; d < t.dims; d++ {
		t.centroids[base+d] = 0
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < t.dims; d++ {
			t.centroids[base+d] += t.data[ptIdx*t.dims+d]
		}
	}
	for d := 0; d < t.dims; d++ {
		t.centroids[base+d] /= count
	}
}

// Metric returns the metric the radii were measured with.
func (t *BallTree) Metric() DistanceMetric { return t.metric }

// --- NodeTable ---

// NodeBound returns the node's ball. Center is a view into tree storage.
func (t *BallTree) NodeBound(node NodeID) Bound {
	base := int(node) * t.dims
	return Ball{
		Center: t.centroids[base : base+t.dims : base+t.dims],
		Radius: t.nodes[node].Radius,
	}
}

func (t *BallTree) NodeCount(node NodeID) int { return t.nodes[node].Count() }

// --- Tree ---

func (t *BallTree) Root() NodeID              { return 0 }
func (t *BallTree) IsLeaf(node NodeID) bool   { return t.nodes[node].IsLeaf }
func (t *BallTree) NumNodes() int             { return t.numNodes }
func (t *BallTree) Data() []float64           { return t.data }
func (t *BallTree) NumPoints() int            { return t.n }
func (t *BallTree) NumFeatures() int          { return t.dims }
func (t *BallTree) IdxArray() []int           { return t.idxArray }
func (t *BallTree) NodeDataArray() []NodeData { return t.nodes }

func (t *BallTree) ChildNodes(node NodeID) (left, right NodeID) {
	return 2*node + 1, 2*node + 2
}

func (t *BallTree) NodePoints(node NodeID) []int {
	nd := t.nodes[node]
	return t.idxArray[nd.IdxStart:nd.IdxEnd:nd.IdxEnd]
}
