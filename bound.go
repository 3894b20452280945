package gnp

// Range is a closed interval [Lo, Hi]. NodeTriple uses it as a bracket on
// squared distances between two bounding regions.
type Range struct {
	Lo, Hi float64
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool { return r.Lo <= v && v <= r.Hi }

// Width returns Hi - Lo.
func (r Range) Width() float64 { return r.Hi - r.Lo }

// Bound is the bounding region of a tree node. It is opaque to NodeTriple
// and only ever compared through a RangeMetric.
type Bound interface {
	// Dims returns the dimensionality of the region.
	Dims() int
}

// HRect is an axis-aligned hyper-rectangle, the bound of a KD-tree node.
// Min and Max may alias the owning tree's storage and must not be modified.
type HRect struct {
	Min, Max []float64
}

func (h HRect) Dims() int { return len(h.Min) }

// Ball is a centre and radius, the bound of a ball tree node. The radius is
// measured with the metric the tree was built with.
type Ball struct {
	Center []float64
	Radius float64
}

func (b Ball) Dims() int { return len(b.Center) }
