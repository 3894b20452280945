package gnp

import (
	"errors"
	"fmt"
)

// TreeKind selects the spatial tree built by NewTree.
type TreeKind string

const (
	TreeAuto     TreeKind = "auto"
	TreeKDTree   TreeKind = "kdtree"
	TreeBallTree TreeKind = "balltree"
)

// maxKDTreeDims is the dimensionality above which "auto" prefers a ball
// tree; box bounds loosen quickly as dimensions grow.
const maxKDTreeDims = 60

var (
	// ErrInvalidConfig is returned by NewTree for an unusable TreeConfig.
	ErrInvalidConfig = errors.New("invalid tree config")

	// ErrInvalidData is returned by NewTree when data does not hold n*dims values.
	ErrInvalidData = errors.New("invalid point data")
)

// TreeConfig controls tree construction.
// Start with [DefaultTreeConfig] and override the fields you need.
type TreeConfig struct {
	// Kind selects the tree. "auto" picks a KD-tree for axis-decomposable
	// metrics in up to 60 dimensions and a ball tree otherwise.
	// Default: "auto".
	Kind TreeKind

	// Metric is the distance the tree's bounds are measured in and the
	// RangeMetric to pair with the tree. Default: EuclideanMetric.
	Metric DistanceMetric

	// LeafSize is the maximum number of points in a leaf node.
	// Must be >= 1. Default: 40.
	LeafSize int
}

// DefaultTreeConfig returns a TreeConfig with reasonable defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		Kind:     TreeAuto,
		Metric:   EuclideanMetric{},
		LeafSize: 40,
	}
}

// NewTree builds the tree selected by cfg over flat row-major data with n
// points of dimensionality dims.
func NewTree(data []float64, n, dims int, cfg TreeConfig) (Tree, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if n < 0 || dims < 1 || len(data) != n*dims {
		return nil, fmt.Errorf("gnp: got %d values for %d points of %d dims: %w", len(data), n, dims, ErrInvalidData)
	}

	kind, err := selectTreeKind(cfg, dims)
	if err != nil {
		return nil, err
	}
	switch kind {
	case TreeKDTree:
		return NewKDTree(data, n, dims, cfg.LeafSize), nil
	default:
		return NewBallTree(data, n, dims, cfg.Metric, cfg.LeafSize), nil
	}
}

// KDTreeValidMetric reports whether the metric can bound KD-tree boxes.
// Boxes require metrics that decompose along coordinate axes:
// Euclidean, Manhattan, Chebyshev, Minkowski.
func KDTreeValidMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric, MinkowskiMetric:
		return true
	default:
		return false
	}
}

// BallTreeValidMetric reports whether the metric can bound ball tree nodes.
// Balls need a triangle inequality and a RangeMetric implementation.
func BallTreeValidMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric, MinkowskiMetric:
		return true
	default:
		return false
	}
}

// selectTreeKind resolves TreeAuto into a concrete kind and validates that
// a forced kind is compatible with the metric.
func selectTreeKind(cfg TreeConfig, dims int) (TreeKind, error) {
	switch cfg.Kind {
	case TreeAuto:
		if KDTreeValidMetric(cfg.Metric) && dims <= maxKDTreeDims {
			return TreeKDTree, nil
		}
		if BallTreeValidMetric(cfg.Metric) {
			return TreeBallTree, nil
		}
	case TreeKDTree:
		if KDTreeValidMetric(cfg.Metric) {
			return TreeKDTree, nil
		}
	case TreeBallTree:
		if BallTreeValidMetric(cfg.Metric) {
			return TreeBallTree, nil
		}
	}
	return "", fmt.Errorf("gnp: metric %T is not supported by %q trees: %w", cfg.Metric, cfg.Kind, ErrInvalidConfig)
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *TreeConfig) error {
	switch cfg.Kind {
	case TreeAuto, TreeKDTree, TreeBallTree:
		// valid
	default:
		return fmt.Errorf("gnp: invalid Kind %q: %w", cfg.Kind, ErrInvalidConfig)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("gnp: LeafSize must be >= 1, got %d: %w", cfg.LeafSize, ErrInvalidConfig)
	}
	if m, ok := cfg.Metric.(MinkowskiMetric); ok && m.P < 1 {
		return fmt.Errorf("gnp: MinkowskiMetric P must be >= 1, got %f: %w", m.P, ErrInvalidConfig)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *TreeConfig) {
	if cfg.Kind == "" {
		cfg.Kind = TreeAuto
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
}
