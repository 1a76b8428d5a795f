package procrastination

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const eulerGamma = 0.5772156649

// ForestOptions tunes the isolation forest.
type ForestOptions struct {
	Trees         int
	MaxSamples    int
	Contamination float64
	Seed          uint64
}

// DefaultForestOptions mirrors the usual isolation forest setup:
// 100 trees, at most 256 samples per tree and 10% contamination.
func DefaultForestOptions() ForestOptions {
	return ForestOptions{
		Trees:         100,
		MaxSamples:    256,
		Contamination: 0.1,
		Seed:          42,
	}
}

type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	size      int
	leaf      bool
}

type isolationTree struct {
	nodes []treeNode
}

// Forest is a fitted isolation forest. It is never mutated after fitting.
type Forest struct {
	trees      []isolationTree
	sampleSize int
	offset     float64
}

// averagePathLength is the expected path length of an unsuccessful
// search in a binary search tree of n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}

// FitForest grows the trees on rows and calibrates the outlier threshold so
// that roughly Contamination of the training rows are flagged.
func FitForest(rows [][]float64, opts ForestOptions) *Forest {
	n := len(rows)
	psi := min(opts.MaxSamples, n)
	maxDepth := int(math.Ceil(math.Log2(float64(max(psi, 2)))))

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	f := &Forest{
		trees:      make([]isolationTree, 0, opts.Trees),
		sampleSize: psi,
	}

	for range opts.Trees {
		idx := rng.Perm(n)[:psi]
		t := isolationTree{}
		t.grow(rows, idx, 0, maxDepth, rng)
		f.trees = append(f.trees, t)
	}

	scores := make([]float64, n)
	for i, row := range rows {
		scores[i] = f.ScoreSample(row)
	}
	f.offset = percentile(scores, opts.Contamination*100)

	return f
}

// grow appends the subtree for idx and returns its node index.
func (t *isolationTree) grow(rows [][]float64, idx []int, depth, maxDepth int, rng *rand.Rand) int {
	pos := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{size: len(idx), leaf: true})

	if depth >= maxDepth || len(idx) <= 1 {
		return pos
	}

	// only features that still vary inside this node can split it
	var candidates []int
	lows := make(map[int]float64)
	highs := make(map[int]float64)
	for j := range rows[idx[0]] {
		lo, hi := rows[idx[0]][j], rows[idx[0]][j]
		for _, i := range idx[1:] {
			v := rows[i][j]
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if hi > lo {
			candidates = append(candidates, j)
			lows[j], highs[j] = lo, hi
		}
	}
	if len(candidates) == 0 {
		return pos
	}

	feature := candidates[rng.IntN(len(candidates))]
	threshold := lows[feature] + rng.Float64()*(highs[feature]-lows[feature])

	var left, right []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := t.grow(rows, left, depth+1, maxDepth, rng)
	r := t.grow(rows, right, depth+1, maxDepth, rng)

	t.nodes[pos] = treeNode{
		feature:   feature,
		threshold: threshold,
		left:      l,
		right:     r,
		size:      len(idx),
	}
	return pos
}

func (t *isolationTree) pathLength(x []float64) float64 {
	depth := 0
	node := t.nodes[0]
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = t.nodes[node.left]
		} else {
			node = t.nodes[node.right]
		}
		depth++
	}
	return float64(depth) + averagePathLength(node.size)
}

// ScoreSample returns the negated anomaly score of x. Lower is more abnormal.
func (f *Forest) ScoreSample(x []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}

	var total float64
	for i := range f.trees {
		total += f.trees[i].pathLength(x)
	}
	mean := total / float64(len(f.trees))

	c := averagePathLength(f.sampleSize)
	if c == 0 {
		return -1
	}
	return -math.Pow(2, -mean/c)
}

// Decision returns the score shifted by the fitted offset. Negative values
// are outliers.
func (f *Forest) Decision(x []float64) float64 {
	return f.ScoreSample(x) - f.offset
}

// IsOutlier reports whether x falls on the abnormal side of the threshold.
func (f *Forest) IsOutlier(x []float64) bool {
	return f.Decision(x) < 0
}

// percentile interpolates linearly between the closest ranks, with ranks
// running from 0 to len(values)-1. p is in [0, 100].
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	// stat.LinInterp places sorted[i] at (i+1)/n
	n := float64(len(sorted))
	q := ((n-1)*p/100 + 1) / n
	return stat.Quantile(min(q, 1), stat.LinInterp, sorted, nil)
}
