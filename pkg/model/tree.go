package model

import (
	"errors"
	"fmt"
	"sort"
)

// TreeParams are the shared CART hyperparameters.
type TreeParams struct {
	MaxDepth        int `json:"max_depth"`         // 0 => no limit
	MinSamplesSplit int `json:"min_samples_split"` // minimum samples to attempt a split
	MinSamplesLeaf  int `json:"min_samples_leaf"`  // minimum samples in each leaf
}

// DefaultTreeParams are the fitting controls used when the caller has
// no reason to tune them.
func DefaultTreeParams() TreeParams {
	return TreeParams{
		MaxDepth:        8,
		MinSamplesSplit: 20,
		MinSamplesLeaf:  5,
	}
}

type treeNode struct {
	leaf      bool
	feature   int
	threshold float64 // x <= threshold goes left
	left      *treeNode
	right     *treeNode

	n      int
	value  float64   // regression mean, or classifier majority class index
	probas []float64 // classifier leaves only
}

func (t TreeParams) normalized() TreeParams {
	d := DefaultTreeParams()
	if t.MaxDepth < 0 {
		t.MaxDepth = d.MaxDepth
	}
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}
	if t.MinSamplesLeaf < 1 {
		t.MinSamplesLeaf = 1
	}
	return t
}

func validateMatrix(x [][]float64, n int) (int, error) {
	if len(x) == 0 {
		return 0, errors.New("empty design matrix")
	}
	if n > 0 && len(x) != n {
		return 0, fmt.Errorf("x rows %d and target length %d mismatch", len(x), n)
	}
	p := len(x[0])
	for i, row := range x {
		if len(row) != p {
			return 0, fmt.Errorf("row %d has %d features, want %d", i, len(row), p)
		}
	}
	return p, nil
}

func (n *treeNode) descend(row []float64) *treeNode {
	node := n
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node
}

// countLeaves is used by summaries and tests.
func (n *treeNode) countLeaves() int {
	if n == nil {
		return 0
	}
	if n.leaf {
		return 1
	}
	return n.left.countLeaves() + n.right.countLeaves()
}

type valueIndex struct {
	v float64
	i int
}

func sortedByFeature(x [][]float64, idx []int, f int) []valueIndex {
	out := make([]valueIndex, len(idx))
	for i, j := range idx {
		out[i] = valueIndex{x[j][f], j}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].v < out[b].v })
	return out
}

// TreeClassifier is a CART-style binary-split classifier using the
// gini criterion.
type TreeClassifier struct {
	Params  TreeParams `json:"params"`
	root    *treeNode
	classes []int
}

func NewTreeClassifier(params TreeParams) *TreeClassifier {
	return &TreeClassifier{Params: params.normalized()}
}

// Fit trains on x (n rows, p features) and integer class labels y.
func (t *TreeClassifier) Fit(x [][]float64, y []int) error {
	p, err := validateMatrix(x, len(y))
	if err != nil {
		return err
	}

	classIdx := map[int]int{}
	t.classes = nil
	for _, lab := range y {
		if _, ok := classIdx[lab]; !ok {
			classIdx[lab] = len(t.classes)
			t.classes = append(t.classes, lab)
		}
	}

	yi := make([]int, len(y))
	for i, lab := range y {
		yi[i] = classIdx[lab]
	}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}

	t.root = t.build(x, yi, idx, 0, p)
	return nil
}

func (t *TreeClassifier) build(x [][]float64, y []int, idx []int, depth, p int) *treeNode {
	counts := make([]int, len(t.classes))
	for _, i := range idx {
		counts[y[i]]++
	}

	node := &treeNode{n: len(idx)}
	leafOut := func() *treeNode {
		node.leaf = true
		node.probas = make([]float64, len(counts))
		best := 0
		for c, cnt := range counts {
			node.probas[c] = float64(cnt) / float64(len(idx))
			if cnt > counts[best] {
				best = c
			}
		}
		node.value = float64(best)
		return node
	}

	if len(idx) < t.Params.MinSamplesSplit ||
		(t.Params.MaxDepth > 0 && depth >= t.Params.MaxDepth) ||
		isPure(counts) {
		return leafOut()
	}

	parent := gini(counts, len(idx))
	bestGain := 0.0
	bestFeature, bestSplit := -1, 0
	var bestOrder []valueIndex

	for f := 0; f < p; f++ {
		order := sortedByFeature(x, idx, f)

		leftCounts := make([]int, len(t.classes))
		nLeft := 0
		for s := 0; s < len(order)-1; s++ {
			leftCounts[y[order[s].i]]++
			nLeft++
			if order[s].v == order[s+1].v {
				continue
			}
			nRight := len(order) - nLeft
			if nLeft < t.Params.MinSamplesLeaf || nRight < t.Params.MinSamplesLeaf {
				continue
			}

			rightCounts := make([]int, len(counts))
			for c := range counts {
				rightCounts[c] = counts[c] - leftCounts[c]
			}
			w := float64(nLeft) / float64(len(order))
			g := parent - w*gini(leftCounts, nLeft) - (1-w)*gini(rightCounts, nRight)
			if g > bestGain {
				bestGain = g
				bestFeature = f
				bestSplit = s + 1
				bestOrder = order
			}
		}
	}

	if bestFeature < 0 {
		return leafOut()
	}

	left := make([]int, bestSplit)
	right := make([]int, len(bestOrder)-bestSplit)
	for i := 0; i < bestSplit; i++ {
		left[i] = bestOrder[i].i
	}
	for i := bestSplit; i < len(bestOrder); i++ {
		right[i-bestSplit] = bestOrder[i].i
	}

	node.feature = bestFeature
	node.threshold = (bestOrder[bestSplit-1].v + bestOrder[bestSplit].v) / 2
	node.left = t.build(x, y, left, depth+1, p)
	node.right = t.build(x, y, right, depth+1, p)
	return node
}

// Predict returns the predicted class labels for rows of x.
func (t *TreeClassifier) Predict(x [][]float64) ([]int, error) {
	if t.root == nil {
		return nil, errors.New("model not fit")
	}
	out := make([]int, len(x))
	for i, row := range x {
		leaf := t.root.descend(row)
		out[i] = t.classes[int(leaf.value)]
	}
	return out, nil
}

// Leaves returns the number of leaf nodes in the fitted tree.
func (t *TreeClassifier) Leaves() int { return t.root.countLeaves() }

// TreeRegressor is a CART-style regression tree minimizing within-node
// variance.
type TreeRegressor struct {
	Params TreeParams `json:"params"`
	root   *treeNode
}

func NewTreeRegressor(params TreeParams) *TreeRegressor {
	return &TreeRegressor{Params: params.normalized()}
}

// Fit trains on x (n rows, p features) and continuous targets y.
func (t *TreeRegressor) Fit(x [][]float64, y []float64) error {
	p, err := validateMatrix(x, len(y))
	if err != nil {
		return err
	}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}

	t.root = t.build(x, y, idx, 0, p)
	return nil
}

func (t *TreeRegressor) build(x [][]float64, y []float64, idx []int, depth, p int) *treeNode {
	var sum, sumSq float64
	for _, i := range idx {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	n := float64(len(idx))
	mean := sum / n
	sse := sumSq - sum*sum/n

	node := &treeNode{n: len(idx)}
	leafOut := func() *treeNode {
		node.leaf = true
		node.value = mean
		return node
	}

	if len(idx) < t.Params.MinSamplesSplit ||
		(t.Params.MaxDepth > 0 && depth >= t.Params.MaxDepth) ||
		sse <= 0 {
		return leafOut()
	}

	bestGain := 0.0
	bestFeature, bestSplit := -1, 0
	var bestOrder []valueIndex

	for f := 0; f < p; f++ {
		order := sortedByFeature(x, idx, f)

		var leftSum, leftSumSq float64
		nLeft := 0
		for s := 0; s < len(order)-1; s++ {
			yv := y[order[s].i]
			leftSum += yv
			leftSumSq += yv * yv
			nLeft++
			if order[s].v == order[s+1].v {
				continue
			}
			nRight := len(order) - nLeft
			if nLeft < t.Params.MinSamplesLeaf || nRight < t.Params.MinSamplesLeaf {
				continue
			}

			rightSum := sum - leftSum
			rightSumSq := sumSq - leftSumSq
			leftSSE := leftSumSq - leftSum*leftSum/float64(nLeft)
			rightSSE := rightSumSq - rightSum*rightSum/float64(nRight)
			g := sse - leftSSE - rightSSE
			if g > bestGain {
				bestGain = g
				bestFeature = f
				bestSplit = s + 1
				bestOrder = order
			}
		}
	}

	if bestFeature < 0 {
		return leafOut()
	}

	left := make([]int, bestSplit)
	right := make([]int, len(bestOrder)-bestSplit)
	for i := 0; i < bestSplit; i++ {
		left[i] = bestOrder[i].i
	}
	for i := bestSplit; i < len(bestOrder); i++ {
		right[i-bestSplit] = bestOrder[i].i
	}

	node.feature = bestFeature
	node.threshold = (bestOrder[bestSplit-1].v + bestOrder[bestSplit].v) / 2
	node.left = t.build(x, y, left, depth+1, p)
	node.right = t.build(x, y, right, depth+1, p)
	return node
}

// Predict returns fitted values for rows of x.
func (t *TreeRegressor) Predict(x [][]float64) ([]float64, error) {
	if t.root == nil {
		return nil, errors.New("model not fit")
	}
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = t.root.descend(row).value
	}
	return out, nil
}

// Leaves returns the number of leaf nodes in the fitted tree.
func (t *TreeRegressor) Leaves() int { return t.root.countLeaves() }

func gini(counts []int, n int) float64 {
	res := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res -= p * p
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
