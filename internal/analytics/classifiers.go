package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Classifier is a fit/predict model over float features and binary labels.
type Classifier interface {
	Name() string
	Fit(x [][]float64, y []int) error
	Predict(x [][]float64) []int
}

// Scaler standardizes features to zero mean/unit variance. Statistics are
// fit on the training set and reused for the test set.
type Scaler struct {
	mean []float64
	std  []float64
}

func (s *Scaler) Fit(x [][]float64) {
	if len(x) == 0 {
		return
	}
	cols := len(x[0])
	s.mean = make([]float64, cols)
	s.std = make([]float64, cols)
	column := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i := range x {
			column[i] = x[i][j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.mean[j] = mean
		s.std[j] = std
	}
}

func (s *Scaler) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled := make([]float64, len(row))
		for j, value := range row {
			scaled[j] = (value - s.mean[j]) / s.std[j]
		}
		out[i] = scaled
	}
	return out
}

// KNN is the distance-based classifier (majority vote over the k nearest
// training rows by euclidean distance).
type KNN struct {
	K      int
	xTrain [][]float64
	yTrain []int
}

func NewKNN(k int) *KNN { return &KNN{K: k} }

func (c *KNN) Name() string { return "knn" }

func (c *KNN) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("knn: empty training set")
	}
	c.xTrain = x
	c.yTrain = y
	return nil
}

func (c *KNN) Predict(x [][]float64) []int {
	predictions := make([]int, len(x))
	type neighbor struct {
		dist  float64
		label int
	}
	for i, row := range x {
		neighbors := make([]neighbor, len(c.xTrain))
		for j, train := range c.xTrain {
			neighbors[j] = neighbor{dist: euclidean(row, train), label: c.yTrain[j]}
		}
		sort.Slice(neighbors, func(a, b int) bool {
			if neighbors[a].dist != neighbors[b].dist {
				return neighbors[a].dist < neighbors[b].dist
			}
			return neighbors[a].label < neighbors[b].label
		})
		k := c.K
		if k > len(neighbors) {
			k = len(neighbors)
		}
		votes := 0
		for _, n := range neighbors[:k] {
			if n.label == 1 {
				votes++
			}
		}
		if votes*2 > k {
			predictions[i] = 1
		}
	}
	return predictions
}

// LogisticRegression is the linear classifier, trained by full-batch
// gradient descent with a fixed iteration cap. Zero initialization keeps
// the fit deterministic.
type LogisticRegression struct {
	MaxIter      int
	LearningRate float64
	weights      []float64
	bias         float64
}

func NewLogisticRegression(maxIter int) *LogisticRegression {
	return &LogisticRegression{MaxIter: maxIter, LearningRate: 0.1}
}

func (c *LogisticRegression) Name() string { return "logistic_regression" }

func (c *LogisticRegression) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("logistic regression: empty training set")
	}
	features := len(x[0])
	c.weights = make([]float64, features)
	c.bias = 0

	n := float64(len(x))
	gradW := make([]float64, features)
	for iter := 0; iter < c.MaxIter; iter++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0
		for i, row := range x {
			err := sigmoid(c.decision(row)) - float64(y[i])
			for j, value := range row {
				gradW[j] += err * value
			}
			gradB += err
		}
		for j := range c.weights {
			c.weights[j] -= c.LearningRate * gradW[j] / n
		}
		c.bias -= c.LearningRate * gradB / n
	}
	return nil
}

func (c *LogisticRegression) Predict(x [][]float64) []int {
	predictions := make([]int, len(x))
	for i, row := range x {
		if sigmoid(c.decision(row)) > 0.5 {
			predictions[i] = 1
		}
	}
	return predictions
}

func (c *LogisticRegression) decision(row []float64) float64 {
	sum := c.bias
	for j, value := range row {
		sum += c.weights[j] * value
	}
	return sum
}

// RandomForest is the ensemble classifier: bootstrap-sampled CART trees
// with sqrt-feature subsampling, grown in parallel across all cores.
type RandomForest struct {
	Trees    int
	Seed     int64
	MaxDepth int
	trees    []*treeNode
}

func NewRandomForest(trees int, seed int64) *RandomForest {
	return &RandomForest{Trees: trees, Seed: seed, MaxDepth: 16}
}

func (c *RandomForest) Name() string { return "random_forest" }

func (c *RandomForest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("random forest: empty training set")
	}
	c.trees = make([]*treeNode, c.Trees)

	var group errgroup.Group
	group.SetLimit(runtime.NumCPU())
	for i := 0; i < c.Trees; i++ {
		i := i
		group.Go(func() error {
			// Each tree derives its own rng from the base seed so the
			// forest is reproducible regardless of scheduling order.
			rng := rand.New(rand.NewSource(c.Seed + int64(i)))
			sampleX := make([][]float64, len(x))
			sampleY := make([]int, len(y))
			for s := range sampleX {
				idx := rng.Intn(len(x))
				sampleX[s] = x[idx]
				sampleY[s] = y[idx]
			}
			features := int(math.Sqrt(float64(len(x[0]))))
			if features < 1 {
				features = 1
			}
			c.trees[i] = growTree(sampleX, sampleY, features, c.MaxDepth, rng)
			return nil
		})
	}
	return group.Wait()
}

func (c *RandomForest) Predict(x [][]float64) []int {
	predictions := make([]int, len(x))
	for i, row := range x {
		votes := 0
		for _, tree := range c.trees {
			if tree.predict(row) == 1 {
				votes++
			}
		}
		if votes*2 > len(c.trees) {
			predictions[i] = 1
		}
	}
	return predictions
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	label     int
	leaf      bool
}

func growTree(x [][]float64, y []int, featureSubset, depth int, rng *rand.Rand) *treeNode {
	if depth == 0 || len(y) < 2 || pure(y) {
		return &treeNode{leaf: true, label: majority(y)}
	}

	bestGini := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0
	candidates := rng.Perm(len(x[0]))[:featureSubset]
	for _, feature := range candidates {
		thresholds := uniqueValues(x, feature)
		for _, threshold := range thresholds {
			gini := splitGini(x, y, feature, threshold)
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}
	if bestFeature < 0 {
		return &treeNode{leaf: true, label: majority(y)}
	}

	var leftX, rightX [][]float64
	var leftY, rightY []int
	for i, row := range x {
		if row[bestFeature] <= bestThreshold {
			leftX = append(leftX, row)
			leftY = append(leftY, y[i])
		} else {
			rightX = append(rightX, row)
			rightY = append(rightY, y[i])
		}
	}
	if len(leftY) == 0 || len(rightY) == 0 {
		return &treeNode{leaf: true, label: majority(y)}
	}
	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      growTree(leftX, leftY, featureSubset, depth-1, rng),
		right:     growTree(rightX, rightY, featureSubset, depth-1, rng),
	}
}

func (n *treeNode) predict(row []float64) int {
	if n.leaf {
		return n.label
	}
	if row[n.feature] <= n.threshold {
		return n.left.predict(row)
	}
	return n.right.predict(row)
}

func splitGini(x [][]float64, y []int, feature int, threshold float64) float64 {
	var leftOnes, leftTotal, rightOnes, rightTotal float64
	for i, row := range x {
		if row[feature] <= threshold {
			leftTotal++
			leftOnes += float64(y[i])
		} else {
			rightTotal++
			rightOnes += float64(y[i])
		}
	}
	if leftTotal == 0 || rightTotal == 0 {
		return math.Inf(1)
	}
	total := leftTotal + rightTotal
	return leftTotal/total*gini(leftOnes, leftTotal) +
		rightTotal/total*gini(rightOnes, rightTotal)
}

func gini(ones, total float64) float64 {
	p := ones / total
	return 2 * p * (1 - p)
}

func uniqueValues(x [][]float64, feature int) []float64 {
	seen := map[float64]bool{}
	values := []float64{}
	for _, row := range x {
		if !seen[row[feature]] {
			seen[row[feature]] = true
			values = append(values, row[feature])
		}
	}
	sort.Float64s(values)
	return values
}

func pure(y []int) bool {
	for _, label := range y {
		if label != y[0] {
			return false
		}
	}
	return true
}

func majority(y []int) int {
	ones := 0
	for _, label := range y {
		ones += label
	}
	if ones*2 > len(y) {
		return 1
	}
	return 0
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
