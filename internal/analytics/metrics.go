package analytics

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// Scores is the per-model metric record.
type Scores struct {
	Accuracy         float64 `json:"accuracy"`
	Precision        float64 `json:"precision"`
	Recall           float64 `json:"recall"`
	BalancedAccuracy float64 `json:"balanced_accuracy"`
	F1               float64 `json:"f1"`
}

// CalcScores computes the metric set. Averaging switches automatically:
// binary when the test labels contain exactly two classes, weighted
// otherwise.
func CalcScores(yTest, yPred []int) Scores {
	classes := uniqueLabels(yTest)
	binary := len(classes) == 2

	var precision, recall, f1 float64
	if binary {
		precision, recall, f1 = binaryPRF(yTest, yPred, 1)
	} else {
		total := float64(len(yTest))
		for _, class := range classes {
			p, r, f := binaryPRF(yTest, yPred, class)
			weight := float64(support(yTest, class)) / total
			precision += weight * p
			recall += weight * r
			f1 += weight * f
		}
	}

	return Scores{
		Accuracy:         accuracy(yTest, yPred),
		Precision:        precision,
		Recall:           recall,
		BalancedAccuracy: balancedAccuracy(yTest, yPred, classes),
		F1:               f1,
	}
}

// ConfusionMatrix is the 2x2 matrix, rows = actual {0,1}, columns =
// predicted {0,1}.
type ConfusionMatrix [2][2]int

func NewConfusionMatrix(yTrue, yPred []int) ConfusionMatrix {
	var cm ConfusionMatrix
	for i := range yTrue {
		cm[yTrue[i]][yPred[i]]++
	}
	return cm
}

// AsMap renders the matrix as the nested column-major mapping used by the
// report payload.
func (cm ConfusionMatrix) AsMap() map[string]map[string]int {
	return map[string]map[string]int{
		"predicted_0": {
			"actual_0": cm[0][0],
			"actual_1": cm[1][0],
		},
		"predicted_1": {
			"actual_0": cm[0][1],
			"actual_1": cm[1][1],
		},
	}
}

// ROCCurve computes false/true positive rate pairs and AUC, treating the
// predictions as scores. Hard 0/1 labels produce the degenerate two or
// three point curve the report has always shown; feeding probabilities
// instead would yield a real curve.
func ROCCurve(yTest, yPred []int) (fpr, tpr []float64, auc float64) {
	positives := 0.0
	negatives := 0.0
	for _, label := range yTest {
		if label == 1 {
			positives++
		} else {
			negatives++
		}
	}

	type point struct {
		score int
		truth int
	}
	points := make([]point, len(yTest))
	for i := range yTest {
		points[i] = point{score: yPred[i], truth: yTest[i]}
	}
	sort.Slice(points, func(a, b int) bool {
		return points[a].score > points[b].score
	})

	fpr = []float64{0}
	tpr = []float64{0}
	tp, fp := 0.0, 0.0
	for i, p := range points {
		if p.truth == 1 {
			tp++
		} else {
			fp++
		}
		// Emit a point at every threshold boundary (score change) and at
		// the end of the sweep.
		if i == len(points)-1 || points[i+1].score != p.score {
			fpr = append(fpr, safeRate(fp, negatives))
			tpr = append(tpr, safeRate(tp, positives))
		}
	}
	return fpr, tpr, integrate.Trapezoidal(fpr, tpr)
}

func accuracy(yTest, yPred []int) float64 {
	if len(yTest) == 0 {
		return 0
	}
	correct := 0
	for i := range yTest {
		if yTest[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTest))
}

func balancedAccuracy(yTest, yPred []int, classes []int) float64 {
	if len(classes) == 0 {
		return 0
	}
	sum := 0.0
	for _, class := range classes {
		_, recall, _ := binaryPRF(yTest, yPred, class)
		sum += recall
	}
	return sum / float64(len(classes))
}

func binaryPRF(yTest, yPred []int, positive int) (precision, recall, f1 float64) {
	var tp, fp, fn float64
	for i := range yTest {
		predictedPositive := yPred[i] == positive
		actualPositive := yTest[i] == positive
		switch {
		case predictedPositive && actualPositive:
			tp++
		case predictedPositive:
			fp++
		case actualPositive:
			fn++
		}
	}
	precision = safeRate(tp, tp+fp)
	recall = safeRate(tp, tp+fn)
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}

func safeRate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func support(y []int, class int) int {
	count := 0
	for _, label := range y {
		if label == class {
			count++
		}
	}
	return count
}

func uniqueLabels(y []int) []int {
	seen := map[int]bool{}
	labels := []int{}
	for _, label := range y {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Ints(labels)
	return labels
}
