package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RegressionMetrics summarize a regressor's fit on a holdout set.
type RegressionMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// EvaluateRegression computes RMSE, MAE, and R² for predictions
// against observed targets.
func EvaluateRegression(yTrue, yPred []float64) (*RegressionMetrics, error) {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("invalid lengths: %d true, %d predicted", len(yTrue), len(yPred))
	}

	var sse, sae float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sse += d * d
		sae += math.Abs(d)
	}
	n := float64(len(yTrue))

	mean := stat.Mean(yTrue, nil)
	var sst float64
	for _, v := range yTrue {
		d := v - mean
		sst += d * d
	}

	r2 := math.NaN()
	if sst > 0 {
		r2 = 1 - sse/sst
	}

	return &RegressionMetrics{
		RMSE: math.Sqrt(sse / n),
		MAE:  sae / n,
		R2:   r2,
	}, nil
}

// Confusion is a binary confusion matrix; the positive class is 1.
type Confusion struct {
	TruePositive  int `json:"tp"`
	TrueNegative  int `json:"tn"`
	FalsePositive int `json:"fp"`
	FalseNegative int `json:"fn"`
}

// ClassificationMetrics summarize a binary classifier on a holdout set.
type ClassificationMetrics struct {
	Accuracy  float64   `json:"accuracy"`
	Precision float64   `json:"precision"`
	Recall    float64   `json:"recall"`
	Confusion Confusion `json:"confusion"`
}

// EvaluateClassification computes accuracy, precision, recall, and the
// confusion matrix for binary labels (0/1).
func EvaluateClassification(yTrue, yPred []int) (*ClassificationMetrics, error) {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("invalid lengths: %d true, %d predicted", len(yTrue), len(yPred))
	}

	var c Confusion
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			c.TruePositive++
		case yTrue[i] == 0 && yPred[i] == 0:
			c.TrueNegative++
		case yTrue[i] == 0 && yPred[i] == 1:
			c.FalsePositive++
		default:
			c.FalseNegative++
		}
	}

	m := &ClassificationMetrics{
		Accuracy:  float64(c.TruePositive+c.TrueNegative) / float64(len(yTrue)),
		Confusion: c,
	}
	if c.TruePositive+c.FalsePositive > 0 {
		m.Precision = float64(c.TruePositive) / float64(c.TruePositive+c.FalsePositive)
	}
	if c.TruePositive+c.FalseNegative > 0 {
		m.Recall = float64(c.TruePositive) / float64(c.TruePositive+c.FalseNegative)
	}
	return m, nil
}
