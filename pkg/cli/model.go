package cli

import (
	"fmt"
	"log/slog"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/hctl-dev/hctl/pkg/data"
	"github.com/hctl-dev/hctl/pkg/dataset"
	"github.com/hctl-dev/hctl/pkg/model"
)

var (
	testRatioFlag = &urfave.Float64Flag{
		Name:  "test-ratio",
		Usage: "Fraction of rows held out for evaluation (defaults to the configured value)",
	}

	seedFlag = &urfave.Int64Flag{
		Name:  "seed",
		Usage: "Random seed for the train/test split (defaults to the configured value)",
	}

	modelCmd = &urfave.Command{
		Name:    "model",
		Aliases: []string{"m"},
		Usage:   "Fit the regression and tree models and report holdout metrics",
		Action:  cmdModels,
		Flags: []urfave.Flag{
			testRatioFlag,
			seedFlag,
		},
	}
)

// Coefficient is one named linear regression weight.
type Coefficient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// LinearModelResult is the fitted OLS model and its holdout metrics.
type LinearModelResult struct {
	Intercept    float64                  `json:"intercept"`
	Coefficients []Coefficient            `json:"coefficients"`
	Metrics      *model.RegressionMetrics `json:"metrics"`
}

// TreeModelResult is one fitted CART model and its holdout metrics.
type TreeModelResult struct {
	Params         model.TreeParams             `json:"params"`
	Leaves         int                          `json:"leaves"`
	Regression     *model.RegressionMetrics     `json:"regression,omitempty"`
	Classification *model.ClassificationMetrics `json:"classification,omitempty"`
}

// ModelsResult is the model command output.
type ModelsResult struct {
	Seed               int64              `json:"seed"`
	TestRatio          float64            `json:"test_ratio"`
	TrainRows          int                `json:"train_rows"`
	TestRows           int                `json:"test_rows"`
	Linear             *LinearModelResult `json:"linear"`
	ClassificationTree *TreeModelResult   `json:"classification_tree"`
	RegressionTree     *TreeModelResult   `json:"regression_tree"`
	Duration           string             `json:"duration"`
}

func cmdModels(c *urfave.Context) error {
	start := time.Now()
	cfg := getConfig(c)

	ratio := c.Float64(testRatioFlag.Name)
	if ratio == 0 {
		ratio = cfg.Conf.TestRatio
	}
	seed := cfg.Conf.Seed
	if c.IsSet(seedFlag.Name) {
		seed = c.Int64(seedFlag.Name)
	}

	frame, err := data.GetBlocks(cfg.DB)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	res, err := buildModels(frame, ratio, seed)
	if err != nil {
		return err
	}
	res.Duration = time.Since(start).String()

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// buildModels fits the three models on a shared train/test split.
func buildModels(frame dataset.Frame, testRatio float64, seed int64) (*ModelsResult, error) {
	x, names, err := dataset.Features(frame)
	if err != nil {
		return nil, fmt.Errorf("building design matrix: %w", err)
	}
	y := dataset.TargetValue(frame)
	levels, err := dataset.TargetLevel(frame)
	if err != nil {
		return nil, fmt.Errorf("building classification target: %w", err)
	}

	split, err := model.TrainTestSplit(len(frame), testRatio, seed)
	if err != nil {
		return nil, fmt.Errorf("splitting dataset: %w", err)
	}
	xTrain := model.SelectRows(x, split.Train)
	xTest := model.SelectRows(x, split.Test)

	res := &ModelsResult{
		Seed:      seed,
		TestRatio: testRatio,
		TrainRows: len(split.Train),
		TestRows:  len(split.Test),
	}

	// 1. linear regression on house value
	slog.Info("fitting linear regression", "features", len(names))
	lr := model.NewLinearRegression(names)
	if err := lr.Fit(xTrain, model.SelectFloats(y, split.Train)); err != nil {
		return nil, fmt.Errorf("fitting linear regression: %w", err)
	}
	pred, err := lr.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("predicting with linear regression: %w", err)
	}
	lm, err := model.EvaluateRegression(model.SelectFloats(y, split.Test), pred)
	if err != nil {
		return nil, fmt.Errorf("evaluating linear regression: %w", err)
	}
	coefs := make([]Coefficient, len(names))
	for i, n := range names {
		coefs[i] = Coefficient{Name: n, Value: lr.Coef[i]}
	}
	res.Linear = &LinearModelResult{
		Intercept:    lr.Intercept,
		Coefficients: coefs,
		Metrics:      lm,
	}

	// 2. classification tree on the high/low value label
	slog.Info("fitting classification tree")
	ct := model.NewTreeClassifier(model.DefaultTreeParams())
	if err := ct.Fit(xTrain, model.SelectInts(levels, split.Train)); err != nil {
		return nil, fmt.Errorf("fitting classification tree: %w", err)
	}
	cPred, err := ct.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("predicting with classification tree: %w", err)
	}
	cm, err := model.EvaluateClassification(model.SelectInts(levels, split.Test), cPred)
	if err != nil {
		return nil, fmt.Errorf("evaluating classification tree: %w", err)
	}
	res.ClassificationTree = &TreeModelResult{
		Params:         ct.Params,
		Leaves:         ct.Leaves(),
		Classification: cm,
	}

	// 3. regression tree on house value
	slog.Info("fitting regression tree")
	rt := model.NewTreeRegressor(model.DefaultTreeParams())
	if err := rt.Fit(xTrain, model.SelectFloats(y, split.Train)); err != nil {
		return nil, fmt.Errorf("fitting regression tree: %w", err)
	}
	rPred, err := rt.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("predicting with regression tree: %w", err)
	}
	rm, err := model.EvaluateRegression(model.SelectFloats(y, split.Test), rPred)
	if err != nil {
		return nil, fmt.Errorf("evaluating regression tree: %w", err)
	}
	res.RegressionTree = &TreeModelResult{
		Params:     rt.Params,
		Leaves:     rt.Leaves(),
		Regression: rm,
	}

	return res, nil
}
