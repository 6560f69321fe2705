/*
 *     Copyright 2026 The Modelgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
)

const (
	// DefaultMaxIterations is the number of gradient descent epochs.
	DefaultMaxIterations = 5000

	// DefaultLearningRate is the gradient descent step.
	DefaultLearningRate = 0.1

	// DefaultRegularization is the inverse of the L2 penalty strength.
	DefaultRegularization = 1.0
)

// LogisticRegression is a binary logistic regression fitted by batch gradient
// descent on z-score standardized features.
type LogisticRegression struct {
	Fitted         bool      `json:"fitted" mapstructure:"fitted"`
	Intercept      float64   `json:"intercept" mapstructure:"intercept"`
	Coefficients   []float64 `json:"coefficients" mapstructure:"coefficients"`
	Means          []float64 `json:"means" mapstructure:"means"`
	Scales         []float64 `json:"scales" mapstructure:"scales"`
	FeatureNames   []string  `json:"feature_names" mapstructure:"feature_names"`
	ClassLabels    []string  `json:"class_labels" mapstructure:"class_labels"`
	NegativeLabel  string    `json:"negative_label" mapstructure:"negative_label"`
	MaxIterations  int       `json:"max_iterations" mapstructure:"max_iterations"`
	LearningRate   float64   `json:"learning_rate" mapstructure:"learning_rate"`
	Regularization float64   `json:"regularization" mapstructure:"regularization"`
}

// NewLogisticRegression return an instance of logistic regression model.
func NewLogisticRegression(maxIterations int, learningRate float64) *LogisticRegression {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}

	return &LogisticRegression{
		MaxIterations:  maxIterations,
		LearningRate:   learningRate,
		Regularization: DefaultRegularization,
	}
}

func (lr *LogisticRegression) Name() string {
	return LogisticRegressionName
}

func (lr *LogisticRegression) NumFeatures() int {
	return len(lr.FeatureNames)
}

func (lr *LogisticRegression) Labels() []string {
	return lr.ClassLabels
}

// Fit train parameters of model to fit the data provided.
func (lr *LogisticRegression) Fit(inst base.FixedDataGrid) error {
	classAttrs := inst.AllClassAttributes()
	if len(classAttrs) != 1 {
		return errors.New("only 1 class variable is permitted")
	}

	class, ok := classAttrs[0].(*base.CategoricalAttribute)
	if !ok {
		return errors.New("class variable must be categorical")
	}

	labels := class.GetValues()
	if len(labels) != 2 {
		return errors.New("only binary class variable is permitted")
	}

	negative := labels[0]
	if negative == PositiveLabel {
		negative = labels[1]
	} else if labels[1] != PositiveLabel {
		return errors.New("class variable requires positive label " + PositiveLabel)
	}

	attrs := featureAttributes(inst)
	if len(attrs) == 0 {
		return errors.New("no float feature attributes")
	}

	x, y, err := lr.matrix(inst, attrs)
	if err != nil {
		return err
	}

	if len(x) == 0 {
		return errors.New("no training rows")
	}

	// Standardize columns.
	cols := len(attrs)
	means := make([]float64, cols)
	scales := make([]float64, cols)
	for j := 0; j < cols; j++ {
		column := make(stats.Float64Data, len(x))
		for i := range x {
			column[i] = x[i][j]
		}

		mean, err := stats.Mean(column)
		if err != nil {
			return err
		}

		std, err := stats.StandardDeviationPopulation(column)
		if err != nil {
			return err
		}

		if std == 0 {
			std = 1
		}

		means[j] = mean
		scales[j] = std
	}

	for i := range x {
		for j := 0; j < cols; j++ {
			x[i][j] = (x[i][j] - means[j]) / scales[j]
		}
	}

	// Batch gradient descent on the L2 penalized log loss.
	rows := float64(len(x))
	weights := make([]float64, cols)
	intercept := 0.0
	gradient := make([]float64, cols)
	for iter := 0; iter < lr.MaxIterations; iter++ {
		for j := range gradient {
			gradient[j] = weights[j] / (lr.Regularization * rows)
		}
		interceptGradient := 0.0

		for i := range x {
			diff := sigmoid(intercept+dot(weights, x[i])) - y[i]
			interceptGradient += diff / rows
			for j := 0; j < cols; j++ {
				gradient[j] += diff * x[i][j] / rows
			}
		}

		intercept -= lr.LearningRate * interceptGradient
		for j := range weights {
			weights[j] -= lr.LearningRate * gradient[j]
		}
	}

	lr.Intercept = intercept
	lr.Coefficients = weights
	lr.Means = means
	lr.Scales = scales
	lr.FeatureNames = make([]string, cols)
	for idx, a := range attrs {
		lr.FeatureNames[idx] = a.GetName()
	}
	lr.ClassLabels = labels
	lr.NegativeLabel = negative
	lr.Fitted = true
	return nil
}

// Predict use parameters of model to predict the data provided.
func (lr *LogisticRegression) Predict(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	if !lr.Fitted {
		return nil, errors.New("no fitted model")
	}

	ret := base.GeneratePredictionVector(X)
	attrs := make([]base.Attribute, len(lr.FeatureNames))
	for idx, name := range lr.FeatureNames {
		attrs[idx] = base.NewFloatAttribute(name)
	}
	attrSpecs := base.ResolveAttributes(X, attrs)

	err := X.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		features := make([]float64, len(row))
		for j, r := range row {
			features[j] = (base.UnpackBytesToFloat(r) - lr.Means[j]) / lr.Scales[j]
		}

		label := lr.NegativeLabel
		if sigmoid(lr.Intercept+dot(lr.Coefficients, features)) >= 0.5 {
			label = PositiveLabel
		}

		base.SetClass(ret, i, label)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// matrix copies the feature columns and the binary target out of inst.
func (lr *LogisticRegression) matrix(inst base.FixedDataGrid, attrs []base.Attribute) ([][]float64, []float64, error) {
	attrSpecs := base.ResolveAttributes(inst, attrs)
	_, rows := inst.Size()
	x := make([][]float64, 0, rows)
	y := make([]float64, 0, rows)
	err := inst.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		features := make([]float64, len(row))
		for j, r := range row {
			features[j] = base.UnpackBytesToFloat(r)
		}
		x = append(x, features)

		if base.GetClass(inst, i) == PositiveLabel {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}

		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

func (lr *LogisticRegression) MarshalBinary() ([]byte, error) {
	if !lr.Fitted {
		return nil, errors.New("no fitted model")
	}

	return json.Marshal(lr)
}

func (lr *LogisticRegression) UnmarshalBinary(data []byte) error {
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	return mapstructure.Decode(d, lr)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}
