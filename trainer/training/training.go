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

package training

import (
	"context"
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"golang.org/x/sync/errgroup"

	"github.com/modelgate/modelgate/internal/mgerrors"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/trainer/config"
	"github.com/modelgate/modelgate/trainer/dataset"
	"github.com/modelgate/modelgate/trainer/metrics"
	"github.com/modelgate/modelgate/trainer/models"
)

//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

// Result is the evaluated outcome of one trained candidate.
type Result struct {
	// ModelName is the candidate identifier.
	ModelName string

	// F1Score is the F1 of the positive class on the test set.
	F1Score float64

	// Classifier is the fitted model the score describes.
	Classifier models.Classifier
}

// Training defines the interface to train the candidate models.
type Training interface {
	// Train fits every candidate on the train set and scores it on the test set.
	Train(context.Context, *dataset.Dataset) ([]*Result, error)
}

// training implements Training interface.
type training struct {
	// Models configuration.
	config *config.ModelsConfig
}

// New returns a new Training.
func New(cfg *config.ModelsConfig) Training {
	return &training{config: cfg}
}

// Train fits the candidates concurrently, results keep the candidate order
// LogisticRegression then RandomForest.
func (t *training) Train(ctx context.Context, ds *dataset.Dataset) ([]*Result, error) {
	candidates := []models.Classifier{
		models.NewLogisticRegression(t.config.LogisticRegression.MaxIterations, t.config.LogisticRegression.LearningRate),
		models.NewRandomForest(t.config.RandomForest.ForestSize, t.config.RandomForest.Features),
	}

	results := make([]*Result, len(candidates))
	eg, ctx := errgroup.WithContext(ctx)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		eg.Go(func() error {
			result, err := train(ctx, candidate, ds)
			if err != nil {
				metrics.TrainingFailureCount.WithLabelValues(candidate.Name()).Inc()
				return err
			}

			results[i] = result
			return nil
		})
	}

	// Wait for all train tasks to complete.
	if err := eg.Wait(); err != nil {
		logger.Errorf("training failed: %v", err)
		return nil, err
	}

	return results, nil
}

// train fits one candidate and evaluates it.
func train(ctx context.Context, c models.Classifier, ds *dataset.Dataset) (*Result, error) {
	log := logger.WithModel(c.Name())
	metrics.TrainingCount.WithLabelValues(c.Name()).Inc()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("start fitting")
	if err := c.Fit(ds.Train); err != nil {
		return nil, mgerrors.ExternalLibrary(err, "fit "+c.Name())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	predictions, err := c.Predict(ds.Test)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "predict "+c.Name())
	}

	f1, err := F1Score(ds.Test, predictions)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "evaluate "+c.Name())
	}

	log.Infof("fitted with f1 score %.4f", f1)
	return &Result{
		ModelName:  c.Name(),
		F1Score:    f1,
		Classifier: c,
	}, nil
}

// F1Score returns the F1 score of the positive class. A positive class that is
// never predicted nor present scores 0.
func F1Score(ref, predictions base.FixedDataGrid) (float64, error) {
	cm, err := evaluation.GetConfusionMatrix(ref, predictions)
	if err != nil {
		return 0, err
	}

	f1 := evaluation.GetF1Score(models.PositiveLabel, cm)
	if math.IsNaN(f1) || math.IsInf(f1, 0) {
		return 0, nil
	}

	return f1, nil
}
