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


//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"math"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/modelgate/modelgate/internal/mgerrors"
	"github.com/modelgate/modelgate/trainer/models"
)

const tracerName = "modelgate/server/service"

// Service serves predictions of the production model.
type Service interface {
	// Predict returns the predicted class of a single feature vector.
	Predict(context.Context, []float64) (int, error)

	// ModelName returns the candidate identifier of the loaded model.
	ModelName() string

	// NumFeatures returns the feature vector length the model expects.
	NumFeatures() int
}

type service struct {
	// classifier is read-only after start-up.
	classifier models.Classifier

	// mu serializes predictions, golearn classifiers share scratch state.
	mu sync.Mutex
}

// New returns a new Service serving the given classifier.
func New(classifier models.Classifier) Service {
	return &service{classifier: classifier}
}

func (s *service) Predict(ctx context.Context, features []float64) (int, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "predict")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", s.classifier.Name()),
		attribute.Int("features", len(features)),
	)

	if len(features) != s.classifier.NumFeatures() {
		err := mgerrors.Data("expected %d features, got %d", s.classifier.NumFeatures(), len(features))
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			err := mgerrors.Data("feature %d is not a finite number", i)
			span.SetStatus(codes.Error, err.Error())
			return 0, err
		}
	}

	s.mu.Lock()
	prediction, err := models.PredictOne(s.classifier, features)
	s.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, mgerrors.ExternalLibrary(err, "predict")
	}

	span.SetAttributes(attribute.Int("prediction", prediction))
	return prediction, nil
}

func (s *service) ModelName() string {
	return s.classifier.Name()
}

func (s *service) NumFeatures() int {
	return s.classifier.NumFeatures()
}
