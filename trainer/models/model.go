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
	"github.com/sjwhitworth/golearn/base"
)

const (
	// LogisticRegressionName is the identifier of the logistic regression candidate.
	LogisticRegressionName = "LogisticRegression"

	// RandomForestName is the identifier of the random forest candidate.
	RandomForestName = "RandomForest"
)

// Classifier is a trained model that can be persisted into an artifact.
type Classifier interface {
	// Name returns the candidate identifier.
	Name() string

	// Fit trains the classifier on the given instances.
	Fit(base.FixedDataGrid) error

	// Predict returns the predicted class of every row.
	Predict(base.FixedDataGrid) (base.FixedDataGrid, error)

	// NumFeatures returns the feature vector length the classifier expects.
	NumFeatures() int

	// Labels returns the class labels seen during training.
	Labels() []string

	// MarshalBinary serializes the fitted classifier.
	MarshalBinary() ([]byte, error)
}
