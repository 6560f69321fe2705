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
	"bytes"
	"encoding/gob"
	"fmt"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
)

// Artifact is the envelope persisted at the production artifact path.
type Artifact struct {
	// Kind is the candidate identifier of the classifier.
	Kind string

	// Features is the feature vector length expected by the classifier.
	Features int

	// Labels are the class labels seen during training.
	Labels []string

	// ForestSize is the number of trees of a random forest payload.
	ForestSize int

	// Cuts are the feature intervals a random forest payload was trained on.
	Cuts map[string][]float64

	// Payload is the classifier serialization.
	Payload []byte
}

// Encode serializes a fitted classifier into artifact bytes.
func Encode(c Classifier) ([]byte, error) {
	payload, err := c.MarshalBinary()
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Kind:     c.Name(),
		Features: c.NumFeatures(),
		Labels:   c.Labels(),
		Payload:  payload,
	}
	if rf, ok := c.(*RandomForest); ok {
		artifact.ForestSize = rf.ForestSize
		artifact.Cuts = rf.Cuts
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(artifact); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode restores a classifier from artifact bytes.
func Decode(data []byte) (Classifier, error) {
	var artifact Artifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&artifact); err != nil {
		return nil, err
	}

	switch artifact.Kind {
	case LogisticRegressionName:
		lr := &LogisticRegression{}
		if err := lr.UnmarshalBinary(artifact.Payload); err != nil {
			return nil, err
		}

		if !lr.Fitted || len(lr.FeatureNames) != artifact.Features {
			return nil, fmt.Errorf("artifact %s is inconsistent", artifact.Kind)
		}

		return lr, nil
	case RandomForestName:
		rf, err := unmarshalRandomForest(artifact.Payload, artifact.ForestSize, artifact.Cuts, artifact.Features, artifact.Labels)
		if err != nil {
			return nil, err
		}

		return rf, nil
	default:
		return nil, fmt.Errorf("unknown artifact kind %q", artifact.Kind)
	}
}

// PredictOne returns the class label predicted for a single feature vector.
func PredictOne(c Classifier, features []float64) (int, error) {
	row, err := NewRow(features, c.Labels())
	if err != nil {
		return 0, err
	}

	out, err := c.Predict(row)
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(base.GetClass(out, 0))
}
