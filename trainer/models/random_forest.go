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
	"errors"
	"math"
	"os"
	"path/filepath"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
)

const (
	// DefaultForestSize is the number of trees of the forest.
	DefaultForestSize = 100

	// forestFileName is the staging file name used by golearn serialization.
	forestFileName = "forest.cls"
)

// RandomForest wraps the golearn random forest so it can be persisted in an
// artifact.
type RandomForest struct {
	ForestSize int
	Features   int

	// Cuts are the ChiMerge interval lower bounds of every feature. Rows are
	// discretized with them before reaching the trees.
	Cuts map[string][]float64

	numFeatures int
	labels      []string
	forest      *ensemble.RandomForest
}

// NewRandomForest return an instance of random forest model. A zero features
// value selects sqrt of the feature count at fit time.
func NewRandomForest(forestSize int, features int) *RandomForest {
	if forestSize <= 0 {
		forestSize = DefaultForestSize
	}

	return &RandomForest{
		ForestSize: forestSize,
		Features:   features,
	}
}

func (rf *RandomForest) Name() string {
	return RandomForestName
}

func (rf *RandomForest) NumFeatures() int {
	return rf.numFeatures
}

func (rf *RandomForest) Labels() []string {
	return rf.labels
}

// Fit grows the forest on the given instances.
func (rf *RandomForest) Fit(inst base.FixedDataGrid) error {
	classAttrs := inst.AllClassAttributes()
	if len(classAttrs) != 1 {
		return errors.New("only 1 class variable is permitted")
	}

	class, ok := classAttrs[0].(*base.CategoricalAttribute)
	if !ok {
		return errors.New("class variable must be categorical")
	}

	numFeatures := len(featureAttributes(inst))
	if numFeatures == 0 {
		return errors.New("no float feature attributes")
	}

	features := rf.Features
	if features <= 0 {
		features = int(math.Max(1, math.Floor(math.Sqrt(float64(numFeatures)))))
	}

	cuts, err := trainCutPoints(inst, DefaultChiMergeSignificance)
	if err != nil {
		return err
	}

	forest := ensemble.NewRandomForest(rf.ForestSize, features)
	if err := forest.Fit(discretize(inst, cuts)); err != nil {
		return err
	}

	rf.Features = features
	rf.Cuts = cuts
	rf.numFeatures = numFeatures
	rf.labels = class.GetValues()
	rf.forest = forest
	return nil
}

// Predict returns the majority vote of the forest for every row.
func (rf *RandomForest) Predict(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	if rf.forest == nil {
		return nil, errors.New("no fitted model")
	}

	return rf.forest.Predict(discretize(X, rf.Cuts))
}

// MarshalBinary serializes the forest with golearn's classifier archive format.
// golearn writes archives by path only, so the archive is staged in a
// temporary directory.
func (rf *RandomForest) MarshalBinary() ([]byte, error) {
	if rf.forest == nil {
		return nil, errors.New("no fitted model")
	}

	dir, err := os.MkdirTemp("", "modelgate-forest-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, forestFileName)
	if err := rf.forest.Save(path); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

// unmarshalRandomForest restores a forest written by MarshalBinary. golearn
// only reloads as many trees as the forest is constructed with, so the size
// comes from the artifact.
func unmarshalRandomForest(data []byte, forestSize int, cuts map[string][]float64, numFeatures int, labels []string) (*RandomForest, error) {
	if forestSize <= 0 {
		return nil, errors.New("forest size must be positive")
	}

	if len(cuts) == 0 {
		return nil, errors.New("no feature intervals")
	}

	dir, err := os.MkdirTemp("", "modelgate-forest-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, forestFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, err
	}

	forest := ensemble.NewRandomForest(forestSize, 1)
	if err := forest.Load(path); err != nil {
		return nil, err
	}

	return &RandomForest{
		ForestSize:  forest.ForestSize,
		Features:    forest.Model.RandomFeatures,
		Cuts:        cuts,
		numFeatures: numFeatures,
		labels:      labels,
		forest:      forest,
	}, nil
}
