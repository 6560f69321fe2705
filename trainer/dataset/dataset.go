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

package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/modelgate/modelgate/internal/mgerrors"
	"github.com/modelgate/modelgate/trainer/models"
)

const (
	// DefaultTestPercent is the share of rows held out for evaluation.
	DefaultTestPercent = 0.2

	// DefaultSeed is the seed of the train/test shuffle.
	DefaultSeed = 42
)

// Dataset is a labeled dataset split into train and test instances.
type Dataset struct {
	// Train holds the rows the candidates are fitted on.
	Train *base.DenseInstances

	// Test holds the rows the candidates are evaluated on.
	Test *base.DenseInstances

	// NumFeatures is the feature vector length.
	NumFeatures int

	// Labels are the sorted class labels.
	Labels []string
}

type record struct {
	features []float64
	label    string
}

// Option is a functional option for loading datasets.
type Option func(o *options)

type options struct {
	header      bool
	testPercent float64
	seed        int64
}

// WithHeader marks the first csv line as a header.
func WithHeader(header bool) Option {
	return func(o *options) {
		o.header = header
	}
}

// WithTestPercent sets the share of rows held out for evaluation.
func WithTestPercent(percent float64) Option {
	return func(o *options) {
		o.testPercent = percent
	}
}

// WithSeed sets the seed of the train/test shuffle.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// LoadFile opens the csv file at path and loads it.
func LoadFile(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "open dataset")
	}
	defer f.Close()

	return Load(f, opts...)
}

// Load reads csv rows of numeric features followed by an integer class label
// and splits them with a seeded shuffle.
func Load(r io.Reader, opts ...Option) (*Dataset, error) {
	o := &options{
		testPercent: DefaultTestPercent,
		seed:        DefaultSeed,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.testPercent <= 0 || o.testPercent >= 1 {
		return nil, mgerrors.Data("test percent %v must be in (0,1)", o.testPercent)
	}

	records, err := readRecords(r, o.header)
	if err != nil {
		return nil, err
	}

	labelSet := make(map[string]struct{})
	for _, rec := range records {
		labelSet[rec.label] = struct{}{}
	}

	if len(labelSet) < 2 {
		return nil, mgerrors.Data("dataset requires at least 2 classes, got %d", len(labelSet))
	}

	labels := maps.Keys(labelSet)
	slices.Sort(labels)

	numTest := int(math.Ceil(float64(len(records)) * o.testPercent))
	if numTest >= len(records) {
		return nil, mgerrors.Data("dataset of %d rows is too small to split", len(records))
	}

	perm := rand.New(rand.NewSource(o.seed)).Perm(len(records))
	testRecords := make([]record, 0, numTest)
	trainRecords := make([]record, 0, len(records)-numTest)
	for i, idx := range perm {
		if i < numTest {
			testRecords = append(testRecords, records[idx])
		} else {
			trainRecords = append(trainRecords, records[idx])
		}
	}

	numFeatures := len(records[0].features)
	train, err := newInstances(trainRecords, numFeatures, labels)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "build train instances")
	}

	test, err := newInstances(testRecords, numFeatures, labels)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "build test instances")
	}

	return &Dataset{
		Train:       train,
		Test:        test,
		NumFeatures: numFeatures,
		Labels:      labels,
	}, nil
}

func readRecords(r io.Reader, header bool) ([]record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var (
		records []record
		width   int
		line    int
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++

		if err != nil {
			return nil, mgerrors.Wrap(mgerrors.CodeData, err, "read dataset")
		}

		if header && line == 1 {
			continue
		}

		if len(row) < 2 {
			return nil, mgerrors.Data("line %d has %d columns, requires features and a label", line, len(row))
		}

		if width == 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, mgerrors.Data("line %d has %d columns, expected %d", line, len(row), width)
		}

		features := make([]float64, len(row)-1)
		for i, v := range row[:len(row)-1] {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, mgerrors.Data("line %d column %d is not a finite number: %q", line, i+1, v)
			}
			features[i] = f
		}

		label, err := parseLabel(row[len(row)-1])
		if err != nil {
			return nil, mgerrors.Data("line %d label is not an integer: %q", line, row[len(row)-1])
		}

		records = append(records, record{features: features, label: label})
	}

	if len(records) == 0 {
		return nil, mgerrors.Data("dataset is empty")
	}

	return records, nil
}

// parseLabel normalizes integer labels, accepting "1" and "1.0".
func parseLabel(v string) (string, error) {
	v = strings.TrimSpace(v)
	if i, err := strconv.Atoi(v); err == nil {
		return strconv.Itoa(i), nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return "", errors.New("invalid label")
	}

	return strconv.Itoa(int(f)), nil
}

func newInstances(records []record, numFeatures int, labels []string) (*base.DenseInstances, error) {
	inst, featureSpecs, classSpec, err := models.NewInstances(numFeatures, labels)
	if err != nil {
		return nil, err
	}

	if err := inst.Extend(len(records)); err != nil {
		return nil, err
	}

	class := classSpec.GetAttribute()
	for i, rec := range records {
		for j, f := range rec.features {
			inst.Set(featureSpecs[j], i, base.PackFloatToBytes(f))
		}
		inst.Set(classSpec, i, class.GetSysValFromString(rec.label))
	}

	return inst, nil
}
