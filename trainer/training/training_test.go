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
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/trainer/config"
	"github.com/modelgate/modelgate/trainer/dataset"
	"github.com/modelgate/modelgate/trainer/models"
)

func mockDataset(t *testing.T, n int) *dataset.Dataset {
	r := rand.New(rand.NewSource(1))
	var b strings.Builder
	for i := 0; i < n; i++ {
		x0, x1 := r.Float64()*2-1, r.Float64()*2-1
		label := 0
		if x0 > 0 {
			label = 1
		}
		fmt.Fprintf(&b, "%f,%f,%d\n", x0, x1, label)
	}

	ds, err := dataset.Load(strings.NewReader(b.String()))
	require.NoError(t, err)
	return ds
}

func mockGrid(t *testing.T, labels []string) base.FixedDataGrid {
	inst, featureSpecs, classSpec, err := models.NewInstances(1, []string{"0", "1"})
	require.NoError(t, err)
	require.NoError(t, inst.Extend(len(labels)))

	class := classSpec.GetAttribute()
	for i, label := range labels {
		inst.Set(featureSpecs[0], i, base.PackFloatToBytes(0))
		inst.Set(classSpec, i, class.GetSysValFromString(label))
	}

	return inst
}

func TestTraining_New(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	assert.Equal(reflect.TypeOf(New(&cfg.Models)).Elem().Name(), "training")
}

func TestTraining_Train(t *testing.T) {
	tests := []struct {
		name   string
		ctx    func() context.Context
		expect func(t *testing.T, results []*Result, err error)
	}{
		{
			name: "train candidates",
			ctx:  context.Background,
			expect: func(t *testing.T, results []*Result, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				require.Len(t, results, 2)
				assert.Equal(models.LogisticRegressionName, results[0].ModelName)
				assert.Equal(models.RandomForestName, results[1].ModelName)
				for _, result := range results {
					assert.Greater(result.F1Score, 0.8)
					assert.LessOrEqual(result.F1Score, 1.0)
					assert.Equal(result.ModelName, result.Classifier.Name())
					assert.Equal(2, result.Classifier.NumFeatures())
				}
			},
		},
		{
			name: "context canceled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			expect: func(t *testing.T, results []*Result, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, context.Canceled)
				assert.Nil(results)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Models.LogisticRegression.MaxIterations = 500
			cfg.Models.RandomForest.ForestSize = 10
			cfg.Models.RandomForest.Features = 2
			results, err := New(&cfg.Models).Train(tc.ctx(), mockDataset(t, 200))
			tc.expect(t, results, err)
		})
	}
}

func TestF1Score(t *testing.T) {
	tests := []struct {
		name        string
		ref         []string
		predictions []string
		expect      func(t *testing.T, f1 float64, err error)
	}{
		{
			name:        "perfect predictions",
			ref:         []string{"0", "1", "1", "0"},
			predictions: []string{"0", "1", "1", "0"},
			expect: func(t *testing.T, f1 float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(1.0, f1)
			},
		},
		{
			name:        "half recall",
			ref:         []string{"1", "1", "0", "0"},
			predictions: []string{"1", "0", "0", "0"},
			expect: func(t *testing.T, f1 float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.InDelta(2.0/3.0, f1, 1e-9)
			},
		},
		{
			name:        "positive class never predicted",
			ref:         []string{"0", "0", "0"},
			predictions: []string{"0", "0", "0"},
			expect: func(t *testing.T, f1 float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(0.0, f1)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f1, err := F1Score(mockGrid(t, tc.ref), mockGrid(t, tc.predictions))
			tc.expect(t, f1, err)
		})
	}
}
