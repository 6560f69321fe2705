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

package gate

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sjwhitworth/golearn/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/modelgate/modelgate/internal/mgerrors"
	logger "github.com/modelgate/modelgate/internal/mglog"
	"github.com/modelgate/modelgate/trainer/models"
	"github.com/modelgate/modelgate/trainer/registry"
	"github.com/modelgate/modelgate/trainer/registry/mocks"
)

var mockArtifact = []byte("production model")

type mockClassifier struct {
	name string
}

func (m *mockClassifier) Name() string { return m.name }
func (m *mockClassifier) Fit(base.FixedDataGrid) error { return nil }
func (m *mockClassifier) NumFeatures() int { return 2 }
func (m *mockClassifier) Labels() []string { return []string{"0", "1"} }
func (m *mockClassifier) MarshalBinary() ([]byte, error) {
	return []byte(m.name), nil
}
func (m *mockClassifier) Predict(base.FixedDataGrid) (base.FixedDataGrid, error) {
	return nil, errors.New("not implemented")
}

func mockCandidates(t *testing.T, lr, rf float64) []Candidate {
	lrModel, rfModel := mockClassifiers(t)
	return []Candidate{
		{ModelName: models.LogisticRegressionName, F1Score: lr, Classifier: lrModel},
		{ModelName: models.RandomForestName, F1Score: rf, Classifier: rfModel},
	}
}

var (
	fitOnce  sync.Once
	fitErr   error
	fittedLR *models.LogisticRegression
	fittedRF *models.RandomForest
)

// mockClassifiers returns a logistic regression and a random forest fitted
// once on a small separable dataset.
func mockClassifiers(t *testing.T) (models.Classifier, models.Classifier) {
	fitOnce.Do(func() {
		labels := []string{"0", "1"}
		inst, featureSpecs, classSpec, err := models.NewInstances(2, labels)
		if err != nil {
			fitErr = err
			return
		}

		if err := inst.Extend(40); err != nil {
			fitErr = err
			return
		}

		class := classSpec.GetAttribute()
		for i := 0; i < 40; i++ {
			x0 := float64(i%20+1) / 20
			label := "1"
			if i%2 == 0 {
				x0, label = -x0, "0"
			}
			inst.Set(featureSpecs[0], i, base.PackFloatToBytes(x0))
			inst.Set(featureSpecs[1], i, base.PackFloatToBytes(float64(i%7)))
			inst.Set(classSpec, i, class.GetSysValFromString(label))
		}

		fittedLR = models.NewLogisticRegression(200, 0)
		if fitErr = fittedLR.Fit(inst); fitErr != nil {
			return
		}

		fittedRF = models.NewRandomForest(3, 2)
		fitErr = fittedRF.Fit(inst)
	})
	require.NoError(t, fitErr)

	return fittedLR, fittedRF
}

type mockFiles struct {
	registryPath string
	artifactPath string
	registry     []byte
	artifact     []byte
}

func newMockFiles(t *testing.T, registryContent string) *mockFiles {
	dir := t.TempDir()
	f := &mockFiles{
		registryPath: filepath.Join(dir, "registry.json"),
		artifactPath: filepath.Join(dir, "model.bin"),
		registry:     []byte(registryContent),
		artifact:     mockArtifact,
	}

	if registryContent != "" {
		require.NoError(t, os.WriteFile(f.registryPath, f.registry, 0644))
	}
	require.NoError(t, os.WriteFile(f.artifactPath, f.artifact, 0644))
	return f
}

func (f *mockFiles) assertUnchanged(t *testing.T) {
	assert := assert.New(t)
	if len(f.registry) > 0 {
		content, err := os.ReadFile(f.registryPath)
		assert.NoError(err)
		assert.Equal(f.registry, content)
	}

	content, err := os.ReadFile(f.artifactPath)
	assert.NoError(err)
	assert.Equal(f.artifact, content)

	entries, err := os.ReadDir(filepath.Dir(f.registryPath))
	assert.NoError(err)
	for _, e := range entries {
		assert.Contains([]string{"registry.json", "model.bin"}, e.Name())
	}
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.CoreLogger
	logger.SetCoreLogger(zap.New(core).Sugar())
	t.Cleanup(func() {
		logger.SetCoreLogger(prev)
	})

	return logs
}

func TestGate_Run(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		candidates []Candidate
		options    []Option
		expect     func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error)
	}{
		{
			name:       "random forest beats baseline",
			registry:   `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`,
			candidates: mockCandidates(t, 0.88, 0.92),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.True(d.Approved)
				assert.Equal(&registry.Entry{Version: "v2", ModelName: "RandomForest", F1Score: 0.92}, d.Entry)

				entry, err := registry.New(f.registryPath).Load()
				assert.NoError(err)
				assert.Equal(&registry.Entry{Version: "v2", ModelName: "RandomForest", F1Score: 0.92}, entry)

				content, err := os.ReadFile(f.artifactPath)
				assert.NoError(err)
				restored, err := models.Decode(content)
				assert.NoError(err)
				assert.Equal(models.RandomForestName, restored.Name())

				assert.Equal(1, logs.FilterMessageSnippet("candidate LogisticRegression f1 score").Len())
				assert.Equal(1, logs.FilterMessageSnippet("candidate RandomForest f1 score").Len())
				assert.Equal(1, logs.FilterMessageSnippet("selected RandomForest").Len())
				assert.Equal(1, logs.FilterMessageSnippet("approved").Len())
			},
		},
		{
			name:       "both candidates below baseline",
			registry:   `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.95}}`,
			candidates: mockCandidates(t, 0.90, 0.91),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.False(d.Approved)
				assert.Nil(d.Entry)
				assert.Equal("RandomForest", d.Selected.ModelName)
				assert.Equal(0.95, d.Baseline.F1Score)
				f.assertUnchanged(t)
				assert.Equal(1, logs.FilterMessageSnippet("rejected").Len())
				assert.Equal(0, logs.FilterMessageSnippet("approved").Len())
			},
		},
		{
			name:       "equal to baseline promotes",
			registry:   `{"production": {"version": "v3", "model_name": "RandomForest", "f1_score": 0.9}}`,
			candidates: mockCandidates(t, 0.9, 0.85),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.True(d.Approved)
				assert.Equal(&registry.Entry{Version: "v4", ModelName: "LogisticRegression", F1Score: 0.9}, d.Entry)
			},
		},
		{
			name:       "tie promotes the default preference",
			registry:   `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.5}}`,
			candidates: mockCandidates(t, 0.8, 0.8),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal("RandomForest", d.Entry.ModelName)
			},
		},
		{
			name:       "tie promotes the configured preference",
			registry:   `{"production": {"version": "v1", "model_name": "RandomForest", "f1_score": 0.5}}`,
			candidates: mockCandidates(t, 0.8, 0.8),
			options:    []Option{WithTiePreference(PreferLogisticRegression)},
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal("LogisticRegression", d.Entry.ModelName)
			},
		},
		{
			name:       "non version tag becomes v2",
			registry:   `{"production": {"version": "initial", "model_name": "RandomForest", "f1_score": 0.5}}`,
			candidates: mockCandidates(t, 0.6, 0.7),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal("v2", d.Entry.Version)
			},
		},
		{
			name:       "other registry keys are preserved",
			registry:   `{"owner": "ml-team", "production": {"version": "v1", "model_name": "RandomForest", "f1_score": 0.5}}`,
			candidates: mockCandidates(t, 0.6, 0.7),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				content, err := os.ReadFile(f.registryPath)
				assert.NoError(err)
				assert.Contains(string(content), `"owner": "ml-team"`)
			},
		},
		{
			name:       "dry run writes nothing",
			registry:   `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`,
			candidates: mockCandidates(t, 0.88, 0.92),
			options:    []Option{WithDryRun(true)},
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.True(d.Approved)
				assert.True(d.DryRun)
				assert.Equal("v2", d.Entry.Version)
				f.assertUnchanged(t)
			},
		},
		{
			name:       "registry not found",
			candidates: mockCandidates(t, 0.88, 0.92),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsConfiguration(err))
				assert.Nil(d)
				f.assertUnchanged(t)
				_, err = os.Stat(f.registryPath)
				assert.True(os.IsNotExist(err))
			},
		},
		{
			name:       "registry lacks production key",
			registry:   `{"staging": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`,
			candidates: mockCandidates(t, 0.88, 0.92),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsConfiguration(err))
				f.assertUnchanged(t)
			},
		},
		{
			name:     "artifact that cannot be reloaded is rejected",
			registry: `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`,
			candidates: []Candidate{
				{ModelName: models.RandomForestName, F1Score: 0.92, Classifier: &mockClassifier{name: "SVM"}},
			},
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsExternalLibrary(err))
				assert.Contains(err.Error(), "verify RandomForest")
				assert.Nil(d)
				f.assertUnchanged(t)
				assert.Equal(0, logs.FilterMessageSnippet("approved").Len())
			},
		},
		{
			name:       "metric is not finite",
			registry:   `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`,
			candidates: mockCandidates(t, math.NaN(), 0.92),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsData(err))
				f.assertUnchanged(t)
			},
		},
		{
			name:       "metric out of range",
			registry:   `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`,
			candidates: mockCandidates(t, 0.88, 1.2),
			expect: func(t *testing.T, f *mockFiles, logs *observer.ObservedLogs, d *Decision, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsData(err))
				f.assertUnchanged(t)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := observeLogs(t)
			f := newMockFiles(t, tc.registry)
			g := New(registry.New(f.registryPath), registry.NewArtifactStore(f.artifactPath), tc.options...)
			d, err := g.Run(context.Background(), tc.candidates)
			tc.expect(t, f, logs, d, err)
		})
	}
}

func TestGate_RunRepeated(t *testing.T) {
	assert := assert.New(t)
	f := newMockFiles(t, `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`)
	g := New(registry.New(f.registryPath), registry.NewArtifactStore(f.artifactPath))

	d, err := g.Run(context.Background(), mockCandidates(t, 0.88, 0.92))
	require.NoError(t, err)
	assert.Equal("v2", d.Entry.Version)

	d, err = g.Run(context.Background(), mockCandidates(t, 0.88, 0.92))
	require.NoError(t, err)
	assert.True(d.Approved)
	assert.Equal("v3", d.Entry.Version)

	d, err = g.Run(context.Background(), mockCandidates(t, 0.88, 0.91))
	require.NoError(t, err)
	assert.False(d.Approved)
}

func TestGate_Promote(t *testing.T) {
	baseline := &registry.Entry{Version: "v1", ModelName: "LogisticRegression", F1Score: 0.9}
	errFoo := errors.New("foo")

	tests := []struct {
		name   string
		mock   func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged)
		expect func(t *testing.T, d *Decision, err error)
	}{
		{
			name: "commit both",
			mock: func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged) {
				gomock.InOrder(
					s.Load().Return(baseline, nil).Times(1),
					a.Stage(gomock.Any()).Return(artStaged, nil).Times(1),
					s.Stage(gomock.Any()).Return(regStaged, nil).Times(1),
					as.Commit().Return(nil).Times(1),
					rs.Commit().Return(nil).Times(1),
					rs.Close().Return(nil).Times(1),
					as.Close().Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, d *Decision, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(d.Approved)
			},
		},
		{
			name: "stage artifact failed",
			mock: func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged) {
				gomock.InOrder(
					s.Load().Return(baseline, nil).Times(1),
					a.Stage(gomock.Any()).Return(nil, mgerrors.ExternalLibrary(errFoo, "stage artifact")).Times(1),
				)
			},
			expect: func(t *testing.T, d *Decision, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsExternalLibrary(err))
				assert.Nil(d)
			},
		},
		{
			name: "stage registry failed",
			mock: func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged) {
				gomock.InOrder(
					s.Load().Return(baseline, nil).Times(1),
					a.Stage(gomock.Any()).Return(artStaged, nil).Times(1),
					s.Stage(gomock.Any()).Return(nil, mgerrors.ExternalLibrary(errFoo, "stage registry")).Times(1),
					as.Rollback().Return(nil).Times(1),
					as.Close().Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, d *Decision, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, errFoo)
			},
		},
		{
			name: "commit artifact failed",
			mock: func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged) {
				gomock.InOrder(
					s.Load().Return(baseline, nil).Times(1),
					a.Stage(gomock.Any()).Return(artStaged, nil).Times(1),
					s.Stage(gomock.Any()).Return(regStaged, nil).Times(1),
					as.Commit().Return(errFoo).Times(1),
					as.Rollback().Return(nil).Times(1),
					rs.Rollback().Return(nil).Times(1),
					rs.Close().Return(nil).Times(1),
					as.Close().Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, d *Decision, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "[ExternalLibraryError]commit artifact: foo")
			},
		},
		{
			name: "commit registry failed restores artifact",
			mock: func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged) {
				gomock.InOrder(
					s.Load().Return(baseline, nil).Times(1),
					a.Stage(gomock.Any()).Return(artStaged, nil).Times(1),
					s.Stage(gomock.Any()).Return(regStaged, nil).Times(1),
					as.Commit().Return(nil).Times(1),
					rs.Commit().Return(errFoo).Times(1),
					rs.Rollback().Return(nil).Times(1),
					as.Rollback().Return(nil).Times(1),
					rs.Close().Return(nil).Times(1),
					as.Close().Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, d *Decision, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "[ExternalLibraryError]commit registry: foo")
			},
		},
		{
			name: "registry staged with next entry",
			mock: func(s *mocks.MockStoreMockRecorder, a *mocks.MockArtifactStoreMockRecorder, rs *mocks.MockStagedMockRecorder, as *mocks.MockStagedMockRecorder, regStaged, artStaged registry.Staged) {
				s.Load().Return(baseline, nil).Times(1)
				a.Stage(gomock.Any()).Return(artStaged, nil).Times(1)
				s.Stage(&registry.Entry{Version: "v2", ModelName: "RandomForest", F1Score: 0.92}).Return(regStaged, nil).Times(1)
				as.Commit().Return(nil).Times(1)
				rs.Commit().Return(nil).Times(1)
				rs.Close().Return(nil).Times(1)
				as.Close().Return(nil).Times(1)
			},
			expect: func(t *testing.T, d *Decision, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()

			store := mocks.NewMockStore(ctl)
			artifacts := mocks.NewMockArtifactStore(ctl)
			regStaged := mocks.NewMockStaged(ctl)
			artStaged := mocks.NewMockStaged(ctl)
			tc.mock(store.EXPECT(), artifacts.EXPECT(), regStaged.EXPECT(), artStaged.EXPECT(), regStaged, artStaged)

			d, err := New(store, artifacts).Run(context.Background(), mockCandidates(t, 0.88, 0.92))
			tc.expect(t, d, err)
		})
	}
}

func TestGate_RunCanceled(t *testing.T) {
	assert := assert.New(t)
	f := newMockFiles(t, `{"production": {"version": "v1", "model_name": "LogisticRegression", "f1_score": 0.90}}`)
	g := New(registry.New(f.registryPath), registry.NewArtifactStore(f.artifactPath), WithRunID("foo"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Run(ctx, mockCandidates(t, 0.88, 0.92))
	assert.ErrorIs(err, context.Canceled)
	f.assertUnchanged(t)
}
