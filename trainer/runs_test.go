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


package trainer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/trainer/storage"
	storagemocks "github.com/modelgate/modelgate/trainer/storage/mocks"
)

func TestTrainer_Runs(t *testing.T) {
	assert := assert.New(t)
	tr, _ := mockTrainer(t, 0.5)

	runs, err := tr.Runs()
	assert.NoError(err)
	assert.Empty(runs)

	var buf bytes.Buffer
	assert.NoError(tr.ExportRuns(&buf))
	assert.Empty(buf.String())

	tr.config.Gate.DryRun = true
	_, err = tr.Run(context.Background())
	require.NoError(t, err)
	_, err = tr.Run(context.Background())
	require.NoError(t, err)

	runs, err = tr.Runs()
	assert.NoError(err)
	assert.Len(runs, 2)
	assert.NotEqual(runs[0].ID, runs[1].ID)

	assert.NoError(tr.ExportRuns(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(lines, 3)
	assert.True(strings.HasPrefix(lines[0], "id,createdAt"))
	assert.True(strings.HasPrefix(lines[1], runs[0].ID))

	assert.NoError(tr.ClearRuns())
	runs, err = tr.Runs()
	assert.NoError(err)
	assert.Empty(runs)
}

func TestTrainer_RunsWithMocks(t *testing.T) {
	errFoo := errors.New("foo")

	tests := []struct {
		name   string
		mock   func(sm *storagemocks.MockStorageMockRecorder)
		expect func(t *testing.T, tr *Trainer)
	}{
		{
			name: "list failed",
			mock: func(sm *storagemocks.MockStorageMockRecorder) {
				sm.ListRun().Return(nil, errFoo).Times(1)
			},
			expect: func(t *testing.T, tr *Trainer) {
				assert := assert.New(t)
				runs, err := tr.Runs()
				assert.ErrorIs(err, errFoo)
				assert.Nil(runs)
			},
		},
		{
			name: "open failed",
			mock: func(sm *storagemocks.MockStorageMockRecorder) {
				sm.OpenRun().Return(nil, errFoo).Times(1)
			},
			expect: func(t *testing.T, tr *Trainer) {
				assert := assert.New(t)
				assert.ErrorIs(tr.ExportRuns(io.Discard), errFoo)
			},
		},
		{
			name: "list records",
			mock: func(sm *storagemocks.MockStorageMockRecorder) {
				sm.ListRun().Return([]storage.Run{{ID: "foo", Outcome: storage.OutcomeRejected}}, nil).Times(1)
			},
			expect: func(t *testing.T, tr *Trainer) {
				assert := assert.New(t)
				runs, err := tr.Runs()
				assert.NoError(err)
				assert.Equal([]storage.Run{{ID: "foo", Outcome: storage.OutcomeRejected}}, runs)
			},
		},
		{
			name: "clear failed",
			mock: func(sm *storagemocks.MockStorageMockRecorder) {
				sm.ClearRun().Return(errFoo).Times(1)
			},
			expect: func(t *testing.T, tr *Trainer) {
				assert := assert.New(t)
				assert.ErrorIs(tr.ClearRuns(), errFoo)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()

			tr, _ := mockTrainer(t, 0.5)
			storageMock := storagemocks.NewMockStorage(ctl)
			tr.storage = storageMock
			tc.mock(storageMock.EXPECT())
			tc.expect(t, tr)
		})
	}
}
