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
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelgate/modelgate/internal/mgerrors"
)

// mockWDBC returns n wdbc rows alternating malignant and benign diagnoses.
func mockWDBC(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		diagnosis := "M"
		if i%2 == 1 {
			diagnosis = "B"
		}

		fmt.Fprintf(&b, "%d,%s", 842302+i, diagnosis)
		for j := 0; j < len(WDBCFeatureNames); j++ {
			fmt.Fprintf(&b, ",%.4f", float64(i+1)*0.5+float64(j)*0.01)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func TestConvertWDBC(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		expect func(t *testing.T, out string, rows int, err error)
	}{
		{
			name: "convert rows",
			data: mockWDBC(10),
			expect: func(t *testing.T, out string, rows int, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				assert.Equal(10, rows)

				lines := strings.Split(strings.TrimSpace(out), "\n")
				assert.Len(lines, 11)
				assert.True(strings.HasPrefix(lines[0], "mean_radius,mean_texture,"))
				assert.True(strings.HasSuffix(lines[0], ",worst_fractal_dimension,target"))
				assert.True(strings.HasPrefix(lines[1], "0.5000,0.5100,"))
				assert.True(strings.HasSuffix(lines[1], ",0"))
				assert.True(strings.HasSuffix(lines[2], ",1"))

				d, err := Load(strings.NewReader(out), WithHeader(true))
				assert.NoError(err)
				assert.Equal(30, d.NumFeatures)
				assert.Equal([]string{"0", "1"}, d.Labels)
			},
		},
		{
			name: "unknown diagnosis",
			data: strings.Replace(mockWDBC(1), ",M,", ",X,", 1),
			expect: func(t *testing.T, out string, rows int, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsData(err))
				assert.Contains(err.Error(), `unknown diagnosis "X"`)
			},
		},
		{
			name: "missing columns",
			data: "842302,M,17.99,10.38\n",
			expect: func(t *testing.T, out string, rows int, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsData(err))
				assert.Contains(err.Error(), "has 4 columns, expected 32")
			},
		},
		{
			name: "invalid feature",
			data: strings.Replace(mockWDBC(1), ",0.5000,", ",foo,", 1),
			expect: func(t *testing.T, out string, rows int, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsData(err))
			},
		},
		{
			name: "empty",
			data: "",
			expect: func(t *testing.T, out string, rows int, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "[DataError]wdbc data is empty")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			rows, err := ConvertWDBC(strings.NewReader(tc.data), &buf)
			tc.expect(t, buf.String(), rows, err)
		})
	}
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name   string
		mock   func()
		expect func(t *testing.T, rows int, err error)
	}{
		{
			name: "fetch rows",
			mock: func() {
				httpmock.RegisterResponder(http.MethodGet, WDBCURL, httpmock.NewStringResponder(http.StatusOK, mockWDBC(4)))
			},
			expect: func(t *testing.T, rows int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(4, rows)
			},
		},
		{
			name: "not found",
			mock: func() {
				httpmock.RegisterResponder(http.MethodGet, WDBCURL, httpmock.NewStringResponder(http.StatusNotFound, ""))
			},
			expect: func(t *testing.T, rows int, err error) {
				assert := assert.New(t)
				assert.True(mgerrors.IsExternalLibrary(err))
				assert.Equal(0, rows)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()
			tc.mock()

			rows, err := Fetch(context.Background(), &http.Client{}, WDBCURL, &bytes.Buffer{})
			tc.expect(t, rows, err)
			assert.Equal(t, 1, httpmock.GetTotalCallCount())
		})
	}
}
