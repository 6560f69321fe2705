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


package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/modelgate/modelgate/internal/mgerrors"
	"github.com/modelgate/modelgate/server/middlewares"
	"github.com/modelgate/modelgate/server/service/mocks"
)

func mockPredictionRouter(h *Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.Error())
	r.POST("/predict", h.CreatePrediction)
	return r
}

func newPredictionRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set(headers.ContentType, "application/json")
	return req
}

func TestHandlers_CreatePrediction(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			req:  newPredictionRequest(`{"features": [14.2, 20.1]}`),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Eq([]float64{14.2, 20.1})).Return(1, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.JSONEq(`{"prediction":1}`, w.Body.String())
			},
		},
		{
			name: "integer features",
			req:  newPredictionRequest(`{"features": [1, 2]}`),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Eq([]float64{1, 2})).Return(0, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.JSONEq(`{"prediction":0}`, w.Body.String())
			},
		},
		{
			name: "malformed body",
			req:  newPredictionRequest(`{"features": [1, 2`),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), `"message":"Unprocessable Entity"`)
			},
		},
		{
			name: "features missing",
			req:  newPredictionRequest(`{"foo": [1, 2]}`),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), `"message":"Unprocessable Entity"`)
			},
		},
		{
			name: "features are not numbers",
			req:  newPredictionRequest(`{"features": ["foo", 2]}`),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), `"message":"Unprocessable Entity"`)
			},
		},
		{
			name: "feature vector length mismatch",
			req:  newPredictionRequest(`{"features": [1]}`),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Eq([]float64{1})).Return(0, mgerrors.Data("expected %d features, got %d", 2, 1)).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
				assert.Contains(w.Body.String(), "expected 2 features, got 1")
			},
		},
		{
			name: "model failed",
			req:  newPredictionRequest(`{"features": [1, 2]}`),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Any()).Return(0, mgerrors.ExternalLibrary(errors.New("foo"), "predict")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
				assert.Contains(w.Body.String(), "predict: foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()
			h := New(svc)
			mockRouter := mockPredictionRouter(h)

			tc.mock(svc.EXPECT())
			mockRouter.ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}
