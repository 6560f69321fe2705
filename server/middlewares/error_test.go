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


package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/modelgate/modelgate/internal/mgerrors"
)

func mockErrorRouter(err error, errType gin.ErrorType) *gin.Engine {
	r := gin.New()
	r.Use(Error())
	r.GET("/", func(c *gin.Context) {
		if err != nil {
			_ = c.Error(err).SetType(errType)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "foo"})
	})
	return r
}

func TestMiddlewares_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType gin.ErrorType
		expect  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "no error",
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.JSONEq(`{"message":"foo"}`, w.Body.String())
			},
		},
		{
			name:    "bind error",
			err:     errors.New("foo"),
			errType: gin.ErrorTypeBind,
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name:    "data error",
			err:     mgerrors.Data("expected %d features, got %d", 2, 1),
			errType: gin.ErrorTypePrivate,
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(http.StatusText(http.StatusBadRequest), resp.Message)
				assert.Equal("[DataError]expected 2 features, got 1", resp.Error)
			},
		},
		{
			name:    "external library error",
			err:     mgerrors.ExternalLibrary(errors.New("foo"), "predict"),
			errType: gin.ErrorTypePrivate,
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal("[ExternalLibraryError]predict: foo", resp.Error)
			},
		},
		{
			name:    "configuration error",
			err:     mgerrors.Configuration("artifact %s is empty", "foo"),
			errType: gin.ErrorTypePrivate,
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
			},
		},
		{
			name:    "unknown error",
			err:     errors.New("foo"),
			errType: gin.ErrorTypePrivate,
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Empty(resp.Error)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mockRouter := mockErrorRouter(tc.err, tc.errType)
			mockRouter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			tc.expect(t, w)
		})
	}
}
