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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/modelgate/modelgate/internal/mgerrors"
	logger "github.com/modelgate/modelgate/internal/mglog"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"errors,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Gin error handler
		if err.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		// Modelgate error handler
		var mgErr *mgerrors.Error
		if errors.As(err.Err, &mgErr) {
			switch mgErr.Code {
			case mgerrors.CodeData:
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Message: http.StatusText(http.StatusBadRequest),
					Error:   mgErr.Error(),
				})
				return
			default:
				logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, mgErr)
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: http.StatusText(http.StatusInternalServerError),
					Error:   mgErr.Error(),
				})
				return
			}
		}

		// Unknown error
		logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err.Err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
