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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelgate/modelgate/server/types"
)

func (h *Handlers) CreatePrediction(ctx *gin.Context) {
	var json types.CreatePredictionRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	prediction, err := h.service.Predict(ctx.Request.Context(), json.Features)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, types.CreatePredictionResponse{Prediction: prediction})
}
