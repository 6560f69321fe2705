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

package config

import (
	"github.com/modelgate/modelgate/trainer/models"
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files.
	DefaultLogRotateMaxSize = 200

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default number of old log files to keep.
	DefaultLogRotateMaxBackups = 10
)

const (
	// DefaultDatasetTestPercent is the default share of rows held out for evaluation.
	DefaultDatasetTestPercent = 0.2

	// DefaultDatasetSeed is the default seed of the train/test shuffle.
	DefaultDatasetSeed = 42
)

const (
	// DefaultLogisticRegressionMaxIterations is the default number of gradient descent steps.
	DefaultLogisticRegressionMaxIterations = 5000

	// DefaultLogisticRegressionLearningRate is the default gradient descent step size.
	DefaultLogisticRegressionLearningRate = 0.1

	// DefaultRandomForestSize is the default number of trees.
	DefaultRandomForestSize = 100
)

const (
	// DefaultGateTiePreference selects the random forest on equal metrics.
	DefaultGateTiePreference = models.RandomForestName

	// DefaultMetricsJob is the default pushgateway job name.
	DefaultMetricsJob = "modelgate_trainer"
)
