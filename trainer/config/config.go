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
	"errors"

	"github.com/modelgate/modelgate/cmd/dependency/base"
	"github.com/modelgate/modelgate/trainer/models"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Storage configuration.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Log configuration.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Dataset configuration.
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`

	// Models configuration.
	Models ModelsConfig `yaml:"models" mapstructure:"models"`

	// Gate configuration.
	Gate GateConfig `yaml:"gate" mapstructure:"gate"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type StorageConfig struct {
	// WorkHome is the working directory holding the run lock.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// DataDir is the directory of the registry, the artifact and run records.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`

	// RegistryPath overrides the registry file path.
	RegistryPath string `yaml:"registryPath" mapstructure:"registryPath"`

	// ArtifactPath overrides the production artifact path.
	ArtifactPath string `yaml:"artifactPath" mapstructure:"artifactPath"`
}

type LogConfig struct {
	// Log directory.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Maximum size in megabytes of log files before rotation (default: 200)
	MaxSize int `yaml:"maxSize" mapstructure:"maxSize"`

	// Maximum number of days to retain old log files (default: 7)
	MaxAge int `yaml:"maxAge" mapstructure:"maxAge"`

	// Maximum number of old log files to keep (default: 10)
	MaxBackups int `yaml:"maxBackups" mapstructure:"maxBackups"`
}

type DatasetConfig struct {
	// Path of the csv dataset.
	Path string `yaml:"path" mapstructure:"path"`

	// Header marks the first line as a header.
	Header bool `yaml:"header" mapstructure:"header"`

	// TestPercent is the share of rows held out for evaluation.
	TestPercent float64 `yaml:"testPercent" mapstructure:"testPercent"`

	// Seed of the train/test shuffle.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

type ModelsConfig struct {
	// LogisticRegression candidate configuration.
	LogisticRegression LogisticRegressionConfig `yaml:"logisticRegression" mapstructure:"logisticRegression"`

	// RandomForest candidate configuration.
	RandomForest RandomForestConfig `yaml:"randomForest" mapstructure:"randomForest"`
}

type LogisticRegressionConfig struct {
	// MaxIterations is the number of gradient descent steps.
	MaxIterations int `yaml:"maxIterations" mapstructure:"maxIterations"`

	// LearningRate is the gradient descent step size.
	LearningRate float64 `yaml:"learningRate" mapstructure:"learningRate"`
}

type RandomForestConfig struct {
	// ForestSize is the number of trees.
	ForestSize int `yaml:"forestSize" mapstructure:"forestSize"`

	// Features is the number of features per split, 0 selects sqrt of the feature count.
	Features int `yaml:"features" mapstructure:"features"`
}

type GateConfig struct {
	// TiePreference names the candidate selected when both metrics are equal.
	TiePreference string `yaml:"tiePreference" mapstructure:"tiePreference"`

	// DryRun evaluates and decides without writing the registry or the artifact.
	DryRun bool `yaml:"dryRun" mapstructure:"dryRun"`
}

type MetricsConfig struct {
	// Enable pushing metrics at the end of a run.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// PushGateway is the pushgateway url.
	PushGateway string `yaml:"pushGateway" mapstructure:"pushGateway"`

	// Job is the pushgateway job name.
	Job string `yaml:"job" mapstructure:"job"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Log: LogConfig{
			MaxSize:    DefaultLogRotateMaxSize,
			MaxAge:     DefaultLogRotateMaxAge,
			MaxBackups: DefaultLogRotateMaxBackups,
		},
		Dataset: DatasetConfig{
			Header:      true,
			TestPercent: DefaultDatasetTestPercent,
			Seed:        DefaultDatasetSeed,
		},
		Models: ModelsConfig{
			LogisticRegression: LogisticRegressionConfig{
				MaxIterations: DefaultLogisticRegressionMaxIterations,
				LearningRate:  DefaultLogisticRegressionLearningRate,
			},
			RandomForest: RandomForestConfig{
				ForestSize: DefaultRandomForestSize,
			},
		},
		Gate: GateConfig{
			TiePreference: DefaultGateTiePreference,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Job:    DefaultMetricsJob,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Dataset.Path == "" {
		return errors.New("dataset requires parameter path")
	}

	if cfg.Dataset.TestPercent <= 0 || cfg.Dataset.TestPercent >= 1 {
		return errors.New("dataset requires parameter testPercent")
	}

	if cfg.Models.LogisticRegression.MaxIterations <= 0 {
		return errors.New("logisticRegression requires parameter maxIterations")
	}

	if cfg.Models.LogisticRegression.LearningRate <= 0 {
		return errors.New("logisticRegression requires parameter learningRate")
	}

	if cfg.Models.RandomForest.ForestSize <= 0 {
		return errors.New("randomForest requires parameter forestSize")
	}

	if cfg.Models.RandomForest.Features < 0 {
		return errors.New("randomForest requires parameter features")
	}

	if cfg.Gate.TiePreference != models.RandomForestName && cfg.Gate.TiePreference != models.LogisticRegressionName {
		return errors.New("gate requires parameter tiePreference")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.PushGateway == "" {
			return errors.New("metrics requires parameter pushGateway")
		}

		if cfg.Metrics.Job == "" {
			return errors.New("metrics requires parameter job")
		}
	}

	return nil
}
