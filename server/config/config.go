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
	"fmt"
	"time"

	"github.com/docker/go-units"

	"github.com/modelgate/modelgate/cmd/dependency/base"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Storage configuration.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Log configuration.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `yaml:"readTimeout" mapstructure:"readTimeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration `yaml:"writeTimeout" mapstructure:"writeTimeout"`

	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`

	// EnableCORS allows requests from all origins.
	EnableCORS bool `yaml:"enableCORS" mapstructure:"enableCORS"`
}

type StorageConfig struct {
	// WorkHome is the working directory.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// DataDir is the directory of the production artifact.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`

	// ArtifactPath overrides the production artifact path.
	ArtifactPath string `yaml:"artifactPath" mapstructure:"artifactPath"`

	// MaxArtifactSize is the largest artifact loaded at startup, e.g. 512MiB.
	MaxArtifactSize string `yaml:"maxArtifactSize" mapstructure:"maxArtifactSize"`
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

// New default configuration.
func New() *Config {
	return &Config{
		Options: base.Options{
			Telemetry: base.TelemetryOption{
				ServiceName: DefaultTelemetryServiceName,
			},
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			ReadTimeout:     DefaultServerReadTimeout,
			WriteTimeout:    DefaultServerWriteTimeout,
			ShutdownTimeout: DefaultServerShutdownTimeout,
		},
		Storage: StorageConfig{
			MaxArtifactSize: DefaultStorageMaxArtifactSize,
		},
		Log: LogConfig{
			MaxSize:    DefaultLogRotateMaxSize,
			MaxAge:     DefaultLogRotateMaxAge,
			MaxBackups: DefaultLogRotateMaxBackups,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.Addr == "" {
		return errors.New("server requires parameter addr")
	}

	if cfg.Server.ReadTimeout < 0 {
		return errors.New("server requires parameter readTimeout")
	}

	if cfg.Server.WriteTimeout < 0 {
		return errors.New("server requires parameter writeTimeout")
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return errors.New("server requires parameter shutdownTimeout")
	}

	if _, err := cfg.Storage.MaxArtifactBytes(); err != nil {
		return errors.New("storage requires parameter maxArtifactSize")
	}

	if cfg.Telemetry.Jaeger != "" && cfg.Telemetry.ServiceName == "" {
		return errors.New("telemetry requires parameter serviceName")
	}

	return nil
}

// MaxArtifactBytes parses MaxArtifactSize.
func (s *StorageConfig) MaxArtifactBytes() (int64, error) {
	size, err := units.RAMInBytes(s.MaxArtifactSize)
	if err != nil {
		return 0, err
	}

	if size <= 0 {
		return 0, fmt.Errorf("invalid size %q", s.MaxArtifactSize)
	}

	return size, nil
}
