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
	"time"
)

const (
	// DefaultServerAddr is the default listen address of the serving endpoint.
	DefaultServerAddr = ":8000"

	// DefaultServerReadTimeout is the default read timeout of requests.
	DefaultServerReadTimeout = 30 * time.Second

	// DefaultServerWriteTimeout is the default write timeout of responses.
	DefaultServerWriteTimeout = 30 * time.Second

	// DefaultServerShutdownTimeout is the default graceful shutdown timeout.
	DefaultServerShutdownTimeout = 10 * time.Second
)

const (
	// DefaultStorageMaxArtifactSize is the default largest artifact loaded at startup.
	DefaultStorageMaxArtifactSize = "512MiB"
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 200

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default number of old log files to keep.
	DefaultLogRotateMaxBackups = 10
)

const (
	// DefaultTelemetryServiceName is the default service name reported to jaeger.
	DefaultTelemetryServiceName = "modelgate-server"
)
