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

package registry

import (
	"errors"
	"io/fs"
	"os"

	"github.com/docker/go-units"

	"github.com/modelgate/modelgate/internal/mgerrors"
)

//go:generate mockgen -destination mocks/artifact_mock.go -source artifact.go -package mocks

const (
	// artifactFileMode is the mode of an artifact written for the first time.
	artifactFileMode = 0644

	// DefaultMaxArtifactSize is the largest artifact loaded or staged.
	DefaultMaxArtifactSize = 512 * units.MiB
)

// ArtifactStore is the interface of the production artifact file.
type ArtifactStore interface {
	// Load returns the production artifact bytes.
	Load() ([]byte, error)

	// Stage durably writes data beside the artifact file. Nothing is visible
	// until Commit.
	Stage([]byte) (Staged, error)
}

// artifactStore implements ArtifactStore interface over a single file.
type artifactStore struct {
	path    string
	maxSize int64
}

// ArtifactOption is a functional option for configuring the artifact store.
type ArtifactOption func(a *artifactStore)

// WithMaxSize bounds the artifact size in bytes.
func WithMaxSize(size int64) ArtifactOption {
	return func(a *artifactStore) {
		if size > 0 {
			a.maxSize = size
		}
	}
}

// NewArtifactStore returns a new ArtifactStore backed by the file at path.
func NewArtifactStore(path string, options ...ArtifactOption) ArtifactStore {
	a := &artifactStore{path: path, maxSize: DefaultMaxArtifactSize}
	for _, opt := range options {
		opt(a)
	}

	return a
}

func (a *artifactStore) Load() ([]byte, error) {
	if info, err := os.Stat(a.path); err == nil && info.Size() > a.maxSize {
		return nil, mgerrors.Configuration("artifact %s of %s exceeds limit %s",
			a.path, units.BytesSize(float64(info.Size())), units.BytesSize(float64(a.maxSize)))
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mgerrors.Configuration("artifact %s not found", a.path)
		}

		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "read artifact")
	}

	if len(data) == 0 {
		return nil, mgerrors.Configuration("artifact %s is empty", a.path)
	}

	return data, nil
}

func (a *artifactStore) Stage(data []byte) (Staged, error) {
	if int64(len(data)) > a.maxSize {
		return nil, mgerrors.Configuration("artifact of %s exceeds limit %s",
			units.BytesSize(float64(len(data))), units.BytesSize(float64(a.maxSize)))
	}

	staged, err := stage(a.path, data, fileMode(a.path, artifactFileMode))
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "stage artifact")
	}

	return staged, nil
}
