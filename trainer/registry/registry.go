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
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/modelgate/modelgate/internal/mgerrors"
)

//go:generate mockgen -destination mocks/registry_mock.go -source registry.go -package mocks

const (
	// ProductionKey is the registry key of the production entry.
	ProductionKey = "production"

	// registryFileMode is the mode of a registry file written for the first time.
	registryFileMode = 0644

	// registryIndent is the json indent of the registry file.
	registryIndent = "    "
)

// Entry is the production model record.
type Entry struct {
	// Version is the version tag of the production model.
	Version string `json:"version"`

	// ModelName is the candidate identifier of the production model.
	ModelName string `json:"model_name"`

	// F1Score is the F1 score of the production model.
	F1Score float64 `json:"f1_score"`
}

// rawEntry tracks which entry fields are present in the registry file.
type rawEntry struct {
	Version   *string  `json:"version" validate:"required,min=1"`
	ModelName *string  `json:"model_name" validate:"required,min=1"`
	F1Score   *float64 `json:"f1_score" validate:"required,gte=0,lte=1"`
}

// Store is the interface of the production registry.
type Store interface {
	// Load returns the production entry.
	Load() (*Entry, error)

	// Stage durably writes a registry holding entry beside the registry file,
	// preserving the other top-level keys. Nothing is visible until Commit.
	Stage(*Entry) (Staged, error)
}

// store implements Store interface over a json file.
type store struct {
	path     string
	validate *validator.Validate
}

// New returns a new Store backed by the json file at path.
func New(path string) Store {
	return &store{
		path:     path,
		validate: validator.New(),
	}
}

// Load returns the production entry, any missing or malformed registry is a
// ConfigurationError.
func (s *store) Load() (*Entry, error) {
	raw, err := s.read()
	if err != nil {
		return nil, err
	}

	data, ok := raw[ProductionKey]
	if !ok {
		return nil, mgerrors.Configuration("registry %s lacks key %q", s.path, ProductionKey)
	}

	var entry rawEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "registry production entry is malformed")
	}

	if err := s.validate.Struct(&entry); err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "registry production entry is invalid")
	}

	return &Entry{
		Version:   *entry.Version,
		ModelName: *entry.ModelName,
		F1Score:   *entry.F1Score,
	}, nil
}

func (s *store) Stage(entry *Entry) (Staged, error) {
	raw, err := s.read()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "marshal registry entry")
	}
	raw[ProductionKey] = data

	content, err := json.MarshalIndent(raw, "", registryIndent)
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "marshal registry")
	}

	staged, err := stage(s.path, append(content, '\n'), fileMode(s.path, registryFileMode))
	if err != nil {
		return nil, mgerrors.ExternalLibrary(err, "stage registry")
	}

	return staged, nil
}

// read decodes the registry file into its top-level keys.
func (s *store) read() (map[string]json.RawMessage, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mgerrors.Configuration("registry %s not found", s.path)
		}

		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "read registry")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "registry is malformed")
	}

	if raw == nil {
		return nil, mgerrors.Configuration("registry %s is not an object", s.path)
	}

	return raw, nil
}

// fileMode returns the permission bits of path, or def when path does not exist.
func fileMode(path string, def fs.FileMode) fs.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return def
	}

	return info.Mode().Perm()
}
