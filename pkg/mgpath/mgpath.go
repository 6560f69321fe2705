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

package mgpath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

const (
	// RegistryFileName is the file name of the production registry.
	RegistryFileName = "registry.json"

	// ArtifactFileName is the file name of the production model artifact.
	ArtifactFileName = "model.bin"

	// LockFileName is the file name of the trainer lock.
	LockFileName = "trainer.lock"
)

// Mgpath is the interface used for init project path.
type Mgpath interface {
	WorkHome() string
	LogDir() string
	DataDir() string
	DataDirMode() fs.FileMode
	RegistryPath() string
	ArtifactPath() string
	LockPath() string
}

// mgpath provides init project path function.
type mgpath struct {
	workHome     string
	workHomeMode fs.FileMode
	logDir       string
	dataDir      string
	dataDirMode  fs.FileMode
	registryPath string
	artifactPath string
	lockPath     string
}

// Option is a functional option for configuring the mgpath.
type Option func(d *mgpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *mgpath) {
		d.workHome = dir
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *mgpath) {
		d.logDir = dir
	}
}

// WithDataDir set the data directory, which holds the registry and the artifact
// unless they are set explicitly.
func WithDataDir(dir string) Option {
	return func(d *mgpath) {
		d.dataDir = dir
	}
}

// WithRegistryPath set the registry file path.
func WithRegistryPath(path string) Option {
	return func(d *mgpath) {
		d.registryPath = path
	}
}

// WithArtifactPath set the model artifact file path.
func WithArtifactPath(path string) Option {
	return func(d *mgpath) {
		d.artifactPath = path
	}
}

// New returns a new mgpath interface and creates its directories.
func New(options ...Option) (Mgpath, error) {
	d := &mgpath{
		workHome:     DefaultWorkHome,
		workHomeMode: DefaultWorkHomeMode,
		logDir:       DefaultLogDir,
		dataDir:      DefaultDataDir,
		dataDirMode:  DefaultDataDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	if d.registryPath == "" {
		d.registryPath = filepath.Join(d.dataDir, RegistryFileName)
	}

	if d.artifactPath == "" {
		d.artifactPath = filepath.Join(d.dataDir, ArtifactFileName)
	}

	d.lockPath = filepath.Join(d.workHome, LockFileName)

	var errs *multierror.Error

	// Create workhome directory.
	if err := os.MkdirAll(d.workHome, d.workHomeMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create log directory.
	if err := os.MkdirAll(d.logDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create data directory.
	if err := os.MkdirAll(d.dataDir, d.dataDirMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *mgpath) WorkHome() string {
	return d.workHome
}

func (d *mgpath) LogDir() string {
	return d.logDir
}

func (d *mgpath) DataDir() string {
	return d.dataDir
}

func (d *mgpath) DataDirMode() fs.FileMode {
	return d.dataDirMode
}

func (d *mgpath) RegistryPath() string {
	return d.registryPath
}

func (d *mgpath) ArtifactPath() string {
	return d.artifactPath
}

func (d *mgpath) LockPath() string {
	return d.lockPath
}
