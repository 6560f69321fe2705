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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

const (
	// RunFilePrefix is prefix of run record file name.
	RunFilePrefix = "runs"

	// CSVFileExt is extension of file name.
	CSVFileExt = "csv"
)

// Outcomes of a gate run.
const (
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Run is the record of one gate run.
type Run struct {
	// ID is the run id.
	ID string `csv:"id"`

	// CreatedAt is the RFC 3339 start time of the run.
	CreatedAt string `csv:"createdAt"`

	// LogisticRegressionF1 is the F1 score of the logistic regression candidate.
	LogisticRegressionF1 float64 `csv:"logisticRegressionF1"`

	// RandomForestF1 is the F1 score of the random forest candidate.
	RandomForestF1 float64 `csv:"randomForestF1"`

	// SelectedModel is the candidate chosen by the gate.
	SelectedModel string `csv:"selectedModel"`

	// BaselineF1 is the production F1 score the candidate was compared with.
	BaselineF1 float64 `csv:"baselineF1"`

	// Outcome is approved, rejected or failed.
	Outcome string `csv:"outcome"`

	// Version is the registry version after the run.
	Version string `csv:"version"`

	// DryRun reports whether writes were skipped.
	DryRun bool `csv:"dryRun"`

	// Error is the failure message of a failed run.
	Error string `csv:"error"`
}

// Storage is the interface used for storage.
type Storage interface {
	// CreateRun appends a run record to the csv file.
	CreateRun(Run) error

	// ListRun returns the run records in the csv file.
	ListRun() ([]Run, error)

	// OpenRun opens the run record file for read.
	OpenRun() (io.ReadCloser, error)

	// ClearRun removes the run record file.
	ClearRun() error
}

type storage struct {
	baseDir string
	mu      *sync.Mutex
}

// New returns a new Storage instance.
func New(baseDir string) Storage {
	return &storage{
		baseDir: baseDir,
		mu:      &sync.Mutex{},
	}
}

// CreateRun appends a run record to the csv file, the header is written with
// the first record.
func (s *storage) CreateRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.runFilename(), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return gocsv.MarshalFile([]*Run{&run}, file)
	}

	return gocsv.MarshalWithoutHeaders([]*Run{&run}, file)
}

// ListRun returns the run records in the csv file.
func (s *storage) ListRun() ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.runFilename())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var runs []Run
	if err := gocsv.UnmarshalFile(file, &runs); err != nil {
		return nil, err
	}

	return runs, nil
}

// OpenRun opens the run record file for read.
func (s *storage) OpenRun() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.Open(s.runFilename())
}

// ClearRun removes the run record file.
func (s *storage) ClearRun() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.runFilename()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// runFilename generates run record file name.
func (s *storage) runFilename() string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s.%s", RunFilePrefix, CSVFileExt))
}
