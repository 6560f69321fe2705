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


package trainer

import (
	"errors"
	"io"
	"io/fs"

	"github.com/modelgate/modelgate/trainer/storage"
)

// Runs returns the recorded runs, oldest first. No record file means no runs.
func (t *Trainer) Runs() ([]storage.Run, error) {
	runs, err := t.storage.ListRun()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []storage.Run{}, nil
		}

		return nil, err
	}

	return runs, nil
}

// ExportRuns copies the raw run records to w.
func (t *Trainer) ExportRuns(w io.Writer) error {
	rc, err := t.storage.OpenRun()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer rc.Close()

	_, err = io.Copy(w, rc)
	return err
}

// ClearRuns removes every run record.
func (t *Trainer) ClearRuns() error {
	return t.storage.ClearRun()
}
