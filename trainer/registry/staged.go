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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination mocks/staged_mock.go -source staged.go -package mocks

const (
	// tempFilePattern is the pattern of staging files.
	tempFilePattern = ".%s.tmp-*"

	// backupFileSuffix is the suffix of the copy kept while a commit may roll back.
	backupFileSuffix = ".bak"
)

// Staged is a durable pending write of one file.
type Staged interface {
	// Commit replaces the target file with the staged content.
	Commit() error

	// Rollback restores the target file to its content before Commit. Before
	// Commit it drops the staged content.
	Rollback() error

	// Close removes the staging and backup files.
	Close() error
}

// stagedFile implements Staged interface.
type stagedFile struct {
	path       string
	tempPath   string
	backupPath string
	hasBackup  bool
	committed  bool
}

// stage writes data to a synced temporary sibling of path.
func stage(path string, data []byte, perm fs.FileMode) (*stagedFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), fmt.Sprintf(tempFilePattern, filepath.Base(path)))
	if err != nil {
		return nil, err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}

	if err := f.Chmod(perm); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	return &stagedFile{
		path:       path,
		tempPath:   f.Name(),
		backupPath: path + backupFileSuffix,
	}, nil
}

// Commit copies the current target to the backup file and renames the staged
// file over the target.
func (s *stagedFile) Commit() error {
	if s.committed {
		return errors.New("staged file is already committed")
	}

	hasBackup, err := copyFile(s.path, s.backupPath)
	if err != nil {
		return err
	}
	s.hasBackup = hasBackup

	if err := os.Rename(s.tempPath, s.path); err != nil {
		return err
	}
	s.committed = true

	return syncDir(filepath.Dir(s.path))
}

// Rollback restores the backup over the target, or removes a target that did
// not exist before Commit.
func (s *stagedFile) Rollback() error {
	if !s.committed {
		return removeIfExist(s.tempPath)
	}

	if s.hasBackup {
		if err := os.Rename(s.backupPath, s.path); err != nil {
			return err
		}
	} else if err := removeIfExist(s.path); err != nil {
		return err
	}

	s.committed = false
	s.hasBackup = false
	return syncDir(filepath.Dir(s.path))
}

func (s *stagedFile) Close() error {
	if err := removeIfExist(s.tempPath); err != nil {
		return err
	}

	return removeIfExist(s.backupPath)
}

// copyFile copies src to a synced dst, it reports false when src does not exist.
func copyFile(src, dst string) (bool, error) {
	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return false, err
	}

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return false, err
	}

	if err := out.Sync(); err != nil {
		return false, err
	}

	return true, nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()

	return d.Sync()
}

func removeIfExist(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
