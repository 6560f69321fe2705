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
	"context"
	"time"

	"github.com/gofrs/flock"

	"github.com/modelgate/modelgate/internal/mgerrors"
)

// lockRetryDelay is the interval between lock attempts.
const lockRetryDelay = 100 * time.Millisecond

// Lock takes the advisory file lock at path, blocking until it is acquired or
// ctx is done. The returned func releases it.
func Lock(ctx context.Context, path string) (func() error, error) {
	fileLock := flock.New(path)
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, mgerrors.Wrap(mgerrors.CodeConfiguration, err, "lock "+path)
	}

	if !locked {
		return nil, mgerrors.Configuration("lock %s is held by another run", path)
	}

	return fileLock.Unlock, nil
}
