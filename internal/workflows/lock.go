// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/pkg/logx"
	"github.com/gofrs/flock"
	"github.com/joomcode/errorx"
)

const lockAcquireTimeout = 10 * time.Second

// AcquireOperationLock takes the cross-process file lock that serializes
// mutating operations. Callers must release the lock via ReleaseOperationLock
// once the operation finishes.
func AcquireOperationLock(ctx context.Context) (*flock.Flock, error) {
	lockPath := core.Paths().LockFile
	if err := os.MkdirAll(path.Dir(lockPath), core.DefaultFilePerm); err != nil {
		return nil, errorx.IllegalState.Wrap(err, "failed to create lock directory")
	}

	fileLock := flock.New(lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, lockAcquireTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err != nil {
		return nil, errorx.IllegalState.Wrap(err, "failed to acquire operation lock %q", lockPath)
	}
	if !locked {
		return nil, errorx.IllegalState.New(
			"timed out acquiring operation lock %q: another operation may be in progress", lockPath)
	}

	return fileLock, nil
}

// ReleaseOperationLock releases the lock taken by AcquireOperationLock.
func ReleaseOperationLock(fileLock *flock.Flock) {
	if fileLock == nil {
		return
	}
	if err := fileLock.Unlock(); err != nil {
		logx.As().Warn().Err(err).Str("lockPath", fileLock.Path()).Msg("failed to release operation lock")
	}
}
