// {{{ Copyright (c) Paul R. Tagliamonte <paultag@gmail.com> 2020-2021
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package block

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"go.shm.dev/framering/region"
	"go.shm.dev/framering/ring"
	"go.shm.dev/framering/ringerr"
)

// quiesceTimeout bounds how long Destroy will wait for ActiveReaders to
// drain before unmapping anyway. A flat fixed sleep here regardless of
// how many readers, if any, were actually still in flight would always
// pay the worst case; counting readers and backing off lets Destroy
// return immediately in the common case (no reader mid-copy)
// while still giving slow readers real headroom before the timeout.
const quiesceTimeout = 2 * time.Second

var errReadersStillDraining = errors.New("block: readers still draining")

// Destroy marks h's region dead, cuts off new openers by renaming the
// backing file out from under its name, wakes every blocked consumer,
// waits for in-flight reads to finish, and removes the file.
//
// If the caller is not the owner, Destroy only proceeds when the region
// is poisoned (see IsPoisoned): recovering a poisoned region this way
// is the one case where acting on someone else's region is legitimate,
// since its real owner is no longer around to do it.
func Destroy(h *ring.Handle) error {
	hdr := h.Region.Header()
	owner := isOwner(h)
	poisoned := IsPoisoned(h)

	if !owner && !poisoned {
		logger.Error("destroy refused: caller is neither owner nor recovering a poisoned region",
			zap.String("name", h.Name), zap.Int("pid", os.Getpid()), zap.Int32("owner", hdr.Owner))
		return ringerr.ErrNotAuthorized
	}

	atomic.StoreUint32(&hdr.Alive, 0)

	path, err := pathFor(h.Name)
	if err != nil {
		return err
	}
	archived := path + archiveSuffix

	hdr.PublishMu.Lock()
	if err := os.Rename(path, archived); err != nil {
		logger.Error("destroy: could not archive backing file before removal",
			zap.String("path", path), zap.Error(err))
	}
	hdr.PublishCond.Broadcast()
	hdr.PublishMu.Unlock()

	waitForReaders(hdr)

	if err := h.Region.Unmap(); err != nil {
		return err
	}
	if err := os.Remove(archived); err != nil && !os.IsNotExist(err) {
		return err
	}

	logger.Info("block destroyed", zap.String("name", h.Name))
	return nil
}

// waitForReaders spins with exponential backoff until ActiveReaders
// drops to zero or quiesceTimeout elapses, whichever comes first. A
// timeout here means Destroy proceeds to unmap anyway: a reader still
// mid-copy against an unmapped region would fault, but that only
// happens if a reader is stuck well past any realistic copy time, at
// which point something else is already badly wrong with that process.
func waitForReaders(hdr *region.Header) {
	ctx, cancel := context.WithTimeout(context.Background(), quiesceTimeout)
	defer cancel()

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if atomic.LoadUint32(&hdr.ActiveReaders) == 0 {
			return struct{}{}, nil
		}
		return struct{}{}, errReadersStillDraining
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(quiesceTimeout))

	if err != nil {
		logger.Warn("destroy: readers did not drain before quiesce timeout; unmapping anyway",
			zap.Uint32("active_readers", atomic.LoadUint32(&hdr.ActiveReaders)))
	}
}

// vim: foldmethod=marker
