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

package ring

import (
	"sync/atomic"
	"time"

	"go.shm.dev/framering/ringerr"
)

// Publish writes data as the next frame in h's region and wakes any
// consumer blocked waiting for one, matching the geometry and ordering
// guarantees of a single-writer ring: only the Owner of a region may
// call Publish, and this package trusts the caller on that (Create
// returns a Handle to the owner; a non-owner has no legitimate way to
// get one).
func Publish(h *Handle, width, height, depth int, acquiredAt time.Time, data []byte) error {
	hdr := h.Region.Header()

	if uint64(width) != hdr.Width || uint64(height) != hdr.Height || uint64(depth) != hdr.Depth {
		return ringerr.ErrGeometryMismatch
	}
	if atomic.LoadUint32(&hdr.Alive) == 0 {
		return ringerr.ErrNotActive
	}

	slot := publishSlot(atomic.LoadUint64(&hdr.FrameCount))
	meta := &hdr.Slots[slot]

	meta.Lock.Lock()
	copy(h.Region.Image(slot), data)
	newCount := atomic.AddUint64(&hdr.FrameCount, 1)
	meta.FrameUID = newCount
	meta.AcquisitionTime = acquiredAt.UnixNano()
	meta.Lock.Unlock()

	// Broadcast under publish_mu so a consumer that has just checked
	// "is there anything new" and is about to park cannot miss this
	// wakeup: it either observes the new FrameCount before taking the
	// mutex, or it is already parked on PublishCond when this runs.
	hdr.PublishMu.Lock()
	hdr.PublishCond.Broadcast()
	hdr.PublishMu.Unlock()

	return nil
}

// vim: foldmethod=marker
